package calendar

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("event not found")

type Repository interface {
	FindByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]Event, error)
	Create(ctx context.Context, e Event) (Event, error)
	Update(ctx context.Context, e Event) (Event, error)
	Delete(ctx context.Context, ownerID uuid.UUID, id uuid.UUID) error
}

package application

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("application not found")

type Repository interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]Application, error)
	Create(ctx context.Context, a Application) (Application, error)
	Update(ctx context.Context, a Application) (Application, error)
	Delete(ctx context.Context, userID uuid.UUID, id uuid.UUID) error
}

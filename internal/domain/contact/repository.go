package contact

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("contact not found")

// Repository addresses every contact by the (userID, id) pair. A row that exists
// under another user is reported as ErrNotFound and never touched.
type Repository interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]Contact, error)
	Create(ctx context.Context, c Contact) (Contact, error)
	Update(ctx context.Context, c Contact) (Contact, error)
	Delete(ctx context.Context, userID uuid.UUID, id uuid.UUID) error
}

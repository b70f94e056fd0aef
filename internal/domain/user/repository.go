package user

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrNotFound   = errors.New("user not found")
	ErrEmailTaken = errors.New("email already taken")
)

type Repository interface {
	Create(ctx context.Context, u User) error
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
	List(ctx context.Context) ([]User, error)
}

type ProfilePictureRepository interface {
	// Upsert overwrites the user's picture slot. Returns ErrNotFound when the user does not exist.
	Upsert(ctx context.Context, p ProfilePicture) (ProfilePicture, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) (*ProfilePicture, error)
}

package user

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ProfilePicture is the single picture slot of a user. A user has at most one.
type ProfilePicture struct {
	UserID     uuid.UUID
	PictureURL string
	UpdatedAt  time.Time
}

// Identity is the caller resolved from a verified token.
type Identity struct {
	UserID uuid.UUID
	Email  string
}

func (i *Identity) Valid() bool {
	return i != nil && i.UserID != uuid.Nil
}

package usecase

import (
	"applytrack/internal/domain/user"

	"github.com/google/uuid"
)

// Authorize has no side effects and fails only on a missing or empty identity.
func Authorize(identity *user.Identity) error {
	if !identity.Valid() {
		return ErrUnauthenticated
	}
	return nil
}

// AuthorizeOwner authorizes identity and resolves the owner a mutation may
// write to. uuid.Nil means the caller. Any other owner must be the caller.
func AuthorizeOwner(identity *user.Identity, ownerID uuid.UUID) (uuid.UUID, error) {
	if err := Authorize(identity); err != nil {
		return uuid.Nil, err
	}
	if ownerID == uuid.Nil {
		return identity.UserID, nil
	}
	if ownerID != identity.UserID {
		return uuid.Nil, ErrForbidden
	}
	return ownerID, nil
}

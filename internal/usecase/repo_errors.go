package usecase

import (
	"errors"

	"applytrack/internal/domain/application"
	"applytrack/internal/domain/calendar"
	"applytrack/internal/domain/contact"
	"applytrack/internal/domain/user"
	"applytrack/internal/pkg/logger"
)

// storageErr folds repository errors into the use case sentinels. Anything
// unexpected is logged and reported as ErrInternal.
func storageErr(log *logger.Logger, op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, user.ErrNotFound),
		errors.Is(err, contact.ErrNotFound),
		errors.Is(err, application.ErrNotFound),
		errors.Is(err, calendar.ErrNotFound):
		return ErrNotFound
	default:
		log.Error("storage failure", "op", op, "error", err)
		return ErrInternal
	}
}

func publicUser(u user.User) user.User {
	u.PasswordHash = ""
	return u
}

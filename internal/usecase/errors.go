package usecase

import (
	"errors"

	ucauth "applytrack/internal/usecase/auth"
)

var (
	ErrUnauthenticated = errors.New("you need to be logged in")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("not found")
	ErrInvalidInput    = ucauth.ErrInvalidInput
	ErrInternal        = ucauth.ErrInternal

	ErrInvalidCredentials     = ucauth.ErrInvalidCredentials
	ErrEmailAlreadyRegistered = ucauth.ErrEmailAlreadyRegistered
)

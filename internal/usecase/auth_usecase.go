package usecase

import (
	"context"

	"applytrack/internal/domain/user"
	"applytrack/internal/pkg/jwt"
	"applytrack/internal/pkg/logger"
	ucauth "applytrack/internal/usecase/auth"
)

// AuthResult is what addUser and login hand back.
type AuthResult struct {
	Token string
	User  user.User
}

type Auth struct {
	authSvc *ucauth.Service
	jwt     jwt.Service
	log     *logger.Logger
}

func NewAuthUsecase(authSvc *ucauth.Service, jwtSvc jwt.Service, log *logger.Logger) *Auth {
	return &Auth{authSvc: authSvc, jwt: jwtSvc, log: log}
}

func (u *Auth) AddUser(ctx context.Context, in ucauth.RegisterInput) (AuthResult, error) {
	usr, err := u.authSvc.Register(ctx, in)
	if err != nil {
		return AuthResult{}, err
	}
	return u.issue(usr)
}

func (u *Auth) Login(ctx context.Context, in ucauth.LoginInput) (AuthResult, error) {
	usr, err := u.authSvc.Login(ctx, in)
	if err != nil {
		return AuthResult{}, err
	}
	return u.issue(usr)
}

// Identify turns a bearer token into an identity. Any failure yields nil.
func (u *Auth) Identify(token string) *user.Identity {
	if token == "" {
		return nil
	}
	claims, err := u.jwt.Verify(token)
	if err != nil {
		u.log.Debug("bearer token rejected", "error", err)
		return nil
	}
	return &user.Identity{UserID: claims.Data.ID, Email: claims.Data.Email}
}

func (u *Auth) issue(usr user.User) (AuthResult, error) {
	token, err := u.jwt.Sign(jwt.Payload{ID: usr.ID, Email: usr.Email, FirstName: usr.FirstName})
	if err != nil {
		u.log.Error("sign token failed", "user_id", usr.ID, "error", err)
		return AuthResult{}, ErrInternal
	}
	return AuthResult{Token: token, User: usr}, nil
}

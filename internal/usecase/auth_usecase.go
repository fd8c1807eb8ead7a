package usecase

import (
	"context"
	"errors"

	"thinkabout/internal/domain/user"
	"thinkabout/internal/pkg/jwt"
	ucauth "thinkabout/internal/usecase/auth"
)

type AuthUsecase interface {
	Register(ctx context.Context, in ucauth.RegisterInput) (string, error)
	Login(ctx context.Context, in ucauth.LoginInput) (string, error)
	Authenticate(ctx context.Context, token string) (user.User, error)
}

type Auth struct {
	authSvc *ucauth.Service
	users   user.Repository
	jwt     jwt.Service
}

func NewAuthUsecase(authSvc *ucauth.Service, users user.Repository, jwtSvc jwt.Service) *Auth {
	return &Auth{authSvc: authSvc, users: users, jwt: jwtSvc}
}

func (u *Auth) Register(ctx context.Context, in ucauth.RegisterInput) (string, error) {
	usr, err := u.authSvc.Register(ctx, in)
	if err != nil {
		return "", err
	}
	return u.issue(usr.ID)
}

func (u *Auth) Login(ctx context.Context, in ucauth.LoginInput) (string, error) {
	usr, err := u.authSvc.Login(ctx, in)
	if err != nil {
		return "", err
	}
	return u.issue(usr.ID)
}

// Authenticate verifies token and loads its subject. Every call hits the
// user store; nothing is cached between requests.
func (u *Auth) Authenticate(ctx context.Context, token string) (user.User, error) {
	if token == "" {
		return user.User{}, ErrUnauthorized
	}

	claims, err := u.jwt.ValidateToken(token)
	if err != nil {
		return user.User{}, errors.Join(ErrUnauthorized, err)
	}

	usr, err := u.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, errors.Join(ErrUnauthorized, err)
		}
		return user.User{}, internalErr(err)
	}
	return usr.Sanitized(), nil
}

func (u *Auth) issue(userID int64) (string, error) {
	tok, err := u.jwt.GenerateToken(userID)
	if err != nil {
		return "", internalErr(err)
	}
	return tok, nil
}

package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"thinkabout/internal/domain/user"
	"thinkabout/internal/pkg/validation"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrPasswordMismatch       = errors.New("passwords do not match")
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrTooManyAttempts        = errors.New("too many login attempts")
	ErrInvalidInput           = errors.New("invalid input")
	ErrInternal               = errors.New("internal error")
)

type RegisterInput struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
	Gender          string
	DateOfBirth     string
}

type LoginInput struct {
	Email    string
	Password string
}

type Service struct {
	users    user.Repository
	throttle *Throttle
	cost     int
}

func NewService(users user.Repository, throttle *Throttle) *Service {
	return &Service{users: users, throttle: throttle, cost: bcrypt.DefaultCost}
}

// WithHashCost overrides the bcrypt cost used for new password hashes.
func (s *Service) WithHashCost(cost int) *Service {
	if cost >= bcrypt.MinCost && cost <= bcrypt.MaxCost {
		s.cost = cost
	}
	return s
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (user.User, error) {
	if in.Password != in.ConfirmPassword {
		return user.User{}, ErrPasswordMismatch
	}

	email := NormalizeEmail(in.Email)
	if email == "" {
		return user.User{}, ErrInvalidInput
	}
	dob, err := validation.ParseDate(in.DateOfBirth)
	if err != nil {
		return user.User{}, fmt.Errorf("%w: date of birth", ErrInvalidInput)
	}

	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return user.User{}, fmt.Errorf("%w: %w", ErrInternal, err)
	}
	if exists {
		return user.User{}, ErrEmailAlreadyRegistered
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return user.User{}, fmt.Errorf("%w: %w", ErrInternal, err)
	}

	created, err := s.users.Create(ctx, user.User{
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		PasswordHash: string(hash),
		Gender:       strings.TrimSpace(in.Gender),
		DateOfBirth:  dob,
		Package:      user.PackageFree,
	})
	if err != nil {
		if errors.Is(err, user.ErrEmailTaken) {
			return user.User{}, ErrEmailAlreadyRegistered
		}
		return user.User{}, fmt.Errorf("%w: %w", ErrInternal, err)
	}
	return created.Sanitized(), nil
}

// Login never reveals whether the email exists: unknown email and wrong
// password both yield ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, in LoginInput) (user.User, error) {
	email := NormalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return user.User{}, ErrInvalidCredentials
	}

	if !s.throttle.Allow(ctx, email) {
		return user.User{}, ErrTooManyAttempts
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			s.throttle.Fail(ctx, email)
			return user.User{}, ErrInvalidCredentials
		}
		return user.User{}, fmt.Errorf("%w: %w", ErrInternal, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)); err != nil {
		s.throttle.Fail(ctx, email)
		return user.User{}, ErrInvalidCredentials
	}

	s.throttle.Reset(ctx, email)
	return u.Sanitized(), nil
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

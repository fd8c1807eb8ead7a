package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"thinkabout/internal/domain/user"
	"thinkabout/internal/pkg/validation"
	ucauth "thinkabout/internal/usecase/auth"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrEmailTaken   = errors.New("email already taken")
	ErrInternal     = errors.New("internal error")
)

// UpdateProfileInput fields left nil or empty keep their current value.
type UpdateProfileInput struct {
	Name        *string
	Email       *string
	Gender      *string
	DateOfBirth *string
}

type Usecase interface {
	UpdateProfile(ctx context.Context, current user.User, in UpdateProfileInput) error
	ChangePackage(ctx context.Context, userID int64, pkg user.Package) error
}

type Service struct {
	users user.Repository
}

func NewService(users user.Repository) *Service {
	return &Service{users: users}
}

func (s *Service) UpdateProfile(ctx context.Context, current user.User, in UpdateProfileInput) error {
	next := current
	next.Name = orCurrent(in.Name, current.Name)
	next.Gender = orCurrent(in.Gender, current.Gender)
	if email := ucauth.NormalizeEmail(orCurrent(in.Email, "")); email != "" {
		next.Email = email
	}

	// Date of birth is always re-parsed and written back, even when unchanged.
	rawDOB := orCurrent(in.DateOfBirth, current.DateOfBirth.Format(time.RFC3339Nano))
	dob, err := validation.ParseDate(rawDOB)
	if err != nil {
		return fmt.Errorf("%w: date of birth", ErrInvalidInput)
	}
	next.DateOfBirth = dob

	if err := s.users.UpdateProfile(ctx, next); err != nil {
		if errors.Is(err, user.ErrEmailTaken) {
			return ErrEmailTaken
		}
		return fmt.Errorf("%w: %w", ErrInternal, err)
	}
	return nil
}

// ChangePackage overwrites the tier unconditionally.
func (s *Service) ChangePackage(ctx context.Context, userID int64, pkg user.Package) error {
	if !pkg.Valid() {
		return ErrInvalidInput
	}
	if err := s.users.UpdatePackage(ctx, userID, pkg); err != nil {
		return fmt.Errorf("%w: %w", ErrInternal, err)
	}
	return nil
}

func orCurrent(v *string, current string) string {
	if v == nil {
		return current
	}
	if s := strings.TrimSpace(*v); s != "" {
		return s
	}
	return current
}

package usecase

import (
	"errors"
	"fmt"
)

var (
	ErrUnauthorized     = errors.New("unauthorized")
	ErrForbidden        = errors.New("forbidden")
	ErrSelfAnswer       = errors.New("cannot answer own question")
	ErrQuestionNotFound = errors.New("question not found")
	ErrInvalidInput     = errors.New("invalid input")
	ErrInternal         = errors.New("internal error")
)

func internalErr(err error) error {
	return fmt.Errorf("%w: %w", ErrInternal, err)
}

package question

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("question not found")

type Repository interface {
	Create(ctx context.Context, q Question) (Question, error)
	GetByID(ctx context.Context, id int64) (Question, error)
	List(ctx context.Context) ([]Question, error)
	ListByUser(ctx context.Context, userID int64) ([]Question, error)
	Update(ctx context.Context, q Question) (Question, error)
	Delete(ctx context.Context, id int64) error
}

type AnswerRepository interface {
	Create(ctx context.Context, a Answer) (Answer, error)
	ListByQuestion(ctx context.Context, questionID int64) ([]AnswerWithAuthor, error)
	// Count returns the number of answers to questionID and how many of them
	// equal text exactly.
	Count(ctx context.Context, questionID int64, text string) (total int64, matching int64, err error)
}

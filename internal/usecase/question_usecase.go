package usecase

import (
	"context"
	"errors"
	"strings"

	"thinkabout/internal/domain/question"
	"thinkabout/internal/domain/user"
)

type QuestionInput struct {
	Text    string
	Choices []string
}

// QuestionUsecase methods that take only a question id (Detail, Update,
// Delete) expect the caller to have passed Authorize first.
type QuestionUsecase interface {
	Create(ctx context.Context, ownerID int64, in QuestionInput) (question.Question, error)
	Get(ctx context.Context, id int64) (question.Question, error)
	List(ctx context.Context) ([]question.Question, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]question.Question, error)
	IsOwner(ctx context.Context, userID, id int64) (bool, error)
	Authorize(ctx context.Context, userID, id int64) (question.Question, error)
	Detail(ctx context.Context, viewer user.User, id int64) (question.Detail, error)
	Update(ctx context.Context, id int64, in QuestionInput) (question.Question, error)
	Delete(ctx context.Context, id int64) error
}

type Questions struct {
	questions question.Repository
	answers   question.AnswerRepository
}

func NewQuestionUsecase(questions question.Repository, answers question.AnswerRepository) *Questions {
	return &Questions{questions: questions, answers: answers}
}

func (u *Questions) Create(ctx context.Context, ownerID int64, in QuestionInput) (question.Question, error) {
	q, err := normalizeQuestionInput(in)
	if err != nil {
		return question.Question{}, err
	}
	q.UserID = ownerID

	created, err := u.questions.Create(ctx, q)
	if err != nil {
		return question.Question{}, internalErr(err)
	}
	return created, nil
}

func (u *Questions) Get(ctx context.Context, id int64) (question.Question, error) {
	q, err := u.questions.GetByID(ctx, id)
	if err != nil {
		return question.Question{}, mapQuestionRepoError(err)
	}
	return q, nil
}

func (u *Questions) List(ctx context.Context) ([]question.Question, error) {
	items, err := u.questions.List(ctx)
	if err != nil {
		return nil, internalErr(err)
	}
	return items, nil
}

func (u *Questions) ListByOwner(ctx context.Context, ownerID int64) ([]question.Question, error) {
	items, err := u.questions.ListByUser(ctx, ownerID)
	if err != nil {
		return nil, internalErr(err)
	}
	return items, nil
}

func (u *Questions) IsOwner(ctx context.Context, userID, id int64) (bool, error) {
	q, err := u.Get(ctx, id)
	if err != nil {
		return false, err
	}
	return q.OwnedBy(userID), nil
}

// Authorize returns the question when userID owns it, ErrQuestionNotFound
// when it does not exist and ErrForbidden otherwise.
func (u *Questions) Authorize(ctx context.Context, userID, id int64) (question.Question, error) {
	q, err := u.Get(ctx, id)
	if err != nil {
		return question.Question{}, err
	}
	if !q.OwnedBy(userID) {
		return question.Question{}, ErrForbidden
	}
	return q, nil
}

func (u *Questions) Detail(ctx context.Context, viewer user.User, id int64) (question.Detail, error) {
	q, err := u.Get(ctx, id)
	if err != nil {
		return question.Detail{}, err
	}
	answers, err := u.answers.ListByQuestion(ctx, id)
	if err != nil {
		return question.Detail{}, internalErr(err)
	}
	return question.Project(viewer.Package, q, answers), nil
}

// Update replaces both the text and the full choice list.
func (u *Questions) Update(ctx context.Context, id int64, in QuestionInput) (question.Question, error) {
	q, err := normalizeQuestionInput(in)
	if err != nil {
		return question.Question{}, err
	}
	q.ID = id

	updated, err := u.questions.Update(ctx, q)
	if err != nil {
		return question.Question{}, mapQuestionRepoError(err)
	}
	return updated, nil
}

func (u *Questions) Delete(ctx context.Context, id int64) error {
	if err := u.questions.Delete(ctx, id); err != nil {
		return mapQuestionRepoError(err)
	}
	return nil
}

func normalizeQuestionInput(in QuestionInput) (question.Question, error) {
	text := strings.TrimSpace(in.Text)
	if text == "" {
		return question.Question{}, ErrInvalidInput
	}
	choices := make([]string, 0, len(in.Choices))
	for _, c := range in.Choices {
		choices = append(choices, strings.TrimSpace(c))
	}
	return question.Question{Text: text, Choices: choices}, nil
}

func mapQuestionRepoError(err error) error {
	if errors.Is(err, question.ErrNotFound) {
		return ErrQuestionNotFound
	}
	return internalErr(err)
}

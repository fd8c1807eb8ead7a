package usecase

import (
	"context"

	"thinkabout/internal/domain/question"
)

type AnswerUsecase interface {
	Submit(ctx context.Context, userID, questionID int64, text string) (float64, error)
}

type Answers struct {
	questions question.Repository
	answers   question.AnswerRepository
}

func NewAnswerUsecase(questions question.Repository, answers question.AnswerRepository) *Answers {
	return &Answers{questions: questions, answers: answers}
}

// Submit stores the answer and returns the share of all answers to the
// question, the new one included, whose text equals it. The insert and the
// count are separate statements, so concurrent submissions may observe each
// other.
func (u *Answers) Submit(ctx context.Context, userID, questionID int64, text string) (float64, error) {
	q, err := u.questions.GetByID(ctx, questionID)
	if err != nil {
		return 0, mapQuestionRepoError(err)
	}
	if q.OwnedBy(userID) {
		return 0, ErrSelfAnswer
	}

	if _, err := u.answers.Create(ctx, question.Answer{Text: text, UserID: userID, QuestionID: q.ID}); err != nil {
		return 0, mapQuestionRepoError(err)
	}

	total, matching, err := u.answers.Count(ctx, q.ID, text)
	if err != nil {
		return 0, internalErr(err)
	}
	return question.MatchPercentage(matching, total), nil
}

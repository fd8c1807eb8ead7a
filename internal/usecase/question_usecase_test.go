package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"thinkabout/internal/domain/question"
	"thinkabout/internal/domain/user"
	"thinkabout/internal/testutil"
)

func TestQuestions_CreateAndList(t *testing.T) {
	store := testutil.NewStore()
	uc := NewQuestionUsecase(store.Questions(), store.Answers())
	ctx := context.Background()

	created, err := uc.Create(ctx, 7, QuestionInput{Text: "  Best editor? ", Choices: []string{"vim", " emacs "}})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.UserID != 7 || created.Text != "Best editor?" || created.Choices[1] != "emacs" {
		t.Fatalf("unexpected question: %+v", created)
	}

	if _, err := uc.Create(ctx, 8, QuestionInput{Text: "Other", Choices: []string{"x"}}); err != nil {
		t.Fatalf("create other: %v", err)
	}

	all, err := uc.List(ctx)
	if err != nil || len(all) != 2 {
		t.Fatalf("expected 2 questions, got %d (err %v)", len(all), err)
	}
	mine, err := uc.ListByOwner(ctx, 7)
	if err != nil || len(mine) != 1 || mine[0].ID != created.ID {
		t.Fatalf("unexpected owner listing: %+v (err %v)", mine, err)
	}
}

func TestQuestions_CreateRejectsBlankText(t *testing.T) {
	store := testutil.NewStore()
	uc := NewQuestionUsecase(store.Questions(), store.Answers())

	if _, err := uc.Create(context.Background(), 1, QuestionInput{Text: "   "}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestQuestions_Authorize(t *testing.T) {
	store := testutil.NewStore()
	q := seedQuestion(t, store, 1)
	uc := NewQuestionUsecase(store.Questions(), store.Answers())
	ctx := context.Background()

	if _, err := uc.Authorize(ctx, 1, q.ID); err != nil {
		t.Fatalf("owner should pass: %v", err)
	}
	if _, err := uc.Authorize(ctx, 2, q.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if _, err := uc.Authorize(ctx, 1, 404); !errors.Is(err, ErrQuestionNotFound) {
		t.Fatalf("expected ErrQuestionNotFound, got %v", err)
	}

	owns, err := uc.IsOwner(ctx, 2, q.ID)
	if err != nil || owns {
		t.Fatalf("expected IsOwner=false, got %v (err %v)", owns, err)
	}
}

func TestQuestions_DetailGatesDemographics(t *testing.T) {
	store := testutil.NewStore()
	ctx := context.Background()
	answerer, err := store.Users().Create(ctx, user.User{
		Name: "Bo", Email: "bo@example.com", Gender: "male",
		DateOfBirth: time.Date(2001, 2, 3, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	q := seedQuestion(t, store, 1)
	if _, err := store.Answers().Create(ctx, question.Answer{Text: "tabs", UserID: answerer.ID, QuestionID: q.ID}); err != nil {
		t.Fatalf("seed answer: %v", err)
	}

	uc := NewQuestionUsecase(store.Questions(), store.Answers())

	free, err := uc.Detail(ctx, user.User{ID: 1, Package: user.PackageFree}, q.ID)
	if err != nil {
		t.Fatalf("detail free: %v", err)
	}
	if len(free.Answers) != 1 || free.Answers[0].Author != nil {
		t.Fatalf("free viewer must not see demographics: %+v", free.Answers)
	}

	premium, err := uc.Detail(ctx, user.User{ID: 1, Package: user.PackagePremium}, q.ID)
	if err != nil {
		t.Fatalf("detail premium: %v", err)
	}
	if premium.Answers[0].Author == nil || premium.Answers[0].Author.Gender != "male" {
		t.Fatalf("premium viewer must see demographics: %+v", premium.Answers)
	}
}

func TestQuestions_UpdateAndDelete(t *testing.T) {
	store := testutil.NewStore()
	q := seedQuestion(t, store, 1)
	uc := NewQuestionUsecase(store.Questions(), store.Answers())
	ctx := context.Background()

	updated, err := uc.Update(ctx, q.ID, QuestionInput{Text: "New?", Choices: []string{"only"}})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Text != "New?" || len(updated.Choices) != 1 || updated.UserID != 1 {
		t.Fatalf("unexpected update result: %+v", updated)
	}

	if _, err := store.Answers().Create(ctx, question.Answer{Text: "only", UserID: 2, QuestionID: q.ID}); err != nil {
		t.Fatalf("seed answer: %v", err)
	}
	if err := uc.Delete(ctx, q.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := uc.Get(ctx, q.ID); !errors.Is(err, ErrQuestionNotFound) {
		t.Fatalf("expected deleted question to be gone, got %v", err)
	}
	if n := store.AnswerCount(q.ID); n != 0 {
		t.Fatalf("expected answers to cascade, got %d", n)
	}
	if err := uc.Delete(ctx, q.ID); !errors.Is(err, ErrQuestionNotFound) {
		t.Fatalf("expected ErrQuestionNotFound on second delete, got %v", err)
	}
}

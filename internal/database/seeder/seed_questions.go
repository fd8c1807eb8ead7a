package seeder

import (
	"context"
	"errors"

	"thinkabout/internal/domain/question"
	"thinkabout/internal/domain/user"
)

var demoQuestions = []question.Question{
	{Text: "What is your favourite season?", Choices: []string{"spring", "summer", "autumn", "winter"}},
	{Text: "Do you prefer reading or watching films?", Choices: []string{"reading", "films"}},
	{Text: "How do you take your coffee?", Choices: []string{"black", "with milk", "I don't drink coffee"}},
}

// QuestionsSeeder gives the premium demo account its questions once. It
// needs UsersSeeder to have run first.
type QuestionsSeeder struct{}

func (QuestionsSeeder) Name() string { return "questions" }

func (QuestionsSeeder) Run(ctx context.Context, repos Repos) error {
	owner, err := repos.Users.GetByEmail(ctx, DemoPremiumEmail)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return errors.New("demo owner missing, run the users seeder first")
		}
		return err
	}

	existing, err := repos.Questions.ListByUser(ctx, owner.ID)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	for _, q := range demoQuestions {
		q.UserID = owner.ID
		if _, err := repos.Questions.Create(ctx, q); err != nil {
			return err
		}
	}
	return nil
}

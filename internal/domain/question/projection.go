package question

import (
	"time"

	"thinkabout/internal/domain/user"
)

type Demographics struct {
	Gender      string
	DateOfBirth time.Time
}

type AnswerView struct {
	Text   string
	Author *Demographics
}

type Detail struct {
	Question
	Answers []AnswerView
}

// Project shapes a question and its answers for a viewer on the given tier.
// Answerer demographics are only attached for premium viewers.
func Project(tier user.Package, q Question, answers []AnswerWithAuthor) Detail {
	out := Detail{Question: q, Answers: make([]AnswerView, 0, len(answers))}
	for _, a := range answers {
		v := AnswerView{Text: a.Text}
		if tier.IsPremium() {
			v.Author = &Demographics{Gender: a.AuthorGender, DateOfBirth: a.AuthorDateOfBirth}
		}
		out.Answers = append(out.Answers, v)
	}
	return out
}

package question

import (
	"math"
	"time"
)

type Question struct {
	ID        int64
	Text      string
	Choices   []string
	UserID    int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (q Question) OwnedBy(userID int64) bool {
	return q.UserID == userID
}

type Answer struct {
	ID         int64
	Text       string
	UserID     int64
	QuestionID int64
	CreatedAt  time.Time
}

// AnswerWithAuthor carries the answering user's demographics alongside the
// answer. Whether they are exposed is decided by Project.
type AnswerWithAuthor struct {
	Answer
	AuthorGender      string
	AuthorDateOfBirth time.Time
}

// MatchPercentage is 100*matching/total rounded to two decimals.
func MatchPercentage(matching, total int64) float64 {
	if total <= 0 || matching <= 0 {
		return 0
	}
	if matching > total {
		matching = total
	}
	p := float64(matching) / float64(total) * 100
	return math.Round(p*100) / 100
}

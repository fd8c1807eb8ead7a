package dto

import (
	"time"

	"thinkabout/internal/domain/question"
)

type QuestionResponse struct {
	ID        int64     `json:"id"`
	Question  string    `json:"question"`
	Choices   []string  `json:"choices"`
	UserID    int64     `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func NewQuestionResponse(q question.Question) QuestionResponse {
	choices := q.Choices
	if choices == nil {
		choices = []string{}
	}
	return QuestionResponse{
		ID:        q.ID,
		Question:  q.Text,
		Choices:   choices,
		UserID:    q.UserID,
		CreatedAt: q.CreatedAt,
		UpdatedAt: q.UpdatedAt,
	}
}

func NewQuestionListResponse(items []question.Question) []QuestionResponse {
	out := make([]QuestionResponse, 0, len(items))
	for _, q := range items {
		out = append(out, NewQuestionResponse(q))
	}
	return out
}

// PublicQuestionResponse is the unauthenticated view: no owner, no answers.
type PublicQuestionResponse struct {
	ID        int64     `json:"id"`
	Question  string    `json:"question"`
	Choices   []string  `json:"choices"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func NewPublicQuestionResponse(q question.Question) PublicQuestionResponse {
	full := NewQuestionResponse(q)
	return PublicQuestionResponse{
		ID:        full.ID,
		Question:  full.Question,
		Choices:   full.Choices,
		CreatedAt: full.CreatedAt,
		UpdatedAt: full.UpdatedAt,
	}
}

type AnswerAuthorResponse struct {
	Gender      string    `json:"gender"`
	DateOfBirth time.Time `json:"dateOfBirth"`
}

// AnswerResponse omits user entirely for viewers without premium.
type AnswerResponse struct {
	Answer string                `json:"answer"`
	User   *AnswerAuthorResponse `json:"user,omitempty"`
}

type QuestionDetailResponse struct {
	QuestionResponse
	Answers []AnswerResponse `json:"answers"`
}

func NewQuestionDetailResponse(d question.Detail) QuestionDetailResponse {
	out := QuestionDetailResponse{
		QuestionResponse: NewQuestionResponse(d.Question),
		Answers:          make([]AnswerResponse, 0, len(d.Answers)),
	}
	for _, a := range d.Answers {
		item := AnswerResponse{Answer: a.Text}
		if a.Author != nil {
			item.User = &AnswerAuthorResponse{Gender: a.Author.Gender, DateOfBirth: a.Author.DateOfBirth}
		}
		out.Answers = append(out.Answers, item)
	}
	return out
}

package handler

import (
	"thinkabout/internal/delivery/http/middleware"
	"thinkabout/internal/pkg/response"
	"thinkabout/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type AnswerHandler struct {
	uc usecase.AnswerUsecase
}

type answerRequest struct {
	Answer string `json:"answer" validate:"required"`
}

func NewAnswerHandler(uc usecase.AnswerUsecase) *AnswerHandler {
	return &AnswerHandler{uc: uc}
}

func (h *AnswerHandler) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	if r == nil {
		return
	}

	r.Post("/create/:id", auth, h.Create)
}

// Create responds with the share of answers, including this one, that
// match the submitted text as a bare number.
func (h *AnswerHandler) Create(c fiber.Ctx) error {
	usr, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := middleware.PathID(c)
	if err != nil {
		return err
	}

	var req answerRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	pct, err := h.uc.Submit(c.Context(), usr.ID, id, req.Answer)
	if err != nil {
		return mapQuestionUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, pct)
}

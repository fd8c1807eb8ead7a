package handler

import (
	"errors"

	"thinkabout/internal/delivery/http/dto"
	"thinkabout/internal/delivery/http/middleware"
	"thinkabout/internal/pkg/response"
	"thinkabout/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

const messageQuestionNotFound = "Question not found"

type QuestionHandler struct {
	uc usecase.QuestionUsecase
}

type questionRequest struct {
	Question string   `json:"question" validate:"required"`
	Choices  []string `json:"choices" validate:"required,min=1,dive,required"`
}

func NewQuestionHandler(uc usecase.QuestionUsecase) *QuestionHandler {
	return &QuestionHandler{uc: uc}
}

// RegisterRoutes mounts the question routes. Static paths are registered
// before /:id so they are not captured by it.
func (h *QuestionHandler) RegisterRoutes(r fiber.Router, auth, owner fiber.Handler) {
	if r == nil {
		return
	}

	r.Post("/create", auth, h.Create)
	r.Get("/all", h.List)
	r.Get("/me", auth, h.ListMine)
	r.Get("/isOwner/:id", auth, h.IsOwner)
	r.Get("/info/:id", auth, owner, h.Info)
	r.Put("/update/:id", auth, owner, h.Update)
	r.Delete("/delete/:id", auth, owner, h.Delete)
	r.Get("/:id", h.Get)
}

func (h *QuestionHandler) Create(c fiber.Ctx) error {
	usr, err := currentUser(c)
	if err != nil {
		return err
	}

	var req questionRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	q, err := h.uc.Create(c.Context(), usr.ID, usecase.QuestionInput{Text: req.Question, Choices: req.Choices})
	if err != nil {
		return mapQuestionUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, dto.NewQuestionResponse(q))
}

func (h *QuestionHandler) Get(c fiber.Ctx) error {
	id, err := middleware.PathID(c)
	if err != nil {
		return err
	}

	q, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return mapQuestionUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, dto.NewPublicQuestionResponse(q))
}

func (h *QuestionHandler) List(c fiber.Ctx) error {
	items, err := h.uc.List(c.Context())
	if err != nil {
		return mapQuestionUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, dto.NewQuestionListResponse(items))
}

func (h *QuestionHandler) ListMine(c fiber.Ctx) error {
	usr, err := currentUser(c)
	if err != nil {
		return err
	}

	items, err := h.uc.ListByOwner(c.Context(), usr.ID)
	if err != nil {
		return mapQuestionUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, dto.NewQuestionListResponse(items))
}

// IsOwner answers 403 {message:false} for non-owners rather than an error body.
func (h *QuestionHandler) IsOwner(c fiber.Ctx) error {
	usr, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := middleware.PathID(c)
	if err != nil {
		return err
	}

	owns, err := h.uc.IsOwner(c.Context(), usr.ID, id)
	if err != nil {
		return mapQuestionUsecaseError(err)
	}
	if !owns {
		return response.Message(c, fiber.StatusForbidden, false)
	}
	return response.Message(c, fiber.StatusOK, true)
}

func (h *QuestionHandler) Info(c fiber.Ctx) error {
	usr, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := middleware.PathID(c)
	if err != nil {
		return err
	}

	detail, err := h.uc.Detail(c.Context(), usr, id)
	if err != nil {
		return mapQuestionUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, dto.NewQuestionDetailResponse(detail))
}

func (h *QuestionHandler) Update(c fiber.Ctx) error {
	id, err := middleware.PathID(c)
	if err != nil {
		return err
	}

	var req questionRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	q, err := h.uc.Update(c.Context(), id, usecase.QuestionInput{Text: req.Question, Choices: req.Choices})
	if err != nil {
		return mapQuestionUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, dto.NewQuestionResponse(q))
}

func (h *QuestionHandler) Delete(c fiber.Ctx) error {
	id, err := middleware.PathID(c)
	if err != nil {
		return err
	}

	if err := h.uc.Delete(c.Context(), id); err != nil {
		return mapQuestionUsecaseError(err)
	}
	return response.Message(c, fiber.StatusOK, "Question deleted")
}

func mapQuestionUsecaseError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrQuestionNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, messageQuestionNotFound, nil, err)
	case errors.Is(err, usecase.ErrForbidden):
		return middleware.NewAppError(fiber.StatusForbidden, response.MessageForbidden, nil, err)
	case errors.Is(err, usecase.ErrSelfAnswer):
		return middleware.NewAppError(fiber.StatusForbidden, "You can't answer your question", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageInvalidData, nil, err)
	default:
		return internalError(err)
	}
}

package middleware

import (
	"errors"
	"strconv"

	"thinkabout/internal/pkg/response"
	"thinkabout/internal/pkg/validation"
	"thinkabout/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

const CtxQuestionKey = "question"

// OwnerMiddleware lets the request through only when the authenticated user
// owns the question named by the :id path parameter. It must run after
// AuthMiddleware.
type OwnerMiddleware struct {
	questions usecase.QuestionUsecase
}

func NewOwnerMiddleware(questions usecase.QuestionUsecase) *OwnerMiddleware {
	return &OwnerMiddleware{questions: questions}
}

func (m *OwnerMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		usr, ok := CurrentUser(c)
		if !ok {
			return NewAppError(fiber.StatusUnauthorized, response.MessageUnauthorized, nil, nil)
		}

		id, err := PathID(c)
		if err != nil {
			return err
		}

		q, err := m.questions.Authorize(c.Context(), usr.ID, id)
		if err != nil {
			switch {
			case errors.Is(err, usecase.ErrQuestionNotFound):
				return NewAppError(fiber.StatusNotFound, "Question not found", nil, err)
			case errors.Is(err, usecase.ErrForbidden):
				return NewAppError(fiber.StatusForbidden, response.MessageForbidden, nil, err)
			default:
				return NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
			}
		}

		c.Locals(CtxQuestionKey, q)
		return c.Next()
	}
}

// PathID parses the :id path parameter as a positive integer.
func PathID(c fiber.Ctx) (int64, error) {
	raw := c.Params("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, NewAppError(fiber.StatusBadRequest, response.MessageInvalidData, []validation.FieldError{
			{Field: "id", Rule: "int", Message: "must be a positive integer"},
		}, err)
	}
	return id, nil
}

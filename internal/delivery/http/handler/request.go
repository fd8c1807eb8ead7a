package handler

import (
	"thinkabout/internal/delivery/http/middleware"
	"thinkabout/internal/domain/user"
	"thinkabout/internal/pkg/response"
	"thinkabout/internal/pkg/validation"

	"github.com/gofiber/fiber/v3"
)

// bindBody decodes the JSON body into out and validates its struct tags.
func bindBody(c fiber.Ctx, out any) error {
	if err := c.Bind().Body(out); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageInvalidData, nil, err)
	}
	return validation.Struct(out)
}

func currentUser(c fiber.Ctx) (user.User, error) {
	usr, ok := middleware.CurrentUser(c)
	if !ok {
		return user.User{}, middleware.NewAppError(fiber.StatusUnauthorized, response.MessageUnauthorized, nil, nil)
	}
	return usr, nil
}

func internalError(err error) error {
	return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
}

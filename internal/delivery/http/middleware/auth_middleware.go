package middleware

import (
	"errors"
	"strings"

	"thinkabout/internal/domain/user"
	"thinkabout/internal/pkg/response"
	"thinkabout/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

const CtxUserKey = "user"

// AuthMiddleware resolves the bearer token to a user on every request.
type AuthMiddleware struct {
	auth usecase.AuthUsecase
}

func NewAuthMiddleware(auth usecase.AuthUsecase) *AuthMiddleware {
	return &AuthMiddleware{auth: auth}
}

func (m *AuthMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		token, ok := bearerTokenFromHeader(c.Get("Authorization"))
		if !ok {
			return NewAppError(fiber.StatusUnauthorized, response.MessageUnauthorized, nil, nil)
		}

		usr, err := m.auth.Authenticate(c.Context(), token)
		if err != nil {
			if errors.Is(err, usecase.ErrUnauthorized) {
				return NewAppError(fiber.StatusUnauthorized, response.MessageUnauthorized, nil, err)
			}
			return NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
		}

		c.Locals(CtxUserKey, usr)
		return c.Next()
	}
}

// CurrentUser returns the user stored by AuthMiddleware.
func CurrentUser(c fiber.Ctx) (user.User, bool) {
	usr, ok := c.Locals(CtxUserKey).(user.User)
	return usr, ok
}

func bearerTokenFromHeader(authHeader string) (string, bool) {
	authHeader = strings.TrimSpace(authHeader)
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return "", false
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}

	return token, true
}

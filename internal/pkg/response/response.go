package response

import "github.com/gofiber/fiber/v3"

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Message string      `json:"message"`
	Errors  interface{} `json:"errors,omitempty"`
}

// MessageResponse carries a confirmation or a boolean verdict.
type MessageResponse struct {
	Message interface{} `json:"message"`
}

const (
	MessageBadRequest          = "Bad request"
	MessageInvalidData         = "Invalid data"
	MessageUnauthorized        = "Unauthorized"
	MessageForbidden           = "Forbidden"
	MessageNotFound            = "Not found"
	MessageConflict            = "Conflict"
	MessageTooManyRequests     = "Too many requests"
	MessageInternalServerError = "Internal Server Error"
	MessageError               = "Error"
)

// Success writes data as the response body.
func Success(c fiber.Ctx, status int, data interface{}) error {
	return c.Status(normalizeStatus(status)).JSON(data)
}

func Message(c fiber.Ctx, status int, message interface{}) error {
	return c.Status(normalizeStatus(status)).JSON(MessageResponse{Message: message})
}

func Error(c fiber.Ctx, status int, message string, errs interface{}) error {
	st := normalizeStatus(status)
	if message == "" {
		message = DefaultMessageForStatus(st)
	}
	return c.Status(st).JSON(ErrorResponse{Message: message, Errors: errs})
}

func normalizeStatus(status int) int {
	if status < 100 || status > 599 {
		return fiber.StatusInternalServerError
	}
	return status
}

func DefaultMessageForStatus(status int) string {
	switch status {
	case fiber.StatusBadRequest:
		return MessageBadRequest
	case fiber.StatusUnauthorized:
		return MessageUnauthorized
	case fiber.StatusForbidden:
		return MessageForbidden
	case fiber.StatusNotFound:
		return MessageNotFound
	case fiber.StatusConflict:
		return MessageConflict
	case fiber.StatusTooManyRequests:
		return MessageTooManyRequests
	default:
		if status >= 500 {
			return MessageInternalServerError
		}
		return MessageError
	}
}

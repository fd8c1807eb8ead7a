package middleware

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

const HeaderRequestID = "X-Request-ID"

type AccessLogMiddleware struct {
	logger *log.Logger
}

func NewAccessLogMiddleware(logger *log.Logger) *AccessLogMiddleware {
	if logger == nil {
		logger = log.Default()
	}
	return &AccessLogMiddleware{logger: logger}
}

// Middleware logs one line per request. An incoming X-Request-ID is echoed
// back, otherwise a fresh one is generated.
func (m *AccessLogMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()

		rid := c.Get(HeaderRequestID)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Set(HeaderRequestID, rid)

		err := c.Next()

		// Errors are rendered by the error middleware further out, so the
		// status here may still be the default for failed requests.
		status := c.Response().StatusCode()
		if err != nil {
			status = statusFromError(err)
		}

		var userID int64
		if usr, ok := CurrentUser(c); ok {
			userID = usr.ID
		}

		m.logger.Printf(
			"HTTP access | rid=%s ip=%s method=%s path=%s status=%d latency=%s user=%d ua=%q",
			rid, c.IP(), c.Method(), c.OriginalURL(), status, time.Since(start), userID, c.Get("User-Agent"),
		)

		return err
	}
}

func statusFromError(err error) int {
	status, _, _ := normalizeError(err)
	return status
}

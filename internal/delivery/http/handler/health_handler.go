package handler

import (
	"context"
	"log"
	"time"

	"thinkabout/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

const Banner = "ThinkAbout API Online!"

type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db     Pinger
	logger *log.Logger
}

func NewHealthHandler(db Pinger, logger *log.Logger) *HealthHandler {
	if logger == nil {
		logger = log.Default()
	}
	return &HealthHandler{db: db, logger: logger}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/", h.Banner)
	r.Get("/health", h.Health)
}

func (h *HealthHandler) Banner(c fiber.Ctx) error {
	return c.SendString(Banner)
}

func (h *HealthHandler) Health(c fiber.Ctx) error {
	if h.db == nil {
		return response.Message(c, fiber.StatusServiceUnavailable, "Database unavailable")
	}

	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		h.logger.Printf("Health | database ping failed err=%v", err)
		return response.Message(c, fiber.StatusServiceUnavailable, "Database unavailable")
	}
	return response.Message(c, fiber.StatusOK, "ok")
}

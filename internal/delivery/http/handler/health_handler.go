package handler

import (
	"context"
	"time"

	"applytrack/internal/pkg/logger"
	"applytrack/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db  Pinger
	log *logger.Logger
}

func NewHealthHandler(db Pinger, log *logger.Logger) *HealthHandler {
	return &HealthHandler{db: db, log: log}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/health", h.Health)
}

func (h *HealthHandler) Health(c fiber.Ctx) error {
	if h.db == nil {
		return response.Success(c, fiber.StatusOK, response.MessageOK, fiber.Map{"database": "ok"})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		h.log.Warn("health check: database unreachable", "error", err)
		return response.Error(c, fiber.StatusServiceUnavailable, response.MessageServiceUnavailable, fiber.Map{"database": "unavailable"})
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, fiber.Map{"database": "ok"})
}

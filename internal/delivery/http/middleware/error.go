package middleware

import (
	"errors"
	"runtime/debug"

	"applytrack/internal/pkg/logger"
	"applytrack/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

// ErrorMiddleware renders returned errors and recovered panics as a
// SemanticResponse. Details of 5xx errors stay in the log.
type ErrorMiddleware struct {
	log *logger.Logger
}

func NewErrorMiddleware(log *logger.Logger) *ErrorMiddleware {
	return &ErrorMiddleware{log: log}
}

func (m *ErrorMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				m.log.Error("panic recovered",
					"panic", r,
					"path", c.Path(),
					"rid", c.Locals(CtxRequestIDKey),
					"stack", string(debug.Stack()),
				)
				err = response.Error(c, fiber.StatusInternalServerError, response.MessageInternalServerError, nil)
			}
		}()

		err = c.Next()
		if err == nil {
			return nil
		}

		status, msg := normalizeError(err)
		if status >= fiber.StatusInternalServerError {
			m.log.Error("request failed", "path", c.Path(), "rid", c.Locals(CtxRequestIDKey), "error", err)
		}
		return response.Error(c, status, msg, nil)
	}
}

func normalizeError(err error) (int, string) {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		status := fiberErr.Code
		if status <= 0 || status >= fiber.StatusInternalServerError {
			return fiber.StatusInternalServerError, response.MessageInternalServerError
		}
		return status, fiberErr.Message
	}

	return fiber.StatusInternalServerError, response.MessageInternalServerError
}

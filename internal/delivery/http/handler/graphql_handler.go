package handler

import (
	"errors"
	"strings"

	"applytrack/internal/delivery/graphql"
	"applytrack/internal/delivery/http/middleware"
	"applytrack/internal/pkg/logger"
	"applytrack/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

type GraphQLHandler struct {
	schema *graphql.Schema
	log    *logger.Logger
}

func NewGraphQLHandler(schema *graphql.Schema, log *logger.Logger) *GraphQLHandler {
	return &GraphQLHandler{schema: schema, log: log}
}

func (h *GraphQLHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/graphql", h.Execute)
}

// Execute answers 400 only when the envelope itself is unusable. Resolver
// failures are reported inside the errors array with status 200.
func (h *GraphQLHandler) Execute(c fiber.Ctx) error {
	var req graphql.Request
	if err := c.Bind().JSON(&req); err != nil {
		return response.GraphQLFailure(c, fiber.StatusBadRequest, "", graphql.CodeBadUserInput, "Malformed request body")
	}
	req.OperationName = strings.TrimSpace(req.OperationName)
	if req.OperationName == "" {
		return response.GraphQLFailure(c, fiber.StatusBadRequest, "", graphql.CodeBadUserInput, "operationName is required")
	}

	result, err := h.schema.Execute(c.Context(), middleware.IdentityFrom(c), req)
	if err != nil {
		if errors.Is(err, graphql.ErrUnknownOperation) {
			return response.GraphQLFailure(c, fiber.StatusBadRequest, req.OperationName, graphql.CodeBadUserInput, "Unknown operation "+req.OperationName)
		}

		code, msg := graphql.ErrorCode(err)
		if code == graphql.CodeInternal {
			h.log.Error("operation failed",
				"operation", req.OperationName,
				"rid", c.Locals(middleware.CtxRequestIDKey),
				"error", err,
			)
		}
		return response.GraphQLFailure(c, fiber.StatusOK, req.OperationName, code, msg)
	}

	return response.GraphQLData(c, req.OperationName, result)
}

package response

import "github.com/gofiber/fiber/v3"

// SemanticResponse is the envelope of the plain REST endpoints.
type SemanticResponse struct {
	Status  int         `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

const (
	MessageOK                  = "ok"
	MessageBadRequest          = "bad request"
	MessageNotFound            = "not found"
	MessageServiceUnavailable  = "service unavailable"
	MessageInternalServerError = "internal server error"
	MessageError               = "error"
)

func Success(c fiber.Ctx, status int, message string, data interface{}) error {
	st := normalizeStatus(status)
	return c.Status(st).JSON(SemanticResponse{Status: st, Message: normalizeMessage(message, st), Data: data})
}

func Error(c fiber.Ctx, status int, message string, data interface{}) error {
	st := normalizeStatus(status)
	return c.Status(st).JSON(SemanticResponse{Status: st, Message: normalizeMessage(message, st), Data: data})
}

// GraphQLResponse is the envelope of POST /graphql. Data is null whenever
// Errors is non-empty.
type GraphQLResponse struct {
	Data   interface{}    `json:"data"`
	Errors []GraphQLError `json:"errors,omitempty"`
}

type GraphQLError struct {
	Message    string            `json:"message"`
	Path       []string          `json:"path,omitempty"`
	Extensions map[string]string `json:"extensions,omitempty"`
}

func GraphQLData(c fiber.Ctx, operation string, result interface{}) error {
	return c.Status(fiber.StatusOK).JSON(GraphQLResponse{Data: map[string]interface{}{operation: result}})
}

func GraphQLFailure(c fiber.Ctx, status int, operation, code, message string) error {
	e := GraphQLError{Message: message, Extensions: map[string]string{"code": code}}
	if operation != "" {
		e.Path = []string{operation}
	}
	return c.Status(normalizeStatus(status)).JSON(GraphQLResponse{Errors: []GraphQLError{e}})
}

func normalizeStatus(status int) int {
	if status < 100 || status > 599 {
		return fiber.StatusInternalServerError
	}
	return status
}

func normalizeMessage(message string, status int) string {
	if message != "" {
		return message
	}
	switch {
	case status == fiber.StatusOK:
		return MessageOK
	case status == fiber.StatusBadRequest:
		return MessageBadRequest
	case status == fiber.StatusNotFound:
		return MessageNotFound
	case status == fiber.StatusServiceUnavailable:
		return MessageServiceUnavailable
	case status >= 500:
		return MessageInternalServerError
	default:
		return MessageError
	}
}

package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"applytrack/internal/domain/user"
	"applytrack/internal/pkg/logger"
	"applytrack/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticIdentifier struct {
	token    string
	identity *user.Identity
}

func (s staticIdentifier) Identify(token string) *user.Identity {
	if token == s.token {
		return s.identity
	}
	return nil
}

func TestBearerTokenFromHeader(t *testing.T) {
	cases := map[string]struct {
		header string
		token  string
		ok     bool
	}{
		"empty":        {"", "", false},
		"bearer":       {"Bearer abc", "abc", true},
		"lower scheme": {"bearer  abc ", "abc", true},
		"basic":        {"Basic abc", "", false},
		"no token":     {"Bearer   ", "", false},
		"no space":     {"Bearerabc", "", false},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			tok, ok := bearerTokenFromHeader(tc.header)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.token, tok)
		})
	}
}

func TestAuthMiddleware_OptionalIdentity(t *testing.T) {
	id := &user.Identity{UserID: uuid.New(), Email: "jane@example.com"}
	app := fiber.New()
	app.Use(NewAuthMiddleware(staticIdentifier{token: "good", identity: id}).Middleware())
	app.Get("/", func(c fiber.Ctx) error {
		if got := IdentityFrom(c); got != nil {
			return c.SendString(got.Email)
		}
		return c.SendString("anonymous")
	})

	for header, want := range map[string]string{
		"":            "anonymous",
		"Bearer bad":  "anonymous",
		"Bearer good": "jane@example.com",
	} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Equal(t, want, string(body))
	}
}

func TestErrorMiddleware(t *testing.T) {
	app := fiber.New()
	app.Use(NewAccessLogMiddleware(logger.Nop()).Middleware())
	app.Use(NewErrorMiddleware(logger.Nop()).Middleware())
	app.Get("/bad", func(fiber.Ctx) error {
		return fiber.NewError(fiber.StatusBadRequest, "bad thing")
	})
	app.Get("/wrapped", func(fiber.Ctx) error {
		return fmt.Errorf("decode body: %w", fiber.ErrUnprocessableEntity)
	})
	app.Get("/boom", func(fiber.Ctx) error {
		return errors.New("db password is hunter2")
	})
	app.Get("/panic", func(fiber.Ctx) error {
		panic("nil map")
	})

	cases := []struct {
		path    string
		status  int
		message string
	}{
		{"/bad", http.StatusBadRequest, "bad thing"},
		{"/wrapped", http.StatusUnprocessableEntity, fiber.ErrUnprocessableEntity.Message},
		{"/boom", http.StatusInternalServerError, response.MessageInternalServerError},
		{"/panic", http.StatusInternalServerError, response.MessageInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.path, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tc.path, nil)
			req.Header.Set("X-Request-ID", "rid-1")
			resp, err := app.Test(req)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tc.status, resp.StatusCode)
			assert.Equal(t, "rid-1", resp.Header.Get("X-Request-ID"))

			var body response.SemanticResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tc.status, body.Status)
			assert.Equal(t, tc.message, body.Message)
		})
	}
}

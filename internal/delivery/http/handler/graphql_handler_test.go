package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"applytrack/internal/delivery/graphql"
	"applytrack/internal/delivery/http/middleware"
	"applytrack/internal/domain/user"
	"applytrack/internal/pkg/logger"
	"applytrack/internal/pkg/response"
	"applytrack/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tokenTable map[string]*user.Identity

func (t tokenTable) Identify(token string) *user.Identity {
	return t[token]
}

func newGraphQLApp(t *testing.T, tokens tokenTable) *fiber.App {
	t.Helper()

	schema := graphql.NewSchema()
	schema.Query("whoami", func(_ context.Context, identity *user.Identity, _ json.RawMessage) (any, error) {
		if err := usecase.Authorize(identity); err != nil {
			return nil, err
		}
		return map[string]string{"email": identity.Email}, nil
	})
	schema.Mutation("echo", func(_ context.Context, _ *user.Identity, vars json.RawMessage) (any, error) {
		return vars, nil
	})
	schema.Mutation("explode", func(context.Context, *user.Identity, json.RawMessage) (any, error) {
		return nil, fmt.Errorf("insert: %w", errors.New("connection reset"))
	})

	log := logger.Nop()
	app := fiber.New()
	app.Use(middleware.NewErrorMiddleware(log).Middleware())
	app.Use(middleware.NewAuthMiddleware(tokens).Middleware())
	NewGraphQLHandler(schema, log).RegisterRoutes(app)
	return app
}

func postGraphQL(t *testing.T, app *fiber.App, body, token string) (int, response.GraphQLResponse, map[string]json.RawMessage) {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var env response.GraphQLResponse
	require.NoError(t, json.Unmarshal(raw, &env))

	var data struct {
		Data map[string]json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(raw, &data))
	return resp.StatusCode, env, data.Data
}

func TestGraphQLHandler_Data(t *testing.T) {
	app := newGraphQLApp(t, nil)

	status, env, data := postGraphQL(t, app, `{"operationName":"echo","query":"mutation echo { echo }","variables":{"x":1}}`, "")
	assert.Equal(t, http.StatusOK, status)
	assert.Empty(t, env.Errors)
	assert.JSONEq(t, `{"x":1}`, string(data["echo"]))
}

func TestGraphQLHandler_Identity(t *testing.T) {
	app := newGraphQLApp(t, tokenTable{"good": {UserID: uuid.New(), Email: "jane@example.com"}})

	status, env, data := postGraphQL(t, app, `{"operationName":"whoami"}`, "good")
	assert.Equal(t, http.StatusOK, status)
	assert.Empty(t, env.Errors)
	assert.JSONEq(t, `{"email":"jane@example.com"}`, string(data["whoami"]))

	for _, token := range []string{"", "expired"} {
		status, env, data = postGraphQL(t, app, `{"operationName":"whoami"}`, token)
		assert.Equal(t, http.StatusOK, status)
		assert.Nil(t, data)
		require.Len(t, env.Errors, 1)
		assert.Equal(t, graphql.CodeUnauthenticated, env.Errors[0].Extensions["code"])
		assert.Equal(t, []string{"whoami"}, env.Errors[0].Path)
	}
}

func TestGraphQLHandler_BadEnvelope(t *testing.T) {
	app := newGraphQLApp(t, nil)

	cases := map[string]string{
		"malformed":  `{"operationName":`,
		"missing op": `{"variables":{}}`,
		"blank op":   `{"operationName":"  "}`,
		"unknown op": `{"operationName":"dropDatabase"}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			status, env, _ := postGraphQL(t, app, body, "")
			assert.Equal(t, http.StatusBadRequest, status)
			require.Len(t, env.Errors, 1)
			assert.Equal(t, graphql.CodeBadUserInput, env.Errors[0].Extensions["code"])
		})
	}
}

func TestGraphQLHandler_InternalErrorIsHidden(t *testing.T) {
	app := newGraphQLApp(t, nil)

	status, env, _ := postGraphQL(t, app, `{"operationName":"explode"}`, "")
	assert.Equal(t, http.StatusOK, status)
	require.Len(t, env.Errors, 1)
	assert.Equal(t, graphql.CodeInternal, env.Errors[0].Extensions["code"])
	assert.NotContains(t, env.Errors[0].Message, "connection reset")
}

// Package graphql serves named GraphQL operations over a plain JSON
// envelope. The query document is not parsed; operationName selects the
// resolver and variables are its arguments.
package graphql

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"applytrack/internal/domain/user"
	"applytrack/internal/usecase"
)

type Kind string

const (
	KindQuery    Kind = "query"
	KindMutation Kind = "mutation"
)

const (
	CodeUnauthenticated = "UNAUTHENTICATED"
	CodeForbidden       = "FORBIDDEN"
	CodeNotFound        = "NOT_FOUND"
	CodeBadUserInput    = "BAD_USER_INPUT"
	CodeConflict        = "CONFLICT"
	CodeInternal        = "INTERNAL_SERVER_ERROR"
)

var ErrUnknownOperation = errors.New("unknown operation")

type Request struct {
	OperationName string          `json:"operationName"`
	Query         string          `json:"query,omitempty"`
	Variables     json.RawMessage `json:"variables,omitempty"`
}

// Resolver receives the caller identity, nil when the request carried no
// valid token, and the raw variables object.
type Resolver func(ctx context.Context, identity *user.Identity, vars json.RawMessage) (any, error)

type operation struct {
	kind    Kind
	resolve Resolver
}

type Schema struct {
	ops map[string]operation
}

func NewSchema() *Schema {
	return &Schema{ops: map[string]operation{}}
}

func (s *Schema) Query(name string, r Resolver) {
	s.register(name, KindQuery, r)
}

func (s *Schema) Mutation(name string, r Resolver) {
	s.register(name, KindMutation, r)
}

func (s *Schema) register(name string, kind Kind, r Resolver) {
	if _, dup := s.ops[name]; dup {
		panic(fmt.Sprintf("graphql: operation %q registered twice", name))
	}
	s.ops[name] = operation{kind: kind, resolve: r}
}

// Operations lists the registered operation names of the given kind, sorted.
func (s *Schema) Operations(kind Kind) []string {
	out := make([]string, 0, len(s.ops))
	for name, op := range s.ops {
		if op.kind == kind {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

func (s *Schema) Execute(ctx context.Context, identity *user.Identity, req Request) (any, error) {
	op, ok := s.ops[req.OperationName]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownOperation, req.OperationName)
	}
	return op.resolve(ctx, identity, req.Variables)
}

// ErrorCode maps a resolver error onto its extensions.code and the message
// shown to the client. Internal failures never expose their cause.
func ErrorCode(err error) (string, string) {
	switch {
	case errors.Is(err, usecase.ErrUnauthenticated):
		return CodeUnauthenticated, "You need to be logged in!"
	case errors.Is(err, usecase.ErrInvalidCredentials):
		return CodeUnauthenticated, "Incorrect credentials"
	case errors.Is(err, usecase.ErrForbidden):
		return CodeForbidden, "You can only modify your own records"
	case errors.Is(err, usecase.ErrNotFound):
		return CodeNotFound, "Not found"
	case errors.Is(err, usecase.ErrEmailAlreadyRegistered):
		return CodeConflict, "Email already registered"
	case errors.Is(err, usecase.ErrInvalidInput):
		return CodeBadUserInput, err.Error()
	default:
		return CodeInternal, "Internal server error"
	}
}

// decodeVars decodes vars into dst. Numbers stay json.Number so that dates
// given as epoch milliseconds keep their precision.
func decodeVars(vars json.RawMessage, dst any) error {
	vars = bytes.TrimSpace(vars)
	if len(vars) == 0 || bytes.Equal(vars, []byte("null")) {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(vars))
	dec.UseNumber()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("%w: variables: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

// Package client talks to the operation endpoint on behalf of a signed-in
// user and keeps a local cache of list query results.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"applytrack/internal/pkg/logger"

	fiberclient "github.com/gofiber/fiber/v3/client"
)

var ErrNotLoggedIn = errors.New("not logged in")

// OperationError is one entry of the response errors array.
type OperationError struct {
	Message    string            `json:"message"`
	Path       []string          `json:"path"`
	Extensions map[string]string `json:"extensions"`
}

func (e *OperationError) Error() string {
	if code := e.Code(); code != "" {
		return code + ": " + e.Message
	}
	return e.Message
}

func (e *OperationError) Code() string {
	if e == nil {
		return ""
	}
	return e.Extensions["code"]
}

type envelope struct {
	OperationName string `json:"operationName"`
	Query         string `json:"query"`
	Variables     any    `json:"variables,omitempty"`
}

type reply struct {
	Data   map[string]json.RawMessage `json:"data"`
	Errors []OperationError           `json:"errors"`
}

type Config struct {
	BaseURL  string
	Timeout  time.Duration
	CacheTTL time.Duration
}

type Client struct {
	http       *fiberclient.Client
	session    *Session
	cache      ResultCache
	reconciler *Reconciler
	ttl        time.Duration
	log        *logger.Logger
}

// New returns a client that caches list results in cache. A nil cache gets a
// fresh MemoryCache.
func New(cfg Config, cache ResultCache, log *logger.Logger) *Client {
	if cache == nil {
		cache = NewMemoryCache()
	}
	if log == nil {
		log = logger.Nop()
	}

	hc := fiberclient.New().SetBaseURL(strings.TrimRight(cfg.BaseURL, "/"))
	if cfg.Timeout > 0 {
		hc.SetTimeout(cfg.Timeout)
	}

	return &Client{
		http:       hc,
		session:    NewSession(cache),
		cache:      cache,
		reconciler: NewReconciler(cache, cfg.CacheTTL, log),
		ttl:        cfg.CacheTTL,
		log:        log,
	}
}

func (c *Client) Session() *Session {
	return c.session
}

// Do sends one named operation and decodes data[operation] into out. An
// errors entry in the reply is returned as *OperationError.
func (c *Client) Do(ctx context.Context, operation, query string, vars any, out any) error {
	raw, err := c.do(ctx, operation, query, vars)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s result: %w", operation, err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, operation, query string, vars any) (json.RawMessage, error) {
	req := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetJSON(envelope{OperationName: operation, Query: query, Variables: vars})
	if token := c.session.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}

	resp, err := req.Post("/graphql")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", operation, err)
	}
	defer resp.Close()

	var r reply
	dec := json.NewDecoder(bytes.NewReader(resp.Body()))
	if err := dec.Decode(&r); err != nil {
		return nil, fmt.Errorf("%s: decode reply (status %d): %w", operation, resp.StatusCode(), err)
	}
	if len(r.Errors) > 0 {
		e := r.Errors[0]
		return nil, &e
	}

	raw, ok := r.Data[operation]
	if !ok {
		return nil, fmt.Errorf("%s: reply carries no data", operation)
	}
	return raw, nil
}

// Query serves a list or object query from the cache when present and
// otherwise fetches and stores it.
func (c *Client) Query(ctx context.Context, operation, query string, vars any, out any) error {
	key := CacheKey(query, vars)
	found, err := c.cache.GetJSON(ctx, key, out)
	if err != nil {
		c.log.Warn("cached result unreadable, refetching", "operation", operation, "error", err)
	}
	if found && err == nil {
		return nil
	}
	return c.Refetch(ctx, operation, query, vars, out)
}

// Refetch always goes to the server and overwrites the cached entry.
func (c *Client) Refetch(ctx context.Context, operation, query string, vars any, out any) error {
	raw, err := c.do(ctx, operation, query, vars)
	if err != nil {
		return err
	}
	if err := c.cache.SetJSON(ctx, CacheKey(query, vars), raw, c.ttl); err != nil {
		c.log.Warn("store query result failed", "operation", operation, "error", err)
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(raw, out)
}

func (c *Client) ownerVars() (map[string]string, error) {
	if !c.session.LoggedIn() {
		return nil, ErrNotLoggedIn
	}
	p, err := c.session.Profile()
	if err != nil {
		return nil, err
	}
	return map[string]string{"_id": p.ID.String()}, nil
}

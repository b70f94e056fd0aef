package client

import (
	"context"
	"sync"
	"time"

	"applytrack/internal/pkg/jwt"
)

// Session holds the bearer token of the signed-in user. Tokens are decoded
// without verification; the server remains the authority on validity.
type Session struct {
	mu    sync.RWMutex
	token string
	now   func() time.Time
	cache ResultCache
}

func NewSession(cache ResultCache) *Session {
	return &Session{now: time.Now, cache: cache}
}

func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Session) Login(token string) {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
}

// Profile decodes the identity claims of the current token.
func (s *Session) Profile() (jwt.Payload, error) {
	c, err := jwt.ParseUnverified(s.Token())
	if err != nil {
		return jwt.Payload{}, err
	}
	return c.Data, nil
}

// LoggedIn reports whether a non-expired token is held. An expired token is
// dropped.
func (s *Session) LoggedIn() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.token == "" {
		return false
	}
	c, err := jwt.ParseUnverified(s.token)
	if err != nil {
		s.token = ""
		return false
	}
	if c.ExpiresAt == nil || !c.ExpiresAt.Time.After(s.now()) {
		s.token = ""
		return false
	}
	return true
}

// Logout forgets the token and every cached query result.
func (s *Session) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.token = ""
	s.mu.Unlock()

	if s.cache == nil {
		return nil
	}
	return s.cache.DeleteByPattern(ctx, queryKeyPrefix+"*")
}

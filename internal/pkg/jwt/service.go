package jwt

import (
	"errors"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)

// Payload is the identity carried under the "data" claim.
type Payload struct {
	ID        uuid.UUID `json:"_id"`
	Email     string    `json:"email"`
	FirstName string    `json:"firstName"`
}

type Claims struct {
	Data Payload `json:"data"`

	jwtlib.RegisteredClaims
}

type Service interface {
	Sign(p Payload) (string, error)
	Verify(token string) (Claims, error)
}

type HMACService struct {
	secret    []byte
	expiresIn time.Duration

	now func() time.Time
}

func NewHMACService(secret string, expiresIn time.Duration) *HMACService {
	return &HMACService{
		secret:    []byte(secret),
		expiresIn: expiresIn,
		now:       time.Now,
	}
}

// WithClock returns a copy of s that reads the time from now.
func (s *HMACService) WithClock(now func() time.Time) *HMACService {
	cp := *s
	cp.now = now
	return &cp
}

func (s *HMACService) Sign(p Payload) (string, error) {
	if len(s.secret) == 0 || s.expiresIn <= 0 || p.ID == uuid.Nil {
		return "", ErrTokenInvalid
	}

	now := s.now().UTC()
	c := Claims{
		Data: p,
		RegisteredClaims: jwtlib.RegisteredClaims{
			IssuedAt:  jwtlib.NewNumericDate(now),
			ExpiresAt: jwtlib.NewNumericDate(now.Add(s.expiresIn)),
			Subject:   p.ID.String(),
		},
	}

	return jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, c).SignedString(s.secret)
}

func (s *HMACService) Verify(token string) (Claims, error) {
	if token == "" || len(s.secret) == 0 {
		return Claims{}, ErrTokenInvalid
	}

	p := jwtlib.NewParser(
		jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}),
		jwtlib.WithExpirationRequired(),
		jwtlib.WithTimeFunc(s.now),
	)

	var c Claims
	tok, err := p.ParseWithClaims(token, &c, func(*jwtlib.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwtlib.ErrTokenExpired) {
			return Claims{}, ErrTokenExpired
		}
		return Claims{}, ErrTokenInvalid
	}
	if tok == nil || !tok.Valid || c.Data.ID == uuid.Nil {
		return Claims{}, ErrTokenInvalid
	}

	return c, nil
}

// ParseUnverified decodes the claims without checking the signature. Clients
// use it to read the profile and expiry of a token they already hold.
func ParseUnverified(token string) (Claims, error) {
	var c Claims
	if _, _, err := jwtlib.NewParser().ParseUnverified(token, &c); err != nil {
		return Claims{}, ErrTokenInvalid
	}
	return c, nil
}

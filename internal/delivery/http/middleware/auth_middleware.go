package middleware

import (
	"strings"

	"applytrack/internal/domain/user"

	"github.com/gofiber/fiber/v3"
)

const CtxIdentityKey = "identity"

type Identifier interface {
	Identify(token string) *user.Identity
}

// AuthMiddleware resolves the caller from the bearer token when one is
// present. It never rejects a request; operations decide what needs an identity.
type AuthMiddleware struct {
	auth Identifier
}

func NewAuthMiddleware(auth Identifier) *AuthMiddleware {
	return &AuthMiddleware{auth: auth}
}

func (m *AuthMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		token, ok := bearerTokenFromHeader(c.Get("Authorization"))
		if ok && m.auth != nil {
			if identity := m.auth.Identify(token); identity.Valid() {
				c.Locals(CtxIdentityKey, identity)
			}
		}
		return c.Next()
	}
}

// IdentityFrom returns the identity stored by AuthMiddleware, or nil.
func IdentityFrom(c fiber.Ctx) *user.Identity {
	identity, _ := c.Locals(CtxIdentityKey).(*user.Identity)
	return identity
}

func bearerTokenFromHeader(authHeader string) (string, bool) {
	authHeader = strings.TrimSpace(authHeader)
	if authHeader == "" {
		return "", false
	}

	scheme, token, found := strings.Cut(authHeader, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return "", false
	}
	return token, true
}

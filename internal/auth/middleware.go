package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/airquality-service/internal/domain"
	apperrors "github.com/spec-kit/airquality-service/pkg/util"
)

const identityKey = "auth_identity"

// Middleware verifies the session cookie and loads the caller identity.
type Middleware struct {
	tokens *TokenManager
}

// NewMiddleware constructs middleware.
func NewMiddleware(tokens *TokenManager) *Middleware {
	return &Middleware{tokens: tokens}
}

// Handle enforces authentication for protected routes. Missing, malformed
// and expired tokens all produce the same unauthenticated response.
func (m *Middleware) Handle(c *fiber.Ctx) error {
	token := SessionTokenFromRequest(c)
	if token == "" {
		return apperrors.NewUnauthorized("authentication required")
	}

	identity, err := m.tokens.Verify(token)
	if err != nil || identity == nil {
		return apperrors.NewUnauthorized("authentication required")
	}

	c.Locals(identityKey, identity)
	return c.Next()
}

// IdentityFromContext retrieves the verified caller identity.
func IdentityFromContext(c *fiber.Ctx) (*domain.Identity, bool) {
	val := c.Locals(identityKey)
	if val == nil {
		return nil, false
	}
	identity, ok := val.(*domain.Identity)
	return identity, ok
}

// RequireAdmin rejects non-admin callers. Role membership is checked against
// the closed enumeration, never by string comparison at call sites.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, ok := IdentityFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if !identity.IsAdmin() {
			return apperrors.NewForbidden("admin required")
		}
		return c.Next()
	}
}

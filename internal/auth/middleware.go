package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/store-rating-service/internal/domain"
	apperrors "github.com/spec-kit/store-rating-service/pkg/util"
)

const identityKey = "auth_identity"

// AuthMiddleware authenticates bearer tokens on protected routes. The identity
// it stores is built from the verified claims only; there is no storage lookup
// per request, so a role change rides out the remaining token lifetime.
type AuthMiddleware struct {
	tokens *TokenManager
}

// NewAuthMiddleware constructs middleware around an injected token manager.
func NewAuthMiddleware(tokens *TokenManager) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

// Handle enforces authentication for protected routes.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return apperrors.NewUnauthorized("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthorized("invalid authorization header")
	}

	claims, err := m.tokens.Parse(parts[1])
	if err != nil {
		switch {
		case errors.Is(err, ErrTokenExpired):
			return apperrors.NewUnauthorized("token expired")
		case errors.Is(err, ErrTokenInvalidSignature):
			return apperrors.NewUnauthorized("invalid token signature")
		default:
			return apperrors.NewUnauthorized("invalid token")
		}
	}

	identity := claims.Identity()
	c.Locals(identityKey, identity)
	return c.Next()
}

// IdentityFromContext retrieves the authenticated identity.
func IdentityFromContext(c *fiber.Ctx) (domain.Identity, bool) {
	val := c.Locals(identityKey)
	if val == nil {
		return domain.Identity{}, false
	}
	identity, ok := val.(domain.Identity)
	return identity, ok
}

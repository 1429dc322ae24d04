package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/store-rating-service/internal/domain"
	apperrors "github.com/spec-kit/store-rating-service/pkg/util"
)

// Authorize is the single role evaluation point: it reports whether the
// identity's role belongs to the allowed set. Pure, no I/O; callers run it only
// after authentication has succeeded.
func Authorize(identity domain.Identity, allowed map[domain.Role]struct{}) error {
	if len(allowed) == 0 {
		return nil
	}
	if _, ok := allowed[identity.Role]; !ok {
		return apperrors.NewForbidden("insufficient role")
	}
	return nil
}

// RoleSet builds an allowed-role set from role values.
func RoleSet(roles ...domain.Role) map[domain.Role]struct{} {
	set := make(map[domain.Role]struct{}, len(roles))
	for _, role := range roles {
		set[role] = struct{}{}
	}
	return set
}

// RequireRoles returns middleware gating a route on the given allowed-role
// set. Routes declare their set once at registration; handlers never compare
// role strings themselves.
func RequireRoles(allowed ...domain.Role) fiber.Handler {
	allowedSet := RoleSet(allowed...)

	return func(c *fiber.Ctx) error {
		identity, ok := IdentityFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if err := Authorize(identity, allowedSet); err != nil {
			return err
		}
		return c.Next()
	}
}

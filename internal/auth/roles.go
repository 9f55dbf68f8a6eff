package auth

import (
	"github.com/gofiber/fiber/v2"

	apperrors "github.com/spec-kit/user-directory/pkg/util"
)

// RequireRole ensures the caller holds one of the allowed roles.
func RequireRole(allowed ...string) fiber.Handler {
	allowedSet := make(map[string]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		identity, ok := IdentityFromContext(c)
		if !ok || !identity.Authenticated {
			return apperrors.NewUnauthorized("Authentication required",
				"This endpoint requires authentication. Please provide an API key.")
		}
		if len(allowedSet) == 0 {
			return c.Next()
		}
		if _, exists := allowedSet[identity.Role]; !exists {
			return apperrors.NewForbidden("This endpoint requires elevated privileges")
		}
		return c.Next()
	}
}

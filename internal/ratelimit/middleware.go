package ratelimit

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/user-directory/internal/auth"
	apperrors "github.com/spec-kit/user-directory/pkg/util"
)

// Middleware enforces the sliding window for every caller except system
// identities. Store failures are logged and the request allowed: the limiter
// must never take the API down.
func Middleware(store Store, limit int, window time.Duration, logger *zap.Logger) fiber.Handler {
	windowLabel := fmt.Sprintf("%g minutes", window.Minutes())

	return func(c *fiber.Ctx) error {
		identity, ok := auth.IdentityFromContext(c)
		if ok && identity.Role == "system" {
			return c.Next()
		}

		key := "ip_" + c.IP()
		if ok && identity.Authenticated {
			key = "user_" + strconv.Itoa(identity.ID)
		}

		now := time.Now()
		result, err := store.Take(c.Context(), key, now)
		if err != nil {
			logger.Error("rate limit store failure", zap.String("key", key), zap.Error(err))
			return c.Next()
		}

		if !result.Allowed {
			retryAfter := int(result.RetryAfter.Seconds() + 0.999)
			c.Set("Retry-After", strconv.Itoa(retryAfter))
			return apperrors.NewRateLimited(
				fmt.Sprintf("Rate limit exceeded. Try again in %d seconds.", retryAfter),
				retryAfter, limit, windowLabel)
		}

		c.Set("X-RateLimit-Limit", strconv.Itoa(limit))
		c.Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
		c.Set("X-RateLimit-Reset", result.Reset.UTC().Format(time.RFC3339))
		return c.Next()
	}
}

package auth

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	apperrors "github.com/spec-kit/user-directory/pkg/util"
)

const identityKey = "auth_identity"

// Identity represents the resolved caller context.
type Identity struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	Role          string `json:"role"`
	Authenticated bool   `json:"authenticated"`
}

// Built-in API keys. Real deployments add one more via config.
var keyIdentities = map[string]Identity{
	"demo-key-123":       {ID: 1, Name: "Demo User", Role: "user"},
	"test-key-456":       {ID: 2, Name: "Test User", Role: "tester"},
	"jenkins-build-key":  {ID: 3, Name: "Jenkins CI/CD", Role: "system"},
	"ci-cd-pipeline-key": {ID: 4, Name: "CI/CD Pipeline", Role: "system"},
}

// AuthMiddleware resolves caller identities from API keys.
type AuthMiddleware struct {
	extraKey   string
	production bool
	logger     *zap.Logger
}

// NewAuthMiddleware constructs middleware. extraKey is the optional
// env-configured key; it resolves to an admin identity.
func NewAuthMiddleware(extraKey string, production bool, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{extraKey: extraKey, production: production, logger: logger}
}

// Handle resolves the caller identity. Outside production, requests without a
// key proceed with guest access.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	apiKey := c.Get("x-api-key")
	if apiKey == "" {
		apiKey = c.Query("api_key")
	}

	if apiKey == "" {
		if m.production {
			return apperrors.NewUnauthorized("Authentication required",
				"Please provide an API key in x-api-key header or api_key query parameter")
		}
		m.logger.Warn("no API key provided, proceeding with guest access")
		c.Locals(identityKey, Identity{ID: 0, Name: "Guest User", Role: "guest"})
		return c.Next()
	}

	identity, ok := m.resolve(apiKey)
	if !ok {
		return apperrors.NewUnauthorized("Invalid API key", "The provided API key is not valid")
	}
	identity.Authenticated = true

	m.logger.Debug("authenticated request",
		zap.String("caller", identity.Name),
		zap.String("role", identity.Role))
	c.Locals(identityKey, identity)
	return c.Next()
}

func (m *AuthMiddleware) resolve(apiKey string) (Identity, bool) {
	if identity, ok := keyIdentities[apiKey]; ok {
		return identity, true
	}
	if m.extraKey != "" && apiKey == m.extraKey {
		return Identity{ID: 5, Name: "API Admin", Role: "admin"}, true
	}
	return Identity{}, false
}

// IdentityFromContext retrieves the resolved caller identity.
func IdentityFromContext(c *fiber.Ctx) (Identity, bool) {
	val := c.Locals(identityKey)
	if val == nil {
		return Identity{}, false
	}
	identity, ok := val.(Identity)
	return identity, ok
}

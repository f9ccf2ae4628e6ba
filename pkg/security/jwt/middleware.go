package jwt

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/jobboard/pkg/auth"
)

const identityKey = "identity"

// NewAuthMiddleware returns a Fiber middleware that validates Bearer JWT (HS256).
// On success stores auth.Identity into c.Locals.
func NewAuthMiddleware(verifier auth.TokenVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"message": "missing Authorization header"})
		}
		// Support both "Bearer <token>" and "<token>" (no prefix).
		tokenStr := strings.TrimSpace(authHeader)
		if parts := strings.SplitN(tokenStr, " ", 2); len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			tokenStr = strings.TrimSpace(parts[1])
		}
		if tokenStr == "" {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"message": "empty token"})
		}
		identity, err := verifier.Verify(tokenStr)
		if err != nil {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"message": "invalid or expired token"})
		}
		c.Locals(identityKey, identity)
		return c.Next()
	}
}

// RequireRole rejects callers whose token carries another role.
// Must run after NewAuthMiddleware.
func RequireRole(role auth.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, _ := IdentityFrom(c)
		if err := identity.Require(role); err != nil {
			if errors.Is(err, auth.ErrUnauthorized) {
				return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"message": "authentication required"})
			}
			return c.Status(http.StatusForbidden).JSON(fiber.Map{"message": "only " + string(role) + " accounts can do this"})
		}
		return c.Next()
	}
}

// IdentityFrom returns the identity stored by NewAuthMiddleware.
func IdentityFrom(c *fiber.Ctx) (auth.Identity, bool) {
	identity, ok := c.Locals(identityKey).(auth.Identity)
	return identity, ok
}

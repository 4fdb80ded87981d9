package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// AuthRequired verifies the bearer token and stores the caller's
// identity in request locals.
func AuthRequired(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			return errUnauthorized(c, "missing authorization header")
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return errUnauthorized(c, "authorization header must be a bearer token")
		}

		claims, err := deps.Tokens.Verify(parts[1])
		if err != nil {
			return errUnauthorized(c, "invalid or expired token")
		}

		c.Locals("userID", claims.UserID)
		c.Locals("role", claims.Role)
		return c.Next()
	}
}

// RequireRole rejects callers whose token does not carry the given
// role. Must run after AuthRequired.
func RequireRole(role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if r, _ := c.Locals("role").(string); r != role {
			return errForbidden(c, "insufficient role")
		}
		return c.Next()
	}
}

func callerID(c *fiber.Ctx) string {
	id, _ := c.Locals("userID").(string)
	return id
}

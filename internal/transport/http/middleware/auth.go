package middleware

import (
	"strings"

	"github.com/TonyDastan/workwave/internal/core/ports"
	"github.com/TonyDastan/workwave/internal/domain"
	"github.com/gofiber/fiber/v2"
)

const (
	localUserID   = "user_id"
	localUserRole = "user_role"
)

// Auth extracts and verifies the bearer token, placing the caller identity
// into request locals.
func Auth(auth ports.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := BearerToken(c)
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "authentication required",
			})
		}

		actor, err := auth.VerifyToken(token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid or expired token",
			})
		}

		c.Locals(localUserID, actor.ID)
		c.Locals(localUserRole, actor.Role)
		return c.Next()
	}
}

// RequireRole allows the request through only for the listed roles. Must run
// after Auth.
func RequireRole(roles ...domain.UserRole) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals(localUserRole).(domain.UserRole)
		for _, allowed := range roles {
			if role == allowed {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "insufficient permissions",
		})
	}
}

// BearerToken pulls the token out of the Authorization header.
func BearerToken(c *fiber.Ctx) string {
	auth := c.Get("Authorization")
	const prefix = "Bearer "
	if strings.HasPrefix(auth, prefix) {
		return auth[len(prefix):]
	}
	return ""
}

// CurrentActor returns the authenticated caller stored by Auth.
func CurrentActor(c *fiber.Ctx) ports.Actor {
	id, _ := c.Locals(localUserID).(uint)
	role, _ := c.Locals(localUserRole).(domain.UserRole)
	return ports.Actor{ID: id, Role: role}
}

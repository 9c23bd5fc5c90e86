package middleware

import (
	"github.com/gofiber/fiber/v2"
)

// RequireAdmin restricts a route to administrator accounts. Must run after
// RequireAuth.
func (m *Middleware) RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := GetUser(c)
		if user == nil {
			return unauthorized(c, "Authentication required")
		}

		if !user.IsAdmin() {
			m.log.TraceFromContext(c.UserContext()).Function("RequireAdmin").
				Info("non-admin rejected", "userID", user.ID, "role", user.Role)
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"success": false,
				"message": "Administrator access required",
			})
		}

		return c.Next()
	}
}

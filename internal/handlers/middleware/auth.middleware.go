package middleware

import (
	"strings"

	"sanitrack/internal/models"

	"github.com/gofiber/fiber/v2"
)

// UserKeyFiber is the Fiber locals key holding the authenticated *models.User.
const UserKeyFiber = "User"

// RequireAuth validates the Bearer token and loads the account behind it.
// Tokens for deactivated accounts are rejected even before they expire.
func (m *Middleware) RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		log := m.log.TraceFromContext(c.UserContext()).Function("RequireAuth")

		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return unauthorized(c, "Authorization header required")
		}

		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) != 2 || !strings.EqualFold(tokenParts[0], "bearer") {
			return unauthorized(c, "Invalid authorization header format")
		}

		claims, err := m.tokenService.Validate(tokenParts[1])
		if err != nil {
			log.Info("token validation failed", "error", err.Error())
			return unauthorized(c, "Invalid token")
		}

		user, err := m.userRepo.GetByID(c.UserContext(), claims.UserID)
		if err != nil {
			log.Info("token user not found", "userID", claims.UserID)
			return unauthorized(c, "Invalid token")
		}

		if !user.IsActive {
			log.Info("deactivated user rejected", "userID", user.ID)
			return unauthorized(c, "Account is deactivated")
		}

		c.Locals(UserKeyFiber, user)

		return c.Next()
	}
}

// GetUser retrieves the authenticated user from Fiber context. Nil when the
// route is not behind RequireAuth.
func GetUser(c *fiber.Ctx) *models.User {
	if user, ok := c.Locals(UserKeyFiber).(*models.User); ok {
		return user
	}
	return nil
}

func unauthorized(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"success": false,
		"message": message,
	})
}

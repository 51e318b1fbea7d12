package middleware

import (
	"github.com/gofiber/fiber/v2"
)

// RequireAdmin gates staff-only routes on the resolved principal.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !GetPrincipal(c).IsAdmin() {
			return Unauthorized("Unauthorized")
		}
		return c.Next()
	}
}

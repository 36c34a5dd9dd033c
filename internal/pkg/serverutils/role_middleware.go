package serverutils

import (
	"github.com/gofiber/fiber/v2"
)

// RequireRole gates a route group on the verified role claim. It must run
// after JwtMiddleware; the advisory session_role set by the edge guard is
// never consulted here.
func RequireRole(roles ...string) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		role, _ := ctx.Locals("role").(string)
		for _, allowed := range roles {
			if role == allowed {
				return ctx.Next()
			}
		}
		return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{"detail": "Not enough permissions"})
	}
}

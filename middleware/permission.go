package middleware

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// RequireRole allows the request through when the authenticated user holds
// one of the given roles. The scheduling and record-keeping cores are
// authorization-agnostic; these checks happen at the boundary only.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("role").(string)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "User role not found in context",
			})
		}

		for _, allowed := range roles {
			if role == allowed {
				return c.Next()
			}
		}

		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "You don't have permission to perform this action",
		})
	}
}

// RequireSelfOrAdmin allows admins through, and other users only when the
// :id route parameter is their own user ID.
func RequireSelfOrAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals("role").(string)
		if role == "admin" {
			return c.Next()
		}

		userID, ok := c.Locals("userID").(uint)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "User ID not found in context",
			})
		}

		paramID, err := strconv.ParseUint(c.Params("id"), 10, 64)
		if err != nil || uint(paramID) != userID {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "You can only access your own account",
			})
		}

		return c.Next()
	}
}

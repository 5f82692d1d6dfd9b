package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/medilink-hq/medilink-api/roles"
)

// CurrentRole reads the effective role resolved by Protected.
func CurrentRole(c *fiber.Ctx) (roles.Role, bool) {
	role, ok := c.Locals("role").(roles.Role)
	return role, ok
}

// CurrentUserID reads the authenticated user id, 0 for anonymous callers.
func CurrentUserID(c *fiber.Ctx) uint {
	id, _ := c.Locals("userID").(uint)
	return id
}

// Verified is the verification gate: self-service roles always pass, every
// other role requires an approved account. Re-evaluated on each request so a
// mid-session demotion bites immediately.
func Verified() fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := CurrentRole(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "No resolved role",
			})
		}
		verified, _ := c.Locals("verified").(bool)
		if !roles.IsAccessGranted(role, verified) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Account is pending approval",
			})
		}
		return c.Next()
	}
}

// RequireRole rejects callers whose effective role is not in the allowed set.
func RequireRole(allowed ...roles.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := CurrentRole(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "No resolved role",
			})
		}
		for _, a := range allowed {
			if role == a {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error":       "Access denied for role " + role.String(),
			"redirect_to": roles.RouteForRole(role),
		})
	}
}

// RequireArea guards a dashboard area. The expected area is re-derived from
// the current resolved role on every request; a mismatch returns the landing
// route the client must hard-redirect to, since a stale route is a cross-role
// data-leak vector.
func RequireArea(area roles.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := CurrentRole(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "No resolved role",
			})
		}
		if role != area {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error":       "Wrong area for role " + role.String(),
				"redirect_to": roles.RouteForRole(role),
			})
		}
		return c.Next()
	}
}

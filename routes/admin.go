package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/medilink-hq/medilink-api/controllers"
	"github.com/medilink-hq/medilink-api/middleware"
	"github.com/medilink-hq/medilink-api/roles"
)

// SetupAdminRoutes configures the admin verification queue and overrides
func SetupAdminRoutes(app *fiber.App) {
	admin := app.Group("/admin", middleware.Protected(), middleware.RequireRole(roles.RoleAdmin))

	admin.Get("/users/pending", controllers.ListPendingUsers)
	admin.Patch("/users/:id/approve", controllers.ApproveUser)
	admin.Delete("/users/:id/reject", controllers.RejectUser)

	admin.Patch("/appointments/:id/status", controllers.AdminChangeStatus)
}

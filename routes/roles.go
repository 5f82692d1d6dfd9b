package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/medilink-hq/medilink-api/controllers"
	"github.com/medilink-hq/medilink-api/middleware"
)

// SetupRoleRoutes configures role listing, switching and landing resolution
func SetupRoleRoutes(app *fiber.App) {
	role := app.Group("/roles", middleware.Protected())

	role.Get("/me", controllers.ListMyRoles)
	role.Post("/switch", controllers.SwitchRole)
	role.Get("/landing", controllers.Landing)
}

package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/medilink-hq/medilink-api/controllers"
	"github.com/medilink-hq/medilink-api/middleware"
)

// SetupNotificationRoutes configures the notification inbox routes
func SetupNotificationRoutes(app *fiber.App) {
	notification := app.Group("/notifications", middleware.Protected())

	notification.Get("/", controllers.GetNotifications)
	notification.Patch("/:id/read", controllers.MarkNotificationRead)
}

package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/medilink-hq/medilink-api/controllers"
	"github.com/medilink-hq/medilink-api/middleware"
	"github.com/medilink-hq/medilink-api/roles"
)

// SetupAppointmentRoutes configures all appointment related routes
func SetupAppointmentRoutes(app *fiber.App) {
	appointment := app.Group("/appointments")

	// Booking accepts both authenticated patients and no-account guests.
	appointment.Post("/", middleware.OptionalAuth(), controllers.BookAppointment)

	appointment.Get("/", middleware.Protected(), middleware.Verified(), middleware.RequireRole(roles.RoleAdmin), controllers.GetAllAppointments)
	appointment.Get("/mine", middleware.Protected(), middleware.Verified(), controllers.GetMyAppointments)
	appointment.Get("/schedule", middleware.Protected(), middleware.Verified(), middleware.RequireArea(roles.RoleDoctor), controllers.GetSchedule)
	appointment.Get("/:id", middleware.Protected(), middleware.Verified(), controllers.GetAppointment)

	appointment.Patch("/:id/status", middleware.Protected(), middleware.Verified(), controllers.ChangeStatus)
	appointment.Patch("/:id/reschedule", middleware.Protected(), middleware.Verified(), middleware.RequireRole(roles.RoleDoctor), controllers.Reschedule)

	appointment.Get("/:id/documents/:kind", middleware.Protected(), middleware.Verified(), controllers.FetchDocument)
	appointment.Post("/:id/documents/:kind/regenerate", middleware.Protected(), middleware.RequireRole(roles.RoleAdmin), controllers.RegenerateDocument)
}

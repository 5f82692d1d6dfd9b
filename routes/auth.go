package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/medilink-hq/medilink-api/controllers"
	"github.com/medilink-hq/medilink-api/middleware"
)

// SetupAuthRoutes configures all authentication related routes
func SetupAuthRoutes(app *fiber.App) {
	auth := app.Group("/auth")

	// Public routes
	auth.Post("/register", controllers.Register)
	auth.Post("/login", controllers.Login)
	auth.Post("/refresh", controllers.RefreshToken)

	// Protected routes
	auth.Get("/me", middleware.Protected(), controllers.GetUserProfile)
	auth.Post("/logout", middleware.Protected(), controllers.Logout)
	auth.Patch("/password", middleware.Protected(), controllers.UpdatePassword)
	auth.Patch("/me/avatar", middleware.Protected(), controllers.UploadAvatar)
}

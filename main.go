package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"

	"github.com/medilink-hq/medilink-api/controllers"
	"github.com/medilink-hq/medilink-api/cron"
	"github.com/medilink-hq/medilink-api/db"
	"github.com/medilink-hq/medilink-api/documents"
	"github.com/medilink-hq/medilink-api/logger"
	"github.com/medilink-hq/medilink-api/redis"
	"github.com/medilink-hq/medilink-api/routes"
	"github.com/medilink-hq/medilink-api/storage"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Error loading .env file. Using environment variables directly.")
	}
	logger.Init()

	app := fiber.New()
	db.Init()
	redis.InitRedis()

	store, err := storage.NewMinioStore()
	if err != nil {
		log.Fatal("Failed to initialize document store: ", err)
	}
	pipeline := documents.NewPipeline(documents.NewHTTPRenderer(), store, documents.NewURLWriter(db.DB))
	controllers.SetDocumentPipeline(pipeline)

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))

	routes.SetupAuthRoutes(app)
	routes.SetupRoleRoutes(app)
	routes.SetupAppointmentRoutes(app)
	routes.SetupNotificationRoutes(app)
	routes.SetupAdminRoutes(app)

	cron.StartCronJobs()

	if err := app.Listen(":8000"); err != nil {
		log.Fatal("Server stopped: ", err)
	}
}

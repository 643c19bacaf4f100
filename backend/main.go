package main

import (
	"log"

	"lifelessons/backend/config"
	"lifelessons/backend/middleware"
	"lifelessons/backend/payments"
	"lifelessons/backend/routes"
	"lifelessons/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	// Initialize database
	db, err := utils.InitDB(cfg)
	if err != nil {
		log.Fatalf("Error initializing database: %v", err)
	}
	if err := utils.Migrate(db); err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}

	// Initialize logger
	logger := utils.InitLogger()

	// Create Fiber app
	app := fiber.New()

	// Middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(middleware.LoggingMiddleware(logger))

	// Payment provider
	checkout := payments.NewStripeCheckout(cfg.StripeSecretKey, cfg.SiteDomain)

	// Setup routes
	routes.SetupRoutes(app, db, cfg, checkout)

	// Start server
	log.Fatal(app.Listen(":" + cfg.ServerPort))
}

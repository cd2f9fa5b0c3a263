package main

import (
	"log"

	"github.com/documinds/documinds/api/internal/config"
	"github.com/documinds/documinds/api/internal/crypto"
	"github.com/documinds/documinds/api/internal/database"
	"github.com/documinds/documinds/api/internal/redis"
	"github.com/documinds/documinds/api/internal/routes"
	"github.com/documinds/documinds/api/internal/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	if err := database.Connect(cfg.DatabaseURL); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Initialize Redis
	if err := redis.Initialize(cfg); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	// Initialize at-rest encryption for integration secrets
	if err := crypto.Initialize(); err != nil {
		log.Fatalf("Failed to initialize encryption: %v", err)
	}
	if !crypto.IsEnabled() {
		log.Println("ENCRYPTION_KEY not set, integration secrets will be stored in plain text")
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CorsOrigins,
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin,Content-Type,Accept,Authorization,X-Api-Key",
		AllowCredentials: true,
	}))

	// Setup routes
	routes.Setup(app, cfg)

	// Initialize WebSocket hub
	websocket.GetHub()

	// Start Redis subscriber for WebSocket messages
	go websocket.StartRedisSubscriber(cfg)

	// Start server
	log.Printf("Server starting on port %s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}
	return c.Status(code).JSON(fiber.Map{
		"status":  "error",
		"message": err.Error(),
	})
}

package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"go.uber.org/zap"
)

func SetupRoutes(app *fiber.App, handler *Handler, frontendURL string, log *zap.Logger) {
	// Middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: allowedOrigins(handler.environment, frontendURL),
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Content-Type,Authorization,X-Requested-With",
	}))

	app.Use(logger.New(logger.Config{
		Format:     "${time} ${pid} ${locals:requestid} ${status} - ${method} ${path}\n",
		TimeFormat: time.RFC3339,
	}))

	// API routes
	api := app.Group("/api")

	api.Get("/health", handler.GetHealth)
	api.Get("/weather", handler.GetWeather)
	api.Post("/chat", handler.PostChat)
	api.Post("/weather-chat", handler.PostWeatherChat)

	// 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error":   "Not found",
			"message": "Route " + c.Path() + " not found",
		})
	})
}

// allowedOrigins is permissive in development and allow-listed in
// production when a frontend URL is configured.
func allowedOrigins(environment, frontendURL string) string {
	if environment == "production" && frontendURL != "" {
		return frontendURL
	}
	if environment == "production" {
		return "*"
	}
	return "http://localhost:3000,http://127.0.0.1:3000,http://localhost:5173"
}

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"skysense/internal/api"
	"skysense/internal/config"
	"skysense/internal/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func main() {
	// Initialize logger
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	zap.ReplaceGlobals(logger)
	logger.Info("Starting SkySense weather-chat service")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	// Initialize services
	weatherService := services.NewWeatherService(cfg, logger)
	aiService := services.NewAIService(cfg, logger)

	logger.Info("Service configuration",
		zap.String("environment", cfg.Server.Environment),
		zap.Bool("weather_configured", weatherService.IsConfigured()),
		zap.Bool("ai_configured", aiService.IsConfigured()))

	if !weatherService.IsConfigured() {
		logger.Warn("OPENWEATHER_API_KEY is not set, weather endpoints will refuse requests")
	}
	if !aiService.IsConfigured() {
		logger.Warn("GEMINI_API_KEY is not set, chat endpoints will refuse requests")
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		ErrorHandler: errorHandler,
	})

	// Setup handlers and routes
	handler := api.NewHandler(weatherService, aiService, cfg.Server.Environment, logger)
	api.SetupRoutes(app, handler, cfg.Server.FrontendURL, logger)

	// Start server in goroutine
	go func() {
		addr := ":" + cfg.Server.Port
		logger.Info("Starting server", zap.String("address", addr))

		if err := app.Listen(addr); err != nil {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		logger.Error("Server shutdown failed", zap.Error(err))
	}

	logger.Info("Server stopped")
}

func errorHandler(c *fiber.Ctx, err error) error {
	zap.L().Error("HTTP error",
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.Error(err))

	code := fiber.StatusInternalServerError
	message := "Something went wrong on the server"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   "Internal server error",
		"message": message,
	})
}

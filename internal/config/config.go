package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

type Config struct {
	Server struct {
		Port         string
		ReadTimeout  time.Duration
		WriteTimeout time.Duration
		Environment  string
		FrontendURL  string
	}

	OpenWeather struct {
		APIKey  string
		BaseURL string
		Timeout time.Duration
	}

	Gemini struct {
		APIKey  string
		Model   string
		BaseURL string
		Timeout time.Duration
	}

	CircuitBreaker struct {
		Timeout time.Duration
	}
}

func LoadConfig() (*Config, error) {
	// Load .env file if exists
	if err := godotenv.Load(); err != nil {
		zap.L().Info("No .env file found, using environment variables")
	}

	cfg := &Config{}

	// Server configuration
	cfg.Server.Port = getEnv("PORT", "3001")
	cfg.Server.ReadTimeout = parseDuration(getEnv("READ_TIMEOUT", "15s"))
	cfg.Server.WriteTimeout = parseDuration(getEnv("WRITE_TIMEOUT", "45s"))
	cfg.Server.Environment = getEnv("APP_ENV", "development")
	cfg.Server.FrontendURL = getEnv("FRONTEND_URL", "")

	// Weather provider configuration
	cfg.OpenWeather.APIKey = getEnv("OPENWEATHER_API_KEY", "")
	cfg.OpenWeather.BaseURL = getEnv("OPENWEATHER_BASE_URL", "https://api.openweathermap.org/data/2.5")
	cfg.OpenWeather.Timeout = parseDuration(getEnv("OPENWEATHER_TIMEOUT", "10s"))

	// Generative provider configuration
	cfg.Gemini.APIKey = getEnv("GEMINI_API_KEY", "")
	cfg.Gemini.Model = getEnv("GEMINI_MODEL", "gemini-1.5-flash")
	cfg.Gemini.BaseURL = getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta")
	cfg.Gemini.Timeout = parseDuration(getEnv("GEMINI_TIMEOUT", "30s"))

	// Circuit breaker configuration
	cfg.CircuitBreaker.Timeout = parseDuration(getEnv("CIRCUIT_BREAKER_TIMEOUT", "30s"))

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDuration(value string) time.Duration {
	duration, err := time.ParseDuration(value)
	if err != nil {
		zap.L().Warn("Failed to parse duration", zap.String("value", value), zap.Error(err))
		return 0
	}
	return duration
}

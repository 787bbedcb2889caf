package api

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"skysense/internal/location"
	"skysense/internal/models"
	"skysense/internal/services"
	"skysense/pkg/client"

	"github.com/gofiber/fiber/v2"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"
	"go.uber.org/zap"
)

var startTime = time.Now()

type Handler struct {
	weather     *services.WeatherService
	ai          *services.AIService
	logger      *zap.Logger
	environment string
}

func NewHandler(weather *services.WeatherService, ai *services.AIService, environment string, logger *zap.Logger) *Handler {
	return &Handler{
		weather:     weather,
		ai:          ai,
		logger:      logger,
		environment: environment,
	}
}

type chatRequest struct {
	Message     string              `json:"message"`
	WeatherData *models.WeatherData `json:"weatherData"`
	Language    string              `json:"language"`
	Transcript  bool                `json:"transcript"`
}

type weatherChatRequest struct {
	Location string   `json:"location"`
	Lat      *float64 `json:"lat"`
	Lon      *float64 `json:"lon"`
	Message  string   `json:"message"`
	Language string   `json:"language"`
}

// GetHealth handles GET /api/health
func (h *Handler) GetHealth(c *fiber.Ctx) error {
	weatherConfigured := h.weather.IsConfigured()
	aiConfigured := h.ai.IsConfigured()
	healthy := weatherConfigured && aiConfigured

	uptime := time.Since(startTime)
	usedMB, totalMB := memoryStats()

	status := "healthy"
	statusCode := fiber.StatusOK
	if !healthy {
		status = "degraded"
		statusCode = fiber.StatusServiceUnavailable
	}

	return c.Status(statusCode).JSON(fiber.Map{
		"status":      status,
		"timestamp":   time.Now().UTC(),
		"uptime":      uptime.Seconds(),
		"environment": h.environment,
		"services": fiber.Map{
			"weather": serviceStatus(weatherConfigured, "OpenWeather API ready", "Missing OPENWEATHER_API_KEY"),
			"ai":      serviceStatus(aiConfigured, "Gemini AI API ready", "Missing GEMINI_API_KEY"),
		},
		"system": fiber.Map{
			"memory": fiber.Map{
				"used":  usedMB,
				"total": totalMB,
			},
			"uptime": fiber.Map{
				"seconds": int(uptime.Seconds()),
				"human": fmt.Sprintf("%dh %dm %ds",
					int(uptime.Hours()),
					int(uptime.Minutes())%60,
					int(uptime.Seconds())%60),
			},
		},
	})
}

func serviceStatus(configured bool, okMessage, missingMessage string) fiber.Map {
	status := "operational"
	message := okMessage
	if !configured {
		status = "misconfigured"
		message = missingMessage
	}
	return fiber.Map{
		"status":     status,
		"configured": configured,
		"message":    message,
	}
}

func memoryStats() (usedMB, totalMB uint64) {
	if vm, err := mem.VirtualMemory(); err == nil {
		totalMB = vm.Total / 1024 / 1024
	}
	if proc, err := process.NewProcess(int32(os.Getpid())); err == nil {
		if info, err := proc.MemoryInfo(); err == nil {
			usedMB = info.RSS / 1024 / 1024
		}
	}
	return usedMB, totalMB
}

// GetWeather handles GET /api/weather with either ?location= or ?lat=&lon=.
func (h *Handler) GetWeather(c *fiber.Ctx) error {
	if !h.weather.IsConfigured() {
		return respondError(c, fiber.StatusInternalServerError,
			"Weather service not configured",
			"Please set OPENWEATHER_API_KEY in environment variables")
	}

	locationName := c.Query("location")
	latStr, lonStr := c.Query("lat"), c.Query("lon")

	var data *models.WeatherData
	var err error

	switch {
	case latStr != "" && lonStr != "":
		lat, latErr := strconv.ParseFloat(latStr, 64)
		lon, lonErr := strconv.ParseFloat(lonStr, 64)
		if latErr != nil || lonErr != nil {
			return respondError(c, fiber.StatusBadRequest,
				"Invalid coordinates",
				"Coordinates must be decimal numbers")
		}
		h.logger.Info("Fetching weather by coordinates",
			zap.Float64("lat", lat), zap.Float64("lon", lon))
		data, err = h.weather.GetByCoordinates(c.Context(), lat, lon)

	case locationName != "":
		h.logger.Info("Fetching weather by location", zap.String("location", locationName))
		data, err = h.weather.GetByCity(c.Context(), locationName)

	default:
		return respondError(c, fiber.StatusBadRequest,
			"Missing parameters",
			"Please provide either location name or coordinates (lat, lon)")
	}

	if err != nil {
		h.logger.Error("Weather fetch failed",
			zap.String("location", locationName),
			zap.Error(err))
		return respondError(c, fiber.StatusInternalServerError,
			"Weather fetch failed", userMessage(err))
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    data,
	})
}

// PostChat handles POST /api/chat. With weather data attached the reply is a
// full suggestion set; without it, a plain conversational response.
func (h *Handler) PostChat(c *fiber.Ctx) error {
	var req chatRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest,
			"Invalid request body", "Request body must be valid JSON")
	}

	if req.Message == "" {
		return respondError(c, fiber.StatusBadRequest,
			"Missing message", "Please provide a message in the request body")
	}

	if !h.ai.IsConfigured() {
		return respondError(c, fiber.StatusInternalServerError,
			"AI service not configured",
			"Please set GEMINI_API_KEY in environment variables")
	}

	language := normalizeLanguage(req.Language)

	var response *models.AIResponse

	if req.WeatherData != nil {
		suggestions, err := h.ai.GenerateSuggestions(c.Context(), req.WeatherData, req.Message, language)
		if err != nil {
			h.logger.Error("Suggestion generation failed", zap.Error(err))
			return respondError(c, fiber.StatusInternalServerError,
				"AI response failed", userMessage(err))
		}
		response = suggestions
	} else {
		contextHint := ""
		if req.Transcript {
			contextHint = location.ProcessTranscript(req.Message).ContextString()
		}

		reply, err := h.ai.GenerateConversational(c.Context(), req.Message, contextHint, language)
		if err != nil {
			h.logger.Error("Conversational generation failed", zap.Error(err))
			return respondError(c, fiber.StatusInternalServerError,
				"AI response failed", userMessage(err))
		}
		response = &models.AIResponse{
			Suggestions:            []models.ActivitySuggestion{},
			AdditionalTips:         []string{},
			ConversationalResponse: reply,
		}
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    response,
	})
}

// PostWeatherChat handles POST /api/weather-chat: one round trip for weather
// plus suggestions. When neither a location nor coordinates are supplied the
// message itself is scanned for a place name before rejecting.
func (h *Handler) PostWeatherChat(c *fiber.Ctx) error {
	var req weatherChatRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest,
			"Invalid request body", "Request body must be valid JSON")
	}

	if !h.weather.IsConfigured() || !h.ai.IsConfigured() {
		return respondError(c, fiber.StatusInternalServerError,
			"Services not configured",
			"Please set both OPENWEATHER_API_KEY and GEMINI_API_KEY in environment variables")
	}

	var weather *models.WeatherData
	var err error

	switch {
	case req.Lat != nil && req.Lon != nil:
		weather, err = h.weather.GetByCoordinates(c.Context(), *req.Lat, *req.Lon)

	case req.Location != "":
		weather, err = h.weather.GetByCity(c.Context(), req.Location)

	default:
		extracted, found := location.Extract(req.Message)
		if !found {
			message := "Please provide either a location name or coordinates"
			if location.WantsGeolocation(req.Message) {
				message = "Please share device coordinates (lat, lon) for a current-location query"
			}
			return respondError(c, fiber.StatusBadRequest, "Missing location", message)
		}
		h.logger.Info("Extracted location from message", zap.String("location", extracted))
		weather, err = h.weather.GetByCity(c.Context(), extracted)
	}

	if err != nil {
		h.logger.Error("Weather fetch failed", zap.Error(err))
		return respondError(c, fiber.StatusInternalServerError,
			"Weather fetch failed", userMessage(err))
	}

	message := req.Message
	if message == "" {
		message = "What should I do today?"
	}

	aiResponse, aiErr := h.ai.GenerateSuggestions(c.Context(), weather, message, normalizeLanguage(req.Language))
	if aiErr != nil {
		// Weather succeeded; suggestions are best-effort from here on.
		h.logger.Warn("Suggestion generation failed, returning weather only", zap.Error(aiErr))
		return c.JSON(fiber.Map{
			"success": true,
			"data": fiber.Map{
				"weather": weather,
				"ai":      nil,
				"notice":  "Activity suggestions are temporarily unavailable",
			},
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"weather": weather,
			"ai":      aiResponse,
		},
	})
}

func normalizeLanguage(language string) string {
	if language == "ja" {
		return "ja"
	}
	return "en"
}

func respondError(c *fiber.Ctx, status int, title, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error":   title,
		"message": message,
	})
}

// userMessage picks the user-presentable message for an error: upstream
// errors carry a stable per-status message, everything else falls back to
// the raw error text.
func userMessage(err error) string {
	var upstream *client.UpstreamError
	if errors.As(err, &upstream) && upstream.Message != "" {
		return upstream.Message
	}
	return err.Error()
}

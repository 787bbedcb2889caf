package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"skysense/internal/config"
	"skysense/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testCurrentJSON = `{
  "coord": {"lon": 2.3488, "lat": 48.8534},
  "weather": [{"id": 803, "main": "Clouds", "description": "broken clouds", "icon": "04d"}],
  "main": {"temp": 18.3, "feels_like": 17.9, "humidity": 64},
  "visibility": 10000,
  "wind": {"speed": 4.1},
  "sys": {"country": "FR"},
  "name": "Paris"
}`

const testForecastJSON = `{
  "list": [
    {"dt": 1756724400, "main": {"temp": 16.0, "humidity": 70},
     "weather": [{"id": 500, "main": "Rain", "description": "light rain", "icon": "10d"}],
     "pop": 0.4}
  ],
  "city": {"name": "Paris", "country": "FR"}
}`

const testGeminiJSON = `{
  "candidates": [{"content": {"parts": [{"text": "{\"suggestions\":[{\"category\":\"indoor\",\"title\":\"Museum day\",\"description\":\"Visit a museum.\",\"reasoning\":\"Rain is likely.\",\"icon\":\"🖼️\",\"priority\":4}],\"explanation\":\"Showers expected.\",\"additionalTips\":[\"Carry an umbrella.\"],\"conversationalResponse\":\"A museum would be a great pick today!\"}"}]}}]
}`

type testEnv struct {
	app *fiber.App
}

func newTestEnv(t *testing.T, weatherKey, aiKey string, weatherHandler http.Handler) *testEnv {
	t.Helper()

	if weatherHandler == nil {
		mux := http.NewServeMux()
		mux.HandleFunc("/weather", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, testCurrentJSON)
		})
		mux.HandleFunc("/forecast", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, testForecastJSON)
		})
		weatherHandler = mux
	}

	weatherServer := httptest.NewServer(weatherHandler)
	t.Cleanup(weatherServer.Close)

	geminiServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, testGeminiJSON)
	}))
	t.Cleanup(geminiServer.Close)

	cfg := &config.Config{}
	cfg.Server.Environment = "development"
	cfg.OpenWeather.APIKey = weatherKey
	cfg.OpenWeather.BaseURL = weatherServer.URL
	cfg.OpenWeather.Timeout = 5 * time.Second
	cfg.Gemini.APIKey = aiKey
	cfg.Gemini.Model = "gemini-1.5-flash"
	cfg.Gemini.BaseURL = geminiServer.URL
	cfg.Gemini.Timeout = 5 * time.Second
	cfg.CircuitBreaker.Timeout = time.Second

	logger := zap.NewNop()
	weather := services.NewWeatherService(cfg, logger)
	ai := services.NewAIService(cfg, logger)

	app := fiber.New()
	handler := NewHandler(weather, ai, cfg.Server.Environment, logger)
	SetupRoutes(app, handler, "", logger)

	return &testEnv{app: app}
}

func (e *testEnv) request(t *testing.T, method, target, body string) (*http.Response, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := e.app.Test(req, 10000)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))

	return resp, decoded
}

func TestGetWeather_ByLocation(t *testing.T) {
	env := newTestEnv(t, "wkey", "akey", nil)

	resp, body := env.request(t, http.MethodGet, "/api/weather?location=Paris", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])

	data := body["data"].(map[string]interface{})
	current := data["current"].(map[string]interface{})
	assert.Equal(t, float64(18), current["temperature"])
	assert.Equal(t, "Clouds", current["condition"])
}

func TestGetWeather_MissingParams(t *testing.T) {
	env := newTestEnv(t, "wkey", "akey", nil)

	resp, body := env.request(t, http.MethodGet, "/api/weather", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Missing parameters", body["error"])
}

func TestGetWeather_Unconfigured(t *testing.T) {
	env := newTestEnv(t, "", "akey", nil)

	resp, body := env.request(t, http.MethodGet, "/api/weather?location=Paris", "")
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "Weather service not configured", body["error"])
}

func TestGetHealth_Degraded(t *testing.T) {
	env := newTestEnv(t, "wkey", "", nil)

	resp, body := env.request(t, http.MethodGet, "/api/health", "")
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, "degraded", body["status"])

	servicesBlock := body["services"].(map[string]interface{})
	ai := servicesBlock["ai"].(map[string]interface{})
	assert.Equal(t, false, ai["configured"])
}

func TestGetHealth_Healthy(t *testing.T) {
	env := newTestEnv(t, "wkey", "akey", nil)

	resp, body := env.request(t, http.MethodGet, "/api/health", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "healthy", body["status"])
	assert.Contains(t, body, "system")
}

func TestPostChat_MissingMessage(t *testing.T) {
	env := newTestEnv(t, "wkey", "akey", nil)

	resp, body := env.request(t, http.MethodPost, "/api/chat", `{"language":"en"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Missing message", body["error"])
}

func TestPostChat_ConversationalWithoutWeather(t *testing.T) {
	env := newTestEnv(t, "wkey", "akey", nil)

	resp, body := env.request(t, http.MethodPost, "/api/chat", `{"message":"hello"}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	data := body["data"].(map[string]interface{})
	assert.NotEmpty(t, data["conversationalResponse"])
	assert.Empty(t, data["suggestions"])
}

func TestPostWeatherChat_ExtractsLocationFromMessage(t *testing.T) {
	env := newTestEnv(t, "wkey", "akey", nil)

	resp, body := env.request(t, http.MethodPost, "/api/weather-chat",
		`{"message":"what's the weather in Paris?","language":"en"}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	data := body["data"].(map[string]interface{})
	weather := data["weather"].(map[string]interface{})
	location := weather["location"].(map[string]interface{})
	assert.Equal(t, "Paris", location["name"])

	ai := data["ai"].(map[string]interface{})
	suggestions := ai["suggestions"].([]interface{})
	assert.NotEmpty(t, suggestions)
}

func TestPostWeatherChat_NoLocationAnywhere(t *testing.T) {
	env := newTestEnv(t, "wkey", "akey", nil)

	resp, body := env.request(t, http.MethodPost, "/api/weather-chat",
		`{"message":"I like walking","language":"en"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Missing location", body["error"])
}

func TestPostWeatherChat_AIFailureStillReturnsWeather(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/weather", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, testCurrentJSON)
	})
	mux.HandleFunc("/forecast", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, testForecastJSON)
	})

	weatherServer := httptest.NewServer(mux)
	t.Cleanup(weatherServer.Close)

	geminiServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	t.Cleanup(geminiServer.Close)

	cfg := &config.Config{}
	cfg.Server.Environment = "development"
	cfg.OpenWeather.APIKey = "wkey"
	cfg.OpenWeather.BaseURL = weatherServer.URL
	cfg.OpenWeather.Timeout = 5 * time.Second
	cfg.Gemini.APIKey = "akey"
	cfg.Gemini.Model = "gemini-1.5-flash"
	cfg.Gemini.BaseURL = geminiServer.URL
	cfg.Gemini.Timeout = 5 * time.Second
	cfg.CircuitBreaker.Timeout = time.Second

	logger := zap.NewNop()
	app := fiber.New()
	handler := NewHandler(services.NewWeatherService(cfg, logger), services.NewAIService(cfg, logger), "development", logger)
	SetupRoutes(app, handler, "", logger)
	env := &testEnv{app: app}

	resp, body := env.request(t, http.MethodPost, "/api/weather-chat",
		`{"location":"Paris","message":"ideas?","language":"en"}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])

	data := body["data"].(map[string]interface{})
	assert.NotNil(t, data["weather"])
	assert.Nil(t, data["ai"])
	assert.NotEmpty(t, data["notice"])
}

func TestUnknownRoute(t *testing.T) {
	env := newTestEnv(t, "wkey", "akey", nil)

	resp, body := env.request(t, http.MethodGet, "/api/nope", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Not found", body["error"])
}

package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"skysense/internal/config"
	"skysense/internal/models"
	"skysense/pkg/client"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const suggestionJSON = `{
  "suggestions": [
    {
      "category": "outdoor",
      "title": "Riverside walk",
      "description": "Take a stroll along the Seine.",
      "reasoning": "Mild temperatures and only broken clouds.",
      "icon": "🚶",
      "priority": 4
    }
  ],
  "explanation": "A mild cloudy day, good for being outside.",
  "additionalTips": ["Bring a light jacket."],
  "conversationalResponse": "It looks like a lovely day for a walk!"
}`

func geminiReply(text string) string {
	payload := map[string]interface{}{
		"candidates": []map[string]interface{}{
			{"content": map[string]interface{}{
				"parts": []map[string]string{{"text": text}},
			}},
		},
	}
	out, _ := json.Marshal(payload)
	return string(out)
}

func newTestAIService(t *testing.T, handler http.Handler, apiKey string) *AIService {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := &config.Config{}
	cfg.Gemini.APIKey = apiKey
	cfg.Gemini.Model = "gemini-1.5-flash"
	cfg.Gemini.BaseURL = server.URL
	cfg.Gemini.Timeout = 5 * time.Second
	cfg.CircuitBreaker.Timeout = time.Second

	return NewAIService(cfg, zap.NewNop())
}

func testWeatherData() *models.WeatherData {
	return &models.WeatherData{
		Location: models.Location{Name: "Paris", Country: "FR"},
		Current: models.CurrentConditions{
			Temperature: 18,
			FeelsLike:   18,
			Condition:   models.ConditionClouds,
			Description: "broken clouds",
			Humidity:    64,
			WindSpeed:   4.1,
		},
		Forecast:  []models.ForecastDay{},
		Timestamp: time.Now().UTC(),
	}
}

func TestGenerateSuggestions_ParsesEmbeddedJSON(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Provider replies wrap the JSON payload in prose and fences.
		fmt.Fprint(w, geminiReply("Sure! Here you go:\n```json\n"+suggestionJSON+"\n```\nEnjoy!"))
	})

	service := newTestAIService(t, handler, "test-key")

	response, err := service.GenerateSuggestions(context.Background(), testWeatherData(), "what should I do today?", "en")
	require.NoError(t, err)

	require.Len(t, response.Suggestions, 1)
	assert.Equal(t, models.CategoryOutdoor, response.Suggestions[0].Category)
	assert.Equal(t, 4, response.Suggestions[0].Priority)
	assert.Equal(t, "It looks like a lovely day for a walk!", response.ConversationalResponse)
	assert.Len(t, response.AdditionalTips, 1)
}

func TestGenerateSuggestions_BareJSONWithoutFences(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, geminiReply("Here is my recommendation: "+suggestionJSON))
	})

	service := newTestAIService(t, handler, "test-key")

	response, err := service.GenerateSuggestions(context.Background(), testWeatherData(), "ideas?", "en")
	require.NoError(t, err)
	require.Len(t, response.Suggestions, 1)
}

func TestGenerateSuggestions_UnparseableReplyIsParseError(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, geminiReply("I'm sorry, I cannot help with that."))
	})

	service := newTestAIService(t, handler, "test-key")

	_, err := service.GenerateSuggestions(context.Background(), testWeatherData(), "ideas?", "en")
	require.Error(t, err)

	var upstream *client.UpstreamError
	require.True(t, errors.As(err, &upstream))
	assert.Equal(t, client.ErrKindParse, upstream.Kind)
}

func TestGenerateSuggestions_Unconfigured(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no network call expected")
	})

	service := newTestAIService(t, handler, "")

	_, err := service.GenerateSuggestions(context.Background(), testWeatherData(), "ideas?", "en")
	require.ErrorIs(t, err, ErrAINotConfigured)
}

func TestGenerateConversational(t *testing.T) {
	var gotBody []byte
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = io.ReadAll(r.Body)
		fmt.Fprint(w, geminiReply("  Hello! Which city are you curious about?  "))
	})

	service := newTestAIService(t, handler, "test-key")

	reply, err := service.GenerateConversational(context.Background(), "hi", "", "en")
	require.NoError(t, err)
	assert.Equal(t, "Hello! Which city are you curious about?", reply)
	assert.Contains(t, string(gotBody), "hi")
}

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"fenced block", "text ```json\n{\"a\":1}\n``` more", `{"a":1}`},
		{"bare object", `prefix {"a":1} suffix`, `{"a":1}`},
		{"outermost braces", `x {"a":{"b":2}} y`, `{"a":{"b":2}}`},
		{"no json", "just words", ""},
		{"unbalanced", "only { opening", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractJSON(tt.in))
		})
	}
}

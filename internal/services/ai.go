package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"skysense/internal/config"
	"skysense/internal/models"
	"skysense/pkg/client"

	"go.uber.org/zap"
)

// ErrAINotConfigured is returned before any network call when the generative
// provider credential is missing.
var ErrAINotConfigured = errors.New("AI service not configured: missing GEMINI_API_KEY")

// AIService is the gateway to the generative-language provider. It grounds
// prompts in fetched weather data and parses the provider's free-text reply
// into the fixed suggestion schema.
type AIService struct {
	client     *client.GeminiClient
	logger     *zap.Logger
	configured bool
}

func NewAIService(cfg *config.Config, logger *zap.Logger) *AIService {
	clientConfig := client.ClientConfig{
		Timeout:        cfg.Gemini.Timeout,
		BreakerTimeout: cfg.CircuitBreaker.Timeout,
	}

	return &AIService{
		client:     client.NewGeminiClient(cfg.Gemini.APIKey, cfg.Gemini.Model, cfg.Gemini.BaseURL, clientConfig, logger),
		logger:     logger,
		configured: cfg.Gemini.APIKey != "",
	}
}

// IsConfigured reports whether a generative-provider credential is present.
func (s *AIService) IsConfigured() bool {
	return s.configured
}

// GenerateSuggestions asks the provider for weather-grounded activity
// suggestions. A reply that does not contain a parseable JSON payload is a
// distinct parse error, never a silently empty set.
func (s *AIService) GenerateSuggestions(ctx context.Context, weather *models.WeatherData, userQuery, language string) (*models.AIResponse, error) {
	if !s.configured {
		return nil, ErrAINotConfigured
	}

	prompt := buildSuggestionPrompt(weather, userQuery, language)

	text, err := s.client.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, err
	}

	response, err := parseAIResponse(text)
	if err != nil {
		s.logger.Warn("AI reply could not be parsed",
			zap.Int("reply_length", len(text)),
			zap.Error(err))
		return nil, err
	}

	for i, suggestion := range response.Suggestions {
		if !models.ValidCategory(suggestion.Category) {
			s.logger.Debug("Unknown suggestion category",
				zap.String("category", string(suggestion.Category)),
				zap.Int("index", i))
		}
	}

	return response, nil
}

// GenerateConversational produces a plain chat reply when no weather
// grounding is available yet. Extra context (for example a transcript
// interpretation) is folded into the prompt when present.
func (s *AIService) GenerateConversational(ctx context.Context, message, contextHint, language string) (string, error) {
	if !s.configured {
		return "", ErrAINotConfigured
	}

	prompt := buildConversationalPrompt(message, contextHint, language)

	text, err := s.client.GenerateContent(ctx, prompt)
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(text), nil
}

func buildSuggestionPrompt(weather *models.WeatherData, userQuery, language string) string {
	var b strings.Builder

	b.WriteString("You are SkySense, a friendly weather assistant. ")
	if language == "ja" {
		b.WriteString("Respond in Japanese. ")
	} else {
		b.WriteString("Respond in English. ")
	}

	fmt.Fprintf(&b, "Current weather in %s, %s: %d°C (feels like %d°C), %s (%s), humidity %d%%, wind %.1f m/s.\n",
		weather.Location.Name, weather.Location.Country,
		weather.Current.Temperature, weather.Current.FeelsLike,
		weather.Current.Condition, weather.Current.Description,
		weather.Current.Humidity, weather.Current.WindSpeed)

	if len(weather.Forecast) > 0 {
		b.WriteString("Forecast:\n")
		for _, day := range weather.Forecast {
			fmt.Fprintf(&b, "- %s: %d to %d°C, %s, %d%% chance of precipitation\n",
				day.Date, day.Temperature.Min, day.Temperature.Max, day.Condition, day.PrecipitationChance)
		}
	}

	fmt.Fprintf(&b, "\nUser asked: %q\n\n", userQuery)
	b.WriteString(`Based on this weather, suggest activities. Reply with ONLY a JSON object in this exact shape:
{
  "suggestions": [
    {
      "category": "travel|outdoor|indoor|clothing|food",
      "title": "short title",
      "description": "one or two sentences",
      "reasoning": "why this fits the weather",
      "icon": "an emoji",
      "priority": 1
    }
  ],
  "explanation": "short summary of how the weather shapes the day",
  "additionalTips": ["tip"],
  "conversationalResponse": "a friendly reply to the user's question"
}
Priority is an integer from 1 (low) to 5 (high). Provide 3 to 5 suggestions across different categories.`)

	return b.String()
}

func buildConversationalPrompt(message, contextHint, language string) string {
	var b strings.Builder

	b.WriteString("You are SkySense, a friendly weather and activity assistant. ")
	if language == "ja" {
		b.WriteString("Respond in Japanese. ")
	} else {
		b.WriteString("Respond in English. ")
	}
	b.WriteString("Keep the reply short and conversational. If the user asks about weather, invite them to name a city.\n\n")

	if contextHint != "" {
		fmt.Fprintf(&b, "Context: %s\n", contextHint)
	}
	fmt.Fprintf(&b, "User said: %q", message)

	return b.String()
}

// parseAIResponse extracts the JSON payload embedded in the provider's free
// text. Fenced code blocks are unwrapped first; otherwise the outermost
// brace pair is taken.
func parseAIResponse(text string) (*models.AIResponse, error) {
	payload := extractJSON(text)
	if payload == "" {
		return nil, &client.UpstreamError{
			Kind:     client.ErrKindParse,
			Provider: "gemini",
			Message:  "AI reply did not contain a JSON payload.",
		}
	}

	var response models.AIResponse
	if err := json.Unmarshal([]byte(payload), &response); err != nil {
		return nil, &client.UpstreamError{
			Kind:     client.ErrKindParse,
			Provider: "gemini",
			Message:  "AI reply could not be parsed.",
			Err:      err,
		}
	}

	if response.Suggestions == nil {
		response.Suggestions = []models.ActivitySuggestion{}
	}
	if response.AdditionalTips == nil {
		response.AdditionalTips = []string{}
	}

	return &response, nil
}

func extractJSON(text string) string {
	if start := strings.Index(text, "```json"); start >= 0 {
		rest := text[start+len("```json"):]
		if end := strings.Index(rest, "```"); end >= 0 {
			return strings.TrimSpace(rest[:end])
		}
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return ""
	}
	return text[start : end+1]
}

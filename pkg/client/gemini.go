package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"go.uber.org/zap"
)

// GeminiClient adapts the generative-language provider's generateContent
// endpoint.
type GeminiClient struct {
	*BaseClient
	apiKey  string
	model   string
	baseURL string
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

func NewGeminiClient(apiKey, model, baseURL string, config ClientConfig, logger *zap.Logger) *GeminiClient {
	baseClient := NewBaseClient("gemini", config, logger)
	return &GeminiClient{
		BaseClient: baseClient,
		apiKey:     apiKey,
		model:      model,
		baseURL:    baseURL,
	}
}

// GenerateContent sends a prompt and returns the provider's raw text reply.
func (c *GeminiClient) GenerateContent(ctx context.Context, prompt string) (string, error) {
	reqURL := fmt.Sprintf("%s/models/%s:generateContent?key=%s",
		c.baseURL, url.PathEscape(c.model), url.QueryEscape(c.apiKey))

	payload, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{
			{Parts: []geminiPart{{Text: prompt}}},
		},
	})
	if err != nil {
		return "", fmt.Errorf("encoding request failed: %w", err)
	}

	data, err := c.Post(ctx, reqURL, payload)
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	var response geminiResponse
	if err := json.Unmarshal(data, &response); err != nil {
		return "", parseError("gemini", err)
	}
	if len(response.Candidates) == 0 || len(response.Candidates[0].Content.Parts) == 0 {
		return "", parseError("gemini", fmt.Errorf("response contained no candidates"))
	}

	text := response.Candidates[0].Content.Parts[0].Text
	c.logger.Debug("Generated content",
		zap.String("model", c.model),
		zap.Int("length", len(text)))

	return text, nil
}

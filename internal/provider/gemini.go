package provider

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// GeminiGenerator generates text through the Gemini API
type GeminiGenerator struct {
	client *genai.Client
	model  string
}

// NewGeminiGenerator creates a Gemini client. An empty model means
// TypeGemini.DefaultModel(); host overrides the API endpoint when set.
func NewGeminiGenerator(ctx context.Context, host, apiKey, model string) (*GeminiGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	if model == "" {
		model = TypeGemini.DefaultModel()
	}

	cfg := &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: newHTTPClient(),
	}
	if host != "" {
		cfg.HTTPOptions.BaseURL = strings.TrimSuffix(host, "/") + "/"
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &GeminiGenerator{client: client, model: model}, nil
}

// Model returns the model used for requests
func (g *GeminiGenerator) Model() string {
	return g.model
}

// Generate sends req as a single text prompt
func (g *GeminiGenerator) Generate(ctx context.Context, req Request) (string, error) {
	temperature := req.Temperature
	genConfig := &genai.GenerateContentConfig{
		Temperature: &temperature,
	}
	if req.JSON {
		genConfig.ResponseMIMEType = "application/json"
	}

	result, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(req.Prompt), genConfig)
	if err != nil {
		return "", fmt.Errorf("gemini generate (%s): %w", g.model, err)
	}
	if result == nil || result.Text() == "" {
		return "", ErrEmptyResponse
	}
	return result.Text(), nil
}

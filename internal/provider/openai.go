package provider

import (
	"context"
	"errors"
	"fmt"

	"github.com/sashabaranov/go-openai"
)

// ErrEmptyResponse is returned when the service answers without content
var ErrEmptyResponse = errors.New("empty response from generation service")

// OpenAIGenerator generates text through an OpenAI-compatible chat completion API
type OpenAIGenerator struct {
	client   *openai.Client
	model    string
	jsonMode bool
}

// NewOpenAIGenerator creates a generator for p's active model
func NewOpenAIGenerator(p Provider) *OpenAIGenerator {
	info := p.Info()
	return &OpenAIGenerator{
		client:   p.CreateClient(),
		model:    info.Model,
		jsonMode: info.JSONMode,
	}
}

// Model returns the model used for requests
func (g *OpenAIGenerator) Model() string {
	return g.model
}

// Generate sends req as a single user message
func (g *OpenAIGenerator) Generate(ctx context.Context, req Request) (string, error) {
	chatReq := openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: req.Prompt},
		},
		Temperature: req.Temperature,
	}
	if req.JSON && g.jsonMode {
		chatReq.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	resp, err := g.client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		return "", fmt.Errorf("chat completion (%s): %w", g.model, err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", ErrEmptyResponse
	}
	return resp.Choices[0].Message.Content, nil
}

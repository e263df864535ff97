package provider

import (
	"context"

	"github.com/sashabaranov/go-openai"
)

// Type represents the generation service type
type Type string

const (
	TypeOpenAI   Type = "openai"
	TypeGemini   Type = "gemini"
	TypeVLLM     Type = "vllm"
	TypeOllama   Type = "ollama"
	TypeLlamaCpp Type = "llama.cpp"
	TypeUnknown  Type = "unknown"
)

// String returns the string representation of the provider type
func (t Type) String() string {
	return string(t)
}

// DisplayName returns a human-readable name for the provider type
func (t Type) DisplayName() string {
	switch t {
	case TypeOpenAI:
		return "OpenAI"
	case TypeGemini:
		return "Gemini"
	case TypeVLLM:
		return "vLLM"
	case TypeOllama:
		return "Ollama"
	case TypeLlamaCpp:
		return "llama.cpp"
	default:
		return "Unknown"
	}
}

// DefaultModel returns the model used when none is configured. Local
// servers have no default; their first advertised model is used instead.
func (t Type) DefaultModel() string {
	switch t {
	case TypeOpenAI:
		return "gpt-4o-mini"
	case TypeGemini:
		return "gemini-2.5-flash"
	default:
		return ""
	}
}

// Info holds provider metadata
type Info struct {
	Type     Type     // Provider type (openai, gemini, vllm, ollama, llama.cpp)
	Name     string   // Display name (e.g., "Ollama")
	Host     string   // Base URL
	Model    string   // Selected model
	Models   []string // Available models
	APIPath  string   // API path prefix (e.g., "/v1")
	JSONMode bool     // Whether the service honours a JSON response format
}

// Request is a single text generation call
type Request struct {
	Prompt      string
	Temperature float32
	// JSON asks the service for a JSON object when it supports it
	JSON bool
}

// Generator produces text for a prompt
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// GeneratorFunc adapts a plain function to Generator
type GeneratorFunc func(ctx context.Context, req Request) (string, error)

// Generate calls f
func (f GeneratorFunc) Generate(ctx context.Context, req Request) (string, error) {
	return f(ctx, req)
}

// Provider is an OpenAI-compatible chat completion server
type Provider interface {
	// Info returns provider metadata
	Info() *Info

	// DetectModels queries available models from the server
	DetectModels(ctx context.Context) ([]string, error)

	// CreateClient returns an OpenAI-compatible client
	CreateClient() *openai.Client

	// SetModel sets the active model
	SetModel(model string)
}

package provider

import (
	"context"
	"fmt"
)

// Options selects and configures a generation service
type Options struct {
	Vendor string // openai, gemini, vllm, ollama, llama.cpp, or "" / "auto"
	Host   string // API root; empty means the vendor's hosted API
	APIKey string
	Model  string // empty selects the vendor default or the first served model
}

// New creates a Generator for opts. If the vendor is empty or "auto", it is
// detected from the host. Every call of the returned Generator is retried on
// transient failures with DefaultRetryPolicy.
func New(ctx context.Context, opts Options) (Generator, *Info, error) {
	providerType := ParseVendorConfig(opts.Vendor)
	if providerType == TypeUnknown {
		providerType = Detect(ctx, opts.Host)
	}

	if providerType == TypeGemini {
		g, err := NewGeminiGenerator(ctx, opts.Host, opts.APIKey, opts.Model)
		if err != nil {
			return nil, nil, err
		}
		info := &Info{
			Type:     TypeGemini,
			Name:     TypeGemini.DisplayName(),
			Host:     opts.Host,
			Model:    g.Model(),
			JSONMode: true,
		}
		return Retrying(g, DefaultRetryPolicy), info, nil
	}

	p, err := NewWithType(providerType, opts.Host, opts.APIKey)
	if err != nil {
		return nil, nil, err
	}

	if opts.Model != "" {
		p.SetModel(opts.Model)
	}
	if p.Info().Model == "" {
		model, err := WithRetry(ctx, "model detection", func() (string, error) {
			models, err := p.DetectModels(ctx)
			if err != nil {
				return "", err
			}
			if len(models) == 0 {
				return "", fmt.Errorf("no models available on %s", p.Info().Host)
			}
			return models[0], nil
		})
		if err != nil {
			return nil, nil, fmt.Errorf("detect model: %w", err)
		}
		p.SetModel(model)
	}

	return Retrying(NewOpenAIGenerator(p), DefaultRetryPolicy), p.Info(), nil
}

// NewWithType creates an OpenAI-compatible provider with an explicit type (no auto-detection)
func NewWithType(providerType Type, host, apiKey string) (Provider, error) {
	if providerType == TypeOpenAI {
		return NewOpenAIProvider(host, apiKey), nil
	}
	if host == "" {
		return nil, fmt.Errorf("host is required for %s", providerType.DisplayName())
	}

	switch providerType {
	case TypeOllama:
		return NewOllamaProvider(host, apiKey), nil
	case TypeLlamaCpp:
		return NewLlamaCppProvider(host, apiKey), nil
	case TypeVLLM:
		return NewVLLMProvider(host, apiKey), nil
	default:
		// vLLM speaks the plainest OpenAI dialect
		return NewVLLMProvider(host, apiKey), nil
	}
}

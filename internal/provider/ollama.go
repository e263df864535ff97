package provider

import "context"

// OllamaProvider implements Provider for Ollama servers
type OllamaProvider struct {
	*BaseProvider
}

// NewOllamaProvider creates a new Ollama provider
func NewOllamaProvider(host, apiKey string) *OllamaProvider {
	base := NewBaseProvider(TypeOllama, host, apiKey)
	// Ollama accepts response_format only for some models
	base.info.JSONMode = false
	return &OllamaProvider{BaseProvider: base}
}

// DetectModels queries available models from the Ollama server
// Tries OpenAI-compatible endpoint first, falls back to native /api/tags
func (p *OllamaProvider) DetectModels(ctx context.Context) ([]string, error) {
	models, err := p.DetectModelsOpenAI(ctx)
	if err == nil && len(models) > 0 {
		return models, nil
	}
	return p.detectModelsNative(ctx)
}

// detectModelsNative reads Ollama's own /api/tags listing
func (p *OllamaProvider) detectModelsNative(ctx context.Context) ([]string, error) {
	var tags struct {
		Models []struct {
			Name string `json:"name"`
		} `json:"models"`
	}
	if err := p.getJSON(ctx, "/api/tags", &tags); err != nil {
		return nil, err
	}

	models := make([]string, 0, len(tags.Models))
	for _, m := range tags.Models {
		models = append(models, m.Name)
	}
	p.info.Models = models
	return models, nil
}

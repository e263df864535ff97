package provider

import "strings"

// DefaultOpenAIHost is the hosted OpenAI API root
const DefaultOpenAIHost = "https://api.openai.com"

// OpenAIProvider implements Provider for the hosted OpenAI API
type OpenAIProvider struct {
	*BaseProvider
}

// NewOpenAIProvider creates a provider for the hosted OpenAI API. An empty
// host means DefaultOpenAIHost; a host already ending in /v1 is accepted.
func NewOpenAIProvider(host, apiKey string) *OpenAIProvider {
	if host == "" {
		host = DefaultOpenAIHost
	}
	host = strings.TrimSuffix(strings.TrimSuffix(host, "/"), "/v1")
	base := NewBaseProvider(TypeOpenAI, host, apiKey)
	base.info.JSONMode = true
	return &OpenAIProvider{BaseProvider: base}
}

// VLLMProvider implements Provider for vLLM servers
type VLLMProvider struct {
	*BaseProvider
}

// NewVLLMProvider creates a new vLLM provider
func NewVLLMProvider(host, apiKey string) *VLLMProvider {
	base := NewBaseProvider(TypeVLLM, host, apiKey)
	// vLLM supports guided JSON through response_format
	base.info.JSONMode = true
	return &VLLMProvider{BaseProvider: base}
}

// LlamaCppProvider implements Provider for llama.cpp servers (llama-server).
// llama-server usually serves a single model but still lists it on /v1/models.
type LlamaCppProvider struct {
	*BaseProvider
}

// NewLlamaCppProvider creates a new llama.cpp provider
func NewLlamaCppProvider(host, apiKey string) *LlamaCppProvider {
	base := NewBaseProvider(TypeLlamaCpp, host, apiKey)
	base.info.JSONMode = false
	return &LlamaCppProvider{BaseProvider: base}
}

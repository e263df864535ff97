package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
)

const (
	defaultConnectTimeout = 10 * time.Second
)

// BaseProvider contains common provider functionality
type BaseProvider struct {
	info       *Info
	httpClient *http.Client
	apiKey     string
}

// NewBaseProvider creates a base provider with common setup
func NewBaseProvider(providerType Type, host, apiKey string) *BaseProvider {
	host = strings.TrimSuffix(host, "/")

	return &BaseProvider{
		info: &Info{
			Type:    providerType,
			Name:    providerType.DisplayName(),
			Host:    host,
			Model:   providerType.DefaultModel(),
			APIPath: "/v1",
		},
		httpClient: newHTTPClient(),
		apiKey:     apiKey,
	}
}

// Info returns provider metadata
func (p *BaseProvider) Info() *Info {
	return p.info
}

// SetModel sets the active model
func (p *BaseProvider) SetModel(model string) {
	p.info.Model = model
}

// DetectModels queries the OpenAI-compatible model list
func (p *BaseProvider) DetectModels(ctx context.Context) ([]string, error) {
	return p.DetectModelsOpenAI(ctx)
}

// CreateClient returns an OpenAI-compatible client
func (p *BaseProvider) CreateClient() *openai.Client {
	config := openai.DefaultConfig(p.apiKey)
	config.BaseURL = p.info.Host + p.info.APIPath
	config.HTTPClient = p.httpClient
	return openai.NewClientWithConfig(config)
}

// DetectModelsOpenAI lists the models served on /v1/models
func (p *BaseProvider) DetectModelsOpenAI(ctx context.Context) ([]string, error) {
	var list struct {
		Data []struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	if err := p.getJSON(ctx, p.info.APIPath+"/models", &list); err != nil {
		return nil, err
	}

	models := make([]string, 0, len(list.Data))
	for _, m := range list.Data {
		models = append(models, m.ID)
	}
	p.info.Models = models
	return models, nil
}

// getJSON fetches host+path and decodes the body into out
func (p *BaseProvider) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.info.Host+path, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if p.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+p.apiKey)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("list models on %s: %w", p.info.Host, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &openai.RequestError{HTTPStatusCode: resp.StatusCode, Err: fmt.Errorf("GET %s", path)}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// newHTTPClient creates an HTTP client for generation requests.
// Generation can take minutes, so the deadline comes from the context.
func newHTTPClient() *http.Client {
	return &http.Client{
		Timeout: 0,
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout:   defaultConnectTimeout,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			MaxIdleConns:        10,
			IdleConnTimeout:     90 * time.Second,
			TLSHandshakeTimeout: 10 * time.Second,
		},
	}
}

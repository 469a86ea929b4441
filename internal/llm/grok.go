package llm

import (
	"context"

	"github.com/cloudwego/eino/components/model"
)

const (
	// GrokDefaultBaseURL is the default API base URL for Grok
	GrokDefaultBaseURL = "https://api.x.ai/v1"
)

// GrokProvider implements Provider for xAI Grok
// Grok uses OpenAI-compatible API
type GrokProvider struct {
	cfg ProviderConfig
}

// NewGrokProvider creates a new Grok provider
func NewGrokProvider(cfg ProviderConfig) *GrokProvider {
	if cfg.Endpoint == "" {
		cfg.Endpoint = GrokDefaultBaseURL
	}
	return &GrokProvider{cfg: cfg}
}

// Name returns the provider name
func (p *GrokProvider) Name() string {
	return ProviderGrok
}

// RequiresCredential reports that Grok needs an API key
func (p *GrokProvider) RequiresCredential() bool {
	return true
}

// Generate sends the prompt through the OpenAI-compatible xAI endpoint
func (p *GrokProvider) Generate(ctx context.Context, prompt, modelName string, temperature float32) (string, error) {
	return generateWithChatModel(ctx, p.Name(), prompt, modelName, temperature, func(ctx context.Context, m string) (model.BaseChatModel, error) {
		return newOpenAICompatibleModel(ctx, p.cfg.APIKey, p.cfg.Endpoint, m)
	})
}

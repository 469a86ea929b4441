package llm

import (
	"context"

	"github.com/cloudwego/eino/components/model"
)

const (
	// DeepseekDefaultBaseURL is the default API base URL for Deepseek
	DeepseekDefaultBaseURL = "https://api.deepseek.com/v1"
)

// DeepseekProvider implements Provider for Deepseek API
// Deepseek uses OpenAI-compatible API
type DeepseekProvider struct {
	cfg ProviderConfig
}

// NewDeepseekProvider creates a new Deepseek provider
func NewDeepseekProvider(cfg ProviderConfig) *DeepseekProvider {
	if cfg.Endpoint == "" {
		cfg.Endpoint = DeepseekDefaultBaseURL
	}
	return &DeepseekProvider{cfg: cfg}
}

// Name returns the provider name
func (p *DeepseekProvider) Name() string {
	return ProviderDeepseek
}

// RequiresCredential reports that Deepseek needs an API key
func (p *DeepseekProvider) RequiresCredential() bool {
	return true
}

// Generate sends the prompt through the OpenAI-compatible Deepseek endpoint
func (p *DeepseekProvider) Generate(ctx context.Context, prompt, modelName string, temperature float32) (string, error) {
	return generateWithChatModel(ctx, p.Name(), prompt, modelName, temperature, func(ctx context.Context, m string) (model.BaseChatModel, error) {
		return newOpenAICompatibleModel(ctx, p.cfg.APIKey, p.cfg.Endpoint, m)
	})
}

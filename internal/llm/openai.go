package llm

import (
	"context"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
)

// OpenAIProvider implements Provider for OpenAI API
type OpenAIProvider struct {
	cfg ProviderConfig
}

// NewOpenAIProvider creates a new OpenAI provider
func NewOpenAIProvider(cfg ProviderConfig) *OpenAIProvider {
	return &OpenAIProvider{cfg: cfg}
}

// Name returns the provider name
func (p *OpenAIProvider) Name() string {
	return ProviderOpenAI
}

// RequiresCredential reports that OpenAI needs an API key
func (p *OpenAIProvider) RequiresCredential() bool {
	return true
}

// Generate sends the prompt through an Eino OpenAI chat model
func (p *OpenAIProvider) Generate(ctx context.Context, prompt, modelName string, temperature float32) (string, error) {
	return generateWithChatModel(ctx, p.Name(), prompt, modelName, temperature, p.createChatModel)
}

func (p *OpenAIProvider) createChatModel(ctx context.Context, modelName string) (model.BaseChatModel, error) {
	return newOpenAICompatibleModel(ctx, p.cfg.APIKey, p.cfg.Endpoint, modelName)
}

// newOpenAICompatibleModel is shared by every vendor exposing the OpenAI wire format
func newOpenAICompatibleModel(ctx context.Context, apiKey, baseURL, modelName string) (model.BaseChatModel, error) {
	cfg := &openai.ChatModelConfig{
		APIKey:  apiKey,
		Model:   modelName,
		BaseURL: baseURL,
	}

	return openai.NewChatModel(ctx, cfg)
}

package llm

import (
	"context"

	"github.com/cloudwego/eino-ext/components/model/gemini"
	"github.com/cloudwego/eino/components/model"
	"google.golang.org/genai"
)

// GeminiProvider implements Provider for Google Gemini
type GeminiProvider struct {
	cfg ProviderConfig
}

// NewGeminiProvider creates a new Gemini provider
func NewGeminiProvider(cfg ProviderConfig) *GeminiProvider {
	return &GeminiProvider{cfg: cfg}
}

// Name returns the provider name
func (p *GeminiProvider) Name() string {
	return ProviderGemini
}

// RequiresCredential reports that Gemini needs an API key
func (p *GeminiProvider) RequiresCredential() bool {
	return true
}

// Generate sends the prompt through an Eino Gemini chat model
func (p *GeminiProvider) Generate(ctx context.Context, prompt, modelName string, temperature float32) (string, error) {
	return generateWithChatModel(ctx, p.Name(), prompt, modelName, temperature, p.createChatModel)
}

func (p *GeminiProvider) createChatModel(ctx context.Context, modelName string) (model.BaseChatModel, error) {
	clientCfg := &genai.ClientConfig{
		APIKey:  p.cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if p.cfg.Endpoint != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: p.cfg.Endpoint}
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, err
	}

	cfg := &gemini.Config{
		Client: client,
		Model:  modelName,
	}

	return gemini.NewChatModel(ctx, cfg)
}

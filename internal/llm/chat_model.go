package llm

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/huimingz/commitbuddy/internal/log"
)

// chatModelFunc builds an Eino chat model for a concrete model name
type chatModelFunc func(ctx context.Context, modelName string) (model.BaseChatModel, error)

// generateWithChatModel performs a single non-streaming Eino call with the
// shared token cap and the caller's temperature
func generateWithChatModel(ctx context.Context, provider, prompt, modelName string, temperature float32, newModel chatModelFunc) (string, error) {
	chatModel, err := newModel(ctx, modelName)
	if err != nil {
		return "", fmt.Errorf("failed to create chat model: %w", err)
	}
	if chatModel == nil {
		return "", fmt.Errorf("chat model is nil (provider: %s)", provider)
	}

	messages := []*schema.Message{
		{
			Role:    schema.User,
			Content: prompt,
		},
	}

	resp, err := chatModel.Generate(ctx, messages,
		model.WithTemperature(temperature),
		model.WithMaxTokens(ResponseTokenLimit),
	)
	if err != nil {
		return "", err
	}
	if resp == nil {
		return "", fmt.Errorf("%s returned no message", provider)
	}

	if resp.ResponseMeta != nil && resp.ResponseMeta.Usage != nil {
		usage := resp.ResponseMeta.Usage
		log.DebugTokenUsage(usage.PromptTokens, usage.CompletionTokens, usage.TotalTokens)
	}

	return resp.Content, nil
}

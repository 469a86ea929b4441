package llm

import (
	"context"
	"fmt"
)

// ResponseTokenLimit caps the length of every generated response
const ResponseTokenLimit = 200

// Temperature bounds accepted by every provider
const (
	MinTemperature float32 = 0.0
	MaxTemperature float32 = 2.0
)

// Supported providers
const (
	ProviderOpenAI   = "openai"
	ProviderDeepseek = "deepseek"
	ProviderGemini   = "gemini"
	ProviderGrok     = "grok"
	ProviderOllama   = "ollama"
)

var defaultModels = map[string]string{
	ProviderOpenAI:   "gpt-4o-mini",
	ProviderDeepseek: "deepseek-chat",
	ProviderGemini:   "gemini-2.0-flash",
	ProviderGrok:     "grok-beta",
	ProviderOllama:   "llama3.2",
}

// DefaultModel returns the model used for a provider when none is configured
func DefaultModel(provider string) string {
	return defaultModels[provider]
}

// ProviderConfig selects and parameterizes the active backend
type ProviderConfig struct {
	Provider    string  `json:"provider"`
	Model       string  `json:"model"`
	Temperature float32 `json:"temperature"`
	Endpoint    string  `json:"endpoint,omitempty"`
	APIKey      string  `json:"-"`
}

// Validate checks the parts of the config that do not depend on the provider registry
func (c ProviderConfig) Validate() error {
	if c.Provider == "" {
		return fmt.Errorf("provider is required")
	}
	if c.Temperature < MinTemperature || c.Temperature > MaxTemperature {
		return fmt.Errorf("temperature %.2f out of range [%.1f, %.1f]", c.Temperature, MinTemperature, MaxTemperature)
	}
	return nil
}

// Provider is a backend able to turn a prompt into raw text
type Provider interface {
	// Name returns the provider name
	Name() string

	// RequiresCredential reports whether an API key must be present before calling Generate
	RequiresCredential() bool

	// Generate sends one request and returns the backend's raw text
	Generate(ctx context.Context, prompt, model string, temperature float32) (string, error)
}

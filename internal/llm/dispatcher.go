package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/huimingz/commitbuddy/internal/log"
)

// Dispatcher routes a prompt to the configured provider. It sends exactly
// one request per call and never retries.
type Dispatcher struct {
	factory *ProviderFactory
}

// NewDispatcher creates a Dispatcher; a nil factory means the built-in providers
func NewDispatcher(factory *ProviderFactory) *Dispatcher {
	if factory == nil {
		factory = NewProviderFactory()
	}
	return &Dispatcher{factory: factory}
}

// Dispatch sends prompt to the provider selected by cfg and returns its raw text
func (d *Dispatcher) Dispatch(ctx context.Context, cfg ProviderConfig, prompt string) (string, error) {
	if err := cfg.Validate(); err != nil {
		return "", fmt.Errorf("invalid provider config: %w", err)
	}

	provider, err := d.factory.Create(cfg)
	if err != nil {
		return "", err
	}

	if provider.RequiresCredential() && strings.TrimSpace(cfg.APIKey) == "" {
		return "", fmt.Errorf("%w: provider %s requires an API key", ErrMissingCredential, provider.Name())
	}

	modelName := cfg.Model
	if modelName == "" {
		modelName = DefaultModel(provider.Name())
	}

	log.Debug("Dispatching prompt (%d bytes) to %s/%s, temperature=%.2f", len(prompt), provider.Name(), modelName, cfg.Temperature)

	start := time.Now()
	text, err := provider.Generate(ctx, prompt, modelName, cfg.Temperature)
	log.DebugDuration(fmt.Sprintf("%s generation", provider.Name()), time.Since(start))
	if err != nil {
		return "", ClassifyError(provider.Name(), err)
	}

	return text, nil
}

package llm

import (
	"fmt"
	"sort"
)

// Constructor builds a Provider from its configuration
type Constructor func(cfg ProviderConfig) Provider

// ProviderFactory creates LLM providers based on configuration
type ProviderFactory struct {
	constructors map[string]Constructor
}

// NewProviderFactory creates a ProviderFactory with every built-in provider registered
func NewProviderFactory() *ProviderFactory {
	f := &ProviderFactory{constructors: make(map[string]Constructor)}
	f.Register(ProviderOpenAI, func(cfg ProviderConfig) Provider { return NewOpenAIProvider(cfg) })
	f.Register(ProviderDeepseek, func(cfg ProviderConfig) Provider { return NewDeepseekProvider(cfg) })
	f.Register(ProviderGemini, func(cfg ProviderConfig) Provider { return NewGeminiProvider(cfg) })
	f.Register(ProviderGrok, func(cfg ProviderConfig) Provider { return NewGrokProvider(cfg) })
	f.Register(ProviderOllama, func(cfg ProviderConfig) Provider { return NewOllamaProvider(cfg) })
	return f
}

// Register adds or replaces the constructor for a provider name
func (f *ProviderFactory) Register(name string, c Constructor) {
	f.constructors[name] = c
}

// Supports reports whether a provider name is registered
func (f *ProviderFactory) Supports(name string) bool {
	_, ok := f.constructors[name]
	return ok
}

// Names returns the registered provider names, sorted
func (f *ProviderFactory) Names() []string {
	names := make([]string, 0, len(f.constructors))
	for name := range f.constructors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Create creates a Provider based on the configuration
func (f *ProviderFactory) Create(cfg ProviderConfig) (Provider, error) {
	c, ok := f.constructors[cfg.Provider]
	if !ok {
		return nil, fmt.Errorf("unsupported provider: %s", cfg.Provider)
	}
	return c(cfg), nil
}

package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeProvider records calls instead of talking to a backend
type fakeProvider struct {
	name       string
	needsKey   bool
	response   string
	err        error
	calls      int
	lastPrompt string
	lastModel  string
	lastTemp   float32
}

func (f *fakeProvider) Name() string { return f.name }

func (f *fakeProvider) RequiresCredential() bool { return f.needsKey }

func (f *fakeProvider) Generate(ctx context.Context, prompt, model string, temperature float32) (string, error) {
	f.calls++
	f.lastPrompt = prompt
	f.lastModel = model
	f.lastTemp = temperature
	return f.response, f.err
}

func newFakeDispatcher(fake *fakeProvider) *Dispatcher {
	factory := NewProviderFactory()
	factory.Register(fake.name, func(cfg ProviderConfig) Provider { return fake })
	return NewDispatcher(factory)
}

func TestDispatcher_MissingCredentialBeforeAnyCall(t *testing.T) {
	fake := &fakeProvider{name: "openai", needsKey: true, response: "unused"}
	d := newFakeDispatcher(fake)

	_, err := d.Dispatch(context.Background(), ProviderConfig{Provider: "openai", Model: "gpt-4o"}, "prompt")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingCredential)
	assert.Equal(t, 0, fake.calls)

	_, err = d.Dispatch(context.Background(), ProviderConfig{Provider: "openai", APIKey: "   "}, "prompt")
	assert.ErrorIs(t, err, ErrMissingCredential)
	assert.Equal(t, 0, fake.calls)
}

func TestDispatcher_NoCredentialNeeded(t *testing.T) {
	fake := &fakeProvider{name: "ollama", response: "feat: add thing"}
	d := newFakeDispatcher(fake)

	text, err := d.Dispatch(context.Background(), ProviderConfig{Provider: "ollama", Temperature: 0.3}, "the prompt")
	require.NoError(t, err)
	assert.Equal(t, "feat: add thing", text)
	assert.Equal(t, 1, fake.calls)
	assert.Equal(t, "the prompt", fake.lastPrompt)
	assert.Equal(t, DefaultModel("ollama"), fake.lastModel)
	assert.InDelta(t, 0.3, fake.lastTemp, 0.0001)
}

func TestDispatcher_PassesConfiguredModel(t *testing.T) {
	fake := &fakeProvider{name: "deepseek", needsKey: true, response: "ok"}
	d := newFakeDispatcher(fake)

	_, err := d.Dispatch(context.Background(), ProviderConfig{Provider: "deepseek", Model: "deepseek-coder", APIKey: "sk"}, "p")
	require.NoError(t, err)
	assert.Equal(t, "deepseek-coder", fake.lastModel)
}

func TestDispatcher_ClassifiesFailuresWithoutRetry(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		target error
		kind   ErrorKind
		isKind bool
	}{
		{name: "unauthorized", err: errors.New("error, status code: 401, message: Incorrect API key provided"), target: ErrUnauthorized, kind: ErrorKindUnauthorized, isKind: true},
		{name: "quota", err: errors.New("You exceeded your current quota, please check your plan"), target: ErrQuotaExceeded, kind: ErrorKindQuotaExceeded, isKind: true},
		{name: "generic", err: errors.New("model not found"), kind: ErrorKindGeneric},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeProvider{name: "grok", needsKey: true, err: tt.err}
			d := newFakeDispatcher(fake)

			_, err := d.Dispatch(context.Background(), ProviderConfig{Provider: "grok", APIKey: "k"}, "p")
			require.Error(t, err)
			assert.Equal(t, 1, fake.calls)

			var providerErr *ProviderError
			require.ErrorAs(t, err, &providerErr)
			assert.Equal(t, tt.kind, providerErr.Kind)
			assert.Equal(t, "grok", providerErr.Provider)
			assert.Equal(t, tt.err.Error(), providerErr.Detail)
			if tt.isKind {
				assert.ErrorIs(t, err, tt.target)
			}
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestDispatcher_InvalidConfig(t *testing.T) {
	fake := &fakeProvider{name: "ollama"}
	d := newFakeDispatcher(fake)

	_, err := d.Dispatch(context.Background(), ProviderConfig{Provider: "ollama", Temperature: 2.5}, "p")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "temperature")

	_, err = d.Dispatch(context.Background(), ProviderConfig{Provider: "nope"}, "p")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported provider")
	assert.Equal(t, 0, fake.calls)
}

func TestDispatcher_ContextCancellationPassesThrough(t *testing.T) {
	fake := &fakeProvider{name: "ollama", err: context.Canceled}
	d := newFakeDispatcher(fake)

	_, err := d.Dispatch(context.Background(), ProviderConfig{Provider: "ollama"}, "p")
	assert.ErrorIs(t, err, context.Canceled)

	var providerErr *ProviderError
	assert.False(t, errors.As(err, &providerErr))
}

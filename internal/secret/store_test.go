package secret

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"
)

func TestCredentialKey(t *testing.T) {
	assert.Equal(t, "openai.api_key", CredentialKey("openai"))
	assert.Equal(t, "gemini.api_key", CredentialKey("Gemini"))
}

func testStore(t *testing.T, store Store) {
	t.Helper()

	got, err := store.Get("openai")
	require.NoError(t, err)
	assert.Empty(t, got, "unset key reads as empty")

	require.NoError(t, store.Set("openai", "sk-openai"))
	require.NoError(t, store.Set("deepseek", "sk-deepseek"))

	got, err = store.Get("openai")
	require.NoError(t, err)
	assert.Equal(t, "sk-openai", got)

	got, err = store.Get("deepseek")
	require.NoError(t, err)
	assert.Equal(t, "sk-deepseek", got, "keys are qualified by provider")

	assert.Error(t, store.Set("openai", "  "))

	require.NoError(t, store.Delete("openai"))
	got, err = store.Get("openai")
	require.NoError(t, err)
	assert.Empty(t, got)

	require.NoError(t, store.Delete("openai"), "deleting a missing key is not an error")
}

func TestMemoryStore(t *testing.T) {
	testStore(t, NewMemoryStore())
}

func TestKeyringStore(t *testing.T) {
	keyring.MockInit()

	store := NewKeyringStore()
	testStore(t, store)
	assert.True(t, store.Available())
}

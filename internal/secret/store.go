package secret

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/zalando/go-keyring"

	"github.com/huimingz/commitbuddy/internal/log"
)

// KeyringService is the service name in the OS keychain
const KeyringService = "commitbuddy"

// Store keeps per-provider API keys. Get returns "" with a nil error when
// no key is stored.
type Store interface {
	Get(provider string) (string, error)
	Set(provider, apiKey string) error
	Delete(provider string) error
}

// CredentialKey is the provider-qualified item name, e.g. "openai.api_key"
func CredentialKey(provider string) string {
	return strings.ToLower(provider) + ".api_key"
}

// KeyringStore stores keys in the OS keychain:
// macOS Keychain, Windows Credential Manager, or the Linux Secret Service
type KeyringStore struct {
	service string
}

// NewKeyringStore creates a KeyringStore under KeyringService
func NewKeyringStore() *KeyringStore {
	return &KeyringStore{service: KeyringService}
}

// Get retrieves the key for provider
func (s *KeyringStore) Get(provider string) (string, error) {
	apiKey, err := keyring.Get(s.service, CredentialKey(provider))
	if errors.Is(err, keyring.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read from OS keychain: %w", err)
	}

	log.Debug("API key for %s loaded from keychain", provider)
	return apiKey, nil
}

// Set stores the key for provider
func (s *KeyringStore) Set(provider, apiKey string) error {
	if strings.TrimSpace(apiKey) == "" {
		return fmt.Errorf("api key cannot be empty")
	}

	if err := keyring.Set(s.service, CredentialKey(provider), apiKey); err != nil {
		return fmt.Errorf("failed to save to OS keychain: %w", err)
	}

	log.Debug("API key for %s saved to keychain (%s)", provider, log.MaskSecret(apiKey))
	return nil
}

// Delete removes the key for provider; a missing key is not an error
func (s *KeyringStore) Delete(provider string) error {
	err := keyring.Delete(s.service, CredentialKey(provider))
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("failed to delete from OS keychain: %w", err)
	}
	return nil
}

// Available reports whether the OS keychain can be reached. Headless
// systems without a Secret Service report false.
func (s *KeyringStore) Available() bool {
	_, err := keyring.Get(s.service, "availability-check")
	if err == nil || errors.Is(err, keyring.ErrNotFound) {
		return true
	}
	log.Debug("keychain not available: %v", err)
	return false
}

// MemoryStore is an in-process Store
type MemoryStore struct {
	mu   sync.Mutex
	keys map[string]string
}

// NewMemoryStore creates an empty MemoryStore
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{keys: make(map[string]string)}
}

// Get retrieves the key for provider
func (s *MemoryStore) Get(provider string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.keys[CredentialKey(provider)], nil
}

// Set stores the key for provider
func (s *MemoryStore) Set(provider, apiKey string) error {
	if strings.TrimSpace(apiKey) == "" {
		return fmt.Errorf("api key cannot be empty")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keys[CredentialKey(provider)] = apiKey
	return nil
}

// Delete removes the key for provider
func (s *MemoryStore) Delete(provider string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.keys, CredentialKey(provider))
	return nil
}

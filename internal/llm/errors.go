package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMissingCredential is returned before any request when a provider needs an API key and none is set
	ErrMissingCredential = errors.New("missing credential")

	// ErrUnauthorized matches provider errors caused by a rejected credential
	ErrUnauthorized = errors.New("unauthorized")

	// ErrQuotaExceeded matches provider errors caused by usage or rate limits
	ErrQuotaExceeded = errors.New("quota exceeded")
)

// ErrorKind classifies a backend failure
type ErrorKind int

const (
	// ErrorKindGeneric is any backend failure that is not recognized more specifically
	ErrorKindGeneric ErrorKind = iota
	// ErrorKindUnauthorized means the backend rejected the credential
	ErrorKindUnauthorized
	// ErrorKindQuotaExceeded means a usage limit was hit
	ErrorKindQuotaExceeded
)

// String returns the string representation of ErrorKind
func (k ErrorKind) String() string {
	switch k {
	case ErrorKindUnauthorized:
		return "Unauthorized"
	case ErrorKindQuotaExceeded:
		return "QuotaExceeded"
	default:
		return "ProviderError"
	}
}

// ProviderError is a classified backend failure
type ProviderError struct {
	Provider string
	Kind     ErrorKind
	Detail   string
	Err      error
}

func (e *ProviderError) Error() string {
	switch e.Kind {
	case ErrorKindUnauthorized:
		return fmt.Sprintf("%s rejected the API key: %s", e.Provider, e.Detail)
	case ErrorKindQuotaExceeded:
		return fmt.Sprintf("%s usage limit reached: %s", e.Provider, e.Detail)
	default:
		return fmt.Sprintf("%s request failed: %s", e.Provider, e.Detail)
	}
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is match ErrUnauthorized and ErrQuotaExceeded by kind
func (e *ProviderError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.Kind == ErrorKindUnauthorized
	case ErrQuotaExceeded:
		return e.Kind == ErrorKindQuotaExceeded
	}
	return false
}

// Backends do not expose structured error codes uniformly, so the error
// text is matched against known wording. Wording changes on the vendor side
// will degrade these to ErrorKindGeneric.
var (
	unauthorizedKeywords = []string{
		"401",
		"unauthorized",
		"invalid api key",
		"invalid_api_key",
		"incorrect api key",
		"api key not valid",
		"api_key_invalid",
		"authentication",
		"permission denied",
		"forbidden",
	}
	quotaKeywords = []string{
		"429",
		"quota",
		"rate limit",
		"rate_limit",
		"too many requests",
		"resource_exhausted",
		"resource exhausted",
		"billing",
	}
)

// ClassifyError wraps a backend error into a *ProviderError. Context
// cancellation and deadline errors are returned unchanged.
func ClassifyError(provider string, err error) error {
	if err == nil {
		return nil
	}

	var providerErr *ProviderError
	if errors.As(err, &providerErr) {
		return err
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	return &ProviderError{
		Provider: provider,
		Kind:     classifyMessage(err.Error()),
		Detail:   err.Error(),
		Err:      err,
	}
}

func classifyMessage(msg string) ErrorKind {
	msg = strings.ToLower(msg)
	for _, keyword := range unauthorizedKeywords {
		if strings.Contains(msg, keyword) {
			return ErrorKindUnauthorized
		}
	}
	for _, keyword := range quotaKeywords {
		if strings.Contains(msg, keyword) {
			return ErrorKindQuotaExceeded
		}
	}
	return ErrorKindGeneric
}

package ai

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownService    = errors.New("unknown service")
	ErrMissingCredential = errors.New("missing credential")
	ErrEmptyPrompt       = errors.New("empty prompt")
)

// ErrorKind classifies what went wrong during a provider call.
type ErrorKind string

const (
	KindNetwork     ErrorKind = "network"      // connection or timeout failure
	KindHTTPStatus  ErrorKind = "http_status"  // non-2xx response
	KindBadResponse ErrorKind = "bad_response" // body does not match the expected envelope
)

// ProviderError wraps a failed provider call with the provider name, the
// failure kind and the underlying cause. Adapters return it for every
// non-success outcome so callers can branch with errors.As.
type ProviderError struct {
	Provider string
	Kind     ErrorKind
	Status   int // HTTP status for KindHTTPStatus, 0 otherwise
	Cause    error
}

func (e *ProviderError) Error() string {
	switch e.Kind {
	case KindHTTPStatus:
		return fmt.Sprintf("%s: status %d", e.Provider, e.Status)
	default:
		return fmt.Sprintf("%s: %s: %v", e.Provider, e.Kind, e.Cause)
	}
}

func (e *ProviderError) Unwrap() error { return e.Cause }

// NetworkError reports a connection or timeout failure.
func NetworkError(provider string, cause error) error {
	return &ProviderError{Provider: provider, Kind: KindNetwork, Cause: cause}
}

// StatusError reports a non-2xx response.
func StatusError(provider string, status int) error {
	return &ProviderError{Provider: provider, Kind: KindHTTPStatus, Status: status}
}

// BadResponseError reports a response body that does not match the provider's
// documented envelope.
func BadResponseError(provider string, cause error) error {
	return &ProviderError{Provider: provider, Kind: KindBadResponse, Cause: cause}
}

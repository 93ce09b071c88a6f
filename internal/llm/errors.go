package llm

import (
	"errors"
	"fmt"
)

// maxErrorBody bounds how much of a provider response body is carried
// inside an error value.
const maxErrorBody = 2000

// UnknownProviderError is returned when a provider id is not in the registry.
type UnknownProviderError struct {
	ID string
}

func (e *UnknownProviderError) Error() string {
	return fmt.Sprintf("unknown provider: %q", e.ID)
}

// MissingCredentialError is returned when a provider requires an API key and
// the environment variable that should hold it is unset or empty. It is a
// configuration error: no network call has been made when it is returned.
type MissingCredentialError struct {
	Provider string
	EnvVar   string
}

func (e *MissingCredentialError) Error() string {
	return fmt.Sprintf("%s: missing API key (set %s)", e.Provider, e.EnvVar)
}

// CatalogUnavailableError is returned when the model listing endpoint fails
// or returns a body that cannot be parsed.
type CatalogUnavailableError struct {
	Provider string
	Status   int
	Body     string
}

func (e *CatalogUnavailableError) Error() string {
	return fmt.Sprintf("%s: model listing failed (status %d): %s", e.Provider, e.Status, e.Body)
}

// EmptyCatalogError is returned when a provider lists no models, so none can
// be auto-selected.
type EmptyCatalogError struct {
	Provider string
}

func (e *EmptyCatalogError) Error() string {
	return fmt.Sprintf("%s: no models available (use an explicit model)", e.Provider)
}

// RequestFailedError is returned for any non-2xx chat response other than
// rate limiting. It carries the status and a truncated body for diagnostics.
type RequestFailedError struct {
	Provider string
	Status   int
	Body     string
}

func (e *RequestFailedError) Error() string {
	return fmt.Sprintf("%s: API error %d: %s", e.Provider, e.Status, e.Body)
}

// TransportError wraps a network-level failure (DNS, connect, timeout).
// These are not retried: only rate limiting is retried under the current
// policy.
type TransportError struct {
	Provider string
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: request failed: %v", e.Provider, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// RateLimitError is returned once every attempt allowed by the retry policy
// has been answered with HTTP 429.
type RateLimitError struct {
	Provider string
	Attempts int
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("%s: rate limited after %d attempts", e.Provider, e.Attempts)
}

// IsConfigError reports whether err is a configuration problem (unknown
// provider or missing credential) rather than a runtime failure.
func IsConfigError(err error) bool {
	var up *UnknownProviderError
	var mc *MissingCredentialError
	return errors.As(err, &up) || errors.As(err, &mc)
}

// truncateBody bounds a response body for inclusion in errors.
func truncateBody(body string) string {
	if len(body) > maxErrorBody {
		return body[:maxErrorBody]
	}
	return body
}

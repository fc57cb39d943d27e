package embedding

import (
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// ErrorKind classifies provider failures so the service can decide between
// retry, fallback, and immediate propagation.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindRateLimited
	KindCapacity // provider-side 5xx / overloaded
	KindUnavailable
	KindAuth
	KindBadRequest
)

func (k ErrorKind) String() string {
	switch k {
	case KindRateLimited:
		return "rate_limited"
	case KindCapacity:
		return "capacity"
	case KindUnavailable:
		return "unavailable"
	case KindAuth:
		return "auth"
	case KindBadRequest:
		return "bad_request"
	default:
		return "unknown"
	}
}

// Transient reports whether a failure of this kind is worth retrying.
// Auth and malformed-request failures never succeed on retry.
func (k ErrorKind) Transient() bool {
	switch k {
	case KindRateLimited, KindCapacity, KindUnavailable:
		return true
	default:
		return false
	}
}

// ProviderError wraps a backend failure with its classification.
type ProviderError struct {
	Provider string
	Kind     ErrorKind
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s embedding (%s): %v", e.Provider, e.Kind, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// ErrFallbackDisabled signals that the primary provider failed terminally and
// degraded local embedding was not permitted by configuration.
var ErrFallbackDisabled = errors.New("embedding fallback disabled")

// classify maps a raw provider error to an ErrorKind. Status codes follow the
// OpenAI-compatible wire contract that the Mistral endpoint speaks.
func classify(provider string, err error) *ProviderError {
	kind := KindUnavailable

	var apiErr *openai.APIError
	var reqErr *openai.RequestError

	status := 0
	switch {
	case errors.As(err, &apiErr):
		status = apiErr.HTTPStatusCode
	case errors.As(err, &reqErr):
		status = reqErr.HTTPStatusCode
	}

	switch {
	case status == 429:
		kind = KindRateLimited
	case status >= 500:
		kind = KindCapacity
	case status == 401 || status == 403:
		kind = KindAuth
	case status == 400 || status == 404 || status == 422:
		kind = KindBadRequest
	}

	return &ProviderError{Provider: provider, Kind: kind, Err: err}
}

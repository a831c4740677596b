package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// RequestError is what providers return on failure. It names the vendor and
// the purpose label of the request (see WithPurpose) and wraps one of the
// typed errors below, so callers match it with errors.As.
type RequestError struct {
	Provider string
	Purpose  string
	Err      error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("%s (%s): %v", e.Provider, e.Purpose, e.Err)
}

func (e *RequestError) Unwrap() error { return e.Err }

// tagError wraps a non-nil provider error with the request's purpose.
func tagError(ctx context.Context, provider string, err error) error {
	if err == nil {
		return nil
	}
	return &RequestError{Provider: provider, Purpose: PurposeFrom(ctx), Err: err}
}

// ErrRateLimit is a 429 from the vendor.
type ErrRateLimit struct {
	RetryAfter time.Duration
	Err        error
}

func (e *ErrRateLimit) Error() string {
	return fmt.Sprintf("rate limited (retry after %s): %v", e.RetryAfter, e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrInvalidResponse means the reply held no usable question object: no
// JSON, or JSON that breaks the kind's schema.
type ErrInvalidResponse struct {
	Content json.RawMessage
	Err     error
}

func (e *ErrInvalidResponse) Error() string {
	return fmt.Sprintf("invalid model reply: %v", e.Err)
}

func (e *ErrInvalidResponse) Unwrap() error { return e.Err }

// ErrProviderUnavailable covers transport failures, 5xx responses and a
// mock with nothing left to serve.
type ErrProviderUnavailable struct {
	Err error
}

func (e *ErrProviderUnavailable) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("LLM provider unavailable: %v", e.Err)
	}
	return "LLM provider unavailable"
}

func (e *ErrProviderUnavailable) Unwrap() error { return e.Err }

// ErrMaxTokensExceeded means the reply was cut off at the token limit.
// Content holds the partial reply.
type ErrMaxTokensExceeded struct {
	Content json.RawMessage
}

func (e *ErrMaxTokensExceeded) Error() string {
	return fmt.Sprintf("model reply truncated at the token limit after %d bytes", len(e.Content))
}

package llm

import (
	"encoding/json"
	"fmt"
	"time"
)

// ErrRateLimit indicates the provider returned a rate limit error (429).
type ErrRateLimit struct {
	RetryAfter time.Duration
	Err        error
}

func (e *ErrRateLimit) Error() string {
	return fmt.Sprintf("rate limited (retry after %s): %v", e.RetryAfter, e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrInvalidResponse indicates the model returned content that could not be
// processed: no text, no JSON-looking payload, a parse failure, or a schema
// violation. The offending content is carried for diagnostics.
type ErrInvalidResponse struct {
	Content json.RawMessage
	Err     error
}

func (e *ErrInvalidResponse) Error() string {
	return fmt.Sprintf("AI response processing failed: %v", e.Err)
}

func (e *ErrInvalidResponse) Unwrap() error { return e.Err }

// ErrSafetyBlocked indicates the provider refused the request on safety
// grounds. Kept distinct from generic unavailability so the block shows up
// as such in event logs.
type ErrSafetyBlocked struct {
	Reason string
	Err    error
}

func (e *ErrSafetyBlocked) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("blocked by provider safety filter (%s): %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("blocked by provider safety filter: %v", e.Err)
}

func (e *ErrSafetyBlocked) Unwrap() error { return e.Err }

// ErrProviderUnavailable indicates the provider is down or unreachable.
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

// ErrMaxTokensExceeded indicates the response was truncated at MaxTokens.
type ErrMaxTokensExceeded struct {
	Content json.RawMessage
}

func (e *ErrMaxTokensExceeded) Error() string {
	return "LLM response truncated: max tokens exceeded"
}

package entity

import (
	"errors"
	"fmt"
)

// Standard domain errors
var (
	// ErrEmptyMessage is the only user-correctable error: the message
	// was empty or whitespace after trimming.
	ErrEmptyMessage = errors.New("message must not be empty")

	// ErrMissingCredential means no API key is configured for the
	// provider the requested model resolves to.
	ErrMissingCredential = errors.New("missing API credential for provider")

	// ErrInvalidTemperature is returned by configuration validation,
	// before any pipeline construction is attempted.
	ErrInvalidTemperature = errors.New("temperature must be a finite number between 0.0 and 2.0")

	ErrRateLimitExceeded = errors.New("daily message limit reached")
)

// GenerationError wraps a failed remote LLM call. The underlying cause
// is reachable via Unwrap for server-side logging but is deliberately
// kept out of Error(), so the raw provider error never reaches a
// client-facing message.
type GenerationError struct {
	Model       string
	Temperature float64
	Err         error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("chat generation failed (model=%s, temperature=%.1f)", e.Model, e.Temperature)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

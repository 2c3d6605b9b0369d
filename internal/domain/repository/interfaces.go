package repository

import (
	"context"

	"travelbot/internal/domain/entity"
)

// Pipeline is the bound unit of prompt template, remote model client
// and output parsing produced for one configuration. Implementations
// own timeout and retry enforcement; callers never retry.
type Pipeline interface {
	Invoke(ctx context.Context, question, tripContext string) (string, error)
}

// PipelineFactory validates a configuration and, if valid, constructs
// a Pipeline bound to it. Validation failures (credential presence,
// temperature bounds) are distinct error values from construction
// failures.
type PipelineFactory interface {
	Build(systemPrompt, model string, temperature float64) (Pipeline, error)
}

// MessageLimiter bounds how many messages a sender may submit per day.
type MessageLimiter interface {
	Allow(ctx context.Context, sender string) (bool, error)
	Record(ctx context.Context, sender string) error
}

// FlightExtractor turns confirmation-email text into a structured
// manifest of flights and passengers.
type FlightExtractor interface {
	Extract(ctx context.Context, email string) (*entity.FlightManifest, error)
}

// Multi-turn conversation memory is an extension point, not a feature:
// a HistoryStore (LoadRecent/Append keyed by chat id) would be injected
// into the responder, never into pipeline construction. The service is
// stateless across requests until that exists.

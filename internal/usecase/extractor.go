package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"travelbot/internal/domain/entity"
)

// extractionSystemPrompt forces plain JSON output matching
// entity.FlightManifest. Confirmation emails regularly carry several
// passengers and several flight segments, so both are lists.
const extractionSystemPrompt = `Extract structured flight and passenger information from the airline confirmation email as JSON (ISO 8601 dates and times).
Respond ONLY with a JSON object of the shape:
{"flights": [{"flight_number": "", "airline_name": "", "departure_date": "", "departure_time": "", "arrival_date": "", "arrival_time": "", "origin": "", "destination": "", "passengers": [{"first_name": "", "last_name": ""}]}]}
There can be multiple passengers and multiple flights in a single email. Omit fields you cannot find. Do not explain.`

// FlightExtractor runs a fixed extraction configuration through the
// same chain cache as chat, so repeated extractions reuse one built
// pipeline.
type FlightExtractor struct {
	chains *ChainCache
	model  string
	log    *slog.Logger
}

func NewFlightExtractor(chains *ChainCache, model string, log *slog.Logger) *FlightExtractor {
	return &FlightExtractor{chains: chains, model: model, log: log}
}

// Extract turns confirmation-email text into a manifest. Extraction
// runs at temperature 0; there is nothing creative about it.
func (e *FlightExtractor) Extract(ctx context.Context, email string) (*entity.FlightManifest, error) {
	if strings.TrimSpace(email) == "" {
		return nil, entity.ErrEmptyMessage
	}

	pipeline, err := e.chains.GetOrBuild(extractionSystemPrompt, e.model, 0)
	if err != nil {
		return nil, err
	}

	e.log.Info("flight extraction", "model", e.model, "email_len", len(email))
	raw, err := pipeline.Invoke(ctx, email, "")
	if err != nil {
		return nil, &entity.GenerationError{Model: e.model, Temperature: 0, Err: err}
	}

	var manifest entity.FlightManifest
	if err := json.Unmarshal([]byte(stripFences(raw)), &manifest); err != nil {
		return nil, fmt.Errorf("parse flight manifest: %w", err)
	}
	return &manifest, nil
}

// stripFences removes a markdown code fence the model sometimes wraps
// around its JSON despite the instructions.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

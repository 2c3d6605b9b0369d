package usecase

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"travelbot/internal/domain/entity"
	"travelbot/internal/tripcontext"
)

// DefaultSystemPrompt instructs the model to answer from the itinerary
// text, which the pipeline substitutes for the {trip_context}
// placeholder at invoke time.
const DefaultSystemPrompt = "You are a chatbot for a travel app that answers questions about the travel itinerary. " +
	"The following text in triple backticks contains the travel itinerary for all the family members that are traveling. " +
	"Reference the trip itinerary for information to answer questions. If there isn't enough detail in the question, " +
	"ask for additional information. If the information doesn't exist in the itinerary, let the user know.\n\n" +
	"Format responses for a text messaging UI: be concise, use bullet points or tables where helpful, " +
	"and include URLs when relevant.\n\n" +
	"Trip itinerary:\n```{trip_context}```"

// Options selects the configuration for one response. Zero values fall
// back to the responder's defaults, so handlers can pass Options{}.
type Options struct {
	Model        string
	Temperature  float64
	SystemPrompt string
	// ContextPath overrides the configured itinerary file for this
	// request only.
	ContextPath string
}

// Responder is the orchestrating entry point: validate the message,
// load the itinerary context, obtain a pipeline from the cache and
// invoke it. It never retries; the pipeline owns timeout and retry.
type Responder struct {
	chains   *ChainCache
	contexts *tripcontext.Loader
	defaults Options
	log      *slog.Logger
}

func NewResponder(chains *ChainCache, contexts *tripcontext.Loader, defaults Options, log *slog.Logger) *Responder {
	return &Responder{chains: chains, contexts: contexts, defaults: defaults, log: log}
}

// Respond produces the model's answer to message.
//
// Error kinds: entity.ErrEmptyMessage for a blank message, a factory
// validation error for a bad configuration, and *entity.GenerationError
// for any remote failure. A missing context file is not an error.
func (r *Responder) Respond(ctx context.Context, message string, opts Options) (string, error) {
	trimmed := strings.TrimSpace(message)
	if trimmed == "" {
		r.log.Error("chat rejected", "reason", "empty message")
		return "", entity.ErrEmptyMessage
	}
	opts = r.fill(opts)

	r.log.Info("chat generate", "preview", previewMsg(trimmed, 80))

	path := r.contexts.ResolvePath(opts.ContextPath)
	tripCtx := r.contexts.Load(path)

	pipeline, err := r.chains.GetOrBuild(opts.SystemPrompt, opts.Model, opts.Temperature)
	if err != nil {
		return "", err
	}

	start := time.Now()
	r.log.Info("chain invoke start", "model", opts.Model, "temperature", opts.Temperature)

	reply, err := pipeline.Invoke(ctx, trimmed, tripCtx)
	elapsed := time.Since(start)
	if err != nil {
		r.log.Error("chain invoke failed",
			"model", opts.Model,
			"temperature", opts.Temperature,
			"elapsed_ms", elapsed.Milliseconds(),
			"err", err,
		)
		return "", &entity.GenerationError{Model: opts.Model, Temperature: opts.Temperature, Err: err}
	}

	r.log.Info("chain invoke done",
		"model", opts.Model,
		"temperature", opts.Temperature,
		"elapsed_ms", elapsed.Milliseconds(),
	)
	return reply, nil
}

// Stats exposes chain-cache counters for the readiness endpoint.
func (r *Responder) Stats() CacheStats {
	return r.chains.Stats()
}

func (r *Responder) fill(opts Options) Options {
	if opts.Model == "" {
		opts.Model = r.defaults.Model
	}
	if opts.Temperature == 0 {
		opts.Temperature = r.defaults.Temperature
	}
	if opts.SystemPrompt == "" {
		opts.SystemPrompt = r.defaults.SystemPrompt
	}
	if opts.ContextPath == "" {
		opts.ContextPath = r.defaults.ContextPath
	}
	return opts
}

// previewMsg collapses newlines and truncates so log lines stay one
// line and bounded, whatever the user pasted in.
func previewMsg(msg string, max int) string {
	flat := strings.Join(strings.Fields(msg), " ")
	if len(flat) <= max {
		return flat
	}
	return flat[:max] + "..."
}

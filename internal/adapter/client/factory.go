package client

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"sync"
	"time"

	"google.golang.org/genai"

	"travelbot/internal/domain/entity"
	"travelbot/internal/domain/repository"
)

// Factory builds pipelines for the chain cache. Validation (bounds,
// credential presence) runs before any construction so a bad
// configuration is distinguishable from a construction failure.
type Factory struct {
	openAIKey  string
	geminiKey  string
	timeout    time.Duration
	maxRetries int
	log        *slog.Logger

	// One genai client is shared by every Gemini pipeline.
	geminiOnce   sync.Once
	geminiClient *genai.Client
	geminiErr    error
}

var _ repository.PipelineFactory = (*Factory)(nil)

func NewFactory(openAIKey, geminiKey string, timeout time.Duration, maxRetries int, log *slog.Logger) *Factory {
	return &Factory{
		openAIKey:  openAIKey,
		geminiKey:  geminiKey,
		timeout:    timeout,
		maxRetries: maxRetries,
		log:        log,
	}
}

// Build validates the configuration and constructs the pipeline for
// it. Provider selection is by model name: gemini-* goes to the Gemini
// API, everything else to OpenAI.
func (f *Factory) Build(systemPrompt, model string, temperature float64) (repository.Pipeline, error) {
	if math.IsNaN(temperature) || math.IsInf(temperature, 0) || temperature < 0.0 || temperature > 2.0 {
		return nil, fmt.Errorf("%w: got %v", entity.ErrInvalidTemperature, temperature)
	}

	if strings.HasPrefix(model, "gemini") {
		if f.geminiKey == "" {
			return nil, fmt.Errorf("model %s: %w (set GEMINI_API_KEY)", model, entity.ErrMissingCredential)
		}
		client, err := f.sharedGeminiClient()
		if err != nil {
			return nil, fmt.Errorf("init gemini client: %w", err)
		}
		f.log.Debug("pipeline constructed", "provider", "gemini", "model", model, "temperature", temperature)
		return NewGeminiPipelineFromClient(client, systemPrompt, model, temperature), nil
	}

	if f.openAIKey == "" {
		return nil, fmt.Errorf("model %s: %w (set OPENAI_API_KEY)", model, entity.ErrMissingCredential)
	}
	f.log.Debug("pipeline constructed", "provider", "openai", "model", model, "temperature", temperature)
	return NewOpenAIPipeline(f.openAIKey, systemPrompt, model, temperature, f.timeout, f.maxRetries), nil
}

func (f *Factory) sharedGeminiClient() (*genai.Client, error) {
	f.geminiOnce.Do(func() {
		f.geminiClient, f.geminiErr = genai.NewClient(context.Background(), &genai.ClientConfig{
			APIKey:  f.geminiKey,
			Backend: genai.BackendGeminiAPI,
		})
	})
	return f.geminiClient, f.geminiErr
}

package client

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIPipeline binds a system prompt, model and temperature to one
// OpenAI chat-completion client. It owns the safety layer for the
// remote call: a per-invoke timeout and a bounded retry with jittered
// backoff on throttling and server errors. Callers never retry.
type OpenAIPipeline struct {
	client       *openai.Client
	systemPrompt string
	model        string
	temperature  float64
	timeout      time.Duration
	maxRetries   int
	baseDelay    time.Duration
}

func NewOpenAIPipeline(apiKey, systemPrompt, model string, temperature float64, timeout time.Duration, maxRetries int) *OpenAIPipeline {
	return &OpenAIPipeline{
		client:       openai.NewClient(apiKey),
		systemPrompt: systemPrompt,
		model:        model,
		temperature:  temperature,
		timeout:      timeout,
		maxRetries:   maxRetries,
		baseDelay:    500 * time.Millisecond,
	}
}

func (p *OpenAIPipeline) Invoke(ctx context.Context, question, tripContext string) (string, error) {
	// Scoped timeout so one slow request cannot hang the server.
	resCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	req := openai.ChatCompletionRequest{
		Model:       p.model,
		Temperature: float32(p.temperature),
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: renderSystemPrompt(p.systemPrompt, tripContext)},
			{Role: openai.ChatMessageRoleUser, Content: question},
		},
	}

	var lastErr error
	for attempt := 0; attempt <= p.maxRetries; attempt++ {
		resp, err := p.client.CreateChatCompletion(resCtx, req)
		if err == nil {
			if len(resp.Choices) == 0 {
				return "", errors.New("model returned no choices")
			}
			return strings.TrimSpace(resp.Choices[0].Message.Content), nil
		}
		lastErr = err

		if !isRetryable(err) || attempt == p.maxRetries {
			break
		}
		select {
		case <-time.After(backoff(p.baseDelay, attempt)):
		case <-resCtx.Done():
			return "", resCtx.Err()
		}
	}
	return "", lastErr
}

func isRetryable(err error) bool {
	msg := strings.ToLower(err.Error())
	// Retry on rate limits (429) and server errors (5xx)
	return strings.Contains(msg, "429") ||
		strings.Contains(msg, "500") ||
		strings.Contains(msg, "503") ||
		strings.Contains(msg, "overloaded")
}

func backoff(base time.Duration, attempt int) time.Duration {
	wait := float64(base) * float64(int(1)<<attempt)
	jitter := (rand.Float64() * 0.2) * wait // 20% jitter
	return time.Duration(wait + jitter)
}

package client

import (
	"context"
	"errors"
	"strings"

	"google.golang.org/genai"
)

// GeminiPipeline is the second provider: models prefixed "gemini" are
// served through the Gemini API instead of OpenAI.
type GeminiPipeline struct {
	client       *genai.Client
	systemPrompt string
	model        string
	temperature  float64
}

func NewGeminiPipeline(ctx context.Context, apiKey, systemPrompt, model string, temperature float64) (*GeminiPipeline, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	return NewGeminiPipelineFromClient(client, systemPrompt, model, temperature), nil
}

func NewGeminiPipelineFromClient(c *genai.Client, systemPrompt, model string, temperature float64) *GeminiPipeline {
	return &GeminiPipeline{
		client:       c,
		systemPrompt: systemPrompt,
		model:        model,
		temperature:  temperature,
	}
}

func (g *GeminiPipeline) Invoke(ctx context.Context, question, tripContext string) (string, error) {
	temp := float32(g.temperature)
	cfg := &genai.GenerateContentConfig{
		Temperature:       &temp,
		SystemInstruction: genai.NewContentFromText(renderSystemPrompt(g.systemPrompt, tripContext), genai.RoleUser),
	}

	result, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(question), cfg)
	if err != nil {
		return "", err
	}

	text := strings.TrimSpace(result.Text())
	if text == "" {
		return "", errors.New("model returned an empty message")
	}
	return text, nil
}

package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"google.golang.org/genai"

	"hirestack/recruit-api/internal/apperr"
)

// GeminiService is the thin client for the conversational AI backend used
// for ranking and chat. Calls are bounded by a timeout; transport failures
// surface as UpstreamUnavailable, never as a hang.
type GeminiService interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
	GenerateText(ctx context.Context, prompt string, temperature float32) (string, error)
	GenerateTextWithRetry(ctx context.Context, prompt string, temperature float32, maxRetries int) (string, error)
}

type geminiService struct {
	client     *genai.Client
	modelName  string
	embedModel string
	timeout    time.Duration
}

func NewGeminiService(apiKey string, timeout time.Duration) (GeminiService, error) {
	ctx := context.Background()

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	return &geminiService{
		client:     client,
		modelName:  "gemini-2.5-flash",
		embedModel: "text-embedding-004",
		timeout:    timeout,
	}, nil
}

func (g *geminiService) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	// Truncate overly long input; the embedding model caps its context.
	if len(text) > 40000 {
		text = text[:40000]
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	result, err := g.client.Models.EmbedContent(ctx, g.embedModel, genai.Text(text), nil)
	if err != nil {
		return nil, apperr.Wrap(apperr.ErrUpstreamUnavailable, "embedding request failed: %v", err)
	}
	if result == nil || len(result.Embeddings) == 0 {
		return nil, apperr.Wrap(apperr.ErrInvalidUpstreamResponse, "empty embedding result")
	}
	return result.Embeddings[0].Values, nil
}

func (g *geminiService) GenerateText(ctx context.Context, prompt string, temperature float32) (string, error) {
	config := &genai.GenerateContentConfig{
		Temperature:     &temperature,
		MaxOutputTokens: 4096,
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, genai.Text(prompt), config)
	if err != nil {
		return "", apperr.Wrap(apperr.ErrUpstreamUnavailable, "generate request failed: %v", err)
	}
	if resp == nil {
		return "", apperr.Wrap(apperr.ErrInvalidUpstreamResponse, "nil response")
	}

	text := resp.Text()
	if text == "" {
		return "", apperr.Wrap(apperr.ErrInvalidUpstreamResponse, "no text content in response")
	}
	return text, nil
}

func (g *geminiService) GenerateTextWithRetry(ctx context.Context, prompt string, temperature float32, maxRetries int) (string, error) {
	var lastErr error

	for attempt := 1; attempt <= maxRetries; attempt++ {
		result, err := g.GenerateText(ctx, prompt, temperature)
		if err == nil {
			return result, nil
		}
		lastErr = err

		select {
		case <-ctx.Done():
			return "", apperr.Wrap(apperr.ErrUpstreamUnavailable, "context cancelled: %v", ctx.Err())
		default:
		}

		if attempt < maxRetries {
			log.Printf("gemini attempt %d failed: %v, retrying", attempt, err)
		}
	}

	return "", fmt.Errorf("failed after %d attempts: %w", maxRetries, lastErr)
}

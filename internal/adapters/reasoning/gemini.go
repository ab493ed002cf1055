package reasoning

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/derslik/derslik/pkg/logger"
)

const geminiName = "gemini"

// GeminiProvider asks Google's Gemini API for a student behavior.
type GeminiProvider struct {
	client *genai.Client
	model  string
	logger logger.Logger
}

// NewGeminiProvider creates a Gemini-backed provider. An empty API key
// returns ErrNotConfigured so callers can skip the tier entirely.
func NewGeminiProvider(ctx context.Context, apiKey, model string) (*GeminiProvider, error) {
	if apiKey == "" {
		return nil, ErrNotConfigured
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return &GeminiProvider{
		client: client,
		model:  model,
		logger: logger.Named("reasoning.gemini"),
	}, nil
}

// Name implements Provider.
func (p *GeminiProvider) Name() string { return geminiName }

// Suggest implements Provider.
func (p *GeminiProvider) Suggest(ctx context.Context, text, topicContext string) (Result, error) {
	contents := []*genai.Content{
		genai.NewContentFromText(buildPrompt(text, topicContext), genai.RoleUser),
	}

	resp, err := p.client.Models.GenerateContent(ctx, p.model, contents, &genai.GenerateContentConfig{
		Temperature:      genai.Ptr(float32(0.7)),
		MaxOutputTokens:  150,
		ResponseMIMEType: "application/json",
	})
	if err != nil {
		return Result{}, fmt.Errorf("gemini generate: %w", err)
	}

	raw := resp.Text()
	if strings.TrimSpace(raw) == "" {
		return Result{}, ErrEmptySuggestion
	}

	result := ParseSuggestion(raw)
	if result.Degraded {
		p.logger.Warn(ctx, "gemini returned malformed payload, using raw text",
			logger.Int("raw_len", len(raw)))
	}
	return result, nil
}

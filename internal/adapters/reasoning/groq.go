package reasoning

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/derslik/derslik/pkg/logger"
)

const (
	groqName    = "groq"
	groqBaseURL = "https://api.groq.com/openai/v1"
)

// GroqProvider asks Groq's OpenAI-compatible chat API for a student
// behavior. It is the fast secondary tier behind Gemini.
type GroqProvider struct {
	client openai.Client
	model  string
	logger logger.Logger
}

// NewGroqProvider creates a Groq-backed provider. An empty API key
// returns ErrNotConfigured so callers can skip the tier entirely.
func NewGroqProvider(apiKey, model string) (*GroqProvider, error) {
	if apiKey == "" {
		return nil, ErrNotConfigured
	}

	return &GroqProvider{
		client: openai.NewClient(
			option.WithAPIKey(apiKey),
			option.WithBaseURL(groqBaseURL),
		),
		model:  model,
		logger: logger.Named("reasoning.groq"),
	}, nil
}

// Name implements Provider.
func (p *GroqProvider) Name() string { return groqName }

// Suggest implements Provider.
func (p *GroqProvider) Suggest(ctx context.Context, text, topicContext string) (Result, error) {
	resp, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(p.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(buildPrompt(text, topicContext)),
		},
		Temperature: openai.Float(0.7),
		MaxTokens:   openai.Int(150),
	})
	if err != nil {
		return Result{}, fmt.Errorf("groq completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return Result{}, ErrEmptySuggestion
	}

	raw := resp.Choices[0].Message.Content
	if strings.TrimSpace(raw) == "" {
		return Result{}, ErrEmptySuggestion
	}

	result := ParseSuggestion(raw)
	if result.Degraded {
		p.logger.Warn(ctx, "groq returned malformed payload, using raw text",
			logger.Int("raw_len", len(raw)))
	}
	return result, nil
}

// Package voice turns recorded audio into text for the decision flow.
package voice

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/derslik/derslik/pkg/logger"
)

const (
	groqBaseURL = "https://api.groq.com/openai/v1"

	// transcribePrompt biases the model towards classroom Turkish.
	transcribePrompt = "Sanal sınıf ortamında Türkçe öğretmen konuşması."
)

// ErrNotConfigured marks a transcriber created without an API key.
var ErrNotConfigured = errors.New("transcriber not configured")

// Transcriber converts audio bytes to text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte) (string, error)
}

// GroqTranscriber implements Transcriber over Groq's hosted Whisper.
type GroqTranscriber struct {
	client openai.Client
	model  string
	logger logger.Logger
}

// NewGroqTranscriber creates a Whisper-backed transcriber. An empty API
// key returns ErrNotConfigured so callers can degrade to text-only.
func NewGroqTranscriber(apiKey, model string) (*GroqTranscriber, error) {
	if apiKey == "" {
		return nil, ErrNotConfigured
	}

	return &GroqTranscriber{
		client: openai.NewClient(
			option.WithAPIKey(apiKey),
			option.WithBaseURL(groqBaseURL),
		),
		model:  model,
		logger: logger.Named("voice"),
	}, nil
}

// Transcribe sends the audio to Whisper and returns the trimmed text.
func (t *GroqTranscriber) Transcribe(ctx context.Context, audio []byte) (string, error) {
	if len(audio) == 0 {
		return "", nil
	}

	resp, err := t.client.Audio.Transcriptions.New(ctx, openai.AudioTranscriptionNewParams{
		File:     openai.File(bytes.NewReader(audio), "input.wav", "audio/wav"),
		Model:    openai.AudioModel(t.model),
		Language: openai.String("tr"),
		Prompt:   openai.String(transcribePrompt),
	})
	if err != nil {
		return "", fmt.Errorf("transcribe audio: %w", err)
	}

	text := strings.TrimSpace(resp.Text)
	t.logger.Debug(ctx, "audio transcribed",
		logger.Int("audio_bytes", len(audio)),
		logger.Int("text_len", len(text)))
	return text, nil
}

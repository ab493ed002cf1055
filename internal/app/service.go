// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/derslik/derslik/internal/adapters/reasoning"
	"github.com/derslik/derslik/internal/adapters/voice"
	"github.com/derslik/derslik/internal/adapters/ws"
	"github.com/derslik/derslik/internal/auth"
	"github.com/derslik/derslik/internal/config"
	"github.com/derslik/derslik/internal/domain/intent"
	"github.com/derslik/derslik/internal/domain/model"
	"github.com/derslik/derslik/internal/domain/pipeline"
	"github.com/derslik/derslik/internal/domain/state"
	"github.com/derslik/derslik/pkg/logger"
)

// Service wires the classroom components together and implements the
// API dependency bundle.
type Service struct {
	mu sync.RWMutex

	// Configuration
	cfg *config.Config

	// Core components
	store       *state.InMemoryStore
	classifier  *intent.KeywordClassifier
	pipe        *pipeline.Pipeline
	gateway     *ws.Gateway
	transcriber voice.Transcriber

	// Test seams
	providers []reasoning.Provider

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithConfig sets the process configuration. Required.
func WithConfig(cfg *config.Config) Option {
	return func(s *Service) {
		if cfg != nil {
			s.cfg = cfg
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithProviders replaces the reasoning tiers, for tests.
func WithProviders(providers ...reasoning.Provider) Option {
	return func(s *Service) {
		s.providers = providers
	}
}

// WithTranscriber replaces the speech-to-text backend, for tests.
func WithTranscriber(t voice.Transcriber) Option {
	return func(s *Service) {
		s.transcriber = t
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		cfg: config.New(),
	}

	// Apply all options
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes and starts the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting classroom service...")

	s.store = state.NewInMemoryStore()
	s.classifier = intent.NewKeywordClassifier()

	if s.providers == nil {
		s.providers = s.buildProviders(ctx)
	}
	if s.transcriber == nil {
		s.transcriber = s.buildTranscriber(ctx)
	}

	pipe, err := pipeline.New(
		pipeline.WithStore(s.store),
		pipeline.WithClassifier(s.classifier),
		pipeline.WithProviders(s.providers...),
		pipeline.WithReasoningTimeout(time.Duration(s.cfg.ReasoningTimeoutMS)*time.Millisecond),
	)
	if err != nil {
		return fmt.Errorf("build pipeline: %w", err)
	}
	s.pipe = pipe

	gateway, err := ws.New(
		ws.WithDecoder(auth.NewDecoder(s.cfg.JWTSecret, s.cfg.DevMode)),
		ws.WithProcessor(pipe),
	)
	if err != nil {
		return fmt.Errorf("build gateway: %w", err)
	}
	s.gateway = gateway

	s.started = true
	s.logger.Info(ctx, "classroom service started",
		logger.Int("reasoning_providers", len(s.providers)),
		logger.Bool("speech_to_text", s.transcriber != nil),
		logger.Bool("dev_mode", s.cfg.DevMode),
		logger.String("default_room", s.cfg.DefaultRoom),
	)

	return nil
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.logger.Info(context.Background(), "stopping classroom service...")
	s.started = false
	s.logger.Info(context.Background(), "classroom service stopped")
}

// buildProviders assembles the reasoning tiers in fallback order.
// Unconfigured providers are skipped, not failed: the canned tier keeps
// the pipeline alive without any API key at all.
func (s *Service) buildProviders(ctx context.Context) []reasoning.Provider {
	var providers []reasoning.Provider

	gemini, err := reasoning.NewGeminiProvider(ctx, s.cfg.GeminiAPIKey, s.cfg.GeminiModel)
	switch {
	case err == nil:
		providers = append(providers, gemini)
	case errors.Is(err, reasoning.ErrNotConfigured):
		s.logger.Warn(ctx, "gemini provider disabled: no API key")
	default:
		s.logger.Error(ctx, "gemini provider unavailable", logger.Error(err))
	}

	groq, err := reasoning.NewGroqProvider(s.cfg.GroqAPIKey, s.cfg.GroqModel)
	switch {
	case err == nil:
		providers = append(providers, groq)
	case errors.Is(err, reasoning.ErrNotConfigured):
		s.logger.Warn(ctx, "groq provider disabled: no API key")
	default:
		s.logger.Error(ctx, "groq provider unavailable", logger.Error(err))
	}

	return providers
}

// buildTranscriber assembles the speech-to-text backend, or nil when
// unconfigured; voice inputs then resolve to empty text.
func (s *Service) buildTranscriber(ctx context.Context) voice.Transcriber {
	t, err := voice.NewGroqTranscriber(s.cfg.GroqAPIKey, s.cfg.STTModel)
	if err != nil {
		s.logger.Warn(ctx, "speech-to-text disabled: no API key")
		return nil
	}
	return t
}

// Transcriber exposes the speech-to-text backend for the HTTP layer.
// Nil when voice input is unconfigured.
func (s *Service) Transcriber() voice.Transcriber {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.transcriber
}

// Dispatch implements the API dependency: one event in, one decision
// out, fan-out included.
func (s *Service) Dispatch(ctx context.Context, roomID string, event model.DecisionEvent) (model.Decision, error) {
	return s.gateway.Dispatch(ctx, roomID, event)
}

// Connect implements the API dependency for websocket registration.
func (s *Service) Connect(transport ws.Transport, roomID, token string) (auth.Claims, error) {
	return s.gateway.Connect(transport, roomID, token)
}

// ReadLoop implements the API dependency for inbound socket frames.
func (s *Service) ReadLoop(ctx context.Context, transport ws.Transport) {
	s.gateway.ReadLoop(ctx, transport)
}

// ListClients implements the API dependency for room introspection.
func (s *Service) ListClients(roomID string) []ws.ClientInfo {
	return s.gateway.ListClients(roomID)
}

// GetStats returns service statistics for the stats endpoint.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.started {
		return map[string]interface{}{"started": false}
	}

	return map[string]interface{}{
		"started":             true,
		"students_tracked":    s.store.Count(context.Background()),
		"rooms":               s.gateway.RoomCount(),
		"connections":         s.gateway.ConnectionCount(),
		"reasoning_providers": len(s.providers),
		"speech_to_text":      s.transcriber != nil,
		"default_room":        s.cfg.DefaultRoom,
	}
}

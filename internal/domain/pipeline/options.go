package pipeline

import (
	"time"

	"github.com/derslik/derslik/internal/adapters/reasoning"
	"github.com/derslik/derslik/internal/domain/intent"
	"github.com/derslik/derslik/internal/domain/state"
	"github.com/derslik/derslik/pkg/logger"
)

// Option applies a configuration option to the Pipeline.
type Option func(*Pipeline)

// WithStore sets the student state store. Required.
func WithStore(s state.Store) Option {
	return func(p *Pipeline) {
		if s != nil {
			p.store = s
		}
	}
}

// WithClassifier sets the intent classifier. Required.
func WithClassifier(c intent.Classifier) Option {
	return func(p *Pipeline) {
		if c != nil {
			p.classifier = c
		}
	}
}

// WithProviders sets the reasoning tiers in fallback order.
func WithProviders(providers ...reasoning.Provider) Option {
	return func(p *Pipeline) {
		p.providers = providers
	}
}

// WithCanned replaces the static behavior tier.
func WithCanned(c *reasoning.Canned) Option {
	return func(p *Pipeline) {
		if c != nil {
			p.canned = c
		}
	}
}

// WithReasoningTimeout bounds each provider call. Zero disables the
// per-call bound; the caller's context still applies.
func WithReasoningTimeout(d time.Duration) Option {
	return func(p *Pipeline) {
		if d >= 0 {
			p.timeout = d
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(l logger.Logger) Option {
	return func(p *Pipeline) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithClock sets the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) {
		if now != nil {
			p.now = now
		}
	}
}

// WithIDGenerator sets the decision id source, for tests.
func WithIDGenerator(gen func() string) Option {
	return func(p *Pipeline) {
		if gen != nil {
			p.newID = gen
		}
	}
}

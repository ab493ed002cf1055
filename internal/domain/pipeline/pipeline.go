// Package pipeline turns one inbound event into one state mutation and
// one typed decision.
//
// The stage order is fixed: classify, load state, rule lookup, reasoning
// with fallback, animation constraint, sleepy coherence, commit,
// assemble. Reasoning is the only stage doing external I/O and it runs
// without any state lock held; the commit re-reads and clamps under the
// student's lock instead.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/derslik/derslik/internal/adapters/reasoning"
	"github.com/derslik/derslik/internal/domain/intent"
	"github.com/derslik/derslik/internal/domain/model"
	"github.com/derslik/derslik/internal/domain/rules"
	"github.com/derslik/derslik/internal/domain/state"
	"github.com/derslik/derslik/pkg/logger"
	"github.com/derslik/derslik/pkg/metrics"
)

// Sleepy coherence constants. A sleepy student must never look
// awake-and-active, whatever the reasoning tier proposed.
const (
	sleepyAnimation = "sleepy_yawn"
	sleepyReply     = "Mhmm... (esner)... Tamam..."
	sleepyEmotion   = "sleepy"
)

// degradedConfidence caps the confidence of decisions whose reply was
// salvaged from a malformed provider payload.
const degradedConfidence = 0.3

// sleepyAccepted are the animations a sleepy student is allowed to play.
var sleepyAccepted = map[string]struct{}{
	"sleepy":        {},
	"yawn":          {},
	sleepyAnimation: {},
}

// commandActivities maps command intents to the activity they leave the
// student in.
var commandActivities = map[string]string{
	"command_sit":   "sitting",
	"command_stand": "standing",
}

// Pipeline orchestrates the decision stages for one event at a time.
// It is safe for concurrent use; per-student serialization lives in the
// state store, not here.
type Pipeline struct {
	store      state.Store
	classifier intent.Classifier
	providers  []reasoning.Provider
	canned     *reasoning.Canned
	timeout    time.Duration
	logger     logger.Logger
	now        func() time.Time
	newID      func() string
}

// New creates a pipeline with configuration options. A store and a
// classifier are required; providers are optional (the canned tier
// always backstops them).
func New(opts ...Option) (*Pipeline, error) {
	p := &Pipeline{
		canned: reasoning.NewCanned(),
		logger: logger.Named("pipeline"),
		now:    time.Now,
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(p)
	}

	if p.store == nil {
		return nil, fmt.Errorf("%w: store", ErrMissingDependency)
	}
	if p.classifier == nil {
		return nil, fmt.Errorf("%w: classifier", ErrMissingDependency)
	}
	return p, nil
}

// Process runs one event through the stage sequence.
//
// Reasoning failures never surface: every event produces a usable, if
// degraded, decision. Only classifier failure is fatal to the event.
func (p *Pipeline) Process(ctx context.Context, event model.DecisionEvent) (model.Decision, error) {
	start := p.now()

	if event.StudentID == "" {
		return model.Decision{}, ErrMissingStudentID
	}

	cls, err := p.classifier.Classify(ctx, event.Content, intent.Context{
		TeacherAction: event.TeacherAction,
		InputType:     event.InputType,
		Source:        event.Source,
	})
	if err != nil {
		return model.Decision{}, fmt.Errorf("classify: %w", err)
	}
	metrics.RecordIntentDetected(cls.Intent)

	before := p.store.Get(ctx, event.StudentID)
	effect := rules.Lookup(cls.Intent)

	choice := p.reason(ctx, event.Content, cls.Intent)
	for _, reason := range choice.Skipped {
		metrics.RecordReasoningFallback(reason)
	}

	suggestion := p.constrain(before, cls.Intent, choice.Result.Suggestion)

	after := p.store.Update(ctx, event.StudentID, state.Delta{
		AttentionDelta: effect.AttentionDelta,
		EnergyDelta:    effect.EnergyDelta,
		Mood:           effect.Mood,
		Activity:       commandActivities[cls.Intent],
	})

	confidence := cls.Confidence
	if choice.Result.Degraded && confidence > degradedConfidence {
		confidence = degradedConfidence
	}

	emotion := suggestion.Emotion
	if emotion == "" {
		emotion = string(after.Mood)
	}

	latency := p.now().Sub(start).Milliseconds()
	decision := model.Decision{
		Animation:    suggestion.Animation,
		ReplyText:    suggestion.ReplyText,
		Emotion:      emotion,
		Confidence:   confidence,
		StudentState: rules.ProjectMood(after.Mood),
		Trace: model.DecisionTrace{
			Intent:          cls.Intent,
			Sentiment:       cls.Sentiment,
			RuleApplied:     effect.RuleID,
			ReasoningSource: choice.Source,
			StateBefore:     before,
			StateAfter:      after,
		},
		Meta: model.Meta{
			Timestamp:  start.UTC().Format(time.RFC3339Nano),
			Source:     event.Source,
			LatencyMS:  latency,
			DecisionID: p.newID(),
		},
	}

	metrics.RecordDecisionProcessed()
	metrics.RecordDecisionLatency(float64(latency))

	p.logger.Debug(ctx, "decision assembled",
		logger.String("student_id", event.StudentID),
		logger.String("intent", cls.Intent),
		logger.String("reasoning_source", choice.Source),
		logger.Int64("latency_ms", latency))

	return decision, nil
}

// reason collects provider outcomes in tier order and selects one.
// Each provider gets the configured timeout; zero means wait for the
// provider or the caller's context, whichever gives up first.
func (p *Pipeline) reason(ctx context.Context, text, intentLabel string) reasoning.Choice {
	outcomes := make([]reasoning.Outcome, 0, len(p.providers))
	for _, provider := range p.providers {
		callCtx := ctx
		cancel := func() {}
		if p.timeout > 0 {
			callCtx, cancel = context.WithTimeout(ctx, p.timeout)
		}

		result, err := provider.Suggest(callCtx, text, topicContext(intentLabel))
		cancel()

		if err != nil {
			p.logger.Warn(ctx, "reasoning provider failed",
				logger.String("provider", provider.Name()),
				logger.Error(err))
		}
		outcomes = append(outcomes, reasoning.Outcome{
			Source: provider.Name(),
			Result: result,
			Err:    err,
		})

		if err == nil && result.Suggestion.ReplyText != "" {
			break
		}
	}

	return reasoning.Select(outcomes, p.canned.Pick(intentLabel))
}

// constrain applies the animation safety rules in increasing order of
// authority: catalog coercion, then command ground truth, then sleepy
// coherence, which always has the last word.
func (p *Pipeline) constrain(before model.StudentState, intentLabel string, s model.Suggestion) model.Suggestion {
	if !rules.AnimationAllowed(s.Animation) {
		s.Animation = rules.CoerceAnimation(s.ReplyText)
	}

	if forced, ok := rules.CommandAnimation(intentLabel); ok {
		s.Animation = forced
	}

	if before.Mood == model.MoodSleepy {
		if _, ok := sleepyAccepted[s.Animation]; !ok {
			s.Animation = sleepyAnimation
			s.ReplyText = sleepyReply
			s.Emotion = sleepyEmotion
			metrics.RecordCoherenceOverride()
		}
	}

	return s
}

// topicContext renders the classifier result as provider context.
func topicContext(intentLabel string) string {
	return "Tespit edilen niyet: " + intentLabel
}

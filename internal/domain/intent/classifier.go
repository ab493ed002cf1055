// Package intent classifies utterances into discrete intent labels.
//
// The classifier is rule-based: an ordered keyword table scanned against
// the lowered input text. An explicit teacher action in the context is
// authoritative and bypasses the text entirely.
package intent

import (
	"context"
	"strings"

	"github.com/derslik/derslik/internal/domain/model"
)

// Classification confidence constants.
const (
	confidenceExplicit = 1.0
	confidenceKeyword  = 0.9
	confidenceUnknown  = 0.4
)

// IntentUnknown is the label used when no keyword matches.
const IntentUnknown = "unknown"

// Context carries event metadata consumed during classification.
type Context struct {
	TeacherAction string
	InputType     model.InputType
	Source        model.Source
}

// Result is the structured classification outcome.
type Result struct {
	Intent     string
	Confidence float64
	Sentiment  string
}

// Classifier maps raw text plus context to an intent label.
type Classifier interface {
	Classify(ctx context.Context, text string, c Context) (Result, error)
}

// keywordEntry pairs a keyword with its intent. Order matters: the first
// matching keyword wins, so the table is a slice, not a map.
type keywordEntry struct {
	keyword string
	intent  string
}

// KeywordClassifier implements Classifier over the knowledge base tables.
type KeywordClassifier struct {
	keywords []keywordEntry
}

// NewKeywordClassifier creates a classifier with configuration options.
func NewKeywordClassifier(opts ...Option) *KeywordClassifier {
	c := &KeywordClassifier{
		keywords: defaultKeywords(),
	}

	// Apply all options
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Classify resolves the intent for text under the given context.
// An explicit teacher action always wins over inferred text.
func (c *KeywordClassifier) Classify(ctx context.Context, text string, kc Context) (Result, error) {
	if kc.TeacherAction != "" {
		return Result{
			Intent:     kc.TeacherAction,
			Confidence: confidenceExplicit,
			Sentiment:  sentimentOf(kc.TeacherAction),
		}, nil
	}

	lowered := strings.ToLower(text)
	for _, e := range c.keywords {
		if strings.Contains(lowered, e.keyword) {
			return Result{
				Intent:     e.intent,
				Confidence: confidenceKeyword,
				Sentiment:  sentimentOf(e.intent),
			}, nil
		}
	}

	return Result{
		Intent:     IntentUnknown,
		Confidence: confidenceUnknown,
		Sentiment:  "neutral",
	}, nil
}

// sentimentOf tags an intent with a coarse sentiment label.
func sentimentOf(intent string) string {
	switch intent {
	case "praise", "greeting", "encourage":
		return "positive"
	case "discipline", "correction", "warn":
		return "negative"
	default:
		return "neutral"
	}
}

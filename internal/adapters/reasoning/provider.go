// Package reasoning adapts external AI providers into behavior suggestions.
//
// Providers fail soft: an unavailable or misbehaving provider is a
// fallback reason, never a pipeline failure. The fallback order is a
// single policy (Select), not scattered recovery code.
package reasoning

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/derslik/derslik/internal/domain/model"
)

// Reply handling constants.
const (
	// maxRawReplyLen truncates malformed provider output reused as a reply.
	maxRawReplyLen = 200
)

// Sentinel kinds for reasoning errors.
var (
	ErrNotConfigured   = errors.New("reasoning provider not configured")
	ErrEmptySuggestion = errors.New("empty suggestion")
)

// Fallback reason labels, used in metrics and traces.
const (
	ReasonNotConfigured = "not_configured"
	ReasonProviderError = "provider_error"
	ReasonTimeout       = "timeout"
	ReasonEmptyResult   = "empty_result"
)

// Result is one provider's proposal. Degraded marks a malformed payload
// whose raw text was salvaged as the reply.
type Result struct {
	Suggestion model.Suggestion
	Degraded   bool
}

// Provider proposes a structured behavior for an utterance.
type Provider interface {
	// Name identifies the provider in traces and metrics.
	Name() string

	// Suggest returns a behavior proposal for the text given the topic
	// context. Implementations must tolerate provider absence by
	// returning an error, never by panicking or blocking forever once
	// ctx is done.
	Suggest(ctx context.Context, text, topicContext string) (Result, error)
}

// Outcome pairs a provider attempt with its failure, if any.
type Outcome struct {
	Source string
	Result Result
	Err    error
}

// Choice is the selected behavior plus the reasons every earlier tier
// was skipped.
type Choice struct {
	Result  Result
	Source  string
	Skipped []string
}

// Select picks the first usable outcome, falling back to the canned
// behavior and finally the universal default. This is the whole
// fallback policy; callers only record the skip reasons.
func Select(outcomes []Outcome, canned model.Suggestion) Choice {
	var skipped []string
	for _, o := range outcomes {
		if o.Err != nil {
			skipped = append(skipped, reasonFor(o.Err))
			continue
		}
		if strings.TrimSpace(o.Result.Suggestion.ReplyText) == "" {
			skipped = append(skipped, ReasonEmptyResult)
			continue
		}
		return Choice{Result: o.Result, Source: o.Source, Skipped: skipped}
	}

	if strings.TrimSpace(canned.ReplyText) != "" {
		return Choice{Result: Result{Suggestion: canned}, Source: "canned", Skipped: skipped}
	}

	return Choice{Result: Result{Suggestion: Universal()}, Source: "universal", Skipped: skipped}
}

// Universal is the last-resort behavior when every tier failed.
func Universal() model.Suggestion {
	return model.Suggestion{
		ReplyText: "...",
		Animation: "thinking_pose",
		Emotion:   "neutral",
	}
}

// reasonFor maps a provider error to its fallback reason label.
func reasonFor(err error) string {
	switch {
	case errors.Is(err, ErrNotConfigured):
		return ReasonNotConfigured
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return ReasonTimeout
	case errors.Is(err, ErrEmptySuggestion):
		return ReasonEmptyResult
	default:
		return ReasonProviderError
	}
}

// ParseSuggestion decodes a provider's raw text into a suggestion.
// Providers are asked for strict JSON but not trusted to produce it:
// a malformed payload degrades to the truncated raw text as the reply.
func ParseSuggestion(raw string) Result {
	cleaned := stripCodeFence(raw)

	var s model.Suggestion
	if err := json.Unmarshal([]byte(cleaned), &s); err == nil && strings.TrimSpace(s.ReplyText) != "" {
		return Result{Suggestion: s}
	}

	return Result{
		Suggestion: model.Suggestion{ReplyText: truncate(strings.TrimSpace(raw), maxRawReplyLen)},
		Degraded:   true,
	}
}

// stripCodeFence removes a surrounding markdown code fence, if any.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// truncate bounds s to max runes.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

// buildPrompt renders the student-character prompt shared by providers.
func buildPrompt(text, topicContext string) string {
	return fmt.Sprintf(`Sen sanal bir sınıfta öğrenci karakterisin.
Bağlam: %s

Öğretmen/Kullanıcı Mesajı: %s

Kısa ve doğal bir öğrenci yanıtı ver. Maksimum 20 kelime kullan. Türkçe yanıt ver.
Yanıtı yalnızca şu JSON biçiminde döndür: {"reply_text": "...", "animation": "...", "emotion": "..."}`, topicContext, text)
}

// systemPrompt sets the student persona for chat-style providers.
const systemPrompt = "Sen sanal bir sınıfta meraklı ve dikkatli bir öğrencisin. Kısa ve doğal yanıtlar ver."

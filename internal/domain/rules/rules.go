// Package rules holds the behavioral tuning tables for the student agent.
//
// Everything here is data: the intent effect table, the mood projection
// map, and the animation catalog. Behavior tuning happens in this
// package and nowhere else.
package rules

import (
	"strings"

	"github.com/derslik/derslik/internal/domain/model"
)

// DefaultRuleID tags decisions where no intent-specific rule fired.
const DefaultRuleID = "default_response"

// Effect is the state transition an intent triggers. An empty Mood
// applies no override.
type Effect struct {
	Mood           model.Mood
	AttentionDelta float64
	EnergyDelta    float64
	RuleID         string
}

// effects is the state transition table, intent -> effect.
var effects = map[string]Effect{
	"praise":     {Mood: model.MoodHappy, AttentionDelta: 0.2, EnergyDelta: 0.1, RuleID: "praise_effect"},
	"warn":       {Mood: model.MoodAlert, AttentionDelta: 0.3, EnergyDelta: -0.05, RuleID: "warn_effect"},
	"discipline": {Mood: model.MoodSad, AttentionDelta: 0.2, RuleID: "discipline_effect"},
	"greeting":   {Mood: model.MoodHappy, AttentionDelta: 0.05, RuleID: "greeting_effect"},
	"encourage":  {Mood: model.MoodMotivated, AttentionDelta: 0.1, EnergyDelta: 0.1, RuleID: "encourage_effect"},
	"question":   {AttentionDelta: 0.1, RuleID: "question_effect"},
	"ignore":     {AttentionDelta: -0.1, RuleID: "ignore_effect"},
}

// Lookup returns the effect for an intent. Unlisted intents get the
// all-zero default with no mood override.
func Lookup(intent string) Effect {
	if e, ok := effects[intent]; ok {
		return e
	}
	return Effect{RuleID: DefaultRuleID}
}

// moodProjection maps detailed moods to the coarse consumer-facing state.
var moodProjection = map[model.Mood]model.CoarseState{
	model.MoodHappy:     model.StateAttentive,
	model.MoodNeutral:   model.StateAttentive,
	model.MoodMotivated: model.StateAttentive,
	model.MoodAlert:     model.StateAttentive,
	model.MoodRegretful: model.StateAttentive,
	model.MoodSad:       model.StateConfused,
	model.MoodConfused:  model.StateConfused,
	model.MoodSleepy:    model.StateSleepy,
}

// ProjectMood maps a mood to its coarse state; unmapped moods are idle.
func ProjectMood(m model.Mood) model.CoarseState {
	if s, ok := moodProjection[m]; ok {
		return s
	}
	return model.StateIdle
}

// DefaultAnimation is the universal safe animation.
const DefaultAnimation = "thinking_pose"

// allowedAnimations is the fixed set of animations consumers can play.
var allowedAnimations = map[string]struct{}{
	"happy_wave":            {},
	"happy_nod":             {},
	"neutral_stand":         {},
	"listening_pose":        {},
	"thinking_pose":         {},
	"excited_raise_hand":    {},
	"confused_scratch_head": {},
	"confused_look":         {},
	"sleepy_yawn":           {},
	"sleepy":                {},
	"yawn":                  {},
	"sit":                   {},
	"stand":                 {},
}

// AnimationAllowed reports whether a is in the fixed animation set.
func AnimationAllowed(a string) bool {
	_, ok := allowedAnimations[a]
	return ok
}

// animationHints maps reply-text keywords to animations, used to coerce
// an out-of-set animation proposed by a reasoning provider. Scanned in
// order; first hit wins.
var animationHints = []struct {
	keyword   string
	animation string
}{
	{"otur", "sit"},
	{"kalk", "stand"},
	{"zzz", "sleepy_yawn"},
	{"esner", "sleepy_yawn"},
	{"uyku", "sleepy_yawn"},
	{"merhaba", "happy_wave"},
	{"günaydın", "happy_wave"},
	{"teşekkür", "happy_nod"},
	{"anlamadım", "confused_scratch_head"},
	{"özür", "neutral_stand"},
	{"dinliyorum", "listening_pose"},
}

// CoerceAnimation maps a proposed reply to a known animation via keyword
// hints, defaulting to the universal thinking pose.
func CoerceAnimation(reply string) string {
	lowered := strings.ToLower(reply)
	for _, h := range animationHints {
		if strings.Contains(lowered, h.keyword) {
			return h.animation
		}
	}
	return DefaultAnimation
}

// commandAnimations are ground truth: a command intent always plays its
// animation no matter what reasoning proposed.
var commandAnimations = map[string]string{
	"command_sit":   "sit",
	"command_stand": "stand",
}

// CommandAnimation returns the forced animation for command intents.
func CommandAnimation(intent string) (string, bool) {
	a, ok := commandAnimations[intent]
	return a, ok
}

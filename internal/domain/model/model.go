// Package model contains domain models passed between layers.
package model

import "time"

// Mood is the categorical emotional state of a simulated student.
type Mood string

// Mood values.
const (
	MoodNeutral   Mood = "neutral"
	MoodHappy     Mood = "happy"
	MoodSad       Mood = "sad"
	MoodConfused  Mood = "confused"
	MoodSleepy    Mood = "sleepy"
	MoodAlert     Mood = "alert"
	MoodMotivated Mood = "motivated"
	MoodRegretful Mood = "regretful"
)

// ValidMood reports whether m is a member of the mood enumeration.
func ValidMood(m Mood) bool {
	switch m {
	case MoodNeutral, MoodHappy, MoodSad, MoodConfused, MoodSleepy, MoodAlert, MoodMotivated, MoodRegretful:
		return true
	default:
		return false
	}
}

// CoarseState is the high-level student state projected for consumers.
type CoarseState string

// CoarseState values.
const (
	StateAttentive  CoarseState = "attentive"
	StateSleepy     CoarseState = "sleepy"
	StateConfused   CoarseState = "confused"
	StateSuccessful CoarseState = "successful"
	StateIdle       CoarseState = "idle"
	StateDisruptive CoarseState = "disruptive"
)

// Source identifies where an event entered the system.
type Source string

// Source values.
const (
	SourceUnity Source = "unity"
	SourceWeb   Source = "web"
)

// InputType distinguishes typed text from transcribed voice.
type InputType string

// InputType values.
const (
	InputText  InputType = "text"
	InputVoice InputType = "voice"
)

// TeacherActions enumerates the explicit action overrides a client may send.
var TeacherActions = map[string]struct{}{
	"warn":          {},
	"praise":        {},
	"discipline":    {},
	"command_sit":   {},
	"command_stand": {},
	"ignore":        {},
	"encourage":     {},
	"question":      {},
}

// ValidTeacherAction reports whether action names a known explicit override.
func ValidTeacherAction(action string) bool {
	_, ok := TeacherActions[action]
	return ok
}

// StudentState is one student's mutable record. The state store owns the
// canonical copy; everything else works on value copies.
type StudentState struct {
	StudentID       string    `json:"student_id"`
	Mood            Mood      `json:"mood"`
	AttentionLevel  float64   `json:"attention_level"`
	EnergyLevel     float64   `json:"energy_level"`
	CurrentActivity string    `json:"current_activity"`
	LastUpdated     time.Time `json:"last_updated"`
}

// DecisionEvent is one inbound utterance, already resolved to text.
type DecisionEvent struct {
	Source        Source    `json:"source"`
	TeacherID     string    `json:"teacher_id"`
	StudentID     string    `json:"student_id"`
	TeacherAction string    `json:"teacher_action,omitempty"`
	InputType     InputType `json:"input_type"`
	Content       string    `json:"content"`
}

// Suggestion is a structured behavior proposal from a reasoning provider
// or one of its fallback tiers.
type Suggestion struct {
	ReplyText string `json:"reply_text"`
	Animation string `json:"animation"`
	Emotion   string `json:"emotion"`
}

// DecisionTrace records how a decision was reached. Debug consumers only.
type DecisionTrace struct {
	Intent          string       `json:"intent"`
	Sentiment       string       `json:"sentiment,omitempty"`
	RuleApplied     string       `json:"rule_applied"`
	ReasoningSource string       `json:"reasoning_source"`
	StateBefore     StudentState `json:"state_before"`
	StateAfter      StudentState `json:"state_after"`
}

// Meta carries per-decision bookkeeping.
type Meta struct {
	Timestamp  string `json:"timestamp"`
	Source     Source `json:"source"`
	LatencyMS  int64  `json:"latency_ms"`
	DecisionID string `json:"decision_id"`
}

// Decision is the full result of one pipeline run. Its JSON form is the
// payload delivered to debug-role consumers.
type Decision struct {
	Animation    string        `json:"animation"`
	ReplyText    string        `json:"reply_text"`
	Emotion      string        `json:"emotion"`
	Confidence   float64       `json:"confidence"`
	StudentState CoarseState   `json:"student_state"`
	Trace        DecisionTrace `json:"decision_trace"`
	Meta         Meta          `json:"meta"`
}

// StrictMeta is the reduced metadata of the strict payload.
type StrictMeta struct {
	LatencyMS  int64  `json:"latency_ms"`
	DecisionID string `json:"decision_id"`
}

// StrictPayload is the fixed-shape projection for unity-role consumers.
// Its field set is a contract: no trace, no debug fields, ever.
type StrictPayload struct {
	Animation    string      `json:"animation"`
	ReplyText    string      `json:"reply_text"`
	Emotion      string      `json:"emotion"`
	Confidence   float64     `json:"confidence"`
	StudentState CoarseState `json:"student_state"`
	Meta         StrictMeta  `json:"meta"`
}

// Strict projects the decision into the unity contract.
func (d Decision) Strict() StrictPayload {
	return StrictPayload{
		Animation:    d.Animation,
		ReplyText:    d.ReplyText,
		Emotion:      d.Emotion,
		Confidence:   d.Confidence,
		StudentState: d.StudentState,
		Meta: StrictMeta{
			LatencyMS:  d.Meta.LatencyMS,
			DecisionID: d.Meta.DecisionID,
		},
	}
}

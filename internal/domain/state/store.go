// Package state owns the mutable per-student records.
//
// The store is the single serialization point for student updates:
// each student id has its own lock, so updates for one student are
// linearizable while distinct students never contend.
package state

import (
	"context"
	"sync"
	"time"

	"github.com/derslik/derslik/internal/domain/model"
	"github.com/derslik/derslik/pkg/metrics"
)

// Default state configuration constants.
const (
	defaultAttention = 0.8
	defaultEnergy    = 0.8
	defaultActivity  = "listening"

	// Automatic mood shift thresholds.
	lowEnergyThreshold    = 0.3
	lowAttentionThreshold = 0.3
)

// Delta describes one update to a student record. Zero-value fields are
// no-ops: empty Mood/Activity apply no override.
type Delta struct {
	AttentionDelta float64
	EnergyDelta    float64
	Mood           model.Mood
	Activity       string
}

// Store is the contract for student state access.
type Store interface {
	// Get returns the existing record or atomically creates the default.
	// Never fails; the result is a value copy.
	Get(ctx context.Context, studentID string) model.StudentState

	// Update applies the delta with clamping and the automatic mood
	// shift, then returns the post-update record by value.
	Update(ctx context.Context, studentID string, d Delta) model.StudentState

	// Reset drops the record; the next Get recreates the default.
	Reset(ctx context.Context, studentID string)

	// Count returns the number of tracked students.
	Count(ctx context.Context) int
}

// record pairs one student's state with its own lock.
type record struct {
	mu    sync.Mutex
	state model.StudentState
}

// InMemoryStore implements Store with a process-lifetime map.
type InMemoryStore struct {
	mu      sync.RWMutex // guards the records map, not the records
	records map[string]*record

	initialAttention float64
	initialEnergy    float64
	initialActivity  string
	now              func() time.Time
}

// NewInMemoryStore creates a new in-memory store with configuration options.
func NewInMemoryStore(opts ...Option) *InMemoryStore {
	s := &InMemoryStore{
		records:          make(map[string]*record),
		initialAttention: defaultAttention,
		initialEnergy:    defaultEnergy,
		initialActivity:  defaultActivity,
		now:              time.Now,
	}

	// Apply all options
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Get returns the existing record or atomically creates-and-returns the default.
func (s *InMemoryStore) Get(ctx context.Context, studentID string) model.StudentState {
	r := s.getOrCreate(studentID)
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Update applies deltas and overrides under the student's lock.
//
// Order matters: clamp numeric fields, apply explicit overrides, then run
// the automatic mood shift. The shift runs after the override on purpose,
// so an explicit "happy" can still be demoted to "sleepy" by low energy
// in the same call.
func (s *InMemoryStore) Update(ctx context.Context, studentID string, d Delta) model.StudentState {
	r := s.getOrCreate(studentID)

	r.mu.Lock()
	defer r.mu.Unlock()

	st := &r.state
	st.AttentionLevel = clamp(st.AttentionLevel + d.AttentionDelta)
	st.EnergyLevel = clamp(st.EnergyLevel + d.EnergyDelta)

	if d.Mood != "" {
		st.Mood = d.Mood
	}
	if d.Activity != "" {
		st.CurrentActivity = d.Activity
	}

	// Automatic mood shift: exhaustion wins over everything except an
	// already sleepy/sad mood; fading attention only demotes neutral.
	if st.EnergyLevel < lowEnergyThreshold && st.Mood != model.MoodSleepy && st.Mood != model.MoodSad {
		st.Mood = model.MoodSleepy
	} else if st.AttentionLevel < lowAttentionThreshold && st.Mood == model.MoodNeutral {
		st.Mood = model.MoodConfused
	}

	st.LastUpdated = s.now()

	metrics.RecordStateUpdate()
	return *st
}

// Reset drops the record so the next Get creates the default.
func (s *InMemoryStore) Reset(ctx context.Context, studentID string) {
	s.mu.Lock()
	delete(s.records, studentID)
	count := len(s.records)
	s.mu.Unlock()

	metrics.UpdateStudentsTracked(count)
}

// Count returns the number of tracked students.
func (s *InMemoryStore) Count(ctx context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// getOrCreate returns the student's record, creating the default lazily.
func (s *InMemoryStore) getOrCreate(studentID string) *record {
	s.mu.RLock()
	r, ok := s.records[studentID]
	s.mu.RUnlock()
	if ok {
		return r
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// Re-check under the write lock: another goroutine may have created it.
	if r, ok = s.records[studentID]; ok {
		return r
	}
	r = &record{
		state: model.StudentState{
			StudentID:       studentID,
			Mood:            model.MoodNeutral,
			AttentionLevel:  s.initialAttention,
			EnergyLevel:     s.initialEnergy,
			CurrentActivity: s.initialActivity,
			LastUpdated:     s.now(),
		},
	}
	s.records[studentID] = r
	metrics.UpdateStudentsTracked(len(s.records))
	return r
}

// clamp bounds v to [0, 1].
func clamp(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}

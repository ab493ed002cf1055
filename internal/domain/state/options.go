package state

import "time"

// Option applies a configuration option to the InMemoryStore.
type Option func(*InMemoryStore)

// WithInitialLevels sets the default attention and energy for new records.
func WithInitialLevels(attention, energy float64) Option {
	return func(s *InMemoryStore) {
		if attention >= 0 && attention <= 1 {
			s.initialAttention = attention
		}
		if energy >= 0 && energy <= 1 {
			s.initialEnergy = energy
		}
	}
}

// WithInitialActivity sets the default activity label for new records.
func WithInitialActivity(activity string) Option {
	return func(s *InMemoryStore) {
		if activity != "" {
			s.initialActivity = activity
		}
	}
}

// WithClock sets the time source, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *InMemoryStore) {
		if now != nil {
			s.now = now
		}
	}
}

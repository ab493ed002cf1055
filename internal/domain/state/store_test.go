package state_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/derslik/derslik/internal/domain/model"
	state "github.com/derslik/derslik/internal/domain/state"
	. "github.com/smartystreets/goconvey/convey"
)

func TestInMemoryStore_Get(t *testing.T) {
	Convey("Given a new in-memory store", t, func() {
		s := state.NewInMemoryStore()
		ctx := context.Background()

		Convey("When fetching an unknown student", func() {
			st := s.Get(ctx, "s1")

			Convey("Then the default record should be created", func() {
				So(st.StudentID, ShouldEqual, "s1")
				So(st.Mood, ShouldEqual, model.MoodNeutral)
				So(st.AttentionLevel, ShouldEqual, 0.8)
				So(st.EnergyLevel, ShouldEqual, 0.8)
				So(st.CurrentActivity, ShouldEqual, "listening")
				So(st.LastUpdated.IsZero(), ShouldBeFalse)
			})
		})

		Convey("When fetching the same student twice with no update between", func() {
			first := s.Get(ctx, "s2")
			second := s.Get(ctx, "s2")

			Convey("Then both reads should be identical", func() {
				So(second, ShouldResemble, first)
			})
		})

		Convey("When custom initial levels are configured", func() {
			custom := state.NewInMemoryStore(
				state.WithInitialLevels(0.5, 0.4),
				state.WithInitialActivity("reading"),
			)
			st := custom.Get(ctx, "s3")

			Convey("Then new records should use them", func() {
				So(st.AttentionLevel, ShouldEqual, 0.5)
				So(st.EnergyLevel, ShouldEqual, 0.4)
				So(st.CurrentActivity, ShouldEqual, "reading")
			})
		})
	})
}

func TestInMemoryStore_Update(t *testing.T) {
	Convey("Given a new in-memory store", t, func() {
		s := state.NewInMemoryStore()
		ctx := context.Background()

		Convey("When applying positive deltas", func() {
			st := s.Update(ctx, "s1", state.Delta{AttentionDelta: 0.1, EnergyDelta: 0.1})

			Convey("Then the levels should move and stay bounded", func() {
				So(st.AttentionLevel, ShouldAlmostEqual, 0.9, 1e-9)
				So(st.EnergyLevel, ShouldAlmostEqual, 0.9, 1e-9)
			})
		})

		Convey("When a delta would exceed the upper bound", func() {
			s.Update(ctx, "s1", state.Delta{AttentionDelta: 0.3})
			st := s.Update(ctx, "s1", state.Delta{AttentionDelta: 0.3})

			Convey("Then attention should clamp at 1.0", func() {
				So(st.AttentionLevel, ShouldEqual, 1.0)
			})
		})

		Convey("When a delta would fall below the lower bound", func() {
			st := s.Update(ctx, "s1", state.Delta{EnergyDelta: -2.0})

			Convey("Then energy should clamp at 0.0", func() {
				So(st.EnergyLevel, ShouldEqual, 0.0)
			})
		})

		Convey("When applying a mood and activity override", func() {
			st := s.Update(ctx, "s1", state.Delta{Mood: model.MoodHappy, Activity: "answering"})

			Convey("Then both should be applied", func() {
				So(st.Mood, ShouldEqual, model.MoodHappy)
				So(st.CurrentActivity, ShouldEqual, "answering")
			})
		})

		Convey("When energy drops below the sleepy threshold", func() {
			st := s.Update(ctx, "s1", state.Delta{EnergyDelta: -0.6})

			Convey("Then the mood should shift to sleepy", func() {
				So(st.EnergyLevel, ShouldAlmostEqual, 0.2, 1e-9)
				So(st.Mood, ShouldEqual, model.MoodSleepy)
			})
		})

		Convey("When an explicit happy override lands with exhausted energy", func() {
			s.Update(ctx, "s1", state.Delta{EnergyDelta: -0.6})
			st := s.Update(ctx, "s1", state.Delta{Mood: model.MoodHappy})

			Convey("Then the energy rule should still demote it to sleepy", func() {
				So(st.Mood, ShouldEqual, model.MoodSleepy)
			})
		})

		Convey("When attention fades on a neutral student", func() {
			st := s.Update(ctx, "s2", state.Delta{AttentionDelta: -0.6})

			Convey("Then the mood should shift to confused", func() {
				So(st.AttentionLevel, ShouldAlmostEqual, 0.2, 1e-9)
				So(st.Mood, ShouldEqual, model.MoodConfused)
			})
		})

		Convey("When attention fades on an already sad student", func() {
			s.Update(ctx, "s3", state.Delta{Mood: model.MoodSad})
			st := s.Update(ctx, "s3", state.Delta{AttentionDelta: -0.6})

			Convey("Then the mood should stay sad", func() {
				So(st.Mood, ShouldEqual, model.MoodSad)
			})
		})

		Convey("When updating with a fixed clock", func() {
			fixed := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
			clocked := state.NewInMemoryStore(state.WithClock(func() time.Time { return fixed }))
			st := clocked.Update(ctx, "s4", state.Delta{})

			Convey("Then last_updated should come from the clock", func() {
				So(st.LastUpdated, ShouldEqual, fixed)
			})
		})
	})
}

func TestInMemoryStore_Concurrency(t *testing.T) {
	Convey("Given a store under concurrent updates for one student", t, func() {
		s := state.NewInMemoryStore()
		ctx := context.Background()

		// Drag attention to zero so the summed deltas never clamp.
		s.Update(ctx, "s1", state.Delta{AttentionDelta: -1.0})

		const n = 100
		const delta = 0.005

		var wg sync.WaitGroup
		wg.Add(n)
		for i := 0; i < n; i++ {
			go func() {
				defer wg.Done()
				s.Update(ctx, "s1", state.Delta{AttentionDelta: delta})
			}()
		}
		wg.Wait()

		Convey("Then no update should be lost", func() {
			st := s.Get(ctx, "s1")
			So(st.AttentionLevel, ShouldAlmostEqual, n*delta, 1e-9)
		})
	})

	Convey("Given concurrent updates across distinct students", t, func() {
		s := state.NewInMemoryStore()
		ctx := context.Background()

		const students = 20
		const updates = 20

		var wg sync.WaitGroup
		wg.Add(students)
		for i := 0; i < students; i++ {
			id := string(rune('a' + i))
			go func(id string) {
				defer wg.Done()
				for j := 0; j < updates; j++ {
					s.Update(ctx, id, state.Delta{EnergyDelta: -0.01})
				}
			}(id)
		}
		wg.Wait()

		Convey("Then every student should observe all of its own updates", func() {
			for i := 0; i < students; i++ {
				id := string(rune('a' + i))
				st := s.Get(ctx, id)
				So(st.EnergyLevel, ShouldAlmostEqual, 0.8-updates*0.01, 1e-9)
			}
			So(s.Count(ctx), ShouldEqual, students)
		})
	})
}

func TestInMemoryStore_Reset(t *testing.T) {
	Convey("Given a store with a mutated student", t, func() {
		s := state.NewInMemoryStore()
		ctx := context.Background()
		s.Update(ctx, "s1", state.Delta{Mood: model.MoodSleepy, EnergyDelta: -0.7})

		Convey("When resetting the student", func() {
			s.Reset(ctx, "s1")

			Convey("Then the next read should be the default record", func() {
				st := s.Get(ctx, "s1")
				So(st.Mood, ShouldEqual, model.MoodNeutral)
				So(st.EnergyLevel, ShouldEqual, 0.8)
			})
		})

		Convey("When resetting an unknown student", func() {
			So(func() { s.Reset(ctx, "ghost") }, ShouldNotPanic)
		})
	})
}

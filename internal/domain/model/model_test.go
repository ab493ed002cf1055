package model_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/derslik/derslik/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestValidMood(t *testing.T) {
	Convey("Given the mood enumeration", t, func() {
		Convey("Then every listed mood should validate", func() {
			moods := []model.Mood{
				model.MoodNeutral, model.MoodHappy, model.MoodSad, model.MoodConfused,
				model.MoodSleepy, model.MoodAlert, model.MoodMotivated, model.MoodRegretful,
			}
			for _, m := range moods {
				So(model.ValidMood(m), ShouldBeTrue)
			}
		})

		Convey("And unknown values should not", func() {
			So(model.ValidMood("ecstatic"), ShouldBeFalse)
			So(model.ValidMood(""), ShouldBeFalse)
		})
	})
}

func TestValidTeacherAction(t *testing.T) {
	Convey("Given the teacher action enumeration", t, func() {
		Convey("Then known actions should validate", func() {
			So(model.ValidTeacherAction("praise"), ShouldBeTrue)
			So(model.ValidTeacherAction("warn"), ShouldBeTrue)
			So(model.ValidTeacherAction("command_sit"), ShouldBeTrue)
			So(model.ValidTeacherAction("command_stand"), ShouldBeTrue)
		})

		Convey("And unknown actions should not", func() {
			So(model.ValidTeacherAction("expel"), ShouldBeFalse)
			So(model.ValidTeacherAction(""), ShouldBeFalse)
		})
	})
}

func TestStrictProjection(t *testing.T) {
	Convey("Given a full decision", t, func() {
		d := model.Decision{
			Animation:    "happy_wave",
			ReplyText:    "Merhaba öğretmenim!",
			Emotion:      "happy",
			Confidence:   0.9,
			StudentState: model.StateAttentive,
			Trace: model.DecisionTrace{
				Intent:      "greeting",
				RuleApplied: "greeting_effect",
				StateBefore: model.StudentState{StudentID: "s1", Mood: model.MoodNeutral},
				StateAfter:  model.StudentState{StudentID: "s1", Mood: model.MoodHappy},
			},
			Meta: model.Meta{
				Timestamp:  time.Now().Format(time.RFC3339),
				Source:     model.SourceWeb,
				LatencyMS:  12,
				DecisionID: "d-1",
			},
		}

		Convey("When projecting the strict payload", func() {
			strict := d.Strict()

			Convey("Then behavioral fields should carry over", func() {
				So(strict.Animation, ShouldEqual, "happy_wave")
				So(strict.ReplyText, ShouldEqual, "Merhaba öğretmenim!")
				So(strict.Emotion, ShouldEqual, "happy")
				So(strict.Confidence, ShouldEqual, 0.9)
				So(strict.StudentState, ShouldEqual, model.StateAttentive)
				So(strict.Meta.DecisionID, ShouldEqual, "d-1")
				So(strict.Meta.LatencyMS, ShouldEqual, 12)
			})

			Convey("And the serialized form should never contain a trace", func() {
				raw, err := json.Marshal(strict)
				So(err, ShouldBeNil)
				So(string(raw), ShouldNotContainSubstring, "decision_trace")
				So(string(raw), ShouldNotContainSubstring, "state_before")
				So(string(raw), ShouldNotContainSubstring, "timestamp")
				So(string(raw), ShouldNotContainSubstring, "\"source\"")
			})
		})
	})
}

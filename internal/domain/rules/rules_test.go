package rules_test

import (
	"testing"

	"github.com/derslik/derslik/internal/domain/model"
	rules "github.com/derslik/derslik/internal/domain/rules"
	. "github.com/smartystreets/goconvey/convey"
)

func TestLookup(t *testing.T) {
	Convey("Given the intent effect table", t, func() {
		Convey("When looking up praise", func() {
			e := rules.Lookup("praise")

			Convey("Then it should lift mood, attention and energy", func() {
				So(e.Mood, ShouldEqual, model.MoodHappy)
				So(e.AttentionDelta, ShouldEqual, 0.2)
				So(e.EnergyDelta, ShouldEqual, 0.1)
				So(e.RuleID, ShouldEqual, "praise_effect")
			})
		})

		Convey("When looking up warn", func() {
			e := rules.Lookup("warn")

			Convey("Then it should sharpen attention at an energy cost", func() {
				So(e.Mood, ShouldEqual, model.MoodAlert)
				So(e.AttentionDelta, ShouldEqual, 0.3)
				So(e.EnergyDelta, ShouldEqual, -0.05)
			})
		})

		Convey("When looking up discipline", func() {
			e := rules.Lookup("discipline")

			Convey("Then it should sadden the student", func() {
				So(e.Mood, ShouldEqual, model.MoodSad)
				So(e.AttentionDelta, ShouldEqual, 0.2)
				So(e.EnergyDelta, ShouldEqual, 0.0)
			})
		})

		Convey("When looking up greeting", func() {
			e := rules.Lookup("greeting")

			Convey("Then it should nudge attention", func() {
				So(e.Mood, ShouldEqual, model.MoodHappy)
				So(e.AttentionDelta, ShouldEqual, 0.05)
			})
		})

		Convey("When looking up an unlisted intent", func() {
			e := rules.Lookup("status_check")

			Convey("Then it should be the all-zero default", func() {
				So(e.Mood, ShouldEqual, model.Mood(""))
				So(e.AttentionDelta, ShouldEqual, 0.0)
				So(e.EnergyDelta, ShouldEqual, 0.0)
				So(e.RuleID, ShouldEqual, rules.DefaultRuleID)
			})
		})
	})
}

func TestProjectMood(t *testing.T) {
	Convey("Given the mood projection table", t, func() {
		Convey("Then each mood should map to its coarse state", func() {
			So(rules.ProjectMood(model.MoodHappy), ShouldEqual, model.StateAttentive)
			So(rules.ProjectMood(model.MoodNeutral), ShouldEqual, model.StateAttentive)
			So(rules.ProjectMood(model.MoodMotivated), ShouldEqual, model.StateAttentive)
			So(rules.ProjectMood(model.MoodAlert), ShouldEqual, model.StateAttentive)
			So(rules.ProjectMood(model.MoodRegretful), ShouldEqual, model.StateAttentive)
			So(rules.ProjectMood(model.MoodSad), ShouldEqual, model.StateConfused)
			So(rules.ProjectMood(model.MoodConfused), ShouldEqual, model.StateConfused)
			So(rules.ProjectMood(model.MoodSleepy), ShouldEqual, model.StateSleepy)
		})

		Convey("And unmapped moods should fall through to idle", func() {
			So(rules.ProjectMood(model.Mood("bored")), ShouldEqual, model.StateIdle)
		})
	})
}

func TestAnimations(t *testing.T) {
	Convey("Given the animation catalog", t, func() {
		Convey("Then known animations should be allowed", func() {
			So(rules.AnimationAllowed("happy_wave"), ShouldBeTrue)
			So(rules.AnimationAllowed("sit"), ShouldBeTrue)
			So(rules.AnimationAllowed("sleepy_yawn"), ShouldBeTrue)
		})

		Convey("And arbitrary names should not", func() {
			So(rules.AnimationAllowed("backflip"), ShouldBeFalse)
			So(rules.AnimationAllowed(""), ShouldBeFalse)
		})
	})

	Convey("Given the animation coercion hints", t, func() {
		Convey("When the reply suggests sitting", func() {
			So(rules.CoerceAnimation("Tamam, oturuyorum."), ShouldEqual, "sit")
		})

		Convey("When the reply suggests standing", func() {
			So(rules.CoerceAnimation("Hemen kalkıyorum!"), ShouldEqual, "stand")
		})

		Convey("When the reply sounds sleepy", func() {
			So(rules.CoerceAnimation("Zzz..."), ShouldEqual, "sleepy_yawn")
		})

		Convey("When the reply thanks the teacher", func() {
			So(rules.CoerceAnimation("Çok teşekkür ederim!"), ShouldEqual, "happy_nod")
		})

		Convey("When nothing matches", func() {
			So(rules.CoerceAnimation("Güneş sistemi sekiz gezegenden oluşur."), ShouldEqual, rules.DefaultAnimation)
		})
	})

	Convey("Given the command animation table", t, func() {
		Convey("Then command intents should force their animation", func() {
			a, ok := rules.CommandAnimation("command_sit")
			So(ok, ShouldBeTrue)
			So(a, ShouldEqual, "sit")

			a, ok = rules.CommandAnimation("command_stand")
			So(ok, ShouldBeTrue)
			So(a, ShouldEqual, "stand")
		})

		Convey("And other intents should not", func() {
			_, ok := rules.CommandAnimation("praise")
			So(ok, ShouldBeFalse)
		})
	})
}

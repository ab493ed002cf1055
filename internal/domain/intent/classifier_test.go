package intent_test

import (
	"context"
	"testing"

	intent "github.com/derslik/derslik/internal/domain/intent"
	. "github.com/smartystreets/goconvey/convey"
)

func TestKeywordClassifier_Classify(t *testing.T) {
	Convey("Given a keyword classifier", t, func() {
		c := intent.NewKeywordClassifier()
		ctx := context.Background()

		Convey("When an explicit teacher action is present", func() {
			res, err := c.Classify(ctx, "bu metin tamamen alakasız", intent.Context{TeacherAction: "praise"})

			Convey("Then the action should win with full confidence", func() {
				So(err, ShouldBeNil)
				So(res.Intent, ShouldEqual, "praise")
				So(res.Confidence, ShouldEqual, 1.0)
				So(res.Sentiment, ShouldEqual, "positive")
			})
		})

		Convey("When the text contains a known keyword", func() {
			cases := map[string]string{
				"Merhaba çocuklar":        "greeting",
				"Aferin sana!":            "praise",
				"Lütfen oturur musun?":    "command_sit",
				"Ayağa kalkar mısın?":     "command_stand",
				"Sessiz ol lütfen":        "discipline",
				"Bunu tekrar et":          "request_repeat",
				"Nasılsın bugün?":         "status_check",
				"Konuyu anladın mı?":      "comprehension_check",
				"Bu cevap yanlış oldu":    "correction",
				"Beni dinle lütfen":       "attention_command",
				"Sana bir soru soracağım": "question",
			}
			for text, want := range cases {
				res, err := c.Classify(ctx, text, intent.Context{})
				So(err, ShouldBeNil)
				So(res.Intent, ShouldEqual, want)
				So(res.Confidence, ShouldEqual, 0.9)
			}
		})

		Convey("When nothing matches", func() {
			res, err := c.Classify(ctx, "güneş sistemi hakkında bilgi ver", intent.Context{})

			Convey("Then the intent should be unknown with low confidence", func() {
				So(err, ShouldBeNil)
				So(res.Intent, ShouldEqual, intent.IntentUnknown)
				So(res.Confidence, ShouldEqual, 0.4)
				So(res.Sentiment, ShouldEqual, "neutral")
			})
		})

		Convey("When the text is empty", func() {
			res, err := c.Classify(ctx, "", intent.Context{})

			Convey("Then it should resolve to unknown, not fail", func() {
				So(err, ShouldBeNil)
				So(res.Intent, ShouldEqual, intent.IntentUnknown)
			})
		})

		Convey("When negative intents match", func() {
			res, err := c.Classify(ctx, "sus artık", intent.Context{})

			Convey("Then the sentiment should be negative", func() {
				So(err, ShouldBeNil)
				So(res.Intent, ShouldEqual, "discipline")
				So(res.Sentiment, ShouldEqual, "negative")
			})
		})

		Convey("When a custom keyword is configured", func() {
			custom := intent.NewKeywordClassifier(intent.WithKeyword("ödev", "homework_check"))
			res, err := custom.Classify(ctx, "Ödevini yaptın mı?", intent.Context{})

			Convey("Then it should take precedence", func() {
				So(err, ShouldBeNil)
				So(res.Intent, ShouldEqual, "homework_check")
			})
		})
	})
}

func TestKnowledgeBase(t *testing.T) {
	Convey("Given the knowledge base", t, func() {
		Convey("When fetching responses for a known intent", func() {
			rs := intent.Responses("praise")

			Convey("Then templates should be returned", func() {
				So(len(rs), ShouldBeGreaterThan, 0)
				So(rs[0].ReplyText, ShouldNotBeEmpty)
				So(rs[0].Animation, ShouldNotBeEmpty)
			})
		})

		Convey("When fetching responses for an unknown intent", func() {
			rs := intent.Responses("nonexistent")

			Convey("Then the unknown templates should be returned", func() {
				So(len(rs), ShouldBeGreaterThan, 0)
				So(rs[0].Animation, ShouldEqual, "thinking_pose")
			})
		})

		Convey("When listing topics", func() {
			topics := intent.Topics()

			Convey("Then every keyword should appear", func() {
				So(len(topics), ShouldBeGreaterThan, 10)
				So(topics, ShouldContain, "merhaba")
				So(topics, ShouldContain, "aferin")
			})
		})
	})
}

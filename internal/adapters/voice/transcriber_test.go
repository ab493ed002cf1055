package voice_test

import (
	"context"
	"errors"
	"testing"

	voice "github.com/derslik/derslik/internal/adapters/voice"
	. "github.com/smartystreets/goconvey/convey"
)

func TestNewGroqTranscriber(t *testing.T) {
	Convey("Given transcriber construction", t, func() {
		Convey("When the API key is empty", func() {
			tr, err := voice.NewGroqTranscriber("", "whisper-large-v3")

			Convey("Then it should report not configured", func() {
				So(tr, ShouldBeNil)
				So(errors.Is(err, voice.ErrNotConfigured), ShouldBeTrue)
			})
		})

		Convey("When the API key is present", func() {
			tr, err := voice.NewGroqTranscriber("gsk_test", "whisper-large-v3")

			Convey("Then a transcriber should be returned", func() {
				So(err, ShouldBeNil)
				So(tr, ShouldNotBeNil)
			})

			Convey("And empty audio should short-circuit to empty text", func() {
				text, terr := tr.Transcribe(context.Background(), nil)
				So(terr, ShouldBeNil)
				So(text, ShouldBeEmpty)
			})
		})
	})
}

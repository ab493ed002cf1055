package config_test

import (
	"context"
	"testing"

	"github.com/derslik/derslik/internal/config"
	. "github.com/smartystreets/goconvey/convey"
)

func TestConfig_Load(t *testing.T) {
	Convey("Given the config loader", t, func() {
		ctx := context.Background()

		Convey("When loading with no file and no env overrides", func() {
			t.Setenv("DERSLIK_CONFIG", "")
			cfg, err := config.Load(ctx)

			Convey("Then it should return the defaults", func() {
				So(err, ShouldBeNil)
				So(cfg, ShouldNotBeNil)
				So(cfg.Addr, ShouldEqual, ":8000")
				So(cfg.DefaultRoom, ShouldEqual, "classroom-1")
			})
		})

		Convey("When env vars override defaults", func() {
			t.Setenv("DERSLIK_CONFIG", "")
			t.Setenv("DERSLIK_ADDR", ":9100")
			t.Setenv("DERSLIK_LOG_LEVEL", "debug")
			t.Setenv("DERSLIK_DEFAULT_ROOM", "lab-7")

			cfg, err := config.Load(ctx)

			Convey("Then the env values should win", func() {
				So(err, ShouldBeNil)
				So(cfg.Addr, ShouldEqual, ":9100")
				So(cfg.LogLevel, ShouldEqual, "debug")
				So(cfg.DefaultRoom, ShouldEqual, "lab-7")
			})
		})

		Convey("When the addr is emptied via env", func() {
			t.Setenv("DERSLIK_CONFIG", "")
			t.Setenv("DERSLIK_ADDR", "")

			_, err := config.Load(ctx)

			Convey("Then validation should reject the config", func() {
				So(err, ShouldNotBeNil)
			})
		})

		Convey("When a config file is missing", func() {
			t.Setenv("DERSLIK_CONFIG", "/nonexistent/derslik.yaml")

			_, err := config.Load(ctx)

			Convey("Then it should fail with a load error", func() {
				So(err, ShouldNotBeNil)
			})
		})
	})
}

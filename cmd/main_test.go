package main

import (
	"context"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/derslik/derslik/internal/adapters/http/api"
	app "github.com/derslik/derslik/internal/app"
	"github.com/derslik/derslik/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestMainFunction(t *testing.T) {
	convey.Convey("Given the main application", t, func() {
		convey.Convey("When testing configuration loading", func() {
			_ = os.Setenv("DERSLIK_ADDR", ":8080")
			_ = os.Setenv("DERSLIK_DEFAULT_ROOM", "lab-1")
			defer func() {
				_ = os.Unsetenv("DERSLIK_ADDR")
				_ = os.Unsetenv("DERSLIK_DEFAULT_ROOM")
			}()

			convey.Convey("Then configuration should be loadable", func() {
				ctx := context.Background()
				cfg, err := config.Load(ctx)
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.DefaultRoom, convey.ShouldEqual, "lab-1")
			})
		})

		convey.Convey("When testing service creation", func() {
			convey.Convey("Then service should be creatable with default options", func() {
				svc := app.New()
				convey.So(svc, convey.ShouldNotBeNil)
			})

			convey.Convey("And service should be creatable with custom options", func() {
				svc := app.New(
					app.WithConfig(config.New()),
					app.WithProviders(),
				)
				convey.So(svc, convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When testing HTTP server creation", func() {
			svc := app.New(app.WithConfig(config.New()), app.WithProviders())
			convey.So(svc.Start(context.Background()), convey.ShouldBeNil)
			defer svc.Stop()

			mux := http.NewServeMux()
			api.NewServer(svc, svc, svc.Transcriber(), "classroom-1", 32).Register(context.Background(), mux)

			srv := &http.Server{
				Addr:              ":0",
				Handler:           mux,
				ReadTimeout:       readTimeout,
				IdleTimeout:       idleTimeout,
				ReadHeaderTimeout: readHeaderTimeout,
			}

			convey.Convey("Then the server should be configured", func() {
				convey.So(srv.Handler, convey.ShouldNotBeNil)
				convey.So(srv.ReadTimeout, convey.ShouldEqual, 10*time.Second)
				convey.So(srv.WriteTimeout, convey.ShouldEqual, 0)
			})
		})
	})
}

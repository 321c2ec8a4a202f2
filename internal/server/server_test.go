package server

import (
	"context"
	"net/http"
	"testing"

	"github.com/rs/zerolog"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/deppfellow/item-service/internal/config"
)

func TestNew(t *testing.T) {
	Convey("Given server construction", t, func() {
		log := zerolog.Nop()

		Convey("A missing config is rejected", func() {
			_, err := New(nil, &log, nil)
			So(err, ShouldNotBeNil)
		})

		Convey("A missing logger is rejected", func() {
			_, err := New(config.Default(), nil, nil)
			So(err, ShouldNotBeNil)
		})

		Convey("A nil logger service is replaced by a disabled one", func() {
			s, err := New(config.Default(), &log, nil)
			So(err, ShouldBeNil)
			So(s.LoggerService, ShouldNotBeNil)
			So(s.LoggerService.GetApplication(), ShouldBeNil)
			So(s.Metrics, ShouldNotBeNil)
		})
	})
}

func TestLifecycle(t *testing.T) {
	Convey("Given a server", t, func() {
		log := zerolog.Nop()
		s, err := New(config.Default(), &log, nil)
		So(err, ShouldBeNil)

		Convey("Start fails before SetupHTTPServer", func() {
			So(s.Start(), ShouldNotBeNil)
		})

		Convey("Shutdown without an HTTP server is a no-op", func() {
			So(s.Shutdown(context.Background()), ShouldBeNil)
		})

		Convey("SetupHTTPServer applies the configured address and timeouts", func() {
			s.SetupHTTPServer(http.NotFoundHandler())

			So(s.httpServer.Addr, ShouldEqual, "0.0.0.0:8000")
			So(s.httpServer.ReadTimeout.Seconds(), ShouldEqual, 30)
			So(s.httpServer.IdleTimeout.Seconds(), ShouldEqual, 60)
		})
	})
}

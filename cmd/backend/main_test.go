package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/rs/zerolog"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/deppfellow/item-service/internal/config"
	"github.com/deppfellow/item-service/internal/logger"
)

func freePort(t *testing.T) string {
	t.Helper()

	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer l.Close()

	return fmt.Sprint(l.Addr().(*net.TCPAddr).Port)
}

func TestRun(t *testing.T) {
	Convey("Given a configuration on a free local port", t, func() {
		cfg := config.Default()
		cfg.Server.Host = "127.0.0.1"
		cfg.Server.Port = freePort(t)

		log := zerolog.Nop()

		Convey("The server answers until the context is cancelled", func() {
			ctx, cancel := context.WithCancel(context.Background())
			done := make(chan error, 1)
			go func() {
				done <- run(ctx, cfg, &log, &logger.LoggerService{})
			}()

			url := "http://" + cfg.Server.Address() + "/api/health"

			var resp *http.Response
			var err error
			for i := 0; i < 50; i++ {
				resp, err = http.Get(url)
				if err == nil {
					break
				}
				time.Sleep(20 * time.Millisecond)
			}
			So(err, ShouldBeNil)
			So(resp.StatusCode, ShouldEqual, http.StatusOK)
			resp.Body.Close()

			cancel()

			select {
			case err := <-done:
				So(err, ShouldBeNil)
			case <-time.After(5 * time.Second):
				t.Fatal("run did not return after cancel")
			}
		})

		Convey("A port that is already taken fails fast", func() {
			l, err := net.Listen("tcp", cfg.Server.Address())
			So(err, ShouldBeNil)
			defer l.Close()

			err = run(context.Background(), cfg, &log, &logger.LoggerService{})
			So(err, ShouldNotBeNil)
		})
	})
}

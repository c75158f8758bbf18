package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/okian/lurespread/internal/config"
	"github.com/okian/lurespread/pkg/logger"
	"github.com/smartystreets/goconvey/convey"
)

func TestMainApplicationIntegration(t *testing.T) {
	convey.Convey("Given configuration from the environment", t, func() {
		_ = logger.Init()
		_ = os.Setenv("LURESPREAD_WORKER_COUNT", "2")
		_ = os.Setenv("LURESPREAD_QUEUE_SIZE", "16")
		_ = os.Setenv("LURESPREAD_CATALOG_PATH", "../../configs/catalog.yaml")
		defer func() {
			_ = os.Unsetenv("LURESPREAD_WORKER_COUNT")
			_ = os.Unsetenv("LURESPREAD_QUEUE_SIZE")
			_ = os.Unsetenv("LURESPREAD_CATALOG_PATH")
		}()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		cfg, err := config.Load(ctx)
		convey.So(err, convey.ShouldBeNil)

		svc := newService(cfg, logger.Get())
		convey.So(svc.Start(ctx), convey.ShouldBeNil)
		defer svc.Stop()

		mux := newMux(ctx, svc)

		convey.Convey("Then the service is configured from it", func() {
			stats := svc.GetStats()
			convey.So(stats["workerCount"], convey.ShouldEqual, 2)
			convey.So(stats["queueSize"], convey.ShouldEqual, 16)
			convey.So(stats["catalogSize"], convey.ShouldBeGreaterThan, 0)
		})

		convey.Convey("Then every route is wired", func() {
			for _, path := range []string{"/healthz", "/stats", "/lures", "/lures/popper-silver", "/openapi.yaml", "/api-docs"} {
				w := httptest.NewRecorder()
				mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, http.NoBody))
				convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
			}
		})

		convey.Convey("Then a recommendation round-trips over HTTP", func() {
			body := `{"zone":"lagoon","water_depth_m":3,"boat_speed_kn":5,"time_of_day":"morning",
"light":"strong","turbidity":"clear","sea_state":"calm","tide":"rising","moon":"full",
"boat_profile":"standard","lines":3}`
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/recommendations", strings.NewReader(body)))
			convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
			convey.So(w.Body.String(), convey.ShouldContainSubstring, `"lines_filled":3`)
		})
	})
}

func TestServiceMetricsUpdater(t *testing.T) {
	convey.Convey("Given a stopped service", t, func() {
		svc := newService(config.New(context.Background()), logger.Get())

		convey.Convey("The updater returns when the context ends", func() {
			ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
			defer cancel()
			convey.So(func() { startServiceMetricsUpdater(ctx, svc) }, convey.ShouldNotPanic)
		})
	})
}

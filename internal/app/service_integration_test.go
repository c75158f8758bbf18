package service_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	service "github.com/okian/lurespread/internal/app"
	"github.com/okian/lurespread/internal/adapters/repository"
	"github.com/okian/lurespread/internal/domain/engine"
	"github.com/okian/lurespread/internal/domain/model"
)

const oneLure = `
lures:
  - id: lone-popper
    primary_color: silver
    depth_m: {min: 0, max: 1}
    speed_kn: {min: 3, max: 7}
    zones: [lagoon]
    species: [barracuda]
    optimal:
      times_of_day: [morning]
      sea_states: [calm]
      tides: [rising]
      moons: [full]
`

func writeCatalog(dir, content string) string {
	path := filepath.Join(dir, "catalog.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		panic(err)
	}
	return path
}

func TestServiceRecommend(t *testing.T) {
	Convey("Given a started service with the sample catalog", t, func() {
		svc := service.New(
			service.WithCatalogPath(sampleCatalog),
			service.WithWorkerCount(2),
			service.WithQueueSize(64),
		)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()

		Convey("When asking for a shallow lagoon spread", func() {
			rec, err := svc.Recommend(ctx, lagoonMorning())

			Convey("Then a placed spread is returned with run stats", func() {
				So(err, ShouldBeNil)
				So(rec.RequestID, ShouldNotBeEmpty)
				So(rec.CatalogVersion, ShouldEqual, 1)
				So(rec.Cached, ShouldBeFalse)
				So(rec.Spread.LinesFilled, ShouldEqual, 3)
				So(rec.Spread.Suggestions[0].Lure.ID, ShouldEqual, "popper-silver")
				So(rec.Spread.Suggestions[0].Position, ShouldEqual, model.PositionShortCorner)
				So(rec.Stats.Compatible, ShouldBeGreaterThanOrEqualTo, 4)
				So(rec.Stats.Catalog, ShouldBeGreaterThan, rec.Stats.Compatible)
			})

			Convey("Then the same request is served from the cache", func() {
				again, err := svc.Recommend(ctx, lagoonMorning())
				So(err, ShouldBeNil)
				So(again.Cached, ShouldBeTrue)
				So(again.RequestID, ShouldNotEqual, rec.RequestID)
				So(again.Spread, ShouldResemble, rec.Spread)
				So(again.Stats, ShouldResemble, rec.Stats)
				So(again.Stats.Compatible, ShouldBeGreaterThanOrEqualTo, 4)
			})

			Convey("Then a changed request is computed again", func() {
				c := lagoonMorning()
				c.Lines = 2
				other, err := svc.Recommend(ctx, c)
				So(err, ShouldBeNil)
				So(other.Cached, ShouldBeFalse)
				So(other.Spread.LinesFilled, ShouldEqual, 2)
			})
		})

		Convey("When asking for wahoo inside the lagoon", func() {
			c := lagoonMorning()
			c.Species = model.SpeciesWahoo
			_, err := svc.Recommend(ctx, c)

			Convey("Then the engine rejection is returned as is", func() {
				var engErr *engine.Error
				So(errors.As(err, &engErr), ShouldBeTrue)
				So(errors.Is(err, engine.ErrNoCompatibleLure), ShouldBeTrue)
				So(engErr.Hints, ShouldNotBeEmpty)
			})
		})

		Convey("When the conditions are invalid", func() {
			c := lagoonMorning()
			c.Zone = ""
			_, err := svc.Recommend(ctx, c)
			So(errors.Is(err, engine.ErrInvalidConditions), ShouldBeTrue)
		})

		Convey("When looking up catalog entries", func() {
			cat, err := svc.Lures(ctx)
			So(err, ShouldBeNil)
			So(cat.Len(), ShouldBeGreaterThan, 8)

			l, err := svc.Lure(ctx, "skirt-purple-wahoo")
			So(err, ShouldBeNil)
			So(l.Contrast, ShouldEqual, model.ContrastDark)

			_, err = svc.Lure(ctx, "no-such-lure")
			So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
		})
	})

	Convey("Given a service with a low line cap", t, func() {
		svc := service.New(service.WithCatalogPath(sampleCatalog), service.WithMaxLines(2))
		So(svc.Start(context.Background()), ShouldBeNil)
		defer svc.Stop()

		_, err := svc.Recommend(context.Background(), lagoonMorning())
		So(errors.Is(err, service.ErrLineLimit), ShouldBeTrue)
	})

	Convey("Given a service whose requests cannot finish in time", t, func() {
		svc := service.New(service.WithCatalogPath(sampleCatalog), service.WithRequestTimeout(time.Nanosecond))
		So(svc.Start(context.Background()), ShouldBeNil)
		defer svc.Stop()

		_, err := svc.Recommend(context.Background(), lagoonMorning())
		So(errors.Is(err, service.ErrTimeout), ShouldBeTrue)
	})

	Convey("Given a caller that gives up before the request is queued", t, func() {
		svc := service.New(service.WithCatalogPath(sampleCatalog))
		So(svc.Start(context.Background()), ShouldBeNil)
		defer svc.Stop()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := svc.Recommend(ctx, lagoonMorning())

		Convey("Then the failure reads as a cancellation, not a timeout", func() {
			So(errors.Is(err, service.ErrCancelled), ShouldBeTrue)
			So(errors.Is(err, context.Canceled), ShouldBeTrue)
			So(errors.Is(err, service.ErrTimeout), ShouldBeFalse)
		})
	})
}

func TestServiceCatalogReload(t *testing.T) {
	Convey("Given a service reading a catalog file", t, func() {
		path := writeCatalog(t.TempDir(), oneLure)
		svc := service.New(service.WithCatalogPath(path))
		ctx := context.Background()
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()

		first, err := svc.Recommend(ctx, lagoonMorning())
		So(err, ShouldBeNil)
		So(first.Spread.LinesFilled, ShouldEqual, 1)

		Convey("When the file changes and the catalog is reloaded", func() {
			data, err := os.ReadFile(sampleCatalog)
			So(err, ShouldBeNil)
			writeCatalog(filepath.Dir(path), string(data))

			res, err := svc.ReloadCatalog(ctx)

			Convey("Then a new version is served and the cache does not leak the old one", func() {
				So(err, ShouldBeNil)
				So(res.Version, ShouldEqual, 2)
				So(res.Lures, ShouldBeGreaterThan, 8)

				rec, err := svc.Recommend(ctx, lagoonMorning())
				So(err, ShouldBeNil)
				So(rec.Cached, ShouldBeFalse)
				So(rec.CatalogVersion, ShouldEqual, 2)
				So(rec.Spread.LinesFilled, ShouldEqual, 3)
			})
		})

		Convey("When the file becomes unreadable", func() {
			writeCatalog(filepath.Dir(path), "lures: [")
			_, err := svc.ReloadCatalog(ctx)

			Convey("Then the previous catalog stays in place", func() {
				So(err, ShouldNotBeNil)
				cat, _ := svc.Lures(ctx)
				So(cat.Version, ShouldEqual, 1)
				So(cat.Lures[0].ID, ShouldEqual, "lone-popper")
			})
		})
	})

	Convey("Given a service reloading on a schedule", t, func() {
		path := writeCatalog(t.TempDir(), oneLure)
		svc := service.New(service.WithCatalogPath(path), service.WithReloadSchedule("* * * * * *"))
		So(svc.Start(context.Background()), ShouldBeNil)
		defer svc.Stop()

		Convey("Then the catalog version advances on its own", func() {
			deadline := time.Now().Add(5 * time.Second)
			var version uint64
			for time.Now().Before(deadline) {
				cat, _ := svc.Lures(context.Background())
				if version = cat.Version; version >= 2 {
					break
				}
				time.Sleep(50 * time.Millisecond)
			}
			So(version, ShouldBeGreaterThanOrEqualTo, 2)
			So(svc.GetStats()["nextReload"], ShouldNotBeEmpty)
		})
	})
}

func TestServiceConcurrency(t *testing.T) {
	Convey("Given a service under concurrent load", t, func() {
		svc := service.New(
			service.WithCatalogPath(sampleCatalog),
			service.WithWorkerCount(4),
			service.WithQueueSize(256),
			service.WithCacheSize(0),
		)
		ctx := context.Background()
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()

		const callers = 32
		results := make([]service.Recommendation, callers)
		errs := make([]error, callers)

		var wg sync.WaitGroup
		for i := 0; i < callers; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				results[i], errs[i] = svc.Recommend(ctx, lagoonMorning())
			}(i)
		}
		wg.Wait()

		Convey("Then every caller gets the same spread", func() {
			for i := 0; i < callers; i++ {
				So(errs[i], ShouldBeNil)
				So(results[i].Spread, ShouldResemble, results[0].Spread)
			}
		})

		Convey("Then request ids are unique", func() {
			seen := make(map[string]bool, callers)
			for _, r := range results {
				seen[r.RequestID] = true
			}
			So(len(seen), ShouldEqual, callers)
		})
	})

	Convey("Given a reload racing with recommendations", t, func() {
		path := writeCatalog(t.TempDir(), oneLure)
		svc := service.New(service.WithCatalogPath(path), service.WithWorkerCount(2))
		ctx := context.Background()
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()

		var wg sync.WaitGroup
		failures := make(chan error, 64)
		for i := 0; i < 4; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for j := 0; j < 10; j++ {
					if _, err := svc.ReloadCatalog(ctx); err != nil {
						failures <- fmt.Errorf("reload: %w", err)
					}
					if _, err := svc.Recommend(ctx, lagoonMorning()); err != nil {
						failures <- fmt.Errorf("recommend: %w", err)
					}
				}
			}()
		}
		wg.Wait()
		close(failures)

		Convey("Then nothing fails and every reload got a version", func() {
			for err := range failures {
				So(err, ShouldBeNil)
			}
			cat, _ := svc.Lures(ctx)
			So(cat.Version, ShouldEqual, 41)
		})
	})
}

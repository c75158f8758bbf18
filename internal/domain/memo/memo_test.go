package memo_test

import (
	"context"
	"sync"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/lurespread/internal/domain/engine"
	"github.com/okian/lurespread/internal/domain/filter"
	"github.com/okian/lurespread/internal/domain/memo"
	"github.com/okian/lurespread/internal/domain/model"
)

func conditions() model.Conditions {
	return model.Conditions{
		Zone: model.ZoneReef, WaterDepth: 12, BoatSpeed: 6,
		TimeOfDay: model.TimeDawn, Light: model.LightLow, Turbidity: model.TurbidityClear,
		SeaState: model.SeaCalm, Tide: model.TideRising, Moon: model.MoonNew,
		Profile: model.ProfileStandard, Lines: 3,
	}
}

func result(id string) engine.Result {
	return engine.Result{
		Spread: model.Spread{
			Suggestions: []model.Suggestion{{Lure: model.Lure{ID: id, Zones: []model.Zone{model.ZoneReef}}}},
			LinesFilled: 1,
			Speed:       model.SpeedAdvice{Knots: 6, Adjustments: []string{"none"}},
		},
		Stats: engine.Stats{
			Catalog: 4, Compatible: 2, Qualified: 1, BestScore: 71.5,
			Rejected: map[filter.Reason]int{filter.ReasonZone: 2},
		},
	}
}

func key(n int) memo.Key {
	c := conditions()
	c.BoatSpeed = float64(n)
	return memo.NewKey(1, &c)
}

func TestKey(t *testing.T) {
	Convey("Given a set of conditions", t, func() {
		c := conditions()
		base := memo.NewKey(1, &c)

		Convey("Then the key is stable", func() {
			again := conditions()
			So(memo.NewKey(1, &again), ShouldEqual, base)
		})

		Convey("Then the catalog version changes the key", func() {
			So(memo.NewKey(2, &c), ShouldNotEqual, base)
		})

		Convey("Then every input field changes the key", func() {
			mutations := []func(*model.Conditions){
				func(c *model.Conditions) { c.Zone = model.ZonePass },
				func(c *model.Conditions) { c.WaterDepth = 12.5 },
				func(c *model.Conditions) { c.BoatSpeed = 6.1 },
				func(c *model.Conditions) { c.TimeOfDay = model.TimeDusk },
				func(c *model.Conditions) { c.Light = model.LightDark },
				func(c *model.Conditions) { c.Turbidity = model.TurbidityTurbid },
				func(c *model.Conditions) { c.SeaState = model.SeaRough },
				func(c *model.Conditions) { c.Tide = model.TideFalling },
				func(c *model.Conditions) { c.Moon = model.MoonFull },
				func(c *model.Conditions) { c.Species = model.SpeciesWahoo },
				func(c *model.Conditions) { c.Profile = model.ProfileSport },
				func(c *model.Conditions) { c.Lines = 4 },
			}
			for _, mutate := range mutations {
				m := conditions()
				mutate(&m)
				So(memo.NewKey(1, &m), ShouldNotEqual, base)
			}
		})
	})
}

func TestInMemoryCache(t *testing.T) {
	ctx := context.Background()

	Convey("Given a cache of two entries", t, func() {
		c := memo.NewInMemoryCache(memo.WithMaxSize(2))

		Convey("When a result is stored", func() {
			c.Put(ctx, key(1), result("a"))

			Convey("Then the spread and the run stats come back", func() {
				got, ok := c.Get(ctx, key(1))
				So(ok, ShouldBeTrue)
				So(got.Spread.Suggestions[0].Lure.ID, ShouldEqual, "a")
				So(got.Stats.Compatible, ShouldEqual, 2)
				So(got.Stats.Qualified, ShouldEqual, 1)
				So(got.Stats.BestScore, ShouldEqual, 71.5)
			})

			Convey("Then it is returned as an independent copy", func() {
				got, _ := c.Get(ctx, key(1))
				got.Spread.Suggestions[0].Lure.Zones[0] = model.ZoneDeep
				got.Spread.Speed.Adjustments[0] = "changed"
				got.Stats.Rejected[filter.ReasonZone] = 9
				again, _ := c.Get(ctx, key(1))
				So(again.Spread.Suggestions[0].Lure.Zones[0], ShouldEqual, model.ZoneReef)
				So(again.Spread.Speed.Adjustments[0], ShouldEqual, "none")
				So(again.Stats.Rejected[filter.ReasonZone], ShouldEqual, 2)
			})
		})

		Convey("When a third entry arrives", func() {
			c.Put(ctx, key(1), result("a"))
			c.Put(ctx, key(2), result("b"))
			c.Put(ctx, key(3), result("c"))

			Convey("Then the oldest is evicted", func() {
				_, ok := c.Get(ctx, key(1))
				So(ok, ShouldBeFalse)
				_, ok = c.Get(ctx, key(3))
				So(ok, ShouldBeTrue)
				So(c.Size(), ShouldEqual, 2)
			})
		})

		Convey("When a key is stored twice", func() {
			c.Put(ctx, key(1), result("a"))
			c.Put(ctx, key(1), result("a2"))

			Convey("Then the entry is replaced without growing", func() {
				got, _ := c.Get(ctx, key(1))
				So(got.Spread.Suggestions[0].Lure.ID, ShouldEqual, "a2")
				So(c.Size(), ShouldEqual, 1)
			})
		})
	})

	Convey("Given a disabled cache", t, func() {
		c := memo.NewInMemoryCache(memo.WithMaxSize(0))
		c.Put(ctx, key(1), result("a"))
		_, ok := c.Get(ctx, key(1))
		So(ok, ShouldBeFalse)
		So(c.Size(), ShouldEqual, 0)
	})

	Convey("Given concurrent writers", t, func() {
		c := memo.NewInMemoryCache(memo.WithMaxSize(16))
		var wg sync.WaitGroup
		for w := 0; w < 8; w++ {
			wg.Add(1)
			go func(w int) {
				defer wg.Done()
				for i := 0; i < 100; i++ {
					k := key(w*1000 + i)
					c.Put(ctx, k, result("x"))
					_, _ = c.Get(ctx, k)
				}
			}(w)
		}
		wg.Wait()
		So(c.Size(), ShouldEqual, 16)
	})
}

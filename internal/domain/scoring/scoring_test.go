package scoring_test

import (
	"strings"
	"testing"

	"github.com/okian/lurespread/internal/domain/model"
	"github.com/okian/lurespread/internal/domain/scoring"
	. "github.com/smartystreets/goconvey/convey"
)

func lagoonLure() model.Lure {
	return model.Lure{
		ID:           "lagoon-chartreuse",
		Kind:         model.KindPlug,
		Technique:    model.TechniqueTrolling,
		PrimaryColor: "chartreuse",
		Depth:        &model.Range{Min: 1, Max: 3},
		Speed:        &model.Range{Min: 4, Max: 8},
		Zones:        []model.Zone{model.ZoneLagoon},
		Species:      []model.Species{model.SpeciesBarracuda, model.SpeciesGiantTrevally},
		Optimal: model.OptimalConditions{
			TimesOfDay: []model.TimeOfDay{model.TimeDawn},
			SeaStates:  []model.SeaState{model.SeaCalm},
			Tides:      []model.Tide{model.TideRising},
			Moons:      []model.MoonPhase{model.MoonNew},
		},
	}.Normalize()
}

func dawnConditions() model.Conditions {
	return model.Conditions{
		Zone:       model.ZoneLagoon,
		WaterDepth: 10,
		BoatSpeed:  6,
		TimeOfDay:  model.TimeDawn,
		Light:      model.LightDiffuse,
		Turbidity:  model.TurbidityVeryTurbid,
		SeaState:   model.SeaCalm,
		Tide:       model.TideRising,
		Moon:       model.MoonNew,
		Species:    model.SpeciesBarracuda,
		Profile:    model.ProfileStandard,
		Lines:      3,
	}
}

func TestScore(t *testing.T) {
	Convey("Given a lagoon lure that matches every declared condition", t, func() {
		l := lagoonLure()
		c := dawnConditions()

		Convey("When it is scored at dawn with rising tide and new moon", func() {
			s := scoring.Score(&c, &l)

			Convey("Then every phase hits its expected value", func() {
				So(s.TechniqueScore, ShouldAlmostEqual, 40)
				So(s.ColorScore, ShouldAlmostEqual, 25)
				So(s.ConditionsBase, ShouldAlmostEqual, 30)
				So(s.Multiplier, ShouldAlmostEqual, 1.3)
				So(s.ConditionsScore, ShouldAlmostEqual, 39)
				So(s.TotalScore, ShouldAlmostEqual, 104)
			})

			Convey("Then the probability is clamped at the ceiling", func() {
				So(s.Probability, ShouldEqual, 95)
			})

			Convey("Then the suggestion is not placed yet", func() {
				So(s.Placed(), ShouldBeFalse)
				So(s.DistanceM, ShouldEqual, 0)
			})

			Convey("Then the justification names each phase factor", func() {
				So(s.Justification.Technique, ShouldContainSubstring, "built for lagoon")
				So(s.Justification.Color, ShouldContainSubstring, "very turbid water")
				So(s.Justification.Conditions, ShouldContainSubstring, "x1.3")
			})

			Convey("Then details cover all phases including the probability bonuses", func() {
				phases := map[model.Phase]int{}
				for _, d := range s.Details {
					phases[d.Phase]++
				}
				So(phases[model.PhaseTechnique], ShouldEqual, 4)
				So(phases[model.PhaseColor], ShouldEqual, 3)
				So(phases[model.PhaseConditions], ShouldEqual, 4)
				So(phases[model.PhaseBonus], ShouldBeGreaterThan, 0)
			})
		})
	})

	Convey("Given a reef lure fished in the lagoon outside its declared conditions", t, func() {
		l := model.Lure{
			ID:           "reef-black",
			Kind:         model.KindPlug,
			PrimaryColor: "black",
			Speed:        &model.Range{Min: 7, Max: 9},
			Zones:        []model.Zone{model.ZoneReef},
			Species:      []model.Species{model.SpeciesWahoo},
		}.Normalize()
		c := dawnConditions()
		c.TimeOfDay = model.TimeMidday
		c.Turbidity = model.TurbidityClear
		c.SeaState = model.SeaRough
		c.Tide = model.TideSlack
		c.Moon = model.MoonFirstQuarter

		s := scoring.Score(&c, &l)

		Convey("Then the adjacent zone, unknown depth and tolerance speed scores apply", func() {
			So(s.TechniqueScore, ShouldAlmostEqual, 8+5+3+0)
		})

		Convey("Then the dark colour scores low in clear diffuse light", func() {
			So(s.ColorScore, ShouldAlmostEqual, 5+4+5)
		})

		Convey("Then conditions use the floors and the midday rough sea multiplier", func() {
			So(s.ConditionsBase, ShouldAlmostEqual, 6)
			So(s.Multiplier, ShouldAlmostEqual, 0.8)
			So(s.ConditionsScore, ShouldAlmostEqual, 4.8)
		})

		Convey("Then the probability carries the heavy sea penalty", func() {
			So(s.TotalScore, ShouldAlmostEqual, 34.8)
			So(s.Probability, ShouldAlmostEqual, 44.4)
		})
	})
}

func TestConditionsTideBump(t *testing.T) {
	Convey("Given a dark lure that lists the falling tide", t, func() {
		l := model.Lure{
			ID:           "dark",
			PrimaryColor: "purple",
			Speed:        &model.Range{Min: 5, Max: 8},
			Optimal:      model.OptimalConditions{Tides: []model.Tide{model.TideFalling}},
		}.Normalize()
		c := dawnConditions()
		c.Tide = model.TideFalling

		Convey("When the water is turbid", func() {
			c.Turbidity = model.TurbidityTurbid
			r := scoring.Conditions(&c, &l)

			Convey("Then the tide bonus is bumped and capped at 6", func() {
				for _, d := range r.Details {
					if d.Factor == "tide" {
						So(d.Points, ShouldEqual, 6)
					}
				}
			})
		})

		Convey("When the water is clear", func() {
			c.Turbidity = model.TurbidityClear
			r := scoring.Conditions(&c, &l)

			Convey("Then the plain tier applies", func() {
				for _, d := range r.Details {
					if d.Factor == "tide" {
						So(d.Points, ShouldEqual, 5)
					}
				}
			})
		})
	})
}

func TestMultiplier(t *testing.T) {
	Convey("Given the three combination rules", t, func() {
		c := dawnConditions()

		Convey("Dawn with rising tide and new moon gives 1.3", func() {
			m, rule := scoring.Multiplier(&c)
			So(m, ShouldEqual, 1.3)
			So(rule, ShouldNotBeEmpty)
		})

		Convey("Dusk with calm sea and full moon gives 1.2", func() {
			c.TimeOfDay = model.TimeDusk
			c.Moon = model.MoonFull
			m, _ := scoring.Multiplier(&c)
			So(m, ShouldEqual, 1.2)
		})

		Convey("Midday in a formed sea gives 0.8", func() {
			c.TimeOfDay = model.TimeMidday
			c.SeaState = model.SeaFormed
			m, _ := scoring.Multiplier(&c)
			So(m, ShouldEqual, 0.8)
		})

		Convey("Anything else is neutral", func() {
			c.TimeOfDay = model.TimeMorning
			m, rule := scoring.Multiplier(&c)
			So(m, ShouldEqual, 1.0)
			So(rule, ShouldBeEmpty)
		})
	})
}

func TestScoreBounds(t *testing.T) {
	Convey("Given lures of every contrast category", t, func() {
		lures := []model.Lure{
			lagoonLure(),
			model.Lure{ID: "bright", PrimaryColor: "white", Speed: &model.Range{Min: 6, Max: 10}}.Normalize(),
			model.Lure{ID: "dark", PrimaryColor: "black", Speed: &model.Range{Min: 6, Max: 10}, Kind: model.KindJig}.Normalize(),
			model.Lure{ID: "contrast", PrimaryColor: "black", SecondaryColor: "pink", Speed: &model.Range{Min: 6, Max: 10}}.Normalize(),
		}

		Convey("When scored across every light, turbidity and sea combination", func() {
			ok := true
			var failure string
			for _, light := range model.LightLevels {
				for _, turb := range model.Turbidities {
					for _, sea := range []model.SeaState{model.SeaCalm, model.SeaLightChop, model.SeaFormed, model.SeaRough} {
						c := dawnConditions()
						c.Light, c.Turbidity, c.SeaState = light, turb, sea
						for i := range lures {
							s := scoring.Score(&c, &lures[i])
							if s.TechniqueScore < 0 || s.TechniqueScore > scoring.MaxTechnique ||
								s.ColorScore < 0 || s.ColorScore > scoring.MaxColor ||
								s.ConditionsBase < 0 || s.ConditionsBase > scoring.MaxConditions ||
								s.Probability < 30 || s.Probability > 95 {
								ok = false
								failure = strings.Join([]string{lures[i].ID, string(light), string(turb), string(sea)}, "/")
							}
						}
					}
				}
			}

			Convey("Then every phase stays within its bounds", func() {
				So(failure, ShouldBeEmpty)
				So(ok, ShouldBeTrue)
			})
		})
	})
}

func TestIdealDepth(t *testing.T) {
	Convey("Given conditions with and without a species", t, func() {
		c := dawnConditions()

		Convey("The species ideal depth wins", func() {
			So(scoring.IdealDepth(&c), ShouldEqual, 3)
		})

		Convey("The zone ideal depth is the fallback", func() {
			c.Species = ""
			c.Zone = model.ZoneDeep
			So(scoring.IdealDepth(&c), ShouldEqual, 10)
		})
	})
}

func points(details []model.ScoreDetail, factor string) (float64, bool) {
	for _, d := range details {
		if d.Factor == factor {
			return d.Points, true
		}
	}
	return 0, false
}

func duskWahooLure() model.Lure {
	return model.Lure{
		ID:           "dark-wahoo",
		Kind:         model.KindPlug,
		PrimaryColor: "black",
		Speed:        &model.Range{Min: 6, Max: 10},
		Species:      []model.Species{model.SpeciesWahoo},
		Optimal: model.OptimalConditions{
			TimesOfDay: []model.TimeOfDay{model.TimeDusk},
			Tides:      []model.Tide{model.TideFalling},
		},
	}.Normalize()
}

func roughDusk() model.Conditions {
	c := dawnConditions()
	c.Zone = model.ZoneOffshore
	c.TimeOfDay = model.TimeDusk
	c.Light = model.LightNight
	c.Turbidity = model.TurbidityVeryTurbid
	c.Tide = model.TideFalling
	c.SeaState = model.SeaRough
	c.Species = model.SpeciesWahoo
	return c
}

func TestProbabilityBonuses(t *testing.T) {
	Convey("Given a dark wahoo lure at dusk in rough, very turbid water on a falling tide", t, func() {
		l := duskWahooLure()
		c := roughDusk()
		So(l.ContrastCategory(), ShouldEqual, model.ContrastDark)

		Convey("When the total score sits on the pivot", func() {
			p, details := scoring.Probability(&c, &l, 50)

			Convey("Then every bonus and the penalty apply with their exact weights", func() {
				So(p, ShouldEqual, 70)
				want := map[string]float64{
					"species_target":     5,
					"time_of_day":        3,
					"turbidity_contrast": 2,
					"light_contrast":     2,
					"heavy_sea":          -5,
					"turbid_falling":     3,
				}
				So(len(details), ShouldEqual, len(want))
				for factor, v := range want {
					got, ok := points(details, factor)
					So(ok, ShouldBeTrue)
					So(got, ShouldEqual, v)
				}
			})
		})

		Convey("When the ideal period is not a twilight", func() {
			l.Optimal.TimesOfDay = []model.TimeOfDay{model.TimeMorning}
			c.TimeOfDay = model.TimeMorning
			p, details := scoring.Probability(&c, &l, 50)

			Convey("Then the period earns the plain bonus without the twilight extra", func() {
				got, _ := points(details, "time_of_day")
				So(got, ShouldEqual, 2)
				So(p, ShouldEqual, 69)
			})
		})

		Convey("When no species is requested", func() {
			c.Species = ""
			p, details := scoring.Probability(&c, &l, 50)

			Convey("Then the species bonus is absent", func() {
				_, ok := points(details, "species_target")
				So(ok, ShouldBeFalse)
				So(p, ShouldEqual, 65)
			})
		})

		Convey("When the lure sinks", func() {
			l.Kind = model.KindJig
			p, details := scoring.Probability(&c, &l, 50)

			Convey("Then the heavy sea penalty does not apply", func() {
				_, ok := points(details, "heavy_sea")
				So(ok, ShouldBeFalse)
				So(p, ShouldEqual, 75)
			})
		})

		Convey("When the tide is rising instead", func() {
			c.Tide = model.TideRising
			p, details := scoring.Probability(&c, &l, 50)

			Convey("Then the turbid falling bonus is lost", func() {
				_, ok := points(details, "turbid_falling")
				So(ok, ShouldBeFalse)
				So(p, ShouldEqual, 67)
			})
		})
	})

	Convey("Given a natural lure that lists a calm rising tide", t, func() {
		l := model.Lure{
			ID:           "silver-calm",
			PrimaryColor: "silver",
			Speed:        &model.Range{Min: 5, Max: 8},
			Optimal: model.OptimalConditions{
				SeaStates: []model.SeaState{model.SeaCalm},
				Tides:     []model.Tide{model.TideRising},
			},
		}.Normalize()
		c := dawnConditions()
		c.Species = ""
		c.Light = model.LightStrong
		c.Turbidity = model.TurbidityClear

		Convey("Then the rising tide, sea state and both contrast bonuses add two each", func() {
			p, details := scoring.Probability(&c, &l, 50)
			for _, factor := range []string{"rising_tide", "sea_state", "turbidity_contrast", "light_contrast"} {
				got, ok := points(details, factor)
				So(ok, ShouldBeTrue)
				So(got, ShouldEqual, 2)
			}
			So(p, ShouldEqual, 68)
		})

		Convey("Then a slack tide drops the rising tide bonus even if listed", func() {
			l.Optimal.Tides = append(l.Optimal.Tides, model.TideSlack)
			c.Tide = model.TideSlack
			p, _ := scoring.Probability(&c, &l, 50)
			So(p, ShouldEqual, 66)
		})
	})

	Convey("Given a lure that earns no bonus", t, func() {
		l := model.Lure{ID: "plain", PrimaryColor: "silver", Speed: &model.Range{Min: 5, Max: 8}}.Normalize()
		c := dawnConditions()
		c.Species = ""
		c.Light = model.LightNight

		Convey("Then the probability follows the slope around the pivot", func() {
			p, details := scoring.Probability(&c, &l, 70)
			So(details, ShouldBeEmpty)
			So(p, ShouldEqual, 74)

			p, _ = scoring.Probability(&c, &l, 40)
			So(p, ShouldEqual, 53)
		})

		Convey("Then it is clamped at the floor", func() {
			p, _ := scoring.Probability(&c, &l, 0)
			So(p, ShouldEqual, 30)
		})
	})
}

func TestColorBonus(t *testing.T) {
	Convey("Given a pink lure", t, func() {
		l := model.Lure{ID: "pink", PrimaryColor: "pink", Speed: &model.Range{Min: 6, Max: 10}}.Normalize()
		So(l.ContrastCategory(), ShouldEqual, model.ContrastFlashy)
		c := dawnConditions()
		c.Light = model.LightNight
		c.Turbidity = model.TurbidityClear

		Convey("When the sea is rough", func() {
			c.SeaState = model.SeaRough
			p := scoring.Color(&c, &l)

			Convey("Then light, clarity and the rough sea colour bonus add up", func() {
				light, _ := points(p.Details, "light")
				turbidity, _ := points(p.Details, "turbidity")
				bonus, _ := points(p.Details, "color_bonus")
				So(light, ShouldEqual, 4)
				So(turbidity, ShouldEqual, 7)
				So(bonus, ShouldEqual, 10)
				So(p.Points, ShouldEqual, 21)
			})
		})

		Convey("When the sea is calm", func() {
			c.SeaState = model.SeaCalm
			p := scoring.Color(&c, &l)

			Convey("Then only the default bonus applies", func() {
				So(p.Points, ShouldEqual, 16)
			})
		})
	})

	Convey("Given a fuchsia lure in a formed sea", t, func() {
		l := model.Lure{ID: "fuchsia", PrimaryColor: "fuchsia", Contrast: model.ContrastFlashy, Speed: &model.Range{Min: 6, Max: 10}}.Normalize()
		c := dawnConditions()
		c.SeaState = model.SeaFormed

		bonus, _ := points(scoring.Color(&c, &l).Details, "color_bonus")
		So(bonus, ShouldEqual, 10)
	})

	Convey("Given baitfish colours in clear water under strong light", t, func() {
		c := dawnConditions()
		c.Light = model.LightStrong
		c.Turbidity = model.TurbidityClear

		for _, color := range []string{"silver", "blue-silver"} {
			l := model.Lure{ID: color, PrimaryColor: color, Contrast: model.ContrastNatural, Speed: &model.Range{Min: 6, Max: 10}}.Normalize()
			p := scoring.Color(&c, &l)
			bonus, _ := points(p.Details, "color_bonus")
			So(bonus, ShouldEqual, 10)
			So(p.Points, ShouldEqual, 30)
		}

		Convey("Then the same colour in turbid water gets the default bonus", func() {
			c.Turbidity = model.TurbidityTurbid
			l := model.Lure{ID: "silver", PrimaryColor: "silver", Contrast: model.ContrastNatural, Speed: &model.Range{Min: 6, Max: 10}}.Normalize()
			bonus, _ := points(scoring.Color(&c, &l).Details, "color_bonus")
			So(bonus, ShouldEqual, 5)
		})
	})
}

func TestVersatility(t *testing.T) {
	Convey("Given no requested species", t, func() {
		c := dawnConditions()
		c.Species = ""
		all := []model.Species{
			model.SpeciesWahoo, model.SpeciesMahiMahi, model.SpeciesYellowfinTuna, model.SpeciesSkipjackTuna,
			model.SpeciesBlueMarlin, model.SpeciesSailfish, model.SpeciesBarracuda,
		}

		Convey("Then the species factor credits the declared species count up to five", func() {
			for n, want := range map[int]float64{0: 0, 1: 1, 3: 3, 5: 5, 7: 5} {
				l := lagoonLure()
				l.Species = all[:n]
				got, ok := points(scoring.Technique(&c, &l).Details, "species")
				So(ok, ShouldBeTrue)
				So(got, ShouldEqual, want)
			}
		})
	})

	Convey("Given a requested species", t, func() {
		c := dawnConditions()
		l := lagoonLure()

		Convey("Then a targeting lure earns five and any other earns nothing", func() {
			got, _ := points(scoring.Technique(&c, &l).Details, "species")
			So(got, ShouldEqual, 5)

			c.Species = model.SpeciesWahoo
			got, _ = points(scoring.Technique(&c, &l).Details, "species")
			So(got, ShouldEqual, 0)
		})
	})
}

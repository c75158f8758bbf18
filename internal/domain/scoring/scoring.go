// Package scoring computes the three phase scores (technique, colour, conditions)
// of a lure, its catch probability and the justification text.
//
// All functions are pure: they read the conditions and the lure and return new
// values. Tables are package data built once at init.
package scoring

import (
	"fmt"
	"math"
	"slices"

	"github.com/okian/lurespread/internal/domain/filter"
	"github.com/okian/lurespread/internal/domain/model"
)

// Phase caps and sub-caps.
const (
	MaxTechnique  = 40.0
	MaxColor      = 30.0
	MaxConditions = 30.0

	maxZone      = 15.0
	maxDepth     = 10.0
	maxSpeed     = 10.0
	maxSpecies   = 5.0
	maxLight     = 10.0
	maxTurbidity = 10.0
	maxBonus     = 10.0
	maxTimeOfDay = 10.0
	maxSeaState  = 8.0
	maxTide      = 6.0
	maxMoon      = 6.0

	adjacentZonePoints = 8.0
	depthFloor         = 1.0
	unknownDepthPoints = 5.0
	speedMidPoints     = 10.0
	speedRangePoints   = 7.0
	speedBandPoints    = 3.0
	speedMidWindow     = 1.0
	defaultColorBonus  = 5.0
	timeOfDayFloor     = 2.0
	seaStateFloor      = 2.0
	tideFloor          = 1.0
	moonFloor          = 1.0
	turbidTideBump     = 2.0
)

// Contextual multipliers applied to the summed conditions bonus.
const (
	multiplierDawnRun   = 1.3
	multiplierDuskCalm  = 1.2
	multiplierMiddayBad = 0.8
	multiplierNeutral   = 1.0
)

// PhaseScore is the result of one scoring phase.
type PhaseScore struct {
	Points  float64
	Details []model.ScoreDetail
}

func (p *PhaseScore) add(phase model.Phase, factor string, points, limit float64, note string) {
	points = clamp(points, 0, limit)
	p.Points += points
	p.Details = append(p.Details, model.ScoreDetail{
		Phase:  phase,
		Factor: factor,
		Points: points,
		Max:    limit,
		Note:   note,
	})
}

// Technique scores zone, depth, speed and species fit (cap 40).
func Technique(c *model.Conditions, l *model.Lure) PhaseScore {
	var p PhaseScore

	zone, zoneNote := zoneFit(c.Zone, l)
	p.add(model.PhaseTechnique, "zone", zone, maxZone, zoneNote)

	depth, depthNote := depthFit(c, l)
	p.add(model.PhaseTechnique, "depth", depth, maxDepth, depthNote)

	speed, speedNote := speedFit(c, l)
	p.add(model.PhaseTechnique, "speed", speed, maxSpeed, speedNote)

	species, speciesNote := speciesFit(c, l)
	p.add(model.PhaseTechnique, "species", species, maxSpecies, speciesNote)

	p.Points = clamp(p.Points, 0, MaxTechnique)
	return p
}

func zoneFit(z model.Zone, l *model.Lure) (float64, string) {
	if l.AdaptedTo(z) {
		return maxZone, fmt.Sprintf("built for %s", z)
	}
	if len(l.Zones) == 0 {
		return adjacentZonePoints, "no declared zone, generic use"
	}
	for _, lz := range l.Zones {
		if z.Adjacent(lz) {
			return adjacentZonePoints, fmt.Sprintf("%s lure accepted in %s", lz, z)
		}
	}
	return 0, fmt.Sprintf("not adapted to %s", z)
}

func depthFit(c *model.Conditions, l *model.Lure) (float64, string) {
	ideal := IdealDepth(c)
	if l.Depth == nil {
		return unknownDepthPoints, fmt.Sprintf("no declared swim depth, ideal %.1f m", ideal)
	}
	mid := l.Depth.Mid()
	gap := math.Abs(mid - ideal)
	note := fmt.Sprintf("swims at %.1f m, ideal %.1f m", mid, ideal)
	for _, step := range depthLadder {
		if gap <= step.within {
			return step.points, note
		}
	}
	return depthFloor, note
}

func speedFit(c *model.Conditions, l *model.Lure) (float64, string) {
	if l.Speed == nil {
		return 0, "no trolling speed range"
	}
	mid := l.Speed.Mid()
	switch {
	case math.Abs(c.BoatSpeed-mid) <= speedMidWindow:
		return speedMidPoints, fmt.Sprintf("%.1f kn is at the sweet spot (%.1f kn)", c.BoatSpeed, mid)
	case l.Speed.Contains(c.BoatSpeed):
		return speedRangePoints, fmt.Sprintf("%.1f kn inside %.1f-%.1f kn", c.BoatSpeed, l.Speed.Min, l.Speed.Max)
	case filter.SpeedBand(c, *l.Speed).Contains(c.BoatSpeed):
		return speedBandPoints, fmt.Sprintf("%.1f kn within tolerance of %.1f-%.1f kn", c.BoatSpeed, l.Speed.Min, l.Speed.Max)
	default:
		return 0, fmt.Sprintf("%.1f kn outside %.1f-%.1f kn", c.BoatSpeed, l.Speed.Min, l.Speed.Max)
	}
}

func speciesFit(c *model.Conditions, l *model.Lure) (float64, string) {
	if c.HasSpecies() {
		if l.Targets(c.Species) {
			return maxSpecies, fmt.Sprintf("targets %s", c.Species)
		}
		return 0, fmt.Sprintf("does not list %s", c.Species)
	}
	n := min(len(l.Species), len(versatilityTiers)-1)
	return versatilityTiers[n], fmt.Sprintf("versatile across %d species", len(l.Species))
}

// Color scores luminosity, clarity and high-signal colour combinations (cap 30).
func Color(c *model.Conditions, l *model.Lure) PhaseScore {
	var p PhaseScore
	contrast := l.ContrastCategory()

	p.add(model.PhaseColor, "light", LightScore(c.Light, contrast), maxLight,
		fmt.Sprintf("%s contrast under %s light", contrast, c.Light))
	p.add(model.PhaseColor, "turbidity", TurbidityScore(c.Turbidity, contrast), maxTurbidity,
		fmt.Sprintf("%s contrast in %s water", contrast, c.Turbidity))

	bonus, note := colorBonus(c, l.ColorTag())
	p.add(model.PhaseColor, "color_bonus", bonus, maxBonus, note)

	p.Points = clamp(p.Points, 0, MaxColor)
	return p
}

func colorBonus(c *model.Conditions, tag string) (float64, string) {
	switch {
	case turbidWaterColors[tag] && c.Turbidity == model.TurbidityVeryTurbid:
		return maxBonus, tag + " stands out in very turbid water"
	case roughSeaColors[tag] && c.SeaState.IsHeavy():
		return maxBonus, tag + " shows through a " + string(c.SeaState) + " sea"
	case clearWaterColors[tag] && c.Turbidity == model.TurbidityClear:
		return maxBonus, tag + " imitates baitfish in clear water"
	default:
		return defaultColorBonus, "no specific colour combination"
	}
}

// ConditionsResult is the conditions phase before and after the contextual multiplier.
type ConditionsResult struct {
	PhaseScore
	Base       float64
	Multiplier float64
	Rule       string
}

// Conditions scores time of day, sea state, tide and moon against the lure's
// declared optimal set (cap 30), then applies the contextual multiplier.
func Conditions(c *model.Conditions, l *model.Lure) ConditionsResult {
	var p PhaseScore
	opt := &l.Optimal

	tod, todNote := tiered(slices.Contains(opt.TimesOfDay, c.TimeOfDay), timeOfDayTiers[c.TimeOfDay], timeOfDayFloor, string(c.TimeOfDay))
	p.add(model.PhaseConditions, "time_of_day", tod, maxTimeOfDay, todNote)

	sea, seaNote := tiered(slices.Contains(opt.SeaStates, c.SeaState), seaStateTiers[c.SeaState], seaStateFloor, string(c.SeaState)+" sea")
	p.add(model.PhaseConditions, "sea_state", sea, maxSeaState, seaNote)

	tide, tideNote := tiered(slices.Contains(opt.Tides, c.Tide), tideTiers[c.Tide], tideFloor, string(c.Tide)+" tide")
	if turbidFallingMatch(c, l) {
		tide += turbidTideBump
		tideNote += ", falling turbid water favours dark/flashy"
	}
	p.add(model.PhaseConditions, "tide", tide, maxTide, tideNote)

	moon, moonNote := tiered(slices.Contains(opt.Moons, c.Moon), moonTiers[c.Moon], moonFloor, string(c.Moon)+" moon")
	p.add(model.PhaseConditions, "moon", moon, maxMoon, moonNote)

	base := clamp(p.Points, 0, MaxConditions)
	mult, rule := Multiplier(c)
	p.Points = base * mult
	return ConditionsResult{PhaseScore: p, Base: base, Multiplier: mult, Rule: rule}
}

func tiered(matched bool, tier, floor float64, label string) (float64, string) {
	if matched {
		return tier, label + " is in the lure's optimal set"
	}
	return floor, label + " is outside the lure's optimal set"
}

// turbidFallingMatch is the falling tide + turbid water + dark/flashy combination.
func turbidFallingMatch(c *model.Conditions, l *model.Lure) bool {
	if c.Tide != model.TideFalling || !c.Turbidity.IsTurbid() {
		return false
	}
	contrast := l.ContrastCategory()
	return contrast == model.ContrastDark || contrast == model.ContrastFlashy
}

// Multiplier returns the contextual multiplier for the conditions and the rule that fired.
func Multiplier(c *model.Conditions) (float64, string) {
	switch {
	case c.TimeOfDay == model.TimeDawn && c.Tide == model.TideRising && c.Moon == model.MoonNew:
		return multiplierDawnRun, "dawn, rising tide and new moon"
	case c.TimeOfDay == model.TimeDusk && c.SeaState == model.SeaCalm && c.Moon == model.MoonFull:
		return multiplierDuskCalm, "dusk, calm sea and full moon"
	case c.TimeOfDay == model.TimeMidday && c.SeaState.IsHeavy():
		return multiplierMiddayBad, "midday in a " + string(c.SeaState) + " sea"
	default:
		return multiplierNeutral, ""
	}
}

// Score runs every phase for one lure and returns an unplaced suggestion.
func Score(c *model.Conditions, l *model.Lure) model.Suggestion {
	tech := Technique(c, l)
	col := Color(c, l)
	cond := Conditions(c, l)

	total := tech.Points + col.Points + cond.Points
	prob, probDetails := Probability(c, l, total)

	details := make([]model.ScoreDetail, 0, len(tech.Details)+len(col.Details)+len(cond.Details)+len(probDetails))
	details = append(details, tech.Details...)
	details = append(details, col.Details...)
	details = append(details, cond.Details...)
	details = append(details, probDetails...)

	return model.Suggestion{
		Lure:            l.Clone(),
		TechniqueScore:  tech.Points,
		ColorScore:      col.Points,
		ConditionsBase:  cond.Base,
		Multiplier:      cond.Multiplier,
		ConditionsScore: cond.Points,
		TotalScore:      total,
		Probability:     prob,
		Justification:   buildJustification(tech, col, cond),
		Details:         details,
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

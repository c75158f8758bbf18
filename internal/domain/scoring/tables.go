package scoring

import "github.com/okian/lurespread/internal/domain/model"

// lightKey indexes the luminosity table.
type lightKey struct {
	light    model.LightLevel
	contrast model.Contrast
}

// turbidityKey indexes the water clarity table.
type turbidityKey struct {
	turbidity model.Turbidity
	contrast  model.Contrast
}

// lightTable scores how visible each contrast category is under each light level (0-10).
var lightTable = map[lightKey]float64{
	{model.LightStrong, model.ContrastNatural}: 10,
	{model.LightStrong, model.ContrastFlashy}:  8,
	{model.LightStrong, model.ContrastDark}:    4,
	{model.LightStrong, model.ContrastHigh}:    6,

	{model.LightDiffuse, model.ContrastNatural}: 8,
	{model.LightDiffuse, model.ContrastFlashy}:  9,
	{model.LightDiffuse, model.ContrastDark}:    5,
	{model.LightDiffuse, model.ContrastHigh}:    7,

	{model.LightLow, model.ContrastNatural}: 5,
	{model.LightLow, model.ContrastFlashy}:  8,
	{model.LightLow, model.ContrastDark}:    7,
	{model.LightLow, model.ContrastHigh}:    9,

	{model.LightDark, model.ContrastNatural}: 3,
	{model.LightDark, model.ContrastFlashy}:  6,
	{model.LightDark, model.ContrastDark}:    9,
	{model.LightDark, model.ContrastHigh}:    10,

	{model.LightNight, model.ContrastNatural}: 2,
	{model.LightNight, model.ContrastFlashy}:  4,
	{model.LightNight, model.ContrastDark}:    10,
	{model.LightNight, model.ContrastHigh}:    9,
}

// turbidityTable scores each contrast category against water clarity (0-10).
var turbidityTable = map[turbidityKey]float64{
	{model.TurbidityClear, model.ContrastNatural}: 10,
	{model.TurbidityClear, model.ContrastFlashy}:  7,
	{model.TurbidityClear, model.ContrastDark}:    4,
	{model.TurbidityClear, model.ContrastHigh}:    5,

	{model.TurbiditySlightlyTurbid, model.ContrastNatural}: 7,
	{model.TurbiditySlightlyTurbid, model.ContrastFlashy}:  9,
	{model.TurbiditySlightlyTurbid, model.ContrastDark}:    6,
	{model.TurbiditySlightlyTurbid, model.ContrastHigh}:    7,

	{model.TurbidityTurbid, model.ContrastNatural}: 4,
	{model.TurbidityTurbid, model.ContrastFlashy}:  8,
	{model.TurbidityTurbid, model.ContrastDark}:    8,
	{model.TurbidityTurbid, model.ContrastHigh}:    9,

	{model.TurbidityVeryTurbid, model.ContrastNatural}: 2,
	{model.TurbidityVeryTurbid, model.ContrastFlashy}:  6,
	{model.TurbidityVeryTurbid, model.ContrastDark}:    9,
	{model.TurbidityVeryTurbid, model.ContrastHigh}:    10,
}

// LightScore returns the luminosity fit of a contrast category, 0 when unknown.
func LightScore(l model.LightLevel, c model.Contrast) float64 {
	return lightTable[lightKey{l, c}]
}

// TurbidityScore returns the clarity fit of a contrast category, 0 when unknown.
func TurbidityScore(t model.Turbidity, c model.Contrast) float64 {
	return turbidityTable[turbidityKey{t, c}]
}

// Condition tier tables. A value applies only when the current condition is
// listed in the lure's optimal set; otherwise the floor applies.
var (
	timeOfDayTiers = map[model.TimeOfDay]float64{
		model.TimeDawn:      10,
		model.TimeDusk:      10,
		model.TimeMorning:   7,
		model.TimeAfternoon: 6,
		model.TimeNight:     5,
		model.TimeMidday:    4,
	}
	seaStateTiers = map[model.SeaState]float64{
		model.SeaCalm:      8,
		model.SeaLightChop: 7,
		model.SeaFormed:    6,
		model.SeaRough:     5,
	}
	tideTiers = map[model.Tide]float64{
		model.TideRising:  6,
		model.TideFalling: 5,
		model.TideSlack:   3,
	}
	moonTiers = map[model.MoonPhase]float64{
		model.MoonNew:          6,
		model.MoonFull:         6,
		model.MoonFirstQuarter: 4,
		model.MoonLastQuarter:  4,
	}
)

// Ideal depth, meters, used by the technique phase.
var (
	speciesIdealDepth = map[model.Species]float64{
		model.SpeciesWahoo:         8,
		model.SpeciesMahiMahi:      3,
		model.SpeciesYellowfinTuna: 10,
		model.SpeciesSkipjackTuna:  4,
		model.SpeciesBlueMarlin:    5,
		model.SpeciesSailfish:      4,
		model.SpeciesBarracuda:     3,
		model.SpeciesGiantTrevally: 3,
		model.SpeciesKingMackerel:  6,
		model.SpeciesDogtoothTuna:  15,
	}
	zoneIdealDepth = map[model.Zone]float64{
		model.ZoneLagoon:    2,
		model.ZoneReef:      3,
		model.ZonePass:      5,
		model.ZoneOffshore:  6,
		model.ZoneDeep:      10,
		model.ZoneStructure: 8,
	}
)

const defaultIdealDepth = 5.0

// IdealDepth derives the target swim depth from the species, or from the zone
// when no species (or an unknown one) is requested.
func IdealDepth(c *model.Conditions) float64 {
	if d, ok := speciesIdealDepth[c.Species]; ok {
		return d
	}
	if d, ok := zoneIdealDepth[c.Zone]; ok {
		return d
	}
	return defaultIdealDepth
}

// depthStep is one rung of the depth-fit ladder.
type depthStep struct {
	within float64
	points float64
}

// depthLadder degrades in four steps from full score to the floor.
var depthLadder = []depthStep{
	{within: 2, points: 10},
	{within: 4, points: 7},
	{within: 6, points: 5},
	{within: 10, points: 3},
}

// versatilityTiers credit lures by number of declared species when no target is set.
var versatilityTiers = []float64{0, 1, 2, 3, 4, 5}

// Colour tags that earn the full colour bonus under specific conditions.
var (
	turbidWaterColors = map[string]bool{"chartreuse": true, "fluorescent-yellow": true}
	roughSeaColors    = map[string]bool{"pink": true, "fuchsia": true}
	clearWaterColors  = map[string]bool{"silver": true, "blue-silver": true}
)

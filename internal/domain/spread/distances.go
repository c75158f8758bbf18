package spread

import (
	"math"

	"github.com/okian/lurespread/internal/domain/model"
)

// Distance model constants.
const (
	metersPerWave      = 7.5
	monotonicStep      = 0.5
	shotgunGap         = 0.7
	meterStep          = 4
	shotgunMeterGap    = 6
	heavySeaShift      = -0.4
	clearRiggerShift   = 0.3
	turbidShift        = -0.3
	lagoonShift        = -0.3
	profileFallbackKey = model.ProfileStandard
)

// waves holds one value per ladder position, nearest first.
type waves [5]float64

// profile is the hull class behaviour of the distance model.
type profile struct {
	refSpeed float64
	minWaves float64
	maxWaves float64
}

var profiles = map[model.BoatProfile]profile{
	model.ProfileLimited:  {refSpeed: 5.5, minWaves: 1.0, maxWaves: 6.0},
	model.ProfileStandard: {refSpeed: 7.0, minWaves: 1.5, maxWaves: 8.0},
	model.ProfileSport:    {refSpeed: 8.0, minWaves: 2.0, maxWaves: 10.0},
}

// speedSensitivity is how many waves a position moves per knot above the reference speed.
var speedSensitivity = waves{0.10, 0.15, 0.20, 0.25, 0.30}

var genericBase = waves{2.0, 3.0, 4.0, 5.0, 6.5}

// speciesBase are base distances in waves, tuned to how each species approaches the wake.
var speciesBase = map[model.Species]waves{
	model.SpeciesWahoo:         {2.5, 3.5, 4.5, 5.5, 7.0},
	model.SpeciesMahiMahi:      {1.5, 2.5, 3.5, 4.5, 6.0},
	model.SpeciesYellowfinTuna: {2.5, 3.5, 4.5, 6.0, 7.5},
	model.SpeciesSkipjackTuna:  {2.0, 3.0, 4.0, 5.0, 6.5},
	model.SpeciesBlueMarlin:    {2.0, 3.0, 4.5, 5.5, 7.5},
	model.SpeciesSailfish:      {1.5, 2.5, 3.5, 4.5, 6.0},
	model.SpeciesBarracuda:     {1.5, 2.0, 3.0, 4.0, 5.0},
	model.SpeciesGiantTrevally: {1.5, 2.5, 3.0, 4.0, 5.0},
	model.SpeciesKingMackerel:  {2.0, 3.0, 3.5, 4.5, 6.0},
	model.SpeciesDogtoothTuna:  {2.0, 3.0, 4.0, 5.0, 6.5},
}

func profileOf(p model.BoatProfile) profile {
	if pr, ok := profiles[p]; ok {
		return pr
	}
	return profiles[profileFallbackKey]
}

// ladderWaves computes the wave distance of every ladder position.
func ladderWaves(c *model.Conditions) waves {
	w, ok := speciesBase[c.Species]
	if !ok {
		w = genericBase
	}
	pr := profileOf(c.Profile)
	deviation := c.BoatSpeed - pr.refSpeed

	shift := 0.0
	if c.SeaState.IsHeavy() {
		shift += heavySeaShift
	}
	if c.Turbidity.IsTurbid() {
		shift += turbidShift
	}
	if c.Zone == model.ZoneLagoon {
		shift += lagoonShift
	}

	for i := range w {
		w[i] += speedSensitivity[i]*deviation + shift
		if c.Turbidity == model.TurbidityClear && isRigger(ladder[i]) {
			w[i] += clearRiggerShift
		}
		w[i] = math.Max(pr.minWaves, math.Min(pr.maxWaves, w[i]))
	}

	for i := 1; i < len(w); i++ {
		if w[i] <= w[i-1] {
			w[i] = w[i-1] + monotonicStep
		}
	}
	last := len(w) - 1
	if w[last] < w[last-1]+shotgunGap {
		w[last] = w[last-1] + shotgunGap
	}
	return w
}

func isRigger(p model.Position) bool {
	return p == model.PositionShortRigger || p == model.PositionLongRigger
}

func toMeters(v float64) int {
	return int(math.Ceil(v * metersPerWave))
}

// Distances returns the towing distance in meters of every position of layout.
// Meters stay strictly increasing along the ladder after rounding.
func Distances(c *model.Conditions, layout []model.Position) map[model.Position]int {
	w := ladderWaves(c)
	meters := make(map[model.Position]int, len(ladder)+1)
	prev := 0
	for i, p := range ladder {
		m := toMeters(w[i])
		if m <= prev {
			m = prev + meterStep
		}
		if p == model.PositionShotgun && m < prev+shotgunMeterGap {
			m = prev + shotgunMeterGap
		}
		meters[p] = m
		prev = m
	}

	full := fullLadder(c)
	sum := 0.0
	for i := range full {
		sum += w[i]
	}
	meters[model.PositionFree] = toMeters(sum / float64(len(full)))

	out := make(map[model.Position]int, len(layout))
	for _, p := range layout {
		out[p] = meters[p]
	}
	return out
}

// Package speed recommends a trolling speed and its tolerance band.
package speed

import (
	"math"
	"strings"

	"github.com/okian/lurespread/internal/domain/model"
)

const (
	adjustStep       = 0.5
	absoluteFloor    = 3.0
	limitedBaseFloor = 4.0
)

type entry struct {
	base, min, max float64
	rationale      string
}

var bySpecies = map[model.Species]entry{
	model.SpeciesWahoo:         {12, 10, 16, "wahoo strike fast-moving lures; run high speed to trigger reaction bites"},
	model.SpeciesMahiMahi:      {7, 5.5, 8.5, "mahi-mahi follow lures near floating debris at moderate speed"},
	model.SpeciesYellowfinTuna: {8, 6.5, 10, "yellowfin hunt fast baitfish schools; keep skirts swimming clean"},
	model.SpeciesSkipjackTuna:  {7, 6, 9, "skipjack feed on small bait; moderate speed keeps small lures stable"},
	model.SpeciesBlueMarlin:    {8, 7, 10, "blue marlin raise on big skirts pushing a clean bubble trail"},
	model.SpeciesSailfish:      {6.5, 5, 8, "sailfish follow before striking; slower speed gives time to commit"},
	model.SpeciesBarracuda:     {5, 4, 6.5, "barracuda ambush along edges; slow plugs with steady action"},
	model.SpeciesGiantTrevally: {5.5, 4, 7, "giant trevally hit erratic swimmers close to structure"},
	model.SpeciesKingMackerel:  {6, 4.5, 7.5, "king mackerel strike divers and spoons at moderate speed"},
	model.SpeciesDogtoothTuna:  {6, 4.5, 7.5, "dogtooth hold deep along drop-offs; keep divers at depth"},
}

var byZone = map[model.Zone]entry{
	model.ZoneLagoon:    {5, 4, 6, "shallow lagoon: slow speed keeps lures off the bottom"},
	model.ZoneReef:      {5.5, 4.5, 7, "reef edge: moderate speed along the drop-off"},
	model.ZonePass:      {6.5, 5, 8, "pass: work the current line at moderate speed"},
	model.ZoneOffshore:  {7, 6, 9, "offshore: standard pelagic trolling speed"},
	model.ZoneDeep:      {7.5, 6, 9.5, "deep water: cover ground to find feeding schools"},
	model.ZoneStructure: {6, 5, 8, "structure: moderate passes over the mark"},
}

var fallback = entry{6.5, 5, 8, "general trolling speed"}

// Advise returns the recommended speed for the conditions. Adjustments are
// additive and independent; values never drop below 3 kn and the band always
// contains the recommended speed.
func Advise(c *model.Conditions) model.SpeedAdvice {
	e, ok := bySpecies[c.Species]
	if !ok {
		e, ok = byZone[c.Zone]
		if !ok {
			e = fallback
		}
	}
	base, lo, hi := e.base, e.min, e.max
	var adjustments []string

	if c.Profile == model.ProfileLimited {
		base = math.Max(base-adjustStep, limitedBaseFloor)
		lo = math.Max(lo-adjustStep, absoluteFloor)
		adjustments = append(adjustments, "limited boat: -0.5 kn")
	}
	if c.SeaState.IsHeavy() {
		base -= adjustStep
		lo -= adjustStep
		adjustments = append(adjustments, string(c.SeaState)+" sea: -0.5 kn to keep lures in the water")
	}
	if c.Turbidity.IsTurbid() {
		base -= adjustStep
		hi -= adjustStep
		adjustments = append(adjustments, string(c.Turbidity)+" water: -0.5 kn so fish can find the lure")
	}
	switch {
	case c.TimeOfDay.IsTwilight():
		adjustments = append(adjustments, string(c.TimeOfDay)+": peak activity, vary speed in short bursts")
	case c.TimeOfDay == model.TimeMidday:
		adjustments = append(adjustments, "midday: fish hold deeper, favour divers at steady speed")
	}

	base = math.Max(base, absoluteFloor)
	lo = math.Max(lo, absoluteFloor)
	hi = math.Max(hi, absoluteFloor)
	lo = math.Min(lo, base)
	hi = math.Max(hi, base)

	return model.SpeedAdvice{
		Knots:       round1(base),
		MinKnots:    round1(lo),
		MaxKnots:    round1(hi),
		Rationale:   rationale(e.rationale, adjustments),
		Adjustments: adjustments,
	}
}

func rationale(base string, adjustments []string) string {
	if len(adjustments) == 0 {
		return base
	}
	return base + ". " + strings.Join(adjustments, "; ")
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

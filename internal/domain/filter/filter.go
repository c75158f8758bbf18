// Package filter eliminates catalog lures that cannot work under the given conditions.
package filter

import (
	"github.com/okian/lurespread/internal/domain/model"
)

// Filtering constants, knots and meters.
const (
	speedTolerance      = 1.0
	bottomClearance     = 2.0
	shallowZoneMaxSpeed = 7.0
	pelagicMaxSpeed     = 12.0
	reasonCount         = 5
)

// Reason explains why a lure was rejected.
type Reason string

// Rejection reasons, in evaluation order.
const (
	ReasonNone         Reason = ""
	ReasonNotTrollable Reason = "not_trollable"
	ReasonSpeciesSpeed Reason = "species_min_speed"
	ReasonZone         Reason = "zone"
	ReasonDepth        Reason = "depth"
	ReasonSpeed        Reason = "speed"
)

// AdjustedMaxSpeed widens a lure's declared max speed for shallow zones and
// high-speed pelagic targets. It never narrows it.
func AdjustedMaxSpeed(c *model.Conditions, declaredMax float64) float64 {
	adjusted := declaredMax
	if (c.Zone == model.ZoneLagoon || c.Zone == model.ZoneReef) && adjusted < shallowZoneMaxSpeed {
		adjusted = shallowZoneMaxSpeed
	}
	if c.Species.IsHighSpeedPelagic() && adjusted < pelagicMaxSpeed {
		adjusted = pelagicMaxSpeed
	}
	return adjusted
}

// SpeedBand returns the boat speed band [min-1, adjustedMax+1] a lure tolerates.
func SpeedBand(c *model.Conditions, speed model.Range) model.Range {
	return model.Range{
		Min: speed.Min - speedTolerance,
		Max: AdjustedMaxSpeed(c, speed.Max) + speedTolerance,
	}
}

// Check evaluates every rule against one lure and returns the first failing
// reason, or ReasonNone when the lure is compatible.
func Check(c *model.Conditions, l *model.Lure) Reason {
	if !l.Trollable() {
		return ReasonNotTrollable
	}
	if floor, ok := c.Species.MinLureMaxSpeed(); ok && l.Speed.Max < floor {
		return ReasonSpeciesSpeed
	}
	if !zoneCompatible(c.Zone, l) {
		return ReasonZone
	}
	if l.Depth != nil && l.Depth.Max > c.WaterDepth-bottomClearance {
		return ReasonDepth
	}
	if !SpeedBand(c, *l.Speed).Contains(c.BoatSpeed) {
		return ReasonSpeed
	}
	return ReasonNone
}

// zoneCompatible accepts lures without declared zones everywhere.
func zoneCompatible(z model.Zone, l *model.Lure) bool {
	if len(l.Zones) == 0 {
		return true
	}
	for _, lz := range l.Zones {
		if z.Accepts(lz) {
			return true
		}
	}
	return false
}

// Report summarizes a filtering pass.
type Report struct {
	Kept     []model.Lure
	Rejected map[Reason]int
}

// Compatible returns the lures passing every rule, in catalog order.
// The catalog is read only.
func Compatible(c *model.Conditions, catalog []model.Lure) Report {
	r := Report{
		Kept:     make([]model.Lure, 0, len(catalog)),
		Rejected: make(map[Reason]int, reasonCount),
	}
	for i := range catalog {
		if reason := Check(c, &catalog[i]); reason != ReasonNone {
			r.Rejected[reason]++
			continue
		}
		r.Kept = append(r.Kept, catalog[i])
	}
	return r
}

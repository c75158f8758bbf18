// Package spread places ranked lures on named towing positions and computes
// how far behind the boat each one runs.
package spread

import "github.com/okian/lurespread/internal/domain/model"

// Shotgun gate for the limited profile.
const (
	shotgunMinSpeed = 6.5
	shotgunMinDepth = 20.0
)

// ladder is every multi-line position, nearest to farthest.
var ladder = []model.Position{
	model.PositionShortCorner,
	model.PositionLongCorner,
	model.PositionShortRigger,
	model.PositionLongRigger,
	model.PositionShotgun,
}

// layouts maps a line count to its positions.
var layouts = map[int][]model.Position{
	1: {model.PositionFree},
	2: {model.PositionShortCorner, model.PositionShortRigger},
	3: {model.PositionShortCorner, model.PositionLongCorner, model.PositionShortRigger},
	4: {model.PositionShortCorner, model.PositionLongCorner, model.PositionShortRigger, model.PositionLongRigger},
	5: ladder,
}

var shotgunZones = map[model.Zone]bool{
	model.ZonePass:      true,
	model.ZoneOffshore:  true,
	model.ZoneDeep:      true,
	model.ZoneStructure: true,
}

// ShotgunAllowed reports whether the boat can run a shotgun line.
// Only the limited profile is gated.
func ShotgunAllowed(c *model.Conditions) bool {
	if c.Profile != model.ProfileLimited {
		return true
	}
	return c.BoatSpeed >= shotgunMinSpeed && c.WaterDepth > shotgunMinDepth && shotgunZones[c.Zone]
}

// Layout returns the positions to fill for the requested line count, nearest first.
func Layout(c *model.Conditions) []model.Position {
	lines := min(max(c.Lines, 1), model.MaxLines)
	out := layouts[lines]
	if lines == model.MaxLines && !ShotgunAllowed(c) {
		out = out[:len(out)-1]
	}
	return append([]model.Position(nil), out...)
}

// EffectiveLines is the number of positions the layout can hold.
func EffectiveLines(c *model.Conditions) int {
	return len(Layout(c))
}

// fullLadder is the widest layout the boat may run, used for the free position.
func fullLadder(c *model.Conditions) []model.Position {
	if ShotgunAllowed(c) {
		return ladder
	}
	return ladder[:len(ladder)-1]
}

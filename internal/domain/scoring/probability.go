package scoring

import (
	"math"
	"slices"

	"github.com/okian/lurespread/internal/domain/model"
)

// Probability model constants.
const (
	probabilityBase      = 60.0
	probabilityPivot     = 50.0
	probabilitySlope     = 0.7
	probabilityMin       = 30.0
	probabilityMax       = 95.0
	speciesBonus         = 5.0
	idealFactorBonus     = 2.0
	twilightExtraBonus   = 1.0
	heavySeaPenalty      = 5.0
	turbidFallingBonus   = 3.0
	optimalContrastScore = 9.0
)

// Probability estimates the catch probability of a lure from its total score
// and matched factors, clamped to [30, 95]. It returns the bonus breakdown.
func Probability(c *model.Conditions, l *model.Lure, total float64) (float64, []model.ScoreDetail) {
	p := probabilityBase + (total-probabilityPivot)*probabilitySlope
	var details []model.ScoreDetail
	add := func(factor string, points float64, note string) {
		p += points
		details = append(details, model.ScoreDetail{
			Phase:  model.PhaseBonus,
			Factor: factor,
			Points: points,
			Max:    math.Abs(points),
			Note:   note,
		})
	}

	if c.HasSpecies() && l.Targets(c.Species) {
		add("species_target", speciesBonus, "lure lists "+string(c.Species))
	}
	if slices.Contains(l.Optimal.TimesOfDay, c.TimeOfDay) {
		bonus := idealFactorBonus
		if c.TimeOfDay.IsTwilight() {
			bonus += twilightExtraBonus
		}
		add("time_of_day", bonus, string(c.TimeOfDay)+" is an ideal period")
	}
	if c.Tide == model.TideRising && slices.Contains(l.Optimal.Tides, c.Tide) {
		add("rising_tide", idealFactorBonus, "rising tide pushes bait")
	}
	if slices.Contains(l.Optimal.SeaStates, c.SeaState) {
		add("sea_state", idealFactorBonus, string(c.SeaState)+" sea suits this lure")
	}
	contrast := l.ContrastCategory()
	if TurbidityScore(c.Turbidity, contrast) >= optimalContrastScore {
		add("turbidity_contrast", idealFactorBonus, string(contrast)+" is optimal in "+string(c.Turbidity)+" water")
	}
	if LightScore(c.Light, contrast) >= optimalContrastScore {
		add("light_contrast", idealFactorBonus, string(contrast)+" is optimal under "+string(c.Light)+" light")
	}
	if c.SeaState.IsHeavy() && !l.Kind.IsSinking() {
		add("heavy_sea", -heavySeaPenalty, "surface lure in a "+string(c.SeaState)+" sea")
	}
	if turbidFallingMatch(c, l) {
		add("turbid_falling", turbidFallingBonus, "falling tide in turbid water")
	}

	return round1(clamp(p, probabilityMin, probabilityMax)), details
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

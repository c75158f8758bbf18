package engine

import (
	"fmt"
	"sort"

	"github.com/okian/lurespread/internal/domain/filter"
	"github.com/okian/lurespread/internal/domain/model"
	"github.com/okian/lurespread/internal/validation"
)

// impossibleLight lists light levels that cannot occur at a time of day.
var impossibleLight = map[model.TimeOfDay][]model.LightLevel{
	model.TimeNight:  {model.LightStrong, model.LightDiffuse},
	model.TimeMidday: {model.LightNight},
}

func checkConditions(c *model.Conditions) error {
	if verr := validation.ValidateStruct(c); verr != nil {
		return newError(ErrInvalidConditions, verr.Error(), verr.Messages()...)
	}
	for _, l := range impossibleLight[c.TimeOfDay] {
		if c.Light == l {
			return newError(ErrInvalidConditions,
				fmt.Sprintf("%s light is not possible at %s", c.Light, c.TimeOfDay),
				"check the time of day and light level")
		}
	}
	return nil
}

var rejectionHints = map[filter.Reason]string{
	filter.ReasonNotTrollable: "add lures with a declared trolling speed range to the catalog",
	filter.ReasonSpeciesSpeed: "the target species needs lures rated for higher speed",
	filter.ReasonZone:         "add lures adapted to this zone or a neighbouring one",
	filter.ReasonDepth:        "lures run too deep for the water; move to deeper water or use shallow runners",
	filter.ReasonSpeed:        "boat speed is outside every lure's range; adjust the speed",
}

func noCompatible(c *model.Conditions, catalog int, rejected map[filter.Reason]int) *Error {
	if catalog == 0 {
		return newError(ErrNoCompatibleLure, "the catalog is empty", "load a lure catalog")
	}

	reasons := make([]filter.Reason, 0, len(rejected))
	for r := range rejected {
		reasons = append(reasons, r)
	}
	sort.Slice(reasons, func(i, j int) bool {
		if rejected[reasons[i]] != rejected[reasons[j]] {
			return rejected[reasons[i]] > rejected[reasons[j]]
		}
		return reasons[i] < reasons[j]
	})

	hints := make([]string, 0, len(reasons))
	for _, r := range reasons {
		if h, ok := rejectionHints[r]; ok {
			hints = append(hints, h)
		}
	}
	reason := fmt.Sprintf("none of %d lures can be trolled in %s at %.1f kn over %.0f m",
		catalog, c.Zone, c.BoatSpeed, c.WaterDepth)
	return newError(ErrNoCompatibleLure, reason, hints...)
}

func belowThreshold(best, threshold float64) *Error {
	return newError(ErrNoLureAboveThreshold,
		fmt.Sprintf("best lure scored %.1f, below %.0f", best, threshold),
		"conditions are poor for the lures on board",
		"try another zone or time of day, or add lures suited to the light and water clarity")
}

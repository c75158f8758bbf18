package loadtest

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/google/uuid"
	"github.com/okian/lurespread/pkg/logger"
)

const randomFloatDivisor = 1_000_000

// Value pools the generator draws from. Light is paired with the time of
// day so that generated conditions are physically possible.
var (
	zones     = []string{"lagoon", "reef", "pass", "offshore", "deep", "structure"}
	turbidity = []string{"clear", "slightly-turbid", "turbid", "very-turbid"}
	seaStates = []string{"calm", "light-chop", "formed", "rough"}
	tides     = []string{"rising", "slack", "falling"}
	moons     = []string{"new", "first-quarter", "full", "last-quarter"}
	profiles  = []string{"limited", "standard", "sport"}
	species   = []string{"", "", "wahoo", "mahi mahi", "yellowfin", "skipjack", "blue marlin",
		"sailfish", "cuda", "GT", "king mackerel", "dogtooth"}
	lightByTime = map[string][]string{
		"dawn":      {"low", "diffuse"},
		"morning":   {"strong", "diffuse"},
		"midday":    {"strong", "diffuse"},
		"afternoon": {"strong", "diffuse", "low"},
		"dusk":      {"low", "dark"},
		"night":     {"dark", "night"},
	}
	times = []string{"dawn", "morning", "midday", "afternoon", "dusk", "night"}
	// depth range per zone, meters
	zoneDepth = map[string][2]float64{
		"lagoon":    {2, 8},
		"reef":      {4, 25},
		"pass":      {8, 40},
		"offshore":  {40, 400},
		"deep":      {200, 2000},
		"structure": {20, 120},
	}
)

func randomInt(n int) int {
	v, _ := rand.Int(rand.Reader, big.NewInt(int64(n)))
	return int(v.Int64())
}

func randomFloat() float64 {
	return float64(randomInt(randomFloatDivisor)) / randomFloatDivisor
}

func pick(pool []string) string { return pool[randomInt(len(pool))] }

// generateRequests creates n random but valid request bodies.
func generateRequests(ctx context.Context, n int, stats *Stats) ([]Request, error) {
	logger.Get().Info(ctx, "generating requests", logger.Int("count", n))

	out := make([]Request, n)
	for i := range out {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("context cancelled during generation: %w", err)
		}
		out[i] = generateSingleRequest()
	}
	stats.Generated = len(out)
	return out, nil
}

func generateSingleRequest() Request {
	zone := pick(zones)
	depth := zoneDepth[zone]
	tod := pick(times)
	return Request{
		ID:         uuid.NewString(),
		Zone:       zone,
		WaterDepth: roundTenth(depth[0] + randomFloat()*(depth[1]-depth[0])),
		BoatSpeed:  roundTenth(3 + randomFloat()*11),
		TimeOfDay:  tod,
		Light:      pick(lightByTime[tod]),
		Turbidity:  pick(turbidity),
		SeaState:   pick(seaStates),
		Tide:       pick(tides),
		Moon:       pick(moons),
		Species:    pick(species),
		Profile:    pick(profiles),
		Lines:      1 + randomInt(5),
	}
}

func roundTenth(v float64) float64 {
	return float64(int(v*10+0.5)) / 10
}

package spread

import (
	"fmt"
	"math"
	"strings"

	"github.com/okian/lurespread/internal/domain/model"
)

// Compose places ranked suggestions on the layout, nearest position first.
// The best ranked lure takes the nearest position. Inputs are not modified;
// the returned spread holds copies. Speed advice is left for the caller.
func Compose(c *model.Conditions, ranked []model.Suggestion) model.Spread {
	layout := Layout(c)
	distances := Distances(c, layout)
	n := min(len(layout), len(ranked))

	out := model.Spread{Suggestions: make([]model.Suggestion, 0, n)}
	total := 0
	for i := 0; i < n; i++ {
		p := layout[i]
		out.Suggestions = append(out.Suggestions, ranked[i].WithPlacement(p, distances[p]))
		total += distances[p]
	}
	out.LinesFilled = n
	if n > 0 {
		out.MeanDistanceM = math.Round(float64(total)/float64(n)*10) / 10
	}
	out.Analysis = analysis(c, layout, out)
	return out
}

func analysis(c *model.Conditions, layout []model.Position, s model.Spread) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d of %d requested lines filled", s.LinesFilled, c.Lines)
	if len(layout) < min(c.Lines, model.MaxLines) {
		b.WriteString(", shotgun dropped for this boat and spot")
	}
	if s.LinesFilled < len(layout) {
		fmt.Fprintf(&b, ", only %d lures qualified", s.LinesFilled)
	}
	b.WriteString(".")
	if len(s.Suggestions) > 0 {
		parts := make([]string, 0, len(s.Suggestions))
		for _, sg := range s.Suggestions {
			parts = append(parts, fmt.Sprintf("%s %s at %d m", sg.Position, sg.Lure.ID, sg.DistanceM))
		}
		fmt.Fprintf(&b, " %s. Mean distance %.1f m.", strings.Join(parts, ", "), s.MeanDistanceM)
	}
	if covered := speciesCovered(s.Suggestions); len(covered) > 0 && !c.HasSpecies() {
		fmt.Fprintf(&b, " Covers %d species.", len(covered))
	}
	return b.String()
}

func speciesCovered(sgs []model.Suggestion) map[model.Species]bool {
	out := make(map[model.Species]bool)
	for _, sg := range sgs {
		for _, sp := range sg.Lure.Species {
			out[sp] = true
		}
	}
	return out
}

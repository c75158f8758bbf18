package scoring

import (
	"fmt"
	"strings"

	"github.com/okian/lurespread/internal/domain/model"
)

// buildJustification renders one sentence list per phase from its details.
func buildJustification(tech, col PhaseScore, cond ConditionsResult) model.Justification {
	conditions := summarize(cond.Details)
	if cond.Rule != "" {
		conditions += fmt.Sprintf(" Multiplier x%.1f: %s.", cond.Multiplier, cond.Rule)
	}
	return model.Justification{
		Technique:  summarize(tech.Details),
		Color:      summarize(col.Details),
		Conditions: conditions,
	}
}

func summarize(details []model.ScoreDetail) string {
	var b strings.Builder
	for i, d := range details {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%s: %s (%g/%g).", strings.ReplaceAll(d.Factor, "_", " "), d.Note, d.Points, d.Max)
	}
	return b.String()
}

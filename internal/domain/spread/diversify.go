package spread

import "github.com/okian/lurespread/internal/domain/model"

// minDiversifyLines is the smallest spread worth diversifying.
const minDiversifyLines = 3

// ShouldDiversify reports whether species coverage drives the selection.
func ShouldDiversify(c *model.Conditions) bool {
	return !c.HasSpecies() && EffectiveLines(c) >= minDiversifyLines
}

// Diversify picks up to lines suggestions from ranked, each time taking the
// candidate that covers the most species not yet covered. Ties go to the
// earlier (higher ranked) candidate. Once no candidate adds a species, the
// remaining lines are filled in rank order. ranked is not modified.
func Diversify(ranked []model.Suggestion, lines int) []model.Suggestion {
	n := min(lines, len(ranked))
	if n <= 0 {
		return nil
	}

	covered := make(map[model.Species]bool)
	used := make([]bool, len(ranked))
	out := make([]model.Suggestion, 0, n)

	for len(out) < n {
		best, bestGain := -1, 0
		for i := range ranked {
			if used[i] {
				continue
			}
			if g := gain(ranked[i].Lure.Species, covered); g > bestGain {
				best, bestGain = i, g
			}
		}
		if best < 0 {
			break
		}
		used[best] = true
		for _, s := range ranked[best].Lure.Species {
			covered[s] = true
		}
		out = append(out, ranked[best])
	}

	for i := 0; i < len(ranked) && len(out) < n; i++ {
		if !used[i] {
			used[i] = true
			out = append(out, ranked[i])
		}
	}
	return out
}

func gain(species []model.Species, covered map[model.Species]bool) int {
	seen := make(map[model.Species]bool, len(species))
	g := 0
	for _, s := range species {
		if !covered[s] && !seen[s] {
			seen[s] = true
			g++
		}
	}
	return g
}

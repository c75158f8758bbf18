// Package engine orchestrates a recommendation: validate, filter, score, rank,
// diversify, place and advise a speed. It holds no mutable state, so one Engine
// serves any number of concurrent calls over a shared read-only catalog.
package engine

import (
	"cmp"
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/okian/lurespread/internal/domain/filter"
	"github.com/okian/lurespread/internal/domain/model"
	"github.com/okian/lurespread/internal/domain/scoring"
	"github.com/okian/lurespread/internal/domain/speed"
	"github.com/okian/lurespread/internal/domain/spread"
)

// DefaultThreshold is the minimum total score a lure needs to be recommended.
const DefaultThreshold = 50.0

// Engine generates spreads.
type Engine struct {
	threshold float64
}

// Option configures an Engine.
type Option func(*Engine)

// WithThreshold overrides the qualifying total score.
func WithThreshold(t float64) Option {
	return func(e *Engine) {
		if t > 0 {
			e.threshold = t
		}
	}
}

// New creates an Engine.
func New(opts ...Option) *Engine {
	e := &Engine{threshold: DefaultThreshold}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Threshold returns the qualifying total score.
func (e *Engine) Threshold() float64 { return e.threshold }

// Stats describes how the catalog narrowed down during one run.
type Stats struct {
	Catalog     int                   `json:"catalog"`
	Compatible  int                   `json:"compatible"`
	Qualified   int                   `json:"qualified"`
	BestScore   float64               `json:"best_score"`
	Rejected    map[filter.Reason]int `json:"rejected"`
	Diversified bool                  `json:"diversified"`
}

// Result is a spread and the stats of the run that produced it.
type Result struct {
	Spread model.Spread `json:"spread"`
	Stats  Stats        `json:"stats"`
}

// Clone returns a deep copy of the result.
func (r Result) Clone() Result {
	r.Spread = r.Spread.Clone()
	r.Stats.Rejected = maps.Clone(r.Stats.Rejected)
	return r
}

// Generate runs the pipeline and returns the spread only.
func (e *Engine) Generate(ctx context.Context, c model.Conditions, catalog []model.Lure) (model.Spread, error) {
	res, err := e.Run(ctx, c, catalog)
	if err != nil {
		return model.Spread{}, err
	}
	return res.Spread, nil
}

// Run executes every stage. The context is checked between stages; the
// conditions and catalog are never modified. Stats are filled as far as the
// run got, also on error.
func (e *Engine) Run(ctx context.Context, c model.Conditions, catalog []model.Lure) (Result, error) {
	res := Result{Stats: Stats{Catalog: len(catalog)}}

	if err := checkConditions(&c); err != nil {
		return res, err
	}

	report := filter.Compatible(&c, catalog)
	res.Stats.Compatible = len(report.Kept)
	res.Stats.Rejected = report.Rejected
	if len(report.Kept) == 0 {
		return res, noCompatible(&c, len(catalog), report.Rejected)
	}
	if err := ctx.Err(); err != nil {
		return res, fmt.Errorf("engine: after filter: %w", err)
	}

	ranked := e.rank(&c, report.Kept)
	res.Stats.Qualified = len(ranked)
	if len(ranked) == 0 {
		res.Stats.BestScore = bestScore(&c, report.Kept)
		return res, belowThreshold(res.Stats.BestScore, e.threshold)
	}
	res.Stats.BestScore = ranked[0].TotalScore
	if err := ctx.Err(); err != nil {
		return res, fmt.Errorf("engine: after scoring: %w", err)
	}

	selected := ranked
	if spread.ShouldDiversify(&c) {
		selected = spread.Diversify(ranked, spread.EffectiveLines(&c))
		res.Stats.Diversified = true
	}

	s := spread.Compose(&c, selected)
	s.Speed = speed.Advise(&c)
	res.Spread = s
	return res, nil
}

// rank scores every lure, keeps those reaching the threshold and orders them
// by total, then probability, then id.
func (e *Engine) rank(c *model.Conditions, lures []model.Lure) []model.Suggestion {
	out := make([]model.Suggestion, 0, len(lures))
	for i := range lures {
		s := scoring.Score(c, &lures[i])
		if s.TotalScore >= e.threshold {
			out = append(out, s)
		}
	}
	slices.SortFunc(out, func(a, b model.Suggestion) int {
		if r := cmp.Compare(b.TotalScore, a.TotalScore); r != 0 {
			return r
		}
		if r := cmp.Compare(b.Probability, a.Probability); r != 0 {
			return r
		}
		return cmp.Compare(a.Lure.ID, b.Lure.ID)
	})
	return out
}

func bestScore(c *model.Conditions, lures []model.Lure) float64 {
	best := 0.0
	for i := range lures {
		best = max(best, scoring.Score(c, &lures[i]).TotalScore)
	}
	return best
}

package model

import "slices"

// ScoreDetail names one point contribution of a score.
type ScoreDetail struct {
	Phase  Phase   `json:"phase"`
	Factor string  `json:"factor"`
	Points float64 `json:"points"`
	Max    float64 `json:"max"`
	Note   string  `json:"note,omitempty"`
}

// Justification holds the rationale text per scoring phase.
type Justification struct {
	Technique  string `json:"technique"`
	Color      string `json:"color"`
	Conditions string `json:"conditions"`
}

// Suggestion is the scored recommendation for one lure.
// Position and DistanceM are set only once the lure is placed in a spread.
type Suggestion struct {
	Lure            Lure          `json:"lure"`
	TechniqueScore  float64       `json:"technique_score"`
	ColorScore      float64       `json:"color_score"`
	ConditionsBase  float64       `json:"conditions_base"`
	Multiplier      float64       `json:"conditions_multiplier"`
	ConditionsScore float64       `json:"conditions_score"`
	TotalScore      float64       `json:"total_score"`
	Probability     float64       `json:"probability"`
	Position        Position      `json:"position,omitempty"`
	DistanceM       int           `json:"distance_m,omitempty"`
	Justification   Justification `json:"justification"`
	Details         []ScoreDetail `json:"details"`
}

// Placed reports whether the suggestion was assigned a spread position.
func (s *Suggestion) Placed() bool { return s.Position != "" }

// WithPlacement returns a copy of s placed at p, distance meters behind the boat.
func (s Suggestion) WithPlacement(p Position, distance int) Suggestion {
	s.Position = p
	s.DistanceM = distance
	s.Details = slices.Clone(s.Details)
	return s
}

// SpeedAdvice is the recommended trolling speed and its tolerance band.
type SpeedAdvice struct {
	Knots       float64  `json:"knots"`
	MinKnots    float64  `json:"min_knots"`
	MaxKnots    float64  `json:"max_knots"`
	Rationale   string   `json:"rationale"`
	Adjustments []string `json:"adjustments"`
}

// Spread is the aggregate recommendation: positioned lures and a speed.
type Spread struct {
	Suggestions   []Suggestion `json:"suggestions"`
	LinesFilled   int          `json:"lines_filled"`
	MeanDistanceM float64      `json:"mean_distance_m"`
	Analysis      string       `json:"analysis"`
	Speed         SpeedAdvice  `json:"speed"`
}

// Clone returns a deep copy so cached or shared spreads cannot be aliased.
func (s Spread) Clone() Spread {
	out := s
	out.Suggestions = make([]Suggestion, len(s.Suggestions))
	for i, sg := range s.Suggestions {
		sg.Details = slices.Clone(sg.Details)
		sg.Lure = sg.Lure.Clone()
		out.Suggestions[i] = sg
	}
	out.Speed.Adjustments = slices.Clone(s.Speed.Adjustments)
	return out
}

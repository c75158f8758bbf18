package model

import "slices"

// Range is a closed [Min, Max] interval.
type Range struct {
	Min float64 `json:"min" yaml:"min"`
	Max float64 `json:"max" yaml:"max"`
}

// Mid returns the midpoint of the range.
func (r Range) Mid() float64 { return (r.Min + r.Max) / 2 }

// Contains reports whether v lies inside the range.
func (r Range) Contains(v float64) bool { return v >= r.Min && v <= r.Max }

// OptimalConditions is the set of conditions a lure is declared to work best in.
type OptimalConditions struct {
	TimesOfDay []TimeOfDay `json:"times_of_day,omitempty" yaml:"times_of_day"`
	SeaStates  []SeaState  `json:"sea_states,omitempty" yaml:"sea_states"`
	Tides      []Tide      `json:"tides,omitempty" yaml:"tides"`
	Moons      []MoonPhase `json:"moons,omitempty" yaml:"moons"`
}

// Lure is a catalog entry. Pointer fields are optional.
type Lure struct {
	ID             string            `json:"id" yaml:"id"`
	Name           string            `json:"name,omitempty" yaml:"name"`
	Brand          string            `json:"brand,omitempty" yaml:"brand"`
	LengthCM       float64           `json:"length_cm" yaml:"length_cm"`
	WeightG        *float64          `json:"weight_g,omitempty" yaml:"weight_g"`
	Kind           LureKind          `json:"kind,omitempty" yaml:"kind"`
	Technique      Technique         `json:"technique,omitempty" yaml:"technique"`
	PrimaryColor   string            `json:"primary_color" yaml:"primary_color"`
	SecondaryColor string            `json:"secondary_color,omitempty" yaml:"secondary_color"`
	Contrast       Contrast          `json:"contrast" yaml:"contrast"`
	Depth          *Range            `json:"depth_m,omitempty" yaml:"depth_m"`
	Speed          *Range            `json:"speed_kn,omitempty" yaml:"speed_kn"`
	Zones          []Zone            `json:"zones,omitempty" yaml:"zones"`
	Species        []Species         `json:"species,omitempty" yaml:"species"`
	Optimal        OptimalConditions `json:"optimal" yaml:"optimal"`
}

// Trollable reports whether the lure can be trolled at all: it needs a speed
// range and a trolling-compatible technique (unset counts as trolling).
func (l *Lure) Trollable() bool {
	if l.Speed == nil {
		return false
	}
	switch l.Technique {
	case "", TechniqueTrolling, TechniqueMixed:
		return true
	default:
		return false
	}
}

// Targets reports whether the lure declares s among its target species.
func (l *Lure) Targets(s Species) bool {
	return s != "" && slices.Contains(l.Species, s)
}

// AdaptedTo reports whether the lure declares zone z.
func (l *Lure) AdaptedTo(z Zone) bool { return slices.Contains(l.Zones, z) }

// ContrastCategory returns the cached contrast, deriving it from the colours
// when the record was never normalized.
func (l *Lure) ContrastCategory() Contrast {
	if l.Contrast != "" {
		return l.Contrast
	}
	return DeriveContrast(l.PrimaryColor, l.SecondaryColor)
}

// Normalize returns a copy with colour tags canonicalized and the contrast
// category derived once. The receiver is left untouched.
func (l Lure) Normalize() Lure {
	l.PrimaryColor = normalizeName(l.PrimaryColor)
	l.SecondaryColor = normalizeName(l.SecondaryColor)
	if l.Contrast == "" {
		l.Contrast = DeriveContrast(l.PrimaryColor, l.SecondaryColor)
	}
	return l.Clone()
}

// Clone returns a deep copy of the lure.
func (l Lure) Clone() Lure {
	if l.WeightG != nil {
		w := *l.WeightG
		l.WeightG = &w
	}
	if l.Depth != nil {
		d := *l.Depth
		l.Depth = &d
	}
	if l.Speed != nil {
		sp := *l.Speed
		l.Speed = &sp
	}
	l.Zones = slices.Clone(l.Zones)
	l.Species = slices.Clone(l.Species)
	l.Optimal = OptimalConditions{
		TimesOfDay: slices.Clone(l.Optimal.TimesOfDay),
		SeaStates:  slices.Clone(l.Optimal.SeaStates),
		Tides:      slices.Clone(l.Optimal.Tides),
		Moons:      slices.Clone(l.Optimal.Moons),
	}
	return l
}

type colorFamily int

const (
	familyNeutral colorFamily = iota
	familyBright
	familyFlashy
	familyDark
)

var colorFamilies = map[string]colorFamily{
	"white":              familyBright,
	"pearl":              familyBright,
	"chartreuse":         familyFlashy,
	"fluorescent-yellow": familyFlashy,
	"yellow":             familyFlashy,
	"pink":               familyFlashy,
	"fuchsia":            familyFlashy,
	"orange":             familyFlashy,
	"gold":               familyFlashy,
	"red":                familyFlashy,
	"lime":               familyFlashy,
	"black":              familyDark,
	"purple":             familyDark,
	"violet":             familyDark,
	"dark-blue":          familyDark,
	"navy":               familyDark,
	"brown":              familyDark,
}

func familyOf(color string) colorFamily {
	return colorFamilies[normalizeName(color)]
}

// DeriveContrast classifies a colour pairing.
// Dark against flashy or bright is high-contrast; dark alone is dark; any
// flashy colour is flashy; everything else (silver, blue, green, sardine...) is natural.
func DeriveContrast(primary, secondary string) Contrast {
	p, s := familyOf(primary), familyOf(secondary)
	hasDark := p == familyDark || s == familyDark
	hasLoud := p == familyFlashy || s == familyFlashy || p == familyBright || s == familyBright
	switch {
	case hasDark && hasLoud:
		return ContrastHigh
	case hasDark:
		return ContrastDark
	case p == familyFlashy || s == familyFlashy:
		return ContrastFlashy
	default:
		return ContrastNatural
	}
}

// ColorTag returns the normalized primary colour.
func (l *Lure) ColorTag() string {
	return normalizeName(l.PrimaryColor)
}

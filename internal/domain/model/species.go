package model

import (
	"slices"
	"strings"

	lev "github.com/agnivade/levenshtein"
)

// Species is a target fish species. The empty value means "no target".
type Species string

// Canonical species.
const (
	SpeciesWahoo         Species = "wahoo"
	SpeciesMahiMahi      Species = "mahi-mahi"
	SpeciesYellowfinTuna Species = "yellowfin-tuna"
	SpeciesSkipjackTuna  Species = "skipjack-tuna"
	SpeciesBlueMarlin    Species = "blue-marlin"
	SpeciesSailfish      Species = "sailfish"
	SpeciesBarracuda     Species = "barracuda"
	SpeciesGiantTrevally Species = "giant-trevally"
	SpeciesKingMackerel  Species = "king-mackerel"
	SpeciesDogtoothTuna  Species = "dogtooth-tuna"
)

// maxSpeciesDistance bounds the edit distance accepted for a fuzzy match.
const maxSpeciesDistance = 2

// CanonicalSpecies lists the species the engine has tables for.
var CanonicalSpecies = []Species{
	SpeciesWahoo, SpeciesMahiMahi, SpeciesYellowfinTuna, SpeciesSkipjackTuna, SpeciesBlueMarlin,
	SpeciesSailfish, SpeciesBarracuda, SpeciesGiantTrevally, SpeciesKingMackerel, SpeciesDogtoothTuna,
}

var speciesAliases = map[string]Species{
	"ono":         SpeciesWahoo,
	"thazard":     SpeciesWahoo,
	"dorado":      SpeciesMahiMahi,
	"mahi":        SpeciesMahiMahi,
	"dolphinfish": SpeciesMahiMahi,
	"coryphene":   SpeciesMahiMahi,
	"yellowfin":   SpeciesYellowfinTuna,
	"ahi":         SpeciesYellowfinTuna,
	"skipjack":    SpeciesSkipjackTuna,
	"bonito":      SpeciesSkipjackTuna,
	"bonite":      SpeciesSkipjackTuna,
	"marlin":      SpeciesBlueMarlin,
	"sail":        SpeciesSailfish,
	"voilier":     SpeciesSailfish,
	"cuda":        SpeciesBarracuda,
	"gt":          SpeciesGiantTrevally,
	"carangue":    SpeciesGiantTrevally,
	"trevally":    SpeciesGiantTrevally,
	"kingfish":    SpeciesKingMackerel,
	"king":        SpeciesKingMackerel,
	"dogtooth":    SpeciesDogtoothTuna,
}

// highSpeedPelagics widen the acceptable trolling speed band to 12 kn.
var highSpeedPelagics = map[Species]bool{
	SpeciesWahoo:         true,
	SpeciesYellowfinTuna: true,
	SpeciesBlueMarlin:    true,
	SpeciesSailfish:      true,
}

// minLureMaxSpeed is the absolute floor on a lure's declared max speed per species.
var minLureMaxSpeed = map[Species]float64{
	SpeciesWahoo: 10,
}

// IsHighSpeedPelagic reports whether s is trolled at high speed.
func (s Species) IsHighSpeedPelagic() bool { return highSpeedPelagics[s] }

// MinLureMaxSpeed returns the minimum lure max speed the species requires, if any.
func (s Species) MinLureMaxSpeed() (float64, bool) {
	v, ok := minLureMaxSpeed[s]
	return v, ok
}

// IsCanonical reports whether s is one of CanonicalSpecies.
func (s Species) IsCanonical() bool {
	return slices.Contains(CanonicalSpecies, s)
}

// normalizeName lowercases and hyphenates a free-form name.
func normalizeName(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer("_", "-", " ", "-").Replace(s)
	for strings.Contains(s, "--") {
		s = strings.ReplaceAll(s, "--", "-")
	}
	return s
}

// ParseSpecies maps a free-form species name onto a canonical species.
// Aliases and small typos are accepted. When nothing matches, the normalized
// name is returned with ok=false.
func ParseSpecies(name string) (Species, bool) {
	n := normalizeName(name)
	if n == "" {
		return "", false
	}
	if s := Species(n); s.IsCanonical() {
		return s, true
	}
	if s, ok := speciesAliases[n]; ok {
		return s, true
	}

	best, bestDist := Species(""), maxSpeciesDistance+1
	for _, c := range CanonicalSpecies {
		if d := lev.ComputeDistance(n, string(c)); d < bestDist {
			best, bestDist = c, d
		}
	}
	for alias, s := range speciesAliases {
		// Short aliases would match almost anything within two edits.
		if len(alias) < 5 {
			continue
		}
		if d := lev.ComputeDistance(n, alias); d < bestDist || (d == bestDist && s < best) {
			best, bestDist = s, d
		}
	}
	if bestDist <= maxSpeciesDistance {
		return best, true
	}
	return Species(n), false
}

// Package model contains domain models passed between layers.
package model

import "slices"

// Zone is an enumerated fishing area.
type Zone string

// Fishing zones.
const (
	ZoneLagoon    Zone = "lagoon"
	ZoneReef      Zone = "reef"
	ZonePass      Zone = "pass"
	ZoneOffshore  Zone = "offshore"
	ZoneDeep      Zone = "deep"
	ZoneStructure Zone = "structure"
)

// Zones lists every zone in declaration order.
var Zones = []Zone{ZoneLagoon, ZoneReef, ZonePass, ZoneOffshore, ZoneDeep, ZoneStructure}

// zoneAdjacency lists, per requested zone, the other lure zones it accepts.
// The relation is directional: a pass accepts reef lures, a reef does not accept pass lures.
var zoneAdjacency = map[Zone][]Zone{
	ZoneLagoon:    {ZoneReef},
	ZoneReef:      {ZoneLagoon},
	ZonePass:      {ZoneReef, ZoneOffshore},
	ZoneOffshore:  {ZonePass, ZoneDeep},
	ZoneDeep:      {ZoneOffshore},
	ZoneStructure: {ZoneDeep, ZoneOffshore},
}

// Accepts reports whether a lure adapted to other may be used when fishing z.
func (z Zone) Accepts(other Zone) bool {
	return z == other || z.Adjacent(other)
}

// Adjacent reports whether other is a declared neighbour of z (never z itself).
func (z Zone) Adjacent(other Zone) bool {
	return slices.Contains(zoneAdjacency[z], other)
}

// TimeOfDay is the period of the fishing session.
type TimeOfDay string

// Periods of the day.
const (
	TimeDawn      TimeOfDay = "dawn"
	TimeMorning   TimeOfDay = "morning"
	TimeMidday    TimeOfDay = "midday"
	TimeAfternoon TimeOfDay = "afternoon"
	TimeDusk      TimeOfDay = "dusk"
	TimeNight     TimeOfDay = "night"
)

// IsTwilight is true for dawn and dusk.
func (t TimeOfDay) IsTwilight() bool { return t == TimeDawn || t == TimeDusk }

// LightLevel is the ambient light, five levels from strong sun to night.
type LightLevel string

// Light levels.
const (
	LightStrong  LightLevel = "strong"
	LightDiffuse LightLevel = "diffuse"
	LightLow     LightLevel = "low"
	LightDark    LightLevel = "dark"
	LightNight   LightLevel = "night"
)

// LightLevels lists every light level.
var LightLevels = []LightLevel{LightStrong, LightDiffuse, LightLow, LightDark, LightNight}

// Turbidity is the water clarity.
type Turbidity string

// Turbidity levels, clear to very turbid.
const (
	TurbidityClear          Turbidity = "clear"
	TurbiditySlightlyTurbid Turbidity = "slightly-turbid"
	TurbidityTurbid         Turbidity = "turbid"
	TurbidityVeryTurbid     Turbidity = "very-turbid"
)

// Turbidities lists every turbidity level.
var Turbidities = []Turbidity{TurbidityClear, TurbiditySlightlyTurbid, TurbidityTurbid, TurbidityVeryTurbid}

// IsTurbid is true for turbid and very turbid water.
func (t Turbidity) IsTurbid() bool { return t == TurbidityTurbid || t == TurbidityVeryTurbid }

// SeaState is the surface condition.
type SeaState string

// Sea states.
const (
	SeaCalm      SeaState = "calm"
	SeaLightChop SeaState = "light-chop"
	SeaFormed    SeaState = "formed"
	SeaRough     SeaState = "rough"
)

// IsHeavy is true for formed and rough seas.
func (s SeaState) IsHeavy() bool { return s == SeaFormed || s == SeaRough }

// Tide is the tide phase.
type Tide string

// Tide phases.
const (
	TideRising  Tide = "rising"
	TideSlack   Tide = "slack"
	TideFalling Tide = "falling"
)

// MoonPhase is the lunar phase.
type MoonPhase string

// Moon phases.
const (
	MoonNew          MoonPhase = "new"
	MoonFirstQuarter MoonPhase = "first-quarter"
	MoonFull         MoonPhase = "full"
	MoonLastQuarter  MoonPhase = "last-quarter"
)

// Contrast is the coarse visual signature of a lure.
type Contrast string

// Contrast categories.
const (
	ContrastNatural Contrast = "natural"
	ContrastFlashy  Contrast = "flashy"
	ContrastDark    Contrast = "dark"
	ContrastHigh    Contrast = "high-contrast"
)

// Contrasts lists every contrast category.
var Contrasts = []Contrast{ContrastNatural, ContrastFlashy, ContrastDark, ContrastHigh}

// BoatProfile is a performance class of vessel.
type BoatProfile string

// Boat profiles. Limited is the constrained class: slow hull, short outriggers.
const (
	ProfileLimited  BoatProfile = "limited"
	ProfileStandard BoatProfile = "standard"
	ProfileSport    BoatProfile = "sport"
)

// Technique is the fishing technique a lure is built for.
type Technique string

// Techniques.
const (
	TechniqueTrolling Technique = "trolling"
	TechniqueCasting  Technique = "casting"
	TechniqueJigging  Technique = "jigging"
	TechniqueMixed    Technique = "mixed"
)

// LureKind is the construction family of a lure.
type LureKind string

// Lure kinds.
const (
	KindSkirt   LureKind = "skirt"
	KindPlug    LureKind = "plug"
	KindDiver   LureKind = "diver"
	KindSpoon   LureKind = "spoon"
	KindJig     LureKind = "jig"
	KindBaitRig LureKind = "bait-rig"
)

// IsSinking is true for kinds that sink at rest.
func (k LureKind) IsSinking() bool { return k == KindSpoon || k == KindJig }

// Position is a named towing position in a spread.
type Position string

// Spread positions, nearest to farthest. PositionFree is the single-line position.
const (
	PositionFree        Position = "free"
	PositionShortCorner Position = "short-corner"
	PositionLongCorner  Position = "long-corner"
	PositionShortRigger Position = "short-rigger"
	PositionLongRigger  Position = "long-rigger"
	PositionShotgun     Position = "shotgun"
)

// Phase names a scoring phase.
type Phase string

// Scoring phases.
const (
	PhaseTechnique  Phase = "technique"
	PhaseColor      Phase = "color"
	PhaseConditions Phase = "conditions"
	PhaseBonus      Phase = "probability"
)

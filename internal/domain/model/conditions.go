package model

// MaxLines is the largest spread the engine composes.
const MaxLines = 5

// Conditions is the caller-supplied context of one recommendation.
// It is a value: the engine never mutates it.
type Conditions struct {
	Zone       Zone        `json:"zone" validate:"required,oneof=lagoon reef pass offshore deep structure"`
	WaterDepth float64     `json:"water_depth_m" validate:"gt=0,lte=6000"`
	BoatSpeed  float64     `json:"boat_speed_kn" validate:"gt=0,lte=25"`
	TimeOfDay  TimeOfDay   `json:"time_of_day" validate:"required,oneof=dawn morning midday afternoon dusk night"`
	Light      LightLevel  `json:"light" validate:"required,oneof=strong diffuse low dark night"`
	Turbidity  Turbidity   `json:"turbidity" validate:"required,oneof=clear slightly-turbid turbid very-turbid"`
	SeaState   SeaState    `json:"sea_state" validate:"required,oneof=calm light-chop formed rough"`
	Tide       Tide        `json:"tide" validate:"required,oneof=rising slack falling"`
	Moon       MoonPhase   `json:"moon" validate:"required,oneof=new first-quarter full last-quarter"`
	Species    Species     `json:"species,omitempty" validate:"omitempty,species"`
	Profile    BoatProfile `json:"boat_profile" validate:"required,oneof=limited standard sport"`
	Lines      int         `json:"lines" validate:"min=1,max=5"`
}

// HasSpecies reports whether a target species was requested.
func (c *Conditions) HasSpecies() bool { return c.Species != "" }

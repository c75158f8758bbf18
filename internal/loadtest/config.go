// Package loadtest drives a running lure spread service with generated
// conditions and checks that every answer is reproducible.
package loadtest

import "time"

// Config holds configuration for a load run.
type Config struct {
	BaseURL     string        // Base URL of the service
	NumRequests int           // Number of condition sets to generate
	Workers     int           // Number of concurrent workers
	Timeout     time.Duration // HTTP request timeout
	OutputFile  string        // Output file for the generated conditions
	Verbose     bool          // Enable verbose logging
}

// Request is one generated recommendation request.
type Request struct {
	ID         string  `json:"-"`
	Zone       string  `json:"zone"`
	WaterDepth float64 `json:"water_depth_m"`
	BoatSpeed  float64 `json:"boat_speed_kn"`
	TimeOfDay  string  `json:"time_of_day"`
	Light      string  `json:"light"`
	Turbidity  string  `json:"turbidity"`
	SeaState   string  `json:"sea_state"`
	Tide       string  `json:"tide"`
	Moon       string  `json:"moon"`
	Species    string  `json:"species,omitempty"`
	Profile    string  `json:"boat_profile"`
	Lines      int     `json:"lines"`
}

// Outcome is the part of a response that must not change between replays.
type Outcome struct {
	Status      int
	Code        string
	Fingerprint string
}

// Stats holds run statistics.
type Stats struct {
	Generated  int
	Submitted  int
	Spreads    int
	Rejections int
	Failed     int
	Replayed   int
	Mismatches int
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
}

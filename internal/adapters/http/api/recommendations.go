package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/okian/lurespread/internal/domain/model"
)

const maxRequestBody = 64 << 10

// recommendationRequest mirrors the OpenAPI schema for POST /recommendations.
// Species is free text; common names and small typos are accepted.
type recommendationRequest struct {
	Zone       model.Zone        `json:"zone"`
	WaterDepth float64           `json:"water_depth_m"`
	BoatSpeed  float64           `json:"boat_speed_kn"`
	TimeOfDay  model.TimeOfDay   `json:"time_of_day"`
	Light      model.LightLevel  `json:"light"`
	Turbidity  model.Turbidity   `json:"turbidity"`
	SeaState   model.SeaState    `json:"sea_state"`
	Tide       model.Tide        `json:"tide"`
	Moon       model.MoonPhase   `json:"moon"`
	Species    string            `json:"species"`
	Profile    model.BoatProfile `json:"boat_profile"`
	Lines      int               `json:"lines"`
}

// conditions converts the request. An unknown species is passed through in
// normalized form so validation names it in the response.
func (r *recommendationRequest) conditions() model.Conditions {
	c := model.Conditions{
		Zone:       r.Zone,
		WaterDepth: r.WaterDepth,
		BoatSpeed:  r.BoatSpeed,
		TimeOfDay:  r.TimeOfDay,
		Light:      r.Light,
		Turbidity:  r.Turbidity,
		SeaState:   r.SeaState,
		Tide:       r.Tide,
		Moon:       r.Moon,
		Profile:    r.Profile,
		Lines:      r.Lines,
	}
	if r.Species != "" {
		c.Species, _ = model.ParseSpecies(r.Species)
	}
	return c
}

// RecommendHandler handles spread requests.
type RecommendHandler struct {
	deps RecommendDependencies
}

// NewRecommendHandler creates a new recommendation handler.
func NewRecommendHandler(deps RecommendDependencies) *RecommendHandler {
	return &RecommendHandler{deps: deps}
}

// HandlePostRecommendation handles POST /recommendations requests.
func (h *RecommendHandler) HandlePostRecommendation(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_recommendation"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	dec := json.NewDecoder(io.LimitReader(r.Body, maxRequestBody))
	dec.DisallowUnknownFields()
	var req recommendationRequest
	if err := dec.Decode(&req); err != nil {
		if errors.Is(err, io.EOF) {
			err = fmt.Errorf("empty body")
		}
		writeError(w, WrapKind(op, ErrBadRequest, err))
		return
	}

	rec, err := h.deps.Recommend(r.Context(), req.conditions())
	if err != nil {
		writeError(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

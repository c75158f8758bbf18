package api

import (
	"net/http"
	"slices"
	"strings"

	"github.com/okian/lurespread/internal/domain/model"
)

type luresResponse struct {
	Version uint64       `json:"version"`
	Count   int          `json:"count"`
	Lures   []model.Lure `json:"lures"`
}

// LuresHandler serves the catalog.
type LuresHandler struct {
	deps LureDependencies
}

// NewLuresHandler creates a new lures handler.
func NewLuresHandler(deps LureDependencies) *LuresHandler {
	return &LuresHandler{deps: deps}
}

// HandleListLures handles GET /lures requests. Optional zone and species
// query parameters narrow the list to lures declaring them.
func (h *LuresHandler) HandleListLures(w http.ResponseWriter, r *http.Request) {
	const op = "api.list_lures"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	cat, err := h.deps.Lures(r.Context())
	if err != nil {
		writeError(w, Wrap(op, err))
		return
	}

	zone := model.Zone(strings.ToLower(r.URL.Query().Get("zone")))
	var species model.Species
	if raw := r.URL.Query().Get("species"); raw != "" {
		species, _ = model.ParseSpecies(raw)
	}

	out := make([]model.Lure, 0, cat.Len())
	for i := range cat.Lures {
		l := &cat.Lures[i]
		if zone != "" && !slices.Contains(l.Zones, zone) {
			continue
		}
		if species != "" && !l.Targets(species) {
			continue
		}
		out = append(out, *l)
	}
	writeJSON(w, http.StatusOK, luresResponse{Version: cat.Version, Count: len(out), Lures: out})
}

// HandleGetLure handles GET /lures/{id} requests.
func (h *LuresHandler) HandleGetLure(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_lure"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	id := strings.TrimPrefix(r.URL.Path, "/lures/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, NewKind(op, ErrBadRequest))
		return
	}
	l, err := h.deps.Lure(r.Context(), id)
	if err != nil {
		writeError(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, l)
}

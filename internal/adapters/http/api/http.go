// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/okian/lurespread/internal/adapters/repository"
	service "github.com/okian/lurespread/internal/app"
	"github.com/okian/lurespread/internal/domain/model"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to the service implementation.
type Dependencies interface {
	RecommendDependencies
	LureDependencies
	CatalogDependencies
}

// RecommendDependencies produces spreads.
type RecommendDependencies interface {
	Recommend(ctx context.Context, c model.Conditions) (service.Recommendation, error)
}

// LureDependencies reads the catalog.
type LureDependencies interface {
	Lures(ctx context.Context) (repository.Catalog, error)
	Lure(ctx context.Context, id string) (model.Lure, error)
}

// CatalogDependencies reloads the catalog.
type CatalogDependencies interface {
	ReloadCatalog(ctx context.Context) (service.ReloadResult, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler    *HealthHandler
	statsHandler     *StatsHandler
	recommendHandler *RecommendHandler
	luresHandler     *LuresHandler
	catalogHandler   *CatalogHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:    NewHealthHandler(),
		statsHandler:     NewStatsHandler(statsProvider),
		recommendHandler: NewRecommendHandler(deps),
		luresHandler:     NewLuresHandler(deps),
		catalogHandler:   NewCatalogHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/recommendations", MetricsMiddleware(s.recommendHandler.HandlePostRecommendation, "recommendations"))
	mux.HandleFunc("/lures", MetricsMiddleware(s.luresHandler.HandleListLures, "lures"))
	mux.HandleFunc("/lures/", MetricsMiddleware(s.luresHandler.HandleGetLure, "lure"))
	mux.HandleFunc("/catalog/reload", MetricsMiddleware(s.catalogHandler.HandleReload, "catalog_reload"))
}

type errorResponse struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Hints   []string `json:"hints,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError renders err with the status and code classify derives for it.
func writeError(w http.ResponseWriter, err error) {
	f := classify(err)
	msg := http.StatusText(f.status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, f.status, errorResponse{Code: f.code, Message: msg, Hints: f.hints})
}

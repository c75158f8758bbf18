package api

import (
	"net/http"
)

// CatalogHandler handles catalog administration.
type CatalogHandler struct {
	deps CatalogDependencies
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(deps CatalogDependencies) *CatalogHandler {
	return &CatalogHandler{deps: deps}
}

// HandleReload handles POST /catalog/reload requests.
func (h *CatalogHandler) HandleReload(w http.ResponseWriter, r *http.Request) {
	const op = "api.reload_catalog"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	res, err := h.deps.ReloadCatalog(r.Context())
	if err != nil {
		writeError(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, res)
}

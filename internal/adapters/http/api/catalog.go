// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/exti/admitly/internal/domain/types"
)

// CatalogDependencies defines the interface for catalog listing operations.
type CatalogDependencies interface {
	CatalogTop(ctx context.Context, n int) ([]types.University, error)
}

// CatalogHandler handles catalog listing requests.
type CatalogHandler struct {
	deps     CatalogDependencies
	maxLimit int
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(deps CatalogDependencies, maxLimit int) *CatalogHandler {
	return &CatalogHandler{
		deps:     deps,
		maxLimit: maxLimit,
	}
}

// HandleGetCatalog handles GET /catalog?limit=N requests.
func (h *CatalogHandler) HandleGetCatalog(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_catalog"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	limitStr := r.URL.Query().Get("limit")
	n, err := strconv.Atoi(limitStr)
	if err != nil || n < 1 {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	if n > h.maxLimit {
		writeError(w, http.StatusBadRequest, "limit_exceeded", NewKind(op, ErrBadRequest))
		return
	}
	entries, err := h.deps.CatalogTop(r.Context(), n)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/exti/admitly/internal/domain/model"
	"github.com/exti/admitly/internal/domain/profile"
	"github.com/exti/admitly/internal/domain/types"
)

// EvaluateDependencies defines the interface for admission queries.
type EvaluateDependencies interface {
	Evaluate(ctx context.Context, p profile.Profile) (types.Shortlist, error)
}

// EvaluateHandler handles admission query requests.
type EvaluateHandler struct {
	deps       EvaluateDependencies
	displayCap int
}

// NewEvaluateHandler creates a new evaluate handler.
func NewEvaluateHandler(deps EvaluateDependencies, displayCap int) *EvaluateHandler {
	return &EvaluateHandler{deps: deps, displayCap: displayCap}
}

// HandleEvaluate handles POST /evaluate requests.
func (h *EvaluateHandler) HandleEvaluate(w http.ResponseWriter, r *http.Request) {
	const op = "api.evaluate"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	var req evaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	p, err := req.toProfile()
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	result, err := h.deps.Evaluate(r.Context(), p)
	switch {
	case err == nil:
	case errors.Is(err, profile.ErrInvalidProfile):
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	case errors.Is(err, model.ErrInference):
		writeError(w, http.StatusBadGateway, "model_error", Wrap(op, err))
		return
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}

	result.Dream = capBand(result.Dream, h.displayCap)
	result.Target = capBand(result.Target, h.displayCap)
	result.Safety = capBand(result.Safety, h.displayCap)
	writeJSON(w, http.StatusOK, result)
}

// capBand truncates a band to the display cap, keeping selection order.
func capBand(band []types.Candidate, limit int) []types.Candidate {
	if limit > 0 && len(band) > limit {
		return band[:limit]
	}
	return band
}

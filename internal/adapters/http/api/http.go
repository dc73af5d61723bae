// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/exti/admitly/internal/domain/profile"
	"github.com/exti/admitly/internal/domain/types"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Evaluate runs one admission query against the full catalog.
	Evaluate(ctx context.Context, p profile.Profile) (types.Shortlist, error)

	// CatalogTop returns the first n catalog entries ordered by rank.
	CatalogTop(ctx context.Context, n int) ([]types.University, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler   *HealthHandler
	statsHandler    *StatsHandler
	evaluateHandler *EvaluateHandler
	catalogHandler  *CatalogHandler
}

// NewServer creates a new API server with all handlers. displayCap bounds
// how many candidates a band carries in the response; maxCatalogLimit bounds
// the catalog listing query.
func NewServer(deps Dependencies, statsProvider StatsProvider, displayCap, maxCatalogLimit int) *Server {
	return &Server{
		healthHandler:   NewHealthHandler(),
		statsHandler:    NewStatsHandler(statsProvider),
		evaluateHandler: NewEvaluateHandler(deps, displayCap),
		catalogHandler:  NewCatalogHandler(deps, maxCatalogLimit),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/evaluate", MetricsMiddleware(s.evaluateHandler.HandleEvaluate, "evaluate"))
	mux.HandleFunc("/catalog", MetricsMiddleware(s.catalogHandler.HandleGetCatalog, "catalog"))
}

// evaluateRequest mirrors the OpenAPI schema for POST /evaluate.
type evaluateRequest struct {
	GPA               float64 `json:"gpa"`
	LanguageScore     float64 `json:"language_score"`
	PaperCount        int     `json:"paper_count"`
	Level             string  `json:"level"`
	PriorTier         int     `json:"prior_tier"`
	HasTestCredential bool    `json:"has_test_credential"`
}

// toProfile converts the wire shape into a domain profile. Field-range
// validation is the domain's job; only the level name is decoded here.
func (e evaluateRequest) toProfile() (profile.Profile, error) {
	if strings.TrimSpace(e.Level) == "" {
		return profile.Profile{}, errors.New("missing level")
	}
	level, err := profile.ParseLevel(e.Level)
	if err != nil {
		return profile.Profile{}, err
	}
	return profile.Profile{
		GPA:               e.GPA,
		LanguageScore:     e.LanguageScore,
		PaperCount:        e.PaperCount,
		Level:             level,
		PriorTier:         profile.Tier(e.PriorTier),
		HasTestCredential: e.HasTestCredential,
	}, nil
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

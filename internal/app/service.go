// Package app provides the core admission service that implements
// the dependencies required by the HTTP API.
package app

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/exti/admitly/internal/adapters/repository"
	"github.com/exti/admitly/internal/domain/band"
	"github.com/exti/admitly/internal/domain/diversity"
	"github.com/exti/admitly/internal/domain/model"
	"github.com/exti/admitly/internal/domain/profile"
	"github.com/exti/admitly/internal/domain/rules"
	"github.com/exti/admitly/internal/domain/types"
	"github.com/exti/admitly/pkg/logger"
	"github.com/exti/admitly/pkg/metrics"
)

// Service implements the API dependencies for the admission engine. The
// catalog and the fitted model are injected by the caller, loaded once and
// never mutated; every query works on catalog copies, so concurrent queries
// need no locking beyond the lifecycle mutex.
type Service struct {
	mu sync.RWMutex

	// Core components
	catalog repository.Store
	model   model.Model

	// State
	started bool

	// Query counters for stats
	queriesEvaluated int64
	hardRejects      int64
	inferenceFaults  int64

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithCatalog injects the read-only university catalog.
func WithCatalog(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.catalog = store
		}
	}
}

// WithModel injects the fitted probability model.
func WithModel(m model.Model) Option {
	return func(s *Service) {
		if m != nil {
			s.model = m
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New constructs a new Service. The catalog and model options are required
// before Start; the service fails closed without them.
func New(opts ...Option) *Service {
	s := &Service{}

	// Apply all options
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start validates the injected dependencies and marks the service ready.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	// Fail closed: no queries without a catalog and a fitted model.
	if s.catalog == nil {
		return ErrNoCatalog
	}
	if s.model == nil {
		return ErrNoModel
	}

	size := s.catalog.Count(ctx)
	metrics.UpdateCatalogSize(size)
	metrics.UpdateModelLoaded(true)

	s.started = true
	s.logger.Info(ctx, "admission service started",
		logger.Int("catalogSize", size),
	)
	return nil
}

// Stop marks the service stopped.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	metrics.UpdateModelLoaded(false)
	s.started = false
	s.logger.Info(context.Background(), "admission service stopped")
}

// Evaluate runs the full scoring pipeline for one student profile against the
// whole catalog. A hard-rejected profile is a normal outcome carried in the
// shortlist; an inference fault aborts the query with an error and no partial
// results.
func (s *Service) Evaluate(ctx context.Context, p profile.Profile) (types.Shortlist, error) {
	s.mu.RLock()
	started := s.started
	s.mu.RUnlock()
	if !started {
		return types.Shortlist{}, ErrNotStarted
	}

	start := time.Now()
	queryID := uuid.NewString()

	if err := p.Validate(); err != nil {
		return types.Shortlist{}, err
	}

	// Pre-model eligibility floors short-circuit before any inference.
	if rejection, rejected := rules.CheckFloors(p); rejected {
		metrics.RecordHardReject(rejection.Rule)
		s.count(func() { s.hardRejects++ })
		s.logger.Info(ctx, "query hard-rejected",
			logger.String("queryID", queryID),
			logger.String("rule", rejection.Rule),
			logger.Float64("threshold", rejection.Threshold),
		)
		return types.Shortlist{QueryID: queryID, Rejection: &rejection}, nil
	}

	entries := s.catalog.All(ctx)
	candidates := make([]types.Candidate, 0, len(entries))
	for i := range entries {
		candidate, err := s.score(ctx, p, &entries[i])
		if err != nil {
			metrics.RecordInferenceError()
			s.count(func() { s.inferenceFaults++ })
			s.logger.Error(ctx, "inference fault, aborting query",
				logger.String("queryID", queryID),
				logger.String("university", entries[i].University),
				logger.Error(err),
			)
			return types.Shortlist{}, err
		}
		candidates = append(candidates, candidate)
	}
	metrics.RecordCandidatesScored(len(entries))

	dream, target, safety := band.Partition(candidates)
	result := types.Shortlist{
		QueryID: queryID,
		Dream:   diversity.Select(dream, diversity.ByChance),
		Target:  diversity.Select(target, diversity.ByRank),
		Safety:  diversity.Select(safety, diversity.ByRank),
	}

	metrics.RecordCandidatesSelected(band.Dream.String(), len(result.Dream))
	metrics.RecordCandidatesSelected(band.Target.String(), len(result.Target))
	metrics.RecordCandidatesSelected(band.Safety.String(), len(result.Safety))
	metrics.RecordQueryEvaluated()
	metrics.RecordEvaluationLatency(float64(time.Since(start).Milliseconds()))
	s.count(func() { s.queriesEvaluated++ })

	s.logger.Debug(ctx, "query evaluated",
		logger.String("queryID", queryID),
		logger.Int("scored", len(candidates)),
		logger.Int("dream", len(result.Dream)),
		logger.Int("target", len(result.Target)),
		logger.Int("safety", len(result.Safety)),
	)
	return result, nil
}

// score runs model inference plus the dynamic penalty stage for one entry.
func (s *Service) score(ctx context.Context, p profile.Profile, entry *repository.Entry) (types.Candidate, error) {
	features := model.Features{
		GPA:           p.GPA,
		LanguageScore: p.LanguageScore,
		PaperCount:    p.PaperCount,
		Level:         p.Level,
		PriorTier:     p.PriorTier,
		HasCredential: p.HasTestCredential,
		Difficulty:    entry.Difficulty,
	}

	prob, err := s.model.PredictProbability(ctx, features)
	if err != nil {
		return types.Candidate{}, fmt.Errorf("score %q: %w", entry.University, err)
	}
	// Guard against conforming-interface, non-conforming-output models.
	if math.IsNaN(prob) || prob < 0 || prob > 1 {
		return types.Candidate{}, fmt.Errorf("%w: probability %v for %q",
			model.ErrInference, prob, entry.University)
	}

	chance := prob * 100
	for _, applied := range rules.Penalties(p, entry.Rank) {
		metrics.RecordPenaltyApplied(applied.Rule)
		chance -= applied.Points
	}

	return types.Candidate{
		University: types.University{
			University:    entry.University,
			Country:       entry.Country,
			Rank:          entry.Rank,
			ResearchScore: entry.ResearchScore,
			Tuition:       entry.Tuition,
		},
		Chance: rules.ClampChance(chance),
	}, nil
}

// CatalogTop returns the first n catalog entries ordered by rank.
func (s *Service) CatalogTop(ctx context.Context, n int) ([]types.University, error) {
	if n < 1 {
		return nil, repository.ErrInvalidLimit
	}
	s.mu.RLock()
	started := s.started
	s.mu.RUnlock()
	if !started {
		return nil, ErrNotStarted
	}

	entries := s.catalog.All(ctx)
	if n > len(entries) {
		n = len(entries)
	}

	out := make([]types.University, n)
	for i := 0; i < n; i++ {
		out[i] = types.University{
			University:    entries[i].University,
			Country:       entries[i].Country,
			Rank:          entries[i].Rank,
			ResearchScore: entries[i].ResearchScore,
			Tuition:       entries[i].Tuition,
		}
	}
	return out, nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":          s.started,
		"queriesEvaluated": s.queriesEvaluated,
		"hardRejects":      s.hardRejects,
		"inferenceFaults":  s.inferenceFaults,
	}
	if s.started {
		stats["catalogSize"] = s.catalog.Count(context.Background())
	}
	return stats
}

// count runs a counter mutation under the lifecycle lock.
func (s *Service) count(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn()
}

// Package training orchestrates the offline fitting pipeline: load the
// catalog, synthesize a labeled corpus, fit the probability model, measure
// holdout accuracy and persist the artifact.
package training

import (
	"context"
	"fmt"

	"github.com/exti/admitly/internal/adapters/repository"
	"github.com/exti/admitly/internal/domain/model"
	"github.com/exti/admitly/internal/domain/synth"
	"github.com/exti/admitly/pkg/logger"
)

// Default pipeline configuration constants.
const (
	DefaultCorpusSize      = 50_000
	DefaultSeed            = 42
	DefaultHoldoutFraction = 0.2
)

// Config drives one training run.
type Config struct {
	// CatalogPath points at the university catalog CSV.
	CatalogPath string

	// ArtifactPath is where the fitted model is written.
	ArtifactPath string

	// CorpusSize is the number of synthetic examples to generate.
	CorpusSize int

	// Seed makes corpus generation reproducible.
	Seed int64

	// HoldoutFraction is the tail share of the corpus held out for
	// accuracy measurement.
	HoldoutFraction float64
}

// NewConfig returns a Config populated with defaults for the given paths.
func NewConfig(catalogPath, artifactPath string) Config {
	return Config{
		CatalogPath:     catalogPath,
		ArtifactPath:    artifactPath,
		CorpusSize:      DefaultCorpusSize,
		Seed:            DefaultSeed,
		HoldoutFraction: DefaultHoldoutFraction,
	}
}

func (c Config) validate() error {
	switch {
	case c.CatalogPath == "":
		return fmt.Errorf("%w: catalog path must not be empty", ErrBadConfig)
	case c.ArtifactPath == "":
		return fmt.Errorf("%w: artifact path must not be empty", ErrBadConfig)
	case c.CorpusSize < 1:
		return fmt.Errorf("%w: corpus size must be positive", ErrBadConfig)
	case c.HoldoutFraction <= 0 || c.HoldoutFraction >= 1:
		return fmt.Errorf("%w: holdout fraction must be in (0, 1)", ErrBadConfig)
	}
	return nil
}

// Report summarizes one training run.
type Report struct {
	CorpusSize  int
	TrainSize   int
	HoldoutSize int

	// AdmitRate is the share of positive labels in the full corpus.
	AdmitRate float64

	// Accuracy is the holdout classification accuracy at a 0.5 cutoff.
	Accuracy float64
}

// Run executes the full pipeline and writes the artifact. Any stage failure
// aborts the run; a partial artifact is never left behind.
func Run(ctx context.Context, cfg Config) (*Report, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	log := logger.Get()

	store, err := repository.LoadCSV(ctx, cfg.CatalogPath)
	if err != nil {
		return nil, err
	}
	catalog := store.All(ctx)
	log.Info(ctx, "catalog loaded",
		logger.String("path", cfg.CatalogPath),
		logger.Int("entries", len(catalog)),
	)

	gen, err := synth.NewGenerator(catalog, synth.WithSeed(cfg.Seed))
	if err != nil {
		return nil, err
	}
	examples, err := gen.Generate(ctx, cfg.CorpusSize)
	if err != nil {
		return nil, err
	}

	admitted := 0
	for _, ex := range examples {
		if ex.Admitted {
			admitted++
		}
	}

	holdoutSize := int(float64(len(examples)) * cfg.HoldoutFraction)
	if holdoutSize < 1 {
		return nil, ErrHoldoutEmpty
	}
	trainSet := examples[:len(examples)-holdoutSize]
	holdout := examples[len(examples)-holdoutSize:]
	log.Info(ctx, "corpus generated",
		logger.Int("train", len(trainSet)),
		logger.Int("holdout", len(holdout)),
		logger.Float64("admitRate", float64(admitted)/float64(len(examples))),
	)

	m, err := model.Train(ctx, trainSet)
	if err != nil {
		return nil, err
	}

	accuracy, err := measureAccuracy(ctx, m, holdout)
	if err != nil {
		return nil, err
	}
	log.Info(ctx, "model fitted", logger.Float64("holdoutAccuracy", accuracy))

	if err := m.Save(cfg.ArtifactPath); err != nil {
		return nil, err
	}
	log.Info(ctx, "artifact written", logger.String("path", cfg.ArtifactPath))

	return &Report{
		CorpusSize:  len(examples),
		TrainSize:   len(trainSet),
		HoldoutSize: len(holdout),
		AdmitRate:   float64(admitted) / float64(len(examples)),
		Accuracy:    accuracy,
	}, nil
}

// measureAccuracy scores the holdout at a 0.5 decision cutoff.
func measureAccuracy(ctx context.Context, m model.Model, holdout []model.Example) (float64, error) {
	correct := 0
	for _, ex := range holdout {
		p, err := m.PredictProbability(ctx, ex.Features)
		if err != nil {
			return 0, fmt.Errorf("holdout scoring: %w", err)
		}
		if (p > 0.5) == ex.Admitted {
			correct++
		}
	}
	return float64(correct) / float64(len(holdout)), nil
}

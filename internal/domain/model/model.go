// Package model defines the probability model contract for admission scoring
// and provides a logistic-regression implementation. The engine only depends
// on the capability interface; any classifier producing a calibrated
// probability from the feature tuple can be substituted.
package model

import (
	"context"

	"github.com/exti/admitly/internal/domain/profile"
)

// Features is the exact 7-tuple consumed by the probability model:
// (gpa, languageScore, paperCount, levelCode, priorTierCode, credentialFlag,
// difficulty).
type Features struct {
	GPA           float64
	LanguageScore float64
	PaperCount    int
	Level         profile.Level
	PriorTier     profile.Tier
	HasCredential bool
	Difficulty    float64
}

// Example is one labeled training record.
type Example struct {
	Features Features
	Admitted bool
}

// Model converts a feature vector into a calibrated admission probability.
// Implementations must be side-effect-free so a fitted model can be shared by
// concurrent queries without locking.
type Model interface {
	// PredictProbability returns a probability in [0, 1].
	PredictProbability(ctx context.Context, f Features) (float64, error)
}

// Feature basis layout: one block of basisBlockSize features per degree level.
// The per-level blocks let a linear model capture the level-specific
// composites and threshold multipliers of the admission domain; the
// gpa-by-tier products capture the prior-institution boost.
const (
	basisBlockSize = 8
	basisSize      = basisBlockSize * 3
)

// basis expands the feature tuple into the per-level linear basis.
func (f Features) basis() []float64 {
	v := make([]float64, basisSize)

	level := f.Level
	if !level.Valid() {
		level = profile.LevelBachelor
	}
	off := int(level) * basisBlockSize

	credential := 0.0
	if f.HasCredential {
		credential = 1.0
	}
	gpaTier1, gpaTier3 := 0.0, 0.0
	switch f.PriorTier {
	case profile.Tier1:
		gpaTier1 = f.GPA
	case profile.Tier3:
		gpaTier3 = f.GPA
	}

	v[off+0] = 1.0
	v[off+1] = f.GPA
	v[off+2] = f.LanguageScore
	v[off+3] = float64(f.PaperCount)
	v[off+4] = credential
	v[off+5] = f.Difficulty
	v[off+6] = gpaTier1
	v[off+7] = gpaTier3

	return v
}

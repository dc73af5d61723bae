// Package band partitions scored candidates into likelihood bands.
package band

import (
	"github.com/exti/admitly/internal/domain/types"
)

// MinRelevantChance is the floor below which candidates are dropped entirely.
const MinRelevantChance = 5.0

// Band boundaries (lower bounds, inclusive).
const (
	targetLowerBound = 40.0
	safetyLowerBound = 75.0
)

// Band identifies one of the three likelihood bands.
type Band int

// Bands ordered by increasing chance.
const (
	Dream Band = iota
	Target
	Safety
)

// String returns the lowercase band name.
func (b Band) String() string {
	switch b {
	case Dream:
		return "dream"
	case Target:
		return "target"
	case Safety:
		return "safety"
	default:
		return "unknown"
	}
}

// Classify maps a chance to its band. The bool is false when the chance is
// below the relevance floor and the candidate should be dropped.
func Classify(chance float64) (Band, bool) {
	switch {
	case chance < MinRelevantChance:
		return 0, false
	case chance < targetLowerBound:
		return Dream, true
	case chance < safetyLowerBound:
		return Target, true
	default:
		return Safety, true
	}
}

// Partition splits candidates into the three bands, dropping anything below
// the relevance floor. Each surviving candidate lands in exactly one band.
func Partition(candidates []types.Candidate) (dream, target, safety []types.Candidate) {
	for _, c := range candidates {
		b, ok := Classify(c.Chance)
		if !ok {
			continue
		}
		switch b {
		case Dream:
			dream = append(dream, c)
		case Target:
			target = append(target, c)
		case Safety:
			safety = append(safety, c)
		}
	}
	return dream, target, safety
}

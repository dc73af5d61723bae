// Package profile defines the student profile submitted with every admission query.
package profile

import (
	"fmt"
	"math"
	"strings"
)

// Domain bounds for profile fields.
const (
	minGPA              = 0.0
	maxGPA              = 20.0
	minLanguageScore    = 0.0
	maxLanguageScore    = 9.0
	languageScoreStep   = 0.5
	languageStepEpsilon = 1e-9
)

// Level is the degree level the student applies for.
type Level int

// Degree levels, ordered by code as used in the feature tuple.
const (
	LevelBachelor Level = iota
	LevelMaster
	LevelPhD
)

// String returns the lowercase level name.
func (l Level) String() string {
	switch l {
	case LevelBachelor:
		return "bachelor"
	case LevelMaster:
		return "master"
	case LevelPhD:
		return "phd"
	default:
		return fmt.Sprintf("level(%d)", int(l))
	}
}

// Valid reports whether the level is one of the known degree levels.
func (l Level) Valid() bool {
	return l >= LevelBachelor && l <= LevelPhD
}

// ParseLevel parses a level name (case-insensitive).
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "bachelor":
		return LevelBachelor, nil
	case "master":
		return LevelMaster, nil
	case "phd":
		return LevelPhD, nil
	default:
		return 0, fmt.Errorf("%w: unknown level %q", ErrInvalidProfile, s)
	}
}

// Tier is the prestige tier of the student's prior institution.
type Tier int

// Institution tiers; Tier1 is the most prestigious.
const (
	Tier1 Tier = iota + 1
	Tier2
	Tier3
)

// Valid reports whether the tier is one of the known tiers.
func (t Tier) Valid() bool {
	return t >= Tier1 && t <= Tier3
}

// Profile holds the student attributes scored against the catalog.
// Immutable once constructed from user input.
type Profile struct {
	GPA               float64
	LanguageScore     float64
	PaperCount        int
	Level             Level
	PriorTier         Tier
	HasTestCredential bool
}

// Validate checks all fields against their domain ranges.
func (p Profile) Validate() error {
	if p.GPA < minGPA || p.GPA > maxGPA {
		return fmt.Errorf("%w: gpa %.2f outside [%.0f, %.0f]", ErrInvalidProfile, p.GPA, minGPA, maxGPA)
	}
	if p.LanguageScore < minLanguageScore || p.LanguageScore > maxLanguageScore {
		return fmt.Errorf("%w: language score %.2f outside [%.0f, %.0f]",
			ErrInvalidProfile, p.LanguageScore, minLanguageScore, maxLanguageScore)
	}
	// Language scores come in half-point steps.
	if steps := p.LanguageScore / languageScoreStep; math.Abs(steps-math.Round(steps)) > languageStepEpsilon {
		return fmt.Errorf("%w: language score %.2f is not a multiple of %.1f",
			ErrInvalidProfile, p.LanguageScore, languageScoreStep)
	}
	if p.PaperCount < 0 {
		return fmt.Errorf("%w: paper count %d is negative", ErrInvalidProfile, p.PaperCount)
	}
	if !p.Level.Valid() {
		return fmt.Errorf("%w: unknown level code %d", ErrInvalidProfile, int(p.Level))
	}
	if !p.PriorTier.Valid() {
		return fmt.Errorf("%w: unknown institution tier %d", ErrInvalidProfile, int(p.PriorTier))
	}
	return nil
}

// Package rules implements the deterministic corrections layered around the
// probability model: pre-model eligibility floors and post-model dynamic penalties.
package rules

import (
	"math"

	"github.com/exti/admitly/internal/domain/profile"
	"github.com/exti/admitly/internal/domain/types"
)

// Rule names carried on rejections and penalty applications.
const (
	RuleLanguageFloor = "language_floor"
	RuleGPAFloor      = "gpa_floor"

	RuleLanguageEliteRank = "language_elite_rank"
	RuleLanguageHighRank  = "language_high_rank"
	RuleMasterNoPapers    = "master_no_papers"
	RuleMasterOnePaper    = "master_one_paper"
)

// Eligibility floors by degree level.
const (
	minLanguagePhD      = 6.5
	minLanguageMaster   = 6.0
	minLanguageBachelor = 5.0

	minGPAPhD      = 15.0
	minGPAMaster   = 14.0
	minGPABachelor = 12.0
)

// Dynamic penalty thresholds and deductions, in probability points.
const (
	borderlineLanguage = 6.5

	eliteRankCutoff = 20
	highRankCutoff  = 50

	eliteRankPenalty = 30.0
	highRankPenalty  = 20.0
	noPapersPenalty  = 30.0
	onePaperPenalty  = 10.0
)

// Chance bounds for exposed candidates.
const (
	minChance = 0.0
	maxChance = 99.0
)

// MinLanguageScore returns the language-score floor for a level.
func MinLanguageScore(level profile.Level) float64 {
	switch level {
	case profile.LevelPhD:
		return minLanguagePhD
	case profile.LevelMaster:
		return minLanguageMaster
	default:
		return minLanguageBachelor
	}
}

// MinGPA returns the GPA floor for a level.
func MinGPA(level profile.Level) float64 {
	switch level {
	case profile.LevelPhD:
		return minGPAPhD
	case profile.LevelMaster:
		return minGPAMaster
	default:
		return minGPABachelor
	}
}

// CheckFloors applies the pre-model eligibility rules. The language floor is
// checked before the GPA floor; the first violated floor wins. The returned
// bool is true when the profile is hard-rejected.
func CheckFloors(p profile.Profile) (types.Rejection, bool) {
	if floor := MinLanguageScore(p.Level); p.LanguageScore < floor {
		return types.Rejection{
			Rule:      RuleLanguageFloor,
			Threshold: floor,
			Value:     p.LanguageScore,
		}, true
	}
	if floor := MinGPA(p.Level); p.GPA < floor {
		return types.Rejection{
			Rule:      RuleGPAFloor,
			Threshold: floor,
			Value:     p.GPA,
		}, true
	}
	return types.Rejection{}, false
}

// Applied captures a single dynamic penalty application.
type Applied struct {
	Rule   string
	Points float64
}

// Penalties returns the dynamic point deductions for a candidate at the given
// catalog rank. Penalties are additive; all matching rules apply.
func Penalties(p profile.Profile, rank int) []Applied {
	var applied []Applied

	// The model under-penalizes borderline language scores against elite institutions.
	if p.LanguageScore < borderlineLanguage {
		switch {
		case rank <= eliteRankCutoff:
			applied = append(applied, Applied{Rule: RuleLanguageEliteRank, Points: eliteRankPenalty})
		case rank <= highRankCutoff:
			applied = append(applied, Applied{Rule: RuleLanguageHighRank, Points: highRankPenalty})
		}
	}

	// The model under-penalizes research-output gaps at the Master's level.
	if p.Level == profile.LevelMaster {
		switch {
		case p.PaperCount == 0:
			applied = append(applied, Applied{Rule: RuleMasterNoPapers, Points: noPapersPenalty})
		case p.PaperCount == 1 && rank <= highRankCutoff:
			applied = append(applied, Applied{Rule: RuleMasterOnePaper, Points: onePaperPenalty})
		}
	}

	return applied
}

// TotalPenalty sums the dynamic point deductions for a candidate.
func TotalPenalty(p profile.Profile, rank int) float64 {
	var total float64
	for _, a := range Penalties(p, rank) {
		total += a.Points
	}
	return total
}

// ClampChance clamps a raw chance into [0, 99] and rounds it to one decimal.
func ClampChance(raw float64) float64 {
	clamped := math.Max(minChance, math.Min(maxChance, raw))
	return math.Round(clamped*10) / 10
}

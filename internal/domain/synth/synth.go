// Package synth generates the labeled corpus that defines what "admitted"
// means for training purposes. Profiles are sampled with realistic field
// correlations and labeled by a hand-designed composite score compared
// against a difficulty-scaled threshold plus Gaussian noise.
package synth

import (
	"context"
	"fmt"
	"math"
	"math/rand"

	"github.com/exti/admitly/internal/adapters/repository"
	"github.com/exti/admitly/internal/domain/model"
	"github.com/exti/admitly/internal/domain/profile"
)

// Default generator configuration constants.
const (
	defaultRandomSeed = 42
	ctxCheckInterval  = 4096
)

// Profile sampling distributions.
const (
	gpaMean  = 16.0
	gpaStdev = 2.0
	gpaMin   = 12.0
	gpaMax   = 20.0

	languageMean  = 6.5
	languageStdev = 1.0
	languageMin   = 5.0
	languageMax   = 9.0

	credentialProbability = 0.2
	labelNoiseStdev       = 1.0
)

// Prior-institution GPA boosts.
const (
	tier1Boost = 1.25
	tier2Boost = 1.0
	tier3Boost = 0.9
)

// Level-specific composite weights and threshold multipliers. The relative
// weighting and the multiplier table are the ground truth the probability
// model approximates; they must not drift.
const (
	phdGPAWeight          = 0.5
	phdLanguageWeight     = 0.8
	phdPaperWeight        = 2.5
	phdCredentialBonus    = 2.0
	phdThresholdMult      = 2.1
	masterGPAWeight       = 0.9
	masterLanguageWeight  = 1.0
	masterPaperWeight     = 1.5
	masterThresholdMult   = 1.9
	bachelorGPAWeight     = 1.2
	bachelorLangWeight    = 1.0
	bachelorThresholdMult = 1.8
)

// Option applies a configuration option to the Generator.
type Option func(*Generator)

// WithSeed sets the random seed for reproducible corpora.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.rng = rand.New(rand.NewSource(seed)) //nolint:gosec // deterministic seed for reproducible corpora
	}
}

// Generator produces synthetic labeled admission examples against a catalog.
type Generator struct {
	catalog []repository.Entry
	rng     *rand.Rand
}

// NewGenerator creates a generator over the given catalog entries.
func NewGenerator(catalog []repository.Entry, opts ...Option) (*Generator, error) {
	if len(catalog) == 0 {
		return nil, fmt.Errorf("%w: generator needs at least one entry", repository.ErrEmptyCatalog)
	}

	g := &Generator{
		catalog: catalog,
		rng:     rand.New(rand.NewSource(defaultRandomSeed)), //nolint:gosec // deterministic seed for reproducible corpora
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Generate produces n labeled examples, honoring ctx for cancellation.
func (g *Generator) Generate(ctx context.Context, n int) ([]model.Example, error) {
	if n <= 0 {
		return nil, fmt.Errorf("corpus size must be positive, got %d", n)
	}

	examples := make([]model.Example, 0, n)
	for i := 0; i < n; i++ {
		if i%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("generation cancelled: %w", err)
			}
		}
		examples = append(examples, g.sample())
	}
	return examples, nil
}

// sample draws one synthetic (profile, target, label) example.
func (g *Generator) sample() model.Example {
	level := g.sampleLevel()
	tier := g.sampleTier()
	gpa := clamp(g.rng.NormFloat64()*gpaStdev+gpaMean, gpaMin, gpaMax)
	language := clamp(g.rng.NormFloat64()*languageStdev+languageMean, languageMin, languageMax)
	papers := g.samplePapers(level)
	credential := g.rng.Float64() < credentialProbability

	target := g.catalog[g.rng.Intn(len(g.catalog))]

	score := compositeScore(level, gpa*tierBoost(tier), language, papers, credential)
	noise := g.rng.NormFloat64() * labelNoiseStdev
	admitted := score+noise > target.Difficulty*thresholdMultiplier(level)

	return model.Example{
		Features: model.Features{
			GPA:           gpa,
			LanguageScore: language,
			PaperCount:    papers,
			Level:         level,
			PriorTier:     tier,
			HasCredential: credential,
			Difficulty:    target.Difficulty,
		},
		Admitted: admitted,
	}
}

// sampleLevel draws a target level: Bachelor 0.2, Master 0.4, PhD 0.4.
func (g *Generator) sampleLevel() profile.Level {
	switch r := g.rng.Float64(); {
	case r < 0.2:
		return profile.LevelBachelor
	case r < 0.6:
		return profile.LevelMaster
	default:
		return profile.LevelPhD
	}
}

// sampleTier draws a prior-institution tier: Tier1 0.2, Tier2 0.5, Tier3 0.3.
func (g *Generator) sampleTier() profile.Tier {
	switch r := g.rng.Float64(); {
	case r < 0.2:
		return profile.Tier1
	case r < 0.7:
		return profile.Tier2
	default:
		return profile.Tier3
	}
}

// samplePapers draws a paper count conditioned on the level.
func (g *Generator) samplePapers(level profile.Level) int {
	r := g.rng.Float64()
	switch level {
	case profile.LevelPhD:
		switch {
		case r < 0.4:
			return 0
		case r < 0.7:
			return 1
		case r < 0.9:
			return 2
		case r < 0.98:
			return 3
		default:
			return 5
		}
	case profile.LevelMaster:
		switch {
		case r < 0.8:
			return 0
		case r < 0.95:
			return 1
		default:
			return 2
		}
	default:
		return 0
	}
}

// tierBoost returns the GPA multiplier for a prior-institution tier.
func tierBoost(tier profile.Tier) float64 {
	switch tier {
	case profile.Tier1:
		return tier1Boost
	case profile.Tier3:
		return tier3Boost
	default:
		return tier2Boost
	}
}

// compositeScore computes the level-specific linear composite.
func compositeScore(level profile.Level, adjustedGPA, language float64, papers int, credential bool) float64 {
	switch level {
	case profile.LevelPhD:
		score := adjustedGPA*phdGPAWeight + language*phdLanguageWeight + float64(papers)*phdPaperWeight
		if credential {
			score += phdCredentialBonus
		}
		return score
	case profile.LevelMaster:
		return adjustedGPA*masterGPAWeight + language*masterLanguageWeight + float64(papers)*masterPaperWeight
	default:
		return adjustedGPA*bachelorGPAWeight + language*bachelorLangWeight
	}
}

// thresholdMultiplier returns the level-specific difficulty multiplier.
func thresholdMultiplier(level profile.Level) float64 {
	switch level {
	case profile.LevelPhD:
		return phdThresholdMult
	case profile.LevelMaster:
		return masterThresholdMult
	default:
		return bachelorThresholdMult
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

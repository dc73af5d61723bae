// Package diversity caps per-country representation in a band's shortlist.
package diversity

import (
	"sort"

	"github.com/exti/admitly/internal/domain/types"
)

// maxPerCountry bounds how many universities one country contributes to a band.
const maxPerCountry = 2

// Policy selects the ordering used for both selection and display.
type Policy int

// Ordering policies.
const (
	// ByRank orders by catalog rank ascending (favor prestige).
	ByRank Policy = iota
	// ByChance orders by chance descending with rank ascending as tie-break
	// (favor the closest long-shots).
	ByChance
)

// Select returns at most two candidates per country, chosen and ordered by the
// given policy. The input is not modified. Selection never re-ranks across the
// per-country cap: a country's 3rd-best entry is dropped even if it would
// outrank another country's 2nd-best.
func Select(candidates []types.Candidate, policy Policy) []types.Candidate {
	if len(candidates) == 0 {
		return nil
	}

	sorted := make([]types.Candidate, len(candidates))
	copy(sorted, candidates)
	sortByPolicy(sorted, policy)

	perCountry := make(map[string]int, len(sorted))
	selected := make([]types.Candidate, 0, len(sorted))
	for _, c := range sorted {
		if perCountry[c.Country] >= maxPerCountry {
			continue
		}
		perCountry[c.Country]++
		selected = append(selected, c)
	}

	// The filter preserves sorted order, so the union is already in display order.
	return selected
}

func sortByPolicy(candidates []types.Candidate, policy Policy) {
	switch policy {
	case ByChance:
		sort.SliceStable(candidates, func(i, j int) bool {
			if candidates[i].Chance != candidates[j].Chance {
				return candidates[i].Chance > candidates[j].Chance
			}
			return candidates[i].Rank < candidates[j].Rank
		})
	default:
		sort.SliceStable(candidates, func(i, j int) bool {
			return candidates[i].Rank < candidates[j].Rank
		})
	}
}

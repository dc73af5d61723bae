package diversity_test

import (
	"testing"

	"github.com/exti/admitly/internal/domain/diversity"
	"github.com/exti/admitly/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func candidate(name, country string, rank int, chance float64) types.Candidate {
	return types.Candidate{
		University: types.University{University: name, Country: country, Rank: rank},
		Chance:     chance,
	}
}

func TestSelectByRank(t *testing.T) {
	Convey("Given candidates from a dominant country", t, func() {
		pool := []types.Candidate{
			candidate("us-1", "USA", 1, 80),
			candidate("us-2", "USA", 2, 78),
			candidate("us-3", "USA", 3, 76),
			candidate("uk-1", "UK", 10, 70),
			candidate("de-1", "Germany", 40, 60),
		}

		Convey("When selecting by rank", func() {
			got := diversity.Select(pool, diversity.ByRank)

			Convey("Then no country contributes more than 2 entries", func() {
				counts := make(map[string]int)
				for _, c := range got {
					counts[c.Country]++
				}
				for _, n := range counts {
					So(n, ShouldBeLessThanOrEqualTo, 2)
				}
			})

			Convey("And the country's 3rd-best entry drops even though it outranks the others", func() {
				names := make([]string, 0, len(got))
				for _, c := range got {
					names = append(names, c.University.University)
				}
				So(names, ShouldResemble, []string{"us-1", "us-2", "uk-1", "de-1"})
			})

			Convey("And the result stays ordered by rank ascending", func() {
				for i := 1; i < len(got); i++ {
					So(got[i-1].Rank, ShouldBeLessThan, got[i].Rank)
				}
			})
		})
	})
}

func TestSelectByChance(t *testing.T) {
	Convey("Given candidates with mixed chances", t, func() {
		pool := []types.Candidate{
			candidate("ca-1", "Canada", 30, 12.5),
			candidate("ca-2", "Canada", 25, 35.0),
			candidate("ca-3", "Canada", 90, 20.0),
			candidate("nl-1", "Netherlands", 60, 35.0),
			candidate("nl-2", "Netherlands", 70, 8.0),
		}

		Convey("When selecting by chance", func() {
			got := diversity.Select(pool, diversity.ByChance)

			Convey("Then ordering is chance descending with rank as tie-break", func() {
				names := make([]string, 0, len(got))
				for _, c := range got {
					names = append(names, c.University.University)
				}
				// ca-2 (35.0, rank 25) beats nl-1 (35.0, rank 60) on the tie-break.
				So(names, ShouldResemble, []string{"ca-2", "nl-1", "ca-3", "nl-2"})
			})

			Convey("And the weakest entry of the capped country is dropped", func() {
				for _, c := range got {
					So(c.University.University, ShouldNotEqual, "ca-1")
				}
			})
		})
	})
}

func TestSelectEdgeCases(t *testing.T) {
	Convey("Given edge-case inputs", t, func() {
		Convey("When the input is empty", func() {
			So(diversity.Select(nil, diversity.ByRank), ShouldBeEmpty)
			So(diversity.Select([]types.Candidate{}, diversity.ByChance), ShouldBeEmpty)
		})

		Convey("When every country has fewer than 2 entries", func() {
			pool := []types.Candidate{
				candidate("a", "France", 5, 50),
				candidate("b", "Italy", 3, 60),
				candidate("c", "Spain", 8, 40),
			}
			got := diversity.Select(pool, diversity.ByRank)

			Convey("Then all entries survive, only reordered", func() {
				So(len(got), ShouldEqual, 3)
				So(got[0].University.University, ShouldEqual, "b")
				So(got[1].University.University, ShouldEqual, "a")
				So(got[2].University.University, ShouldEqual, "c")
			})
		})

		Convey("When the input is not modified by selection", func() {
			pool := []types.Candidate{
				candidate("z", "Japan", 9, 10),
				candidate("y", "Japan", 2, 20),
			}
			_ = diversity.Select(pool, diversity.ByRank)

			Convey("Then the caller's slice keeps its order", func() {
				So(pool[0].University.University, ShouldEqual, "z")
				So(pool[1].University.University, ShouldEqual, "y")
			})
		})
	})
}

func TestSelectIdempotent(t *testing.T) {
	Convey("Given a selection result", t, func() {
		pool := []types.Candidate{
			candidate("us-1", "USA", 1, 90),
			candidate("us-2", "USA", 2, 85),
			candidate("us-3", "USA", 3, 80),
			candidate("uk-1", "UK", 4, 75),
			candidate("uk-2", "UK", 5, 70),
			candidate("uk-3", "UK", 6, 65),
		}

		for name, policy := range map[string]diversity.Policy{
			"rank":   diversity.ByRank,
			"chance": diversity.ByChance,
		} {
			Convey("When re-running "+name+" selection on its own output", func() {
				once := diversity.Select(pool, policy)
				twice := diversity.Select(once, policy)

				Convey("Then the result is unchanged", func() {
					So(twice, ShouldResemble, once)
				})
			})
		}
	})
}

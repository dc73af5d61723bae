package rules_test

import (
	"testing"

	"github.com/exti/admitly/internal/domain/profile"
	"github.com/exti/admitly/internal/domain/rules"
	. "github.com/smartystreets/goconvey/convey"
)

func TestCheckFloors(t *testing.T) {
	Convey("Given the eligibility floors", t, func() {
		Convey("When a Master profile meets both floors", func() {
			p := profile.Profile{
				GPA:           17.86,
				LanguageScore: 6.5,
				PaperCount:    1,
				Level:         profile.LevelMaster,
				PriorTier:     profile.Tier1,
			}

			Convey("Then it should proceed to scoring", func() {
				_, rejected := rules.CheckFloors(p)
				So(rejected, ShouldBeFalse)
			})
		})

		Convey("When a PhD profile fails the GPA floor only", func() {
			p := profile.Profile{
				GPA:           13.0,
				LanguageScore: 6.5,
				Level:         profile.LevelPhD,
				PriorTier:     profile.Tier2,
			}

			Convey("Then it should hard-reject on the GPA floor", func() {
				rej, rejected := rules.CheckFloors(p)
				So(rejected, ShouldBeTrue)
				So(rej.Rule, ShouldEqual, rules.RuleGPAFloor)
				So(rej.Threshold, ShouldEqual, 15.0)
				So(rej.Value, ShouldEqual, 13.0)
			})
		})

		Convey("When a PhD profile has a language score that would pass a lower level", func() {
			p := profile.Profile{
				GPA:           13.0,
				LanguageScore: 6.0,
				Level:         profile.LevelPhD,
				PriorTier:     profile.Tier2,
			}

			Convey("Then the language floor wins since it is checked first", func() {
				rej, rejected := rules.CheckFloors(p)
				So(rejected, ShouldBeTrue)
				So(rej.Rule, ShouldEqual, rules.RuleLanguageFloor)
				So(rej.Threshold, ShouldEqual, 6.5)
			})
		})

		Convey("When a Bachelor profile sits exactly on both floors", func() {
			p := profile.Profile{
				GPA:           12.0,
				LanguageScore: 5.0,
				Level:         profile.LevelBachelor,
				PriorTier:     profile.Tier3,
			}

			Convey("Then it should not be rejected", func() {
				_, rejected := rules.CheckFloors(p)
				So(rejected, ShouldBeFalse)
			})
		})
	})
}

func TestFloorTables(t *testing.T) {
	Convey("Given the per-level floor tables", t, func() {
		Convey("Then the language floors should match the policy", func() {
			So(rules.MinLanguageScore(profile.LevelPhD), ShouldEqual, 6.5)
			So(rules.MinLanguageScore(profile.LevelMaster), ShouldEqual, 6.0)
			So(rules.MinLanguageScore(profile.LevelBachelor), ShouldEqual, 5.0)
		})

		Convey("Then the GPA floors should match the policy", func() {
			So(rules.MinGPA(profile.LevelPhD), ShouldEqual, 15.0)
			So(rules.MinGPA(profile.LevelMaster), ShouldEqual, 14.0)
			So(rules.MinGPA(profile.LevelBachelor), ShouldEqual, 12.0)
		})
	})
}

func TestPenalties(t *testing.T) {
	Convey("Given the dynamic penalty rules", t, func() {
		Convey("When the language score is borderline", func() {
			p := profile.Profile{
				GPA:           16.0,
				LanguageScore: 6.0,
				Level:         profile.LevelPhD,
				PriorTier:     profile.Tier2,
			}

			Convey("Then a rank 15 candidate loses 30 points", func() {
				So(rules.TotalPenalty(p, 15), ShouldEqual, 30.0)
			})

			Convey("And a rank 35 candidate loses 20 points", func() {
				So(rules.TotalPenalty(p, 35), ShouldEqual, 20.0)
			})

			Convey("And a rank 200 candidate loses nothing", func() {
				So(rules.TotalPenalty(p, 200), ShouldEqual, 0.0)
			})
		})

		Convey("When a Master applicant has no papers", func() {
			p := profile.Profile{
				GPA:           16.0,
				LanguageScore: 7.0,
				PaperCount:    0,
				Level:         profile.LevelMaster,
				PriorTier:     profile.Tier2,
			}

			Convey("Then every candidate loses 30 points regardless of rank", func() {
				So(rules.TotalPenalty(p, 1), ShouldEqual, 30.0)
				So(rules.TotalPenalty(p, 500), ShouldEqual, 30.0)
			})
		})

		Convey("When a Master applicant has one paper", func() {
			p := profile.Profile{
				GPA:           16.0,
				LanguageScore: 7.0,
				PaperCount:    1,
				Level:         profile.LevelMaster,
				PriorTier:     profile.Tier2,
			}

			Convey("Then only top-50 candidates lose 10 points", func() {
				So(rules.TotalPenalty(p, 50), ShouldEqual, 10.0)
				So(rules.TotalPenalty(p, 51), ShouldEqual, 0.0)
			})
		})

		Convey("When penalties overlap they stack additively", func() {
			p := profile.Profile{
				GPA:           16.0,
				LanguageScore: 5.5,
				PaperCount:    0,
				Level:         profile.LevelMaster,
				PriorTier:     profile.Tier2,
			}

			Convey("Then a rank 10 candidate loses 60 points before clamping", func() {
				So(rules.TotalPenalty(p, 10), ShouldEqual, 60.0)

				applied := rules.Penalties(p, 10)
				So(len(applied), ShouldEqual, 2)
				So(applied[0].Rule, ShouldEqual, rules.RuleLanguageEliteRank)
				So(applied[1].Rule, ShouldEqual, rules.RuleMasterNoPapers)
			})
		})

		Convey("When the profile is a Bachelor with a solid language score", func() {
			p := profile.Profile{
				GPA:           16.0,
				LanguageScore: 7.0,
				Level:         profile.LevelBachelor,
				PriorTier:     profile.Tier2,
			}

			Convey("Then no penalty applies at any rank", func() {
				So(rules.Penalties(p, 1), ShouldBeEmpty)
				So(rules.Penalties(p, 100), ShouldBeEmpty)
			})
		})
	})
}

func TestClampChance(t *testing.T) {
	Convey("Given raw chances from the model and penalty stage", t, func() {
		Convey("When the value is inside the range", func() {
			So(rules.ClampChance(42.34), ShouldEqual, 42.3)
			So(rules.ClampChance(42.35), ShouldAlmostEqual, 42.4, 1e-9)
		})

		Convey("When the value exceeds the ceiling", func() {
			So(rules.ClampChance(123.4), ShouldEqual, 99.0)
			So(rules.ClampChance(99.01), ShouldEqual, 99.0)
		})

		Convey("When the value is below zero after stacked penalties", func() {
			So(rules.ClampChance(-17.5), ShouldEqual, 0.0)
		})

		Convey("Then the result always carries at most one decimal", func() {
			for _, raw := range []float64{-3.14159, 0.049, 4.999, 38.88, 74.96, 101.5} {
				c := rules.ClampChance(raw)
				So(c, ShouldBeGreaterThanOrEqualTo, 0.0)
				So(c, ShouldBeLessThanOrEqualTo, 99.0)
				So(c*10, ShouldAlmostEqual, float64(int64(c*10+0.5)), 1e-6)
			}
		})
	})
}

package app_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/exti/admitly/internal/adapters/repository"
	"github.com/exti/admitly/internal/app"
	"github.com/exti/admitly/internal/domain/model"
	"github.com/exti/admitly/internal/domain/profile"
	"github.com/exti/admitly/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMain(m *testing.M) {
	if err := logger.Init(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

// stubModel maps a catalog entry's difficulty to a fixed probability, which
// lets tests steer each university into a chosen band.
type stubModel struct {
	probs map[float64]float64
	err   error
	calls int
}

func (m *stubModel) PredictProbability(_ context.Context, f model.Features) (float64, error) {
	m.calls++
	if m.err != nil {
		return 0, m.err
	}
	return m.probs[f.Difficulty], nil
}

func intPtr(v int) *int { return &v }

func testStore() repository.Store {
	store, err := repository.NewInMemoryStore([]repository.Entry{
		{University: "Alpha", Country: "USA", Rank: 1, Difficulty: 10, ResearchScore: intPtr(99)},
		{University: "Beta", Country: "USA", Rank: 2, Difficulty: 11},
		{University: "Gamma", Country: "USA", Rank: 3, Difficulty: 12},
		{University: "Delta", Country: "UK", Rank: 4, Difficulty: 13},
		{University: "Echo", Country: "UK", Rank: 5, Difficulty: 14},
		{University: "Foxtrot", Country: "UK", Rank: 6, Difficulty: 15},
		{University: "Golf", Country: "Canada", Rank: 7, Difficulty: 16},
		{University: "Hotel", Country: "Canada", Rank: 8, Difficulty: 17},
	})
	if err != nil {
		panic(err)
	}
	return store
}

func cleanProfile() profile.Profile {
	return profile.Profile{
		GPA:           17.0,
		LanguageScore: 7.0,
		PaperCount:    2,
		Level:         profile.LevelMaster,
		PriorTier:     profile.Tier2,
	}
}

func TestServiceLifecycle(t *testing.T) {
	Convey("Given service construction", t, func() {
		ctx := context.Background()

		Convey("When started without a catalog", func() {
			svc := app.New(app.WithModel(&stubModel{}))
			So(errors.Is(svc.Start(ctx), app.ErrNoCatalog), ShouldBeTrue)
		})

		Convey("When started without a model", func() {
			svc := app.New(app.WithCatalog(testStore()))
			So(errors.Is(svc.Start(ctx), app.ErrNoModel), ShouldBeTrue)
		})

		Convey("When evaluating before start", func() {
			svc := app.New(app.WithCatalog(testStore()), app.WithModel(&stubModel{}))
			_, err := svc.Evaluate(ctx, cleanProfile())
			So(errors.Is(err, app.ErrNotStarted), ShouldBeTrue)
		})

		Convey("When fully configured", func() {
			svc := app.New(app.WithCatalog(testStore()), app.WithModel(&stubModel{}))
			So(svc.Start(ctx), ShouldBeNil)

			Convey("Then starting again is a no-op", func() {
				So(svc.Start(ctx), ShouldBeNil)
			})

			Convey("And stopping disables queries", func() {
				svc.Stop()
				_, err := svc.Evaluate(ctx, cleanProfile())
				So(errors.Is(err, app.ErrNotStarted), ShouldBeTrue)
			})
		})
	})
}

func TestEvaluate(t *testing.T) {
	Convey("Given a started service over a banded stub model", t, func() {
		ctx := context.Background()
		stub := &stubModel{probs: map[float64]float64{
			10: 0.30, // Alpha: dream
			11: 0.35, // Beta: dream
			12: 0.38, // Gamma: dream, best chance
			13: 0.50, // Delta: target
			14: 0.55, // Echo: target
			15: 0.60, // Foxtrot: target, worst rank
			16: 0.80, // Golf: safety
			17: 0.02, // Hotel: below the relevance floor
		}}
		svc := app.New(app.WithCatalog(testStore()), app.WithModel(stub))
		So(svc.Start(ctx), ShouldBeNil)

		Convey("When evaluating a clean profile", func() {
			result, err := svc.Evaluate(ctx, cleanProfile())
			So(err, ShouldBeNil)
			So(result.QueryID, ShouldNotBeEmpty)
			So(result.Rejection, ShouldBeNil)

			Convey("Then the country cap keeps two per band and country", func() {
				So(len(result.Dream), ShouldEqual, 2)
				So(len(result.Target), ShouldEqual, 2)
				So(len(result.Safety), ShouldEqual, 1)
			})

			Convey("And dream candidates are ordered by chance descending", func() {
				So(result.Dream[0].University.University, ShouldEqual, "Gamma")
				So(result.Dream[1].University.University, ShouldEqual, "Beta")
				So(result.Dream[0].Chance, ShouldEqual, 38.0)
			})

			Convey("And target candidates are ordered by rank ascending", func() {
				So(result.Target[0].University.University, ShouldEqual, "Delta")
				So(result.Target[1].University.University, ShouldEqual, "Echo")
			})

			Convey("And sub-threshold candidates are dropped entirely", func() {
				all := append(append(result.Dream, result.Target...), result.Safety...)
				for _, c := range all {
					So(c.University.University, ShouldNotEqual, "Hotel")
					So(c.Chance, ShouldBeGreaterThanOrEqualTo, 5.0)
				}
			})

			Convey("And catalog metadata passes through", func() {
				found := false
				for _, c := range result.Dream {
					if c.University.University == "Alpha" {
						found = true
					}
				}
				So(found, ShouldBeFalse) // third-best USA dream pick is cut

				So(result.Safety[0].University.Country, ShouldEqual, "Canada")
			})
		})

		Convey("When the profile fails an eligibility floor", func() {
			rejected := cleanProfile()
			rejected.LanguageScore = 5.5
			stub.calls = 0

			result, err := svc.Evaluate(ctx, rejected)
			So(err, ShouldBeNil)

			Convey("Then the rejection is a value, not an error", func() {
				So(result.Rejection, ShouldNotBeNil)
				So(result.Rejection.Rule, ShouldNotBeEmpty)
				So(result.Dream, ShouldBeEmpty)
				So(result.Target, ShouldBeEmpty)
				So(result.Safety, ShouldBeEmpty)
			})

			Convey("And the model is never consulted", func() {
				So(stub.calls, ShouldEqual, 0)
			})
		})

		Convey("When the profile is malformed", func() {
			bad := cleanProfile()
			bad.GPA = 25
			_, err := svc.Evaluate(ctx, bad)
			So(errors.Is(err, profile.ErrInvalidProfile), ShouldBeTrue)
		})

		Convey("When evaluating the same profile twice", func() {
			first, err1 := svc.Evaluate(ctx, cleanProfile())
			second, err2 := svc.Evaluate(ctx, cleanProfile())
			So(err1, ShouldBeNil)
			So(err2, ShouldBeNil)

			Convey("Then only the query identifier differs", func() {
				So(first.QueryID, ShouldNotEqual, second.QueryID)
				So(first.Dream, ShouldResemble, second.Dream)
				So(first.Target, ShouldResemble, second.Target)
				So(first.Safety, ShouldResemble, second.Safety)
			})
		})
	})
}

func TestEvaluatePenalties(t *testing.T) {
	Convey("Given a profile that attracts soft penalties", t, func() {
		ctx := context.Background()
		store, err := repository.NewInMemoryStore([]repository.Entry{
			{University: "Solo", Country: "USA", Rank: 40, Difficulty: 10},
		})
		So(err, ShouldBeNil)

		stub := &stubModel{probs: map[float64]float64{10: 0.50}}
		svc := app.New(app.WithCatalog(store), app.WithModel(stub))
		So(svc.Start(ctx), ShouldBeNil)

		Convey("When a Master applicant has no publications", func() {
			p := cleanProfile()
			p.PaperCount = 0

			result, err := svc.Evaluate(ctx, p)
			So(err, ShouldBeNil)

			Convey("Then the penalty is subtracted from the model chance", func() {
				So(len(result.Dream), ShouldEqual, 1)
				So(result.Dream[0].Chance, ShouldEqual, 20.0)
			})
		})
	})
}

func TestEvaluateInferenceFault(t *testing.T) {
	Convey("Given a model that faults", t, func() {
		ctx := context.Background()

		Convey("When inference returns an error", func() {
			stub := &stubModel{err: model.ErrInference}
			svc := app.New(app.WithCatalog(testStore()), app.WithModel(stub))
			So(svc.Start(ctx), ShouldBeNil)

			result, err := svc.Evaluate(ctx, cleanProfile())

			Convey("Then the query aborts with no partial results", func() {
				So(errors.Is(err, model.ErrInference), ShouldBeTrue)
				So(result.QueryID, ShouldBeEmpty)
				So(result.Dream, ShouldBeEmpty)
			})
		})

		Convey("When inference returns an out-of-range probability", func() {
			stub := &stubModel{probs: map[float64]float64{10: 1.7}}
			store, err := repository.NewInMemoryStore([]repository.Entry{
				{University: "Solo", Country: "USA", Rank: 1, Difficulty: 10},
			})
			So(err, ShouldBeNil)
			svc := app.New(app.WithCatalog(store), app.WithModel(stub))
			So(svc.Start(ctx), ShouldBeNil)

			_, evalErr := svc.Evaluate(ctx, cleanProfile())
			So(errors.Is(evalErr, model.ErrInference), ShouldBeTrue)
		})
	})
}

func TestCatalogTop(t *testing.T) {
	Convey("Given a started service", t, func() {
		ctx := context.Background()
		svc := app.New(app.WithCatalog(testStore()), app.WithModel(&stubModel{}))
		So(svc.Start(ctx), ShouldBeNil)

		Convey("When requesting the top three", func() {
			top, err := svc.CatalogTop(ctx, 3)
			So(err, ShouldBeNil)
			So(len(top), ShouldEqual, 3)
			So(top[0].University, ShouldEqual, "Alpha")
			So(top[0].Rank, ShouldEqual, 1)
		})

		Convey("When requesting more than the catalog holds", func() {
			top, err := svc.CatalogTop(ctx, 100)
			So(err, ShouldBeNil)
			So(len(top), ShouldEqual, 8)
		})

		Convey("When the limit is not positive", func() {
			_, err := svc.CatalogTop(ctx, 0)
			So(errors.Is(err, repository.ErrInvalidLimit), ShouldBeTrue)
		})
	})
}

func TestGetStats(t *testing.T) {
	Convey("Given a started service", t, func() {
		ctx := context.Background()
		stub := &stubModel{probs: map[float64]float64{
			10: 0.3, 11: 0.3, 12: 0.3, 13: 0.3, 14: 0.3, 15: 0.3, 16: 0.3, 17: 0.3,
		}}
		svc := app.New(app.WithCatalog(testStore()), app.WithModel(stub))
		So(svc.Start(ctx), ShouldBeNil)

		Convey("When queries have run", func() {
			_, err := svc.Evaluate(ctx, cleanProfile())
			So(err, ShouldBeNil)

			rejected := cleanProfile()
			rejected.GPA = 12.0
			_, err = svc.Evaluate(ctx, rejected)
			So(err, ShouldBeNil)

			Convey("Then the stats reflect them", func() {
				stats := svc.GetStats()
				So(stats["started"], ShouldBeTrue)
				So(stats["queriesEvaluated"], ShouldEqual, int64(1))
				So(stats["hardRejects"], ShouldEqual, int64(1))
				So(stats["catalogSize"], ShouldEqual, 8)
			})
		})
	})
}

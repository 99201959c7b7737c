package repository_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/smartystreets/goconvey/convey"

	"github.com/okian/offerlens/internal/adapters/repository"
	"github.com/okian/offerlens/internal/domain/model"
)

func record(hash string, totalComp float64) model.SalaryRecord {
	return model.SalaryRecord{
		ID:              hash,
		NormalizedTitle: "software_engineer",
		LocationTier:    model.Tier2,
		BaseSalary:      totalComp,
		TotalComp:       totalComp,
		YearsExperience: 5,
		SubmissionHash:  hash,
		IsVerified:      true,
	}
}

func TestMemStoreInsert(t *testing.T) {
	convey.Convey("Given an in-memory store with a 24h dedupe window", t, func() {
		ctx := context.Background()
		now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
		clock := func() time.Time { return now }
		store := repository.NewMemStore(
			repository.WithDedupeWindow(24*time.Hour),
			repository.WithClock(clock),
		)

		convey.Convey("When inserting a fresh record", func() {
			outcome, err := store.Insert(ctx, record("h1", 100_000))

			convey.Convey("Then it is accepted", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(outcome, convey.ShouldEqual, repository.OutcomeAccepted)
			})
		})

		convey.Convey("When re-inserting the same hash within the window", func() {
			_, err := store.Insert(ctx, record("h1", 100_000))
			convey.So(err, convey.ShouldBeNil)

			now = now.Add(23 * time.Hour)
			outcome, err := store.Insert(ctx, record("h1", 100_000))

			convey.Convey("Then it is reported duplicate without erroring", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(outcome, convey.ShouldEqual, repository.OutcomeDuplicate)
			})

			convey.Convey("And the store keeps a single record", func() {
				n, err := store.Count(ctx)
				convey.So(err, convey.ShouldBeNil)
				convey.So(n, convey.ShouldEqual, 1)
			})
		})

		convey.Convey("When re-inserting the same hash after the window", func() {
			_, err := store.Insert(ctx, record("h1", 100_000))
			convey.So(err, convey.ShouldBeNil)

			now = now.Add(25 * time.Hour)
			outcome, err := store.Insert(ctx, record("h1", 100_000))

			convey.Convey("Then it is accepted again", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(outcome, convey.ShouldEqual, repository.OutcomeAccepted)
			})
		})

		convey.Convey("When inserting distinct hashes", func() {
			for i := 0; i < 3; i++ {
				outcome, err := store.Insert(ctx, record(fmt.Sprintf("h%d", i), 100_000))
				convey.So(err, convey.ShouldBeNil)
				convey.So(outcome, convey.ShouldEqual, repository.OutcomeAccepted)
			}

			n, err := store.Count(ctx)
			convey.So(err, convey.ShouldBeNil)
			convey.So(n, convey.ShouldEqual, 3)
		})

		convey.Convey("When the store is closed", func() {
			convey.So(store.Close(), convey.ShouldBeNil)

			_, err := store.Insert(ctx, record("h1", 100_000))
			convey.So(err, convey.ShouldEqual, repository.ErrClosed)

			_, err = store.Aggregate(ctx, repository.Query{NormalizedTitle: "software_engineer"})
			convey.So(err, convey.ShouldEqual, repository.ErrClosed)
		})
	})
}

func TestMemStoreAggregate(t *testing.T) {
	convey.Convey("Given a store with known totals", t, func() {
		ctx := context.Background()
		store := repository.NewMemStore()

		for i, total := range []float64{100_000, 200_000, 300_000, 400_000} {
			_, err := store.Insert(ctx, record(fmt.Sprintf("h%d", i), total))
			convey.So(err, convey.ShouldBeNil)
		}

		convey.Convey("When aggregating by title", func() {
			res, err := store.Aggregate(ctx, repository.Query{NormalizedTitle: "software_engineer"})
			convey.So(err, convey.ShouldBeNil)

			convey.Convey("Then percentiles interpolate like percentile_cont", func() {
				convey.So(res.SampleSize, convey.ShouldEqual, 4)
				convey.So(*res.P10, convey.ShouldAlmostEqual, 130_000)
				convey.So(*res.P25, convey.ShouldAlmostEqual, 175_000)
				convey.So(*res.P50, convey.ShouldAlmostEqual, 250_000)
				convey.So(*res.P75, convey.ShouldAlmostEqual, 325_000)
				convey.So(*res.P90, convey.ShouldAlmostEqual, 370_000)
			})

			convey.Convey("Then averages cover the matched rows", func() {
				convey.So(*res.AvgBase, convey.ShouldAlmostEqual, 250_000)
			})
		})

		convey.Convey("When a single record matches", func() {
			_, err := store.Insert(ctx, model.SalaryRecord{
				NormalizedTitle: "data_scientist",
				LocationTier:    model.Tier1,
				TotalComp:       150_000,
				SubmissionHash:  "solo",
				IsVerified:      true,
			})
			convey.So(err, convey.ShouldBeNil)

			res, err := store.Aggregate(ctx, repository.Query{NormalizedTitle: "data_scientist"})
			convey.So(err, convey.ShouldBeNil)

			convey.Convey("Then every percentile equals the single value", func() {
				convey.So(res.SampleSize, convey.ShouldEqual, 1)
				convey.So(*res.P10, convey.ShouldEqual, 150_000)
				convey.So(*res.P90, convey.ShouldEqual, 150_000)
			})
		})

		convey.Convey("When nothing matches", func() {
			res, err := store.Aggregate(ctx, repository.Query{NormalizedTitle: "product_manager"})
			convey.So(err, convey.ShouldBeNil)

			convey.Convey("Then percentiles stay nil instead of zero", func() {
				convey.So(res.SampleSize, convey.ShouldEqual, 0)
				convey.So(res.P25, convey.ShouldBeNil)
				convey.So(res.P50, convey.ShouldBeNil)
				convey.So(res.P90, convey.ShouldBeNil)
			})
		})
	})

	convey.Convey("Given records with varying attributes", t, func() {
		ctx := context.Background()
		base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		store := repository.NewMemStore()

		insert := func(hash string, tier model.LocationTier, years float64, verified bool, at time.Time) {
			rec := record(hash, 100_000)
			rec.LocationTier = tier
			rec.YearsExperience = years
			rec.IsVerified = verified
			rec.SubmittedAt = at
			_, err := store.Insert(ctx, rec)
			convey.So(err, convey.ShouldBeNil)
		}

		insert("a", model.Tier1, 5, true, base)
		insert("b", model.Tier2, 5, true, base)
		insert("c", model.Tier1, 12, true, base)
		insert("d", model.Tier1, 5, false, base)
		insert("e", model.Tier1, 5, true, base.Add(-48*time.Hour))

		convey.Convey("When filtering by tier, experience, verification and recency", func() {
			res, err := store.Aggregate(ctx, repository.Query{
				NormalizedTitle:  "software_engineer",
				FilterTier:       true,
				LocationTier:     model.Tier1,
				FilterExperience: true,
				MinExperience:    3,
				MaxExperience:    7,
				VerifiedOnly:     true,
				Since:            base.Add(-24 * time.Hour),
			})
			convey.So(err, convey.ShouldBeNil)

			convey.Convey("Then only the fully matching record remains", func() {
				convey.So(res.SampleSize, convey.ShouldEqual, 1)
			})
		})

		convey.Convey("When dropping the filters", func() {
			res, err := store.Aggregate(ctx, repository.Query{NormalizedTitle: "software_engineer"})
			convey.So(err, convey.ShouldBeNil)

			convey.Convey("Then all records match", func() {
				convey.So(res.SampleSize, convey.ShouldEqual, 5)
			})
		})
	})
}

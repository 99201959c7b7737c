package app_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/smartystreets/goconvey/convey"

	"github.com/okian/offerlens/internal/adapters/repository"
	app "github.com/okian/offerlens/internal/app"
	"github.com/okian/offerlens/internal/domain/contribution"
	"github.com/okian/offerlens/internal/domain/model"
	"github.com/okian/offerlens/pkg/logger"
)

func startedService(t *testing.T, opts ...app.Option) *app.Service {
	t.Helper()
	_ = logger.Init()

	svc := app.New(opts...)
	if err := svc.Start(context.Background()); err != nil {
		t.Fatalf("start service: %v", err)
	}
	t.Cleanup(svc.Stop)
	return svc
}

// seedContributions feeds verified submissions through the write path so
// the read path has market data to aggregate.
func seedContributions(ctx context.Context, svc *app.Service, n int) error {
	for i := 0; i < n; i++ {
		_, err := svc.Contribute(ctx, contribution.Submission{
			Company:         "Acme Corp",
			JobTitle:        "Software Engineer",
			Location:        "Remote",
			BaseSalary:      120_000 + float64(i)*5_000,
			YearsExperience: 5,
			TechStack:       []string{"go", "postgres"},
		})
		if err != nil {
			return fmt.Errorf("seed %d: %w", i, err)
		}
	}
	return nil
}

func TestAnalyzeOffer(t *testing.T) {
	convey.Convey("Given a service seeded with market data", t, func() {
		ctx := context.Background()
		svc := startedService(t)
		convey.So(seedContributions(ctx, svc, 8), convey.ShouldBeNil)

		convey.Convey("When analyzing a below-market offer", func() {
			result, err := svc.AnalyzeOffer(ctx, model.OfferProfile{
				JobTitle:        "Software Engineer",
				Company:         "Acme Corp",
				Location:        "Remote",
				BaseSalary:      90_000,
				YearsExperience: 5,
				TechStack:       []string{"go"},
			})
			convey.So(err, convey.ShouldBeNil)

			convey.Convey("Then the verdict places the offer against the bands", func() {
				convey.So(result.Verdict, convey.ShouldNotEqual, model.VerdictInsufficientData)
				convey.So(result.Verdict.Rank(), convey.ShouldBeGreaterThanOrEqualTo, 0)
				convey.So(result.TotalCompensation, convey.ShouldEqual, 90_000)
			})

			convey.Convey("Then negotiation targets are attached and ordered", func() {
				convey.So(result.NegotiationRoom, convey.ShouldNotBeNil)
				convey.So(result.NegotiationRoom.Conservative, convey.ShouldBeLessThanOrEqualTo, result.NegotiationRoom.Realistic)
				convey.So(result.NegotiationRoom.Realistic, convey.ShouldBeLessThanOrEqualTo, result.NegotiationRoom.Aggressive)
			})

			convey.Convey("Then recommendations end with the research follow-up", func() {
				convey.So(len(result.Recommendations), convey.ShouldBeGreaterThan, 0)
				last := result.Recommendations[len(result.Recommendations)-1]
				convey.So(last.Action, convey.ShouldEqual, "continue_research")
			})

			convey.Convey("Then a narrative is always present", func() {
				convey.So(result.Narrative, convey.ShouldNotBeEmpty)
			})

			convey.Convey("Then wage compliance passes vacuously for an uncovered location", func() {
				convey.So(result.WageCompliance, convey.ShouldNotBeNil)
				convey.So(result.WageCompliance.Applies, convey.ShouldBeFalse)
				convey.So(result.WageCompliance.Complies, convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the base salary falls below the regional minimum wage", func() {
			result, err := svc.AnalyzeOffer(ctx, model.OfferProfile{
				JobTitle:        "Software Engineer",
				Location:        "Austin, TX",
				BaseSalary:      14_000,
				YearsExperience: 1,
			})
			convey.So(err, convey.ShouldBeNil)

			convey.Convey("Then compliance is flagged and leads the recommendations", func() {
				convey.So(result.WageCompliance, convey.ShouldNotBeNil)
				convey.So(result.WageCompliance.Applies, convey.ShouldBeTrue)
				convey.So(result.WageCompliance.Complies, convey.ShouldBeFalse)
				convey.So(result.Recommendations[0].Priority, convey.ShouldEqual, "critical")
				convey.So(result.Recommendations[0].Action, convey.ShouldEqual, "verify_minimum_wage")
				convey.So(*result.Recommendations[0].Target, convey.ShouldEqual, 15_080)
			})

			convey.Convey("Then the narrative names the wage floor", func() {
				convey.So(result.Narrative, convey.ShouldContainSubstring, "minimum wage")
			})
		})

		convey.Convey("When analyzing a role nobody contributed", func() {
			result, err := svc.AnalyzeOffer(ctx, model.OfferProfile{
				JobTitle:        "Quantitative Researcher",
				Location:        "Remote",
				BaseSalary:      150_000,
				YearsExperience: 5,
			})
			convey.So(err, convey.ShouldBeNil)

			convey.Convey("Then the insufficient-data path leaves no negotiation room", func() {
				convey.So(result.Verdict, convey.ShouldEqual, model.VerdictInsufficientData)
				convey.So(result.NegotiationRoom, convey.ShouldBeNil)
				convey.So(result.MarketData.HasPercentiles(), convey.ShouldBeFalse)
			})

			convey.Convey("Then a narrative still accompanies the result", func() {
				convey.So(result.Narrative, convey.ShouldNotBeEmpty)
			})
		})

		convey.Convey("When the offer is malformed", func() {
			_, err := svc.AnalyzeOffer(ctx, model.OfferProfile{Location: "Remote", BaseSalary: 100_000})

			convey.Convey("Then only this request fails, with the field named", func() {
				var verr *contribution.ValidationError
				convey.So(errors.As(err, &verr), convey.ShouldBeTrue)
				convey.So(verr.Field, convey.ShouldEqual, "job_title")
			})
		})

		convey.Convey("When drafting a negotiation email", func() {
			offer := model.OfferProfile{
				JobTitle:        "Software Engineer",
				Location:        "Remote",
				BaseSalary:      90_000,
				YearsExperience: 5,
			}
			result, err := svc.AnalyzeOffer(ctx, offer)
			convey.So(err, convey.ShouldBeNil)

			draft, err := svc.EmailDraft(ctx, offer, result)
			convey.So(err, convey.ShouldBeNil)
			convey.So(draft, convey.ShouldContainSubstring, "Subject:")
		})
	})
}

func TestContribute(t *testing.T) {
	convey.Convey("Given a started service", t, func() {
		ctx := context.Background()
		svc := startedService(t, app.WithDedupeWindow(24*time.Hour))

		sub := contribution.Submission{
			Company:         "Acme Corp",
			JobTitle:        "Software Engineer",
			Location:        "Austin, TX",
			BaseSalary:      130_000,
			YearsExperience: 5,
			TechStack:       []string{"go"},
		}

		convey.Convey("When submitting a complete contribution", func() {
			receipt, err := svc.Contribute(ctx, sub)
			convey.So(err, convey.ShouldBeNil)

			convey.Convey("Then it is accepted with full confidence", func() {
				convey.So(receipt.Status, convey.ShouldEqual, repository.OutcomeAccepted)
				convey.So(receipt.ConfidenceScore, convey.ShouldEqual, 1.0)
				convey.So(receipt.DataQuality, convey.ShouldEqual, "high")
				convey.So(receipt.Message, convey.ShouldNotBeEmpty)
			})
		})

		convey.Convey("When submitting the same data twice", func() {
			first, err := svc.Contribute(ctx, sub)
			convey.So(err, convey.ShouldBeNil)
			convey.So(first.Status, convey.ShouldEqual, repository.OutcomeAccepted)

			second, err := svc.Contribute(ctx, sub)
			convey.So(err, convey.ShouldBeNil)

			convey.Convey("Then the second submission reports duplicate, not an error", func() {
				convey.So(second.Status, convey.ShouldEqual, repository.OutcomeDuplicate)
				convey.So(second.Message, convey.ShouldNotBeEmpty)
			})
		})

		convey.Convey("When the company differs but the identity fields match", func() {
			first, err := svc.Contribute(ctx, sub)
			convey.So(err, convey.ShouldBeNil)
			convey.So(first.Status, convey.ShouldEqual, repository.OutcomeAccepted)

			other := sub
			other.Company = "Different Corp"
			second, err := svc.Contribute(ctx, other)
			convey.So(err, convey.ShouldBeNil)

			convey.Convey("Then it still deduplicates; company is outside the identity", func() {
				convey.So(second.Status, convey.ShouldEqual, repository.OutcomeDuplicate)
			})
		})

		convey.Convey("When a field is invalid", func() {
			bad := sub
			bad.BaseSalary = 5_000
			_, err := svc.Contribute(ctx, bad)

			convey.Convey("Then the receipt is withheld and the field named", func() {
				var verr *contribution.ValidationError
				convey.So(errors.As(err, &verr), convey.ShouldBeTrue)
				convey.So(verr.Field, convey.ShouldEqual, "base_salary")
			})
		})

		convey.Convey("When a sparse but valid submission arrives", func() {
			sparse := contribution.Submission{
				JobTitle:        "Software Engineer",
				Location:        "Remote",
				BaseSalary:      900_000,
				YearsExperience: 2,
			}
			receipt, err := svc.Contribute(ctx, sparse)
			convey.So(err, convey.ShouldBeNil)

			convey.Convey("Then it is accepted with low quality instead of rejected", func() {
				convey.So(receipt.Status, convey.ShouldEqual, repository.OutcomeAccepted)
				convey.So(receipt.ConfidenceScore, convey.ShouldEqual, 0.0)
				convey.So(receipt.DataQuality, convey.ShouldEqual, "low")
			})
		})
	})
}

func TestGetStats(t *testing.T) {
	convey.Convey("Given a started service", t, func() {
		ctx := context.Background()
		svc := startedService(t)
		convey.So(seedContributions(ctx, svc, 3), convey.ShouldBeNil)

		convey.Convey("When reading stats", func() {
			stats := svc.GetStats()

			convey.Convey("Then the record count and backend are reported", func() {
				convey.So(stats["started"], convey.ShouldBeTrue)
				convey.So(stats["total_records"], convey.ShouldEqual, 3)
				convey.So(stats["postgres_backend"], convey.ShouldBeFalse)
			})
		})
	})
}

func TestServiceLifecycle(t *testing.T) {
	convey.Convey("Given a new service", t, func() {
		_ = logger.Init()
		svc := app.New()

		convey.Convey("When started twice", func() {
			ctx := context.Background()
			convey.So(svc.Start(ctx), convey.ShouldBeNil)
			convey.So(svc.Start(ctx), convey.ShouldBeNil)
			svc.Stop()

			convey.Convey("Then repeated stops are harmless", func() {
				convey.So(svc.Stop, convey.ShouldNotPanic)
			})
		})
	})
}

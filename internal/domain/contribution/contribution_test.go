package contribution_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/smartystreets/goconvey/convey"

	"github.com/okian/offerlens/internal/domain/contribution"
)

func validSubmission() contribution.Submission {
	return contribution.Submission{
		Company:         "Acme Corp",
		JobTitle:        "Software Engineer",
		Location:        "Austin, TX",
		BaseSalary:      130_000,
		Bonus:           10_000,
		EquityValue:     20_000,
		YearsExperience: 5,
		TechStack:       []string{"go", "postgres"},
	}
}

func TestValidate(t *testing.T) {
	convey.Convey("Given submission validation", t, func() {
		convey.Convey("When the submission is well formed", func() {
			convey.So(contribution.Validate(validSubmission()), convey.ShouldBeNil)
		})

		convey.Convey("When a field violates a rule", func() {
			cases := []struct {
				mutate func(*contribution.Submission)
				field  string
			}{
				{func(s *contribution.Submission) { s.JobTitle = "" }, "job_title"},
				{func(s *contribution.Submission) { s.JobTitle = "ab" }, "job_title"},
				{func(s *contribution.Submission) { s.JobTitle = strings.Repeat("x", 201) }, "job_title"},
				{func(s *contribution.Submission) { s.Location = "" }, "location"},
				{func(s *contribution.Submission) { s.Location = "x" }, "location"},
				{func(s *contribution.Submission) { s.BaseSalary = 0 }, "base_salary"},
				{func(s *contribution.Submission) { s.BaseSalary = 10_000 }, "base_salary"},
				{func(s *contribution.Submission) { s.BaseSalary = 2_000_000 }, "base_salary"},
				{func(s *contribution.Submission) { s.YearsExperience = -1 }, "years_experience"},
				{func(s *contribution.Submission) { s.YearsExperience = 51 }, "years_experience"},
				{func(s *contribution.Submission) { s.Bonus = -1 }, "bonus"},
				{func(s *contribution.Submission) { s.EquityValue = 1_500_000 }, "equity_value"},
			}

			convey.Convey("Then the error names the offending field", func() {
				for _, tc := range cases {
					sub := validSubmission()
					tc.mutate(&sub)
					err := contribution.Validate(sub)
					convey.So(err, convey.ShouldNotBeNil)

					var verr *contribution.ValidationError
					convey.So(errors.As(err, &verr), convey.ShouldBeTrue)
					convey.So(verr.Field, convey.ShouldEqual, tc.field)
				}
			})
		})

		convey.Convey("When the salary is outside the experience band but inside the global band", func() {
			sub := validSubmission()
			sub.BaseSalary = 900_000

			convey.Convey("Then validation still passes; plausibility only affects scoring", func() {
				convey.So(contribution.Validate(sub), convey.ShouldBeNil)
			})
		})
	})
}

func TestConfidenceScore(t *testing.T) {
	convey.Convey("Given confidence scoring", t, func() {
		convey.Convey("When all three checks pass", func() {
			convey.So(contribution.ConfidenceScore(validSubmission()), convey.ShouldEqual, 1.0)
		})

		convey.Convey("When checks fail independently", func() {
			noCompany := validSubmission()
			noCompany.Company = "  "
			convey.So(contribution.ConfidenceScore(noCompany), convey.ShouldAlmostEqual, 2.0/3.0)

			noStack := validSubmission()
			noStack.TechStack = nil
			convey.So(contribution.ConfidenceScore(noStack), convey.ShouldAlmostEqual, 2.0/3.0)

			implausible := validSubmission()
			implausible.BaseSalary = 900_000
			convey.So(contribution.ConfidenceScore(implausible), convey.ShouldAlmostEqual, 2.0/3.0)
		})

		convey.Convey("When everything fails", func() {
			sub := contribution.Submission{JobTitle: "Engineer", Location: "Remote", BaseSalary: 900_000}
			convey.So(contribution.ConfidenceScore(sub), convey.ShouldEqual, 0.0)
		})

		convey.Convey("When checking the plausibility band", func() {
			min, max := contribution.PlausibleBand(5)
			convey.So(min, convey.ShouldEqual, 90_000)
			convey.So(max, convey.ShouldEqual, 250_000)
		})

		convey.Convey("When gating verification", func() {
			convey.So(contribution.IsVerified(1.0), convey.ShouldBeTrue)
			convey.So(contribution.IsVerified(2.0/3.0), convey.ShouldBeFalse)
			convey.So(contribution.IsVerified(contribution.VerifiedThreshold), convey.ShouldBeTrue)
		})
	})
}

func TestHash(t *testing.T) {
	convey.Convey("Given submission fingerprinting", t, func() {
		base := validSubmission()

		convey.Convey("Then hashing is deterministic", func() {
			convey.So(contribution.Hash(base), convey.ShouldEqual, contribution.Hash(base))
		})

		convey.Convey("Then casing and whitespace do not change the hash", func() {
			variant := base
			variant.JobTitle = "  SOFTWARE engineer "
			variant.Location = "AUSTIN, tx"
			convey.So(contribution.Hash(variant), convey.ShouldEqual, contribution.Hash(base))
		})

		convey.Convey("Then fields outside the identity do not change the hash", func() {
			variant := base
			variant.Company = "Different Corp"
			variant.Bonus = 50_000
			variant.EquityValue = 0
			variant.TechStack = nil
			convey.So(contribution.Hash(variant), convey.ShouldEqual, contribution.Hash(base))
		})

		convey.Convey("Then identity fields change the hash", func() {
			salary := base
			salary.BaseSalary = 131_000
			convey.So(contribution.Hash(salary), convey.ShouldNotEqual, contribution.Hash(base))

			years := base
			years.YearsExperience = 6
			convey.So(contribution.Hash(years), convey.ShouldNotEqual, contribution.Hash(base))

			loc := base
			loc.Location = "Denver"
			convey.So(contribution.Hash(loc), convey.ShouldNotEqual, contribution.Hash(base))
		})

		convey.Convey("Then the output is a hex sha256 digest", func() {
			convey.So(contribution.Hash(base), convey.ShouldHaveLength, 64)
		})
	})
}

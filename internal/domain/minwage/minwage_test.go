package minwage_test

import (
	"testing"

	"github.com/smartystreets/goconvey/convey"

	"github.com/okian/offerlens/internal/domain/minwage"
)

func TestWageFor(t *testing.T) {
	convey.Convey("Given the default wage table", t, func() {
		checker := minwage.New(nil)

		convey.Convey("When the location matches a key exactly", func() {
			wage, ok := checker.WageFor("austin")
			convey.So(ok, convey.ShouldBeTrue)
			convey.So(wage, convey.ShouldEqual, 15_080)
		})

		convey.Convey("When the key appears inside a longer location", func() {
			wage, ok := checker.WageFor("Austin, TX")
			convey.So(ok, convey.ShouldBeTrue)
			convey.So(wage, convey.ShouldEqual, 15_080)

			wage, ok = checker.WageFor("New York City")
			convey.So(ok, convey.ShouldBeTrue)
			convey.So(wage, convey.ShouldEqual, 33_300)
		})

		convey.Convey("When a short key is used", func() {
			convey.Convey("Then it matches as a whole word", func() {
				wage, ok := checker.WageFor("NYC")
				convey.So(ok, convey.ShouldBeTrue)
				convey.So(wage, convey.ShouldEqual, 33_300)
			})
		})

		convey.Convey("When no entry covers the location", func() {
			_, ok := checker.WageFor("Boise, ID")
			convey.So(ok, convey.ShouldBeFalse)

			_, ok = checker.WageFor("")
			convey.So(ok, convey.ShouldBeFalse)
		})
	})

	convey.Convey("Given a custom wage table", t, func() {
		checker := minwage.New(map[string]float64{"Gotham": 50_000})

		convey.Convey("Then only its entries resolve", func() {
			wage, ok := checker.WageFor("Gotham City")
			convey.So(ok, convey.ShouldBeTrue)
			convey.So(wage, convey.ShouldEqual, 50_000)

			_, ok = checker.WageFor("Austin, TX")
			convey.So(ok, convey.ShouldBeFalse)
		})
	})
}

func TestCheck(t *testing.T) {
	convey.Convey("Given the default wage table", t, func() {
		checker := minwage.New(nil)

		convey.Convey("When the base salary sits below the floor", func() {
			comp := checker.Check("Austin, TX", 14_000)

			convey.Convey("Then the offer is flagged with the shortfall quantified", func() {
				convey.So(comp.Applies, convey.ShouldBeTrue)
				convey.So(comp.Complies, convey.ShouldBeFalse)
				convey.So(*comp.MinimumWage, convey.ShouldEqual, 15_080)
				convey.So(*comp.Difference, convey.ShouldAlmostEqual, -1_080)
				convey.So(*comp.PercentAboveMinimum, convey.ShouldAlmostEqual, -7.16, 0.01)
				convey.So(comp.Message, convey.ShouldContainSubstring, "below the regional minimum wage")
				convey.So(comp.Message, convey.ShouldContainSubstring, "$15,080")
			})
		})

		convey.Convey("When the base salary equals the floor", func() {
			comp := checker.Check("Austin, TX", 15_080)

			convey.So(comp.Complies, convey.ShouldBeTrue)
			convey.So(comp.Message, convey.ShouldContainSubstring, "Meets the regional minimum wage")
		})

		convey.Convey("When the base salary is moderately above the floor", func() {
			comp := checker.Check("Austin, TX", 20_000)

			convey.So(comp.Complies, convey.ShouldBeTrue)
			convey.So(comp.Message, convey.ShouldStartWith, "Above the regional minimum wage")
		})

		convey.Convey("When the base salary is far above the floor", func() {
			comp := checker.Check("Austin, TX", 130_000)

			convey.So(comp.Complies, convey.ShouldBeTrue)
			convey.So(comp.Message, convey.ShouldContainSubstring, "Significantly above")
		})

		convey.Convey("When the location has no wage entry", func() {
			comp := checker.Check("Remote", 10_000)

			convey.Convey("Then the check passes vacuously", func() {
				convey.So(comp.Applies, convey.ShouldBeFalse)
				convey.So(comp.Complies, convey.ShouldBeTrue)
				convey.So(comp.MinimumWage, convey.ShouldBeNil)
				convey.So(comp.Message, convey.ShouldContainSubstring, "No minimum-wage reference")
			})
		})
	})
}

package app

import "github.com/okian/offerlens/internal/domain/model"

const (
	bonusNegotiationFloor = 75_000
	signOnBonusFraction   = 0.15
)

// recommendations derives the ordered, rule-based follow-up list. Like
// the leverage scan, rules fire at most once and emission order is
// fixed.
func recommendations(offer model.OfferProfile, stats model.MarketStats, v model.Verdict, compliance model.WageCompliance) []model.Recommendation {
	var recs []model.Recommendation

	if compliance.Applies && !compliance.Complies {
		recs = append(recs, model.Recommendation{
			Priority:    "critical",
			Action:      "verify_minimum_wage",
			Description: "Base salary is below the regional minimum wage - verify the offer terms before negotiating",
			Target:      compliance.MinimumWage,
		})
	}

	if v == model.VerdictSignificantlyUnderpaid || v == model.VerdictUnderpaid {
		recs = append(recs, model.Recommendation{
			Priority:    "high",
			Action:      "negotiate_base",
			Description: "Base salary is below market rates - negotiate for market alignment",
			Target:      stats.P75,
		})
	}

	if offer.EquityValue == 0 {
		recs = append(recs, model.Recommendation{
			Priority:    "medium",
			Action:      "clarify_equity",
			Description: "Request equity grant details and valuation",
		})
	}

	if offer.Bonus == 0 && offer.BaseSalary > bonusNegotiationFloor {
		target := offer.BaseSalary * signOnBonusFraction
		recs = append(recs, model.Recommendation{
			Priority:    "medium",
			Action:      "negotiate_bonus",
			Description: "Negotiate performance bonus or sign-on bonus",
			Target:      &target,
		})
	}

	recs = append(recs, model.Recommendation{
		Priority:    "low",
		Action:      "continue_research",
		Description: "Continue researching market rates and company culture",
	})

	return recs
}

// Package leverage extracts structured negotiation arguments from an
// offer and its market context.
package leverage

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/okian/offerlens/internal/domain/model"
)

const (
	// TypeMarketRate flags a market median above the offered base.
	TypeMarketRate = "market_rate"
	// TypeTechPremium flags in-demand technologies in the stack.
	TypeTechPremium = "tech_premium"
	// TypeExperience flags seniority worth arguing with.
	TypeExperience = "experience"
	// TypeCompetition flags competing offers in hand.
	TypeCompetition = "competition"
)

const (
	seniorityThreshold = 5
	maxListedTech      = 3
)

// Extractor runs a fixed, ordered rule scan. Each rule fires at most
// once and the output order always follows the rule order, so results
// are stable for identical input.
type Extractor struct {
	techPremiums map[string]float64
}

// NewExtractor builds an Extractor using the given hot-technology table.
func NewExtractor(techPremiums map[string]float64) *Extractor {
	table := make(map[string]float64, len(techPremiums))
	for tech, premium := range techPremiums {
		table[strings.ToLower(tech)] = premium
	}
	return &Extractor{techPremiums: table}
}

// Extract produces the leverage points for an offer. The list is not
// re-sorted by strength.
func (e *Extractor) Extract(offer model.OfferProfile, stats model.MarketStats) []model.LeveragePoint {
	var points []model.LeveragePoint

	if stats.P50 != nil && *stats.P50 > offer.BaseSalary {
		gap := *stats.P50 - offer.BaseSalary
		points = append(points, model.LeveragePoint{
			Type:        TypeMarketRate,
			Description: fmt.Sprintf("Market median total compensation is $%s higher", humanize.Comma(int64(gap))),
			Strength:    model.StrengthStrong,
		})
	}

	if hot := e.matchingHotTech(offer.TechStack); len(hot) > 0 {
		points = append(points, model.LeveragePoint{
			Type:        TypeTechPremium,
			Description: fmt.Sprintf("Specialized in high-demand technologies: %s", strings.Join(hot, ", ")),
			Strength:    model.StrengthMedium,
		})
	}

	if offer.YearsExperience >= seniorityThreshold {
		points = append(points, model.LeveragePoint{
			Type:        TypeExperience,
			Description: fmt.Sprintf("%.0f+ years of solid experience", offer.YearsExperience),
			Strength:    model.StrengthMedium,
		})
	}

	if offer.HasCompetingOffers {
		points = append(points, model.LeveragePoint{
			Type:        TypeCompetition,
			Description: "Multiple offers in hand provides leverage",
			Strength:    model.StrengthStrong,
		})
	}

	return points
}

// matchingHotTech returns up to three stack entries present in the
// premium table, in stack order.
func (e *Extractor) matchingHotTech(stack []string) []string {
	var hot []string
	for _, tech := range stack {
		if _, ok := e.techPremiums[strings.ToLower(strings.TrimSpace(tech))]; ok {
			hot = append(hot, strings.ToLower(strings.TrimSpace(tech)))
			if len(hot) == maxListedTech {
				break
			}
		}
	}
	return hot
}

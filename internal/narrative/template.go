package narrative

import (
	"context"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/okian/offerlens/internal/domain/model"
)

// TemplateGenerator renders deterministic text from the structured
// analysis. It is the fallback when no language-model collaborator is
// configured or the collaborator fails, so it must never error.
type TemplateGenerator struct{}

// NewTemplateGenerator creates the deterministic fallback generator.
func NewTemplateGenerator() *TemplateGenerator {
	return &TemplateGenerator{}
}

// Analysis renders a plain-text assessment from the structured fields.
func (g *TemplateGenerator) Analysis(ctx context.Context, offer model.OfferProfile, result model.AnalysisResult) (string, error) {
	var b strings.Builder

	fmt.Fprintf(&b, "**OVERALL ASSESSMENT**\nThis offer is classified as %s.\n\n", titleCase(result.Verdict))

	b.WriteString("**COMPENSATION BREAKDOWN**\n")
	fmt.Fprintf(&b, "- Base Salary: %s\n", money(offer.BaseSalary))
	fmt.Fprintf(&b, "- Bonus: %s\n", money(offer.Bonus))
	fmt.Fprintf(&b, "- Equity: %s\n", money(offer.EquityValue))
	fmt.Fprintf(&b, "- Total Compensation: %s\n\n", money(result.TotalCompensation))

	if result.MarketData.P50 != nil {
		b.WriteString("**MARKET COMPARISON**\n")
		fmt.Fprintf(&b, "- Market Median (P50): %s\n", money(*result.MarketData.P50))
		if *result.MarketData.P50 > 0 {
			delta := (result.TotalCompensation / *result.MarketData.P50 - 1) * 100
			fmt.Fprintf(&b, "- Your Position: %+.1f%% from market median\n", delta)
		}
		b.WriteString("\n")
	} else {
		b.WriteString("**MARKET COMPARISON**\nNot enough verified market data for this role to place the offer.\n\n")
	}

	if result.WageCompliance != nil && result.WageCompliance.Applies {
		fmt.Fprintf(&b, "**MINIMUM WAGE**\n- %s\n\n", result.WageCompliance.Message)
	}

	if len(result.LeveragePoints) > 0 {
		b.WriteString("**NEGOTIATION LEVERAGE**\n")
		for _, p := range result.LeveragePoints {
			fmt.Fprintf(&b, "- [%s] %s\n", p.Strength, p.Description)
		}
		b.WriteString("\n")
	}

	b.WriteString("**RECOMMENDATIONS**\n")
	if len(result.Recommendations) == 0 {
		b.WriteString("- Continue researching market rates and company culture\n")
	}
	for _, r := range result.Recommendations {
		fmt.Fprintf(&b, "- %s\n", r.Description)
	}

	return b.String(), nil
}

// EmailDraft renders a balanced negotiation email skeleton.
func (g *TemplateGenerator) EmailDraft(ctx context.Context, offer model.OfferProfile, result model.AnalysisResult) (string, error) {
	var b strings.Builder

	b.WriteString("Subject: Re: Offer Discussion\n\n")
	b.WriteString("Hi [Hiring Manager],\n\n")
	fmt.Fprintf(&b, "Thank you for the offer for the %s position", offer.JobTitle)
	if offer.Company != "" {
		fmt.Fprintf(&b, " at %s", offer.Company)
	}
	b.WriteString(". I'm excited about the role and the team.\n\n")

	if result.NegotiationRoom != nil {
		fmt.Fprintf(&b, "Based on my research into market rates for comparable roles, I was hoping we could discuss a total compensation closer to %s.\n\n", money(result.NegotiationRoom.Realistic))
	} else {
		b.WriteString("I'd welcome a conversation about the compensation package before I make a final decision.\n\n")
	}

	for _, p := range result.LeveragePoints {
		fmt.Fprintf(&b, "- %s\n", p.Description)
	}
	if len(result.LeveragePoints) > 0 {
		b.WriteString("\n")
	}

	b.WriteString("I'm confident we can find a number that works for both sides. Looking forward to talking.\n\nBest regards,\n[Your Name]\n")

	return b.String(), nil
}

func money(v float64) string {
	return "$" + humanize.Comma(int64(v))
}

func titleCase(v model.Verdict) string {
	words := strings.Split(strings.ToLower(string(v)), "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

package narrative

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/okian/offerlens/internal/domain/model"
	"github.com/okian/offerlens/internal/domain/normalize"
)

const defaultGeminiModel = "gemini-2.0-flash"

// GeminiGenerator produces narrative text through the Gemini API.
type GeminiGenerator struct {
	client *genai.Client
	model  string
}

// NewGeminiGenerator creates a Gemini-backed generator.
func NewGeminiGenerator(ctx context.Context, apiKey, modelName string) (*GeminiGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	if modelName == "" {
		modelName = defaultGeminiModel
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &GeminiGenerator{client: client, model: modelName}, nil
}

// Analysis asks the model for a prose assessment of the offer.
func (g *GeminiGenerator) Analysis(ctx context.Context, offer model.OfferProfile, result model.AnalysisResult) (string, error) {
	return g.generate(ctx, analysisPrompt(offer, result))
}

// EmailDraft asks the model for a negotiation email draft.
func (g *GeminiGenerator) EmailDraft(ctx context.Context, offer model.OfferProfile, result model.AnalysisResult) (string, error) {
	return g.generate(ctx, emailPrompt(offer, result))
}

func (g *GeminiGenerator) generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", fmt.Errorf("gemini returned empty response")
	}
	return text, nil
}

func analysisPrompt(offer model.OfferProfile, result model.AnalysisResult) string {
	var b strings.Builder

	b.WriteString("You are an expert tech compensation analyst and career coach. Analyze this job offer and provide actionable insights.\n\n")
	b.WriteString("**Offer Details:**\n")
	fmt.Fprintf(&b, "- Position: %s\n", orNotSpecified(offer.JobTitle))
	fmt.Fprintf(&b, "- Company: %s (%s)\n", orNotSpecified(offer.Company), normalize.CompanyTier(offer.Company))
	fmt.Fprintf(&b, "- Location: %s\n", orNotSpecified(offer.Location))
	fmt.Fprintf(&b, "- Base Salary: %s\n", money(offer.BaseSalary))
	fmt.Fprintf(&b, "- Bonus: %s\n", money(offer.Bonus))
	fmt.Fprintf(&b, "- Equity: %s\n", money(offer.EquityValue))
	fmt.Fprintf(&b, "- Years of Experience: %.0f\n", offer.YearsExperience)
	fmt.Fprintf(&b, "- Tech Stack: %s\n\n", strings.Join(offer.TechStack, ", "))

	b.WriteString("**Market Data:**\n")
	fmt.Fprintf(&b, "- Market P25: %s\n", moneyPtr(result.MarketData.P25))
	fmt.Fprintf(&b, "- Market P50 (median): %s\n", moneyPtr(result.MarketData.P50))
	fmt.Fprintf(&b, "- Market P75: %s\n", moneyPtr(result.MarketData.P75))
	fmt.Fprintf(&b, "- Market P90: %s\n", moneyPtr(result.MarketData.P90))
	fmt.Fprintf(&b, "- Sample Size: %d data points\n", result.MarketData.SampleSize)
	fmt.Fprintf(&b, "- Data Confidence: %s\n\n", result.MarketData.Confidence)

	if result.WageCompliance != nil && result.WageCompliance.Applies {
		b.WriteString("**Minimum Wage Compliance:**\n")
		fmt.Fprintf(&b, "- Location floor: %s\n", moneyPtr(result.WageCompliance.MinimumWage))
		fmt.Fprintf(&b, "- Status: %s\n\n", result.WageCompliance.Message)
	}

	fmt.Fprintf(&b, "**Assessment: %s**\n\n", result.Verdict)

	b.WriteString("Cover: overall assessment, strengths, areas of concern, market positioning, negotiation leverage, non-salary opportunities, and risks. Be specific and data-driven, with clear section headers.")

	return b.String()
}

func emailPrompt(offer model.OfferProfile, result model.AnalysisResult) string {
	var b strings.Builder

	b.WriteString("You are an expert salary negotiation coach. Write one professional, warm but confident negotiation email for this tech job offer.\n\n")
	fmt.Fprintf(&b, "- Position: %s\n", orNotSpecified(offer.JobTitle))
	fmt.Fprintf(&b, "- Company: %s\n", orNotSpecified(offer.Company))
	fmt.Fprintf(&b, "- Current offer (total): %s\n", money(result.TotalCompensation))
	if result.NegotiationRoom != nil {
		fmt.Fprintf(&b, "- Target (realistic): %s\n", money(result.NegotiationRoom.Realistic))
	}
	for _, p := range result.LeveragePoints {
		fmt.Fprintf(&b, "- Leverage: %s\n", p.Description)
	}
	b.WriteString("\nKeep it under 200 words and never invent numbers beyond the ones given.")

	return b.String()
}

func orNotSpecified(s string) string {
	if strings.TrimSpace(s) == "" {
		return "Not specified"
	}
	return s
}

func moneyPtr(v *float64) string {
	if v == nil {
		return "N/A"
	}
	return money(*v)
}

// Package model contains domain models passed between layers.
package model

import "time"

// LocationTier buckets a location by cost of living and labor market.
type LocationTier string

// Location tiers, highest cost of living first.
const (
	Tier1 LocationTier = "tier1"
	Tier2 LocationTier = "tier2"
	Tier3 LocationTier = "tier3"
)

// Confidence describes how trustworthy a set of market statistics is,
// derived from the underlying sample size.
type Confidence string

const (
	ConfidenceHigh    Confidence = "high"
	ConfidenceMedium  Confidence = "medium"
	ConfidenceLow     Confidence = "low"
	ConfidenceVeryLow Confidence = "very_low"
)

// Freshness describes how current the market statistics are.
type Freshness string

const (
	FreshnessRecent  Freshness = "recent"
	FreshnessLimited Freshness = "limited"
)

// OfferProfile is the typed offer a candidate wants analyzed. It is
// assembled upstream (parsed document plus form input) and treated as
// immutable once handed to the engine.
type OfferProfile struct {
	Company            string   `json:"company,omitempty"`
	JobTitle           string   `json:"job_title"`
	Location           string   `json:"location"`
	BaseSalary         float64  `json:"base_salary"`
	Bonus              float64  `json:"bonus"`
	EquityValue        float64  `json:"equity_value"`
	YearsExperience    float64  `json:"years_experience"`
	TechStack          []string `json:"tech_stack"`
	HasCompetingOffers bool     `json:"has_competing_offers"`
}

// TotalCompensation is base + bonus + equity.
func (o OfferProfile) TotalCompensation() float64 {
	return o.BaseSalary + o.Bonus + o.EquityValue
}

// MarketStats holds aggregated salary statistics for one market query.
// Percentiles are nil when the reference store has no matching verified
// rows; callers must treat that case explicitly instead of defaulting.
// Invariant when present: P10 <= P25 <= P50 <= P75 <= P90.
type MarketStats struct {
	P10        *float64   `json:"p10"`
	P25        *float64   `json:"p25"`
	P50        *float64   `json:"p50"`
	P75        *float64   `json:"p75"`
	P90        *float64   `json:"p90"`
	SampleSize int        `json:"sample_size"`
	AvgBase    *float64   `json:"avg_base"`
	AvgBonus   *float64   `json:"avg_bonus"`
	AvgEquity  *float64   `json:"avg_equity"`
	Confidence Confidence `json:"confidence"`
	Freshness  Freshness  `json:"data_freshness"`
}

// HasPercentiles reports whether every percentile used by classification
// and negotiation math is present.
func (m MarketStats) HasPercentiles() bool {
	return m.P25 != nil && m.P50 != nil && m.P75 != nil && m.P90 != nil
}

// SalaryRecord is one row of the salary reference store. Records are
// created by contribution ingestion and never mutated afterwards.
type SalaryRecord struct {
	ID              string       `json:"id"`
	JobTitle        string       `json:"job_title"`
	NormalizedTitle string       `json:"normalized_title"`
	Company         string       `json:"company,omitempty"`
	CompanyTier     string       `json:"company_tier"`
	Location        string       `json:"location"`
	LocationTier    LocationTier `json:"location_tier"`
	BaseSalary      float64      `json:"base_salary"`
	Bonus           float64      `json:"bonus"`
	EquityValue     float64      `json:"equity_value"`
	TotalComp       float64      `json:"total_comp"`
	YearsExperience float64      `json:"years_experience"`
	TechStack       []string     `json:"tech_stack"`
	ConfidenceScore float64      `json:"confidence_score"`
	SubmissionHash  string       `json:"-"`
	IsVerified      bool         `json:"is_verified"`
	SubmittedAt     time.Time    `json:"submitted_at"`
}

// WageCompliance reports how an offer's base salary sits against the
// regional minimum-wage floor for its location. Applies is false when
// the wage table has no entry covering the location; the check then
// passes vacuously.
type WageCompliance struct {
	Applies             bool     `json:"applies"`
	Complies            bool     `json:"complies"`
	MinimumWage         *float64 `json:"minimum_wage,omitempty"`
	Difference          *float64 `json:"difference,omitempty"`
	PercentAboveMinimum *float64 `json:"percent_above_minimum,omitempty"`
	Message             string   `json:"message"`
}

// Strength ranks a leverage point.
type Strength string

const (
	StrengthWeak   Strength = "weak"
	StrengthMedium Strength = "medium"
	StrengthStrong Strength = "strong"
)

// LeveragePoint is a structured negotiation argument extracted from the
// offer and market data.
type LeveragePoint struct {
	Type        string   `json:"type"`
	Description string   `json:"description"`
	Strength    Strength `json:"strength"`
}

// PercentageIncrease holds the relative delta of each negotiation target
// from current compensation. Fields are nil when current compensation is
// zero, because the delta is undefined.
type PercentageIncrease struct {
	Conservative *float64 `json:"conservative"`
	Realistic    *float64 `json:"realistic"`
	Aggressive   *float64 `json:"aggressive"`
}

// NegotiationRoom holds the derived salary targets.
// Invariant: Conservative <= Realistic <= Aggressive.
type NegotiationRoom struct {
	Conservative       float64            `json:"conservative"`
	Realistic          float64            `json:"realistic"`
	Aggressive         float64            `json:"aggressive"`
	PercentageIncrease PercentageIncrease `json:"percentage_increase"`
}

// Recommendation is one actionable follow-up derived from the analysis.
type Recommendation struct {
	Priority    string   `json:"priority"`
	Action      string   `json:"action"`
	Description string   `json:"description"`
	Target      *float64 `json:"target,omitempty"`
}

// AnalysisResult is the full assembled analysis for one offer. It is
// computed per request and not persisted by this engine.
type AnalysisResult struct {
	OfferData         OfferProfile     `json:"offer_data"`
	MarketData        MarketStats      `json:"market_data"`
	TotalCompensation float64          `json:"total_compensation"`
	Verdict           Verdict          `json:"verdict"`
	WageCompliance    *WageCompliance  `json:"minimum_wage_compliance,omitempty"`
	NegotiationRoom   *NegotiationRoom `json:"negotiation_room,omitempty"`
	LeveragePoints    []LeveragePoint  `json:"leverage_points"`
	Recommendations   []Recommendation `json:"recommendations"`
	Narrative         string           `json:"narrative,omitempty"`
}

// Package contribution validates and scores anonymous salary
// submissions before they enter the reference store.
package contribution

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
)

// Global sanity band for base salary, in the currency unit of the store.
const (
	MinBaseSalary = 20_000
	MaxBaseSalary = 1_000_000
)

const (
	maxYearsExperience = 50
	maxComponentValue  = 1_000_000
	minTitleLength     = 3
	maxTitleLength     = 200
	minLocationLength  = 2
	maxLocationLength  = 100
)

// VerifiedThreshold is the confidence score at which a submission counts
// as verified market data.
const VerifiedThreshold = 0.7

// Submission is one anonymous salary data point offered by a user.
type Submission struct {
	Company         string   `json:"company,omitempty"`
	JobTitle        string   `json:"job_title"`
	Location        string   `json:"location"`
	BaseSalary      float64  `json:"base_salary"`
	Bonus           float64  `json:"bonus"`
	EquityValue     float64  `json:"equity_value"`
	YearsExperience float64  `json:"years_experience"`
	TechStack       []string `json:"tech_stack"`
}

// ValidationError reports which field failed and why. It is user-visible
// and must stay specific to the field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Validate applies hard validity rules. It returns a *ValidationError
// describing the first violated rule, or nil. The experience-scaled
// plausibility band is deliberately not checked here; it affects the
// confidence score, not validity.
func Validate(s Submission) error {
	title := strings.TrimSpace(s.JobTitle)
	if title == "" {
		return &ValidationError{Field: "job_title", Reason: "required"}
	}
	if len(title) < minTitleLength || len(title) > maxTitleLength {
		return &ValidationError{Field: "job_title", Reason: fmt.Sprintf("must be between %d and %d characters", minTitleLength, maxTitleLength)}
	}
	location := strings.TrimSpace(s.Location)
	if location == "" {
		return &ValidationError{Field: "location", Reason: "required"}
	}
	if len(location) < minLocationLength || len(location) > maxLocationLength {
		return &ValidationError{Field: "location", Reason: fmt.Sprintf("must be between %d and %d characters", minLocationLength, maxLocationLength)}
	}
	if s.BaseSalary == 0 {
		return &ValidationError{Field: "base_salary", Reason: "required"}
	}
	if s.BaseSalary < MinBaseSalary {
		return &ValidationError{Field: "base_salary", Reason: fmt.Sprintf("seems too low (minimum: %d)", MinBaseSalary)}
	}
	if s.BaseSalary > MaxBaseSalary {
		return &ValidationError{Field: "base_salary", Reason: fmt.Sprintf("seems too high (maximum: %d)", MaxBaseSalary)}
	}
	if s.YearsExperience < 0 || s.YearsExperience > maxYearsExperience {
		return &ValidationError{Field: "years_experience", Reason: fmt.Sprintf("must be between 0 and %d", maxYearsExperience)}
	}
	if s.Bonus < 0 || s.Bonus > maxComponentValue {
		return &ValidationError{Field: "bonus", Reason: "must be between 0 and 1000000"}
	}
	if s.EquityValue < 0 || s.EquityValue > maxComponentValue {
		return &ValidationError{Field: "equity_value", Reason: "must be between 0 and 1000000"}
	}
	return nil
}

// PlausibleBand returns the experience-scaled salary band used by the
// confidence score.
func PlausibleBand(yearsExperience float64) (min, max float64) {
	return 40_000 + yearsExperience*10_000, 100_000 + yearsExperience*30_000
}

// ConfidenceScore rates a submission in [0,1] as the mean of three
// checks: company present, salary within the experience-scaled band,
// tech stack non-empty.
func ConfidenceScore(s Submission) float64 {
	checks := []bool{
		strings.TrimSpace(s.Company) != "",
		withinPlausibleBand(s.BaseSalary, s.YearsExperience),
		len(s.TechStack) > 0,
	}
	passed := 0
	for _, ok := range checks {
		if ok {
			passed++
		}
	}
	return float64(passed) / float64(len(checks))
}

// IsVerified reports whether a confidence score clears the verification
// gate.
func IsVerified(score float64) bool {
	return score >= VerifiedThreshold
}

func withinPlausibleBand(salary, yearsExperience float64) bool {
	min, max := PlausibleBand(yearsExperience)
	return salary >= min && salary <= max
}

// Hash fingerprints a submission for duplicate detection. Two
// submissions with the same title, salary, location and experience hash
// identically regardless of field casing or surrounding whitespace.
func Hash(s Submission) string {
	parts := []string{
		"base_salary:" + formatNumber(s.BaseSalary),
		"job_title:" + strings.ToLower(strings.TrimSpace(s.JobTitle)),
		"location:" + strings.ToLower(strings.TrimSpace(s.Location)),
		"years_experience:" + formatNumber(s.YearsExperience),
	}
	sum := sha256.Sum256([]byte(strings.Join(parts, "|")))
	return hex.EncodeToString(sum[:])
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(...) initializer to build a Config with defaults.
// - All future functions must accept context.Context as the first parameter.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"context"

	"github.com/okian/offerlens/internal/domain/minwage"
	"github.com/okian/offerlens/internal/domain/normalize"
)

// Config contains process configuration. The curated lookup tables live
// here because they are data rather than logic: a deployment can swap
// the hot-tech table or the city tiers without touching engine code.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// DatabaseURL selects the Postgres reference store when set; empty
	// keeps the in-memory store.
	DatabaseURL string `koanf:"database_url"`

	// DedupeWindowHours is how long an accepted submission blocks
	// identical resubmissions.
	DedupeWindowHours int `koanf:"dedupe_window_hours"`

	// NarrativeTimeoutSeconds bounds one narrative-collaborator call.
	NarrativeTimeoutSeconds int `koanf:"narrative_timeout_seconds"`

	// GeminiAPIKey enables the Gemini narrative generator when set;
	// empty keeps the deterministic template generator.
	GeminiAPIKey string `koanf:"gemini_api_key"`

	// GeminiModel overrides the narrative model name.
	GeminiModel string `koanf:"gemini_model"`

	// TechPremiums maps technology names to percentile multipliers.
	TechPremiums map[string]float64 `koanf:"tech_premiums"`

	// Tier1Cities and Tier2Cities are the curated location-tier lists.
	Tier1Cities []string `koanf:"tier1_cities"`
	Tier2Cities []string `koanf:"tier2_cities"`

	// CoLMultipliers maps city substrings to cost-of-living multipliers.
	CoLMultipliers map[string]float64 `koanf:"col_multipliers"`

	// MinimumWages maps locations to annual minimum-wage floors used by
	// the compliance check.
	MinimumWages map[string]float64 `koanf:"minimum_wages"`
}

// New creates a Config with defaults. Context is accepted first to
// satisfy the project-wide convention; it is reserved for future use.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:                "info",
		Addr:                    ":9080",
		DedupeWindowHours:       24,
		NarrativeTimeoutSeconds: 20,
		TechPremiums:            normalize.DefaultTechPremiums(),
		Tier1Cities:             normalize.DefaultTier1Cities(),
		Tier2Cities:             normalize.DefaultTier2Cities(),
		CoLMultipliers:          normalize.DefaultCoLMultipliers(),
		MinimumWages:            minwage.DefaultWages(),
	}
}

// Package market aggregates salary reference data into the statistics
// the analysis engine classifies against.
package market

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/okian/offerlens/internal/adapters/repository"
	"github.com/okian/offerlens/internal/domain/model"
	"github.com/okian/offerlens/internal/domain/normalize"
	"github.com/okian/offerlens/pkg/logger"
	"github.com/okian/offerlens/pkg/metrics"
)

const (
	// experienceBand widens the experience filter to ±2 years.
	experienceBand = 2.0

	// minSampleSize is the smallest primary-query sample accepted
	// before falling back to a broader query.
	minSampleSize = 5

	// primaryRecency and fallbackRecency bound how old reference rows
	// may be. The fallback window is wider, never narrower: the
	// fallback filter set must be a strict relaxation of the primary's.
	primaryRecency  = 18 * 30 * 24 * time.Hour
	fallbackRecency = 24 * 30 * 24 * time.Hour
)

// Confidence thresholds on sample size.
const (
	highConfidenceSamples   = 100
	mediumConfidenceSamples = 30
	lowConfidenceSamples    = 10
)

// Aggregator answers market queries against a reference store.
type Aggregator struct {
	store        repository.Store
	normalizer   *normalize.Normalizer
	techPremiums map[string]float64
	now          func() time.Time
	log          logger.Logger
}

// Option applies a configuration option to the Aggregator.
type Option func(*Aggregator)

// WithTechPremiums overrides the curated hot-technology table.
func WithTechPremiums(premiums map[string]float64) Option {
	return func(a *Aggregator) {
		if len(premiums) > 0 {
			table := make(map[string]float64, len(premiums))
			for tech, premium := range premiums {
				table[strings.ToLower(tech)] = premium
			}
			a.techPremiums = table
		}
	}
}

// WithNormalizer overrides the default normalizer.
func WithNormalizer(n *normalize.Normalizer) Option {
	return func(a *Aggregator) {
		if n != nil {
			a.normalizer = n
		}
	}
}

// WithClock injects a time source for recency windows.
func WithClock(now func() time.Time) Option {
	return func(a *Aggregator) {
		if now != nil {
			a.now = now
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(log logger.Logger) Option {
	return func(a *Aggregator) {
		if log != nil {
			a.log = log
		}
	}
}

// New constructs an Aggregator over the given store.
func New(store repository.Store, opts ...Option) *Aggregator {
	a := &Aggregator{
		store:        store,
		normalizer:   normalize.New(),
		techPremiums: normalize.DefaultTechPremiums(),
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.log == nil {
		a.log = logger.Get().Named("market")
	}
	return a
}

// GetMarketData returns percentile statistics for the given position,
// adjusted for cost of living and technology premium.
//
// The primary query filters on normalized title, location tier,
// experience ±2 years, verified rows and an 18-month window. When it
// matches fewer than five rows, a fallback query drops the tier and
// experience filters and widens the window to 24 months; the fallback
// never returns less than the primary would. If both queries match
// nothing, percentiles stay nil with very_low confidence and the caller
// must surface insufficient data rather than a fabricated band.
func (a *Aggregator) GetMarketData(ctx context.Context, jobTitle, location string, yearsExperience float64, techStack []string) (model.MarketStats, error) {
	title := normalize.Title(jobTitle)
	tier := a.normalizer.Tier(location)
	col := a.normalizer.CoLMultiplier(location)

	metrics.RecordMarketQuery()

	primary := repository.Query{
		NormalizedTitle:  title,
		FilterTier:       true,
		LocationTier:     tier,
		FilterExperience: true,
		MinExperience:    yearsExperience - experienceBand,
		MaxExperience:    yearsExperience + experienceBand,
		VerifiedOnly:     true,
		Since:            a.now().Add(-primaryRecency),
	}
	res, err := a.store.Aggregate(ctx, primary)
	if err != nil {
		return model.MarketStats{}, fmt.Errorf("primary market query: %w", err)
	}

	if res.SampleSize < minSampleSize {
		a.log.Debug(ctx, "insufficient primary sample, broadening query",
			logger.String("title", title),
			logger.Int("sample_size", res.SampleSize),
		)
		metrics.RecordMarketFallback()
		fallback := FallbackQuery(primary, a.now())
		res, err = a.store.Aggregate(ctx, fallback)
		if err != nil {
			return model.MarketStats{}, fmt.Errorf("fallback market query: %w", err)
		}
	}

	adjust := col * a.techPremium(techStack)
	stats := model.MarketStats{
		P10:        scaled(res.P10, adjust),
		P25:        scaled(res.P25, adjust),
		P50:        scaled(res.P50, adjust),
		P75:        scaled(res.P75, adjust),
		P90:        scaled(res.P90, adjust),
		SampleSize: res.SampleSize,
		AvgBase:    res.AvgBase,
		AvgBonus:   res.AvgBonus,
		AvgEquity:  res.AvgEquity,
		Confidence: confidence(res.SampleSize),
		Freshness:  model.FreshnessLimited,
	}
	if res.SampleSize > 0 {
		stats.Freshness = model.FreshnessRecent
	} else {
		metrics.RecordInsufficientMarketData()
	}
	return stats, nil
}

// FallbackQuery relaxes a primary query: same title, verified rows only,
// no tier or experience filter, wider recency window. Exported so tests
// can assert the relaxation is a strict superset.
func FallbackQuery(primary repository.Query, now time.Time) repository.Query {
	return repository.Query{
		NormalizedTitle: primary.NormalizedTitle,
		VerifiedOnly:    primary.VerifiedOnly,
		Since:           now.Add(-fallbackRecency),
	}
}

// techPremium is the arithmetic mean of per-technology multipliers.
// Technologies outside the curated table count as 1.0, so an exotic
// stack never drags the premium below neutral.
func (a *Aggregator) techPremium(stack []string) float64 {
	if len(stack) == 0 {
		return 1.0
	}
	sum := 0.0
	for _, tech := range stack {
		premium, ok := a.techPremiums[strings.ToLower(strings.TrimSpace(tech))]
		if !ok {
			premium = 1.0
		}
		sum += premium
	}
	return sum / float64(len(stack))
}

func confidence(sampleSize int) model.Confidence {
	switch {
	case sampleSize >= highConfidenceSamples:
		return model.ConfidenceHigh
	case sampleSize >= mediumConfidenceSamples:
		return model.ConfidenceMedium
	case sampleSize >= lowConfidenceSamples:
		return model.ConfidenceLow
	default:
		return model.ConfidenceVeryLow
	}
}

func scaled(v *float64, factor float64) *float64 {
	if v == nil {
		return nil
	}
	adjusted := *v * factor
	return &adjusted
}

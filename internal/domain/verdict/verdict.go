// Package verdict classifies total compensation against market
// percentile bands.
package verdict

import "github.com/okian/offerlens/internal/domain/model"

// band is one classification interval. A compensation value belongs to
// the first band whose upper bound it is strictly below; bounds are
// lower-inclusive and upper-exclusive.
type band struct {
	upper   func(model.MarketStats) float64
	verdict model.Verdict
}

// bands is the ordered boundary table. Expressing the bands as data
// keeps each edge testable in isolation.
var bands = []band{
	{upper: func(m model.MarketStats) float64 { return *m.P25 }, verdict: model.VerdictSignificantlyUnderpaid},
	{upper: func(m model.MarketStats) float64 { return *m.P50 }, verdict: model.VerdictUnderpaid},
	{upper: func(m model.MarketStats) float64 { return *m.P75 }, verdict: model.VerdictFair},
	{upper: func(m model.MarketStats) float64 { return *m.P90 }, verdict: model.VerdictCompetitive},
}

// Classify maps total compensation to a verdict. When market percentiles
// are missing it returns INSUFFICIENT_DATA instead of guessing a band.
// For fixed stats the verdict rank is non-decreasing in totalComp.
func Classify(totalComp float64, stats model.MarketStats) model.Verdict {
	if !stats.HasPercentiles() {
		return model.VerdictInsufficientData
	}
	for _, b := range bands {
		if totalComp < b.upper(stats) {
			return b.verdict
		}
	}
	return model.VerdictExcellent
}

// Package repository defines the salary reference store interface and
// its implementations.
package repository

import (
	"context"
	"time"

	"github.com/okian/offerlens/internal/domain/model"
)

// DefaultDedupeWindow is how long an accepted submission hash blocks
// identical resubmissions.
const DefaultDedupeWindow = 24 * time.Hour

// Query selects the rows feeding one percentile aggregation. Filters are
// opt-in so a fallback query can relax them without changing the store.
type Query struct {
	NormalizedTitle string

	// FilterTier restricts rows to LocationTier when set.
	FilterTier   bool
	LocationTier model.LocationTier

	// FilterExperience restricts rows to [MinExperience, MaxExperience]
	// when set.
	FilterExperience bool
	MinExperience    float64
	MaxExperience    float64

	VerifiedOnly bool

	// Since excludes rows submitted before this instant.
	Since time.Time
}

// AggregateResult carries raw, unadjusted percentile statistics for one
// query. Percentiles and averages are nil when no rows matched.
type AggregateResult struct {
	P10        *float64
	P25        *float64
	P50        *float64
	P75        *float64
	P90        *float64
	SampleSize int
	AvgBase    *float64
	AvgBonus   *float64
	AvgEquity  *float64
}

// InsertOutcome is the store's ruling on one contribution.
type InsertOutcome string

const (
	// OutcomeAccepted means the record is now part of the store.
	OutcomeAccepted InsertOutcome = "accepted"
	// OutcomeDuplicate means an identical submission was accepted within
	// the dedupe window and this one was discarded.
	OutcomeDuplicate InsertOutcome = "duplicate"
)

// Store provides percentile aggregation over the salary reference data
// and atomic conditional inserts for new contributions.
//
// The store is append-only: records are never updated or deleted by the
// analysis path. Insert is the single arbiter of duplication; callers
// must not pre-check, because a check-then-insert sequence races under
// concurrent identical submissions.
type Store interface {
	// Aggregate computes percentile statistics for rows matching q.
	Aggregate(ctx context.Context, q Query) (AggregateResult, error)

	// Insert atomically adds rec unless a record with the same
	// submission hash was accepted within the dedupe window.
	Insert(ctx context.Context, rec model.SalaryRecord) (InsertOutcome, error)

	// Count returns the number of stored records.
	Count(ctx context.Context) (int, error)

	// Close releases store resources.
	Close() error
}

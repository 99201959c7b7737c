package repository

import (
	"context"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/okian/offerlens/internal/domain/model"
	"github.com/okian/offerlens/pkg/metrics"
)

// MemStore is an in-memory Store. It backs deployments without a
// database and all behavioral tests.
//
// Records are held in an append-only slice guarded by a RWMutex; the
// dedupe index and the append happen under one lock, which makes Insert
// the atomic conditional insert the write path requires.
type MemStore struct {
	mu      sync.RWMutex
	records []model.SalaryRecord
	// byHash tracks acceptance times per submission hash.
	byHash map[string][]time.Time
	window time.Duration
	now    func() time.Time
	closed bool
}

// MemOption applies a configuration option to the MemStore.
type MemOption func(*MemStore)

// WithDedupeWindow overrides the duplicate-rejection window.
func WithDedupeWindow(window time.Duration) MemOption {
	return func(s *MemStore) {
		if window > 0 {
			s.window = window
		}
	}
}

// WithClock injects a time source, used by tests to walk the dedupe
// window.
func WithClock(now func() time.Time) MemOption {
	return func(s *MemStore) {
		if now != nil {
			s.now = now
		}
	}
}

// NewMemStore creates an empty in-memory store.
func NewMemStore(opts ...MemOption) *MemStore {
	s := &MemStore{
		byHash: make(map[string][]time.Time),
		window: DefaultDedupeWindow,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Insert adds rec unless its submission hash was accepted within the
// dedupe window. The check and the append share one critical section.
func (s *MemStore) Insert(ctx context.Context, rec model.SalaryRecord) (InsertOutcome, error) {
	start := time.Now()
	defer func() {
		metrics.RecordStoreInsertLatency(float64(time.Since(start).Milliseconds()))
	}()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return "", ErrClosed
	}

	at := rec.SubmittedAt
	if at.IsZero() {
		at = s.now()
		rec.SubmittedAt = at
	}

	for _, seen := range s.byHash[rec.SubmissionHash] {
		if at.Sub(seen) < s.window {
			return OutcomeDuplicate, nil
		}
	}

	s.records = append(s.records, rec)
	s.byHash[rec.SubmissionHash] = append(s.byHash[rec.SubmissionHash], at)
	return OutcomeAccepted, nil
}

// Aggregate computes percentile statistics over matching records using
// linear interpolation, matching percentile_cont semantics so both store
// implementations agree.
func (s *MemStore) Aggregate(ctx context.Context, q Query) (AggregateResult, error) {
	start := time.Now()
	defer func() {
		metrics.RecordStoreQueryLatency(float64(time.Since(start).Milliseconds()))
	}()

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return AggregateResult{}, ErrClosed
	}

	var totals []float64
	var baseSum, bonusSum, equitySum float64
	for i := range s.records {
		rec := &s.records[i]
		if !matches(rec, q) {
			continue
		}
		totals = append(totals, rec.TotalComp)
		baseSum += rec.BaseSalary
		bonusSum += rec.Bonus
		equitySum += rec.EquityValue
	}

	n := len(totals)
	if n == 0 {
		return AggregateResult{}, nil
	}
	sort.Float64s(totals)

	return AggregateResult{
		P10:        ptr(percentileCont(totals, 0.10)),
		P25:        ptr(percentileCont(totals, 0.25)),
		P50:        ptr(percentileCont(totals, 0.50)),
		P75:        ptr(percentileCont(totals, 0.75)),
		P90:        ptr(percentileCont(totals, 0.90)),
		SampleSize: n,
		AvgBase:    ptr(baseSum / float64(n)),
		AvgBonus:   ptr(bonusSum / float64(n)),
		AvgEquity:  ptr(equitySum / float64(n)),
	}, nil
}

// Count returns the number of stored records.
func (s *MemStore) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return 0, ErrClosed
	}
	return len(s.records), nil
}

// Close marks the store closed. Subsequent calls fail with ErrClosed.
func (s *MemStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func matches(rec *model.SalaryRecord, q Query) bool {
	if rec.NormalizedTitle != q.NormalizedTitle {
		return false
	}
	if q.FilterTier && rec.LocationTier != q.LocationTier {
		return false
	}
	if q.FilterExperience && (rec.YearsExperience < q.MinExperience || rec.YearsExperience > q.MaxExperience) {
		return false
	}
	if q.VerifiedOnly && !rec.IsVerified {
		return false
	}
	if !q.Since.IsZero() && !rec.SubmittedAt.After(q.Since) {
		return false
	}
	return true
}

// percentileCont interpolates the p-th percentile over sorted values,
// the same way PostgreSQL's percentile_cont does.
func percentileCont(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 1 {
		return sorted[0]
	}
	h := p * float64(n-1)
	lo := int(math.Floor(h))
	if lo >= n-1 {
		return sorted[n-1]
	}
	frac := h - float64(lo)
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}

func ptr(v float64) *float64 {
	return &v
}

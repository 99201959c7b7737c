package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"github.com/okian/offerlens/internal/domain/model"
	"github.com/okian/offerlens/pkg/metrics"
)

// PostgresStore implements Store backed by PostgreSQL. Percentiles are
// computed by the database with percentile_cont, and duplicate detection
// is enforced by the insert statement itself together with a unique
// index on (submission_hash, dedupe_day), so no prior read is involved
// in the decision.
type PostgresStore struct {
	db     *sql.DB
	window time.Duration
}

// PostgresOption applies a configuration option to the PostgresStore.
type PostgresOption func(*PostgresStore)

// WithPostgresDedupeWindow overrides the duplicate-rejection window.
func WithPostgresDedupeWindow(window time.Duration) PostgresOption {
	return func(s *PostgresStore) {
		if window > 0 {
			s.window = window
		}
	}
}

// NewPostgresStore wraps an open database handle. The caller owns
// migrations; see cmd/migrate.
func NewPostgresStore(db *sql.DB, opts ...PostgresOption) *PostgresStore {
	s := &PostgresStore{
		db:     db,
		window: DefaultDedupeWindow,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// OpenPostgresStore connects to databaseURL and pings it.
func OpenPostgresStore(ctx context.Context, databaseURL string, opts ...PostgresOption) (*PostgresStore, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return NewPostgresStore(db, opts...), nil
}

// Insert adds rec in a single conditional statement. The WHERE NOT
// EXISTS clause enforces the rolling window and the unique
// (submission_hash, dedupe_day) index arbitrates same-bucket races, so
// two concurrent identical submissions cannot both land.
func (s *PostgresStore) Insert(ctx context.Context, rec model.SalaryRecord) (InsertOutcome, error) {
	start := time.Now()
	defer func() {
		metrics.RecordStoreInsertLatency(float64(time.Since(start).Milliseconds()))
	}()

	at := rec.SubmittedAt
	if at.IsZero() {
		at = time.Now().UTC()
	}
	cutoff := at.Add(-s.window)

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO salary_records (
			id, job_title, normalized_title, company, company_tier,
			location, location_tier, base_salary, bonus, equity_value,
			total_comp, years_experience, tech_stack, confidence_score,
			submission_hash, is_verified, submitted_at, dedupe_day
		)
		SELECT $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18
		WHERE NOT EXISTS (
			SELECT 1 FROM salary_records
			WHERE submission_hash = $15 AND submitted_at > $19
		)
		ON CONFLICT (submission_hash, dedupe_day) DO NOTHING
	`,
		rec.ID, rec.JobTitle, rec.NormalizedTitle, rec.Company, rec.CompanyTier,
		rec.Location, string(rec.LocationTier), rec.BaseSalary, rec.Bonus, rec.EquityValue,
		rec.TotalComp, rec.YearsExperience, pq.Array(rec.TechStack), rec.ConfidenceScore,
		rec.SubmissionHash, rec.IsVerified, at, at.UTC().Truncate(24*time.Hour),
		cutoff,
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInsert, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return "", fmt.Errorf("%w: rows affected: %v", ErrInsert, err)
	}
	if affected == 0 {
		return OutcomeDuplicate, nil
	}
	return OutcomeAccepted, nil
}

// Aggregate runs the percentile aggregation in the database.
func (s *PostgresStore) Aggregate(ctx context.Context, q Query) (AggregateResult, error) {
	start := time.Now()
	defer func() {
		metrics.RecordStoreQueryLatency(float64(time.Since(start).Milliseconds()))
	}()

	var sb strings.Builder
	sb.WriteString(`
		SELECT
			percentile_cont(0.10) WITHIN GROUP (ORDER BY total_comp) AS p10,
			percentile_cont(0.25) WITHIN GROUP (ORDER BY total_comp) AS p25,
			percentile_cont(0.50) WITHIN GROUP (ORDER BY total_comp) AS p50,
			percentile_cont(0.75) WITHIN GROUP (ORDER BY total_comp) AS p75,
			percentile_cont(0.90) WITHIN GROUP (ORDER BY total_comp) AS p90,
			COUNT(*) AS sample_size,
			AVG(base_salary) AS avg_base,
			AVG(bonus) AS avg_bonus,
			AVG(equity_value) AS avg_equity
		FROM salary_records
		WHERE normalized_title = $1`)

	args := []any{q.NormalizedTitle}
	if q.FilterTier {
		args = append(args, string(q.LocationTier))
		fmt.Fprintf(&sb, " AND location_tier = $%d", len(args))
	}
	if q.FilterExperience {
		args = append(args, q.MinExperience, q.MaxExperience)
		fmt.Fprintf(&sb, " AND years_experience BETWEEN $%d AND $%d", len(args)-1, len(args))
	}
	if q.VerifiedOnly {
		sb.WriteString(" AND is_verified = true")
	}
	if !q.Since.IsZero() {
		args = append(args, q.Since)
		fmt.Fprintf(&sb, " AND submitted_at > $%d", len(args))
	}

	var res AggregateResult
	row := s.db.QueryRowContext(ctx, sb.String(), args...)
	if err := row.Scan(
		&res.P10, &res.P25, &res.P50, &res.P75, &res.P90,
		&res.SampleSize, &res.AvgBase, &res.AvgBonus, &res.AvgEquity,
	); err != nil {
		return AggregateResult{}, fmt.Errorf("%w: %v", ErrQuery, err)
	}
	return res, nil
}

// Count returns the number of stored records.
func (s *PostgresStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM salary_records`).Scan(&n); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrQuery, err)
	}
	return n, nil
}

// Close closes the underlying database handle.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

// Package app provides the core business service that implements the
// dependencies required by the HTTP API.
package app

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/okian/offerlens/internal/adapters/repository"
	"github.com/okian/offerlens/internal/domain/contribution"
	"github.com/okian/offerlens/internal/domain/leverage"
	"github.com/okian/offerlens/internal/domain/minwage"
	"github.com/okian/offerlens/internal/domain/model"
	"github.com/okian/offerlens/internal/domain/negotiation"
	"github.com/okian/offerlens/internal/domain/normalize"
	"github.com/okian/offerlens/internal/domain/verdict"
	"github.com/okian/offerlens/internal/market"
	"github.com/okian/offerlens/internal/narrative"
	"github.com/okian/offerlens/pkg/logger"
	"github.com/okian/offerlens/pkg/metrics"

	"github.com/google/uuid"
)

const defaultNarrativeTimeout = 20 * time.Second

// Tables bundles the curated lookup data injected from configuration.
type Tables struct {
	TechPremiums   map[string]float64
	Tier1Cities    []string
	Tier2Cities    []string
	CoLMultipliers map[string]float64
	MinimumWages   map[string]float64
}

// Service wires the compensation-benchmarking engine together: the
// normalizer, market aggregator, classifier, range calculator, leverage
// extractor and the contribution write path.
type Service struct {
	mu sync.RWMutex

	// Core components
	store      repository.Store
	aggregator *market.Aggregator
	normalizer *normalize.Normalizer
	extractor  *leverage.Extractor
	wages      *minwage.Checker
	narrator   narrative.Generator

	// Configuration
	databaseURL      string
	dedupeWindow     time.Duration
	narrativeTimeout time.Duration
	tables           Tables

	// State
	started bool

	// Logging
	log logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(log logger.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// WithStore injects a pre-built reference store (tests, embedding).
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithDatabaseURL selects the Postgres store. Empty keeps the in-memory
// store.
func WithDatabaseURL(url string) Option {
	return func(s *Service) {
		s.databaseURL = url
	}
}

// WithDedupeWindow overrides the duplicate-rejection window.
func WithDedupeWindow(window time.Duration) Option {
	return func(s *Service) {
		if window > 0 {
			s.dedupeWindow = window
		}
	}
}

// WithNarrator injects the narrative collaborator.
func WithNarrator(g narrative.Generator) Option {
	return func(s *Service) {
		if g != nil {
			s.narrator = g
		}
	}
}

// WithNarrativeTimeout bounds how long one narrative call may take
// before the deterministic fallback kicks in.
func WithNarrativeTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.narrativeTimeout = d
		}
	}
}

// WithTables sets the curated lookup tables.
func WithTables(t Tables) Option {
	return func(s *Service) {
		s.tables = t
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		dedupeWindow:     repository.DefaultDedupeWindow,
		narrativeTimeout: defaultNarrativeTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start initializes the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.log == nil {
		s.log = logger.Get()
	}

	s.normalizer = normalize.New(
		normalize.WithTierCities(s.tables.Tier1Cities, s.tables.Tier2Cities),
		normalize.WithCoLMultipliers(s.tables.CoLMultipliers),
	)
	s.wages = minwage.New(s.tables.MinimumWages)

	if s.store == nil {
		if s.databaseURL != "" {
			store, err := repository.OpenPostgresStore(ctx, s.databaseURL,
				repository.WithPostgresDedupeWindow(s.dedupeWindow),
			)
			if err != nil {
				return fmt.Errorf("open reference store: %w", err)
			}
			s.store = store
			s.log.Info(ctx, "using postgres reference store")
		} else {
			s.store = repository.NewMemStore(
				repository.WithDedupeWindow(s.dedupeWindow),
			)
			s.log.Info(ctx, "using in-memory reference store")
		}
	}

	aggOpts := []market.Option{
		market.WithNormalizer(s.normalizer),
		market.WithLogger(s.log.Named("market")),
	}
	premiums := s.tables.TechPremiums
	if len(premiums) == 0 {
		premiums = normalize.DefaultTechPremiums()
	}
	aggOpts = append(aggOpts, market.WithTechPremiums(premiums))
	s.aggregator = market.New(s.store, aggOpts...)
	s.extractor = leverage.NewExtractor(premiums)

	if s.narrator == nil {
		s.narrator = narrative.NewTemplateGenerator()
	}

	s.started = true
	s.log.Info(ctx, "analysis service started")
	return nil
}

// Stop releases service resources.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	if s.store != nil {
		if err := s.store.Close(); err != nil {
			s.log.Error(context.Background(), "closing reference store", logger.Error(err))
		}
	}
	s.started = false
	s.log.Info(context.Background(), "analysis service stopped")
}

// AnalyzeOffer runs the full read path: normalize, aggregate market
// data, classify, compute negotiation targets and leverage points, then
// attach narrative text. A single malformed offer fails only its own
// request.
func (s *Service) AnalyzeOffer(ctx context.Context, offer model.OfferProfile) (model.AnalysisResult, error) {
	start := time.Now()
	defer func() {
		metrics.RecordAnalysisDuration(float64(time.Since(start).Milliseconds()))
	}()

	if err := validateOffer(offer); err != nil {
		return model.AnalysisResult{}, err
	}

	total := offer.TotalCompensation()
	stats, err := s.aggregator.GetMarketData(ctx, offer.JobTitle, offer.Location, offer.YearsExperience, offer.TechStack)
	if err != nil {
		return model.AnalysisResult{}, fmt.Errorf("market data: %w", err)
	}

	v := verdict.Classify(total, stats)
	metrics.RecordAnalysis(string(v))

	compliance := s.wages.Check(offer.Location, offer.BaseSalary)
	if compliance.Applies && !compliance.Complies {
		s.log.Warn(ctx, "offer below regional minimum wage",
			logger.String("location", offer.Location),
			logger.Float64("base_salary", offer.BaseSalary),
		)
	}

	result := model.AnalysisResult{
		OfferData:         offer,
		MarketData:        stats,
		TotalCompensation: total,
		Verdict:           v,
		WageCompliance:    &compliance,
		LeveragePoints:    s.extractor.Extract(offer, stats),
	}
	if v != model.VerdictInsufficientData {
		room := negotiation.Room(total, stats)
		result.NegotiationRoom = &room
	}
	result.Recommendations = recommendations(offer, stats, v, compliance)
	result.Narrative = s.narrate(ctx, offer, result)

	s.log.Info(ctx, "analysis complete",
		logger.String("verdict", string(v)),
		logger.Float64("total_compensation", total),
		logger.Int("sample_size", stats.SampleSize),
	)
	return result, nil
}

// narrate calls the collaborator with a bounded context and falls back
// to the deterministic template on any failure. The structured result
// is already final at this point; nothing here may change it.
func (s *Service) narrate(ctx context.Context, offer model.OfferProfile, result model.AnalysisResult) string {
	nctx, cancel := context.WithTimeout(ctx, s.narrativeTimeout)
	defer cancel()

	text, err := s.narrator.Analysis(nctx, offer, result)
	if err == nil {
		return text
	}
	s.log.Warn(ctx, "narrative generation failed, using fallback", logger.Error(err))

	fallback := narrative.NewTemplateGenerator()
	text, _ = fallback.Analysis(ctx, offer, result)
	return text
}

// EmailDraft generates a negotiation email for a finished analysis.
func (s *Service) EmailDraft(ctx context.Context, offer model.OfferProfile, result model.AnalysisResult) (string, error) {
	nctx, cancel := context.WithTimeout(ctx, s.narrativeTimeout)
	defer cancel()

	text, err := s.narrator.EmailDraft(nctx, offer, result)
	if err == nil {
		return text, nil
	}
	s.log.Warn(ctx, "email draft generation failed, using fallback", logger.Error(err))

	fallback := narrative.NewTemplateGenerator()
	return fallback.EmailDraft(ctx, offer, result)
}

// MarketData exposes the aggregator for direct market queries.
func (s *Service) MarketData(ctx context.Context, jobTitle, location string, yearsExperience float64, techStack []string) (model.MarketStats, error) {
	return s.aggregator.GetMarketData(ctx, jobTitle, location, yearsExperience, techStack)
}

// ContributionReceipt reports the outcome of one submission.
type ContributionReceipt struct {
	Status          repository.InsertOutcome `json:"status"`
	ConfidenceScore float64                  `json:"confidence_score"`
	DataQuality     string                   `json:"data_quality"`
	Message         string                   `json:"message"`
}

// Contribute runs the write path: validate, score, normalize, then hand
// the record to the store whose conditional insert decides duplication.
func (s *Service) Contribute(ctx context.Context, sub contribution.Submission) (ContributionReceipt, error) {
	if err := contribution.Validate(sub); err != nil {
		metrics.RecordContribution("rejected")
		return ContributionReceipt{}, err
	}

	score := contribution.ConfidenceScore(sub)
	now := time.Now().UTC()
	rec := model.SalaryRecord{
		ID:              uuid.New().String(),
		JobTitle:        strings.TrimSpace(sub.JobTitle),
		NormalizedTitle: normalize.Title(sub.JobTitle),
		Company:         strings.TrimSpace(sub.Company),
		CompanyTier:     normalize.CompanyTier(sub.Company),
		Location:        strings.TrimSpace(sub.Location),
		LocationTier:    s.normalizer.Tier(sub.Location),
		BaseSalary:      sub.BaseSalary,
		Bonus:           sub.Bonus,
		EquityValue:     sub.EquityValue,
		TotalComp:       sub.BaseSalary + sub.Bonus + sub.EquityValue,
		YearsExperience: sub.YearsExperience,
		TechStack:       sub.TechStack,
		ConfidenceScore: score,
		SubmissionHash:  contribution.Hash(sub),
		IsVerified:      contribution.IsVerified(score),
		SubmittedAt:     now,
	}

	outcome, err := s.store.Insert(ctx, rec)
	if err != nil {
		return ContributionReceipt{}, fmt.Errorf("insert contribution: %w", err)
	}
	metrics.RecordContribution(string(outcome))
	metrics.RecordContributionConfidence(score)

	receipt := ContributionReceipt{
		Status:          outcome,
		ConfidenceScore: round2(score),
		DataQuality:     dataQuality(score),
	}
	switch outcome {
	case repository.OutcomeAccepted:
		receipt.Message = "Thank you for your contribution! This helps others negotiate better salaries."
	case repository.OutcomeDuplicate:
		receipt.Message = "This exact salary data was recently submitted. Thank you for your contribution!"
	}

	s.log.Info(ctx, "contribution processed",
		logger.String("status", string(outcome)),
		logger.Float64("confidence", score),
	)
	return receipt, nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":          s.started,
		"dedupe_window":    s.dedupeWindow.String(),
		"postgres_backend": s.databaseURL != "",
	}
	if s.started {
		if n, err := s.store.Count(context.Background()); err == nil {
			stats["total_records"] = n
			metrics.UpdateTotalRecords(n)
		}
	}
	return stats
}

// validateOffer applies the minimal hard rules on analysis input.
// Upstream extraction is trusted for everything else.
func validateOffer(offer model.OfferProfile) error {
	if strings.TrimSpace(offer.JobTitle) == "" {
		return &contribution.ValidationError{Field: "job_title", Reason: "required"}
	}
	if strings.TrimSpace(offer.Location) == "" {
		return &contribution.ValidationError{Field: "location", Reason: "required"}
	}
	if offer.BaseSalary < 0 || offer.Bonus < 0 || offer.EquityValue < 0 {
		return &contribution.ValidationError{Field: "base_salary", Reason: "compensation components cannot be negative"}
	}
	if offer.YearsExperience < 0 {
		return &contribution.ValidationError{Field: "years_experience", Reason: "cannot be negative"}
	}
	return nil
}

func dataQuality(score float64) string {
	switch {
	case score >= 0.8:
		return "high"
	case score >= 0.6:
		return "medium"
	default:
		return "low"
	}
}

func round2(v float64) float64 {
	return float64(int(v*100+0.5)) / 100
}

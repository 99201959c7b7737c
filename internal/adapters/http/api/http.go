// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/okian/offerlens/internal/app"
	"github.com/okian/offerlens/internal/domain/contribution"
	"github.com/okian/offerlens/internal/domain/model"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// AnalyzeOffer runs the full offer analysis read path.
	AnalyzeOffer(ctx context.Context, offer model.OfferProfile) (model.AnalysisResult, error)

	// EmailDraft generates a negotiation email for a finished analysis.
	EmailDraft(ctx context.Context, offer model.OfferProfile, result model.AnalysisResult) (string, error)

	// MarketData answers direct market queries.
	MarketData(ctx context.Context, jobTitle, location string, yearsExperience float64, techStack []string) (model.MarketStats, error)

	// Contribute runs the crowdsourced submission write path.
	Contribute(ctx context.Context, sub contribution.Submission) (app.ContributionReceipt, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler        *HealthHandler
	statsHandler         *StatsHandler
	analyzeHandler       *AnalyzeHandler
	contributionsHandler *ContributionsHandler
	marketHandler        *MarketHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:        NewHealthHandler(),
		statsHandler:         NewStatsHandler(statsProvider),
		analyzeHandler:       NewAnalyzeHandler(deps),
		contributionsHandler: NewContributionsHandler(deps),
		marketHandler:        NewMarketHandler(deps),
	}
}

// Register attaches all HTTP routes to the router.
func (s *Server) Register(ctx context.Context, r chi.Router) {
	r.Get("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	r.Get("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))

	r.Route("/api", func(r chi.Router) {
		r.Post("/analyze", MetricsMiddleware(s.analyzeHandler.HandlePostAnalyze, "analyze"))
		r.Post("/contributions", MetricsMiddleware(s.contributionsHandler.HandlePostContribution, "contributions"))
		r.Get("/market", MetricsMiddleware(s.marketHandler.HandleGetMarket, "market"))
	})
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeValidationError translates a domain validation failure into the
// 422 shape that names the offending field.
func writeValidationError(w http.ResponseWriter, verr *contribution.ValidationError) {
	writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
		Code:    "validation_error",
		Message: verr.Reason,
		Field:   verr.Field,
	})
}

// asValidationError unwraps a domain validation error, if any.
func asValidationError(err error) (*contribution.ValidationError, bool) {
	var verr *contribution.ValidationError
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}

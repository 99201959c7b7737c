// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/okian/offerlens/internal/domain/model"
)

// analyzeRequest mirrors the request schema for POST /api/analyze.
type analyzeRequest struct {
	JobTitle           string   `json:"job_title"`
	Company            string   `json:"company"`
	Location           string   `json:"location"`
	BaseSalary         float64  `json:"base_salary"`
	Bonus              float64  `json:"bonus"`
	EquityValue        float64  `json:"equity_value"`
	YearsExperience    float64  `json:"years_experience"`
	TechStack          []string `json:"tech_stack"`
	HasCompetingOffers bool     `json:"has_competing_offers"`

	// IncludeEmail additionally returns a negotiation email draft.
	IncludeEmail bool `json:"include_email"`
}

// analyzeResponse wraps the analysis with the optional email draft.
type analyzeResponse struct {
	model.AnalysisResult
	EmailDraft string `json:"email_draft,omitempty"`
}

// AnalyzeHandler handles offer analysis requests.
type AnalyzeHandler struct {
	deps Dependencies
}

// NewAnalyzeHandler creates a new analyze handler.
func NewAnalyzeHandler(deps Dependencies) *AnalyzeHandler {
	return &AnalyzeHandler{deps: deps}
}

// HandlePostAnalyze handles POST /api/analyze requests.
func (h *AnalyzeHandler) HandlePostAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}

	offer := model.OfferProfile{
		JobTitle:           req.JobTitle,
		Company:            req.Company,
		Location:           req.Location,
		BaseSalary:         req.BaseSalary,
		Bonus:              req.Bonus,
		EquityValue:        req.EquityValue,
		YearsExperience:    req.YearsExperience,
		TechStack:          req.TechStack,
		HasCompetingOffers: req.HasCompetingOffers,
	}

	result, err := h.deps.AnalyzeOffer(r.Context(), offer)
	if err != nil {
		if verr, ok := asValidationError(err); ok {
			writeValidationError(w, verr)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}

	resp := analyzeResponse{AnalysisResult: result}
	if req.IncludeEmail {
		// Draft failures never fail the analysis; the generator falls
		// back to its deterministic template internally.
		if draft, err := h.deps.EmailDraft(r.Context(), offer, result); err == nil {
			resp.EmailDraft = draft
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/okian/offerlens/internal/domain/contribution"
)

// contributionRequest mirrors the request schema for POST /api/contributions.
type contributionRequest struct {
	JobTitle        string   `json:"job_title"`
	Company         string   `json:"company"`
	Location        string   `json:"location"`
	BaseSalary      float64  `json:"base_salary"`
	Bonus           float64  `json:"bonus"`
	EquityValue     float64  `json:"equity_value"`
	YearsExperience float64  `json:"years_experience"`
	TechStack       []string `json:"tech_stack"`
}

// ContributionsHandler handles salary contribution requests.
type ContributionsHandler struct {
	deps Dependencies
}

// NewContributionsHandler creates a new contributions handler.
func NewContributionsHandler(deps Dependencies) *ContributionsHandler {
	return &ContributionsHandler{deps: deps}
}

// HandlePostContribution handles POST /api/contributions requests.
// Both accepted and duplicate submissions answer 200 with the outcome in
// the body; only validation failures reject with 422.
func (h *ContributionsHandler) HandlePostContribution(w http.ResponseWriter, r *http.Request) {
	var req contributionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}

	sub := contribution.Submission{
		JobTitle:        req.JobTitle,
		Company:         req.Company,
		Location:        req.Location,
		BaseSalary:      req.BaseSalary,
		Bonus:           req.Bonus,
		EquityValue:     req.EquityValue,
		YearsExperience: req.YearsExperience,
		TechStack:       req.TechStack,
	}

	receipt, err := h.deps.Contribute(r.Context(), sub)
	if err != nil {
		if verr, ok := asValidationError(err); ok {
			writeValidationError(w, verr)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}

	writeJSON(w, http.StatusOK, receipt)
}

// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
)

// MarketHandler handles direct market data queries.
type MarketHandler struct {
	deps Dependencies
}

// NewMarketHandler creates a new market handler.
func NewMarketHandler(deps Dependencies) *MarketHandler {
	return &MarketHandler{deps: deps}
}

// HandleGetMarket handles GET /api/market requests.
// Query parameters: title, location, years, tech (comma-separated).
func (h *MarketHandler) HandleGetMarket(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	title := strings.TrimSpace(q.Get("title"))
	if title == "" {
		writeError(w, http.StatusBadRequest, "bad_request", errors.New("missing title"))
		return
	}
	location := strings.TrimSpace(q.Get("location"))
	if location == "" {
		writeError(w, http.StatusBadRequest, "bad_request", errors.New("missing location"))
		return
	}

	var years float64
	if raw := q.Get("years"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil || parsed < 0 {
			writeError(w, http.StatusBadRequest, "bad_request", errors.New("invalid years; must be a non-negative number"))
			return
		}
		years = parsed
	}

	var tech []string
	if raw := q.Get("tech"); raw != "" {
		for _, t := range strings.Split(raw, ",") {
			if t = strings.TrimSpace(t); t != "" {
				tech = append(tech, t)
			}
		}
	}

	stats, err := h.deps.MarketData(r.Context(), title, location, years, tech)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

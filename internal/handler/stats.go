package handler

import (
	"net/http"
	"strconv"

	"github.com/mvbarbosa/fuellog/internal/service"
)

// statsResponse bundles totals and the daily-cost chart series.
type statsResponse struct {
	Totals service.Totals    `json:"totals"`
	Daily  []service.DayCost `json:"daily"`
}

// GetStats handles GET /stats?category=&days=.
// days is optional; out-of-range values fall back to the configured window.
func (s *Server) GetStats(w http.ResponseWriter, r *http.Request) {
	category, ok := s.categoryParam(w, r)
	if !ok {
		return
	}

	days := 0
	if v := r.URL.Query().Get("days"); v != "" {
		days, _ = strconv.Atoi(v) // non-numeric → 0 → configured default
	}

	totals, err := s.stats.Totals(r.Context(), category)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	daily, err := s.stats.DailyCosts(r.Context(), category, days)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, statsResponse{Totals: totals, Daily: daily})
}

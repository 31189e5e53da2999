package api

import (
	"net/http"

	"fcnca-dashboard/risk"
)

func (s *Server) handleGetRisk(w http.ResponseWriter, r *http.Request) {
	entries := risk.Breakdown()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"entries": entries,
		"totals":  risk.CategoryTotals(entries),
		"total":   risk.Total(entries),
	})
}

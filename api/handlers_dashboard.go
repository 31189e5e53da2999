package api

import (
	"net/http"

	"fcnca-dashboard/dashboard"
)

// handleDashboard loads the price history (fetching it on first run) and
// renders the page. Any failure aborts the render with a generic 500.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	records, err := s.loader.Load(r.Context())
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to load dashboard", err)
		return
	}

	start, end := s.loader.Range()
	view := dashboard.NewView(s.content, s.loader.Symbol(), start, end, records, s.llmEnabled)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.renderer.Render(w, view); err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to load dashboard", err)
	}
}

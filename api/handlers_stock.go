package api

import (
	"fmt"
	"net/http"
	"strings"

	"fcnca-dashboard/stock"
)

// handleGetStock returns the price history with its summary
func (s *Server) handleGetStock(w http.ResponseWriter, r *http.Request) {
	records, err := s.loader.Load(r.Context())
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to load stock data", err)
		return
	}

	start, end := s.loader.Range()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"symbol":  s.loader.Symbol(),
		"start":   start.Format(stock.DateLayout),
		"end":     end.Format(stock.DateLayout),
		"summary": stock.Summarize(records),
		"data":    records,
	})
}

// handleExportStockCSV returns the price history as a CSV download
func (s *Server) handleExportStockCSV(w http.ResponseWriter, r *http.Request) {
	records, err := s.loader.Load(r.Context())
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to load stock data", err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment;filename=%s_stock_data.csv", strings.ToLower(s.loader.Symbol())))

	if err := stock.WriteCSV(w, records); err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to export stock data", err)
	}
}

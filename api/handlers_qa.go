package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"fcnca-dashboard/database"
	"fcnca-dashboard/qa"
)

// askRequest is the body of POST /api/qa and of each /ws/qa frame
type askRequest struct {
	Question string `json:"question"`
}

const maxAskBody = 8 << 10

func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxAskBody)).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	ans, err := s.qa.Ask(r.Context(), req.Question)
	if err != nil {
		if isQuestionError(err) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Failed to answer question", err)
		return
	}

	writeJSON(w, http.StatusOK, ans)
}

func (s *Server) handleGetQAHistory(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		http.Error(w, "QA history is disabled", http.StatusServiceUnavailable)
		return
	}

	limit := getIntParam(r, "limit", 20, intPtr(1), intPtr(200))
	logs, err := s.history.GetRecentQALogs(limit)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to load QA history", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"data":  logs,
		"limit": limit,
	})
}

func (s *Server) handleGetQALog(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		http.Error(w, "QA history is disabled", http.StatusServiceUnavailable)
		return
	}

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}

	entry, err := s.history.GetQALog(id)
	if err != nil {
		if database.IsNotFound(err) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Failed to load QA log", err)
		return
	}

	writeJSON(w, http.StatusOK, entry)
}

func isQuestionError(err error) bool {
	return errors.Is(err, qa.ErrEmptyQuestion) || errors.Is(err, qa.ErrQuestionTooLong)
}

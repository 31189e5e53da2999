package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"go.uber.org/zap"
)

// getIntParam retrieves an integer query parameter with default value and optional range validation
func getIntParam(r *http.Request, key string, defaultVal int, minVal, maxVal *int) int {
	valStr := r.URL.Query().Get(key)
	if valStr == "" {
		return defaultVal
	}

	val, err := strconv.Atoi(valStr)
	if err != nil {
		return defaultVal
	}

	if minVal != nil && val < *minVal {
		return defaultVal
	}
	if maxVal != nil && val > *maxVal {
		return defaultVal
	}

	return val
}

// respondWithError logs the error and sends a plain error response.
// The cause stays in the log so internals are not exposed.
func respondWithError(w http.ResponseWriter, code int, message string, err error) {
	if err != nil {
		zap.S().Warnf("API Error [%d]: %s - %v", code, message, err)
	} else {
		zap.S().Warnf("API Error [%d]: %s", code, message)
	}
	http.Error(w, message, code)
}

// writeJSON sends v as a JSON response with the given status
func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.S().Warnf("API Error: encode response: %v", err)
	}
}

func intPtr(v int) *int { return &v }

// Package api holds the JSON response helpers shared by nibbled's handlers
// and middleware.
package api

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Error string `json:"error"`
}

// SuggestResponse is the body of a successful POST /suggest.
type SuggestResponse struct {
	Suggestions []string `json:"suggestions"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status     string `json:"status"`
	Message    string `json:"message"`
	AIProvider string `json:"aiProvider"`
	Model      string `json:"model"`
}

// ProbeResponse is the body of GET /test-ai.
type ProbeResponse struct {
	Status   string `json:"status"`
	Response string `json:"response,omitempty"`
	Error    string `json:"error,omitempty"`
}

// JSON writes a JSON response with the given status code
func JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// Error writes an error JSON response
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, ErrorResponse{Error: message})
}

// BodyTooLarge writes the 413 reply for a request over limit bytes.
func BodyTooLarge(w http.ResponseWriter, limit int64) {
	Error(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("request body exceeds %d bytes", limit))
}

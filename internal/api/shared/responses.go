// Package shared holds response helpers and context keys used across api
// handlers and middleware.
package shared

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// ErrorResponse is the standard error body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ValidationErrorResponse carries per-field validation failures.
type ValidationErrorResponse struct {
	Errors map[string]string `json:"errors"`
}

// RespondWithJSON writes a JSON response with the given status code and data.
func RespondWithJSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode JSON response",
			slog.String("error", err.Error()),
			slog.String("path", r.URL.Path))
	}
}

// RespondWithError writes a JSON error response with the given status code
// and message.
func RespondWithError(w http.ResponseWriter, r *http.Request, status int, message string) {
	RespondWithJSON(w, r, status, ErrorResponse{Error: message})
}

// RespondWithValidationErrors writes a 422 response carrying the per-field
// error map.
func RespondWithValidationErrors(w http.ResponseWriter, r *http.Request, errs map[string]string) {
	RespondWithJSON(w, r, http.StatusUnprocessableEntity, ValidationErrorResponse{Errors: errs})
}

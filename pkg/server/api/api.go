package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync/atomic"

	"github.com/rs/zerolog/log"

	"github.com/lurelight/lurelight/pkg/brand"
	"github.com/lurelight/lurelight/pkg/engine"
)

// Deps holds dependencies for API handlers.
// This pattern enables dependency injection and easier testing.
type Deps struct {
	// Engine runs the analysis pipeline.
	Engine *engine.Engine

	// Ready flag for readiness check.
	Ready *atomic.Bool
}

// ErrorResponse is the standard JSON error body, used consistently across
// all endpoints.
//
// Example:
//
//	{
//	  "error": "Unprocessable Entity",
//	  "message": "visited URL yields no registrable domain"
//	}
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// WriteError writes a standard JSON error response, picking the status code
// from the error type:
//   - brand.ErrUnknownBrand, brand.ErrDomainParse → 422 Unprocessable Entity
//   - everything else → 500 Internal Server Error
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	statusCode := http.StatusInternalServerError
	errorType := "Internal Server Error"
	if errors.Is(err, brand.ErrUnknownBrand) || errors.Is(err, brand.ErrDomainParse) {
		statusCode = http.StatusUnprocessableEntity
		errorType = "Unprocessable Entity"
	}

	log.Error().
		Str("component", "api").
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Int("status", statusCode).
		Err(err).
		Msg("Request failed")

	WriteJSONError(w, statusCode, errorType, err.Error())
}

// WriteJSONError writes a custom JSON error response with a specific status
// code, for handlers that need fine-grained control.
func WriteJSONError(w http.ResponseWriter, statusCode int, errorType, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	response := ErrorResponse{Error: errorType, Message: message}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Error().Str("component", "api").Err(err).Msg("Failed to encode error response")
	}
}

// WriteJSON writes a successful JSON response.
func WriteJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error().Str("component", "api").Err(err).Msg("Failed to encode JSON response")
	}
}

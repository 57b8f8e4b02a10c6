package handler

import (
	"encoding/json"
	"net/http"

	"catalog-sync/internal/middleware"
	"catalog-sync/internal/model"

	"github.com/rs/zerolog"
)

// writeJSON writes a JSON response with the given status code. Encoding
// errors are dropped since the status line has already been sent.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes a structured error response.
func writeError(w http.ResponseWriter, r *http.Request, status int, code, message string, logger zerolog.Logger) {
	requestID := middleware.RequestIDFromContext(r.Context())

	event := logger.Warn()
	if status >= http.StatusInternalServerError {
		event = logger.Error()
	}
	event.
		Str("code", code).
		Str("error", message).
		Int("status", status).
		Str("request_id", requestID).
		Msg("handler error")

	writeJSON(w, status, model.ErrorResponse{
		Error:         code,
		Message:       message,
		CorrelationID: requestID,
	})
}

// methodNotAllowed rejects a request whose method does not match allowed.
func methodNotAllowed(w http.ResponseWriter, r *http.Request, allowed string, logger zerolog.Logger) {
	w.Header().Set("Allow", allowed)
	writeError(w, r, http.StatusMethodNotAllowed, model.ErrCodeMethodNotAllowed, "method not allowed", logger)
}

package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	app_errors "wanderlust/backend/internal/errors"
	"wanderlust/backend/internal/model"
)

// ErrorResponse defines the standard JSON structure for error messages.
type ErrorResponse struct {
	Error string `json:"error"`
}

// SendMessageRequest is the body of POST /session/messages.
type SendMessageRequest struct {
	Text string `json:"text" validate:"max=4000" example:"Plan a 3-day trip to Paris"`
}

// SendMessageResponse reports whether a turn ran, along with the updated session.
type SendMessageResponse struct {
	Sent    bool               `json:"sent"`
	Session *model.SessionView `json:"session"`
}

// SetLanguageRequest is the body of PUT /session/language.
type SetLanguageRequest struct {
	Language string `json:"language" validate:"required,oneof=en ur" example:"ur"`
}

// ClearRequest is the body of POST /session/clear. Nothing is cleared unless
// Confirmed is true.
type ClearRequest struct {
	Confirmed bool `json:"confirmed"`
}

// ClearResponse reports whether the conversation was cleared.
type ClearResponse struct {
	Cleared bool               `json:"cleared"`
	Session *model.SessionView `json:"session"`
}

// respondWithError maps business-layer errors to HTTP status codes and writes
// a standard JSON error body. Details of unexpected errors stay in the log.
func respondWithError(w http.ResponseWriter, err error) {
	var statusCode int
	var message string

	switch {
	case errors.Is(err, app_errors.ErrNotFound):
		statusCode = http.StatusNotFound
		message = "The requested resource was not found."
	case errors.Is(err, app_errors.ErrValidation):
		statusCode = http.StatusBadRequest
		message = err.Error()
	default:
		statusCode = http.StatusInternalServerError
		message = "An unexpected internal server error occurred."
	}

	slog.Warn("Responding with error", "status_code", statusCode, "client_message", message, "internal_error", err)

	respondWithJSON(w, statusCode, ErrorResponse{Error: message})
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		slog.Error("Failed to marshal JSON response", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err := w.Write(response); err != nil {
		slog.Error("Failed to write JSON response", "error", err)
	}
}

func respondWithBody(w http.ResponseWriter, contentType string, body string) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(body)); err != nil {
		slog.Error("Failed to write response body", "error", err)
	}
}

// Package apierrors writes the JSON error envelope and logs failures
// with request context. Every error response in the API has the shape
// {"error": "message"}; handlers never leak internal error text to the
// client, only to the log.
package apierrors

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// envelope is the wire shape of every error response.
type envelope struct {
	Error string `json:"error"`
}

// Write sends a JSON error envelope with the given status.
func Write(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(envelope{Error: message})
}

// WriteJSON sends an arbitrary payload with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// ErrorLogger pairs error responses with structured log entries so the
// client sees a stable message while the log keeps the cause.
type ErrorLogger struct {
	log *zap.Logger
}

func NewErrorLogger(logger *zap.Logger) *ErrorLogger {
	return &ErrorLogger{log: logger}
}

// ServerError logs the failure and answers 500 with a generic message.
func (e *ErrorLogger) ServerError(w http.ResponseWriter, r *http.Request, logMsg string, err error) {
	e.log.Error(logMsg,
		zap.Error(err),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
	)
	Write(w, http.StatusInternalServerError, "Server error")
}

// BadRequest logs the failure and answers 400 with the given user message.
func (e *ErrorLogger) BadRequest(w http.ResponseWriter, r *http.Request, logMsg string, err error, userMsg string) {
	e.log.Warn(logMsg,
		zap.Error(err),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
	)
	Write(w, http.StatusBadRequest, userMsg)
}

// NotFound answers 404 with the given user message. Lookups that miss are
// not logged; they are ordinary traffic.
func (e *ErrorLogger) NotFound(w http.ResponseWriter, userMsg string) {
	Write(w, http.StatusNotFound, userMsg)
}

// Forbidden answers 403 with the given user message.
func (e *ErrorLogger) Forbidden(w http.ResponseWriter, userMsg string) {
	Write(w, http.StatusForbidden, userMsg)
}

// Package handler provides HTTP request handlers.
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/hormonya/hormonya/internal/handler/dto"
)

// Version is reported by the index endpoint.
const Version = "0.1.0"

// Handler serves the endpoints that need no dependencies.
type Handler struct{}

// New creates a new Handler instance.
func New() *Handler {
	return &Handler{}
}

// Index reports the service name and version.
// GET /api
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	response := map[string]string{
		"message": "Hormonya API",
		"version": Version,
	}
	writeJSON(w, http.StatusOK, response)
}

// NotFound handles 404 responses.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	writeMessage(w, http.StatusNotFound, "Resource not found.")
}

// MethodNotAllowed handles 405 responses.
func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeMessage(w, http.StatusMethodNotAllowed, "Method not allowed.")
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeMessage writes a {success:false, message} failure.
func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, dto.ErrorResponse{Message: message})
}

// writeInternalError logs err and writes a 500 without leaking its text.
func writeInternalError(w http.ResponseWriter, logger *slog.Logger, event string, err error) {
	logger.Error(event, "error", err)
	writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "An internal error occurred."})
}

// decodeJSON decodes the request body into dst. Oversized bodies are
// reported so the caller can answer 413 instead of 400.
func decodeJSON(r *http.Request, dst any) (tooLarge bool, err error) {
	err = json.NewDecoder(r.Body).Decode(dst)
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr), err
}

// writeDecodeError answers a body decodeJSON could not read.
func writeDecodeError(w http.ResponseWriter, tooLarge bool) {
	if tooLarge {
		writeMessage(w, http.StatusRequestEntityTooLarge, "Request body too large.")
		return
	}
	writeMessage(w, http.StatusBadRequest, "Invalid request body.")
}

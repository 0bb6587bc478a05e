package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	app_errors "viz-ai/backend/internal/errors"
)

// This file contains shared DTOs for API responses and helpers for sending
// consistent HTTP responses.

// ErrorResponse defines the standard JSON structure for error messages.
type ErrorResponse struct {
	Error string `json:"error"`
}

// StatusResponse is returned by operations that have no resource to show.
type StatusResponse struct {
	Status string `json:"status"`
}

// HealthResponse reports the state of the Ollama connection.
type HealthResponse struct {
	Status          string  `json:"status"`
	OllamaConnected bool    `json:"ollama_connected"`
	ActiveModel     *string `json:"active_model"`
}

// ActivateModelRequest selects the active model.
type ActivateModelRequest struct {
	ModelName string `json:"model_name" validate:"required" example:"llama3:8b"`
}

// errorStatus maps business-layer errors to an HTTP status code and the
// message shown to the client.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, app_errors.ErrNotFound):
		return http.StatusNotFound, "The requested resource was not found."
	case errors.Is(err, app_errors.ErrValidation), errors.Is(err, app_errors.ErrUnsupportedFileType):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, app_errors.ErrConflict), errors.Is(err, app_errors.ErrInvalidTransition):
		return http.StatusConflict, "A conflict occurred with the current state of the resource."
	case errors.Is(err, app_errors.ErrPermission):
		return http.StatusForbidden, "You do not have permission to perform this action."
	case errors.Is(err, app_errors.ErrUnrecoverableDocument), errors.Is(err, app_errors.ErrMalformedDocument):
		return http.StatusUnprocessableEntity, err.Error()
	case errors.Is(err, app_errors.ErrGenerationUnavailable), errors.Is(err, app_errors.ErrJSONDecode):
		return http.StatusBadGateway, "The model did not return a usable visualization."
	case errors.Is(err, app_errors.ErrServiceUnavailable):
		return http.StatusServiceUnavailable, "Ollama is not reachable."
	default:
		// Unhandled errors never leak implementation details to the client.
		return http.StatusInternalServerError, "An unexpected internal server error occurred."
	}
}

// respondWithError is the centralized error handling function for the API layer.
func respondWithError(w http.ResponseWriter, err error) {
	statusCode, message := errorStatus(err)
	slog.Warn("Responding with error", "status_code", statusCode, "client_message", message, "internal_error", err)
	respondWithJSON(w, statusCode, ErrorResponse{Error: message})
}

func respondWithJSON(w http.ResponseWriter, code int, payload any) {
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

// sendStreamError sends a structured error message over a Server-Sent Events stream.
func sendStreamError(w http.ResponseWriter, message string) {
	slog.Warn("Sending stream error to client", "message", message)
	jsonData, err := json.Marshal(ErrorResponse{Error: message})
	if err != nil {
		slog.Error("Failed to marshal stream error payload", "error", err)
		return
	}
	if _, err := fmt.Fprintf(w, "event: error\ndata: %s\n\n", string(jsonData)); err != nil {
		slog.Warn("Failed to write stream error, client might have disconnected", "error", err)
		return
	}
	if flusher, ok := w.(http.Flusher); ok {
		flusher.Flush()
	}
}

// writeStreamEvent writes one SSE data event. A write error means the client
// has gone away.
func writeStreamEvent(w http.ResponseWriter, data any) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		slog.Error("Failed to marshal stream data to JSON", "error", err)
		return nil
	}
	if _, err := fmt.Fprintf(w, "data: %s\n\n", string(jsonData)); err != nil {
		return fmt.Errorf("failed to write data to stream: %w", err)
	}
	if flusher, ok := w.(http.Flusher); ok {
		flusher.Flush()
	}
	return nil
}

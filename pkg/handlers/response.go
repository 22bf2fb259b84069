// Package handlers implements the HTTP surface over the CRUD engine.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/mediamarket-ai/chat-engine/pkg/apperrors"
)

// Message is the confirmation body returned by delete endpoints.
type Message struct {
	Message string `json:"message"`
}

// ErrorResponse writes a JSON error response and returns any encoding error.
func ErrorResponse(w http.ResponseWriter, statusCode int, errorCode, message string) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(map[string]string{
		"error":   errorCode,
		"message": message,
	})
}

// WriteJSON writes a JSON response and returns any encoding error.
func WriteJSON(w http.ResponseWriter, statusCode int, data interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	if statusCode != http.StatusOK {
		w.WriteHeader(statusCode)
	}
	return json.NewEncoder(w).Encode(data)
}

// WriteEngineError classifies an engine error and writes the matching HTTP
// response. Taxonomy errors carry client-safe messages already (sensitive
// filter values are redacted at the source); anything unclassified is logged
// and reported as an opaque 500.
func WriteEngineError(w http.ResponseWriter, logger *zap.Logger, err error) {
	var status int
	var code string
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		status, code = http.StatusNotFound, "not_found"
	case errors.Is(err, apperrors.ErrAlreadyExists):
		status, code = http.StatusConflict, "conflict"
	case errors.Is(err, apperrors.ErrTooManyItems):
		status, code = http.StatusConflict, "too_many_items"
	case errors.Is(err, apperrors.ErrInvalidArgument):
		status, code = http.StatusUnprocessableEntity, "invalid_argument"
	default:
		logger.Error("Unclassified engine error", zap.Error(err))
		if werr := ErrorResponse(w, http.StatusInternalServerError, "internal_error", "Internal server error"); werr != nil {
			logger.Error("Failed to write error response", zap.Error(werr))
		}
		return
	}

	if werr := ErrorResponse(w, status, code, err.Error()); werr != nil {
		logger.Error("Failed to write error response", zap.Error(werr))
	}
}

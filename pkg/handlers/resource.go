package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/mediamarket-ai/chat-engine/pkg/apperrors"
	"github.com/mediamarket-ai/chat-engine/pkg/crud"
)

// Resource adapts one entity's CRUD engine to HTTP. R, C, U mirror the
// engine's type parameters; P is the client-facing shape produced by
// toPublic. Entity handlers embed a Resource and register the subset of its
// methods their entity exposes.
type Resource[R any, C crud.FieldMapper, U crud.FieldMapper, P any] struct {
	engine    *crud.Engine[R, C, U]
	toPublic  func(R) P
	label     string
	sensitive bool
	logger    *zap.Logger
}

// NewResource builds a Resource. The label names the entity in confirmation
// messages ("User", "Chat session"). Sensitive entities get their filter
// values redacted in those messages, matching the engine's error text.
func NewResource[R any, C crud.FieldMapper, U crud.FieldMapper, P any](
	engine *crud.Engine[R, C, U],
	toPublic func(R) P,
	label string,
	sensitive bool,
	logger *zap.Logger,
) *Resource[R, C, U, P] {
	return &Resource[R, C, U, P]{
		engine:    engine,
		toPublic:  toPublic,
		label:     label,
		sensitive: sensitive,
		logger:    logger,
	}
}

// Get handles GET /api/{entity}/{id}.
func (h *Resource[R, C, U, P]) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := ParseID(w, r, h.logger)
	if !ok {
		return
	}

	records, err := h.engine.Get(r.Context(), map[string]any{"id": id})
	if err != nil {
		WriteEngineError(w, h.logger, err)
		return
	}

	if err := WriteJSON(w, http.StatusOK, h.toPublic(records[0])); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// List handles GET /api/{entity}.
func (h *Resource[R, C, U, P]) List(w http.ResponseWriter, r *http.Request) {
	publics, err := h.list(r)
	if err != nil {
		WriteEngineError(w, h.logger, err)
		return
	}

	if err := WriteJSON(w, http.StatusOK, publics); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// list runs the shared listing path so envelope variants can reuse it.
func (h *Resource[R, C, U, P]) list(r *http.Request) ([]P, error) {
	params, err := ParseFilterParams(r.URL.Query())
	if err != nil {
		return nil, err
	}

	records, err := h.engine.GetAll(r.Context(), params)
	if err != nil {
		return nil, err
	}

	publics := make([]P, 0, len(records))
	for _, record := range records {
		publics = append(publics, h.toPublic(record))
	}
	return publics, nil
}

// Create handles POST /api/{entity}. The body is either a single object or
// an array of objects; with ?return_nothing=true the inserted rows are not
// shipped back and the response is 204.
func (h *Resource[R, C, U, P]) Create(w http.ResponseWriter, r *http.Request) {
	returnNothing, err := ParseReturnNothing(r.URL.Query())
	if err != nil {
		WriteEngineError(w, h.logger, err)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Failed to read request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	inputs, wasList, err := decodeCreateBody[C](body)
	if err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	records, err := h.engine.Create(r.Context(), inputs, returnNothing)
	if err != nil {
		WriteEngineError(w, h.logger, err)
		return
	}

	if returnNothing {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	publics := make([]P, 0, len(records))
	for _, record := range records {
		publics = append(publics, h.toPublic(record))
	}

	var response any = publics
	if !wasList && len(publics) == 1 {
		response = publics[0]
	}
	if err := WriteJSON(w, http.StatusCreated, response); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Update handles PATCH /api/{entity}/{id}. Every writable column is
// overwritten; the response carries the post-update row.
func (h *Resource[R, C, U, P]) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := ParseID(w, r, h.logger)
	if !ok {
		return
	}

	var input U
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	record, err := h.engine.Update(r.Context(), id, input)
	if err != nil {
		WriteEngineError(w, h.logger, err)
		return
	}

	if err := WriteJSON(w, http.StatusOK, h.toPublic(record)); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Delete handles DELETE /api/{entity}/{id}.
func (h *Resource[R, C, U, P]) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := ParseID(w, r, h.logger)
	if !ok {
		return
	}

	filters := map[string]any{"id": id}
	if _, err := h.engine.Delete(r.Context(), filters, 0, nil); err != nil {
		WriteEngineError(w, h.logger, err)
		return
	}

	confirmation := Message{Message: fmt.Sprintf("%s with filters '%s' was deleted successfully.",
		h.label, apperrors.FormatFilters(filters, h.sensitive))}
	if err := WriteJSON(w, http.StatusOK, confirmation); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// decodeCreateBody accepts either a single object or an array of objects.
// The returned flag reports which form the client sent, so the response can
// mirror its shape.
func decodeCreateBody[C any](body []byte) ([]C, bool, error) {
	trimmed := bytes.TrimLeft(body, " \t\r\n")
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var inputs []C
		if err := json.Unmarshal(trimmed, &inputs); err != nil {
			return nil, true, err
		}
		return inputs, true, nil
	}

	var input C
	if err := json.Unmarshal(trimmed, &input); err != nil {
		return nil, false, err
	}
	return []C{input}, false, nil
}

package handlers

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mediamarket-ai/chat-engine/pkg/apperrors"
	"github.com/mediamarket-ai/chat-engine/pkg/crud"
)

// ParseID extracts and validates the record ID from the request path.
// Returns the parsed UUID and true on success, or uuid.Nil and false after
// writing an error response. Expects path parameter: id
func ParseID(w http.ResponseWriter, r *http.Request, logger *zap.Logger) (uuid.UUID, bool) {
	idStr := r.PathValue("id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_id", "Invalid record ID format"); err != nil {
			logger.Error("Failed to write error response", zap.Error(err))
		}
		return uuid.Nil, false
	}
	return id, true
}

// ParseFilterParams builds crud.FilterParams from list query parameters:
// limit, offset, sort_columns, sort_orders. The sort parameters accept both
// repetition (?sort_columns=a&sort_columns=b) and comma-separated values.
// Malformed numbers are InvalidArgument errors so they surface as 422, same
// as the engine's own sort validation.
func ParseFilterParams(query url.Values) (*crud.FilterParams, error) {
	params := &crud.FilterParams{
		SortColumns: splitListParam(query["sort_columns"]),
		SortOrders:  splitListParam(query["sort_orders"]),
	}

	if raw := query.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return nil, apperrors.Invalidf("limit must be an integer, got %q", raw)
		}
		params.Limit = &limit
	}
	if raw := query.Get("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil {
			return nil, apperrors.Invalidf("offset must be an integer, got %q", raw)
		}
		params.Offset = offset
	}

	return params, nil
}

// ParseReturnNothing reads the return_nothing query parameter. Absent means
// false; anything strconv.ParseBool accepts works.
func ParseReturnNothing(query url.Values) (bool, error) {
	raw := query.Get("return_nothing")
	if raw == "" {
		return false, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return false, apperrors.Invalidf("return_nothing must be a boolean, got %q", raw)
	}
	return value, nil
}

func splitListParam(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			part = strings.TrimSpace(part)
			if part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mediamarket-ai/chat-engine/pkg/apperrors"
)

func TestWriteEngineErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			"not found",
			&apperrors.NotFoundError{Table: "tenants", Op: "get"},
			http.StatusNotFound,
			"not_found",
		},
		{
			"already exists",
			&apperrors.AlreadyExistsError{Table: "tenants", Op: "create"},
			http.StatusConflict,
			"conflict",
		},
		{
			"too many items",
			&apperrors.TooManyItemsError{Table: "chat_logs", Op: "delete", Matched: 13, Limit: 12},
			http.StatusConflict,
			"too_many_items",
		},
		{
			"invalid argument",
			apperrors.Invalidf("invalid column name: nope"),
			http.StatusUnprocessableEntity,
			"invalid_argument",
		},
		{
			"store error",
			&apperrors.StoreError{Table: "tenants", Op: "get", Err: errors.New("connection refused")},
			http.StatusInternalServerError,
			"internal_error",
		},
		{
			"unknown error",
			errors.New("boom"),
			http.StatusInternalServerError,
			"internal_error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			WriteEngineError(rec, zap.NewNop(), tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)

			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantCode, body["error"])
		})
	}
}

func TestWriteEngineErrorHidesStoreDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	err := &apperrors.StoreError{Table: "users", Op: "get", Err: errors.New("password=secret in dsn")}
	WriteEngineError(rec, zap.NewNop(), err)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "secret")
	assert.Contains(t, rec.Body.String(), "Internal server error")
}

func TestWriteJSONSetsContentType(t *testing.T) {
	rec := httptest.NewRecorder()
	require.NoError(t, WriteJSON(rec, http.StatusOK, Message{Message: "hello"}))

	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"message":"hello"}`, rec.Body.String())
}

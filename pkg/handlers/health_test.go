package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mediamarket-ai/chat-engine/pkg/config"
)

func TestHealth(t *testing.T) {
	h := NewHealthHandler(&config.Config{}, zap.NewNop())

	rec := httptest.NewRecorder()
	h.Health(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestPing(t *testing.T) {
	cfg := &config.Config{Version: "1.2.3", Env: "test"}
	h := NewHealthHandler(cfg, zap.NewNop())

	rec := httptest.NewRecorder()
	h.Ping(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var response PingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, "ok", response.Status)
	assert.Equal(t, "chat-engine", response.Service)
	assert.Equal(t, "1.2.3", response.Version)
	assert.Equal(t, "test", response.Environment)
	assert.NotEmpty(t, response.GoVersion)
	assert.NotEmpty(t, response.Hostname)
}

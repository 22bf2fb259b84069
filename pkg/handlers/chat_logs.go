package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/mediamarket-ai/chat-engine/pkg/auth"
	"github.com/mediamarket-ai/chat-engine/pkg/crud"
	"github.com/mediamarket-ai/chat-engine/pkg/models"
)

// ChatLogsHandler handles chat log HTTP requests. Logs are append-only, so
// no update route is registered. Bulk ingestion posts an array with
// ?return_nothing=true.
type ChatLogsHandler struct {
	*Resource[models.ChatLog, models.ChatLogCreate, models.ChatLogUpdate, models.ChatLogPublic]
}

// NewChatLogsHandler creates a new chat logs handler.
func NewChatLogsHandler(engine *crud.Engine[models.ChatLog, models.ChatLogCreate, models.ChatLogUpdate], logger *zap.Logger) *ChatLogsHandler {
	return &ChatLogsHandler{
		Resource: NewResource(engine, models.ChatLog.Public, "Chat log", false, logger),
	}
}

// RegisterRoutes registers the chat logs handler's routes on the given mux.
func (h *ChatLogsHandler) RegisterRoutes(mux *http.ServeMux, authMiddleware *auth.Middleware) {
	mux.HandleFunc("GET /api/chat_logs", authMiddleware.RequireAuth(h.List))
	mux.HandleFunc("GET /api/chat_logs/{id}", authMiddleware.RequireAuth(h.Get))
	mux.HandleFunc("POST /api/chat_logs", authMiddleware.RequireAuth(h.Create))
	mux.HandleFunc("DELETE /api/chat_logs/{id}", authMiddleware.RequireAuth(h.Delete))
}

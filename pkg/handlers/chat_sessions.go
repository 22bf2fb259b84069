package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/mediamarket-ai/chat-engine/pkg/auth"
	"github.com/mediamarket-ai/chat-engine/pkg/crud"
	"github.com/mediamarket-ai/chat-engine/pkg/models"
)

// ChatSessionsHandler handles chat session HTTP requests. Sessions are
// immutable once created, so no update route is registered.
type ChatSessionsHandler struct {
	*Resource[models.ChatSession, models.ChatSessionCreate, models.ChatSessionUpdate, models.ChatSessionPublic]
}

// NewChatSessionsHandler creates a new chat sessions handler.
func NewChatSessionsHandler(engine *crud.Engine[models.ChatSession, models.ChatSessionCreate, models.ChatSessionUpdate], logger *zap.Logger) *ChatSessionsHandler {
	return &ChatSessionsHandler{
		Resource: NewResource(engine, models.ChatSession.Public, "Chat session", false, logger),
	}
}

// RegisterRoutes registers the chat sessions handler's routes on the given mux.
func (h *ChatSessionsHandler) RegisterRoutes(mux *http.ServeMux, authMiddleware *auth.Middleware) {
	mux.HandleFunc("GET /api/chat_sessions", authMiddleware.RequireAuth(h.List))
	mux.HandleFunc("GET /api/chat_sessions/{id}", authMiddleware.RequireAuth(h.Get))
	mux.HandleFunc("POST /api/chat_sessions", authMiddleware.RequireAuth(h.Create))
	mux.HandleFunc("DELETE /api/chat_sessions/{id}", authMiddleware.RequireAuth(h.Delete))
}

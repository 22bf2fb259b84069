package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/mediamarket-ai/chat-engine/pkg/auth"
	"github.com/mediamarket-ai/chat-engine/pkg/crud"
	"github.com/mediamarket-ai/chat-engine/pkg/models"
)

// UsersHandler handles user HTTP requests. Unlike the other entities, the
// users list wraps its results in a {data, count} envelope so clients can
// page without a second round-trip.
type UsersHandler struct {
	*Resource[models.User, models.UserCreate, models.UserUpdate, models.UserPublic]
	engine *crud.Engine[models.User, models.UserCreate, models.UserUpdate]
	logger *zap.Logger
}

// NewUsersHandler creates a new users handler.
func NewUsersHandler(engine *crud.Engine[models.User, models.UserCreate, models.UserUpdate], logger *zap.Logger) *UsersHandler {
	return &UsersHandler{
		Resource: NewResource(engine, models.User.Public, "User", true, logger),
		engine:   engine,
		logger:   logger,
	}
}

// RegisterRoutes registers the users handler's routes on the given mux.
func (h *UsersHandler) RegisterRoutes(mux *http.ServeMux, authMiddleware *auth.Middleware) {
	mux.HandleFunc("GET /api/users", authMiddleware.RequireAuth(h.List))
	mux.HandleFunc("GET /api/users/{id}", authMiddleware.RequireAuth(h.Get))
	mux.HandleFunc("POST /api/users", authMiddleware.RequireAuth(h.Create))
	mux.HandleFunc("PATCH /api/users/{id}", authMiddleware.RequireAuth(h.Update))
	mux.HandleFunc("DELETE /api/users/{id}", authMiddleware.RequireAuth(h.Delete))
}

// List handles GET /api/users. Overrides the generic listing to add the
// total row count for pagination metadata.
func (h *UsersHandler) List(w http.ResponseWriter, r *http.Request) {
	publics, err := h.list(r)
	if err != nil {
		WriteEngineError(w, h.logger, err)
		return
	}

	count, err := h.engine.CountAll(r.Context())
	if err != nil {
		WriteEngineError(w, h.logger, err)
		return
	}

	response := models.UsersPublic{Data: publics, Count: count}
	if err := WriteJSON(w, http.StatusOK, response); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

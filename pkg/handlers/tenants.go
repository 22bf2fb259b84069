package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/mediamarket-ai/chat-engine/pkg/auth"
	"github.com/mediamarket-ai/chat-engine/pkg/crud"
	"github.com/mediamarket-ai/chat-engine/pkg/models"
)

// TenantsHandler handles tenant HTTP requests.
type TenantsHandler struct {
	*Resource[models.Tenant, models.TenantCreate, models.TenantUpdate, models.TenantPublic]
}

// NewTenantsHandler creates a new tenants handler.
func NewTenantsHandler(engine *crud.Engine[models.Tenant, models.TenantCreate, models.TenantUpdate], logger *zap.Logger) *TenantsHandler {
	return &TenantsHandler{
		Resource: NewResource(engine, models.Tenant.Public, "Tenant", false, logger),
	}
}

// RegisterRoutes registers the tenants handler's routes on the given mux.
func (h *TenantsHandler) RegisterRoutes(mux *http.ServeMux, authMiddleware *auth.Middleware) {
	mux.HandleFunc("GET /api/tenants", authMiddleware.RequireAuth(h.List))
	mux.HandleFunc("GET /api/tenants/{id}", authMiddleware.RequireAuth(h.Get))
	mux.HandleFunc("POST /api/tenants", authMiddleware.RequireAuth(h.Create))
	mux.HandleFunc("PATCH /api/tenants/{id}", authMiddleware.RequireAuth(h.Update))
	mux.HandleFunc("DELETE /api/tenants/{id}", authMiddleware.RequireAuth(h.Delete))
}

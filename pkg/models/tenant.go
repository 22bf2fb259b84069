package models

import (
	"github.com/google/uuid"

	"github.com/mediamarket-ai/chat-engine/pkg/crud"
)

// Tenant represents a customer organization. EntraTenantID is the identity
// provider's tenant identifier (Microsoft Entra `tid`) and is unique.
type Tenant struct {
	ID            uuid.UUID `db:"id" json:"id"`
	CompanyName   string    `db:"company_name" json:"company_name"`
	EntraTenantID string    `db:"entra_tenant_id" json:"entra_tenant_id"`
	Settings      JSONBMap  `db:"settings" json:"settings"`
}

// TenantPublic is the tenant shape returned to API clients.
type TenantPublic struct {
	ID            uuid.UUID `json:"id"`
	CompanyName   string    `json:"company_name"`
	EntraTenantID string    `json:"entra_tenant_id"`
	Settings      JSONBMap  `json:"settings"`
}

// Public projects the record onto its client-facing shape.
func (t Tenant) Public() TenantPublic {
	return TenantPublic{
		ID:            t.ID,
		CompanyName:   t.CompanyName,
		EntraTenantID: t.EntraTenantID,
		Settings:      t.Settings,
	}
}

// TenantCreate holds the fields required to create a tenant.
type TenantCreate struct {
	CompanyName   string   `json:"company_name"`
	EntraTenantID string   `json:"entra_tenant_id"`
	Settings      JSONBMap `json:"settings"`
}

// FieldMap implements crud.FieldMapper.
func (t TenantCreate) FieldMap() map[string]any {
	return map[string]any{
		"company_name":    t.CompanyName,
		"entra_tenant_id": t.EntraTenantID,
		"settings":        orEmpty(t.Settings),
	}
}

// TenantUpdate holds the fields overwritten by a tenant update. Updates are
// whole-record overwrites, so the shape matches TenantCreate.
type TenantUpdate TenantCreate

// FieldMap implements crud.FieldMapper.
func (t TenantUpdate) FieldMap() map[string]any { return TenantCreate(t).FieldMap() }

// tenantColumns is the allow-list for tenant filters and sorting.
var tenantColumns = []string{"id", "company_name", "entra_tenant_id", "settings"}

var tenantWritable = []string{"company_name", "entra_tenant_id", "settings"}

// TenantBinding binds the tenant entity to its table for the CRUD engine.
func TenantBinding() *crud.Binding[Tenant] {
	return crud.NewBinding[Tenant]("tenant", tenantColumns, tenantWritable, false)
}

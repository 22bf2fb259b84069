package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/mediamarket-ai/chat-engine/pkg/crud"
)

// Role constants for application-scoped user roles. These are deliberately
// not the identity provider's RBAC roles.
const (
	RoleGuest = "guest"
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents a person within a tenant. EntraID is the identity
// provider's object id and is unique across tenants. Field lengths follow
// the UK Government Data Standards Catalogue, enforced by the schema.
type User struct {
	ID        uuid.UUID  `db:"id" json:"id"`
	EntraID   string     `db:"entra_id" json:"entra_id"`
	TenantID  uuid.UUID  `db:"tenant_id" json:"tenant_id"`
	Email     string     `db:"email" json:"email"`
	FullName  *string    `db:"full_name" json:"full_name"`
	Role      string     `db:"role" json:"role"`
	Settings  JSONBMap   `db:"settings" json:"settings"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt *time.Time `db:"updated_at" json:"updated_at"`
}

// UserPublic is the user shape returned to API clients.
type UserPublic struct {
	ID        uuid.UUID  `json:"id"`
	EntraID   string     `json:"entra_id"`
	TenantID  uuid.UUID  `json:"tenant_id"`
	Email     string     `json:"email"`
	FullName  *string    `json:"full_name"`
	Role      string     `json:"role"`
	Settings  JSONBMap   `json:"settings"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

// Public projects the record onto its client-facing shape.
func (u User) Public() UserPublic {
	return UserPublic{
		ID:        u.ID,
		EntraID:   u.EntraID,
		TenantID:  u.TenantID,
		Email:     u.Email,
		FullName:  u.FullName,
		Role:      u.Role,
		Settings:  u.Settings,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// UsersPublic wraps a user list with the total row count for pagination.
type UsersPublic struct {
	Data  []UserPublic `json:"data"`
	Count int64        `json:"count"`
}

// UserCreate holds the fields required to create a user.
type UserCreate struct {
	EntraID  string    `json:"entra_id"`
	TenantID uuid.UUID `json:"tenant_id"`
	Email    string    `json:"email"`
	FullName *string   `json:"full_name"`
	Role     string    `json:"role"`
	Settings JSONBMap  `json:"settings"`
}

// FieldMap implements crud.FieldMapper. An empty role falls back to guest.
func (u UserCreate) FieldMap() map[string]any {
	role := u.Role
	if role == "" {
		role = RoleGuest
	}
	return map[string]any{
		"entra_id":  u.EntraID,
		"tenant_id": u.TenantID,
		"email":     u.Email,
		"full_name": u.FullName,
		"role":      role,
		"settings":  orEmpty(u.Settings),
	}
}

// UserUpdate holds the fields overwritten by a user update. Updates are
// whole-record overwrites, so the shape matches UserCreate.
type UserUpdate UserCreate

// FieldMap implements crud.FieldMapper.
func (u UserUpdate) FieldMap() map[string]any { return UserCreate(u).FieldMap() }

var userColumns = []string{
	"id", "entra_id", "tenant_id", "email", "full_name", "role",
	"settings", "created_at", "updated_at",
}

var userWritable = []string{
	"entra_id", "tenant_id", "email", "full_name", "role", "settings",
}

// UserBinding binds the user entity to its table for the CRUD engine. The
// table is marked sensitive: filter values are redacted in error messages.
func UserBinding() *crud.Binding[User] {
	return crud.NewBinding[User]("user", userColumns, userWritable, true)
}

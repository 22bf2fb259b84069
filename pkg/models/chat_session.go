package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/mediamarket-ai/chat-engine/pkg/crud"
)

// ChatSession groups the chat logs of one user within a tenant.
type ChatSession struct {
	ID        uuid.UUID `db:"id" json:"id"`
	TenantID  uuid.UUID `db:"tenant_id" json:"tenant_id"`
	UserID    uuid.UUID `db:"user_id" json:"user_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// ChatSessionPublic is the chat session shape returned to API clients.
type ChatSessionPublic struct {
	ID        uuid.UUID `json:"id"`
	TenantID  uuid.UUID `json:"tenant_id"`
	UserID    uuid.UUID `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Public projects the record onto its client-facing shape.
func (s ChatSession) Public() ChatSessionPublic {
	return ChatSessionPublic{
		ID:        s.ID,
		TenantID:  s.TenantID,
		UserID:    s.UserID,
		CreatedAt: s.CreatedAt,
	}
}

// ChatSessionCreate holds the fields required to create a chat session.
type ChatSessionCreate struct {
	TenantID uuid.UUID `json:"tenant_id"`
	UserID   uuid.UUID `json:"user_id"`
}

// FieldMap implements crud.FieldMapper.
func (s ChatSessionCreate) FieldMap() map[string]any {
	return map[string]any{
		"tenant_id": s.TenantID,
		"user_id":   s.UserID,
	}
}

// ChatSessionUpdate holds the fields overwritten by a session update. No
// route exposes it today but the engine supports it uniformly.
type ChatSessionUpdate ChatSessionCreate

// FieldMap implements crud.FieldMapper.
func (s ChatSessionUpdate) FieldMap() map[string]any { return ChatSessionCreate(s).FieldMap() }

var chatSessionColumns = []string{"id", "tenant_id", "user_id", "created_at"}

var chatSessionWritable = []string{"tenant_id", "user_id"}

// ChatSessionBinding binds the chat session entity to its table.
func ChatSessionBinding() *crud.Binding[ChatSession] {
	return crud.NewBinding[ChatSession]("chat_session", chatSessionColumns, chatSessionWritable, false)
}

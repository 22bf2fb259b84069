package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/mediamarket-ai/chat-engine/pkg/crud"
)

// ChatLog is one prompt/response exchange within a chat session. Chat logs
// are write-heavy: the ingestion path creates them in bulk with the
// engine's return-nothing mode.
type ChatLog struct {
	ID            uuid.UUID `db:"id" json:"id"`
	ChatSessionID uuid.UUID `db:"chat_session_id" json:"chat_session_id"`
	Prompt        string    `db:"prompt" json:"prompt"`
	ResponseText  string    `db:"response_text" json:"response_text"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

// ChatLogPublic is the chat log shape returned to API clients.
type ChatLogPublic struct {
	ID            uuid.UUID `json:"id"`
	ChatSessionID uuid.UUID `json:"chat_session_id"`
	Prompt        string    `json:"prompt"`
	ResponseText  string    `json:"response_text"`
	CreatedAt     time.Time `json:"created_at"`
}

// Public projects the record onto its client-facing shape.
func (l ChatLog) Public() ChatLogPublic {
	return ChatLogPublic{
		ID:            l.ID,
		ChatSessionID: l.ChatSessionID,
		Prompt:        l.Prompt,
		ResponseText:  l.ResponseText,
		CreatedAt:     l.CreatedAt,
	}
}

// ChatLogCreate holds the fields required to create a chat log.
type ChatLogCreate struct {
	ChatSessionID uuid.UUID `json:"chat_session_id"`
	Prompt        string    `json:"prompt"`
	ResponseText  string    `json:"response_text"`
}

// FieldMap implements crud.FieldMapper.
func (l ChatLogCreate) FieldMap() map[string]any {
	return map[string]any{
		"chat_session_id": l.ChatSessionID,
		"prompt":          l.Prompt,
		"response_text":   l.ResponseText,
	}
}

// ChatLogUpdate holds the fields overwritten by a chat log update. No route
// exposes it today but the engine supports it uniformly.
type ChatLogUpdate ChatLogCreate

// FieldMap implements crud.FieldMapper.
func (l ChatLogUpdate) FieldMap() map[string]any { return ChatLogCreate(l).FieldMap() }

var chatLogColumns = []string{"id", "chat_session_id", "prompt", "response_text", "created_at"}

var chatLogWritable = []string{"chat_session_id", "prompt", "response_text"}

// ChatLogBinding binds the chat log entity to its table.
func ChatLogBinding() *crud.Binding[ChatLog] {
	return crud.NewBinding[ChatLog]("chat_log", chatLogColumns, chatLogWritable, false)
}

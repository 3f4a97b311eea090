package entity

import (
	"time"

	"github.com/google/uuid"
)

// ChatMessage is append-only; it is never updated after insert.
type ChatMessage struct {
	Id            uuid.UUID
	ChatSessionId uuid.UUID
	UserId        uuid.UUID
	Content       string
	Role          string // "user" | "assistant"
	CreatedAt     time.Time
	DeletedAt     *time.Time
	IsDeleted     bool
}

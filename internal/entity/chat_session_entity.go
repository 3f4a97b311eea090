package entity

import (
	"time"

	"github.com/google/uuid"
)

// ChatSession is created by the first successful turn of a conversation.
// UpdatedAt moves forward on every later turn so listings surface active sessions.
type ChatSession struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	Title     string // Derived from the first user message
	CreatedAt time.Time
	UpdatedAt *time.Time
	DeletedAt *time.Time
	IsDeleted bool
}


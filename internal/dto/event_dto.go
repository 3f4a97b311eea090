package dto

import (
	"time"

	"github.com/google/uuid"
)

// ChatTurnCompletedEvent is published on the in-process bus after a turn
// has persisted the user message.
type ChatTurnCompletedEvent struct {
	UserId      uuid.UUID `json:"user_id"`
	SessionId   uuid.UUID `json:"session_id"`
	NewSession  bool      `json:"new_session"`
	Degraded    bool      `json:"degraded"`
	FailureKind string    `json:"failure_kind,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`
}

package dto

import (
	"time"

	"github.com/google/uuid"
)

type HistoryItemDTO struct {
	Content string `json:"content"`
	IsBot   bool   `json:"isBot"`
}

type SendChatRequest struct {
	Message   string           `json:"message"`
	History   []HistoryItemDTO `json:"history"`
	SessionId string           `json:"sessionId,omitempty"`
}

// SendChatResponse omits sessionId on degraded replies.
type SendChatResponse struct {
	Message   string     `json:"message"`
	SessionId *uuid.UUID `json:"sessionId,omitempty"`
}

type GetAllSessionsResponse struct {
	Id        uuid.UUID  `json:"id"`
	Title     string     `json:"title"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

type GetChatHistoryResponse struct {
	Id        uuid.UUID `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

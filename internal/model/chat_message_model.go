package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ChatMessage struct {
	Id            uuid.UUID      `gorm:"type:uuid;primaryKey"`
	ChatSessionId uuid.UUID      `gorm:"type:uuid;not null;index"`
	UserId        uuid.UUID      `gorm:"type:uuid;not null;index"`
	Content       string         `gorm:"type:text;not null"`
	Role          string         `gorm:"type:varchar(16);not null"`
	CreatedAt     time.Time      `gorm:"autoCreateTime;index"`
	DeletedAt     gorm.DeletedAt `gorm:"index"`
}

func (ChatMessage) TableName() string {
	return "chat_messages"
}

package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Profile struct {
	Id                     uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Email                  string     `gorm:"type:varchar(255)"`
	FullName               string     `gorm:"type:varchar(255)"`
	SubscriptionPlan       string     `gorm:"type:varchar(20);not null;default:'free'"`
	SubscriptionStatus     string     `gorm:"type:varchar(20);not null;default:'active'"`
	BillingCustomerRef     *string    `gorm:"type:varchar(255)"`
	BillingSubscriptionRef *string    `gorm:"type:varchar(255)"`
	SubscriptionEndDate    *time.Time `gorm:"type:timestamp"`
	DailyMessageCount      int        `gorm:"not null;default:0"`
	LastMessageDate        *time.Time `gorm:"type:date"`
	CreatedAt              time.Time  `gorm:"autoCreateTime"`
	UpdatedAt              time.Time  `gorm:"autoUpdateTime"`
}

func (Profile) TableName() string {
	return "profiles"
}

type UsageLog struct {
	Id        uuid.UUID      `gorm:"type:uuid;primaryKey"`
	UserId    uuid.UUID      `gorm:"type:uuid;not null;index"`
	Action    string         `gorm:"type:varchar(64);not null"`
	Metadata  datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt time.Time      `gorm:"autoCreateTime;index"`
}

func (UsageLog) TableName() string {
	return "usage_logs"
}

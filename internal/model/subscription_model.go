package model

import (
	"time"

	"github.com/google/uuid"
)

type SubscriptionPlan struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string    `gorm:"type:varchar(255);not null"`
	Slug        string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	Description string    `gorm:"type:text"`
	Price       float64   `gorm:"type:decimal(10,2);not null"`
	Interval    string    `gorm:"column:billing_interval;type:varchar(10);not null"`
	IsActive    bool      `gorm:"default:true"`
	SortOrder   int       `gorm:"default:0"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
}

func (SubscriptionPlan) TableName() string {
	return "subscription_plans"
}

type CheckoutOrder struct {
	Id                   uuid.UUID  `gorm:"type:uuid;primaryKey"`
	UserId               uuid.UUID  `gorm:"type:uuid;not null;index"`
	PlanId               uuid.UUID  `gorm:"type:uuid;not null"`
	GrossAmount          int64      `gorm:"not null"`
	Status               string     `gorm:"type:varchar(20);not null;default:'pending'"`
	SnapToken            string     `gorm:"type:varchar(255)"`
	RedirectURL          string     `gorm:"type:text"`
	GatewayTransactionId *string    `gorm:"type:varchar(255)"`
	PaidAt               *time.Time `gorm:"type:timestamp"`
	CreatedAt            time.Time  `gorm:"autoCreateTime"`
	UpdatedAt            time.Time  `gorm:"autoUpdateTime"`
}

func (CheckoutOrder) TableName() string {
	return "checkout_orders"
}

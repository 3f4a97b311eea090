package entity

import (
	"time"

	"github.com/google/uuid"
)

type Profile struct {
	Id                     uuid.UUID // Same as the identity provider subject
	Email                  string
	FullName               string
	SubscriptionPlan       string // "free" | "premium"
	SubscriptionStatus     string // "active" | "canceled" | "past_due" | "unpaid"
	BillingCustomerRef     *string
	BillingSubscriptionRef *string
	SubscriptionEndDate    *time.Time
	DailyMessageCount      int
	LastMessageDate        *time.Time
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

type UsageLog struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	Action    string
	Metadata  map[string]interface{}
	CreatedAt time.Time
}

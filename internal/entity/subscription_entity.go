package entity

import (
	"time"

	"github.com/google/uuid"
)

type SubscriptionPlan struct {
	Id          uuid.UUID
	Name        string
	Slug        string
	Description string
	Price       float64
	Interval    string // "month" | "year"
	IsActive    bool
	SortOrder   int
	CreatedAt   time.Time
}

// CheckoutOrder tracks one hosted checkout. Id doubles as the gateway order id.
type CheckoutOrder struct {
	Id                   uuid.UUID
	UserId               uuid.UUID
	PlanId               uuid.UUID
	GrossAmount          int64
	Status               string // "pending" | "paid" | "failed"
	SnapToken            string
	RedirectURL          string
	GatewayTransactionId *string
	PaidAt               *time.Time
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

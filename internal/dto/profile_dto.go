package dto

import (
	"time"

	"github.com/google/uuid"
)

type ProfileResponse struct {
	Id                  uuid.UUID  `json:"id"`
	Email               string     `json:"email"`
	FullName            string     `json:"full_name"`
	SubscriptionPlan    string     `json:"subscription_plan"`
	SubscriptionStatus  string     `json:"subscription_status"`
	SubscriptionEndDate *time.Time `json:"subscription_end_date,omitempty"`
	DailyMessageCount   int        `json:"daily_message_count"`
	LastMessageDate     *time.Time `json:"last_message_date,omitempty"`
}

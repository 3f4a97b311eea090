package dto

import (
	"time"

	"github.com/google/uuid"
)

type SubscriptionPlanResponse struct {
	Id          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Interval    string    `json:"interval"`
}

type CreateCheckoutRequest struct {
	PlanId string `json:"planId" validate:"required,uuid"`
}

type CreateCheckoutResponse struct {
	SessionId   uuid.UUID `json:"sessionId"`
	Token       string    `json:"token"`
	RedirectUrl string    `json:"redirectUrl"`
}

type CheckSessionRequest struct {
	SessionId string `json:"sessionId" validate:"required,uuid"`
}

type CheckSessionResponse struct {
	SessionId   uuid.UUID  `json:"sessionId"`
	Status      string     `json:"status"`
	PlanId      uuid.UUID  `json:"planId"`
	GrossAmount int64      `json:"grossAmount"`
	PaidAt      *time.Time `json:"paidAt,omitempty"`
}

type MidtransWebhookRequest struct {
	TransactionStatus string `json:"transaction_status"`
	TransactionId     string `json:"transaction_id"`
	OrderId           string `json:"order_id"`
	FraudStatus       string `json:"fraud_status"`
	// Signature validation fields
	SignatureKey string `json:"signature_key"`
	StatusCode   string `json:"status_code"`
	GrossAmount  string `json:"gross_amount"`
}

// Package billing abstracts the hosted checkout provider.
package billing

import (
	"context"
	"errors"
)

var ErrGateway = errors.New("billing: gateway error")

type Outcome string

const (
	OutcomePaid    Outcome = "paid"
	OutcomeFailed  Outcome = "failed"
	OutcomePending Outcome = "pending"
	OutcomeUnknown Outcome = "unknown"
)

type CheckoutRequest struct {
	OrderId     string
	GrossAmount int64
	ItemId      string
	ItemName    string
	Email       string
	FullName    string
	FinishURL   string
}

type CheckoutSession struct {
	Token       string
	RedirectURL string
}

type TransactionStatus struct {
	OrderId           string
	TransactionId     string
	TransactionStatus string
	FraudStatus       string
	StatusCode        string
	GrossAmount       string
	Outcome           Outcome
}

type Gateway interface {
	CreateCheckout(ctx context.Context, req CheckoutRequest) (*CheckoutSession, error)
	GetStatus(ctx context.Context, orderId string) (*TransactionStatus, error)
	VerifySignature(orderId, statusCode, grossAmount, signature string) bool
}

// OutcomeFromStatus maps a provider transaction status to a billing outcome.
// A captured card payment flagged "challenge" is still pending review.
func OutcomeFromStatus(transactionStatus, fraudStatus string) Outcome {
	switch transactionStatus {
	case "capture":
		if fraudStatus == "challenge" {
			return OutcomePending
		}
		return OutcomePaid
	case "settlement":
		return OutcomePaid
	case "deny", "cancel", "expire", "failure":
		return OutcomeFailed
	case "pending":
		return OutcomePending
	default:
		return OutcomeUnknown
	}
}

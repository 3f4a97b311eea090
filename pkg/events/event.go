package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const (
	TypeSubscriptionCheckoutCreated = "SUBSCRIPTION_CHECKOUT_CREATED"
	TypeSubscriptionActivated       = "SUBSCRIPTION_ACTIVATED"
	TypeSubscriptionPaymentFailed   = "SUBSCRIPTION_PAYMENT_FAILED"
)

// Event defines the contract for all outbound domain events.
type Event interface {
	// EventID is unique per occurrence and used for broker-side dedup.
	EventID() string

	// EventType returns the unique code for this event (e.g., "SUBSCRIPTION_ACTIVATED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// Publisher delivers events to the broker.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

type BaseEvent struct {
	Id         string
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func NewEvent(eventType string, data map[string]interface{}) BaseEvent {
	return BaseEvent{
		Id:         uuid.NewString(),
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now(),
	}
}

func (e BaseEvent) EventID() string {
	return e.Id
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

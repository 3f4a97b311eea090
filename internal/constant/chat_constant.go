package constant

const (
	ChatMessageRoleUser      = "user"
	ChatMessageRoleAssistant = "assistant"

	// Returned when no completion provider is configured. Never persisted.
	ChatFallbackNotConfigured = "I appreciate you reaching out. I'm currently being configured by the development team to provide you with the best possible support. In the meantime, please know that your feelings are valid and it's okay to take things one step at a time. Is there anything specific you'd like to talk about today?"

	// Returned on any store or provider failure. Never persisted.
	ChatFallbackTechnical = "I'm experiencing some technical difficulties right now, but I want you to know that I'm here for you. Sometimes taking a deep breath and focusing on the present moment can help. How are you feeling right now, and what's one small thing that might bring you a bit of comfort?"
)

const (
	SubscriptionPlanFree    = "free"
	SubscriptionPlanPremium = "premium"

	SubscriptionStatusActive   = "active"
	SubscriptionStatusCanceled = "canceled"
	SubscriptionStatusPastDue  = "past_due"
	SubscriptionStatusUnpaid   = "unpaid"

	CheckoutStatusPending = "pending"
	CheckoutStatusPaid    = "paid"
	CheckoutStatusFailed  = "failed"

	PlanIntervalMonth = "month"
	PlanIntervalYear  = "year"

	UsageActionChatMessage = "chat_message"
)

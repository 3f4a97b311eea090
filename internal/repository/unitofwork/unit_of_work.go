package unitofwork

import (
	"context"

	"emoticore-be/internal/repository/contract"
)

// RepositoryFactory hands out a fresh UnitOfWork per request or per consumed event.
type RepositoryFactory interface {
	NewUnitOfWork(ctx context.Context) UnitOfWork
}

// UnitOfWork groups the repositories that must share one transaction,
// e.g. a session and its first message, or an order and the profile it activates.
// Repositories read from the pool until Begin is called.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	ChatSessionRepository() contract.ChatSessionRepository
	ChatMessageRepository() contract.ChatMessageRepository
	ProfileRepository() contract.ProfileRepository
	UsageLogRepository() contract.UsageLogRepository
	SubscriptionRepository() contract.SubscriptionRepository
}

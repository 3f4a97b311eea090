package service

import (
	"context"
	"encoding/json"
	"time"

	"emoticore-be/internal/constant"
	"emoticore-be/internal/dto"
	"emoticore-be/internal/entity"
	"emoticore-be/internal/pkg/logger"
	"emoticore-be/internal/repository/specification"
	"emoticore-be/internal/repository/unitofwork"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
)

const usageModule = "UsageConsumer"

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService turns chat turn events into usage accounting.
type consumerService struct {
	subscriber message.Subscriber
	topicName  string
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger
	now        func() time.Time
}

func NewConsumerService(
	subscriber message.Subscriber,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	sysLogger logger.ILogger,
) IConsumerService {
	return &consumerService{
		subscriber: subscriber,
		topicName:  topicName,
		uowFactory: uowFactory,
		logger:     sysLogger,
		now:        time.Now,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var evt dto.ChatTurnCompletedEvent
	if err := json.Unmarshal(msg.Payload, &evt); err != nil {
		cs.logger.Error(usageModule, "Failed to unmarshal turn event", map[string]interface{}{
			"message_id": msg.UUID,
			"error":      err.Error(),
		})
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	if err := cs.recordTurn(ctx, evt); err != nil {
		cs.logger.Error(usageModule, "Failed to record usage", map[string]interface{}{
			"user_id":    evt.UserId,
			"session_id": evt.SessionId,
			"error":      err.Error(),
		})
		msg.Nack()
		return
	}

	msg.Ack()
}

// recordTurn bumps the daily counter (resetting it on a new UTC calendar day)
// and appends a usage log row, in one transaction.
func (cs *consumerService) recordTurn(ctx context.Context, evt dto.ChatTurnCompletedEvent) error {
	uow := cs.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	profile, err := uow.ProfileRepository().FindOne(ctx, specification.ByID{ID: evt.UserId})
	if err != nil {
		return err
	}

	now := cs.now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	if profile == nil {
		profile = newFreeProfile(evt.UserId)
		profile.DailyMessageCount = 1
		profile.LastMessageDate = &today
		if err := uow.ProfileRepository().Create(ctx, profile); err != nil {
			return err
		}
	} else {
		if profile.LastMessageDate == nil || !sameDay(*profile.LastMessageDate, today) {
			profile.DailyMessageCount = 0
		}
		profile.DailyMessageCount++
		profile.LastMessageDate = &today
		if err := uow.ProfileRepository().Update(ctx, profile); err != nil {
			return err
		}
	}

	metadata := map[string]interface{}{
		"session_id":  evt.SessionId.String(),
		"new_session": evt.NewSession,
		"degraded":    evt.Degraded,
	}
	if evt.FailureKind != "" {
		metadata["failure_kind"] = evt.FailureKind
	}

	if err := uow.UsageLogRepository().Create(ctx, &entity.UsageLog{
		Id:        uuid.New(),
		UserId:    evt.UserId,
		Action:    constant.UsageActionChatMessage,
		Metadata:  metadata,
		CreatedAt: evt.OccurredAt,
	}); err != nil {
		return err
	}

	return uow.Commit()
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}

func newFreeProfile(userId uuid.UUID) *entity.Profile {
	return &entity.Profile{
		Id:                 userId,
		SubscriptionPlan:   constant.SubscriptionPlanFree,
		SubscriptionStatus: constant.SubscriptionStatusActive,
	}
}

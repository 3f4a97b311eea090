package service

import (
	"context"
	"encoding/json"

	"emoticore-be/internal/dto"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

type IPublisherService interface {
	PublishTurnCompleted(ctx context.Context, evt dto.ChatTurnCompletedEvent) error
}

type publisherService struct {
	topicName string
	publisher message.Publisher
}

func NewPublisherService(topicName string, publisher message.Publisher) IPublisherService {
	return &publisherService{
		topicName: topicName,
		publisher: publisher,
	}
}

func (ps *publisherService) PublishTurnCompleted(ctx context.Context, evt dto.ChatTurnCompletedEvent) error {
	payload, err := json.Marshal(evt)
	if err != nil {
		return err
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.SetContext(ctx)
	msg.Metadata.Set("user_id", evt.UserId.String())

	return ps.publisher.Publish(ps.topicName, msg)
}

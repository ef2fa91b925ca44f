package service

import (
	"context"
	"encoding/json"

	"chat-vector-be/internal/dto"
	"chat-vector-be/internal/pkg/logger"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

type IPublisherService interface {
	Publish(ctx context.Context, payload []byte) error
}

type publisherService struct {
	topicName string
	pubSub    *gochannel.GoChannel
}

func NewPublisherService(topicName string, pubSub *gochannel.GoChannel) IPublisherService {
	return &publisherService{
		topicName: topicName,
		pubSub:    pubSub,
	}
}

func (ps *publisherService) Publish(ctx context.Context, payload []byte) error {
	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.SetContext(ctx)
	return ps.pubSub.Publish(ps.topicName, msg)
}

// publishVectorCleanup hands index removals to the background consumer.
// The index is best-effort, so a publish failure is logged and dropped.
func publishVectorCleanup(ctx context.Context, publisher IPublisherService, log logger.ILogger, module string, ids []uuid.UUID) {
	if publisher == nil || len(ids) == 0 {
		return
	}
	payload, err := json.Marshal(dto.VectorCleanupMessage{Ids: ids})
	if err != nil {
		log.Warn(module, "failed to marshal vector cleanup message", map[string]interface{}{"error": err.Error()})
		return
	}
	if err := publisher.Publish(ctx, payload); err != nil {
		log.Warn(module, "failed to publish vector cleanup", map[string]interface{}{"error": err.Error(), "ids": len(ids)})
	}
}

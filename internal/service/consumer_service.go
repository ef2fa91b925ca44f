package service

import (
	"context"
	"encoding/json"

	"chat-vector-be/internal/dto"
	"chat-vector-be/internal/pkg/logger"
	"chat-vector-be/internal/repository/contract"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains the vector cleanup topic and removes index
// entries. Removal failures are logged and the message is acked anyway:
// the index is best-effort and there are no retries.
type consumerService struct {
	pubSub     *gochannel.GoChannel
	topicName  string
	vectorRepo contract.ChatEmbeddingRepository
	logger     logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	vectorRepo contract.ChatEmbeddingRepository,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:     pubSub,
		topicName:  topicName,
		vectorRepo: vectorRepo,
		logger:     log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
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
	defer msg.Ack()

	var payload dto.VectorCleanupMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("consumer", "failed to unmarshal vector cleanup message", map[string]interface{}{"error": err.Error()})
		return
	}

	if err := cs.vectorRepo.RemoveBulk(ctx, payload.Ids); err != nil {
		cs.logger.Warn("consumer", "vector index removal failed", map[string]interface{}{
			"error": err.Error(),
			"ids":   len(payload.Ids),
		})
	}
}

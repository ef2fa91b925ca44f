package contract

import (
	"context"

	"chat-vector-be/internal/entity"
	"chat-vector-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ChatMessageRepository interface {
	Create(ctx context.Context, message *entity.ChatMessage) error
	CreateBulk(ctx context.Context, messages []*entity.ChatMessage) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatMessage, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// IdsBySessionId returns the ids of every message in a session, for
	// vector index cleanup on session deletion.
	IdsBySessionId(ctx context.Context, sessionId uuid.UUID) ([]uuid.UUID, error)
	DeleteBySessionId(ctx context.Context, sessionId uuid.UUID) error
}

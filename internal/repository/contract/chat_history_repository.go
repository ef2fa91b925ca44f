package contract

import (
	"context"

	"chat-vector-be/internal/entity"
	"chat-vector-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ChatHistoryRepository interface {
	Create(ctx context.Context, history *entity.ChatHistory) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatHistory, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatHistory, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

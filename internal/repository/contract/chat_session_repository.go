package contract

import (
	"context"

	"chat-vector-be/internal/entity"
	"chat-vector-be/internal/repository/specification"

	"github.com/google/uuid"
)

// SessionWithCount pairs a session with its message count for listings.
type SessionWithCount struct {
	Session      *entity.ChatSession
	MessageCount int64
}

type ChatSessionRepository interface {
	Create(ctx context.Context, session *entity.ChatSession) error
	Update(ctx context.Context, session *entity.ChatSession) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatSession, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatSession, error)
	// ListWithMessageCount returns all sessions newest-first, each with
	// its message count.
	ListWithMessageCount(ctx context.Context) ([]*SessionWithCount, error)
	// LiveIds reports which of the given session ids still exist.
	LiveIds(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]bool, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

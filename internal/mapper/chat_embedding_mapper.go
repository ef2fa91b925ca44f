package mapper

import (
	"chat-vector-be/internal/entity"
	"chat-vector-be/internal/model"

	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
)

type ChatEmbeddingMapper struct{}

func NewChatEmbeddingMapper() *ChatEmbeddingMapper {
	return &ChatEmbeddingMapper{}
}

func (m *ChatEmbeddingMapper) ToEntity(e *model.ChatEmbedding) *entity.ChatEmbedding {
	if e == nil {
		return nil
	}
	return &entity.ChatEmbedding{
		Id:        e.Id,
		Document:  e.Document,
		Embedding: e.EmbeddingValue.Slice(),
		SessionId: e.SessionId,
		Timestamp: e.Timestamp,
		Metadata:  map[string]interface{}(e.Metadata),
	}
}

func (m *ChatEmbeddingMapper) ToModel(e *entity.ChatEmbedding) *model.ChatEmbedding {
	if e == nil {
		return nil
	}
	return &model.ChatEmbedding{
		Id:             e.Id,
		Document:       e.Document,
		EmbeddingValue: pgvector.NewVector(e.Embedding),
		SessionId:      e.SessionId,
		Timestamp:      e.Timestamp,
		Metadata:       datatypes.JSONMap(e.Metadata),
	}
}

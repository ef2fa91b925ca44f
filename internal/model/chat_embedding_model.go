package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
)

// ChatEmbedding lives on the vector index connection, not the
// relational one. Its Id is shared with the ChatHistory or ChatMessage
// record that produced it; the index is secondary and not
// authoritative.
type ChatEmbedding struct {
	Id             uuid.UUID         `gorm:"type:uuid;primaryKey"`
	Document       string            `gorm:"type:text"`
	EmbeddingValue pgvector.Vector   `gorm:"type:vector(768)"` // nomic-embed-text uses 768 dimensions
	SessionId      *uuid.UUID        `gorm:"type:uuid;index"`  // nil for ungrouped one-shot chats
	Timestamp      time.Time         `gorm:"index"`
	Metadata       datatypes.JSONMap `gorm:"type:jsonb"` // open extension map beyond the typed columns
}

func (ChatEmbedding) TableName() string {
	return "chat_embeddings"
}

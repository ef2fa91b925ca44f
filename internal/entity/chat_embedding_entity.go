package entity

import (
	"time"

	"github.com/google/uuid"
)

// ChatEmbedding is one vector index entry. Id is shared with the
// relational record the document came from; SessionId is only set for
// session messages.
type ChatEmbedding struct {
	Id        uuid.UUID
	Document  string
	Embedding []float32
	SessionId *uuid.UUID
	Timestamp time.Time
	Metadata  map[string]interface{}
}

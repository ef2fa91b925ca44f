package contract

import (
	"context"

	"chat-vector-be/internal/entity"

	"github.com/google/uuid"
)

// ScoredChatEmbedding wraps a vector entry with the raw distance the
// index reported for it. Distance semantics are index-defined; the
// conversion to a similarity score is the caller's concern, via a
// DistanceScorer.
type ScoredChatEmbedding struct {
	Embedding *entity.ChatEmbedding
	Distance  float64
}

// DistanceScorer converts an index distance into a similarity score.
type DistanceScorer func(distance float64) float64

// CosineScore maps pgvector cosine distance (bounded [0, 2]) to a
// similarity score: s = 1 - d.
func CosineScore(distance float64) float64 {
	return 1 - distance
}

type ChatEmbeddingRepository interface {
	Add(ctx context.Context, embedding *entity.ChatEmbedding) error
	AddBulk(ctx context.Context, embeddings []*entity.ChatEmbedding) error
	Remove(ctx context.Context, id uuid.UUID) error
	RemoveBulk(ctx context.Context, ids []uuid.UUID) error
	// RemoveAll wipes the collection; used by the out-of-band reindex
	// tool before a rebuild.
	RemoveAll(ctx context.Context) error
	// SearchNearest returns up to limit entries ordered by ascending
	// distance. An empty index yields an empty slice, never an error.
	SearchNearest(ctx context.Context, embedding []float32, limit int) ([]*ScoredChatEmbedding, error)
}

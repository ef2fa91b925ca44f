package service

import (
	"context"
	"time"

	"chat-vector-be/internal/entity"
	"chat-vector-be/internal/pkg/logger"
	"chat-vector-be/internal/repository/contract"

	"github.com/google/uuid"
)

// indexDocument writes a secondary vector entry for an already
// committed relational record. The index is best-effort: a failure is
// logged and never propagated, so the enclosing request still succeeds.
func indexDocument(
	ctx context.Context,
	vectorRepo contract.ChatEmbeddingRepository,
	log logger.ILogger,
	module string,
	id uuid.UUID,
	document string,
	values []float32,
	ts time.Time,
	sessionId *uuid.UUID,
) {
	entry := &entity.ChatEmbedding{
		Id:        id,
		Document:  document,
		Embedding: values,
		SessionId: sessionId,
		Timestamp: ts,
		Metadata: map[string]interface{}{
			"id":        id.String(),
			"timestamp": ts.Format(time.RFC3339Nano),
		},
	}
	if sessionId != nil {
		entry.Metadata["session_id"] = sessionId.String()
	}

	if err := vectorRepo.Add(ctx, entry); err != nil {
		log.Warn(module, "vector index write failed", map[string]interface{}{
			"id":    id.String(),
			"error": err.Error(),
		})
	}
}

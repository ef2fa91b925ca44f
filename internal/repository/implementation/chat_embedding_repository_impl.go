package implementation

import (
	"context"

	"chat-vector-be/internal/entity"
	"chat-vector-be/internal/mapper"
	"chat-vector-be/internal/model"
	"chat-vector-be/internal/repository/contract"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

// ChatEmbeddingRepositoryImpl runs against the vector index connection.
// It is a best-effort secondary index: callers decide whether its
// failures are fatal.
type ChatEmbeddingRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ChatEmbeddingMapper
}

func NewChatEmbeddingRepository(db *gorm.DB) contract.ChatEmbeddingRepository {
	return &ChatEmbeddingRepositoryImpl{
		db:     db,
		mapper: mapper.NewChatEmbeddingMapper(),
	}
}

func (r *ChatEmbeddingRepositoryImpl) Add(ctx context.Context, embedding *entity.ChatEmbedding) error {
	m := r.mapper.ToModel(embedding)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*embedding = *r.mapper.ToEntity(m)
	return nil
}

func (r *ChatEmbeddingRepositoryImpl) AddBulk(ctx context.Context, embeddings []*entity.ChatEmbedding) error {
	if len(embeddings) == 0 {
		return nil
	}
	models := make([]*model.ChatEmbedding, len(embeddings))
	for i, e := range embeddings {
		models[i] = r.mapper.ToModel(e)
	}
	return r.db.WithContext(ctx).Create(models).Error
}

func (r *ChatEmbeddingRepositoryImpl) Remove(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.ChatEmbedding{}, "id = ?", id).Error
}

func (r *ChatEmbeddingRepositoryImpl) RemoveBulk(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Where("id IN ?", ids).Delete(&model.ChatEmbedding{}).Error
}

func (r *ChatEmbeddingRepositoryImpl) RemoveAll(ctx context.Context) error {
	return r.db.WithContext(ctx).Where("1 = 1").Delete(&model.ChatEmbedding{}).Error
}

func (r *ChatEmbeddingRepositoryImpl) SearchNearest(ctx context.Context, embedding []float32, limit int) ([]*contract.ScoredChatEmbedding, error) {
	if limit <= 0 {
		limit = 5
	}

	// pgvector cosine distance: embedding_value <=> query_vector.
	// Distance is returned raw; score conversion happens in the caller.
	type row struct {
		model.ChatEmbedding
		Distance float64
	}
	var rows []row

	queryVector := pgvector.NewVector(embedding)

	err := r.db.WithContext(ctx).
		Table("chat_embeddings").
		Select("chat_embeddings.*, embedding_value <=> ? AS distance", queryVector).
		Order("distance ASC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	scored := make([]*contract.ScoredChatEmbedding, len(rows))
	for i, rw := range rows {
		e := rw.ChatEmbedding
		scored[i] = &contract.ScoredChatEmbedding{
			Embedding: r.mapper.ToEntity(&e),
			Distance:  rw.Distance,
		}
	}
	return scored, nil
}

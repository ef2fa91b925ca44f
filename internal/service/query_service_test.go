package service

import (
	"context"
	"testing"
	"time"

	"chat-vector-be/internal/dto"
	"chat-vector-be/internal/entity"
	"chat-vector-be/internal/model"
	"chat-vector-be/internal/repository/contract"
	"chat-vector-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func scoredHit(id uuid.UUID, document string, distance float64, sessionId *uuid.UUID) *contract.ScoredChatEmbedding {
	return &contract.ScoredChatEmbedding{
		Embedding: &entity.ChatEmbedding{
			Id:        id,
			Document:  document,
			SessionId: sessionId,
			Timestamp: time.Now().UTC(),
		},
		Distance: distance,
	}
}

func seedHistory(t *testing.T, db *gorm.DB, id uuid.UUID, prompt, response string) {
	t.Helper()
	err := db.Create(&model.ChatHistory{
		Id:        id,
		Prompt:    prompt,
		Response:  response,
		Timestamp: time.Now().UTC(),
	}).Error
	require.NoError(t, err)
}

func newQueryService(t *testing.T, db *gorm.DB, vectorRepo *fakeVectorRepo) IQueryService {
	t.Helper()
	return NewQueryService(
		unitofwork.NewRepositoryFactory(db),
		vectorRepo,
		&fakeEmbedder{},
		contract.CosineScore,
		noopLogger{},
	)
}

func TestQueryJoinsHistoryAndScores(t *testing.T) {
	db := openTestDB(t)
	vectorRepo := newFakeVectorRepo()
	svc := newQueryService(t, db, vectorRepo)

	nearId, farId := uuid.New(), uuid.New()
	seedHistory(t, db, nearId, "nah dran", "antwort 1")
	seedHistory(t, db, farId, "weit weg", "antwort 2")
	vectorRepo.hits = []*contract.ScoredChatEmbedding{
		scoredHit(nearId, "nah dran", 0.1, nil),
		scoredHit(farId, "weit weg", 0.3, nil),
	}

	resp, err := svc.Query(context.Background(), &dto.QueryRequest{Query: "nah"})
	require.NoError(t, err)
	require.Len(t, resp.Results, 2)

	// Index order is preserved, distances become similarity scores.
	assert.Equal(t, nearId, resp.Results[0].Id)
	assert.InDelta(t, 0.9, resp.Results[0].Score, 1e-9)
	assert.Equal(t, "antwort 1", resp.Results[0].Response)
	assert.Equal(t, farId, resp.Results[1].Id)
	assert.InDelta(t, 0.7, resp.Results[1].Score, 1e-9)
}

func TestQueryThresholdFiltersLowScores(t *testing.T) {
	db := openTestDB(t)
	vectorRepo := newFakeVectorRepo()
	svc := newQueryService(t, db, vectorRepo)

	id := uuid.New()
	seedHistory(t, db, id, "prompt", "response")
	vectorRepo.hits = []*contract.ScoredChatEmbedding{scoredHit(id, "prompt", 0.1, nil)}

	// A threshold above the maximum possible score returns nothing.
	threshold := 1.1
	resp, err := svc.Query(context.Background(), &dto.QueryRequest{Query: "q", ScoreThreshold: &threshold})
	require.NoError(t, err)
	require.NotNil(t, resp.Results)
	assert.Empty(t, resp.Results)
}

func TestQueryDefaultThreshold(t *testing.T) {
	db := openTestDB(t)
	vectorRepo := newFakeVectorRepo()
	svc := newQueryService(t, db, vectorRepo)

	keepId, dropId := uuid.New(), uuid.New()
	seedHistory(t, db, keepId, "bleibt", "r1")
	seedHistory(t, db, dropId, "fliegt raus", "r2")
	vectorRepo.hits = []*contract.ScoredChatEmbedding{
		scoredHit(keepId, "bleibt", 0.4, nil),      // score 0.6
		scoredHit(dropId, "fliegt raus", 0.6, nil), // score 0.4 < 0.5
	}

	resp, err := svc.Query(context.Background(), &dto.QueryRequest{Query: "q"})
	require.NoError(t, err)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, keepId, resp.Results[0].Id)
}

func TestQueryEmptyIndex(t *testing.T) {
	db := openTestDB(t)
	svc := newQueryService(t, db, newFakeVectorRepo())

	resp, err := svc.Query(context.Background(), &dto.QueryRequest{Query: "leer"})
	require.NoError(t, err)
	require.NotNil(t, resp.Results)
	assert.Empty(t, resp.Results)
}

func TestQueryDanglingHitKeepsIndexData(t *testing.T) {
	db := openTestDB(t)
	vectorRepo := newFakeVectorRepo()
	svc := newQueryService(t, db, vectorRepo)

	// Hit has no relational record: the index copy of the prompt is
	// returned with an empty response.
	id := uuid.New()
	vectorRepo.hits = []*contract.ScoredChatEmbedding{scoredHit(id, "nur im index", 0.1, nil)}

	resp, err := svc.Query(context.Background(), &dto.QueryRequest{Query: "q"})
	require.NoError(t, err)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "nur im index", resp.Results[0].Prompt)
	assert.Empty(t, resp.Results[0].Response)
}

func TestQueryDropsDeadSessionHits(t *testing.T) {
	db := openTestDB(t)
	vectorRepo := newFakeVectorRepo()
	svc := newQueryService(t, db, vectorRepo)

	liveSession := uuid.New()
	require.NoError(t, db.Create(&model.ChatSession{Id: liveSession, CreatedAt: time.Now().UTC()}).Error)
	deadSession := uuid.New()

	liveId, deadId := uuid.New(), uuid.New()
	vectorRepo.hits = []*contract.ScoredChatEmbedding{
		scoredHit(liveId, "lebt noch", 0.1, &liveSession),
		scoredHit(deadId, "session ist weg", 0.1, &deadSession),
	}

	resp, err := svc.Query(context.Background(), &dto.QueryRequest{Query: "q"})
	require.NoError(t, err)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, liveId, resp.Results[0].Id)
}

func TestQueryLimitCapsResults(t *testing.T) {
	db := openTestDB(t)
	vectorRepo := newFakeVectorRepo()
	svc := newQueryService(t, db, vectorRepo)

	for i := 0; i < 10; i++ {
		vectorRepo.hits = append(vectorRepo.hits, scoredHit(uuid.New(), "doc", 0.1, nil))
	}

	resp, err := svc.Query(context.Background(), &dto.QueryRequest{Query: "q", NResults: 3})
	require.NoError(t, err)
	assert.Len(t, resp.Results, 3)
}

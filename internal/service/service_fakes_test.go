package service

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"chat-vector-be/internal/entity"
	"chat-vector-be/internal/model"
	"chat-vector-be/internal/repository/contract"
	"chat-vector-be/internal/repository/unitofwork"
	"chat-vector-be/pkg/embedding"
	"chat-vector-be/pkg/llm"

	gormsqlite "github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(gormsqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&model.ChatHistory{}, &model.ChatSession{}, &model.ChatMessage{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

func newTestFactory(t *testing.T) unitofwork.RepositoryFactory {
	t.Helper()
	return unitofwork.NewRepositoryFactory(openTestDB(t))
}

type noopLogger struct{}

func (noopLogger) Debug(module, message string, details map[string]interface{}) {}
func (noopLogger) Info(module, message string, details map[string]interface{})  {}
func (noopLogger) Warn(module, message string, details map[string]interface{})  {}
func (noopLogger) Error(module, message string, details map[string]interface{}) {}
func (noopLogger) Sync() error                                                  { return nil }

// fakeVectorRepo is an in-memory stand-in for the pgvector index.
type fakeVectorRepo struct {
	mu      sync.Mutex
	entries map[uuid.UUID]*entity.ChatEmbedding
	hits    []*contract.ScoredChatEmbedding
	failAdd bool
	removed []uuid.UUID
}

func newFakeVectorRepo() *fakeVectorRepo {
	return &fakeVectorRepo{entries: map[uuid.UUID]*entity.ChatEmbedding{}}
}

func (f *fakeVectorRepo) Add(ctx context.Context, e *entity.ChatEmbedding) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAdd {
		return fmt.Errorf("vector store unavailable")
	}
	f.entries[e.Id] = e
	return nil
}

func (f *fakeVectorRepo) AddBulk(ctx context.Context, es []*entity.ChatEmbedding) error {
	for _, e := range es {
		if err := f.Add(ctx, e); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeVectorRepo) Remove(ctx context.Context, id uuid.UUID) error {
	return f.RemoveBulk(ctx, []uuid.UUID{id})
}

func (f *fakeVectorRepo) RemoveBulk(ctx context.Context, ids []uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, id := range ids {
		delete(f.entries, id)
	}
	f.removed = append(f.removed, ids...)
	return nil
}

func (f *fakeVectorRepo) RemoveAll(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = map[uuid.UUID]*entity.ChatEmbedding{}
	return nil
}

func (f *fakeVectorRepo) SearchNearest(ctx context.Context, embeddingValues []float32, limit int) ([]*contract.ScoredChatEmbedding, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if limit > len(f.hits) {
		limit = len(f.hits)
	}
	return f.hits[:limit], nil
}

func (f *fakeVectorRepo) removedIds() []uuid.UUID {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]uuid.UUID(nil), f.removed...)
}

type fakeEmbedder struct {
	err error
}

func (f *fakeEmbedder) Generate(text string, taskType string) (*embedding.EmbeddingResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &embedding.EmbeddingResponse{
		Embedding: embedding.EmbeddingResponseEmbedding{
			Values: []float32{0.6, 0.8, 0},
		},
	}, nil
}

type fakeLLM struct {
	response string
	err      error
}

func (f *fakeLLM) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func (f *fakeLLM) GenerateStream(ctx context.Context, prompt string, onToken llm.TokenFunc, opts ...llm.Option) error {
	if f.err != nil {
		return f.err
	}
	return onToken(f.response)
}

type fakePublisher struct {
	mu       sync.Mutex
	payloads [][]byte
}

func (f *fakePublisher) Publish(ctx context.Context, payload []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.payloads = append(f.payloads, payload)
	return nil
}

func (f *fakePublisher) published() [][]byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([][]byte(nil), f.payloads...)
}

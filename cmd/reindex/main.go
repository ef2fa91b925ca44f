package main

import (
	"context"
	"log"
	"os"

	"chat-vector-be/internal/constant"
	"chat-vector-be/internal/entity"
	"chat-vector-be/internal/repository/implementation"
	"chat-vector-be/pkg/database"
	"chat-vector-be/pkg/embedding"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
)

const addBatchSize = 100

// Rebuilds the vector index from the relational store. Safe to run
// repeatedly: the index is wiped first, and ids are reused, so a
// partial earlier run leaves no duplicates.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}
	vectorDSN := os.Getenv("VECTOR_DB_CONNECTION_STRING")
	if vectorDSN == "" {
		vectorDSN = dsn
	}
	ollamaBaseURL := os.Getenv("OLLAMA_BASE_URL")
	if ollamaBaseURL == "" {
		ollamaBaseURL = "http://localhost:11434"
	}
	embeddingModel := os.Getenv("OLLAMA_EMBEDDING_MODEL")
	if embeddingModel == "" {
		embeddingModel = "nomic-embed-text"
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}
	vectorDB, err := database.NewGormDBFromDSN(vectorDSN)
	if err != nil {
		log.Fatal("Error: Failed to connect to vector database:", err)
	}

	ctx := context.Background()
	historyRepo := implementation.NewChatHistoryRepository(db)
	messageRepo := implementation.NewChatMessageRepository(db)
	vectorRepo := implementation.NewChatEmbeddingRepository(vectorDB)
	provider := embedding.NewOllamaProvider(ollamaBaseURL, embeddingModel)

	color.Cyan("Wiping vector index...")
	if err := vectorRepo.RemoveAll(ctx); err != nil {
		color.Red("Failed to wipe vector index: %v", err)
		os.Exit(1)
	}

	indexed, skipped := 0, 0
	batch := make([]*entity.ChatEmbedding, 0, addBatchSize)

	flush := func() {
		if len(batch) == 0 {
			return
		}
		if err := vectorRepo.AddBulk(ctx, batch); err != nil {
			color.Red("Failed to write batch of %d entries: %v", len(batch), err)
			os.Exit(1)
		}
		indexed += len(batch)
		batch = batch[:0]
	}

	color.Cyan("Reindexing chat history...")
	histories, err := historyRepo.FindAll(ctx)
	if err != nil {
		color.Red("Failed to load chat history: %v", err)
		os.Exit(1)
	}
	for _, h := range histories {
		emb, err := provider.Generate(h.Prompt, constant.EmbeddingTaskDocument)
		if err != nil {
			color.Yellow("Skipping chat %s: embedding failed: %v", h.Id, err)
			skipped++
			continue
		}
		batch = append(batch, &entity.ChatEmbedding{
			Id:        h.Id,
			Document:  h.Prompt,
			Embedding: emb.Embedding.Values,
			Timestamp: h.Timestamp,
			Metadata:  h.Metadata,
		})
		if len(batch) == addBatchSize {
			flush()
		}
	}
	flush()

	color.Cyan("Reindexing session messages...")
	messages, err := messageRepo.FindAll(ctx)
	if err != nil {
		color.Red("Failed to load session messages: %v", err)
		os.Exit(1)
	}
	for _, m := range messages {
		emb, err := provider.Generate(m.Text, constant.EmbeddingTaskDocument)
		if err != nil {
			color.Yellow("Skipping message %s: embedding failed: %v", m.Id, err)
			skipped++
			continue
		}
		sid := m.SessionId
		batch = append(batch, &entity.ChatEmbedding{
			Id:        m.Id,
			Document:  m.Text,
			Embedding: emb.Embedding.Values,
			SessionId: &sid,
			Timestamp: m.Timestamp,
		})
		if len(batch) == addBatchSize {
			flush()
		}
	}
	flush()

	color.Green("Reindex complete: %d entries indexed, %d skipped", indexed, skipped)
}

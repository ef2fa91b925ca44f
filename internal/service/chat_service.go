package service

import (
	"context"
	"time"

	"chat-vector-be/internal/constant"
	"chat-vector-be/internal/dto"
	"chat-vector-be/internal/entity"
	"chat-vector-be/internal/pkg/logger"
	"chat-vector-be/internal/repository/contract"
	"chat-vector-be/internal/repository/specification"
	"chat-vector-be/internal/repository/unitofwork"
	"chat-vector-be/pkg/embedding"
	"chat-vector-be/pkg/llm"

	"github.com/google/uuid"
)

type IChatService interface {
	SendChat(ctx context.Context, req *dto.ChatRequest) (*dto.ChatResponse, error)
	GetAllChats(ctx context.Context) ([]*dto.ChatHistoryItem, error)
	DeleteChat(ctx context.Context, id uuid.UUID) (*dto.StatusResponse, error)
	RestoreChat(ctx context.Context, req *dto.RestoreChatRequest) (*dto.StatusResponse, error)
}

type chatService struct {
	uowFactory        unitofwork.RepositoryFactory
	vectorRepo        contract.ChatEmbeddingRepository
	embeddingProvider embedding.EmbeddingProvider
	llmProvider       llm.LLMProvider
	publisher         IPublisherService
	logger            logger.ILogger
}

func NewChatService(
	uowFactory unitofwork.RepositoryFactory,
	vectorRepo contract.ChatEmbeddingRepository,
	embeddingProvider embedding.EmbeddingProvider,
	llmProvider llm.LLMProvider,
	publisher IPublisherService,
	log logger.ILogger,
) IChatService {
	return &chatService{
		uowFactory:        uowFactory,
		vectorRepo:        vectorRepo,
		embeddingProvider: embeddingProvider,
		llmProvider:       llmProvider,
		publisher:         publisher,
		logger:            log,
	}
}

// SendChat relays the prompt to the model, persists the exchange
// relationally, then indexes the prompt. The relational commit always
// precedes the vector write; the vector write never fails the request.
func (s *chatService) SendChat(ctx context.Context, req *dto.ChatRequest) (*dto.ChatResponse, error) {
	fullPrompt := constant.SystemPrompt + "\n\nUser: " + req.Prompt

	var opts []llm.Option
	if req.Model != "" {
		opts = append(opts, llm.WithModel(req.Model))
	}
	response, err := s.llmProvider.Generate(ctx, fullPrompt, opts...)
	if err != nil {
		return nil, err
	}

	emb, err := s.embeddingProvider.Generate(req.Prompt, constant.EmbeddingTaskDocument)
	if err != nil {
		return nil, err
	}

	chatId := uuid.New()
	now := time.Now().UTC()
	history := &entity.ChatHistory{
		Id:        chatId,
		Prompt:    req.Prompt,
		Response:  response,
		Timestamp: now,
		Metadata: map[string]interface{}{
			"id":        chatId.String(),
			"timestamp": now.Format(time.RFC3339Nano),
		},
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	if err := uow.ChatHistoryRepository().Create(ctx, history); err != nil {
		uow.Rollback()
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	indexDocument(ctx, s.vectorRepo, s.logger, "chat", chatId, req.Prompt, emb.Embedding.Values, now, nil)

	return &dto.ChatResponse{Response: response}, nil
}

func (s *chatService) GetAllChats(ctx context.Context) ([]*dto.ChatHistoryItem, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	histories, err := uow.ChatHistoryRepository().FindAll(ctx,
		specification.OrderBy{Field: "timestamp", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.ChatHistoryItem, len(histories))
	for i, h := range histories {
		items[i] = &dto.ChatHistoryItem{
			Id:        h.Id,
			Prompt:    h.Prompt,
			Response:  h.Response,
			Timestamp: h.Timestamp,
			Metadata:  h.Metadata,
		}
	}
	return items, nil
}

func (s *chatService) DeleteChat(ctx context.Context, id uuid.UUID) (*dto.StatusResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	history, err := uow.ChatHistoryRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if history == nil {
		return &dto.StatusResponse{Success: false, Error: "Chat not found"}, nil
	}

	if err := uow.ChatHistoryRepository().Delete(ctx, id); err != nil {
		return nil, err
	}

	publishVectorCleanup(ctx, s.publisher, s.logger, "chat", []uuid.UUID{id})

	return &dto.StatusResponse{Success: true}, nil
}

func (s *chatService) RestoreChat(ctx context.Context, req *dto.RestoreChatRequest) (*dto.StatusResponse, error) {
	ts, err := time.Parse(time.RFC3339, req.Timestamp)
	if err != nil {
		return &dto.StatusResponse{Success: false, Error: "invalid timestamp: " + err.Error()}, nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.ChatHistoryRepository().FindOne(ctx, specification.ByID{ID: req.Id})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return &dto.StatusResponse{Success: false, Error: "Chat with this id already exists"}, nil
	}

	emb, err := s.embeddingProvider.Generate(req.Prompt, constant.EmbeddingTaskDocument)
	if err != nil {
		return nil, err
	}

	metadata := req.Metadata
	if metadata == nil {
		metadata = map[string]interface{}{}
	}

	history := &entity.ChatHistory{
		Id:        req.Id,
		Prompt:    req.Prompt,
		Response:  req.Response,
		Timestamp: ts,
		Metadata:  metadata,
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	if err := uow.ChatHistoryRepository().Create(ctx, history); err != nil {
		uow.Rollback()
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	indexDocument(ctx, s.vectorRepo, s.logger, "chat", req.Id, req.Prompt, emb.Embedding.Values, ts, nil)

	return &dto.StatusResponse{Success: true}, nil
}

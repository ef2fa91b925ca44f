package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"chat-vector-be/internal/constant"
	"chat-vector-be/internal/dto"
	"chat-vector-be/internal/entity"
	"chat-vector-be/internal/pkg/logger"
	"chat-vector-be/internal/repository/contract"
	"chat-vector-be/internal/repository/specification"
	"chat-vector-be/internal/repository/unitofwork"
	"chat-vector-be/pkg/embedding"

	"github.com/google/uuid"
)

// ErrSessionNotFound is returned when a message operation targets a
// session that does not exist.
var ErrSessionNotFound = fmt.Errorf("session not found")

type ISessionService interface {
	ListSessions(ctx context.Context) ([]*dto.SessionListItem, error)
	CreateSession(ctx context.Context, req *dto.CreateSessionRequest) (*dto.SessionResponse, error)
	GetMessages(ctx context.Context, sessionId uuid.UUID, limit, offset int) ([]*dto.MessageResponse, error)
	AddMessage(ctx context.Context, sessionId uuid.UUID, req *dto.AddMessageRequest) (*dto.MessageResponse, error)
	DeleteSession(ctx context.Context, sessionId uuid.UUID, removeVectors bool) (*dto.StatusResponse, error)
	RestoreSession(ctx context.Context, req *dto.RestoreSessionRequest) (*dto.RestoreSessionResponse, error)
}

type sessionService struct {
	uowFactory        unitofwork.RepositoryFactory
	vectorRepo        contract.ChatEmbeddingRepository
	embeddingProvider embedding.EmbeddingProvider
	publisher         IPublisherService
	logger            logger.ILogger
}

func NewSessionService(
	uowFactory unitofwork.RepositoryFactory,
	vectorRepo contract.ChatEmbeddingRepository,
	embeddingProvider embedding.EmbeddingProvider,
	publisher IPublisherService,
	log logger.ILogger,
) ISessionService {
	return &sessionService{
		uowFactory:        uowFactory,
		vectorRepo:        vectorRepo,
		embeddingProvider: embeddingProvider,
		publisher:         publisher,
		logger:            log,
	}
}

func (s *sessionService) ListSessions(ctx context.Context) ([]*dto.SessionListItem, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	sessions, err := uow.ChatSessionRepository().ListWithMessageCount(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.SessionListItem, len(sessions))
	for i, sc := range sessions {
		items[i] = &dto.SessionListItem{
			Id:           sc.Session.Id,
			Title:        sc.Session.Title,
			CreatedAt:    sc.Session.CreatedAt,
			MessageCount: sc.MessageCount,
		}
	}
	return items, nil
}

func (s *sessionService) CreateSession(ctx context.Context, req *dto.CreateSessionRequest) (*dto.SessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session := &entity.ChatSession{
		Id:        uuid.New(),
		Title:     req.Title,
		CreatedAt: time.Now().UTC(),
	}
	if err := uow.ChatSessionRepository().Create(ctx, session); err != nil {
		return nil, err
	}

	return &dto.SessionResponse{
		Id:        session.Id,
		Title:     session.Title,
		CreatedAt: session.CreatedAt,
	}, nil
}

// GetMessages pages backwards from the newest message, then reverses
// the page so the response is chronological ascending.
func (s *sessionService) GetMessages(ctx context.Context, sessionId uuid.UUID, limit, offset int) ([]*dto.MessageResponse, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	messages, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.BySessionID{SessionID: sessionId},
		specification.OrderBy{Field: "timestamp", Desc: true},
		specification.Pagination{Limit: limit, Offset: offset},
	)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.MessageResponse, len(messages))
	for i, m := range messages {
		items[len(messages)-1-i] = &dto.MessageResponse{
			Id:        m.Id,
			Sender:    m.Sender,
			Text:      m.Text,
			Timestamp: m.Timestamp,
		}
	}
	return items, nil
}

func (s *sessionService) AddMessage(ctx context.Context, sessionId uuid.UUID, req *dto.AddMessageRequest) (*dto.MessageResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.ChatSessionRepository().FindOne(ctx, specification.ByID{ID: sessionId})
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}

	emb, err := s.embeddingProvider.Generate(req.Text, constant.EmbeddingTaskDocument)
	if err != nil {
		return nil, err
	}

	msg := &entity.ChatMessage{
		Id:        uuid.New(),
		SessionId: sessionId,
		Sender:    req.Sender,
		Text:      req.Text,
		Timestamp: time.Now().UTC(),
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	if err := uow.ChatMessageRepository().Create(ctx, msg); err != nil {
		uow.Rollback()
		return nil, err
	}
	// First user message names the session.
	if req.Sender == constant.SenderUser && (session.Title == nil || strings.TrimSpace(*session.Title) == "") {
		title := truncateTitle(req.Text)
		session.Title = &title
		if err := uow.ChatSessionRepository().Update(ctx, session); err != nil {
			uow.Rollback()
			return nil, err
		}
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	sid := sessionId
	indexDocument(ctx, s.vectorRepo, s.logger, "session", msg.Id, msg.Text, emb.Embedding.Values, msg.Timestamp, &sid)

	return &dto.MessageResponse{
		Id:        msg.Id,
		Sender:    msg.Sender,
		Text:      msg.Text,
		Timestamp: msg.Timestamp,
	}, nil
}

func (s *sessionService) DeleteSession(ctx context.Context, sessionId uuid.UUID, removeVectors bool) (*dto.StatusResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.ChatSessionRepository().FindOne(ctx, specification.ByID{ID: sessionId})
	if err != nil {
		return nil, err
	}
	if session == nil {
		return &dto.StatusResponse{Success: false, Error: "Session not found"}, nil
	}

	messageIds, err := uow.ChatMessageRepository().IdsBySessionId(ctx, sessionId)
	if err != nil {
		return nil, err
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	if err := uow.ChatMessageRepository().DeleteBySessionId(ctx, sessionId); err != nil {
		uow.Rollback()
		return nil, err
	}
	if err := uow.ChatSessionRepository().Delete(ctx, sessionId); err != nil {
		uow.Rollback()
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	if removeVectors {
		publishVectorCleanup(ctx, s.publisher, s.logger, "session", messageIds)
	}

	return &dto.StatusResponse{Success: true}, nil
}

func (s *sessionService) RestoreSession(ctx context.Context, req *dto.RestoreSessionRequest) (*dto.RestoreSessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.ChatSessionRepository().FindOne(ctx, specification.ByID{ID: req.Session.Id})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return &dto.RestoreSessionResponse{Success: false, Error: "Session with this id already exists"}, nil
	}

	createdAt := time.Now().UTC()
	if req.Session.CreatedAt != "" {
		if ts, err := time.Parse(time.RFC3339, req.Session.CreatedAt); err == nil {
			createdAt = ts
		}
	}

	session := &entity.ChatSession{
		Id:        req.Session.Id,
		Title:     req.Session.Title,
		CreatedAt: createdAt,
	}

	messages := make([]*entity.ChatMessage, len(req.Messages))
	for i, rm := range req.Messages {
		ts := time.Now().UTC()
		if rm.Timestamp != "" {
			if parsed, err := time.Parse(time.RFC3339, rm.Timestamp); err == nil {
				ts = parsed
			}
		}
		messages[i] = &entity.ChatMessage{
			Id:        rm.Id,
			SessionId: req.Session.Id,
			Sender:    rm.Sender,
			Text:      rm.Text,
			Timestamp: ts,
		}
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	if err := uow.ChatSessionRepository().Create(ctx, session); err != nil {
		uow.Rollback()
		return nil, err
	}
	if err := uow.ChatMessageRepository().CreateBulk(ctx, messages); err != nil {
		uow.Rollback()
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	if req.RestoreVectors {
		for _, msg := range messages {
			emb, err := s.embeddingProvider.Generate(msg.Text, constant.EmbeddingTaskDocument)
			if err != nil {
				// The relational restore already succeeded; index
				// entries for the remaining messages are still attempted.
				s.logger.Warn("session", "embedding failed during restore", map[string]interface{}{
					"message_id": msg.Id.String(),
					"error":      err.Error(),
				})
				continue
			}
			sid := msg.SessionId
			indexDocument(ctx, s.vectorRepo, s.logger, "session", msg.Id, msg.Text, emb.Embedding.Values, msg.Timestamp, &sid)
		}
	}

	restoredId := session.Id
	return &dto.RestoreSessionResponse{Success: true, RestoredSessionId: &restoredId}, nil
}

// truncateTitle caps a session title at SessionTitleMaxLen runes.
func truncateTitle(text string) string {
	runes := []rune(text)
	if len(runes) <= constant.SessionTitleMaxLen {
		return text
	}
	return string(runes[:constant.SessionTitleMaxLen])
}

package service

import (
	"context"

	"chat-vector-be/internal/constant"
	"chat-vector-be/internal/dto"
	"chat-vector-be/internal/pkg/logger"
	"chat-vector-be/internal/repository/contract"
	"chat-vector-be/internal/repository/specification"
	"chat-vector-be/internal/repository/unitofwork"
	"chat-vector-be/pkg/embedding"

	"github.com/google/uuid"
)

type IQueryService interface {
	Query(ctx context.Context, req *dto.QueryRequest) (*dto.QueryResponse, error)
}

type queryService struct {
	uowFactory        unitofwork.RepositoryFactory
	vectorRepo        contract.ChatEmbeddingRepository
	embeddingProvider embedding.EmbeddingProvider
	scorer            contract.DistanceScorer
	logger            logger.ILogger
}

func NewQueryService(
	uowFactory unitofwork.RepositoryFactory,
	vectorRepo contract.ChatEmbeddingRepository,
	embeddingProvider embedding.EmbeddingProvider,
	scorer contract.DistanceScorer,
	log logger.ILogger,
) IQueryService {
	return &queryService{
		uowFactory:        uowFactory,
		vectorRepo:        vectorRepo,
		embeddingProvider: embeddingProvider,
		scorer:            scorer,
		logger:            log,
	}
}

// Query embeds the request text, fetches the nearest index entries,
// converts distances to similarity scores and drops everything below
// the threshold, then rejoins the survivors against the relational
// store. Hits whose session has since been deleted are filtered out.
func (s *queryService) Query(ctx context.Context, req *dto.QueryRequest) (*dto.QueryResponse, error) {
	limit := req.NResults
	if limit <= 0 {
		limit = constant.DefaultTopK
	}
	threshold := constant.DefaultScoreThreshold
	if req.ScoreThreshold != nil {
		threshold = *req.ScoreThreshold
	}

	emb, err := s.embeddingProvider.Generate(req.Query, constant.EmbeddingTaskQuery)
	if err != nil {
		return nil, err
	}

	hits, err := s.vectorRepo.SearchNearest(ctx, emb.Embedding.Values, limit)
	if err != nil {
		return nil, err
	}

	type scoredHit struct {
		hit   *contract.ScoredChatEmbedding
		score float64
	}
	kept := make([]scoredHit, 0, len(hits))
	sessionIds := make([]uuid.UUID, 0, len(hits))
	for _, hit := range hits {
		score := s.scorer(hit.Distance)
		if score < threshold {
			continue
		}
		kept = append(kept, scoredHit{hit: hit, score: score})
		if hit.Embedding.SessionId != nil {
			sessionIds = append(sessionIds, *hit.Embedding.SessionId)
		}
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	live := map[uuid.UUID]bool{}
	if len(sessionIds) > 0 {
		live, err = uow.ChatSessionRepository().LiveIds(ctx, sessionIds)
		if err != nil {
			return nil, err
		}
	}

	results := make([]*dto.QueryResultItem, 0, len(kept))
	for _, sh := range kept {
		e := sh.hit.Embedding
		// Session-scoped entries whose session is gone are stale; they
		// stay in the index until cleanup catches up.
		if e.SessionId != nil && !live[*e.SessionId] {
			continue
		}

		item := &dto.QueryResultItem{
			Id:        e.Id,
			Prompt:    e.Document,
			Timestamp: e.Timestamp,
			Metadata:  e.Metadata,
			Score:     sh.score,
		}
		history, err := uow.ChatHistoryRepository().FindOne(ctx, specification.ByID{ID: e.Id})
		if err != nil {
			return nil, err
		}
		if history != nil {
			item.Prompt = history.Prompt
			item.Response = history.Response
			item.Timestamp = history.Timestamp
			item.Metadata = history.Metadata
		}
		results = append(results, item)
	}

	return &dto.QueryResponse{Results: results}, nil
}

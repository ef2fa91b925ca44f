package service

import (
	"context"
	"strings"
	"time"

	"chat-vector-be/internal/constant"
	"chat-vector-be/internal/dto"
	"chat-vector-be/internal/pkg/logger"
	"chat-vector-be/pkg/wikipedia"

	"github.com/patrickmn/go-cache"
	"golang.org/x/sync/errgroup"
)

const (
	factCheckLookupTimeout = 3 * time.Second
	factCheckCacheTTL      = 5 * time.Minute
)

// WikipediaSearcher is the lookup the fact-check fan-out runs per
// statement. *wikipedia.Client satisfies it.
type WikipediaSearcher interface {
	Search(ctx context.Context, statement, language string) (*wikipedia.SearchResult, error)
}

type IFactCheckService interface {
	CheckFacts(ctx context.Context, req *dto.FactCheckRequest) (*dto.FactCheckResponse, error)
}

type factCheckService struct {
	searcher WikipediaSearcher
	cache    *cache.Cache
	logger   logger.ILogger
}

func NewFactCheckService(searcher WikipediaSearcher, log logger.ILogger) IFactCheckService {
	return &factCheckService{
		searcher: searcher,
		cache:    cache.New(factCheckCacheTTL, 2*factCheckCacheTTL),
		logger:   log,
	}
}

// CheckFacts splits the text into statements and looks each one up
// concurrently. Results come back in statement order, and one failed
// lookup never sinks the others.
func (s *factCheckService) CheckFacts(ctx context.Context, req *dto.FactCheckRequest) (*dto.FactCheckResponse, error) {
	language := req.Language
	if language == "" {
		language = constant.DefaultFactCheckLanguage
	}

	statements := splitStatements(req.Text)
	if len(statements) == 0 {
		return &dto.FactCheckResponse{Results: []*dto.FactCheckResult{}}, nil
	}

	results := make([]*dto.FactCheckResult, len(statements))
	g, gctx := errgroup.WithContext(ctx)
	for i, statement := range statements {
		i, statement := i, statement
		g.Go(func() error {
			results[i] = s.checkStatement(gctx, statement, language)
			return nil
		})
	}
	// The workers never return errors, so Wait only mirrors a canceled
	// parent context.
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &dto.FactCheckResponse{Results: results}, nil
}

func (s *factCheckService) checkStatement(ctx context.Context, statement, language string) *dto.FactCheckResult {
	cacheKey := language + "|" + statement
	if cached, ok := s.cache.Get(cacheKey); ok {
		return cached.(*dto.FactCheckResult)
	}

	lookupCtx, cancel := context.WithTimeout(ctx, factCheckLookupTimeout)
	defer cancel()

	found, err := s.searcher.Search(lookupCtx, statement, language)
	if err != nil {
		s.logger.Warn("factcheck", "wikipedia lookup failed", map[string]interface{}{
			"statement": statement,
			"error":     err.Error(),
		})
		return &dto.FactCheckResult{
			Statement: statement,
			Found:     false,
			Summary:   "lookup failed: " + err.Error(),
		}
	}

	result := &dto.FactCheckResult{
		Statement: statement,
		Found:     found.Found,
		Summary:   found.Summary,
		URL:       found.URL,
	}
	s.cache.Set(cacheKey, result, cache.DefaultExpiration)
	return result
}

// splitStatements breaks the text on sentence ends and caps the number
// of lookups per request.
func splitStatements(text string) []string {
	parts := strings.Split(text, ".")
	statements := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		statements = append(statements, trimmed)
		if len(statements) == constant.MaxFactCheckStatements {
			break
		}
	}
	return statements
}

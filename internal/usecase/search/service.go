package search

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kailas-cloud/jobdex/internal/domain/search/request"
	"github.com/kailas-cloud/jobdex/internal/domain/search/result"
	"github.com/kailas-cloud/jobdex/internal/metrics"
)

// Service handles paginated job searches.
type Service struct {
	repo   Repository
	logger *zap.Logger
}

// New creates a search service.
func New(repo Repository, logger *zap.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Search runs the query and assembles the response envelope. Page and page
// size echo the validated request; the engine's total drives only totalPages.
// There are no retries here, retry policy belongs to the engine client.
func (s *Service) Search(ctx context.Context, req request.Request) (result.Page, error) {
	hits, err := s.repo.Search(ctx, req)
	if err != nil {
		metrics.SearchRequestsTotal.WithLabelValues("error").Inc()
		return result.Page{}, fmt.Errorf("search jobs: %w", err)
	}

	status := "ok"
	if hits.Degraded > 0 {
		status = "degraded"
		metrics.DegradedDocumentsTotal.Add(float64(hits.Degraded))
		s.logger.Warn("Served degraded documents",
			zap.Int("degraded", hits.Degraded),
			zap.Int("returned", len(hits.Items)),
			zap.String("query", req.Query()),
		)
	}
	metrics.SearchRequestsTotal.WithLabelValues(status).Inc()

	return result.NewPage(hits, req.Page(), req.PageSize(), req.Query(), req.Summary()), nil
}

package jobs

import (
	"context"
	"fmt"
	"strings"

	"github.com/kailas-cloud/jobdex/internal/domain"
	"github.com/kailas-cloud/jobdex/internal/domain/job"
)

// Service handles single-job lookups.
type Service struct {
	repo Repository
}

// New creates a jobs service.
func New(repo Repository) *Service {
	return &Service{repo: repo}
}

// Get retrieves one job by document ID.
func (s *Service) Get(ctx context.Context, id string) (job.Job, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return job.Job{}, fmt.Errorf("%w: job id is required", domain.ErrInvalidRequest)
	}

	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return job.Job{}, fmt.Errorf("get job: %w", err)
	}
	return item, nil
}

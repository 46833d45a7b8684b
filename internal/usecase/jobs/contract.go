package jobs

import (
	"context"

	"github.com/kailas-cloud/jobdex/internal/domain/job"
)

// Repository defines the storage contract for single-job reads.
type Repository interface {
	GetByID(ctx context.Context, id string) (job.Job, error)
}

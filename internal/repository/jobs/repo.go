// Package jobs reads job postings from the search engine: paged queries and
// single-document lookups, both returning normalized canonical items.
package jobs

import (
	"context"
	"errors"
	"fmt"

	"github.com/kailas-cloud/jobdex/internal/domain"
	"github.com/kailas-cloud/jobdex/internal/domain/job"
	"github.com/kailas-cloud/jobdex/internal/domain/search/request"
	"github.com/kailas-cloud/jobdex/internal/domain/search/result"
	"github.com/kailas-cloud/jobdex/internal/engine"
)

// store is the consumer interface for search operations (ISP).
type store interface {
	Search(ctx context.Context, index string, req *engine.SearchRequest) (*engine.SearchResponse, error)
}

// Repo implements the usecase repositories over one engine index.
type Repo struct {
	store store
	index string
}

// New creates a jobs repository.
func New(s store, index string) *Repo {
	return &Repo{store: s, index: index}
}

// Search runs a paged query and normalizes every hit. One malformed document
// never fails the page; it is returned with defaulted fields and counted in
// Hits.Degraded.
func (r *Repo) Search(ctx context.Context, req request.Request) (result.Hits, error) {
	body, err := BuildSearch(req)
	if err != nil {
		return result.Hits{}, err
	}

	resp, err := r.store.Search(ctx, r.index, body)
	if err != nil {
		return result.Hits{}, fmt.Errorf("search %s: %w", r.index, mapEngineErr(err))
	}

	hits := result.Hits{
		Total: resp.Hits.Total.Value,
		Items: make([]job.Job, 0, len(resp.Hits.Hits)),
	}
	for _, h := range resp.Hits.Hits {
		item, err := job.FromSource(h.Source)
		if item.ID == "" {
			item.ID = h.ID
		}
		if err != nil {
			hits.Degraded++
		}
		hits.Items = append(hits.Items, item)
	}
	return hits, nil
}

// GetByID reads one document by its id field.
func (r *Repo) GetByID(ctx context.Context, id string) (job.Job, error) {
	body := &engine.SearchRequest{
		Query: engine.Bool(nil, []engine.Query{engine.Term("id", id)}),
		From:  0,
		Size:  1,
	}

	resp, err := r.store.Search(ctx, r.index, body)
	if err != nil {
		return job.Job{}, fmt.Errorf("get %s: %w", id, mapEngineErr(err))
	}
	if len(resp.Hits.Hits) == 0 {
		return job.Job{}, domain.ErrJobNotFound
	}

	// Normalization stays best effort for single lookups too: a degraded
	// document is served with defaulted fields, not hidden behind a 5xx.
	item, _ := job.FromSource(resp.Hits.Hits[0].Source)
	if item.ID == "" {
		item.ID = resp.Hits.Hits[0].ID
	}
	return item, nil
}

// mapEngineErr translates engine sentinels into domain sentinels. A query
// rejection means the body we built violated the engine contract, which is
// our bug, not the caller's.
func mapEngineErr(err error) error {
	switch {
	case errors.Is(err, engine.ErrUnavailable):
		return fmt.Errorf("%w: %v", domain.ErrEngineUnavailable, err)
	case errors.Is(err, engine.ErrBadResponse):
		return fmt.Errorf("%w: %v", domain.ErrEngineBadResponse, err)
	case errors.Is(err, engine.ErrQueryRejected):
		return fmt.Errorf("%w: %v", domain.ErrInternal, err)
	default:
		return err
	}
}

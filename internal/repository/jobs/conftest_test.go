package jobs

import (
	"context"
	"testing"

	"github.com/kailas-cloud/jobdex/internal/domain/search/filter"
	"github.com/kailas-cloud/jobdex/internal/domain/search/request"
	"github.com/kailas-cloud/jobdex/internal/engine"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	searchFn func(ctx context.Context, index string, req *engine.SearchRequest) (*engine.SearchResponse, error)
}

func (m *mockStore) Search(
	ctx context.Context, index string, req *engine.SearchRequest,
) (*engine.SearchResponse, error) {
	if m.searchFn != nil {
		return m.searchFn(ctx, index, req)
	}
	return &engine.SearchResponse{}, nil
}

func newTestRepo(t *testing.T) (*Repo, *mockStore) {
	t.Helper()
	ms := &mockStore{}
	repo := New(ms, "jobs")
	return repo, ms
}

func mustRequest(
	t *testing.T, query string, f filter.Set, page, pageSize int, sort []request.SortKey,
) request.Request {
	t.Helper()
	req, err := request.New(query, f, page, pageSize, sort)
	if err != nil {
		t.Fatalf("request.New: %v", err)
	}
	return req
}

func mustSet(
	t *testing.T, single map[string]string, multi map[string][]string, ranges map[string]filter.Range,
) filter.Set {
	t.Helper()
	s, err := filter.NewSet(single, multi, ranges)
	if err != nil {
		t.Fatalf("filter.NewSet: %v", err)
	}
	return s
}

func mustRange(t *testing.T, min, max *float64) filter.Range {
	t.Helper()
	r, err := filter.NewRange(min, max)
	if err != nil {
		t.Fatalf("filter.NewRange: %v", err)
	}
	return r
}

func mustSortKey(t *testing.T, field string, desc bool) request.SortKey {
	t.Helper()
	k, err := request.NewSortKey(field, desc)
	if err != nil {
		t.Fatalf("request.NewSortKey: %v", err)
	}
	return k
}

func f64(v float64) *float64 { return &v }

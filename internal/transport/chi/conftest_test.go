package chi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/kailas-cloud/jobdex/internal/domain/job"
	"github.com/kailas-cloud/jobdex/internal/domain/search/request"
	"github.com/kailas-cloud/jobdex/internal/domain/search/result"
	healthuc "github.com/kailas-cloud/jobdex/internal/usecase/health"
	jobsuc "github.com/kailas-cloud/jobdex/internal/usecase/jobs"
	searchuc "github.com/kailas-cloud/jobdex/internal/usecase/search"
)

// --- Mocks ---

type mockSearchRepo struct {
	hits    result.Hits
	err     error
	lastReq request.Request
}

func (m *mockSearchRepo) Search(_ context.Context, req request.Request) (result.Hits, error) {
	m.lastReq = req
	return m.hits, m.err
}

type mockJobsRepo struct {
	item   job.Job
	err    error
	lastID string
}

func (m *mockJobsRepo) GetByID(_ context.Context, id string) (job.Job, error) {
	m.lastID = id
	return m.item, m.err
}

type mockPinger struct {
	err error
}

func (m *mockPinger) Ping(_ context.Context) error { return m.err }

// --- Fixtures ---

type testDeps struct {
	searchRepo *mockSearchRepo
	jobsRepo   *mockJobsRepo
	pinger     *mockPinger
}

func newTestRouter(t *testing.T, deps testDeps) chi.Router {
	t.Helper()

	if deps.searchRepo == nil {
		deps.searchRepo = &mockSearchRepo{}
	}
	if deps.jobsRepo == nil {
		deps.jobsRepo = &mockJobsRepo{}
	}
	if deps.pinger == nil {
		deps.pinger = &mockPinger{}
	}

	searchSvc := searchuc.New(deps.searchRepo, zap.NewNop())
	jobsSvc := jobsuc.New(deps.jobsRepo)
	healthSvc := healthuc.New("jobdex", "test", deps.pinger)

	srv := NewServer(searchSvc, jobsSvc, healthSvc,
		request.Options{DefaultPageSize: 10, MaxPageSize: 100}, zap.NewNop())

	r := chi.NewRouter()
	srv.Routes(r)
	return r
}

func doGet(t *testing.T, router chi.Router, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("GET", target, http.NoBody)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func sampleJob(id, title string) job.Job {
	j := job.Defaults()
	j.ID = id
	j.Title = title
	return j
}

package chi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/kailas-cloud/jobdex/internal/domain"
	"github.com/kailas-cloud/jobdex/internal/domain/job"
	"github.com/kailas-cloud/jobdex/internal/domain/search/result"
)

type wireError struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func decodeError(t *testing.T, body *strings.Reader) wireError {
	t.Helper()
	var e wireError
	if err := json.NewDecoder(body).Decode(&e); err != nil {
		t.Fatalf("decode error envelope: %v", err)
	}
	return e
}

// --- GET /v1/jobs ---

func TestSearchJobs_OK(t *testing.T) {
	repo := &mockSearchRepo{
		hits: result.Hits{
			Items: []job.Job{sampleJob("job-1", "Software Engineer"), sampleJob("job-2", "Data Engineer")},
			Total: 12,
		},
	}
	router := newTestRouter(t, testDeps{searchRepo: repo})

	rr := doGet(t, router, "/v1/jobs?q=engineer&page=2&pageSize=5")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected application/json, got %q", ct)
	}

	var page result.Page
	if err := json.NewDecoder(rr.Body).Decode(&page); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if len(page.Results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(page.Results))
	}
	if page.Results[0].ID != "job-1" || page.Results[1].ID != "job-2" {
		t.Errorf("unexpected result order: %s, %s", page.Results[0].ID, page.Results[1].ID)
	}
	if page.Total != 12 || page.Page != 2 || page.PageSize != 5 {
		t.Errorf("unexpected paging echo: total=%d page=%d pageSize=%d", page.Total, page.Page, page.PageSize)
	}
	if page.TotalPages != 3 {
		t.Errorf("expected 3 total pages, got %d", page.TotalPages)
	}
	if page.Query != "engineer" {
		t.Errorf("expected query echoed, got %q", page.Query)
	}

	if repo.lastReq.From() != 5 {
		t.Errorf("expected engine offset 5, got %d", repo.lastReq.From())
	}
}

func TestSearchJobs_EveryContractFieldPresent(t *testing.T) {
	repo := &mockSearchRepo{
		hits: result.Hits{Items: []job.Job{sampleJob("job-1", "Engineer")}, Total: 1},
	}
	router := newTestRouter(t, testDeps{searchRepo: repo})

	rr := doGet(t, router, "/v1/jobs")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	var envelope struct {
		Results []map[string]json.RawMessage `json:"results"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(envelope.Results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(envelope.Results))
	}

	item := envelope.Results[0]
	fields := []string{
		"id", "externalId", "title", "description", "summary", "organisation",
		"location", "workingPattern", "workLocation", "salary", "salaryDescription",
		"benefits", "contacts", "grade", "closingDate", "profession",
		"assignmentType", "approach",
	}
	for _, f := range fields {
		if _, ok := item[f]; !ok {
			t.Errorf("field %q missing from serialized job", f)
		}
	}
	if string(item["closingDate"]) != "null" {
		t.Errorf("expected null closingDate, got %s", item["closingDate"])
	}
	if string(item["location"]) != "[]" {
		t.Errorf("expected empty location list, got %s", item["location"])
	}
}

func TestSearchJobs_DefaultPaging(t *testing.T) {
	repo := &mockSearchRepo{}
	router := newTestRouter(t, testDeps{searchRepo: repo})

	rr := doGet(t, router, "/v1/jobs")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	var page result.Page
	if err := json.NewDecoder(rr.Body).Decode(&page); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if page.Page != 1 || page.PageSize != 10 {
		t.Errorf("expected default paging 1/10, got %d/%d", page.Page, page.PageSize)
	}
	if page.Results == nil || len(page.Results) != 0 {
		t.Errorf("expected empty results list, got %v", page.Results)
	}
	if page.Query != "" || page.AppliedFilters != "" {
		t.Errorf("expected empty echoes, got query=%q filters=%q", page.Query, page.AppliedFilters)
	}
}

func TestSearchJobs_FiltersEchoed(t *testing.T) {
	repo := &mockSearchRepo{}
	router := newTestRouter(t, testDeps{searchRepo: repo})

	rr := doGet(t, router, "/v1/jobs?organisation=Ministry+of+Defence&grades=Grade+7&grades=Grade+6")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var page result.Page
	if err := json.NewDecoder(rr.Body).Decode(&page); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	want := "organisation=Ministry of Defence; grades=Grade 7,Grade 6"
	if page.AppliedFilters != want {
		t.Errorf("applied filters echo:\n got %q\nwant %q", page.AppliedFilters, want)
	}
}

func TestSearchJobs_UnknownParameter(t *testing.T) {
	router := newTestRouter(t, testDeps{})

	rr := doGet(t, router, "/v1/jobs?organization=typo")
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}

	e := decodeError(t, strings.NewReader(rr.Body.String()))
	if e.Error.Code != "unknown_filter" {
		t.Errorf("expected unknown_filter, got %q", e.Error.Code)
	}
	if !strings.Contains(e.Error.Message, "organization") {
		t.Errorf("expected offending name in message, got %q", e.Error.Message)
	}
}

func TestSearchJobs_InvalidPage(t *testing.T) {
	router := newTestRouter(t, testDeps{})

	rr := doGet(t, router, "/v1/jobs?page=0")
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}

	e := decodeError(t, strings.NewReader(rr.Body.String()))
	if e.Error.Code != "invalid_request" {
		t.Errorf("expected invalid_request, got %q", e.Error.Code)
	}
}

func TestSearchJobs_EngineUnavailable(t *testing.T) {
	repo := &mockSearchRepo{err: domain.ErrEngineUnavailable}
	router := newTestRouter(t, testDeps{searchRepo: repo})

	rr := doGet(t, router, "/v1/jobs?q=engineer")
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rr.Code)
	}

	e := decodeError(t, strings.NewReader(rr.Body.String()))
	if e.Error.Code != "engine_unavailable" {
		t.Errorf("expected engine_unavailable, got %q", e.Error.Code)
	}
}

func TestSearchJobs_EngineBadResponse(t *testing.T) {
	repo := &mockSearchRepo{err: domain.ErrEngineBadResponse}
	router := newTestRouter(t, testDeps{searchRepo: repo})

	rr := doGet(t, router, "/v1/jobs")
	if rr.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rr.Code)
	}

	e := decodeError(t, strings.NewReader(rr.Body.String()))
	if e.Error.Code != "engine_bad_response" {
		t.Errorf("expected engine_bad_response, got %q", e.Error.Code)
	}
}

func TestSearchJobs_InternalErrorNeverLeaks(t *testing.T) {
	repo := &mockSearchRepo{err: errors.New("dial tcp 10.0.0.3:9200: secret detail")}
	router := newTestRouter(t, testDeps{searchRepo: repo})

	rr := doGet(t, router, "/v1/jobs")
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rr.Code)
	}

	e := decodeError(t, strings.NewReader(rr.Body.String()))
	if e.Error.Code != "internal_error" {
		t.Errorf("expected internal_error, got %q", e.Error.Code)
	}
	if e.Error.Message != "internal error" {
		t.Errorf("internal detail leaked to client: %q", e.Error.Message)
	}
}

// --- GET /v1/jobs/{jobID} ---

func TestGetJob_OK(t *testing.T) {
	repo := &mockJobsRepo{item: sampleJob("job-42", "Platform Engineer")}
	router := newTestRouter(t, testDeps{jobsRepo: repo})

	rr := doGet(t, router, "/v1/jobs/job-42")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var item job.Job
	if err := json.NewDecoder(rr.Body).Decode(&item); err != nil {
		t.Fatalf("decode job: %v", err)
	}
	if item.ID != "job-42" || item.Title != "Platform Engineer" {
		t.Errorf("unexpected job: %+v", item)
	}
	if repo.lastID != "job-42" {
		t.Errorf("expected id routed to usecase, got %q", repo.lastID)
	}
}

func TestGetJob_NotFound(t *testing.T) {
	repo := &mockJobsRepo{err: domain.ErrJobNotFound}
	router := newTestRouter(t, testDeps{jobsRepo: repo})

	rr := doGet(t, router, "/v1/jobs/missing")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}

	e := decodeError(t, strings.NewReader(rr.Body.String()))
	if e.Error.Code != "job_not_found" {
		t.Errorf("expected job_not_found, got %q", e.Error.Code)
	}
}

func TestGetJob_EngineUnavailable(t *testing.T) {
	repo := &mockJobsRepo{err: domain.ErrEngineUnavailable}
	router := newTestRouter(t, testDeps{jobsRepo: repo})

	rr := doGet(t, router, "/v1/jobs/job-42")
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rr.Code)
	}
}

// --- GET /health ---

func TestHealth_OK(t *testing.T) {
	router := newTestRouter(t, testDeps{})

	rr := doGet(t, router, "/health")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	var resp healthResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode health: %v", err)
	}
	if resp.Status != "ok" {
		t.Errorf("expected status ok, got %q", resp.Status)
	}
	if resp.Service != "jobdex" || resp.Version != "test" {
		t.Errorf("unexpected identity: %s/%s", resp.Service, resp.Version)
	}
	if resp.Checks["engine"] != "ok" {
		t.Errorf("expected engine check ok, got %q", resp.Checks["engine"])
	}
}

func TestHealth_EngineDown(t *testing.T) {
	router := newTestRouter(t, testDeps{pinger: &mockPinger{err: errors.New("conn refused")}})

	rr := doGet(t, router, "/health")
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rr.Code)
	}

	var resp healthResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode health: %v", err)
	}
	if resp.Status != "error" {
		t.Errorf("expected status error, got %q", resp.Status)
	}
	if resp.Checks["engine"] != "error" {
		t.Errorf("expected engine check error, got %q", resp.Checks["engine"])
	}
}

// --- GET /metrics ---

func TestMetrics_Exposition(t *testing.T) {
	router := newTestRouter(t, testDeps{})

	rr := doGet(t, router, "/metrics")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if rr.Body.Len() == 0 {
		t.Error("expected non-empty metrics exposition")
	}
}

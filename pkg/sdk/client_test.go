package jobdex

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestSearchJobs_EncodesQuery(t *testing.T) {
	var gotPath string
	var gotQuery map[string][]string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		writeJSON(t, w, http.StatusOK, Page{
			Results:    []Job{},
			Total:      0,
			Page:       2,
			PageSize:   20,
			TotalPages: 0,
		})
	}))
	defer srv.Close()

	client := New(srv.URL)
	q := NewQuery("engineer").
		Filter("organisation", "Home Office").
		Filters("grades", "Grade 7", "Grade 6").
		SalaryMin(30000).
		SalaryMax(50000).
		Page(2).
		PageSize(20).
		SortBy("closingDate", SortAsc)

	if _, err := client.SearchJobs(context.Background(), q); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotPath != "/v1/jobs" {
		t.Errorf("path = %q, want /v1/jobs", gotPath)
	}
	want := map[string][]string{
		"q":            {"engineer"},
		"organisation": {"Home Office"},
		"grades":       {"Grade 7", "Grade 6"},
		"salaryMin":    {"30000"},
		"salaryMax":    {"50000"},
		"page":         {"2"},
		"pageSize":     {"20"},
		"sort":         {"closingDate:asc"},
	}
	for name, values := range want {
		got := gotQuery[name]
		if len(got) != len(values) {
			t.Errorf("param %s = %v, want %v", name, got, values)
			continue
		}
		for i := range values {
			if got[i] != values[i] {
				t.Errorf("param %s[%d] = %q, want %q", name, i, got[i], values[i])
			}
		}
	}
}

func TestSearchJobs_DecodesEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		minimum := 45000.0
		writeJSON(t, w, http.StatusOK, Page{
			Results: []Job{{
				ID:           "job-1",
				Title:        "Software Engineer",
				Organisation: "Home Office",
				Location:     []Place{{TownName: "Bristol"}},
				Salary:       Salary{Minimum: &minimum, Currency: "GBP", CurrencySymbol: "£"},
			}},
			Total:          25,
			Page:           1,
			PageSize:       10,
			TotalPages:     3,
			Query:          "engineer",
			AppliedFilters: "organisation=Home Office",
		})
	}))
	defer srv.Close()

	page, err := New(srv.URL).SearchJobs(context.Background(), NewQuery("engineer"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.Total != 25 || page.TotalPages != 3 {
		t.Errorf("total = %d/%d pages, want 25/3", page.Total, page.TotalPages)
	}
	if len(page.Results) != 1 {
		t.Fatalf("results = %d, want 1", len(page.Results))
	}
	job := page.Results[0]
	if job.ID != "job-1" || job.Location[0].TownName != "Bristol" {
		t.Errorf("unexpected first result: %+v", job)
	}
	if job.Salary.Minimum == nil || *job.Salary.Minimum != 45000 {
		t.Errorf("salary minimum = %v, want 45000", job.Salary.Minimum)
	}
}

func TestSearchJobs_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"code":"unknown_filter","message":"unknown filter: \"grdes\""}}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL).SearchJobs(context.Background(), NewQuery("").Filter("grdes", "Grade 7"))
	if err == nil {
		t.Fatal("expected error")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error type = %T, want *APIError", err)
	}
	if apiErr.Status != http.StatusBadRequest || apiErr.Code != CodeUnknownFilter {
		t.Errorf("apiErr = %+v", apiErr)
	}
}

func TestSearchJobs_NonEnvelopeErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>proxy error</html>"))
	}))
	defer srv.Close()

	_, err := New(srv.URL).SearchJobs(context.Background(), Query{})
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error type = %T, want *APIError", err)
	}
	if apiErr.Status != http.StatusBadGateway || apiErr.Code != "" {
		t.Errorf("apiErr = %+v", apiErr)
	}
}

func TestGetJob(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/jobs/job-42" {
			t.Errorf("path = %q, want /v1/jobs/job-42", r.URL.Path)
		}
		writeJSON(t, w, http.StatusOK, Job{ID: "job-42", Title: "Policy Adviser"})
	}))
	defer srv.Close()

	job, err := New(srv.URL).GetJob(context.Background(), "job-42")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if job.ID != "job-42" || job.Title != "Policy Adviser" {
		t.Errorf("job = %+v", job)
	}
}

func TestGetJob_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":{"code":"job_not_found","message":"job not found"}}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL).GetJob(context.Background(), "missing")
	if !IsNotFound(err) {
		t.Fatalf("IsNotFound = false for %v", err)
	}
}

func TestGetJob_EmptyID(t *testing.T) {
	if _, err := New("http://localhost:1").GetJob(context.Background(), "  "); err == nil {
		t.Fatal("expected error for blank id")
	}
}

func TestHealth_DegradedIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusServiceUnavailable, Health{
			Service: "jobdex",
			Version: "dev",
			Status:  "error",
			Checks:  map[string]string{"engine": "error"},
		})
	}))
	defer srv.Close()

	report, err := New(srv.URL).Health(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Status != "error" || report.Checks["engine"] != "error" {
		t.Errorf("report = %+v", report)
	}
}

func TestClientOptions(t *testing.T) {
	cfg := &clientConfig{}

	WithTimeout(3 * time.Second).apply(cfg)
	if cfg.timeout != 3*time.Second {
		t.Errorf("timeout = %v, want 3s", cfg.timeout)
	}

	custom := &http.Client{}
	WithHTTPClient(custom).apply(cfg)
	if cfg.httpClient != custom {
		t.Error("expected custom HTTP client to be set")
	}

	WithUserAgent("jobq/1.0").apply(cfg)
	if cfg.userAgent != "jobq/1.0" {
		t.Errorf("userAgent = %q, want jobq/1.0", cfg.userAgent)
	}
}

func TestUserAgentHeader(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		writeJSON(t, w, http.StatusOK, Page{Results: []Job{}})
	}))
	defer srv.Close()

	client := New(srv.URL, WithUserAgent("jobq/1.0"))
	if _, err := client.SearchJobs(context.Background(), Query{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotUA != "jobq/1.0" {
		t.Errorf("User-Agent = %q, want jobq/1.0", gotUA)
	}
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Fatalf("encode response: %v", err)
	}
}

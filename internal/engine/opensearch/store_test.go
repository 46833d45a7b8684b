package opensearch

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/kailas-cloud/jobdex/internal/engine"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := NewClient(Config{Addresses: []string{srv.URL}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	t.Cleanup(c.Close)
	return c
}

// --- client.go tests ---

func TestNewClient_NoAddresses(t *testing.T) {
	if _, err := NewClient(Config{}); err == nil {
		t.Fatal("expected error for missing addresses")
	}
}

func TestPing_Success(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	if err := c.Ping(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestPing_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	addr := srv.URL
	srv.Close()

	c, err := NewClient(Config{Addresses: []string{addr}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err = c.Ping(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, engine.ErrUnavailable) {
		t.Errorf("expected ErrUnavailable, got %v", err)
	}
}

func TestWaitForReady_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	addr := srv.URL
	srv.Close()

	c, err := NewClient(Config{Addresses: []string{addr}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := c.WaitForReady(context.Background(), 250*time.Millisecond); err == nil {
		t.Fatal("expected timeout error")
	}
}

func TestWaitForReady_Recovers(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	if err := c.WaitForReady(context.Background(), 2*time.Second); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// --- search.go tests ---

func TestSearch_Success(t *testing.T) {
	var gotPath string
	var gotBody engine.SearchRequest

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&gotBody)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"took": 3,
			"hits": {
				"total": {"value": 2, "relation": "eq"},
				"hits": [
					{"_id": "job-1", "_score": 2.5, "_source": {"id": "job-1"}},
					{"_id": "job-2", "_score": 1.5, "_source": {"id": "job-2"}}
				]
			}
		}`))
	})

	req := &engine.SearchRequest{Query: engine.MatchAll(), From: 10, Size: 5}
	resp, err := c.Search(context.Background(), "jobs", req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotPath != "/jobs/_search" {
		t.Errorf("expected path /jobs/_search, got %s", gotPath)
	}
	if gotBody.From != 10 || gotBody.Size != 5 {
		t.Errorf("expected from=10 size=5 on the wire, got from=%d size=%d", gotBody.From, gotBody.Size)
	}
	if resp.Hits.Total.Value != 2 {
		t.Errorf("expected total 2, got %d", resp.Hits.Total.Value)
	}
	if len(resp.Hits.Hits) != 2 || resp.Hits.Hits[0].ID != "job-1" {
		t.Errorf("unexpected hits: %+v", resp.Hits.Hits)
	}
}

func TestSearch_EmptyIndex(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})

	if _, err := c.Search(context.Background(), "", &engine.SearchRequest{Query: engine.MatchAll()}); err == nil {
		t.Fatal("expected error for empty index")
	}
}

func TestSearch_BadRequestMapsToQueryRejected(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error": {"type": "parsing_exception", "reason": "unknown field [frm]"}, "status": 400}`))
	})

	_, err := c.Search(context.Background(), "jobs", &engine.SearchRequest{Query: engine.MatchAll()})
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, engine.ErrQueryRejected) {
		t.Errorf("expected ErrQueryRejected, got %v", err)
	}

	var opErr *engine.Error
	if !errors.As(err, &opErr) || opErr.Op != engine.OpSearch {
		t.Errorf("expected op %q wrapper, got %v", engine.OpSearch, err)
	}
}

func TestSearch_ServerErrorMapsToUnavailable(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error": "node failure"}`))
	})

	_, err := c.Search(context.Background(), "jobs", &engine.SearchRequest{Query: engine.MatchAll()})
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, engine.ErrUnavailable) {
		t.Errorf("expected ErrUnavailable, got %v", err)
	}
}

func TestSearch_GarbageBodyMapsToBadResponse(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`<html>proxy error</html>`))
	})

	_, err := c.Search(context.Background(), "jobs", &engine.SearchRequest{Query: engine.MatchAll()})
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, engine.ErrBadResponse) {
		t.Errorf("expected ErrBadResponse, got %v", err)
	}
}

func TestSearch_LegacyBareTotal(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"hits": {"total": 7, "hits": []}}`))
	})

	resp, err := c.Search(context.Background(), "jobs", &engine.SearchRequest{Query: engine.MatchAll()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Hits.Total.Value != 7 {
		t.Errorf("expected total 7, got %d", resp.Hits.Total.Value)
	}
}

func TestReadReason(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"structured", `{"error": {"type": "parsing_exception", "reason": "bad query"}}`, "bad query"},
		{"plain string", `{"error": "index_not_found"}`, "index_not_found"},
		{"not json", `<html></html>`, ""},
		{"empty", ``, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := readReason(strings.NewReader(tc.body))
			if got != tc.want {
				t.Errorf("readReason(%q) = %q, want %q", tc.body, got, tc.want)
			}
		})
	}
}

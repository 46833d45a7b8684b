package opensearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/kailas-cloud/jobdex/internal/engine"
	"github.com/kailas-cloud/jobdex/internal/metrics"
)

// Search executes a search request against one index.
//
// Error mapping: transport failures and 5xx statuses surface as
// engine.ErrUnavailable, 4xx statuses as engine.ErrQueryRejected, and an
// undecodable success body as engine.ErrBadResponse.
func (c *Client) Search(ctx context.Context, index string, req *engine.SearchRequest) (*engine.SearchResponse, error) {
	if index == "" {
		return nil, fmt.Errorf("index name is required")
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, &engine.Error{Op: engine.OpSearch, Err: err}
	}

	start := time.Now()

	res, err := c.client.Search(
		c.client.Search.WithContext(ctx),
		c.client.Search.WithIndex(index),
		c.client.Search.WithBody(bytes.NewReader(body)),
	)

	metrics.EngineRequestDuration.WithLabelValues("opensearch", engine.OpSearch).Observe(time.Since(start).Seconds())

	if err != nil {
		return nil, &engine.Error{Op: engine.OpSearch, Err: fmt.Errorf("%w: %v", engine.ErrUnavailable, err)}
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, &engine.Error{Op: engine.OpSearch, Err: statusError(res.StatusCode, res.Body)}
	}

	var parsed engine.SearchResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, &engine.Error{Op: engine.OpSearch, Err: fmt.Errorf("%w: %v", engine.ErrBadResponse, err)}
	}
	return &parsed, nil
}

// statusError maps a non-2xx engine reply to the matching sentinel, keeping
// the engine's own reason when one can be read from the body.
func statusError(status int, body io.Reader) error {
	sentinel := engine.ErrUnavailable
	if status >= 400 && status < 500 {
		sentinel = engine.ErrQueryRejected
	}

	if reason := readReason(body); reason != "" {
		return fmt.Errorf("%w: status %d: %s", sentinel, status, reason)
	}
	return fmt.Errorf("%w: status %d", sentinel, status)
}

// readReason extracts the failure reason from an engine error body. The body
// is {"error": {"reason": ...}} on modern clusters and {"error": "..."} on
// some older ones; anything else yields an empty reason.
func readReason(body io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(body, 4096))
	if err != nil {
		return ""
	}

	var structured struct {
		Error struct {
			Type   string `json:"type"`
			Reason string `json:"reason"`
		} `json:"error"`
	}
	if err := json.Unmarshal(raw, &structured); err == nil && structured.Error.Reason != "" {
		return structured.Error.Reason
	}

	var plain struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(raw, &plain); err == nil {
		return plain.Error
	}
	return ""
}

package jobdex

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultTimeout   = 10 * time.Second
	defaultUserAgent = "jobdex-go"

	// Error bodies beyond this size are cut off before decoding.
	maxErrorBody = 8192
)

// Client is a typed HTTP client for the jobdex API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
}

// New creates a Client for the API at baseURL, e.g. "http://localhost:8080".
func New(baseURL string, opts ...Option) *Client {
	cfg := &clientConfig{
		timeout:   defaultTimeout,
		userAgent: defaultUserAgent,
	}
	for _, o := range opts {
		o.apply(cfg)
	}

	httpClient := cfg.httpClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.timeout}
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		userAgent:  cfg.userAgent,
	}
}

// SearchJobs runs a search and returns one page of results.
func (c *Client) SearchJobs(ctx context.Context, q Query) (Page, error) {
	var page Page
	if err := c.get(ctx, "/v1/jobs", q.encode(), &page); err != nil {
		return Page{}, err
	}
	return page, nil
}

// GetJob fetches a single job posting by its identifier.
func (c *Client) GetJob(ctx context.Context, id string) (Job, error) {
	if strings.TrimSpace(id) == "" {
		return Job{}, errors.New("jobdex: job id is required")
	}
	var item Job
	if err := c.get(ctx, "/v1/jobs/"+url.PathEscape(id), nil, &item); err != nil {
		return Job{}, err
	}
	return item, nil
}

// Health reports service health. A degraded or failing dependency is not an
// error here: the report is returned whenever the service produced one,
// whatever the status code. The error is non-nil only when the service could
// not be reached or the body was not a health report.
func (c *Client) Health(ctx context.Context) (Health, error) {
	resp, err := c.do(ctx, "/health", nil)
	if err != nil {
		return Health{}, err
	}
	defer resp.Body.Close()

	var report Health
	if err := json.NewDecoder(resp.Body).Decode(&report); err != nil {
		return Health{}, &APIError{Status: resp.StatusCode, Message: "undecodable health response"}
	}
	return report, nil
}

// get performs a GET and decodes the 200 body into out. Any other status is
// decoded into an *APIError.
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	resp, err := c.do(ctx, path, query)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decodeAPIError(resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("jobdex: decode %s response: %w", path, err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, path string, query url.Values) (*http.Response, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("jobdex: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("jobdex: %s: %w", path, err)
	}
	return resp, nil
}

// decodeAPIError turns a non-200 response into an *APIError. Bodies that do
// not carry the error envelope still produce an APIError with the HTTP
// status and whatever text was readable.
func decodeAPIError(resp *http.Response) error {
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return &APIError{Status: resp.StatusCode}
	}

	var envelope struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if json.Unmarshal(body, &envelope) == nil && envelope.Error.Code != "" {
		return &APIError{
			Status:  resp.StatusCode,
			Code:    envelope.Error.Code,
			Message: envelope.Error.Message,
		}
	}

	return &APIError{
		Status:  resp.StatusCode,
		Message: strings.TrimSpace(string(body)),
	}
}

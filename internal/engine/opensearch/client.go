// Package opensearch implements the engine client over an OpenSearch
// cluster's REST API.
package opensearch

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/opensearch-project/opensearch-go/v2"

	"github.com/kailas-cloud/jobdex/internal/engine"
)

// Compile-time check: Client implements engine.Client.
var _ engine.Client = (*Client)(nil)

// Config holds connection parameters for an OpenSearch cluster.
type Config struct {
	Addresses      []string
	Username       string
	Password       string
	RequestTimeout time.Duration
	MaxRetries     int
	RetryOnTimeout bool
}

// Client implements engine.Client via the official OpenSearch Go client.
type Client struct {
	client    *opensearch.Client
	transport *http.Transport
}

// NewClient creates an OpenSearch-backed engine client.
func NewClient(cfg Config) (*Client, error) {
	if len(cfg.Addresses) == 0 {
		return nil, fmt.Errorf("addresses is required")
	}

	transport := &http.Transport{
		MaxIdleConnsPerHost:   10,
		ResponseHeaderTimeout: cfg.RequestTimeout,
	}

	client, err := opensearch.NewClient(opensearch.Config{
		Addresses:            cfg.Addresses,
		Username:             cfg.Username,
		Password:             cfg.Password,
		Transport:            transport,
		MaxRetries:           cfg.MaxRetries,
		EnableRetryOnTimeout: cfg.RetryOnTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return &Client{client: client, transport: transport}, nil
}

// Ping checks cluster connectivity.
func (c *Client) Ping(ctx context.Context) error {
	res, err := c.client.Ping(c.client.Ping.WithContext(ctx))
	if err != nil {
		return &engine.Error{Op: engine.OpPing, Err: fmt.Errorf("%w: %v", engine.ErrUnavailable, err)}
	}
	defer res.Body.Close()

	if res.IsError() {
		return &engine.Error{Op: engine.OpPing, Err: fmt.Errorf("%w: status %d", engine.ErrUnavailable, res.StatusCode)}
	}
	return nil
}

// Close releases idle connections.
func (c *Client) Close() {
	c.transport.CloseIdleConnections()
}

// WaitForReady polls Ping until the cluster responds or timeout expires.
func (c *Client) WaitForReady(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("timeout waiting for engine: %w", ctx.Err())
		case <-ticker.C:
			if err := c.Ping(ctx); err == nil {
				return nil
			}
		}
	}
}

// Package engine defines the search engine facade: the query and response
// model the service speaks, and the narrow interfaces its drivers implement.
package engine

import (
	"context"
	"time"
)

// Client is the engine facade combining all sub-interfaces.
type Client interface {
	Pinger
	Searcher
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks engine connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Searcher executes search requests against an index.
type Searcher interface {
	Search(ctx context.Context, index string, req *SearchRequest) (*SearchResponse, error)
}

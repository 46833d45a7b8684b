// Package result holds the outcome of a search: the hits handed back by the
// engine after normalization, and the paginated envelope promised to callers.
package result

import (
	"github.com/kailas-cloud/jobdex/internal/domain/job"
)

// Hits is one engine round trip after normalization. Items keep the engine's
// ranking order. Degraded counts documents that matched neither stored
// generation cleanly; such items are still present with defaulted fields.
type Hits struct {
	Items    []job.Job
	Total    int64
	Degraded int
}

// Page is the paginated response envelope. Page and PageSize echo the
// validated request, Query and AppliedFilters echo what was actually
// executed.
type Page struct {
	Results        []job.Job `json:"results"`
	Total          int64     `json:"total"`
	Page           int       `json:"page"`
	PageSize       int       `json:"pageSize"`
	TotalPages     int64     `json:"totalPages"`
	Query          string    `json:"query"`
	AppliedFilters string    `json:"appliedFilters"`
}

// NewPage assembles the envelope from normalized hits and the request echo.
// TotalPages is the number of pages needed to show Total items at PageSize
// each; it is zero exactly when Total is zero. An out-of-range page keeps the
// true total and simply carries no results.
func NewPage(hits Hits, page, pageSize int, query, appliedFilters string) Page {
	items := hits.Items
	if items == nil {
		items = []job.Job{}
	}
	return Page{
		Results:        items,
		Total:          hits.Total,
		Page:           page,
		PageSize:       pageSize,
		TotalPages:     totalPages(hits.Total, pageSize),
		Query:          query,
		AppliedFilters: appliedFilters,
	}
}

func totalPages(total int64, pageSize int) int64 {
	if total <= 0 || pageSize <= 0 {
		return 0
	}
	return (total + int64(pageSize) - 1) / int64(pageSize)
}

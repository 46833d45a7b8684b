package request

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kailas-cloud/jobdex/internal/domain/search/filter"
	"github.com/kailas-cloud/jobdex/internal/domain/search/schema"
)

// Search parameter limits.
const (
	// MaxQueryLength is the maximum allowed free-text query length.
	MaxQueryLength  = 512
	DefaultPageSize = 10
	MaxPageSize     = 100
	MaxSortKeys     = 8
)

// SortKey is one (field, direction) pair of a sort specification.
type SortKey struct {
	field string
	desc  bool
}

// NewSortKey creates a sort key. The field is the external sort name; the
// index schema decides whether it is sortable.
func NewSortKey(field string, desc bool) (SortKey, error) {
	if field == "" {
		return SortKey{}, fmt.Errorf("sort field is required")
	}
	return SortKey{field: field, desc: desc}, nil
}

// Field returns the external sort field name.
func (k SortKey) Field() string { return k.field }

// Descending reports whether the key sorts descending.
func (k SortKey) Descending() bool { return k.desc }

// Request is a validated search request: free text, filters, pagination
// and sort. The zero page/pageSize mean "use defaults".
type Request struct {
	query    string
	filters  filter.Set
	page     int
	pageSize int
	sort     []SortKey
}

// New validates and normalizes search parameters.
// Defaults: page=1, pageSize=DefaultPageSize. New never clamps an oversized
// pageSize; that is the parser's job, so programmatic callers keep what they
// ask for.
func New(query string, filters filter.Set, page, pageSize int, sort []SortKey) (Request, error) {
	query = strings.TrimSpace(query)
	if len(query) > MaxQueryLength {
		return Request{}, fmt.Errorf("query too long (max %d chars)", MaxQueryLength)
	}
	if page == 0 {
		page = 1
	}
	if page < 1 {
		return Request{}, fmt.Errorf("page must be >= 1, got %d", page)
	}
	if pageSize == 0 {
		pageSize = DefaultPageSize
	}
	if pageSize < 1 {
		return Request{}, fmt.Errorf("pageSize must be >= 1, got %d", pageSize)
	}
	if len(sort) > MaxSortKeys {
		return Request{}, fmt.Errorf("too many sort keys (max %d)", MaxSortKeys)
	}
	return Request{
		query:    query,
		filters:  filters,
		page:     page,
		pageSize: pageSize,
		sort:     sort,
	}, nil
}

// Query returns the trimmed free-text query; empty means match-all.
func (r *Request) Query() string { return r.query }

// Filters returns the validated filter set.
func (r *Request) Filters() filter.Set { return r.filters }

// Page returns the 1-based page number.
func (r *Request) Page() int { return r.page }

// PageSize returns the page size.
func (r *Request) PageSize() int { return r.pageSize }

// Sort returns the ordered sort keys.
func (r *Request) Sort() []SortKey {
	out := make([]SortKey, len(r.sort))
	copy(out, r.sort)
	return out
}

// From returns the engine result offset: (page-1) * pageSize.
func (r *Request) From() int { return (r.page - 1) * r.pageSize }

// Summary renders the applied filters as a deterministic, human-readable
// echo string (schema order), empty when the request has no filters. This
// is what callers see as appliedFilters, so "no filters" and "filters that
// matched nothing" stay distinguishable.
func (r *Request) Summary() string {
	s := schema.Jobs()
	var parts []string
	for _, f := range s.Filters() {
		if f.Multi() {
			if values := r.filters.Values(f.Name()); len(values) > 0 {
				parts = append(parts, f.Name()+"="+strings.Join(values, ","))
			}
			continue
		}
		if v, ok := r.filters.Single(f.Name()); ok {
			parts = append(parts, f.Name()+"="+v)
		}
	}
	for _, rng := range s.Ranges() {
		bounds, ok := r.filters.Range(rng.Name())
		if !ok {
			continue
		}
		if min := bounds.Min(); min != nil {
			parts = append(parts, rng.MinParam()+"="+formatBound(*min))
		}
		if max := bounds.Max(); max != nil {
			parts = append(parts, rng.MaxParam()+"="+formatBound(*max))
		}
	}
	return strings.Join(parts, "; ")
}

func formatBound(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

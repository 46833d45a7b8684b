package jobs

import (
	"fmt"

	"github.com/kailas-cloud/jobdex/internal/domain"
	"github.com/kailas-cloud/jobdex/internal/domain/search/request"
	"github.com/kailas-cloud/jobdex/internal/domain/search/schema"
	"github.com/kailas-cloud/jobdex/internal/engine"
)

// BuildSearch converts a validated search request into the engine search
// body. Clause order follows schema registry order, so the same request
// always produces the same body.
//
// Field names are resolved through the schema here; an unresolvable name
// means the parser let something through it should not have, which surfaces
// as domain.ErrInternal rather than a user-facing validation error.
func BuildSearch(req request.Request) (*engine.SearchRequest, error) {
	s := schema.Jobs()
	f := req.Filters()

	must := make([]engine.Query, 0, 1)
	if q := req.Query(); q != "" {
		must = append(must, engine.MultiMatch(q, s.SearchFields()))
	} else {
		must = append(must, engine.MatchAll())
	}

	var filters []engine.Query
	matched := 0
	for _, field := range s.Filters() {
		if field.Multi() {
			if values := f.Values(field.Name()); len(values) > 0 {
				filters = append(filters, engine.Terms(field.FilterPath(), values))
				matched++
			}
			continue
		}
		if v, ok := f.Single(field.Name()); ok {
			filters = append(filters, engine.Term(field.FilterPath(), v))
			matched++
		}
	}
	for _, rng := range s.Ranges() {
		if bounds, ok := f.Range(rng.Name()); ok {
			filters = append(filters, engine.NumericRange(rng.Path(), bounds.Min(), bounds.Max()))
			matched++
		}
	}
	if total := len(f.Fields()); matched != total {
		return nil, fmt.Errorf("filter set references fields outside the schema %v: %w",
			f.Fields(), domain.ErrInternal)
	}

	sort, err := buildSort(s, req.Sort())
	if err != nil {
		return nil, err
	}

	return &engine.SearchRequest{
		Query: engine.Bool(must, filters),
		From:  req.From(),
		Size:  req.PageSize(),
		Sort:  sort,
	}, nil
}

// buildSort renders user sort keys in order, then the score and id
// tie-breaks that keep pagination stable.
func buildSort(s schema.Schema, keys []request.SortKey) ([]engine.SortClause, error) {
	sort := make([]engine.SortClause, 0, len(keys)+2)
	for _, k := range keys {
		path, ok := s.SortField(k.Field())
		if !ok {
			return nil, fmt.Errorf("unknown sort field %q: %w", k.Field(), domain.ErrInternal)
		}
		order := engine.SortAsc
		if k.Descending() {
			order = engine.SortDesc
		}
		sort = append(sort, engine.SortBy(path, order))
	}
	sort = append(sort,
		engine.SortBy(engine.ScoreField, engine.SortDesc),
		engine.SortBy("id", engine.SortAsc),
	)
	return sort, nil
}

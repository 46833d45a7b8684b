package memory

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"

	"github.com/kailas-cloud/jobdex/internal/engine"
	"github.com/kailas-cloud/jobdex/internal/metrics"
)

// filterFields maps cluster filter paths to the bleve fields carrying the
// exact terms.
var filterFields = map[string]string{
	"id":                   "id",
	"organisation.keyword": "organisationExact",
	"location.keyword":     "locationExact",
	"grade":                "gradeExact",
	"assignmentType":       "assignmentType",
	"profession.keyword":   "professionExact",
	"workingPattern":       "workingPattern",
	"workLocation":         "workLocation",
	"approach":             "approach",
}

// rangeFields maps cluster numeric paths to bleve numeric fields.
var rangeFields = map[string]string{
	"salary.minimum": "salaryMinimum",
}

// sortFields maps cluster sort paths to bleve sort fields.
var sortFields = map[string]string{
	engine.ScoreField:     "_score",
	"id":                  "id",
	"title.keyword":       "titleExact",
	"closingDate.keyword": "closingDate",
	"salary.minimum":      "salaryMinimum",
}

// Search executes a search request against the in-memory index. A request
// naming an index or field this store does not serve is rejected the way a
// cluster rejects it.
func (s *Store) Search(ctx context.Context, index string, req *engine.SearchRequest) (*engine.SearchResponse, error) {
	if index != s.name {
		return nil, &engine.Error{
			Op:  engine.OpSearch,
			Err: fmt.Errorf("%w: no such index %q", engine.ErrQueryRejected, index),
		}
	}

	bq, err := translate(req.Query)
	if err != nil {
		return nil, &engine.Error{
			Op:  engine.OpSearch,
			Err: fmt.Errorf("%w: %v", engine.ErrQueryRejected, err),
		}
	}

	breq := bleve.NewSearchRequest(bq)
	breq.From = req.From
	breq.Size = req.Size
	if len(req.Sort) > 0 {
		spec, err := sortSpec(req.Sort)
		if err != nil {
			return nil, &engine.Error{
				Op:  engine.OpSearch,
				Err: fmt.Errorf("%w: %v", engine.ErrQueryRejected, err),
			}
		}
		breq.SortBy(spec)
	}

	start := time.Now()
	res, err := s.index.SearchInContext(ctx, breq)
	metrics.EngineRequestDuration.WithLabelValues("memory", engine.OpSearch).Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, &engine.Error{Op: engine.OpSearch, Err: fmt.Errorf("%w: %v", engine.ErrUnavailable, err)}
	}

	out := &engine.SearchResponse{
		Took: int(res.Took.Milliseconds()),
		Hits: engine.HitsResult{
			Total: engine.HitsTotal{Value: int64(res.Total), Relation: "eq"},
			Hits:  make([]engine.Hit, 0, len(res.Hits)),
		},
	}
	if res.Total > 0 {
		maxScore := res.MaxScore
		out.Hits.MaxScore = &maxScore
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, hit := range res.Hits {
		score := hit.Score
		out.Hits.Hits = append(out.Hits.Hits, engine.Hit{
			Index:  s.name,
			ID:     hit.ID,
			Score:  &score,
			Source: s.docs[hit.ID],
		})
	}
	return out, nil
}

// translate converts one query node to its bleve counterpart.
func translate(q engine.Query) (query.Query, error) {
	switch {
	case q.MatchAll != nil:
		return bleve.NewMatchAllQuery(), nil

	case q.MultiMatch != nil:
		return translateMultiMatch(q.MultiMatch)

	case q.Term != nil:
		for field, value := range q.Term {
			mapped, ok := filterFields[field]
			if !ok {
				return nil, fmt.Errorf("unknown filter field %q", field)
			}
			tq := bleve.NewTermQuery(value)
			tq.SetField(mapped)
			return tq, nil
		}
		return nil, fmt.Errorf("empty term node")

	case q.Terms != nil:
		for field, values := range q.Terms {
			mapped, ok := filterFields[field]
			if !ok {
				return nil, fmt.Errorf("unknown filter field %q", field)
			}
			dq := bleve.NewDisjunctionQuery()
			for _, v := range values {
				tq := bleve.NewTermQuery(v)
				tq.SetField(mapped)
				dq.AddQuery(tq)
			}
			return dq, nil
		}
		return nil, fmt.Errorf("empty terms node")

	case q.Range != nil:
		for field, bounds := range q.Range {
			mapped, ok := rangeFields[field]
			if !ok {
				return nil, fmt.Errorf("unknown range field %q", field)
			}
			inclusive := true
			rq := bleve.NewNumericRangeInclusiveQuery(bounds.GTE, bounds.LTE, &inclusive, &inclusive)
			rq.SetField(mapped)
			return rq, nil
		}
		return nil, fmt.Errorf("empty range node")

	case q.Bool != nil:
		return translateBool(q.Bool)

	default:
		return nil, fmt.Errorf("empty query node")
	}
}

func translateMultiMatch(mm *engine.MultiMatchQuery) (query.Query, error) {
	if len(mm.Fields) == 0 {
		return nil, fmt.Errorf("multi_match requires fields")
	}

	dq := bleve.NewDisjunctionQuery()
	for _, f := range mm.Fields {
		name, boost := splitBoost(f)
		mq := bleve.NewMatchQuery(mm.Query)
		mq.SetField(name)
		if boost != 1 {
			mq.SetBoost(boost)
		}
		dq.AddQuery(mq)
	}
	return dq, nil
}

func translateBool(b *engine.BoolQuery) (query.Query, error) {
	bq := bleve.NewBooleanQuery()

	// bleve has no separate non-scoring filter context; filters become musts.
	for _, clauses := range [][]engine.Query{b.Must, b.Filter} {
		for _, c := range clauses {
			sub, err := translate(c)
			if err != nil {
				return nil, err
			}
			bq.AddMust(sub)
		}
	}
	for _, c := range b.Should {
		sub, err := translate(c)
		if err != nil {
			return nil, err
		}
		bq.AddShould(sub)
	}
	for _, c := range b.MustNot {
		sub, err := translate(c)
		if err != nil {
			return nil, err
		}
		bq.AddMustNot(sub)
	}
	return bq, nil
}

func sortSpec(clauses []engine.SortClause) ([]string, error) {
	spec := make([]string, 0, len(clauses))
	for _, clause := range clauses {
		for field, order := range clause {
			mapped, ok := sortFields[field]
			if !ok {
				return nil, fmt.Errorf("unknown sort field %q", field)
			}
			if order.Order == engine.SortDesc {
				mapped = "-" + mapped
			}
			spec = append(spec, mapped)
		}
	}
	return spec, nil
}

// splitBoost parses a "field^boost" entry; a bare field boosts by 1.
func splitBoost(f string) (string, float64) {
	name, suffix, found := strings.Cut(f, "^")
	if !found {
		return f, 1
	}
	boost, err := strconv.ParseFloat(suffix, 64)
	if err != nil || boost <= 0 {
		return name, 1
	}
	return name, boost
}

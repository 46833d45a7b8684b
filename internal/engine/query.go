package engine

// SearchRequest is the body of one engine search call. From and Size are
// always sent so paging is explicit on the wire.
type SearchRequest struct {
	Query Query        `json:"query"`
	From  int          `json:"from"`
	Size  int          `json:"size"`
	Sort  []SortClause `json:"sort,omitempty"`
}

// Query is a single query-DSL node. Exactly one member is set; the JSON key
// of that member is the node type on the wire.
type Query struct {
	MatchAll   *MatchAllQuery          `json:"match_all,omitempty"`
	MultiMatch *MultiMatchQuery        `json:"multi_match,omitempty"`
	Term       map[string]string       `json:"term,omitempty"`
	Terms      map[string][]string     `json:"terms,omitempty"`
	Range      map[string]*RangeBounds `json:"range,omitempty"`
	Bool       *BoolQuery              `json:"bool,omitempty"`
}

// MatchAllQuery matches every document.
type MatchAllQuery struct{}

// MultiMatchQuery runs full-text relevance matching over several fields.
// Field entries may carry a boost suffix ("title^3").
type MultiMatchQuery struct {
	Query     string   `json:"query"`
	Fields    []string `json:"fields"`
	Type      string   `json:"type,omitempty"`
	Fuzziness string   `json:"fuzziness,omitempty"`
}

// RangeBounds holds the inclusive numeric bounds of a range node. A nil bound
// is left off the wire.
type RangeBounds struct {
	GTE *float64 `json:"gte,omitempty"`
	LTE *float64 `json:"lte,omitempty"`
}

// BoolQuery combines sub-queries. Must clauses score, filter clauses only
// narrow.
type BoolQuery struct {
	Must    []Query `json:"must,omitempty"`
	Filter  []Query `json:"filter,omitempty"`
	Should  []Query `json:"should,omitempty"`
	MustNot []Query `json:"must_not,omitempty"`
}

// SortClause orders results by one field, e.g. {"_score": {"order": "desc"}}.
type SortClause map[string]SortOrder

// SortOrder is the direction of a sort clause.
type SortOrder struct {
	Order string `json:"order"`
}

// Sort directions.
const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// ScoreField is the pseudo-field carrying the relevance score in sort
// clauses.
const ScoreField = "_score"

// MatchAll builds a match-all node.
func MatchAll() Query {
	return Query{MatchAll: &MatchAllQuery{}}
}

// MultiMatch builds a best-fields multi-match node with automatic fuzziness,
// the relevance recipe every free-text search in the service uses.
func MultiMatch(query string, fields []string) Query {
	return Query{MultiMatch: &MultiMatchQuery{
		Query:     query,
		Fields:    fields,
		Type:      "best_fields",
		Fuzziness: "AUTO",
	}}
}

// Term builds an exact single-value node on field.
func Term(field, value string) Query {
	return Query{Term: map[string]string{field: value}}
}

// Terms builds an any-of node on field.
func Terms(field string, values []string) Query {
	return Query{Terms: map[string][]string{field: values}}
}

// NumericRange builds an inclusive range node on field. At least one bound
// must be non-nil; callers validate that upstream.
func NumericRange(field string, gte, lte *float64) Query {
	return Query{Range: map[string]*RangeBounds{field: {GTE: gte, LTE: lte}}}
}

// Bool builds a bool node from scoring and narrowing clauses.
func Bool(must, filter []Query) Query {
	return Query{Bool: &BoolQuery{Must: must, Filter: filter}}
}

// SortBy builds one sort clause.
func SortBy(field, order string) SortClause {
	return SortClause{field: {Order: order}}
}

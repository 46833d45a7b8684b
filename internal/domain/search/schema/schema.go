// Package schema is the registry of the jobs index: which request parameters
// are filterable, which engine field each one targets, which fields the
// full-text clause searches, and which fields results may be sorted by.
// It is the single source of truth for the strict unknown-name policy.
package schema

// Kind is the engine mapping kind of a field.
type Kind string

// Field kind constants.
const (
	// Text is an analyzed field; exact filters target its .keyword sub-field.
	Text    Kind = "text"
	Keyword Kind = "keyword"
	Numeric Kind = "numeric"
)

// Field is an immutable value object describing one filterable parameter.
type Field struct {
	name  string
	path  string
	kind  Kind
	multi bool
}

// Name returns the external parameter name.
func (f Field) Name() string { return f.name }

// Path returns the engine field path.
func (f Field) Path() string { return f.path }

// Kind returns the engine mapping kind.
func (f Field) Kind() Kind { return f.kind }

// Multi reports whether the parameter accepts repeated values (facet).
func (f Field) Multi() bool { return f.multi }

// FilterPath returns the path exact-match clauses must target.
// Analyzed text fields are filtered on their keyword sub-field.
func (f Field) FilterPath() string {
	if f.kind == Text {
		return f.path + ".keyword"
	}
	return f.path
}

// Range describes a pair of bound parameters targeting one numeric field.
type Range struct {
	name     string
	minParam string
	maxParam string
	path     string
}

// Name returns the range filter name.
func (r Range) Name() string { return r.name }

// MinParam returns the lower-bound parameter name.
func (r Range) MinParam() string { return r.minParam }

// MaxParam returns the upper-bound parameter name.
func (r Range) MaxParam() string { return r.maxParam }

// Path returns the numeric engine field the bounds apply to.
func (r Range) Path() string { return r.path }

// Bound marks which side of a Range a parameter supplies.
type Bound int

// Range bound sides.
const (
	Min Bound = iota
	Max
)

// Schema is an immutable field registry for one index.
type Schema struct {
	filters    []Field
	byName     map[string]Field
	ranges     []Range
	boundByKey map[string]rangeBound
	sorts      map[string]string
	searchable []string
}

type rangeBound struct {
	rng   Range
	bound Bound
}

// Filter resolves a filter parameter name.
func (s Schema) Filter(name string) (Field, bool) {
	f, ok := s.byName[name]
	return f, ok
}

// Filters returns all filter fields in declaration order. Query clause
// order follows this order, keeping built queries deterministic.
func (s Schema) Filters() []Field {
	out := make([]Field, len(s.filters))
	copy(out, s.filters)
	return out
}

// Ranges returns all range filters in declaration order.
func (s Schema) Ranges() []Range {
	out := make([]Range, len(s.ranges))
	copy(out, s.ranges)
	return out
}

// RangeBound resolves a bound parameter name (e.g. salaryMin) to its range
// and side.
func (s Schema) RangeBound(param string) (Range, Bound, bool) {
	rb, ok := s.boundByKey[param]
	return rb.rng, rb.bound, ok
}

// SortField resolves an external sort key to the engine sort field.
func (s Schema) SortField(name string) (string, bool) {
	path, ok := s.sorts[name]
	return path, ok
}

// SearchFields returns the boosted field list for full-text clauses.
func (s Schema) SearchFields() []string {
	out := make([]string, len(s.searchable))
	copy(out, s.searchable)
	return out
}

// Jobs returns the registry for the jobs index.
func Jobs() Schema { return jobsSchema }

var jobsSchema = build(
	[]Field{
		{name: "organisation", path: "organisation", kind: Text},
		{name: "location", path: "location", kind: Text},
		{name: "grade", path: "grade", kind: Keyword},
		{name: "assignmentType", path: "assignmentType", kind: Keyword},
		{name: "profession", path: "profession", kind: Text},
		{name: "grades", path: "grade", kind: Keyword, multi: true},
		{name: "professions", path: "profession", kind: Text, multi: true},
		{name: "workingPatterns", path: "workingPattern", kind: Keyword, multi: true},
		{name: "workLocations", path: "workLocation", kind: Keyword, multi: true},
		{name: "approaches", path: "approach", kind: Keyword, multi: true},
	},
	[]Range{
		{name: "salary", minParam: "salaryMin", maxParam: "salaryMax", path: "salary.minimum"},
	},
	map[string]string{
		"closingDate": "closingDate.keyword",
		"salary":      "salary.minimum",
		"title":       "title.keyword",
		"id":          "id",
	},
	[]string{"title^3", "description", "organisation^2", "location", "summary", "profession", "grade"},
)

func build(filters []Field, ranges []Range, sorts map[string]string, searchable []string) Schema {
	s := Schema{
		filters:    filters,
		byName:     make(map[string]Field, len(filters)),
		ranges:     ranges,
		boundByKey: make(map[string]rangeBound, len(ranges)*2),
		sorts:      sorts,
		searchable: searchable,
	}
	for _, f := range filters {
		s.byName[f.name] = f
	}
	for _, r := range ranges {
		s.boundByKey[r.minParam] = rangeBound{rng: r, bound: Min}
		s.boundByKey[r.maxParam] = rangeBound{rng: r, bound: Max}
	}
	return s
}

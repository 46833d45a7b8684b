package filter

import (
	"fmt"
	"sort"
)

// MaxValuesPerFilter is the maximum number of values per facet filter.
const MaxValuesPerFilter = 32

// Range is an inclusive numeric range; only supplied bounds constrain.
type Range struct {
	min *float64
	max *float64
}

// NewRange validates and creates a Range.
// At least one bound is required and bounds must be non-negative.
// An inverted range (min > max) is allowed; the engine simply matches nothing.
func NewRange(min, max *float64) (Range, error) {
	if min == nil && max == nil {
		return Range{}, fmt.Errorf("at least one range bound is required")
	}
	if min != nil && *min < 0 {
		return Range{}, fmt.Errorf("range lower bound must be non-negative, got %v", *min)
	}
	if max != nil && *max < 0 {
		return Range{}, fmt.Errorf("range upper bound must be non-negative, got %v", *max)
	}
	return Range{min: min, max: max}, nil
}

// Min returns the inclusive lower bound.
func (r Range) Min() *float64 { return r.min }

// Max returns the inclusive upper bound.
func (r Range) Max() *float64 { return r.max }

// Set is the validated filter portion of a search request: exact single-value
// filters, multi-value facets (OR within a field, AND across fields), and
// numeric ranges. Field names are plain strings here; the request parser is
// responsible for checking them against the index schema.
type Set struct {
	single map[string]string
	multi  map[string][]string
	ranges map[string]Range
}

// NewSet validates and creates a Set. Facet value lists are normalized to
// ordered sets: duplicates removed, first-occurrence order preserved.
func NewSet(single map[string]string, multi map[string][]string, ranges map[string]Range) (Set, error) {
	s := Set{}
	for field, value := range single {
		if field == "" {
			return Set{}, fmt.Errorf("filter field name is required")
		}
		if value == "" {
			return Set{}, fmt.Errorf("filter value is required for %q", field)
		}
		if s.single == nil {
			s.single = make(map[string]string, len(single))
		}
		s.single[field] = value
	}
	for field, values := range multi {
		if field == "" {
			return Set{}, fmt.Errorf("filter field name is required")
		}
		deduped := dedupe(values)
		if len(deduped) == 0 {
			continue
		}
		if len(deduped) > MaxValuesPerFilter {
			return Set{}, fmt.Errorf("too many values for %q (max %d)", field, MaxValuesPerFilter)
		}
		if s.multi == nil {
			s.multi = make(map[string][]string, len(multi))
		}
		s.multi[field] = deduped
	}
	for field, r := range ranges {
		if field == "" {
			return Set{}, fmt.Errorf("filter field name is required")
		}
		if r.min == nil && r.max == nil {
			return Set{}, fmt.Errorf("empty range for %q", field)
		}
		if s.ranges == nil {
			s.ranges = make(map[string]Range, len(ranges))
		}
		s.ranges[field] = r
	}
	return s, nil
}

// Single returns the exact-match value for a field.
func (s Set) Single(field string) (string, bool) {
	v, ok := s.single[field]
	return v, ok
}

// Values returns the ordered facet values for a field, or nil.
func (s Set) Values(field string) []string {
	values, ok := s.multi[field]
	if !ok {
		return nil
	}
	out := make([]string, len(values))
	copy(out, values)
	return out
}

// Range returns the numeric range for a field.
func (s Set) Range(field string) (Range, bool) {
	r, ok := s.ranges[field]
	return r, ok
}

// IsZero reports whether the set constrains nothing.
func (s Set) IsZero() bool {
	return len(s.single) == 0 && len(s.multi) == 0 && len(s.ranges) == 0
}

// Fields returns every constrained field name, sorted, for diagnostics.
func (s Set) Fields() []string {
	out := make([]string, 0, len(s.single)+len(s.multi)+len(s.ranges))
	for f := range s.single {
		out = append(out, f)
	}
	for f := range s.multi {
		out = append(out, f)
	}
	for f := range s.ranges {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// dedupe drops empty strings and duplicates, preserving first occurrence.
func dedupe(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

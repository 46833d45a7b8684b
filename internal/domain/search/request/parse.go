package request

import (
	"fmt"
	"math"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/kailas-cloud/jobdex/internal/domain"
	"github.com/kailas-cloud/jobdex/internal/domain/search/filter"
	"github.com/kailas-cloud/jobdex/internal/domain/search/schema"
)

// Reserved parameter names that are not filters.
const (
	paramQuery    = "q"
	paramPage     = "page"
	paramPageSize = "pageSize"
	paramSort     = "sort"
)

// Options tunes parsing per deployment. Zero values fall back to the
// package defaults.
type Options struct {
	DefaultPageSize int
	MaxPageSize     int
}

func (o Options) withDefaults() Options {
	if o.DefaultPageSize <= 0 {
		o.DefaultPageSize = DefaultPageSize
	}
	if o.MaxPageSize <= 0 {
		o.MaxPageSize = MaxPageSize
	}
	return o
}

// Parse turns raw request parameters into a validated Request.
//
// Every parameter is optional; an empty set of values is a valid match-all
// request. Numeric parameters must parse as non-negative numbers. Repeated
// facet parameters normalize to ordered sets (duplicates dropped, first
// occurrence wins). pageSize above the configured maximum is clamped, below
// 1 rejected. Unknown parameter names are rejected outright so facet typos
// never degrade into silent match-all filters.
//
// All failures wrap domain.ErrInvalidRequest; unknown names additionally
// wrap domain.ErrUnknownFilter.
func Parse(values url.Values, opts Options) (Request, error) {
	opts = opts.withDefaults()
	jobs := schema.Jobs()

	var (
		query    string
		page     = 1
		pageSize = opts.DefaultPageSize
		sortKeys []SortKey
		single   map[string]string
		multi    map[string][]string
		bounds   map[string]*boundPair
	)

	// Deterministic processing (and error reporting) regardless of map order.
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		raw := values[name]
		switch name {
		case paramQuery:
			query = strings.TrimSpace(values.Get(name))

		case paramPage:
			n, err := parsePositiveInt(name, values.Get(name))
			if err != nil {
				return Request{}, err
			}
			page = n

		case paramPageSize:
			n, err := parsePositiveInt(name, values.Get(name))
			if err != nil {
				return Request{}, err
			}
			if n > opts.MaxPageSize {
				n = opts.MaxPageSize
			}
			pageSize = n

		case paramSort:
			keys, err := parseSortKeys(jobs, raw)
			if err != nil {
				return Request{}, err
			}
			sortKeys = keys

		default:
			if f, ok := jobs.Filter(name); ok {
				if f.Multi() {
					if multi == nil {
						multi = make(map[string][]string)
					}
					multi[name] = raw
					continue
				}
				if len(raw) > 1 {
					return Request{}, invalid("parameter %q accepts a single value", name)
				}
				if v := values.Get(name); v != "" {
					if single == nil {
						single = make(map[string]string)
					}
					single[name] = v
				}
				continue
			}
			if rng, side, ok := jobs.RangeBound(name); ok {
				v, err := parseBound(name, values.Get(name))
				if err != nil {
					return Request{}, err
				}
				if bounds == nil {
					bounds = make(map[string]*boundPair)
				}
				pair := bounds[rng.Name()]
				if pair == nil {
					pair = &boundPair{}
					bounds[rng.Name()] = pair
				}
				if side == schema.Min {
					pair.min = v
				} else {
					pair.max = v
				}
				continue
			}
			return Request{}, fmt.Errorf("%w: %w", domain.ErrInvalidRequest, domain.NewUnknownFilter(name))
		}
	}

	ranges, err := buildRanges(bounds)
	if err != nil {
		return Request{}, err
	}
	set, err := filter.NewSet(single, multi, ranges)
	if err != nil {
		return Request{}, invalid("%v", err)
	}
	req, err := New(query, set, page, pageSize, sortKeys)
	if err != nil {
		return Request{}, invalid("%v", err)
	}
	return req, nil
}

type boundPair struct {
	min *float64
	max *float64
}

func buildRanges(bounds map[string]*boundPair) (map[string]filter.Range, error) {
	if len(bounds) == 0 {
		return nil, nil
	}
	out := make(map[string]filter.Range, len(bounds))
	for name, pair := range bounds {
		r, err := filter.NewRange(pair.min, pair.max)
		if err != nil {
			return nil, invalid("%q: %v", name, err)
		}
		out[name] = r
	}
	return out, nil
}

func parseSortKeys(jobs schema.Schema, raw []string) ([]SortKey, error) {
	keys := make([]SortKey, 0, len(raw))
	for _, spec := range raw {
		spec = strings.TrimSpace(spec)
		if spec == "" {
			continue
		}
		field, dir, hasDir := strings.Cut(spec, ":")
		if _, ok := jobs.SortField(field); !ok {
			return nil, fmt.Errorf("%w: %w", domain.ErrInvalidRequest, domain.NewUnknownFilter(field))
		}
		desc := false
		if hasDir {
			switch dir {
			case "asc":
			case "desc":
				desc = true
			default:
				return nil, invalid("sort direction must be asc or desc, got %q", dir)
			}
		}
		key, err := NewSortKey(field, desc)
		if err != nil {
			return nil, invalid("%v", err)
		}
		keys = append(keys, key)
	}
	return keys, nil
}

func parsePositiveInt(name, raw string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, invalid("%s must be an integer, got %q", name, raw)
	}
	if n < 1 {
		return 0, invalid("%s must be >= 1, got %d", name, n)
	}
	return n, nil
}

func parseBound(name, raw string) (*float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return nil, invalid("%s must be a number, got %q", name, raw)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, invalid("%s must be a finite number, got %q", name, raw)
	}
	if v < 0 {
		return nil, invalid("%s must be non-negative, got %v", name, v)
	}
	return &v, nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", domain.ErrInvalidRequest, fmt.Sprintf(format, args...))
}

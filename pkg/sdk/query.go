package jobdex

import (
	"net/url"
	"strconv"
)

// SortDirection orders a sort key.
type SortDirection string

// Sort direction constants.
const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// Query collects the parameters of one jobs search. The zero value is a
// match-all request with server-side default paging. Builder methods return
// the modified query, so calls chain:
//
//	q := jobdex.NewQuery("engineer").Filter("grade", "Grade 7").Page(2)
type Query struct {
	text     string
	filters  []filterParam
	page     int
	pageSize int
	sort     []string
}

type filterParam struct {
	name  string
	value string
}

// NewQuery starts a query with the given free-text search terms. Empty text
// matches everything.
func NewQuery(text string) Query {
	return Query{text: text}
}

// Filter adds one facet value, e.g. Filter("organisation", "Home Office").
// Repeat the call to send several values of a multi-valued facet.
func (q Query) Filter(name, value string) Query {
	q.filters = append(q.filters, filterParam{name: name, value: value})
	return q
}

// Filters adds several values of one multi-valued facet in a single call.
func (q Query) Filters(name string, values ...string) Query {
	for _, v := range values {
		q.filters = append(q.filters, filterParam{name: name, value: v})
	}
	return q
}

// SalaryMin keeps only postings whose advertised minimum reaches amount.
func (q Query) SalaryMin(amount float64) Query {
	return q.Filter("salaryMin", strconv.FormatFloat(amount, 'f', -1, 64))
}

// SalaryMax keeps only postings whose advertised minimum stays under amount.
func (q Query) SalaryMax(amount float64) Query {
	return q.Filter("salaryMax", strconv.FormatFloat(amount, 'f', -1, 64))
}

// Page selects a 1-based result page.
func (q Query) Page(n int) Query {
	q.page = n
	return q
}

// PageSize sets the number of results per page. The server clamps values
// above its configured maximum.
func (q Query) PageSize(n int) Query {
	q.pageSize = n
	return q
}

// SortBy appends a sort key, e.g. SortBy("closingDate", jobdex.SortAsc).
// Keys apply in the order added; relevance order is the default when none
// are set.
func (q Query) SortBy(field string, dir SortDirection) Query {
	q.sort = append(q.sort, field+":"+string(dir))
	return q
}

// encode renders the query as URL parameters. Unset numbers are omitted so
// the server applies its own defaults.
func (q Query) encode() url.Values {
	values := url.Values{}
	if q.text != "" {
		values.Set("q", q.text)
	}
	for _, f := range q.filters {
		values.Add(f.name, f.value)
	}
	if q.page > 0 {
		values.Set("page", strconv.Itoa(q.page))
	}
	if q.pageSize > 0 {
		values.Set("pageSize", strconv.Itoa(q.pageSize))
	}
	for _, s := range q.sort {
		values.Add("sort", s)
	}
	return values
}

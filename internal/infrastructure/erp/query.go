package erp

import (
	"net/url"
	"strconv"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// ListQuery carries the pagination, search and filter state of a list
// screen. Filters are forwarded verbatim; the backend combines them
// with AND semantics.
type ListQuery struct {
	Page    int
	Size    int
	Search  string
	Filters map[string]string
}

// Normalize clamps the page to at least 1 and the size to [1,100] so
// the backend never sees an out-of-range request.
func (q ListQuery) Normalize() ListQuery {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Size < 1 {
		q.Size = defaultPageSize
	}
	if q.Size > maxPageSize {
		q.Size = maxPageSize
	}
	return q
}

// Values encodes the normalized query as URL parameters.
func (q ListQuery) Values() url.Values {
	q = q.Normalize()
	values := url.Values{}
	values.Set("page", strconv.Itoa(q.Page))
	values.Set("size", strconv.Itoa(q.Size))
	if q.Search != "" {
		values.Set("search", q.Search)
	}
	for k, v := range q.Filters {
		if v != "" {
			values.Set(k, v)
		}
	}
	return values
}

// WithFilter returns a copy of the query with one more filter set.
func (q ListQuery) WithFilter(key, value string) ListQuery {
	filters := make(map[string]string, len(q.Filters)+1)
	for k, v := range q.Filters {
		filters[k] = v
	}
	filters[key] = value
	q.Filters = filters
	return q
}

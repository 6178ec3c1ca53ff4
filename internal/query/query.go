// Package query implements the filter -> sort -> paginate pipeline shared by
// every list endpoint. The pipeline is generic over the record type; each
// service describes its collection with a Schema.
package query

import (
	"net/url"
	"sort"
	"strconv"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// Params is the ephemeral request value driving one list query.
type Params struct {
	Filters   map[string]string
	SortBy    string
	SortOrder string // "asc" or "desc"; anything else means desc
	Page      int
	Limit     int
}

// ParseParams extracts Params from URL query values. Only the named filter
// keys are honoured; page and limit fall back to defaults when absent or
// non-numeric.
func ParseParams(values url.Values, filterKeys ...string) Params {
	p := Params{
		Filters:   make(map[string]string, len(filterKeys)),
		SortBy:    values.Get("sortBy"),
		SortOrder: values.Get("sortOrder"),
		Page:      atoiOr(values.Get("page"), DefaultPage),
		Limit:     atoiOr(values.Get("limit"), DefaultLimit),
	}
	for _, k := range filterKeys {
		if v := values.Get(k); v != "" {
			p.Filters[k] = v
		}
	}
	return p
}

func atoiOr(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return n
}

// Matcher reports whether a record matches a filter value.
type Matcher[T any] func(item T, value string) bool

// Less orders two records ascending; Run inverts it for descending output.
type Less[T any] func(a, b T) bool

// Schema describes how a record type is filtered and sorted.
type Schema[T any] struct {
	Filters     map[string]Matcher[T]
	Sort        map[string]Less[T]
	DefaultSort string
}

// Meta is the pagination block attached to every list response.
type Meta struct {
	Page        int   `json:"page"`
	Limit       int   `json:"limit"`
	Total       int64 `json:"total"`
	TotalPages  int   `json:"totalPages"`
	HasNextPage bool  `json:"hasNextPage"`
	HasPrevPage bool  `json:"hasPrevPage"`
}

// Result is one page of records plus its pagination metadata.
type Result[T any] struct {
	Items      []T
	Pagination Meta
}

// Run applies the pipeline: filter by every recognised filter key, stable
// single-key sort, then paginate. Degenerate page/limit values are clamped
// to the defaults rather than producing empty or negative windows.
func Run[T any](items []T, p Params, s Schema[T]) Result[T] {
	matched := items
	if len(p.Filters) > 0 {
		matched = make([]T, 0, len(items))
		for _, it := range items {
			if matchesAll(it, p.Filters, s.Filters) {
				matched = append(matched, it)
			}
		}
	}

	sortBy := p.SortBy
	less, ok := s.Sort[sortBy]
	if !ok {
		less = s.Sort[s.DefaultSort]
	}
	if less != nil {
		asc := p.SortOrder == "asc"
		sort.SliceStable(matched, func(i, j int) bool {
			if asc {
				return less(matched[i], matched[j])
			}
			return less(matched[j], matched[i])
		})
	}

	page := p.Page
	if page < 1 {
		page = DefaultPage
	}
	limit := p.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}

	total := len(matched)
	totalPages := (total + limit - 1) / limit

	skip := (page - 1) * limit
	end := skip + limit
	if skip > total {
		skip = total
	}
	if end > total {
		end = total
	}

	window := make([]T, end-skip)
	copy(window, matched[skip:end])

	return Result[T]{
		Items: window,
		Pagination: Meta{
			Page:        page,
			Limit:       limit,
			Total:       int64(total),
			TotalPages:  totalPages,
			HasNextPage: page < totalPages,
			HasPrevPage: page > 1,
		},
	}
}

func matchesAll[T any](item T, filters map[string]string, matchers map[string]Matcher[T]) bool {
	for key, value := range filters {
		m, ok := matchers[key]
		if !ok {
			continue // unrecognised filter keys are ignored
		}
		if !m(item, value) {
			return false
		}
	}
	return true
}

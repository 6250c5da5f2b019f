// Package condition models request-scoped search and filter conditions.
package condition

import (
	"fmt"
	"maps"

	"github.com/kailas-cloud/notedex/internal/domain/search/page"
)

// MaxQueryLength bounds free-text search queries.
const MaxQueryLength = 300

// Search is a validated free-text search condition scoped to one owner.
// The query may contain a trailing * wildcard; an empty highlight tag
// disables match marking.
type Search struct {
	owner        string
	query        string
	pageable     page.Pageable
	highlightTag string
}

// NewSearch validates and creates a Search condition.
func NewSearch(owner, query string, pageable page.Pageable, highlightTag string) (Search, error) {
	if owner == "" {
		return Search{}, fmt.Errorf("owner is required")
	}
	if query == "" {
		return Search{}, fmt.Errorf("query is required")
	}
	if len(query) > MaxQueryLength {
		return Search{}, fmt.Errorf("query too long (max %d chars)", MaxQueryLength)
	}
	return Search{owner: owner, query: query, pageable: pageable, highlightTag: highlightTag}, nil
}

// Owner returns the owning user id.
func (s Search) Owner() string { return s.owner }

// Query returns the free-text query.
func (s Search) Query() string { return s.query }

// Pageable returns the page/sort request.
func (s Search) Pageable() page.Pageable { return s.pageable }

// HighlightTag returns the tag name used to mark matched spans.
func (s Search) HighlightTag() string { return s.highlightTag }

// DateRange is an inclusive epoch-second range; either bound may be absent.
// Bound ordering is the caller's responsibility, validated upstream.
type DateRange struct {
	start *int64
	end   *int64
}

// NewDateRange creates a DateRange from optional bounds.
func NewDateRange(start, end *int64) DateRange {
	return DateRange{start: start, end: end}
}

// Start returns the inclusive lower bound, nil when open.
func (r DateRange) Start() *int64 { return r.start }

// End returns the inclusive upper bound, nil when open.
func (r DateRange) End() *int64 { return r.end }

// IsOpen reports whether no bound is set.
func (r DateRange) IsOpen() bool { return r.start == nil && r.end == nil }

// Filter narrows notes by exact-match field options and date ranges.
// Option values within one field are alternatives; fields combine conjunctively.
type Filter struct {
	owner        string
	fieldOptions map[string][]string
	pageable     page.Pageable
	highlightTag string
	created      DateRange
	modified     DateRange
}

// NewFilter validates and creates a Filter condition.
func NewFilter(
	owner string,
	fieldOptions map[string][]string,
	pageable page.Pageable,
	highlightTag string,
	created, modified DateRange,
) (Filter, error) {
	if owner == "" {
		return Filter{}, fmt.Errorf("owner is required")
	}
	for name, values := range fieldOptions {
		if name == "" {
			return Filter{}, fmt.Errorf("field option name is required")
		}
		if len(values) == 0 {
			return Filter{}, fmt.Errorf("field option %q has no values", name)
		}
	}
	return Filter{
		owner:        owner,
		fieldOptions: maps.Clone(fieldOptions),
		pageable:     pageable,
		highlightTag: highlightTag,
		created:      created,
		modified:     modified,
	}, nil
}

// Owner returns the owning user id.
func (f Filter) Owner() string { return f.owner }

// FieldOptions returns the per-field allowed value sets.
func (f Filter) FieldOptions() map[string][]string { return maps.Clone(f.fieldOptions) }

// Pageable returns the page/sort request.
func (f Filter) Pageable() page.Pageable { return f.pageable }

// HighlightTag returns the tag name used to mark matched spans.
func (f Filter) HighlightTag() string { return f.highlightTag }

// Created returns the createdDate range.
func (f Filter) Created() DateRange { return f.created }

// Modified returns the modifiedDate range.
func (f Filter) Modified() DateRange { return f.modified }

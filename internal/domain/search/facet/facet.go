// Package facet models facet queries and their ranked value/count results.
package facet

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
)

// Query length bounds.
const (
	MaxNameQueryLength  = 50
	MaxFieldNameLength  = 50
	MaxValueQueryLength = 100
)

// Wildcard matches every facet value.
const Wildcard = "*"

// Field-name facet queries allow letters, digits, korean and the wildcard;
// no whitespace, hyphen or underscore.
var nameQueryShape = regexp.MustCompile(`^[a-zA-Z0-9가-힣*]+$`)

// Field names allow space, hyphen and underscore in addition.
var fieldNameShape = regexp.MustCompile(`^[a-zA-Z0-9가-힣 _-]+$`)

// Value queries allow hyphen and underscore but no space.
var valueQueryShape = regexp.MustCompile(`^[a-zA-Z0-9가-힣_-]+$`)

// NameQuery is a validated prefix query over field names of one owner.
type NameQuery struct {
	owner string
	query string
}

// NewNameQuery validates and creates a NameQuery.
func NewNameQuery(owner, query string) (NameQuery, error) {
	if owner == "" {
		return NameQuery{}, fmt.Errorf("owner is required")
	}
	if query == "" {
		return NameQuery{}, fmt.Errorf("query is required")
	}
	if len(query) > MaxNameQueryLength {
		return NameQuery{}, fmt.Errorf("query too long (max %d chars)", MaxNameQueryLength)
	}
	if !nameQueryShape.MatchString(query) {
		return NameQuery{}, fmt.Errorf("query %q contains unsupported characters", query)
	}
	return NameQuery{owner: owner, query: query}, nil
}

// Owner returns the owning user id.
func (q NameQuery) Owner() string { return q.owner }

// Query returns the raw query text.
func (q NameQuery) Query() string { return q.query }

// Matches reports whether a field name satisfies the query prefix.
func (q NameQuery) Matches(name string) bool {
	return matchesPrefix(q.query, name)
}

// ValueQuery is a validated prefix query over the values of one named field.
type ValueQuery struct {
	owner     string
	fieldName string
	query     string
}

// NewValueQuery validates and creates a ValueQuery.
func NewValueQuery(owner, fieldName, query string) (ValueQuery, error) {
	if owner == "" {
		return ValueQuery{}, fmt.Errorf("owner is required")
	}
	if fieldName == "" {
		return ValueQuery{}, fmt.Errorf("field name is required")
	}
	if len(fieldName) > MaxFieldNameLength {
		return ValueQuery{}, fmt.Errorf("field name too long (max %d chars)", MaxFieldNameLength)
	}
	if !fieldNameShape.MatchString(fieldName) {
		return ValueQuery{}, fmt.Errorf("field name %q contains unsupported characters", fieldName)
	}
	if query == "" {
		return ValueQuery{}, fmt.Errorf("query is required")
	}
	if len(query) > MaxValueQueryLength {
		return ValueQuery{}, fmt.Errorf("query too long (max %d chars)", MaxValueQueryLength)
	}
	if query != Wildcard && !valueQueryShape.MatchString(query) {
		return ValueQuery{}, fmt.Errorf("query %q contains unsupported characters", query)
	}
	return ValueQuery{owner: owner, fieldName: fieldName, query: query}, nil
}

// Owner returns the owning user id.
func (q ValueQuery) Owner() string { return q.owner }

// FieldName returns the faceted field name.
func (q ValueQuery) FieldName() string { return q.fieldName }

// Query returns the raw query text.
func (q ValueQuery) Query() string { return q.query }

// Matches reports whether a field value satisfies the query prefix.
func (q ValueQuery) Matches(value string) bool {
	return matchesPrefix(q.query, value)
}

// matchesPrefix treats the query as a prefix; a trailing or lone * matches
// everything after the literal part.
func matchesPrefix(query, candidate string) bool {
	literal := strings.TrimSuffix(query, Wildcard)
	return strings.HasPrefix(candidate, literal)
}

// Facet is a distinct value with its occurrence count.
type Facet struct {
	Value string
	Count int
}

// Sort orders facets by count descending, then value ascending.
func Sort(facets []Facet) {
	slices.SortStableFunc(facets, func(a, b Facet) int {
		if a.Count != b.Count {
			return b.Count - a.Count
		}
		return strings.Compare(a.Value, b.Value)
	})
}

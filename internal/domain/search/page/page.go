// Package page models slice-based pagination and sorting.
package page

import (
	"fmt"
	"slices"
)

// Page size bounds.
const (
	DefaultSize = 20
	MaxSize     = 100
)

// Direction orders a sort ascending or descending.
type Direction string

// Sort directions.
const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// SortKeys usable on note index queries. The transport layer whitelists
// per-endpoint; the core only knows the index-level keys.
var SortKeys = []string{"created_at", "modified_at", "title"}

// Pageable is a validated page/sort request.
type Pageable struct {
	number    int
	size      int
	sortKey   string
	direction Direction
}

// New validates and creates a Pageable. Size is clamped to MaxSize and
// defaulted when non-positive; an empty sort key means created_at desc.
func New(number, size int, sortKey string, direction Direction) (Pageable, error) {
	if number < 0 {
		return Pageable{}, fmt.Errorf("page number must not be negative")
	}
	if size <= 0 {
		size = DefaultSize
	}
	if size > MaxSize {
		size = MaxSize
	}
	if sortKey == "" {
		sortKey = "created_at"
		if direction == "" {
			direction = Desc
		}
	}
	if !slices.Contains(SortKeys, sortKey) {
		return Pageable{}, fmt.Errorf("unsupported sort key %q", sortKey)
	}
	if direction == "" {
		direction = Asc
	}
	if direction != Asc && direction != Desc {
		return Pageable{}, fmt.Errorf("invalid sort direction %q", direction)
	}
	return Pageable{number: number, size: size, sortKey: sortKey, direction: direction}, nil
}

// Number returns the zero-based page number.
func (p Pageable) Number() int { return p.number }

// Size returns the page size.
func (p Pageable) Size() int { return p.size }

// SortKey returns the index sort key.
func (p Pageable) SortKey() string { return p.sortKey }

// Direction returns the sort direction.
func (p Pageable) Direction() Direction { return p.direction }

// Offset returns the record offset of the page start.
func (p Pageable) Offset() int { return p.number * p.size }

// Slice is a page of items plus a has-more flag, without a total count.
type Slice[T any] struct {
	Items   []T
	HasNext bool
}

// NewSlice trims fetched items (size+1 probe) down to the page size and
// derives the has-next flag.
func NewSlice[T any](fetched []T, size int) Slice[T] {
	if len(fetched) > size {
		return Slice[T]{Items: fetched[:size:size], HasNext: true}
	}
	return Slice[T]{Items: fetched}
}

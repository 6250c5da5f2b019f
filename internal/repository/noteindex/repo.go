// Package noteindex persists and queries the search projection of notes.
package noteindex

import (
	"context"
	"errors"
	"fmt"

	"github.com/kailas-cloud/notedex/internal/db"
	domidx "github.com/kailas-cloud/notedex/internal/domain/noteindex"
	"github.com/kailas-cloud/notedex/internal/domain/search/condition"
	"github.com/kailas-cloud/notedex/internal/domain/search/facet"
	"github.com/kailas-cloud/notedex/internal/domain/search/page"
)

// defaultFacetScanSize pages through an owner's records during facet
// aggregation.
const defaultFacetScanSize = 500

// store is the consumer interface for the note index (ISP).
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	Del(ctx context.Context, key string) error
	Search(ctx context.Context, q *db.SearchQuery) (*db.SearchResult, error)
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
	IndexExists(ctx context.Context, name string) (bool, error)
}

// Repo implements usecase/noteindex.Repository.
type Repo struct {
	store    store
	scanSize int
}

// New creates a note index repository.
func New(s store) *Repo {
	return &Repo{store: s, scanSize: defaultFacetScanSize}
}

// WithScanSize overrides the facet aggregation page size.
func (r *Repo) WithScanSize(n int) *Repo {
	if n > 0 {
		r.scanSize = n
	}
	return r
}

// EnsureIndex creates the search index if it does not exist yet.
func (r *Repo) EnsureIndex(ctx context.Context) error {
	exists, err := r.store.IndexExists(ctx, IndexName())
	if err != nil {
		return fmt.Errorf("check index: %w", err)
	}
	if exists {
		return nil
	}
	if err := r.store.CreateIndex(ctx, buildIndex()); err != nil && !errors.Is(err, db.ErrIndexExists) {
		return fmt.Errorf("create index: %w", err)
	}
	return nil
}

// Save replaces the index record wholesale. A projection never merges into
// an existing record: stale hash fields must not survive.
func (r *Repo) Save(ctx context.Context, idx domidx.NoteIndex) error {
	key := indexKey(idx.ID())

	fields, err := buildHashFields(idx)
	if err != nil {
		return fmt.Errorf("encode index %s: %w", idx.ID(), err)
	}

	if err := r.store.Del(ctx, key); err != nil {
		return fmt.Errorf("del %s: %w", key, err)
	}
	if err := r.store.HSet(ctx, key, fields); err != nil {
		return fmt.Errorf("hset %s: %w", key, err)
	}
	return nil
}

// DeleteByNoteID removes the index record of a note. Deleting an absent
// record is not an error.
func (r *Repo) DeleteByNoteID(ctx context.Context, id string) error {
	if err := r.store.Del(ctx, indexKey(id)); err != nil {
		return fmt.Errorf("del %s: %w", indexKey(id), err)
	}
	return nil
}

// Search runs a free-text search and returns one page plus a has-next probe.
func (r *Repo) Search(ctx context.Context, cond condition.Search) (page.Slice[domidx.NoteIndex], error) {
	p := cond.Pageable()
	q := &db.SearchQuery{
		IndexName: IndexName(),
		Query:     buildSearchQuery(cond),
		Highlight: highlight(cond.HighlightTag()),
		SortBy:    sortBy(p),
		Offset:    p.Offset(),
		Limit:     p.Size() + 1,
	}

	sr, err := r.store.Search(ctx, q)
	if err != nil {
		return page.Slice[domidx.NoteIndex]{}, fmt.Errorf("search notes: %w", err)
	}
	return r.toSlice(sr, p, cond.HighlightTag() != "")
}

// Filter runs an exact-match filter query and returns one page plus a
// has-next probe.
func (r *Repo) Filter(ctx context.Context, cond condition.Filter) (page.Slice[domidx.NoteIndex], error) {
	p := cond.Pageable()
	q := &db.SearchQuery{
		IndexName: IndexName(),
		Query:     buildFilterQuery(cond),
		SortBy:    sortBy(p),
		Offset:    p.Offset(),
		Limit:     p.Size() + 1,
	}

	sr, err := r.store.Search(ctx, q)
	if err != nil {
		return page.Slice[domidx.NoteIndex]{}, fmt.Errorf("filter notes: %w", err)
	}
	return r.toSlice(sr, p, false)
}

// FieldNameFacets counts notes per field name matching the query prefix,
// ordered by count descending then name ascending.
func (r *Repo) FieldNameFacets(ctx context.Context, q facet.NameQuery) ([]facet.Facet, error) {
	counts := make(map[string]int)
	err := r.scanFilters(ctx, q.Owner(), func(filters map[string][]string) {
		for name := range filters {
			if q.Matches(name) {
				counts[name]++
			}
		}
	})
	if err != nil {
		return nil, err
	}
	return toFacets(counts), nil
}

// FieldValueFacets counts occurrences of each matching value of one named
// field, ordered by count descending then value ascending.
func (r *Repo) FieldValueFacets(ctx context.Context, q facet.ValueQuery) ([]facet.Facet, error) {
	counts := make(map[string]int)
	err := r.scanFilters(ctx, q.Owner(), func(filters map[string][]string) {
		for _, v := range filters[q.FieldName()] {
			if q.Matches(v) {
				counts[v]++
			}
		}
	})
	if err != nil {
		return nil, err
	}
	return toFacets(counts), nil
}

// scanFilters pages through every index record of an owner, feeding the
// decoded filters map of each to fn.
func (r *Repo) scanFilters(ctx context.Context, owner string, fn func(map[string][]string)) error {
	offset := 0
	for {
		sr, err := r.store.Search(ctx, &db.SearchQuery{
			IndexName:    IndexName(),
			Query:        ownerClause(owner),
			ReturnFields: []string{"filters"},
			Offset:       offset,
			Limit:        r.scanSize,
		})
		if err != nil {
			return fmt.Errorf("scan filters: %w", err)
		}
		if len(sr.Entries) == 0 {
			return nil
		}

		for _, entry := range sr.Entries {
			idx, err := parseHashFields(entry.Fields)
			if err != nil {
				return fmt.Errorf("decode index %s: %w", entry.Key, err)
			}
			fn(idx.Filters())
		}

		offset += len(sr.Entries)
		if offset >= sr.Total {
			return nil
		}
	}
}

func (r *Repo) toSlice(sr *db.SearchResult, p page.Pageable, highlighted bool) (page.Slice[domidx.NoteIndex], error) {
	items := make([]domidx.NoteIndex, 0, len(sr.Entries))
	for _, entry := range sr.Entries {
		idx, err := parseHashFields(entry.Fields)
		if err != nil {
			return page.Slice[domidx.NoteIndex]{}, fmt.Errorf("decode index %s: %w", entry.Key, err)
		}
		if highlighted {
			idx = idx.WithHighlight(entry.Fields[fieldContent])
		}
		items = append(items, idx)
	}
	return page.NewSlice(items, p.Size()), nil
}

func toFacets(counts map[string]int) []facet.Facet {
	facets := make([]facet.Facet, 0, len(counts))
	for v, c := range counts {
		facets = append(facets, facet.Facet{Value: v, Count: c})
	}
	facet.Sort(facets)
	return facets
}

func highlight(tag string) *db.Highlight {
	if tag == "" {
		return nil
	}
	return &db.Highlight{
		Fields:   []string{fieldContent},
		OpenTag:  "<" + tag + ">",
		CloseTag: "</" + tag + ">",
	}
}

func sortBy(p page.Pageable) *db.SortBy {
	return &db.SortBy{
		Field: p.SortKey(),
		Desc:  p.Direction() == page.Desc,
	}
}

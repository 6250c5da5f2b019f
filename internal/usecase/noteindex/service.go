// Package noteindex keeps the search projection in step with note writes
// and answers search, filter and facet queries.
package noteindex

import (
	"context"
	"fmt"
	"time"

	"github.com/kailas-cloud/notedex/internal/clock"
	"github.com/kailas-cloud/notedex/internal/domain/note"
	"github.com/kailas-cloud/notedex/internal/domain/note/fieldtype"
	domidx "github.com/kailas-cloud/notedex/internal/domain/noteindex"
	"github.com/kailas-cloud/notedex/internal/domain/search/condition"
	"github.com/kailas-cloud/notedex/internal/domain/search/facet"
	"github.com/kailas-cloud/notedex/internal/domain/search/page"
	"github.com/kailas-cloud/notedex/internal/metrics"
)

// Service projects notes into the search index and runs queries against it.
type Service struct {
	repo Repository
	reg  *fieldtype.Registry
	clk  clock.Clock
}

// New creates a note index service.
func New(repo Repository, reg *fieldtype.Registry, clk clock.Clock) *Service {
	return &Service{repo: repo, reg: reg, clk: clk}
}

// CreateFromNote rebuilds the index record of a note wholesale. Projecting
// the same note twice yields the same record apart from its sync stamp.
func (s *Service) CreateFromNote(ctx context.Context, n note.Note) error {
	start := time.Now()
	idx := domidx.FromNote(n, s.reg, s.clk)

	if err := s.repo.Save(ctx, idx); err != nil {
		metrics.IndexProjectionsTotal.WithLabelValues("save", "error").Inc()
		return fmt.Errorf("save index: %w", err)
	}

	metrics.IndexProjectionsTotal.WithLabelValues("save", "ok").Inc()
	metrics.IndexProjectionDuration.WithLabelValues("save").Observe(time.Since(start).Seconds())
	return nil
}

// DeleteByNoteID removes the index record of a note.
func (s *Service) DeleteByNoteID(ctx context.Context, id string) error {
	if err := s.repo.DeleteByNoteID(ctx, id); err != nil {
		metrics.IndexProjectionsTotal.WithLabelValues("delete", "error").Inc()
		return fmt.Errorf("delete index: %w", err)
	}
	metrics.IndexProjectionsTotal.WithLabelValues("delete", "ok").Inc()
	return nil
}

// SearchByCondition runs a free-text search.
func (s *Service) SearchByCondition(
	ctx context.Context, cond condition.Search,
) (page.Slice[domidx.NoteIndex], error) {
	slice, err := s.repo.Search(ctx, cond)
	if err != nil {
		metrics.SearchQueriesTotal.WithLabelValues("search", "error").Inc()
		return page.Slice[domidx.NoteIndex]{}, fmt.Errorf("search: %w", err)
	}
	metrics.SearchQueriesTotal.WithLabelValues("search", "ok").Inc()
	return slice, nil
}

// FilterByCondition runs an exact-match filter query.
func (s *Service) FilterByCondition(
	ctx context.Context, cond condition.Filter,
) (page.Slice[domidx.NoteIndex], error) {
	slice, err := s.repo.Filter(ctx, cond)
	if err != nil {
		metrics.SearchQueriesTotal.WithLabelValues("filter", "error").Inc()
		return page.Slice[domidx.NoteIndex]{}, fmt.Errorf("filter: %w", err)
	}
	metrics.SearchQueriesTotal.WithLabelValues("filter", "ok").Inc()
	return slice, nil
}

// CountFieldNames aggregates field-name facets for an owner.
func (s *Service) CountFieldNames(ctx context.Context, q facet.NameQuery) ([]facet.Facet, error) {
	facets, err := s.repo.FieldNameFacets(ctx, q)
	if err != nil {
		metrics.SearchQueriesTotal.WithLabelValues("facet_names", "error").Inc()
		return nil, fmt.Errorf("field name facets: %w", err)
	}
	metrics.SearchQueriesTotal.WithLabelValues("facet_names", "ok").Inc()
	return facets, nil
}

// CountFieldValues aggregates value facets of one named field for an owner.
func (s *Service) CountFieldValues(ctx context.Context, q facet.ValueQuery) ([]facet.Facet, error) {
	facets, err := s.repo.FieldValueFacets(ctx, q)
	if err != nil {
		metrics.SearchQueriesTotal.WithLabelValues("facet_values", "error").Inc()
		return nil, fmt.Errorf("field value facets: %w", err)
	}
	metrics.SearchQueriesTotal.WithLabelValues("facet_values", "ok").Inc()
	return facets, nil
}

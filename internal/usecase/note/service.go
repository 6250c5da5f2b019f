// Package note implements note CRUD with synchronous index projection.
package note

import (
	"context"
	"fmt"
	"strconv"

	"github.com/google/uuid"

	"github.com/kailas-cloud/notedex/internal/clock"
	"github.com/kailas-cloud/notedex/internal/domain"
	domnote "github.com/kailas-cloud/notedex/internal/domain/note"
	"github.com/kailas-cloud/notedex/internal/domain/note/attribute"
	"github.com/kailas-cloud/notedex/internal/domain/note/fieldtype"
	"github.com/kailas-cloud/notedex/internal/domain/search/page"
)

// FieldInput is one requested field of a note.
type FieldInput struct {
	Name       string
	Type       string
	Attributes map[string][]string
	Values     []string
}

// DisplayFieldInput is one requested display field of a note.
type DisplayFieldInput struct {
	Name   string
	Values []string
	Icon   string
	Order  int
}

// NoteInput is the write payload for creating or updating a note.
type NoteInput struct {
	Title         string
	Fields        []FieldInput
	DisplayFields []DisplayFieldInput
}

// Service handles note CRUD. Every write validates all fields against the
// type registry and re-projects the search index before returning.
type Service struct {
	repo    Repository
	indexer Indexer
	reg     *fieldtype.Registry
	clk     clock.Clock
	newID   func() string
}

// New creates a note service.
func New(repo Repository, indexer Indexer, reg *fieldtype.Registry, clk clock.Clock) *Service {
	return &Service{
		repo:    repo,
		indexer: indexer,
		reg:     reg,
		clk:     clk,
		newID:   uuid.NewString,
	}
}

// WithIDGenerator replaces the external id generator (test seam).
func (s *Service) WithIDGenerator(gen func() string) *Service {
	if gen != nil {
		s.newID = gen
	}
	return s
}

// Create validates and persists a new note, then projects it into the
// search index.
func (s *Service) Create(ctx context.Context, owner string, in NoteInput) (domnote.Note, error) {
	fields, err := s.buildFields(in.Fields)
	if err != nil {
		return domnote.Note{}, err
	}
	displays, err := buildDisplayFields(in.DisplayFields)
	if err != nil {
		return domnote.Note{}, err
	}

	id, err := s.repo.NextID(ctx)
	if err != nil {
		return domnote.Note{}, fmt.Errorf("next note id: %w", err)
	}

	now := s.clk.Now().Unix()
	n, err := domnote.New(id, s.newID(), in.Title, owner, fields, displays, now, now)
	if err != nil {
		return domnote.Note{}, fmt.Errorf("%v: %w", err, domain.ErrValidationFailed)
	}

	if _, err := s.repo.Upsert(ctx, n); err != nil {
		return domnote.Note{}, fmt.Errorf("persist note: %w", err)
	}
	if err := s.indexer.CreateFromNote(ctx, n); err != nil {
		return domnote.Note{}, fmt.Errorf("project note %s: %w", n.ExternalID(), err)
	}
	return n, nil
}

// Update replaces a note wholesale and re-projects the index. The creation
// timestamp survives; everything else comes from the input.
func (s *Service) Update(ctx context.Context, owner, externalID string, in NoteInput) (domnote.Note, error) {
	existing, err := s.get(ctx, owner, externalID)
	if err != nil {
		return domnote.Note{}, err
	}

	fields, err := s.buildFields(in.Fields)
	if err != nil {
		return domnote.Note{}, err
	}
	displays, err := buildDisplayFields(in.DisplayFields)
	if err != nil {
		return domnote.Note{}, err
	}

	n, err := domnote.New(
		existing.ID(), externalID, in.Title, owner,
		fields, displays, existing.CreatedAt(), s.clk.Now().Unix(),
	)
	if err != nil {
		return domnote.Note{}, fmt.Errorf("%v: %w", err, domain.ErrValidationFailed)
	}

	if _, err := s.repo.Upsert(ctx, n); err != nil {
		return domnote.Note{}, fmt.Errorf("persist note: %w", err)
	}
	if err := s.indexer.CreateFromNote(ctx, n); err != nil {
		return domnote.Note{}, fmt.Errorf("project note %s: %w", externalID, err)
	}
	return n, nil
}

// Get returns a note owned by the caller.
func (s *Service) Get(ctx context.Context, owner, externalID string) (domnote.Note, error) {
	return s.get(ctx, owner, externalID)
}

// List returns one page of the caller's notes.
func (s *Service) List(ctx context.Context, owner string, p page.Pageable) (page.Slice[domnote.Note], error) {
	slice, err := s.repo.List(ctx, owner, p)
	if err != nil {
		return page.Slice[domnote.Note]{}, fmt.Errorf("list notes: %w", err)
	}
	return slice, nil
}

// Delete removes a note and its index record.
func (s *Service) Delete(ctx context.Context, owner, externalID string) error {
	existing, err := s.get(ctx, owner, externalID)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, externalID); err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	if err := s.indexer.DeleteByNoteID(ctx, strconv.FormatInt(existing.ID(), 10)); err != nil {
		return fmt.Errorf("delete index %s: %w", externalID, err)
	}
	return nil
}

func (s *Service) get(ctx context.Context, owner, externalID string) (domnote.Note, error) {
	n, err := s.repo.Get(ctx, externalID)
	if err != nil {
		return domnote.Note{}, fmt.Errorf("get note: %w", err)
	}
	if n.Owner() != owner {
		// Ownership mismatch reads as absence to the caller.
		return domnote.Note{}, domain.ErrForbidden
	}
	return n, nil
}

// buildFields validates every requested field against the registry. Unknown
// type keys are request errors, not registry panics.
func (s *Service) buildFields(inputs []FieldInput) ([]domnote.Field, error) {
	fields := make([]domnote.Field, 0, len(inputs))
	for _, in := range inputs {
		key := fieldtype.Type(in.Type)
		if _, ok := s.reg.Lookup(key); !ok {
			return nil, domain.NewValidationError(in.Name, []string{
				fmt.Sprintf("unknown field type %q", in.Type),
			})
		}

		attrs, err := buildAttributes(in.Attributes)
		if err != nil {
			return nil, domain.NewValidationError(in.Name, []string{err.Error()})
		}

		f, err := domnote.NewField(s.reg, in.Name, key, attrs, in.Values)
		if err != nil {
			return nil, err
		}
		fields = append(fields, f)
	}
	return fields, nil
}

func buildAttributes(m map[string][]string) (attribute.Set, error) {
	attrs := make([]attribute.Attribute, 0, len(m))
	for k, vs := range m {
		a, err := attribute.New(k, vs...)
		if err != nil {
			return nil, err
		}
		attrs = append(attrs, a)
	}
	return attribute.NewSet(attrs...)
}

func buildDisplayFields(inputs []DisplayFieldInput) ([]domnote.DisplayField, error) {
	displays := make([]domnote.DisplayField, 0, len(inputs))
	for _, in := range inputs {
		d, err := domnote.NewDisplayField(in.Name, in.Values, in.Icon, in.Order)
		if err != nil {
			return nil, domain.NewValidationError(in.Name, []string{err.Error()})
		}
		displays = append(displays, d)
	}
	return displays, nil
}

// Package note persists note aggregates as Redis hashes.
package note

import (
	"context"
	"errors"
	"fmt"

	"github.com/kailas-cloud/notedex/internal/db"
	"github.com/kailas-cloud/notedex/internal/domain"
	domnote "github.com/kailas-cloud/notedex/internal/domain/note"
	"github.com/kailas-cloud/notedex/internal/domain/search/page"
)

// store is the consumer interface for notes (ISP).
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	Del(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	Incr(ctx context.Context, key string) (int64, error)
	Search(ctx context.Context, q *db.SearchQuery) (*db.SearchResult, error)
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
	IndexExists(ctx context.Context, name string) (bool, error)
}

// Repo implements usecase/note.Repository.
type Repo struct {
	store store
}

// New creates a note repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// NextID allocates the next internal note id.
func (r *Repo) NextID(ctx context.Context) (int64, error) {
	id, err := r.store.Incr(ctx, seqKey())
	if err != nil {
		return 0, fmt.Errorf("allocate note id: %w", err)
	}
	return id, nil
}

// EnsureIndex creates the note listing index if it does not exist yet.
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

// Upsert creates or updates a note hash. Returns true if created.
func (r *Repo) Upsert(ctx context.Context, n domnote.Note) (bool, error) {
	key := noteKey(n.ExternalID())

	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return false, fmt.Errorf("check exists %s: %w", key, err)
	}

	fields, err := buildHashFields(n)
	if err != nil {
		return false, fmt.Errorf("encode note %s: %w", n.ExternalID(), err)
	}

	if exists {
		// Full replace: stale hash fields must not survive an update.
		if err := r.store.Del(ctx, key); err != nil {
			return false, fmt.Errorf("del %s: %w", key, err)
		}
	}
	if err := r.store.HSet(ctx, key, fields); err != nil {
		return false, fmt.Errorf("hset %s: %w", key, err)
	}

	return !exists, nil
}

// Get returns a note by its external id.
func (r *Repo) Get(ctx context.Context, externalID string) (domnote.Note, error) {
	key := noteKey(externalID)
	m, err := r.store.HGetAll(ctx, key)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return domnote.Note{}, domain.ErrNoteNotFound
		}
		return domnote.Note{}, fmt.Errorf("hgetall %s: %w", key, err)
	}
	return parseHashFields(m)
}

// List returns one page of an owner's notes plus a has-next probe.
func (r *Repo) List(ctx context.Context, owner string, p page.Pageable) (page.Slice[domnote.Note], error) {
	q := &db.SearchQuery{
		IndexName: IndexName(),
		Query:     fmt.Sprintf("@owner:{%s}", db.EscapeTag(owner)),
		SortBy:    sortBy(p),
		Offset:    p.Offset(),
		Limit:     p.Size() + 1,
	}

	sr, err := r.store.Search(ctx, q)
	if err != nil {
		return page.Slice[domnote.Note]{}, fmt.Errorf("list notes: %w", err)
	}

	notes := make([]domnote.Note, 0, len(sr.Entries))
	for _, entry := range sr.Entries {
		n, err := parseHashFields(entry.Fields)
		if err != nil {
			return page.Slice[domnote.Note]{}, fmt.Errorf("decode note %s: %w", entry.Key, err)
		}
		notes = append(notes, n)
	}

	return page.NewSlice(notes, p.Size()), nil
}

// Delete removes a note hash.
func (r *Repo) Delete(ctx context.Context, externalID string) error {
	key := noteKey(externalID)

	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("check exists %s: %w", key, err)
	}
	if !exists {
		return domain.ErrNoteNotFound
	}

	if err := r.store.Del(ctx, key); err != nil {
		return fmt.Errorf("del %s: %w", key, err)
	}
	return nil
}

func sortBy(p page.Pageable) *db.SortBy {
	return &db.SortBy{
		Field: p.SortKey(),
		Desc:  p.Direction() == page.Desc,
	}
}

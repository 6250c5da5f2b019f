package note

import (
	"context"

	domnote "github.com/kailas-cloud/notedex/internal/domain/note"
	"github.com/kailas-cloud/notedex/internal/domain/search/page"
)

// Repository defines the storage contract for notes.
type Repository interface {
	NextID(ctx context.Context) (int64, error)
	Upsert(ctx context.Context, n domnote.Note) (created bool, err error)
	Get(ctx context.Context, externalID string) (domnote.Note, error)
	List(ctx context.Context, owner string, p page.Pageable) (page.Slice[domnote.Note], error)
	Delete(ctx context.Context, externalID string) error
}

// Indexer keeps the search projection in step with note writes.
type Indexer interface {
	CreateFromNote(ctx context.Context, n domnote.Note) error
	DeleteByNoteID(ctx context.Context, id string) error
}

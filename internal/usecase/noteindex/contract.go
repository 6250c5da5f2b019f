package noteindex

import (
	"context"

	domidx "github.com/kailas-cloud/notedex/internal/domain/noteindex"
	"github.com/kailas-cloud/notedex/internal/domain/search/condition"
	"github.com/kailas-cloud/notedex/internal/domain/search/facet"
	"github.com/kailas-cloud/notedex/internal/domain/search/page"
)

// Repository defines the storage contract for the note index.
type Repository interface {
	Save(ctx context.Context, idx domidx.NoteIndex) error
	DeleteByNoteID(ctx context.Context, id string) error
	Search(ctx context.Context, cond condition.Search) (page.Slice[domidx.NoteIndex], error)
	Filter(ctx context.Context, cond condition.Filter) (page.Slice[domidx.NoteIndex], error)
	FieldNameFacets(ctx context.Context, q facet.NameQuery) ([]facet.Facet, error)
	FieldValueFacets(ctx context.Context, q facet.ValueQuery) ([]facet.Facet, error)
}

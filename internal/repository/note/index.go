package note

import (
	"github.com/kailas-cloud/notedex/internal/db"
	"github.com/kailas-cloud/notedex/internal/domain"
)

// IndexName returns the FT index over note hashes.
func IndexName() string {
	return domain.KeyPrefix + "note-idx"
}

func noteKey(externalID string) string {
	return domain.KeyPrefix + "note:" + externalID
}

func seqKey() string {
	return domain.KeyPrefix + "note:seq"
}

// buildIndex defines the listing index: owner scoping plus the sortable
// keys pagination accepts.
func buildIndex() *db.IndexDefinition {
	return db.NewIndex(IndexName()).
		Prefix(domain.KeyPrefix + "note:").
		Tag("owner").
		SortableNumeric("created_at").
		SortableNumeric("modified_at").
		SortableText("title").
		MustBuild()
}

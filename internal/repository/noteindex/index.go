package noteindex

import (
	"github.com/kailas-cloud/notedex/internal/db"
	"github.com/kailas-cloud/notedex/internal/domain"
)

// Multi-value hash fields are joined with the ASCII unit separator; printable
// separators would collide with user-entered values. Filter tags pair a field
// name with one value using the record separator.
const (
	tagSeparator  = "\x1f"
	pairSeparator = "\x1e"
)

// Derived hash fields the FT index matches on.
const (
	fieldContent    = "__content"
	fieldFieldNames = "__field_names"
	fieldFilterTags = "__filter_tags"
)

// IndexName returns the FT index over note index hashes.
func IndexName() string {
	return domain.KeyPrefix + "index-idx"
}

func indexKey(id string) string {
	return domain.KeyPrefix + "index:" + id
}

// buildIndex defines the search index: owner scoping, sortable timestamps
// and title, free-text content, and tag fields for filters and facets.
func buildIndex() *db.IndexDefinition {
	return db.NewIndex(IndexName()).
		Prefix(domain.KeyPrefix + "index:").
		Tag("owner").
		SortableNumeric("created_at").
		SortableNumeric("modified_at").
		SortableText("title").
		Text(fieldContent).
		TagWithOpts(fieldFieldNames, tagSeparator, false).
		TagWithOpts(fieldFilterTags, tagSeparator, false).
		MustBuild()
}

// Package noteindex holds the flattened, search-optimized projection of a note.
package noteindex

import (
	"maps"
	"slices"
	"strconv"

	"github.com/kailas-cloud/notedex/internal/clock"
	"github.com/kailas-cloud/notedex/internal/domain/note"
	"github.com/kailas-cloud/notedex/internal/domain/note/fieldtype"
)

// DisplayField is the index-side rendering of a note display field.
type DisplayField struct {
	Name   string
	Values []string
	Tag    string
	Order  int
}

// NoteIndex is the read-optimized projection of one note, rebuilt wholesale
// on every note write. Filters never contain an entry for a field whose type
// is excluded from indexing.
type NoteIndex struct {
	id             string
	externalID     string
	title          string
	owner          string
	createdAt      int64
	modifiedAt     int64
	displayFields  []DisplayField
	filters        map[string][]string
	synchronizedAt int64
	highlight      string
}

// FromNote projects a validated note into its index record. Display fields
// map 1:1 preserving order; fields of indexing-excluded types are dropped
// from the filters map entirely.
func FromNote(n note.Note, reg *fieldtype.Registry, clk clock.Clock) NoteIndex {
	displays := make([]DisplayField, 0, len(n.DisplayFields()))
	for _, d := range n.DisplayFields() {
		displays = append(displays, DisplayField{
			Name:   d.Name(),
			Values: d.Values(),
			Tag:    d.Icon(),
			Order:  d.Order(),
		})
	}

	filters := make(map[string][]string)
	for _, f := range n.Fields() {
		if reg.Get(f.Type()).ExcludeIndexing() {
			continue
		}
		filters[f.Name()] = f.Values()
	}

	return NoteIndex{
		id:             strconv.FormatInt(n.ID(), 10),
		externalID:     n.ExternalID(),
		title:          n.Title(),
		owner:          n.Owner(),
		createdAt:      n.CreatedAt(),
		modifiedAt:     n.ModifiedAt(),
		displayFields:  displays,
		filters:        filters,
		synchronizedAt: clk.Now().Unix(),
	}
}

// Reconstruct creates a NoteIndex from storage without projection.
func Reconstruct(
	id, externalID, title, owner string,
	createdAt, modifiedAt int64,
	displayFields []DisplayField,
	filters map[string][]string,
	synchronizedAt int64,
) NoteIndex {
	return NoteIndex{
		id:             id,
		externalID:     externalID,
		title:          title,
		owner:          owner,
		createdAt:      createdAt,
		modifiedAt:     modifiedAt,
		displayFields:  slices.Clone(displayFields),
		filters:        maps.Clone(filters),
		synchronizedAt: synchronizedAt,
	}
}

// ID returns the index id (the note's internal id, stringified).
func (i NoteIndex) ID() string { return i.id }

// ExternalID returns the public note identifier.
func (i NoteIndex) ExternalID() string { return i.externalID }

// Title returns the note title, with highlight markup when requested.
func (i NoteIndex) Title() string { return i.title }

// Owner returns the owning user id.
func (i NoteIndex) Owner() string { return i.owner }

// CreatedAt returns the note creation time (epoch seconds).
func (i NoteIndex) CreatedAt() int64 { return i.createdAt }

// ModifiedAt returns the note modification time (epoch seconds).
func (i NoteIndex) ModifiedAt() int64 { return i.modifiedAt }

// DisplayFields returns the projected display fields in order.
func (i NoteIndex) DisplayFields() []DisplayField { return slices.Clone(i.displayFields) }

// Filters returns the flattened field-name to values map.
func (i NoteIndex) Filters() map[string][]string { return maps.Clone(i.filters) }

// SynchronizedAt returns the projection time (epoch seconds).
func (i NoteIndex) SynchronizedAt() int64 { return i.synchronizedAt }

// Highlight returns the highlighted title fragment from a search hit,
// empty outside search results.
func (i NoteIndex) Highlight() string { return i.highlight }

// WithHighlight returns a copy carrying a highlighted title fragment.
func (i NoteIndex) WithHighlight(fragment string) NoteIndex {
	i.highlight = fragment
	return i
}

// Equal reports whether two index records are identical apart from their
// synchronization stamp. Used to verify idempotent re-projection.
func (i NoteIndex) Equal(other NoteIndex) bool {
	if i.id != other.id || i.externalID != other.externalID ||
		i.title != other.title || i.owner != other.owner ||
		i.createdAt != other.createdAt || i.modifiedAt != other.modifiedAt {
		return false
	}
	if !slices.EqualFunc(i.displayFields, other.displayFields, displayFieldEqual) {
		return false
	}
	return maps.EqualFunc(i.filters, other.filters, slices.Equal)
}

func displayFieldEqual(a, b DisplayField) bool {
	return a.Name == b.Name && a.Tag == b.Tag && a.Order == b.Order &&
		slices.Equal(a.Values, b.Values)
}

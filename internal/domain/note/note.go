// Package note models the note aggregate with its dynamically-typed fields.
package note

import (
	"fmt"
	"slices"
)

// MaxTitleLength bounds note titles.
const MaxTitleLength = 200

// Note is the note aggregate (immutable value object). Field values and
// attributes are validated before a Note can exist, so every constructed
// Note is projectable into the search index.
type Note struct {
	id            int64
	externalID    string
	title         string
	owner         string
	fields        []Field
	displayFields []DisplayField
	createdAt     int64
	modifiedAt    int64
}

// New validates and creates a Note. Timestamps are epoch seconds (UTC).
// Display fields are kept sorted by their authoritative order value.
func New(
	id int64, externalID, title, owner string,
	fields []Field, displayFields []DisplayField,
	createdAt, modifiedAt int64,
) (Note, error) {
	if id <= 0 {
		return Note{}, fmt.Errorf("note id must be positive")
	}
	if externalID == "" {
		return Note{}, fmt.Errorf("note external id is required")
	}
	if title == "" {
		return Note{}, fmt.Errorf("note title is required")
	}
	if len(title) > MaxTitleLength {
		return Note{}, fmt.Errorf("note title too long (max %d)", MaxTitleLength)
	}
	if owner == "" {
		return Note{}, fmt.Errorf("note owner is required")
	}
	if err := validateFieldNames(fields); err != nil {
		return Note{}, err
	}

	return Note{
		id:            id,
		externalID:    externalID,
		title:         title,
		owner:         owner,
		fields:        slices.Clone(fields),
		displayFields: sortDisplayFields(displayFields),
		createdAt:     createdAt,
		modifiedAt:    modifiedAt,
	}, nil
}

// Reconstruct creates a Note without validation (storage hydration).
func Reconstruct(
	id int64, externalID, title, owner string,
	fields []Field, displayFields []DisplayField,
	createdAt, modifiedAt int64,
) Note {
	return Note{
		id:            id,
		externalID:    externalID,
		title:         title,
		owner:         owner,
		fields:        slices.Clone(fields),
		displayFields: sortDisplayFields(displayFields),
		createdAt:     createdAt,
		modifiedAt:    modifiedAt,
	}
}

func validateFieldNames(fields []Field) error {
	seen := make(map[string]bool, len(fields))
	for _, f := range fields {
		if seen[f.name] {
			return fmt.Errorf("duplicate field name: %s", f.name)
		}
		seen[f.name] = true
	}
	return nil
}

// ID returns the internal note id.
func (n Note) ID() int64 { return n.id }

// ExternalID returns the public note identifier.
func (n Note) ExternalID() string { return n.externalID }

// Title returns the note title.
func (n Note) Title() string { return n.title }

// Owner returns the owning user id.
func (n Note) Owner() string { return n.owner }

// Fields returns the note's fields.
func (n Note) Fields() []Field { return slices.Clone(n.fields) }

// DisplayFields returns the display fields sorted by order.
func (n Note) DisplayFields() []DisplayField { return slices.Clone(n.displayFields) }

// CreatedAt returns the creation time (epoch seconds).
func (n Note) CreatedAt() int64 { return n.createdAt }

// ModifiedAt returns the last modification time (epoch seconds).
func (n Note) ModifiedAt() int64 { return n.modifiedAt }

// FieldByName looks up a field by name.
func (n Note) FieldByName(name string) (Field, bool) {
	for _, f := range n.fields {
		if f.name == name {
			return f, true
		}
	}
	return Field{}, false
}

package note

import (
	"fmt"
	"slices"

	"github.com/kailas-cloud/notedex/internal/domain"
	"github.com/kailas-cloud/notedex/internal/domain/note/attribute"
	"github.com/kailas-cloud/notedex/internal/domain/note/fieldtype"
)

// MaxFieldNameLength bounds field names so they stay usable as facet values.
const MaxFieldNameLength = 50

// Field is a named, typed, user-supplied value set attached to a note.
// Attributes and values are validated against the field's type at
// construction, never lazily.
type Field struct {
	name       string
	fieldType  fieldtype.Type
	attributes attribute.Set
	values     []string
}

// NewField validates and creates a Field. The type key must be registered;
// an unknown key is a configuration error and panics inside the registry.
// Rejected attributes or values surface as *domain.ValidationError carrying
// every failed check.
func NewField(
	reg *fieldtype.Registry,
	name string, key fieldtype.Type,
	attrs attribute.Set, values []string,
) (Field, error) {
	if name == "" {
		return Field{}, fmt.Errorf("field name is required")
	}
	if len(name) > MaxFieldNameLength {
		return Field{}, fmt.Errorf("field name %q too long (max %d)", name, MaxFieldNameLength)
	}

	ft := reg.Get(key)

	results := ft.ValidateAttributes(attrs)
	results = append(results, ft.ValidateValues(values, attrs)...)
	if !fieldtype.AllValid(results) {
		return Field{}, domain.NewValidationError(name, fieldtype.Reasons(results))
	}

	return Field{
		name:       name,
		fieldType:  key,
		attributes: slices.Clone(attrs),
		values:     slices.Clone(values),
	}, nil
}

// ReconstructField creates a Field without validation (storage hydration).
func ReconstructField(
	name string, key fieldtype.Type,
	attrs attribute.Set, values []string,
) Field {
	return Field{
		name:       name,
		fieldType:  key,
		attributes: slices.Clone(attrs),
		values:     slices.Clone(values),
	}
}

// Name returns the field name.
func (f Field) Name() string { return f.name }

// Type returns the field's type key.
func (f Field) Type() fieldtype.Type { return f.fieldType }

// Attributes returns the field's configured attributes.
func (f Field) Attributes() attribute.Set { return slices.Clone(f.attributes) }

// Values returns a copy of the field's values.
func (f Field) Values() []string { return slices.Clone(f.values) }

// Package fieldtype implements the validation policy for every supported
// field kind and the registry resolving type keys to their validators.
package fieldtype

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/kailas-cloud/notedex/internal/domain/note/attribute"
)

// Type is the registry key of a field kind.
type Type string

// Supported field type keys.
const (
	Text        Type = "TEXT"
	LongText    Type = "LONG_TEXT"
	Number      Type = "NUMBER"
	Date        Type = "DATE"
	Time        Type = "TIME"
	Toggle      Type = "TOGGLE"
	Score       Type = "SCORE"
	DropDown    Type = "DROP_DOWN"
	MultiSelect Type = "MULTI_SELECT"
	Image       Type = "IMAGE"
)

// FieldType validates attribute sets and value sets for one field kind.
// Implementations are stateless and safe for concurrent use.
type FieldType interface {
	Key() Type
	// ExcludeIndexing reports whether fields of this type are omitted from
	// the search index projection.
	ExcludeIndexing() bool
	// ValidateAttributes checks a candidate attribute set. One Result per
	// structural check performed; an empty list counts as valid.
	ValidateAttributes(attrs attribute.Set) []Result
	// ValidateValues checks a candidate value set against the field's
	// configured attributes.
	ValidateValues(values []string, attrs attribute.Set) []Result
}

// Options tunes registry-wide validation constants.
type Options struct {
	// MaxScoreCap bounds the configurable maxScore attribute of SCORE
	// fields. Zero means DefaultMaxScoreCap.
	MaxScoreCap int
}

// DefaultMaxScoreCap is the upper bound for the SCORE maxScore attribute.
const DefaultMaxScoreCap = 1000

// Registry resolves type keys to their FieldType. It is built once at
// startup and read-only afterwards.
type Registry struct {
	types map[Type]FieldType
}

// NewRegistry builds the registry with all supported field types.
func NewRegistry(opts Options) *Registry {
	scoreCap := opts.MaxScoreCap
	if scoreCap <= 0 {
		scoreCap = DefaultMaxScoreCap
	}

	r := &Registry{types: make(map[Type]FieldType, 10)}
	for _, ft := range []FieldType{
		textField{},
		longTextField{},
		numberField{},
		dateField{},
		timeField{},
		toggleField{},
		scoreField{maxScoreCap: scoreCap},
		selectField{key: DropDown, maxValues: 0},
		selectField{key: MultiSelect, maxValues: maxMultiSelectValues},
		imageField{},
	} {
		r.types[ft.Key()] = ft
	}
	return r
}

// Get resolves a type key. An unknown key is a configuration error and panics;
// every persisted field type must have been registered at startup.
func (r *Registry) Get(key Type) FieldType {
	ft, ok := r.types[key]
	if !ok {
		panic(fmt.Sprintf("fieldtype: unregistered type %q", key))
	}
	return ft
}

// Lookup resolves a type key without panicking on unknown keys.
func (r *Registry) Lookup(key Type) (FieldType, bool) {
	ft, ok := r.types[key]
	return ft, ok
}

// Keys returns all registered type keys, sorted.
func (r *Registry) Keys() []Type {
	keys := make([]Type, 0, len(r.types))
	for k := range r.types {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// --- Shared checks ---

// permitKeys rejects every attribute whose key is outside the whitelist.
func permitKeys(t Type, attrs attribute.Set, permitted ...string) []Result {
	var out []Result
	for _, a := range attrs {
		if !slices.Contains(permitted, a.Key()) {
			out = append(out, Failf("attribute %q is not permitted for %s", a.Key(), t))
		}
	}
	return out
}

// singleValue checks the fixed single-value arity shared by most types.
func singleValue(t Type, values []string) (string, Result, bool) {
	if len(values) != 1 {
		return "", Failf("%s requires exactly one value, got %d", t, len(values)), false
	}
	return values[0], Valid(), true
}

// boolLiteral checks that v is literally "true" or "false".
func boolLiteral(what, v string) Result {
	if v != "true" && v != "false" {
		return Failf("%s must be \"true\" or \"false\", got %q", what, v)
	}
	return Valid()
}

// requireSingle extracts the single value of a required attribute.
func requireSingle(t Type, attrs attribute.Set, key string) (string, Result, bool) {
	a, ok := attrs.Get(key)
	if !ok {
		return "", Failf("%s requires attribute %q", t, key), false
	}
	v, ok := a.Single()
	if !ok {
		return "", Failf("attribute %q must have exactly one value", key), false
	}
	return v, Valid(), true
}

// parseIntAttr parses a required integer attribute value.
func parseIntAttr(key, v string) (int, Result, bool) {
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, Failf("attribute %q must be an integer, got %q", key, v), false
	}
	return n, Valid(), true
}

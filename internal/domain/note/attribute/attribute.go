// Package attribute models per-field configuration as immutable key/value-set pairs.
package attribute

import (
	"fmt"
	"slices"
)

// Structural limits for attribute keys and values. Per-type policy (e.g. the
// 100-option cap of select fields) is enforced by fieldtype validators, so the
// structural cap here sits deliberately higher.
const (
	MaxKeyLength   = 50
	MaxValueLength = 100
	MaxValues      = 500
)

// Attribute is an immutable configuration entry of a field instance,
// e.g. maxScore=10 or values={a,b,c}. Value order is not significant.
type Attribute struct {
	key    string
	values []string
}

// New validates and creates an Attribute.
func New(key string, values ...string) (Attribute, error) {
	if key == "" {
		return Attribute{}, fmt.Errorf("attribute key is required")
	}
	if len(key) > MaxKeyLength {
		return Attribute{}, fmt.Errorf("attribute key %q too long (max %d)", key, MaxKeyLength)
	}
	if len(values) > MaxValues {
		return Attribute{}, fmt.Errorf("attribute %q has too many values (max %d)", key, MaxValues)
	}
	for _, v := range values {
		if len(v) > MaxValueLength {
			return Attribute{}, fmt.Errorf("attribute %q value too long (max %d)", key, MaxValueLength)
		}
	}
	return Attribute{key: key, values: slices.Clone(values)}, nil
}

// Reconstruct creates an Attribute without validation (storage hydration).
func Reconstruct(key string, values []string) Attribute {
	return Attribute{key: key, values: slices.Clone(values)}
}

// Key returns the attribute key.
func (a Attribute) Key() string { return a.key }

// Values returns a copy of the attribute values.
func (a Attribute) Values() []string { return slices.Clone(a.values) }

// Single returns the attribute value when exactly one is present.
func (a Attribute) Single() (string, bool) {
	if len(a.values) != 1 {
		return "", false
	}
	return a.values[0], true
}

// Equal reports whether two attributes have the same key and value set,
// ignoring value order.
func (a Attribute) Equal(other Attribute) bool {
	if a.key != other.key || len(a.values) != len(other.values) {
		return false
	}
	av := slices.Clone(a.values)
	bv := slices.Clone(other.values)
	slices.Sort(av)
	slices.Sort(bv)
	return slices.Equal(av, bv)
}

// Set is an unordered collection of attributes, at most one per key.
type Set []Attribute

// NewSet validates and creates a Set, rejecting duplicate keys.
func NewSet(attrs ...Attribute) (Set, error) {
	seen := make(map[string]bool, len(attrs))
	for _, a := range attrs {
		if seen[a.key] {
			return nil, fmt.Errorf("duplicate attribute key: %s", a.key)
		}
		seen[a.key] = true
	}
	return Set(slices.Clone(attrs)), nil
}

// Get returns the attribute for a key.
func (s Set) Get(key string) (Attribute, bool) {
	for _, a := range s {
		if a.key == key {
			return a, true
		}
	}
	return Attribute{}, false
}

// Keys returns all attribute keys in the set.
func (s Set) Keys() []string {
	keys := make([]string, 0, len(s))
	for _, a := range s {
		keys = append(keys, a.key)
	}
	return keys
}

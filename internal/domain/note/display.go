package note

import (
	"fmt"
	"slices"
	"strings"
)

// DisplayField is the subset of a field chosen for prominent display.
// The order value is authoritative, not the container position.
type DisplayField struct {
	name   string
	values []string
	icon   string
	order  int
}

// NewDisplayField validates and creates a DisplayField.
func NewDisplayField(name string, values []string, icon string, order int) (DisplayField, error) {
	if name == "" {
		return DisplayField{}, fmt.Errorf("display field name is required")
	}
	if order < 0 {
		return DisplayField{}, fmt.Errorf("display field %q order must not be negative", name)
	}
	return DisplayField{name: name, values: slices.Clone(values), icon: icon, order: order}, nil
}

// ReconstructDisplayField creates a DisplayField without validation.
func ReconstructDisplayField(name string, values []string, icon string, order int) DisplayField {
	return DisplayField{name: name, values: slices.Clone(values), icon: icon, order: order}
}

// Name returns the display field name.
func (d DisplayField) Name() string { return d.name }

// Values returns a copy of the displayed values.
func (d DisplayField) Values() []string { return slices.Clone(d.values) }

// Icon returns the display icon reference.
func (d DisplayField) Icon() string { return d.icon }

// Order returns the display position.
func (d DisplayField) Order() int { return d.order }

// sortDisplayFields orders a copy by the authoritative order value,
// falling back to name for equal orders.
func sortDisplayFields(fields []DisplayField) []DisplayField {
	out := slices.Clone(fields)
	slices.SortStableFunc(out, func(a, b DisplayField) int {
		if a.order != b.order {
			return a.order - b.order
		}
		return strings.Compare(a.name, b.name)
	})
	return out
}

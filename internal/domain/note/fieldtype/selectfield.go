package fieldtype

import (
	"strings"

	"github.com/kailas-cloud/notedex/internal/domain/note/attribute"
)

// Attributes shared by DROP_DOWN and MULTI_SELECT.
const (
	attrValues        = "values"
	attrAllowAddValue = "allowAddValue"
)

// Option list and value bounds for select-like types.
const (
	minOptionCount       = 2
	maxOptionCount       = 100
	maxOptionLength      = 50
	maxMultiSelectValues = 30
)

// selectField covers DROP_DOWN and MULTI_SELECT, which differ only in the
// number of values a field instance may hold (0 means unbounded).
type selectField struct {
	key       Type
	maxValues int
}

func (f selectField) Key() Type           { return f.key }
func (selectField) ExcludeIndexing() bool { return false }

func (f selectField) ValidateAttributes(attrs attribute.Set) []Result {
	out := permitKeys(f.key, attrs, attrValues, attrAllowAddValue)

	out = append(out, f.validateOptions(attrs)...)

	v, res, ok := requireSingle(f.key, attrs, attrAllowAddValue)
	if !ok {
		return append(out, res)
	}
	out = append(out, res)
	return append(out, boolLiteral("attribute \""+attrAllowAddValue+"\"", v))
}

func (f selectField) validateOptions(attrs attribute.Set) []Result {
	a, ok := attrs.Get(attrValues)
	if !ok {
		return []Result{Failf("%s requires attribute %q", f.key, attrValues)}
	}

	options := a.Values()
	if len(options) < minOptionCount || len(options) > maxOptionCount {
		return []Result{Failf(
			"attribute %q must have between %d and %d entries, got %d",
			attrValues, minOptionCount, maxOptionCount, len(options),
		)}
	}

	var out []Result
	seen := make(map[string]bool, len(options))
	for _, opt := range options {
		switch {
		case strings.TrimSpace(opt) == "":
			out = append(out, Failf("attribute %q must not contain blank entries", attrValues))
		case len(opt) > maxOptionLength:
			out = append(out, Failf("attribute %q entry %q too long (max %d chars)", attrValues, opt, maxOptionLength))
		case seen[opt]:
			out = append(out, Failf("attribute %q contains duplicate entry %q", attrValues, opt))
		}
		seen[opt] = true
	}
	if len(out) == 0 {
		out = append(out, Valid())
	}
	return out
}

func (f selectField) ValidateValues(values []string, attrs attribute.Set) []Result {
	var out []Result

	if f.maxValues > 0 && len(values) > f.maxValues {
		out = append(out, Failf("%s allows at most %d values, got %d", f.key, f.maxValues, len(values)))
	}

	for _, v := range values {
		if len(v) > maxOptionLength {
			out = append(out, Failf("%s value %q too long (max %d chars)", f.key, v, maxOptionLength))
		}
	}

	// With allowAddValue=false every value must be a configured option.
	if !f.allowsNovelValues(attrs) {
		options := f.configuredOptions(attrs)
		for _, v := range values {
			if !options[v] {
				out = append(out, Failf("%s value %q is not a configured option", f.key, v))
			}
		}
	}

	if len(out) == 0 {
		out = append(out, Valid())
	}
	return out
}

func (selectField) allowsNovelValues(attrs attribute.Set) bool {
	a, ok := attrs.Get(attrAllowAddValue)
	if !ok {
		return false
	}
	v, ok := a.Single()
	return ok && v == "true"
}

func (selectField) configuredOptions(attrs attribute.Set) map[string]bool {
	options := make(map[string]bool)
	if a, ok := attrs.Get(attrValues); ok {
		for _, opt := range a.Values() {
			options[opt] = true
		}
	}
	return options
}

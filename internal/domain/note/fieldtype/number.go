package fieldtype

import (
	"errors"
	"strconv"
	"strings"

	"github.com/kailas-cloud/notedex/internal/domain/note/attribute"
)

// attrUnit is the optional display unit of a NUMBER field (e.g. "kg").
const attrUnit = "unit"

// maxNumberLength bounds the numeric string length rather than its magnitude.
const maxNumberLength = 50

// numberField is a numeric value with an optional unit attribute.
type numberField struct{}

func (numberField) Key() Type             { return Number }
func (numberField) ExcludeIndexing() bool { return false }

func (numberField) ValidateAttributes(attrs attribute.Set) []Result {
	out := permitKeys(Number, attrs, attrUnit)

	if a, ok := attrs.Get(attrUnit); ok {
		v, single := a.Single()
		switch {
		case !single:
			out = append(out, Failf("attribute %q must have exactly one value", attrUnit))
		case strings.TrimSpace(v) == "":
			out = append(out, Failf("attribute %q must not be blank", attrUnit))
		default:
			out = append(out, Valid())
		}
	}
	return out
}

func (numberField) ValidateValues(values []string, _ attribute.Set) []Result {
	v, res, ok := singleValue(Number, values)
	if !ok {
		return []Result{res}
	}
	out := []Result{res}
	if len(v) > maxNumberLength {
		out = append(out, Failf("%s value too long (max %d chars)", Number, maxNumberLength))
	} else {
		out = append(out, Valid())
	}
	// Overflowing magnitudes stay valid: the bound is on length, not value.
	if _, err := strconv.ParseFloat(v, 64); err != nil && !errors.Is(err, strconv.ErrRange) {
		out = append(out, Failf("%s value must be numeric, got %q", Number, v))
	} else {
		out = append(out, Valid())
	}
	return out
}

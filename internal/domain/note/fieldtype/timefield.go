package fieldtype

import (
	"regexp"

	"github.com/kailas-cloud/notedex/internal/domain/note/attribute"
)

// attr24Format selects 24-hour rendering for a TIME field.
const attr24Format = "24Format"

// Strict zero-padded 24-hour clock: "1:00", "01:0" and "0100" are all invalid.
var timeShape = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// timeField is a wall-clock time of day.
type timeField struct{}

func (timeField) Key() Type             { return Time }
func (timeField) ExcludeIndexing() bool { return false }

func (timeField) ValidateAttributes(attrs attribute.Set) []Result {
	out := permitKeys(Time, attrs, attr24Format)

	v, res, ok := requireSingle(Time, attrs, attr24Format)
	if !ok {
		return append(out, res)
	}
	out = append(out, res)
	return append(out, boolLiteral("attribute \""+attr24Format+"\"", v))
}

func (timeField) ValidateValues(values []string, _ attribute.Set) []Result {
	v, res, ok := singleValue(Time, values)
	if !ok {
		return []Result{res}
	}
	if !timeShape.MatchString(v) {
		return []Result{res, Failf("%s value must be zero-padded 24-hour HH:MM, got %q", Time, v)}
	}
	return []Result{res, Valid()}
}

package fieldtype

import (
	"regexp"
	"time"

	"github.com/kailas-cloud/notedex/internal/domain/note/attribute"
)

// isoDateFormat is the only accepted calendar date layout.
const isoDateFormat = "2006-01-02"

// time.Parse tolerates unpadded components, so shape is checked first.
var isoDateShape = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// dateField is an ISO-8601 calendar date with no configurable attributes.
type dateField struct{}

func (dateField) Key() Type             { return Date }
func (dateField) ExcludeIndexing() bool { return false }

func (dateField) ValidateAttributes(attrs attribute.Set) []Result {
	return permitKeys(Date, attrs)
}

func (dateField) ValidateValues(values []string, _ attribute.Set) []Result {
	v, res, ok := singleValue(Date, values)
	if !ok {
		return []Result{res}
	}
	if !isoDateShape.MatchString(v) {
		return []Result{res, Failf("%s value must be an ISO-8601 date (YYYY-MM-DD), got %q", Date, v)}
	}
	if _, err := time.Parse(isoDateFormat, v); err != nil {
		return []Result{res, Failf("%s value %q is not a valid calendar date", Date, v)}
	}
	return []Result{res, Valid()}
}

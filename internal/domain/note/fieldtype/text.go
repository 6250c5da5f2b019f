package fieldtype

import "github.com/kailas-cloud/notedex/internal/domain/note/attribute"

// Value length bounds for text-like types.
const (
	maxTextLength     = 100
	maxLongTextLength = 10000
)

// textField is a short single-line text value with no configurable attributes.
type textField struct{}

func (textField) Key() Type             { return Text }
func (textField) ExcludeIndexing() bool { return false }

func (textField) ValidateAttributes(attrs attribute.Set) []Result {
	return permitKeys(Text, attrs)
}

func (textField) ValidateValues(values []string, _ attribute.Set) []Result {
	v, res, ok := singleValue(Text, values)
	if !ok {
		return []Result{res}
	}
	if len(v) > maxTextLength {
		return []Result{res, Failf("%s value too long (max %d chars)", Text, maxTextLength)}
	}
	return []Result{res, Valid()}
}

// longTextField is a multi-line text value with no configurable attributes.
type longTextField struct{}

func (longTextField) Key() Type             { return LongText }
func (longTextField) ExcludeIndexing() bool { return false }

func (longTextField) ValidateAttributes(attrs attribute.Set) []Result {
	return permitKeys(LongText, attrs)
}

func (longTextField) ValidateValues(values []string, _ attribute.Set) []Result {
	v, res, ok := singleValue(LongText, values)
	if !ok {
		return []Result{res}
	}
	if len(v) > maxLongTextLength {
		return []Result{res, Failf("%s value too long (max %d chars)", LongText, maxLongTextLength)}
	}
	return []Result{res, Valid()}
}

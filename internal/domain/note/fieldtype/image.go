package fieldtype

import (
	"strings"

	"github.com/kailas-cloud/notedex/internal/domain/note/attribute"
)

// imageField holds an opaque image reference. Image fields never reach the
// search index.
type imageField struct{}

func (imageField) Key() Type             { return Image }
func (imageField) ExcludeIndexing() bool { return true }

func (imageField) ValidateAttributes(attrs attribute.Set) []Result {
	return permitKeys(Image, attrs)
}

func (imageField) ValidateValues(values []string, _ attribute.Set) []Result {
	v, res, ok := singleValue(Image, values)
	if !ok {
		return []Result{res}
	}
	if strings.TrimSpace(v) == "" {
		return []Result{res, Failf("%s reference must not be blank", Image)}
	}
	return []Result{res, Valid()}
}

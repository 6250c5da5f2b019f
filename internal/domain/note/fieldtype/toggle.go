package fieldtype

import "github.com/kailas-cloud/notedex/internal/domain/note/attribute"

// toggleField is a boolean flag with no configurable attributes.
type toggleField struct{}

func (toggleField) Key() Type             { return Toggle }
func (toggleField) ExcludeIndexing() bool { return false }

func (toggleField) ValidateAttributes(attrs attribute.Set) []Result {
	return permitKeys(Toggle, attrs)
}

func (toggleField) ValidateValues(values []string, _ attribute.Set) []Result {
	v, res, ok := singleValue(Toggle, values)
	if !ok {
		return []Result{res}
	}
	return []Result{res, boolLiteral(string(Toggle)+" value", v)}
}

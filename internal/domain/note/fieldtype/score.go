package fieldtype

import (
	"strconv"

	"github.com/kailas-cloud/notedex/internal/domain/note/attribute"
)

// attrMaxScore is the required upper bound of a SCORE field.
const attrMaxScore = "maxScore"

// scoreField is a bounded integer rating. The bound itself is configured per
// field instance via the maxScore attribute, capped registry-wide.
type scoreField struct {
	maxScoreCap int
}

func (scoreField) Key() Type             { return Score }
func (scoreField) ExcludeIndexing() bool { return false }

func (f scoreField) ValidateAttributes(attrs attribute.Set) []Result {
	out := permitKeys(Score, attrs, attrMaxScore)

	v, res, ok := requireSingle(Score, attrs, attrMaxScore)
	if !ok {
		return append(out, res)
	}
	out = append(out, res)

	n, res, ok := parseIntAttr(attrMaxScore, v)
	if !ok {
		return append(out, res)
	}
	out = append(out, res)

	if n < 1 || n > f.maxScoreCap {
		return append(out, Failf(
			"attribute %q must be between 1 and %d, got %d", attrMaxScore, f.maxScoreCap, n,
		))
	}
	return append(out, Valid())
}

func (f scoreField) ValidateValues(values []string, attrs attribute.Set) []Result {
	v, res, ok := singleValue(Score, values)
	if !ok {
		return []Result{res}
	}
	out := []Result{res}

	n, err := strconv.Atoi(v)
	if err != nil {
		return append(out, Failf("%s value must be an integer, got %q", Score, v))
	}
	out = append(out, Valid())

	maxScore, ok := f.configuredMax(attrs)
	if !ok {
		return append(out, Failf("%s field is missing a usable %q attribute", Score, attrMaxScore))
	}
	if n < 0 || n > maxScore {
		return append(out, Failf("%s value must be between 0 and %d, got %d", Score, maxScore, n))
	}
	return append(out, Valid())
}

func (scoreField) configuredMax(attrs attribute.Set) (int, bool) {
	a, ok := attrs.Get(attrMaxScore)
	if !ok {
		return 0, false
	}
	v, ok := a.Single()
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

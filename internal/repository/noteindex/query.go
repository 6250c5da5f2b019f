package noteindex

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/kailas-cloud/notedex/internal/db"
	"github.com/kailas-cloud/notedex/internal/domain/search/condition"
)

func ownerClause(owner string) string {
	return fmt.Sprintf("@owner:{%s}", db.EscapeTag(owner))
}

// buildSearchQuery matches the free text against the derived content field,
// which embeds the title, scoped to the owner.
func buildSearchQuery(cond condition.Search) string {
	return fmt.Sprintf("%s @%s:(%s)", ownerClause(cond.Owner()), fieldContent, db.EscapeQuery(cond.Query()))
}

// buildFilterQuery combines field options conjunctively across fields and
// disjunctively within one field's values, plus optional date ranges.
// Field clauses are emitted in name order so queries are deterministic.
func buildFilterQuery(cond condition.Filter) string {
	parts := []string{ownerClause(cond.Owner())}

	options := cond.FieldOptions()
	names := make([]string, 0, len(options))
	for name := range options {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		tags := make([]string, 0, len(options[name]))
		for _, v := range options[name] {
			tags = append(tags, db.EscapeTag(filterTag(name, v)))
		}
		parts = append(parts, fmt.Sprintf("@%s:{%s}", fieldFilterTags, strings.Join(tags, "|")))
	}

	if clause := rangeClause("created_at", cond.Created()); clause != "" {
		parts = append(parts, clause)
	}
	if clause := rangeClause("modified_at", cond.Modified()); clause != "" {
		parts = append(parts, clause)
	}

	return strings.Join(parts, " ")
}

// rangeClause renders an inclusive numeric range; absent bounds become
// -inf/+inf, a fully open range renders nothing.
func rangeClause(field string, r condition.DateRange) string {
	if r.IsOpen() {
		return ""
	}
	start := "-inf"
	if r.Start() != nil {
		start = strconv.FormatInt(*r.Start(), 10)
	}
	end := "+inf"
	if r.End() != nil {
		end = strconv.FormatInt(*r.End(), 10)
	}
	return fmt.Sprintf("@%s:[%s %s]", field, start, end)
}

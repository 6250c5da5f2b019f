package noteindex

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/kailas-cloud/notedex/internal/domain/noteindex"
)

type displayFieldDTO struct {
	Name   string   `json:"name"`
	Values []string `json:"values,omitempty"`
	Tag    string   `json:"tag,omitempty"`
	Order  int      `json:"order"`
}

// buildHashFields flattens a NoteIndex into hash fields. Alongside the
// reconstructable payload it derives the FT-matched fields: free text for
// search and highlight, plus the filter tag sets.
func buildHashFields(idx noteindex.NoteIndex) (map[string]string, error) {
	display := make([]displayFieldDTO, 0, len(idx.DisplayFields()))
	for _, d := range idx.DisplayFields() {
		display = append(display, displayFieldDTO{
			Name:   d.Name,
			Values: d.Values,
			Tag:    d.Tag,
			Order:  d.Order,
		})
	}
	displayJSON, err := json.Marshal(display)
	if err != nil {
		return nil, fmt.Errorf("marshal display fields: %w", err)
	}

	filters := idx.Filters()
	filtersJSON, err := json.Marshal(filters)
	if err != nil {
		return nil, fmt.Errorf("marshal filters: %w", err)
	}

	names := make([]string, 0, len(filters))
	for name := range filters {
		names = append(names, name)
	}
	sort.Strings(names)

	content := []string{idx.Title()}
	pairs := make([]string, 0, len(names))
	for _, name := range names {
		for _, v := range filters[name] {
			content = append(content, v)
			pairs = append(pairs, filterTag(name, v))
		}
	}

	return map[string]string{
		"id":              idx.ID(),
		"external_id":     idx.ExternalID(),
		"title":           idx.Title(),
		"owner":           idx.Owner(),
		"created_at":      strconv.FormatInt(idx.CreatedAt(), 10),
		"modified_at":     strconv.FormatInt(idx.ModifiedAt(), 10),
		"synchronized_at": strconv.FormatInt(idx.SynchronizedAt(), 10),
		"display_fields":  string(displayJSON),
		"filters":         string(filtersJSON),
		fieldContent:      strings.Join(content, " "),
		fieldFieldNames:   strings.Join(names, tagSeparator),
		fieldFilterTags:   strings.Join(pairs, tagSeparator),
	}, nil
}

// parseHashFields hydrates a NoteIndex from hash fields. Derived fields are
// not read back; filters carries the authoritative payload.
func parseHashFields(m map[string]string) (noteindex.NoteIndex, error) {
	createdAt, _ := strconv.ParseInt(m["created_at"], 10, 64)
	modifiedAt, _ := strconv.ParseInt(m["modified_at"], 10, 64)
	synchronizedAt, _ := strconv.ParseInt(m["synchronized_at"], 10, 64)

	var displayDTOs []displayFieldDTO
	if raw := m["display_fields"]; raw != "" {
		if err := json.Unmarshal([]byte(raw), &displayDTOs); err != nil {
			return noteindex.NoteIndex{}, fmt.Errorf("unmarshal display fields: %w", err)
		}
	}
	display := make([]noteindex.DisplayField, 0, len(displayDTOs))
	for _, dto := range displayDTOs {
		display = append(display, noteindex.DisplayField{
			Name:   dto.Name,
			Values: dto.Values,
			Tag:    dto.Tag,
			Order:  dto.Order,
		})
	}

	var filters map[string][]string
	if raw := m["filters"]; raw != "" {
		if err := json.Unmarshal([]byte(raw), &filters); err != nil {
			return noteindex.NoteIndex{}, fmt.Errorf("unmarshal filters: %w", err)
		}
	}

	return noteindex.Reconstruct(
		m["id"], m["external_id"], m["title"], m["owner"],
		createdAt, modifiedAt, display, filters, synchronizedAt,
	), nil
}

// filterTag encodes one field-name/value pair as a single tag.
func filterTag(name, value string) string {
	return name + pairSeparator + value
}

package note

import (
	"encoding/json"
	"fmt"
	"strconv"

	domnote "github.com/kailas-cloud/notedex/internal/domain/note"
	"github.com/kailas-cloud/notedex/internal/domain/note/attribute"
	"github.com/kailas-cloud/notedex/internal/domain/note/fieldtype"
)

type fieldDTO struct {
	Name       string              `json:"name"`
	Type       string              `json:"type"`
	Attributes map[string][]string `json:"attributes,omitempty"`
	Values     []string            `json:"values,omitempty"`
}

type displayFieldDTO struct {
	Name   string   `json:"name"`
	Values []string `json:"values,omitempty"`
	Icon   string   `json:"icon,omitempty"`
	Order  int      `json:"order"`
}

// buildHashFields flattens a Note into hash fields. Composite parts are
// JSON-encoded; scalar parts stay flat so the listing index can reach them.
func buildHashFields(n domnote.Note) (map[string]string, error) {
	fields := make([]fieldDTO, 0, len(n.Fields()))
	for _, f := range n.Fields() {
		attrs := make(map[string][]string)
		for _, a := range f.Attributes() {
			attrs[a.Key()] = a.Values()
		}
		fields = append(fields, fieldDTO{
			Name:       f.Name(),
			Type:       string(f.Type()),
			Attributes: attrs,
			Values:     f.Values(),
		})
	}
	fieldsJSON, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("marshal fields: %w", err)
	}

	display := make([]displayFieldDTO, 0, len(n.DisplayFields()))
	for _, d := range n.DisplayFields() {
		display = append(display, displayFieldDTO{
			Name:   d.Name(),
			Values: d.Values(),
			Icon:   d.Icon(),
			Order:  d.Order(),
		})
	}
	displayJSON, err := json.Marshal(display)
	if err != nil {
		return nil, fmt.Errorf("marshal display fields: %w", err)
	}

	return map[string]string{
		"id":             strconv.FormatInt(n.ID(), 10),
		"external_id":    n.ExternalID(),
		"title":          n.Title(),
		"owner":          n.Owner(),
		"created_at":     strconv.FormatInt(n.CreatedAt(), 10),
		"modified_at":    strconv.FormatInt(n.ModifiedAt(), 10),
		"fields":         string(fieldsJSON),
		"display_fields": string(displayJSON),
	}, nil
}

// parseHashFields hydrates a Note from hash fields.
func parseHashFields(m map[string]string) (domnote.Note, error) {
	id, err := strconv.ParseInt(m["id"], 10, 64)
	if err != nil {
		return domnote.Note{}, fmt.Errorf("parse note id %q: %w", m["id"], err)
	}
	createdAt, _ := strconv.ParseInt(m["created_at"], 10, 64)
	modifiedAt, _ := strconv.ParseInt(m["modified_at"], 10, 64)

	var fieldDTOs []fieldDTO
	if raw := m["fields"]; raw != "" {
		if err := json.Unmarshal([]byte(raw), &fieldDTOs); err != nil {
			return domnote.Note{}, fmt.Errorf("unmarshal fields: %w", err)
		}
	}
	fields := make([]domnote.Field, 0, len(fieldDTOs))
	for _, dto := range fieldDTOs {
		attrs := make(attribute.Set, 0, len(dto.Attributes))
		for k, vs := range dto.Attributes {
			attrs = append(attrs, attribute.Reconstruct(k, vs))
		}
		fields = append(fields, domnote.ReconstructField(
			dto.Name, fieldtype.Type(dto.Type), attrs, dto.Values,
		))
	}

	var displayDTOs []displayFieldDTO
	if raw := m["display_fields"]; raw != "" {
		if err := json.Unmarshal([]byte(raw), &displayDTOs); err != nil {
			return domnote.Note{}, fmt.Errorf("unmarshal display fields: %w", err)
		}
	}
	display := make([]domnote.DisplayField, 0, len(displayDTOs))
	for _, dto := range displayDTOs {
		display = append(display, domnote.ReconstructDisplayField(
			dto.Name, dto.Values, dto.Icon, dto.Order,
		))
	}

	return domnote.Reconstruct(
		id, m["external_id"], m["title"], m["owner"],
		fields, display, createdAt, modifiedAt,
	), nil
}

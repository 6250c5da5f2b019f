package chi

import (
	domnote "github.com/kailas-cloud/notedex/internal/domain/note"
	domidx "github.com/kailas-cloud/notedex/internal/domain/noteindex"
	"github.com/kailas-cloud/notedex/internal/domain/search/facet"
	noteuc "github.com/kailas-cloud/notedex/internal/usecase/note"
)

// Error response codes.
const (
	codeBadRequest       = "bad_request"
	codeValidationFailed = "validation_failed"
	codeNoteNotFound     = "note_not_found"
	codeForbidden        = "forbidden"
	codeInvalidCondition = "invalid_condition"
	codeInternalError    = "internal_error"
)

type errorResponse struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Field   string   `json:"field,omitempty"`
	Reasons []string `json:"reasons,omitempty"`
}

type fieldPayload struct {
	Name       string              `json:"name"`
	Type       string              `json:"type"`
	Attributes map[string][]string `json:"attributes,omitempty"`
	Values     []string            `json:"values,omitempty"`
}

type displayFieldPayload struct {
	Name   string   `json:"name"`
	Values []string `json:"values,omitempty"`
	Icon   string   `json:"icon,omitempty"`
	Order  int      `json:"order"`
}

type noteRequest struct {
	Title         string                `json:"title"`
	Fields        []fieldPayload        `json:"fields,omitempty"`
	DisplayFields []displayFieldPayload `json:"display_fields,omitempty"`
}

type noteResponse struct {
	ID            string                `json:"id"`
	Title         string                `json:"title"`
	Fields        []fieldPayload        `json:"fields,omitempty"`
	DisplayFields []displayFieldPayload `json:"display_fields,omitempty"`
	CreatedAt     int64                 `json:"created_at"`
	ModifiedAt    int64                 `json:"modified_at"`
}

type noteListResponse struct {
	Items   []noteResponse `json:"items"`
	HasNext bool           `json:"has_next"`
}

type indexDisplayFieldPayload struct {
	Name   string   `json:"name"`
	Values []string `json:"values,omitempty"`
	Tag    string   `json:"tag,omitempty"`
	Order  int      `json:"order"`
}

type searchResultItem struct {
	ID            string                     `json:"id"`
	Title         string                     `json:"title"`
	DisplayFields []indexDisplayFieldPayload `json:"display_fields,omitempty"`
	Highlight     string                     `json:"highlight,omitempty"`
	CreatedAt     int64                      `json:"created_at"`
	ModifiedAt    int64                      `json:"modified_at"`
}

type searchListResponse struct {
	Items   []searchResultItem `json:"items"`
	HasNext bool               `json:"has_next"`
}

type dateRangePayload struct {
	Start *int64 `json:"start,omitempty"`
	End   *int64 `json:"end,omitempty"`
}

type filterRequest struct {
	Fields    map[string][]string `json:"fields,omitempty"`
	Created   *dateRangePayload   `json:"created,omitempty"`
	Modified  *dateRangePayload   `json:"modified,omitempty"`
	Highlight string              `json:"highlight,omitempty"`
	Page      int                 `json:"page"`
	Size      int                 `json:"size"`
	Sort      string              `json:"sort,omitempty"`
	Direction string              `json:"direction,omitempty"`
}

type facetItem struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

type facetListResponse struct {
	Items []facetItem `json:"items"`
}

func noteInputFromRequest(req noteRequest) noteuc.NoteInput {
	fields := make([]noteuc.FieldInput, len(req.Fields))
	for i, f := range req.Fields {
		fields[i] = noteuc.FieldInput{
			Name:       f.Name,
			Type:       f.Type,
			Attributes: f.Attributes,
			Values:     f.Values,
		}
	}
	displays := make([]noteuc.DisplayFieldInput, len(req.DisplayFields))
	for i, d := range req.DisplayFields {
		displays[i] = noteuc.DisplayFieldInput{
			Name:   d.Name,
			Values: d.Values,
			Icon:   d.Icon,
			Order:  d.Order,
		}
	}
	return noteuc.NoteInput{
		Title:         req.Title,
		Fields:        fields,
		DisplayFields: displays,
	}
}

func noteToResponse(n domnote.Note) noteResponse {
	fields := make([]fieldPayload, 0, len(n.Fields()))
	for _, f := range n.Fields() {
		attrs := make(map[string][]string)
		for _, a := range f.Attributes() {
			attrs[a.Key()] = a.Values()
		}
		if len(attrs) == 0 {
			attrs = nil
		}
		fields = append(fields, fieldPayload{
			Name:       f.Name(),
			Type:       string(f.Type()),
			Attributes: attrs,
			Values:     f.Values(),
		})
	}

	displays := make([]displayFieldPayload, 0, len(n.DisplayFields()))
	for _, d := range n.DisplayFields() {
		displays = append(displays, displayFieldPayload{
			Name:   d.Name(),
			Values: d.Values(),
			Icon:   d.Icon(),
			Order:  d.Order(),
		})
	}

	return noteResponse{
		ID:            n.ExternalID(),
		Title:         n.Title(),
		Fields:        fields,
		DisplayFields: displays,
		CreatedAt:     n.CreatedAt(),
		ModifiedAt:    n.ModifiedAt(),
	}
}

func indexToResultItem(idx domidx.NoteIndex) searchResultItem {
	displays := make([]indexDisplayFieldPayload, 0, len(idx.DisplayFields()))
	for _, d := range idx.DisplayFields() {
		displays = append(displays, indexDisplayFieldPayload{
			Name:   d.Name,
			Values: d.Values,
			Tag:    d.Tag,
			Order:  d.Order,
		})
	}
	return searchResultItem{
		ID:            idx.ExternalID(),
		Title:         idx.Title(),
		DisplayFields: displays,
		Highlight:     idx.Highlight(),
		CreatedAt:     idx.CreatedAt(),
		ModifiedAt:    idx.ModifiedAt(),
	}
}

func facetsToResponse(facets []facet.Facet) facetListResponse {
	items := make([]facetItem, len(facets))
	for i, f := range facets {
		items[i] = facetItem{Value: f.Value, Count: f.Count}
	}
	return facetListResponse{Items: items}
}

package db

// Highlight configures FT.SEARCH match marking on selected fields.
type Highlight struct {
	Fields   []string
	OpenTag  string
	CloseTag string
}

// SortBy orders FT.SEARCH results on a sortable field.
type SortBy struct {
	Field string
	Desc  bool
}

// SearchQuery is the input for a paginated FT.SEARCH.
type SearchQuery struct {
	IndexName    string
	Query        string
	ReturnFields []string
	Highlight    *Highlight
	SortBy       *SortBy
	Offset       int
	Limit        int
}

// SearchResult is the output of a search operation.
type SearchResult struct {
	Total   int
	Entries []SearchEntry
}

// SearchEntry is a single document hit from a search.
type SearchEntry struct {
	Key    string
	Fields map[string]string
}

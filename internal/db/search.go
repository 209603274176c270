package db

// TagFilter is an exact-match constraint on a TAG field. It restricts
// result membership without affecting the score.
type TagFilter struct {
	Field string
	Value string
}

// TextQuery is the input for full-text search on a single TEXT field.
type TextQuery struct {
	IndexName    string
	Field        string // TEXT field to match against
	Query        string // raw user text, escaped by the driver
	Filters      []TagFilter
	SortBy       string // SORTABLE NUMERIC field; empty = relevance order
	SortDesc     bool
	Limit        int
	ReturnFields []string
}

// KNNQuery is the input for vector similarity search.
type KNNQuery struct {
	IndexName    string
	Vector       []float32
	K            int
	Filters      []TagFilter
	ReturnFields []string
}

// ListQuery is the input for a match-all listing with optional filters.
type ListQuery struct {
	IndexName    string
	Filters      []TagFilter
	SortBy       string
	SortDesc     bool
	Limit        int
	ReturnFields []string
}

// SearchResult is the output of a search operation.
type SearchResult struct {
	Total   int
	Entries []SearchEntry
}

// SearchEntry is a single document hit from a search.
type SearchEntry struct {
	Key    string
	Score  float64
	Fields map[string]string
}

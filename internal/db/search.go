package db

// TagFilter is an exact-match pre-filter on a TAG field.
type TagFilter struct {
	Field string
	Value string
}

// NumericFilter is an inclusive range pre-filter on a NUMERIC field.
// Nil bounds are unbounded.
type NumericFilter struct {
	Field string
	Min   *float64
	Max   *float64
}

// KNNQuery is the input for vector similarity search.
type KNNQuery struct {
	IndexName    string
	Vector       []float32
	K            int
	Tags         []TagFilter
	Numerics     []NumericFilter
	ReturnFields []string
}

// SearchResult is the output of a search operation.
type SearchResult struct {
	Total   int
	Entries []SearchEntry
}

// SearchEntry is a single document hit. Distance is the raw vector distance
// reported by the index, ascending = closer.
type SearchEntry struct {
	Key      string
	Distance float64
	Fields   map[string]string
}

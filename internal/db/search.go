package db

// DefaultMatchSize mirrors the managed index's default page size.
const DefaultMatchSize = 10

// MatchQuery is the input for a single-field match search.
type MatchQuery struct {
	IndexName string
	Field     string
	Value     string
	Size      int
}

// SearchResult is the output of a search operation.
type SearchResult struct {
	Total int
	Hits  []SearchHit
}

// SearchHit is a single document hit. Source holds the stored JSON document.
type SearchHit struct {
	ID     string
	Score  float64
	Source []byte
}

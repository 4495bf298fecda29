package retriever

import "github.com/kalustehaku/server/catalog/products"

// one search hit: the catalog row plus its cosine similarity to the query
type SearchResult struct {
	products.Product
	Similarity float64 `json:"similarity"`
}

// SearchOptions tune one search call. A nil MinSimilarity falls back to
// the configured default; an explicit zero disables the threshold. An
// unset MaxResults falls back likewise.
type SearchOptions struct {
	MinSimilarity *float64
	MaxResults    int

	// metadata attributes the hits must contain, matched with jsonb
	// containment on the server side
	Filters map[string]any
}

// RetrieverConfig holds the search defaults
type RetrieverConfig struct {
	MinSimilarity float64
	MaxResults    int
}

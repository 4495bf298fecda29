package search

import "github.com/kalustehaku/server/internal/retriever"

// SearchRequest is the body of a furniture search call. Filters narrow
// the hits to rows whose metadata contains the given attributes.
// MinSimilarity is a pointer so an explicit zero (no threshold) stays
// distinguishable from an omitted field.
type SearchRequest struct {
	Query         string         `json:"query" binding:"required"`
	MinSimilarity *float64       `json:"minSimilarity"`
	MaxResults    int            `json:"maxResults"`
	Filters       map[string]any `json:"filters"`
}

// SearchResponse wraps the hits for one query
type SearchResponse struct {
	Results []retriever.SearchResult `json:"results"`
	Count   int                      `json:"count"`
	Query   string                   `json:"query"`
}

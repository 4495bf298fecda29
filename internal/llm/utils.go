package llm

import (
	"fmt"
	"strings"

	"github.com/kalustehaku/server/catalog/products"
)

// BuildEmbeddingText concatenates metadata fields into the natural-language
// description the embedding is generated from. The section order is fixed:
// changing it would shift vectors for identical products between runs.
func BuildEmbeddingText(metadata products.Metadata) string {
	return strings.TrimSpace(fmt.Sprintf(`%s

Ominaisuudet: %s
Sopii tiloihin: %s
Käyttötarkoitukset: %s
Kunto: %s`,
		metadata.VisualDescription,
		strings.ToLower(strings.Join(metadata.FunctionalFeatures, ", ")),
		strings.ToLower(strings.Join(metadata.RoomType, ", ")),
		strings.ToLower(strings.Join(metadata.SuitableFor, ", ")),
		metadata.Condition,
	))
}

// BuildSearchTerms flattens metadata into a lowercase keyword string used
// for lexical matching alongside vector search
func BuildSearchTerms(metadata products.Metadata) string {
	terms := []string{metadata.Style}
	terms = append(terms, metadata.Materials...)
	terms = append(terms, metadata.Colors...)
	terms = append(terms, metadata.RoomType...)
	terms = append(terms, metadata.FunctionalFeatures...)
	terms = append(terms, metadata.DesignStyle, metadata.Condition)
	terms = append(terms, metadata.SuitableFor...)

	return strings.ToLower(strings.Join(terms, " "))
}

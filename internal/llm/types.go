package llm

import (
	"context"

	"github.com/kalustehaku/server/catalog/products"
)

// combines product analysis and embedding generation
type LLM interface {
	Analyzer
	Embedder
}

// represents different LLM providers
type Provider string

const ProviderOpenAI Provider = "openai"

// derives structured furniture metadata from a scraped listing
type Analyzer interface {
	AnalyzeProduct(ctx context.Context, product products.ScrapedProduct) (products.Metadata, error)
}

// generates embeddings from text
type Embedder interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
	GenerateEmbeddings(ctx context.Context, texts []string) ([][]float32, error)
}

// holds configuration for LLM initialization
type Config struct {
	// analyzer configuration
	AnalyzerProvider    Provider
	AnalyzerAPIKey      string
	AnalyzerModel       string // e.g., "gpt-4o"
	AnalyzerMaxTokens   int
	AnalyzerTemperature float32

	// embedder configuration
	EmbedderProvider Provider
	EmbedderAPIKey   string
	EmbedderModel    string // e.g., "text-embedding-3-small"
}

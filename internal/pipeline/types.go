package pipeline

import (
	"context"

	"github.com/kalustehaku/server/catalog/products"
)

// Store is the catalog surface the pipeline needs. Satisfied by
// *products.Repository; narrowed here so tests can substitute fakes.
type Store interface {
	FindByKey(ctx context.Context, externalID, company string) (*products.Product, error)
	Upsert(ctx context.Context, params products.UpsertParams) error
	FindMissing(ctx context.Context, company string, isTestData bool, seenIDs []string) ([]products.Product, error)
	DeleteByKey(ctx context.Context, externalID, company string) error
}

// Fetcher is a site adapter bound to its browser environment
type Fetcher interface {
	Company() string
	ParseCategory(rawURL string) string
	Fetch(ctx context.Context, url string) ([]products.ScrapedProduct, error)
}

// Options scope one pipeline run
type Options struct {
	URLs           []string
	ProductsPerURL int
	Company        string
	IsTestData     bool
}

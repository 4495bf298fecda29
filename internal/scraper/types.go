package scraper

import (
	"context"
	"time"

	"github.com/kalustehaku/server/catalog/products"
)

const (
	// per-attempt navigation timeout
	navigationTimeout = 60 * time.Second

	// per-attempt wait for the listing container to render
	selectorTimeout = 30 * time.Second

	// settle time after page-size changes trigger a reload
	stabilizeDelay = 5 * time.Second
)

// Site adapts one e-commerce source: how to fetch its listing pages and
// how its URLs map to category slugs. Both the pipeline and the reconciler
// go through this interface, so category rules live in exactly one place.
type Site interface {
	// company identifier used as the partition key in the catalog
	Company() string

	// derives the category slug a listing URL belongs to
	ParseCategory(rawURL string) string

	// loads url in a browser session and extracts all listings on it,
	// following pagination where the site paginates. Returns whatever
	// partial results were accumulated alongside the error.
	Fetch(ctx context.Context, env *Env, url string) ([]products.ScrapedProduct, error)
}

// Env carries browser and retry configuration shared by all site adapters
type Env struct {
	ChromePath string
	Headless   bool
	Retry      RetryPolicy
}

// raw per-card fields pulled out of the page by the extraction script.
// Every field is best-effort: a selector miss leaves the string empty
// instead of failing the card.
type rawListing struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	Price        string `json:"price"`
	Condition    string `json:"condition"`
	ImageURL     string `json:"imageUrl"`
	Availability string `json:"availability"`
	ProductURL   string `json:"productUrl"`
	Used         bool   `json:"used"`
	NextURL      string `json:"nextUrl"`
}

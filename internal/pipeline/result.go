package pipeline

import (
	"sync"

	"github.com/kalustehaku/server/catalog/products"
)

// per-product outcomes
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionFailed  = "failed"
	ActionDeleted = "deleted"
)

type Outcome struct {
	ExternalID string `json:"id"`
	Name       string `json:"name"`
	Action     string `json:"action"`
	Error      string `json:"error,omitempty"`
}

// Summary aggregates one run at the scraping level
type Summary struct {
	TotalProcessed int      `json:"totalProcessed"`
	Successful     int      `json:"successful"`
	Failed         int      `json:"failed"`
	Errors         []string `json:"errors"`
}

// Result accumulates outcomes across concurrent URL and product tasks.
// All record methods are safe for concurrent use.
type Result struct {
	mu sync.Mutex

	Scraping Summary   `json:"scraping"`
	Products []Outcome `json:"products"`

	// every listing the run scraped, kept for the reconciliation pass
	scraped []products.ScrapedProduct

	// listing pages that failed to fetch, even partially. Any non-zero
	// count blocks the reconciliation pass.
	pageErrors int
}

func newResult() *Result {
	return &Result{
		Scraping: Summary{Errors: []string{}},
		Products: []Outcome{},
	}
}

func (r *Result) recordSuccess(externalID, name, action string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.Scraping.TotalProcessed++
	r.Scraping.Successful++
	r.Products = append(r.Products, Outcome{
		ExternalID: externalID,
		Name:       name,
		Action:     action,
	})
}

func (r *Result) recordFailure(externalID, name string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.Scraping.TotalProcessed++
	r.Scraping.Failed++
	r.Scraping.Errors = append(r.Scraping.Errors, err.Error())
	r.Products = append(r.Products, Outcome{
		ExternalID: externalID,
		Name:       name,
		Action:     ActionFailed,
		Error:      err.Error(),
	})
}

// recordPageError notes a listing page that could not be fetched without
// attributing the failure to any single product
func (r *Result) recordPageError(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.pageErrors++
	r.Scraping.Errors = append(r.Scraping.Errors, err.Error())
}

// recordSyncError notes a reconciliation problem
func (r *Result) recordSyncError(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.Scraping.Errors = append(r.Scraping.Errors, err.Error())
}

func (r *Result) pageErrorCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.pageErrors
}

func (r *Result) recordScraped(listings []products.ScrapedProduct) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.scraped = append(r.scraped, listings...)
}

// Scraped returns the listings the run extracted across all URLs
func (r *Result) Scraped() []products.ScrapedProduct {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]products.ScrapedProduct, len(r.scraped))
	copy(out, r.scraped)

	return out
}

// SyncResult extends a pipeline result with the rows the reconciliation
// pass removed from the catalog
type SyncResult struct {
	*Result
	RemovedProducts []Outcome `json:"removedProducts"`
}

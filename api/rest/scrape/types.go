package scrape

import "github.com/kalustehaku/server/internal/jobs"

// ScrapeRequest triggers a scrape run. An empty company means every
// registered company; explicit URLs are only valid with a single one.
type ScrapeRequest struct {
	Company        string   `json:"company"`
	URLs           []string `json:"urls"`
	ProductsPerURL int      `json:"productsPerUrl"`
	IsTestData     bool     `json:"isTestData"`
}

// RunResponse carries the per-company reports of a finished run
type RunResponse struct {
	Reports []jobs.CompanyReport `json:"reports"`
}

package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/kalustehaku/server/catalog/products"
	"github.com/kalustehaku/server/internal/llm"
	"github.com/kalustehaku/server/internal/logger"
	"github.com/pgvector/pgvector-go"
)

// concurrency bounds for one run. URLs each hold a browser session, so
// their bound stays low; product enrichment is HTTP-only and fans out
// wider within each URL task.
const (
	MaxConcurrentURLs     = 3
	MaxConcurrentProducts = 5
)

// Pipeline runs the scrape, enrich and persist flow for one site
type Pipeline struct {
	store Store
	model llm.LLM
	site  Fetcher
}

func New(store Store, model llm.LLM, site Fetcher) *Pipeline {
	return &Pipeline{
		store: store,
		model: model,
		site:  site,
	}
}

// Run scrapes every listing URL, enriches new products and upserts all of
// them. Failures are isolated per product and per page: one bad listing
// never aborts the run, it is recorded and the rest proceeds.
func (p *Pipeline) Run(ctx context.Context, opts Options) (*Result, error) {
	if len(opts.URLs) == 0 {
		return nil, fmt.Errorf("no listing URLs given for %s", p.site.Company())
	}

	logger.Info("starting pipeline run",
		"company", p.site.Company(),
		"urls", len(opts.URLs),
		"test_data", opts.IsTestData,
	)

	result := newResult()

	var wg sync.WaitGroup

	sem := make(chan struct{}, MaxConcurrentURLs)

	for _, url := range opts.URLs {
		wg.Add(1)

		go func(url string) {
			defer wg.Done()

			sem <- struct{}{}
			defer func() { <-sem }()

			p.processURL(ctx, url, opts, result)
		}(url)
	}

	wg.Wait()

	logger.Info("pipeline run finished",
		"company", p.site.Company(),
		"processed", result.Scraping.TotalProcessed,
		"successful", result.Scraping.Successful,
		"failed", result.Scraping.Failed,
	)

	return result, nil
}

func (p *Pipeline) processURL(ctx context.Context, url string, opts Options, result *Result) {
	scraped, err := p.site.Fetch(ctx, url)
	if err != nil {
		result.recordPageError(fmt.Errorf("scraping %s: %w", url, err))

		// partial pages still yield products worth keeping
		if len(scraped) == 0 {
			return
		}
	}

	if opts.ProductsPerURL > 0 && len(scraped) > opts.ProductsPerURL {
		scraped = scraped[:opts.ProductsPerURL]
	}

	result.recordScraped(scraped)

	var wg sync.WaitGroup

	sem := make(chan struct{}, MaxConcurrentProducts)

	for _, product := range scraped {
		wg.Add(1)

		go func(product products.ScrapedProduct) {
			defer wg.Done()

			sem <- struct{}{}
			defer func() { <-sem }()

			p.processProduct(ctx, product, opts, result)
		}(product)
	}

	wg.Wait()
}

// processProduct persists one scraped listing. Known products skip
// enrichment entirely: their stored metadata and search terms carry
// forward and the upsert refreshes only the scraped columns.
func (p *Pipeline) processProduct(ctx context.Context, product products.ScrapedProduct, opts Options, result *Result) {
	existing, err := p.store.FindByKey(ctx, product.ExternalID, product.Company)
	if err != nil && !errors.Is(err, products.ErrProductNotFound) {
		result.recordFailure(product.ExternalID, product.Name, fmt.Errorf("lookup failed: %w", err))
		return
	}

	if existing != nil {
		params := products.UpsertParams{
			ScrapedProduct: product,
			Metadata:       existing.Metadata,
			SearchTerms:    existing.SearchTerms,
			IsTestData:     opts.IsTestData,
		}

		if err := p.store.Upsert(ctx, params); err != nil {
			result.recordFailure(product.ExternalID, product.Name, fmt.Errorf("update failed: %w", err))
			return
		}

		result.recordSuccess(product.ExternalID, product.Name, ActionUpdated)

		return
	}

	metadata, err := p.model.AnalyzeProduct(ctx, product)
	if err != nil {
		if !errors.Is(err, llm.ErrAnalysisRefused) {
			result.recordFailure(product.ExternalID, product.Name, fmt.Errorf("analysis failed: %w", err))
			return
		}

		logger.Warn("analysis refused, storing with default metadata",
			"external_id", product.ExternalID,
			"company", product.Company,
			"error", err,
		)

		metadata = products.DefaultMetadata()
	}

	params := products.UpsertParams{
		ScrapedProduct: product,
		Metadata:       metadata,
		SearchTerms:    llm.BuildSearchTerms(metadata),
		IsTestData:     opts.IsTestData,
	}

	// a failed embedding is not fatal: the row is stored without a vector
	// and stays reachable through the plain listing endpoints
	if embedding, err := p.model.GenerateEmbedding(ctx, llm.BuildEmbeddingText(metadata)); err != nil {
		logger.Warn("embedding generation failed, storing without vector",
			"external_id", product.ExternalID,
			"company", product.Company,
			"error", err,
		)
	} else {
		vec := pgvector.NewVector(embedding)
		params.Embedding = &vec
	}

	if err := p.store.Upsert(ctx, params); err != nil {
		result.recordFailure(product.ExternalID, product.Name, fmt.Errorf("insert failed: %w", err))
		return
	}

	result.recordSuccess(product.ExternalID, product.Name, ActionCreated)
}

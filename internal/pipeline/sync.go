package pipeline

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/kalustehaku/server/internal/logger"
	"github.com/kalustehaku/server/internal/scraper"
)

// RunWithSync runs the pipeline and then reconciles the catalog against
// what the run observed: rows whose external id no longer appears on the
// site are deleted. Deletion is gated twice: any listing page that failed
// to fetch, even after yielding partial results, blocks removal, and so
// does a category the run never observed. A run that silently lost a
// whole category or half its pages can never wipe those rows.
func (p *Pipeline) RunWithSync(ctx context.Context, opts Options) (*SyncResult, error) {
	result, err := p.Run(ctx, opts)
	if err != nil {
		return nil, err
	}

	syncResult := &SyncResult{
		Result:          result,
		RemovedProducts: []Outcome{},
	}

	p.reconcile(ctx, opts, syncResult)

	return syncResult, nil
}

func (p *Pipeline) reconcile(ctx context.Context, opts Options, syncResult *SyncResult) {
	// a partially fetched page still registers its category as observed,
	// so the completeness gate alone would pass while the unreached pages
	// look delisted
	if count := syncResult.pageErrorCount(); count > 0 {
		logger.Warn("skipping product removal, listing pages failed during the run",
			"company", p.site.Company(),
			"failed_pages", count,
		)

		return
	}

	scraped := syncResult.Scraped()

	// categories the URL list promises versus categories the scrape
	// actually delivered, both in canonical form
	expected := make(map[string]bool)
	for _, url := range opts.URLs {
		expected[scraper.NormalizeCategory(p.site.ParseCategory(url))] = true
	}

	observed := make(map[string]bool)
	for _, product := range scraped {
		observed[scraper.NormalizeCategory(product.Category)] = true
	}

	var missing []string

	for category := range expected {
		if !observed[category] {
			missing = append(missing, category)
		}
	}

	if len(missing) > 0 {
		sort.Strings(missing)

		logger.Warn("skipping product removal, scrape did not cover all categories",
			"company", p.site.Company(),
			"missing_categories", missing,
		)
		syncResult.recordSyncError(fmt.Errorf("missing categories: %s", strings.Join(missing, ", ")))

		return
	}

	seenIDs := make([]string, 0, len(scraped))
	for _, product := range scraped {
		seenIDs = append(seenIDs, product.ExternalID)
	}

	stale, err := p.store.FindMissing(ctx, p.site.Company(), opts.IsTestData, seenIDs)
	if err != nil {
		syncResult.recordSyncError(fmt.Errorf("finding removed products: %w", err))
		return
	}

	if len(stale) == 0 {
		logger.Info("no products to remove", "company", p.site.Company())
		return
	}

	// best effort per row so one failed delete does not keep the other
	// stale rows in the catalog
	for _, product := range stale {
		if err := p.store.DeleteByKey(ctx, product.ExternalID, product.Company); err != nil {
			syncResult.recordSyncError(fmt.Errorf("removing %s: %w", product.ExternalID, err))
			continue
		}

		syncResult.RemovedProducts = append(syncResult.RemovedProducts, Outcome{
			ExternalID: product.ExternalID,
			Name:       product.Name,
			Action:     ActionDeleted,
		})
	}

	logger.Info("removed unavailable products",
		"company", p.site.Company(),
		"removed", len(syncResult.RemovedProducts),
	)
}

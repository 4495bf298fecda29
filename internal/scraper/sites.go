package scraper

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/kalustehaku/server/catalog/products"
)

// company identifiers, also used as the partition key in the catalog
const (
	CompanyTavaraTrading = "Tavara-Trading"
	CompanyOffiStore     = "OffiStore"
)

var siteRegistry = map[string]Site{
	CompanyTavaraTrading: &TavaraTradingSite{},
	CompanyOffiStore:     &OffiStoreSite{},
}

// listing pages a scheduled run visits when no explicit URL list is given
var defaultListingURLs = map[string][]string{
	CompanyOffiStore: {
		"https://offistore.fi/verkkokauppa/fin/poydat-73",
		"https://offistore.fi/verkkokauppa/fin/tuolit-78",
		"https://offistore.fi/verkkokauppa/fin/sailytyskalusteet-84",
		"https://offistore.fi/verkkokauppa/fin/aulakalusteet-93",
		"https://offistore.fi/verkkokauppa/fin/valaisimet-113",
	},
	CompanyTavaraTrading: {},
}

// DefaultListingURLs returns the standing listing pages for a company.
// An empty list means the company has no scheduled categories and only
// runs when URLs are supplied explicitly.
func DefaultListingURLs(company string) []string {
	urls := defaultListingURLs[company]

	out := make([]string, len(urls))
	copy(out, urls)

	return out
}

// LookupSite returns the adapter registered for a company identifier
func LookupSite(company string) (Site, error) {
	site, ok := siteRegistry[company]
	if !ok {
		return nil, fmt.Errorf("no scraper registered for company %q", company)
	}

	return site, nil
}

// Companies lists all registered company identifiers
func Companies() []string {
	names := make([]string, 0, len(siteRegistry))
	for name := range siteRegistry {
		names = append(names, name)
	}

	return names
}

// BoundSite pairs a site adapter with its browser environment so callers
// can fetch without carrying Env around.
type BoundSite struct {
	Site
	env *Env
}

// Bind fixes a site adapter to a browser environment
func Bind(site Site, env *Env) *BoundSite {
	return &BoundSite{Site: site, env: env}
}

func (b *BoundSite) Fetch(ctx context.Context, url string) ([]products.ScrapedProduct, error) {
	return b.Site.Fetch(ctx, b.env, url)
}

var hyphenRunRe = regexp.MustCompile(`-+`)

// NormalizeCategory reduces a category slug to its canonical form so slugs
// from URLs and slugs observed on product cards compare equal. The rule:
// case-fold, drop the "kaytetyt-" (used-goods) prefix, collapse hyphen
// runs, and keep only the first hyphen segment. "kaytetyt-sohvat-
// nojatuolit-ja-rahit" and "sohvat-nojatuolit-penkit-ja-rahit" both reduce
// to "sohvat". Both the pipeline and the reconciler's completeness check
// depend on this reduction, so it lives here and nowhere else.
func NormalizeCategory(category string) string {
	slug := strings.ToLower(strings.TrimSpace(category))
	slug = strings.TrimPrefix(slug, "kaytetyt-")
	slug = hyphenRunRe.ReplaceAllString(slug, "-")
	slug = strings.ReplaceAll(slug, "-ja-", "-")

	first, _, _ := strings.Cut(slug, "-")

	return first
}

package scraper

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/chromedp/chromedp"
	"github.com/kalustehaku/server/catalog/products"
	"github.com/kalustehaku/server/internal/logger"
)

// OffiStoreSite scrapes offistore.fi webshop listings. Unlike
// Tavara-Trading the shop paginates, so Fetch walks rel="next" links with
// a visited set guarding against pagination loops.
type OffiStoreSite struct{}

func (s *OffiStoreSite) Company() string { return CompanyOffiStore }

var offistoreCategoryRe = regexp.MustCompile(`/fin/([^/?]+)`)

// ParseCategory pulls the slug following the /fin/ path segment
// ("https://offistore.fi/verkkokauppa/fin/poydat-73" -> "poydat-73")
func (s *OffiStoreSite) ParseCategory(rawURL string) string {
	match := offistoreCategoryRe.FindStringSubmatch(rawURL)
	if match == nil {
		return rawURL
	}

	return match[1]
}

// extraction script: one object per product card, plus the rel="next"
// pagination link carried on the first element
const offistoreExtractScript = `(() => {
	const base = 'https://offistore.fi';
	const abs = (u) => u ? (u.startsWith('http') ? u : base + u) : '';
	const text = (el, sel) => {
		const n = el.querySelector(sel);
		return n ? (n.textContent || '').trim() : '';
	};
	const attr = (el, sel, name) => {
		const n = el.querySelector(sel);
		return n ? (n.getAttribute(name) || '') : '';
	};

	const nextUrl = abs(attr(document, "li.page-item a[rel='next']", 'href'));

	const out = [];
	for (const card of document.querySelectorAll('.product.card')) {
		out.push({
			id: '',
			name: text(card, 'h4 a'),
			description: text(card, '.card-body small.font-weight-medium') || text(card, 'small.var'),
			price: text(card, '.h5'),
			condition: '',
			used: true,
			imageUrl: abs(attr(card, '.card-image img', 'src')),
			availability: text(card, '.text-sm.d-flex.row .col-auto.col-sm-4.col-md-3'),
			productUrl: abs(attr(card, 'h4 a', 'href')),
			nextUrl: nextUrl
		});
	}

	if (out.length === 0) {
		out.push({ id: '', name: '', nextUrl: nextUrl });
	}
	return out;
})()`

// derives the site-local product id from a product URL of the form
// ".../tuote-p-12345-jotain"
func offistoreProductID(productURL string) string {
	_, after, found := strings.Cut(productURL, "-p-")
	if !found {
		return ""
	}

	id, _, _ := strings.Cut(after, "-")

	return id
}

func (s *OffiStoreSite) Fetch(ctx context.Context, env *Env, pageURL string) ([]products.ScrapedProduct, error) {
	browser, err := newBrowser(ctx, env)
	if err != nil {
		return nil, err
	}
	defer browser.Close()

	category := lastPathSegment(pageURL)
	visited := make(map[string]bool)

	var collected []products.ScrapedProduct

	current := pageURL

	for current != "" && !visited[current] {
		visited[current] = true

		var raws []rawListing

		load := func(context.Context) error {
			if err := browser.Run(navigationTimeout, chromedp.Navigate(current)); err != nil {
				return fmt.Errorf("navigation to %s failed: %w", current, err)
			}

			if err := browser.Run(selectorTimeout, chromedp.WaitReady("body", chromedp.ByQuery)); err != nil {
				return fmt.Errorf("page did not render: %w", err)
			}

			raws = raws[:0]
			if err := browser.Run(selectorTimeout, chromedp.Evaluate(offistoreExtractScript, &raws)); err != nil {
				return fmt.Errorf("extraction failed: %w", err)
			}

			return nil
		}

		recoverSession := func(context.Context, error) error {
			return browser.Restart()
		}

		if err := env.Retry.Do(ctx, load, recoverSession); err != nil {
			// partial results beat losing the whole category on one bad page
			return collected, err
		}

		next := ""

		for _, raw := range raws {
			if raw.NextURL != "" {
				next = raw.NextURL
			}

			raw.ID = offistoreProductID(raw.ProductURL)
			raw.Condition = "Käytetty"

			if p := newScrapedProduct(raw, category, s.Company()); p != nil {
				collected = append(collected, *p)
			}
		}

		current = next
	}

	logger.Info("scraped listing pages",
		"company", s.Company(),
		"url", pageURL,
		"pages", len(visited),
		"products", len(collected),
	)

	return collected, nil
}

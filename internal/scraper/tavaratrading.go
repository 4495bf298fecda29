package scraper

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/chromedp/chromedp"
	"github.com/kalustehaku/server/catalog/products"
	"github.com/kalustehaku/server/internal/logger"
)

// TavaraTradingSite scrapes tavaratrading.com used-office-furniture
// listings. The site renders every product on one page once the
// items-per-page selector is set to "all", so there is no pagination to
// follow. The reload that selection triggers is where sessions tend to
// die, hence the recovery path re-runs the whole setup.
type TavaraTradingSite struct{}

func (s *TavaraTradingSite) Company() string { return CompanyTavaraTrading }

// ParseCategory maps a listing URL to its category slug. Used-goods pages
// carry a "kaytetyt-" path segment; top-level category pages keep the slug
// in the second-to-last position (".../13/sohvat-nojatuolit-penkit-ja-rahit").
func (s *TavaraTradingSite) ParseCategory(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}

	parts := strings.Split(strings.Trim(parsed.Path, "/"), "/")

	for _, part := range parts {
		if strings.HasPrefix(part, "kaytetyt-") {
			return strings.TrimPrefix(part, "kaytetyt-")
		}
	}

	if len(parts) >= 2 {
		return parts[len(parts)-1]
	}

	return ""
}

// extraction script for listing cards. Field misses degrade to empty
// strings, never abort the card.
const tavaraExtractScript = `(() => {
	const base = 'https://www.tavaratrading.com';
	const abs = (u) => u ? (u.startsWith('http') ? u : base + u) : '';
	const text = (el, sel) => {
		const n = el.querySelector(sel);
		return n ? (n.textContent || '').trim() : '';
	};
	const attr = (el, sel, name) => {
		const n = el.querySelector(sel);
		return n ? (n.getAttribute(name) || '') : '';
	};

	const out = [];
	for (const card of document.querySelectorAll('.product_list_wrapper .listatuote')) {
		out.push({
			id: attr(card, '.kuva a', 'name').replace('product_', ''),
			name: text(card, '.nimi a'),
			description: text(card, '.subtitle'),
			price: text(card, '.price_out'),
			condition: text(card, '.kunto'),
			used: card.querySelector('.kunto.used') !== null,
			imageUrl: abs(attr(card, '.kuva img', 'data-src') || attr(card, '.kuva img', 'src')),
			availability: text(card, '.availability p'),
			productUrl: abs(attr(card, '.nimi a', 'href')),
			nextUrl: ''
		});
	}
	return out;
})()`

func (s *TavaraTradingSite) Fetch(ctx context.Context, env *Env, pageURL string) ([]products.ScrapedProduct, error) {
	browser, err := newBrowser(ctx, env)
	if err != nil {
		return nil, err
	}
	defer browser.Close()

	category := lastPathSegment(pageURL)

	// navigate and switch the page size to "all"; the selection triggers a
	// full reload so the page needs time to settle afterwards
	setup := func(context.Context) error {
		if err := browser.Run(navigationTimeout, chromedp.Navigate(pageURL)); err != nil {
			return fmt.Errorf("navigation to %s failed: %w", pageURL, err)
		}

		if err := browser.Run(selectorTimeout, chromedp.WaitVisible("#items_per_page", chromedp.ByID)); err != nil {
			return fmt.Errorf("listing page did not render: %w", err)
		}

		return browser.Run(navigationTimeout,
			chromedp.SetValue("#items_per_page", "all", chromedp.ByID),
			chromedp.WaitVisible(".product_list_wrapper .listatuote", chromedp.ByQuery),
			chromedp.Sleep(stabilizeDelay),
		)
	}

	// full recovery: fresh Chrome process, then the setup flow again
	recoverSession := func(ctx context.Context, cause error) error {
		if err := browser.Restart(); err != nil {
			return err
		}

		return setup(ctx)
	}

	if err := env.Retry.Do(ctx, setup, func(context.Context, error) error { return browser.Restart() }); err != nil {
		return nil, err
	}

	var collected []products.ScrapedProduct

	extract := func(context.Context) error {
		var raws []rawListing
		if err := browser.Run(selectorTimeout, chromedp.Evaluate(tavaraExtractScript, &raws)); err != nil {
			return fmt.Errorf("extraction failed: %w", err)
		}

		if len(raws) == 0 {
			return fmt.Errorf("no products found on page")
		}

		collected = collected[:0]

		for _, raw := range raws {
			// only used items belong in the catalog
			if !raw.Used {
				continue
			}

			// thumbnails have a full-resolution variant at a fixed path
			raw.ImageURL = strings.Replace(raw.ImageURL, "/images_thumb/", "/images_thumb_big/", 1)

			if p := newScrapedProduct(raw, category, s.Company()); p != nil {
				collected = append(collected, *p)
			}
		}

		return nil
	}

	if err := env.Retry.Do(ctx, extract, recoverSession); err != nil {
		// hand back whatever was accumulated rather than losing the page
		return collected, err
	}

	logger.Info("scraped listing page",
		"company", s.Company(),
		"url", pageURL,
		"products", len(collected),
	)

	return collected, nil
}

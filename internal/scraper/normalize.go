package scraper

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/kalustehaku/server/catalog/products"
)

// ParsePrice turns a scraped price string into a numeric value.
// Finnish listings use comma decimals with spaces or dots as thousands
// separators plus currency/VAT suffixes ("1 234,50 €", "Alk. 95,00 + alv").
// Input without digits yields nil, never an error.
func ParsePrice(text string) *float64 {
	cleaned := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == ',' || r == '.' {
			return r
		}

		return -1
	}, text)

	if cleaned == "" {
		return nil
	}

	// comma and dot both present means dots are thousands separators
	if strings.Contains(cleaned, ",") && strings.Contains(cleaned, ".") {
		cleaned = strings.ReplaceAll(cleaned, ".", "")
	}

	cleaned = strings.ReplaceAll(cleaned, ",", ".")

	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return nil
	}

	return &value
}

// CleanText collapses whitespace runs and trims the result
func CleanText(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// optionalText returns nil for empty strings so missing fields persist as
// NULL instead of ""
func optionalText(text string) *string {
	cleaned := CleanText(text)
	if cleaned == "" {
		return nil
	}

	return &cleaned
}

// AbsoluteURL resolves href against base when the page hands back a
// relative link
func AbsoluteURL(base, href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}

	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}

	baseURL, err := url.Parse(base)
	if err != nil {
		return href
	}

	ref, err := url.Parse(href)
	if err != nil {
		return href
	}

	return baseURL.ResolveReference(ref).String()
}

// lastPathSegment returns the final non-empty path element of a URL,
// which both sites use as the listing page's category slug
func lastPathSegment(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}

	parts := strings.Split(strings.Trim(parsed.Path, "/"), "/")
	if len(parts) == 0 {
		return ""
	}

	return parts[len(parts)-1]
}

// newScrapedProduct builds the canonical record from raw card fields.
// Returns nil when the record lacks an external id or name: such rows
// cannot be keyed and are dropped here, before they reach the pipeline.
func newScrapedProduct(raw rawListing, category, company string) *products.ScrapedProduct {
	id := CleanText(raw.ID)
	name := CleanText(raw.Name)

	if id == "" || name == "" {
		return nil
	}

	return &products.ScrapedProduct{
		ExternalID:   id,
		Name:         name,
		Description:  optionalText(raw.Description),
		Price:        ParsePrice(raw.Price),
		Condition:    CleanText(raw.Condition),
		ImageURL:     strings.TrimSpace(raw.ImageURL),
		Category:     category,
		Availability: CleanText(raw.Availability),
		ProductURL:   strings.TrimSpace(raw.ProductURL),
		Company:      company,
	}
}

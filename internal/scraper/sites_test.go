package scraper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeCategory(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"kaytetyt-sohvat-nojatuolit-ja-rahit", "sohvat"},
		{"Kaytetyt-Sohvat-Nojatuolit-Ja-Rahit", "sohvat"},
		{"sohvat-nojatuolit-penkit-ja-rahit", "sohvat"},
		{"tuolit-78", "tuolit"},
		{"  Poydat-73 ", "poydat"},
		{"sailytyskalusteet", "sailytyskalusteet"},
		{"valaisimet--113", "valaisimet"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeCategory(tt.input), "input %q", tt.input)
	}
}

func TestNormalizeCategory_UrlAndCardSlugsAgree(t *testing.T) {
	// the completeness gate compares slugs from listing URLs against
	// slugs recorded on scraped products; both paths must reduce equal
	urlSlug := NormalizeCategory("kaytetyt-tyotuolit-ja-satulatuolit")
	cardSlug := NormalizeCategory("tyotuolit-satulatuolit")

	assert.Equal(t, urlSlug, cardSlug)
}

func TestTavaraTradingParseCategory(t *testing.T) {
	site := &TavaraTradingSite{}

	got := site.ParseCategory("https://www.tavaratrading.com/13/kaytetyt-tyotuolit/")
	assert.Equal(t, "tyotuolit", got)

	got = site.ParseCategory("https://www.tavaratrading.com/13/sohvat-nojatuolit-penkit-ja-rahit")
	assert.Equal(t, "sohvat-nojatuolit-penkit-ja-rahit", got)
}

func TestOffiStoreParseCategory(t *testing.T) {
	site := &OffiStoreSite{}

	got := site.ParseCategory("https://offistore.fi/verkkokauppa/fin/poydat-73")
	assert.Equal(t, "poydat-73", got)

	got = site.ParseCategory("https://offistore.fi/verkkokauppa/fin/tuolit-78?page=2")
	assert.Equal(t, "tuolit-78", got)

	// unknown shapes fall back to the raw URL
	got = site.ParseCategory("https://offistore.fi/jotain-muuta")
	assert.Equal(t, "https://offistore.fi/jotain-muuta", got)
}

func TestOffistoreProductID(t *testing.T) {
	assert.Equal(t, "12345", offistoreProductID("https://offistore.fi/verkkokauppa/fin/tyotuoli-p-12345-martela"))
	assert.Equal(t, "987", offistoreProductID("https://offistore.fi/tuote-p-987-x"))
	assert.Equal(t, "", offistoreProductID("https://offistore.fi/tuote-ilman-tunnusta"))
}

func TestLookupSite(t *testing.T) {
	site, err := LookupSite(CompanyTavaraTrading)
	require.NoError(t, err)
	assert.Equal(t, CompanyTavaraTrading, site.Company())

	_, err = LookupSite("Tuntematon")
	assert.Error(t, err)
}

func TestCompanies(t *testing.T) {
	companies := Companies()

	assert.Len(t, companies, 2)
	assert.Contains(t, companies, CompanyTavaraTrading)
	assert.Contains(t, companies, CompanyOffiStore)
}

func TestDefaultListingURLs(t *testing.T) {
	urls := DefaultListingURLs(CompanyOffiStore)
	assert.NotEmpty(t, urls)

	// callers must not be able to mutate the registry
	urls[0] = "mutated"
	assert.NotEqual(t, "mutated", DefaultListingURLs(CompanyOffiStore)[0])
}

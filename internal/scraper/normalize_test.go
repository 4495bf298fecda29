package scraper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePrice(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  float64
		none  bool
	}{
		{name: "plain euros", input: "95 €", want: 95},
		{name: "comma decimal", input: "129,50 €", want: 129.5},
		{name: "thousands dot with comma decimal", input: "1.234,50 €", want: 1234.5},
		{name: "space thousands separator", input: "1 234,50 €", want: 1234.5},
		{name: "vat suffix", input: "Alk. 95,00 + alv", want: 95},
		{name: "dot decimal", input: "49.90", want: 49.9},
		{name: "no digits", input: "Kysy hintaa", none: true},
		{name: "empty", input: "", none: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParsePrice(tt.input)

			if tt.none {
				assert.Nil(t, got)
				return
			}

			require.NotNil(t, got)
			assert.InDelta(t, tt.want, *got, 0.001)
		})
	}
}

func TestCleanText(t *testing.T) {
	assert.Equal(t, "foo bar", CleanText("  foo\n\t bar  "))
	assert.Equal(t, "", CleanText("   "))
}

func TestAbsoluteURL(t *testing.T) {
	base := "https://offistore.fi/verkkokauppa/fin/poydat-73"

	assert.Equal(t, "https://offistore.fi/kuva.jpg", AbsoluteURL(base, "/kuva.jpg"))
	assert.Equal(t, "https://example.com/x", AbsoluteURL(base, "https://example.com/x"))
	assert.Equal(t, "", AbsoluteURL(base, "  "))
}

func TestNewScrapedProduct(t *testing.T) {
	raw := rawListing{
		ID:          " 1234 ",
		Name:        "Työtuoli  Martela ",
		Description: "",
		Price:       "129,50 €",
		Condition:   "Käytetty",
		ImageURL:    " https://example.com/img.jpg ",
	}

	p := newScrapedProduct(raw, "tuolit", CompanyOffiStore)

	require.NotNil(t, p)
	assert.Equal(t, "1234", p.ExternalID)
	assert.Equal(t, "Työtuoli Martela", p.Name)
	assert.Nil(t, p.Description, "empty description stays NULL")
	require.NotNil(t, p.Price)
	assert.InDelta(t, 129.5, *p.Price, 0.001)
	assert.Equal(t, "https://example.com/img.jpg", p.ImageURL)
	assert.Equal(t, "tuolit", p.Category)
	assert.Equal(t, CompanyOffiStore, p.Company)
}

func TestNewScrapedProduct_DropsUnkeyedRows(t *testing.T) {
	assert.Nil(t, newScrapedProduct(rawListing{ID: "", Name: "Tuoli"}, "tuolit", CompanyOffiStore))
	assert.Nil(t, newScrapedProduct(rawListing{ID: "123", Name: "  "}, "tuolit", CompanyOffiStore))
}

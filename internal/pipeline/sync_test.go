package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/kalustehaku/server/catalog/products"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunWithSync_RemovesDelistedProducts(t *testing.T) {
	store := newFakeStore()
	store.missing = []products.Product{
		{ExternalID: "99", Name: "Poistunut tuoli", Company: "Testi"},
		{ExternalID: "100", Name: "Poistunut pöytä", Company: "Testi"},
	}

	fetcher := &fakeFetcher{
		company: "Testi",
		listings: map[string][]products.ScrapedProduct{
			"tuolit": {listing("1", "tuolit"), listing("2", "tuolit")},
		},
	}

	result, err := New(store, &fakeLLM{}, fetcher).RunWithSync(context.Background(), Options{
		URLs: []string{"tuolit"},
	})

	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"1", "2"}, store.findMissingSeenIDs)
	assert.ElementsMatch(t, []string{"Testi/99", "Testi/100"}, store.deleted)

	require.Len(t, result.RemovedProducts, 2)
	for _, removed := range result.RemovedProducts {
		assert.Equal(t, ActionDeleted, removed.Action)
	}
}

func TestRunWithSync_SkipsRemovalWhenCategoryMissing(t *testing.T) {
	store := newFakeStore()
	store.missing = []products.Product{
		{ExternalID: "99", Name: "Poistunut tuoli", Company: "Testi"},
	}

	// the poydat listing page yields nothing, so the run did not cover
	// every category the URL list promised
	fetcher := &fakeFetcher{
		company: "Testi",
		listings: map[string][]products.ScrapedProduct{
			"tuolit": {listing("1", "tuolit")},
			"poydat": nil,
		},
	}

	result, err := New(store, &fakeLLM{}, fetcher).RunWithSync(context.Background(), Options{
		URLs: []string{"tuolit", "poydat"},
	})

	require.NoError(t, err)
	assert.Empty(t, store.deleted, "incomplete scrapes never delete")
	assert.Empty(t, result.RemovedProducts)

	require.NotEmpty(t, result.Scraping.Errors)
	assert.Contains(t, result.Scraping.Errors[len(result.Scraping.Errors)-1], "missing categories: poydat")
}

func TestRunWithSync_SkipsRemovalAfterPartialPageFetch(t *testing.T) {
	store := newFakeStore()
	store.missing = []products.Product{
		{ExternalID: "2", Name: "Sivun 2 tuoli", Company: "Testi"},
	}

	// pagination died after the first page: the category is observed, so
	// the completeness gate alone would let the unreached rows be deleted
	fetcher := &fakeFetcher{
		company: "Testi",
		listings: map[string][]products.ScrapedProduct{
			"tuolit": {listing("1", "tuolit")},
		},
		errFor: map[string]error{
			"tuolit": errors.New("navigating to page 2: target closed"),
		},
	}

	result, err := New(store, &fakeLLM{}, fetcher).RunWithSync(context.Background(), Options{
		URLs: []string{"tuolit"},
	})

	require.NoError(t, err)
	assert.Empty(t, store.deleted, "partial fetches never delete")
	assert.Empty(t, result.RemovedProducts)
	assert.Nil(t, store.findMissingSeenIDs, "stale rows are not even looked up")

	// the partial page's products were still persisted
	require.Len(t, store.upserts, 1)
}

func TestRunWithSync_EmptyScrapeNeverWipesCatalog(t *testing.T) {
	store := newFakeStore()
	store.missing = []products.Product{
		{ExternalID: "99", Name: "Ainoa tuote", Company: "Testi"},
	}

	fetcher := &fakeFetcher{
		company:  "Testi",
		listings: map[string][]products.ScrapedProduct{},
	}

	result, err := New(store, &fakeLLM{}, fetcher).RunWithSync(context.Background(), Options{
		URLs: []string{"tuolit"},
	})

	require.NoError(t, err)
	assert.Empty(t, store.deleted)
	assert.Empty(t, result.RemovedProducts)
}

func TestRunWithSync_DeleteFailureDoesNotStopOthers(t *testing.T) {
	store := newFakeStore()
	store.missing = []products.Product{
		{ExternalID: "99", Name: "Eka", Company: "Testi"},
		{ExternalID: "100", Name: "Toka", Company: "Testi"},
	}
	store.deleteErrFor["99"] = errors.New("row locked")

	fetcher := &fakeFetcher{
		company: "Testi",
		listings: map[string][]products.ScrapedProduct{
			"tuolit": {listing("1", "tuolit")},
		},
	}

	result, err := New(store, &fakeLLM{}, fetcher).RunWithSync(context.Background(), Options{
		URLs: []string{"tuolit"},
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"Testi/100"}, store.deleted)
	require.Len(t, result.RemovedProducts, 1)
	assert.Equal(t, "100", result.RemovedProducts[0].ExternalID)

	require.NotEmpty(t, result.Scraping.Errors)
	assert.Contains(t, result.Scraping.Errors[len(result.Scraping.Errors)-1], "99")
}

func TestRunWithSync_FindMissingErrorIsRecorded(t *testing.T) {
	store := newFakeStore()
	store.findMissingErr = errors.New("connection refused")

	fetcher := &fakeFetcher{
		company: "Testi",
		listings: map[string][]products.ScrapedProduct{
			"tuolit": {listing("1", "tuolit")},
		},
	}

	result, err := New(store, &fakeLLM{}, fetcher).RunWithSync(context.Background(), Options{
		URLs: []string{"tuolit"},
	})

	require.NoError(t, err)
	assert.Empty(t, store.deleted)
	require.NotEmpty(t, result.Scraping.Errors)
	assert.Contains(t, result.Scraping.Errors[len(result.Scraping.Errors)-1], "finding removed products")
}

package retriever

import (
	"fmt"
	"os"
	"strconv"
)

const (
	// similarity floor below which a hit is noise rather than a match
	defaultMinSimilarity = 0.42

	defaultMaxResults = 6
)

// loadRetrieverConfig reads search defaults from the environment
func loadRetrieverConfig() (*RetrieverConfig, error) {
	config := &RetrieverConfig{
		MinSimilarity: defaultMinSimilarity,
		MaxResults:    defaultMaxResults,
	}

	if raw := os.Getenv("SEARCH_MIN_SIMILARITY"); raw != "" {
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil || value < 0 || value > 1 {
			return nil, fmt.Errorf("invalid SEARCH_MIN_SIMILARITY: %q", raw)
		}

		config.MinSimilarity = value
	}

	if raw := os.Getenv("SEARCH_MAX_RESULTS"); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil || value <= 0 {
			return nil, fmt.Errorf("invalid SEARCH_MAX_RESULTS: %q", raw)
		}

		config.MaxResults = value
	}

	return config, nil
}

package llm

import (
	"fmt"
	"os"
	"strconv"
)

// loadConfig loads LLM configuration from environment variables
func loadConfig() (*Config, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY environment variable is required")
	}

	analyzerProvider := Provider(os.Getenv("ANALYZER_PROVIDER"))
	if analyzerProvider == "" {
		analyzerProvider = ProviderOpenAI // default
	}

	analyzerModel := os.Getenv("ANALYZER_MODEL")
	if analyzerModel == "" {
		analyzerModel = "gpt-4o" // default
	}

	embedderProvider := Provider(os.Getenv("EMBEDDER_PROVIDER"))
	if embedderProvider == "" {
		embedderProvider = ProviderOpenAI // default
	}

	embedderModel := os.Getenv("EMBEDDER_MODEL")
	if embedderModel == "" {
		embedderModel = "text-embedding-3-small" // default
	}

	analyzerMaxTokens := 1000 // default
	if maxTokensStr := os.Getenv("ANALYZER_MAX_TOKENS"); maxTokensStr != "" {
		if val, err := strconv.Atoi(maxTokensStr); err == nil {
			analyzerMaxTokens = val
		}
	}

	analyzerTemperature := float32(0.5) // default
	if tempStr := os.Getenv("ANALYZER_TEMPERATURE"); tempStr != "" {
		if val, err := strconv.ParseFloat(tempStr, 32); err == nil {
			analyzerTemperature = float32(val)
		}
	}

	return &Config{
		AnalyzerProvider:    analyzerProvider,
		AnalyzerAPIKey:      apiKey,
		AnalyzerModel:       analyzerModel,
		AnalyzerMaxTokens:   analyzerMaxTokens,
		AnalyzerTemperature: analyzerTemperature,
		EmbedderProvider:    embedderProvider,
		EmbedderAPIKey:      apiKey,
		EmbedderModel:       embedderModel,
	}, nil
}

package llm

import (
	"context"
	"fmt"
)

// combines an Analyzer and Embedder into a single LLM
type CompositeLLM struct {
	Analyzer
	Embedder
}

// creates a new LLM with auto-configuration from environment variables
func NewLLM(ctx context.Context) (LLM, error) {
	config, err := loadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load LLM config: %w", err)
	}

	return NewLLMWithConfig(ctx, config)
}

// creates a new LLM with explicit configuration
func NewLLMWithConfig(ctx context.Context, config *Config) (LLM, error) {
	if config == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	var analyzer Analyzer

	switch config.AnalyzerProvider {
	case ProviderOpenAI:
		analyzer = NewOpenAIAnalyzer(AnalyzerConfig{
			APIKey:      config.AnalyzerAPIKey,
			Model:       config.AnalyzerModel,
			MaxTokens:   config.AnalyzerMaxTokens,
			Temperature: config.AnalyzerTemperature,
		})
	default:
		return nil, fmt.Errorf("unsupported analyzer provider: %s", config.AnalyzerProvider)
	}

	var embedder Embedder

	switch config.EmbedderProvider {
	case ProviderOpenAI:
		embedder = NewOpenAIEmbedder(EmbedderConfig{
			APIKey: config.EmbedderAPIKey,
			Model:  config.EmbedderModel,
		})
	default:
		return nil, fmt.Errorf("unsupported embedder provider: %s", config.EmbedderProvider)
	}

	return &CompositeLLM{
		Analyzer: analyzer,
		Embedder: embedder,
	}, nil
}

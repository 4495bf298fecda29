package main

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kalustehaku/server/catalog/products"
	"github.com/kalustehaku/server/internal/config"
	"github.com/kalustehaku/server/internal/jobs"
	"github.com/kalustehaku/server/internal/llm"
	"github.com/kalustehaku/server/internal/retriever"
	"github.com/kalustehaku/server/internal/scraper"
)

// creates and configures all service clients
func InitializeServices(cfg *config.Config, db *pgxpool.Pool, productRepo *products.Repository) (*Services, error) {
	llmClient, err := llm.NewLLM(context.Background())
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	retrieverClient, err := retriever.NewClient(db, llmClient)
	if err != nil {
		return nil, fmt.Errorf("failed to create retriever client: %w", err)
	}

	scraperEnv := &scraper.Env{
		ChromePath: cfg.ChromePath,
		Headless:   cfg.ScraperHeadless,
		Retry:      scraper.DefaultRetryPolicy(),
	}

	jobService := jobs.NewService(productRepo, llmClient, scraperEnv)

	return &Services{
		LLM:       llmClient,
		Retriever: retrieverClient,
		Jobs:      jobService,
	}, nil
}

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kalustehaku/server/catalog/products"
	"github.com/kalustehaku/server/internal/config"
	"github.com/kalustehaku/server/internal/llm"
	"github.com/kalustehaku/server/internal/logger"
	"github.com/kalustehaku/server/internal/pipeline"
	"github.com/kalustehaku/server/internal/scraper"
)

// one-shot scrape runner for cron jobs and manual runs
func main() {
	company := flag.String("company", "", "company to scrape (default: all registered)")
	urls := flag.String("urls", "", "comma-separated listing URLs, requires -company")
	limit := flag.Int("limit", 0, "max products per URL, 0 means no limit")
	testData := flag.Bool("test-data", false, "mark stored rows as test data")
	printJSON := flag.Bool("json", false, "print the run result as JSON")
	flag.Parse()

	if *urls != "" && *company == "" {
		fmt.Fprintln(os.Stderr, "-urls requires -company")
		os.Exit(1)
	}

	cfg, err := config.LoadEnvironmentVariables()
	if err != nil {
		logger.Fatal("failed to load configuration", "error", err)
	}

	ctx := context.Background()

	poolConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("failed to parse database config", "error", err)
	}

	poolConfig.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol

	db, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		logger.Fatal("failed to create database pool", "error", err)
	}

	defer db.Close()

	if err := db.Ping(ctx); err != nil {
		logger.Fatal("failed to ping database", "error", err)
	}

	llmClient, err := llm.NewLLM(ctx)
	if err != nil {
		logger.Fatal("failed to create LLM client", "error", err)
	}

	env := &scraper.Env{
		ChromePath: cfg.ChromePath,
		Headless:   cfg.ScraperHeadless,
		Retry:      scraper.DefaultRetryPolicy(),
	}

	repo := products.NewRepository(db)

	companies := scraper.Companies()
	if *company != "" {
		companies = []string{*company}
	}

	failed := false

	for _, name := range companies {
		site, err := scraper.LookupSite(name)
		if err != nil {
			logger.Fatal("unknown company", "company", name, "error", err)
		}

		listingURLs := scraper.DefaultListingURLs(name)
		if *urls != "" {
			listingURLs = splitURLs(*urls)
		}

		if len(listingURLs) == 0 {
			logger.Info("no listing URLs configured, skipping", "company", name)
			continue
		}

		p := pipeline.New(repo, llmClient, scraper.Bind(site, env))

		result, err := p.RunWithSync(ctx, pipeline.Options{
			URLs:           listingURLs,
			ProductsPerURL: *limit,
			Company:        name,
			IsTestData:     *testData,
		})

		if err != nil {
			logger.ErrorErr(err, "scrape failed", "company", name)
			failed = true
			continue
		}

		if len(result.Scraping.Errors) > 0 {
			failed = true
		}

		if *printJSON {
			encoded, err := json.MarshalIndent(result, "", "  ")
			if err != nil {
				logger.ErrorErr(err, "failed to encode result", "company", name)
				continue
			}

			fmt.Println(string(encoded))
		}
	}

	if failed {
		os.Exit(1)
	}
}

func splitURLs(raw string) []string {
	var out []string

	for _, url := range strings.Split(raw, ",") {
		if url = strings.TrimSpace(url); url != "" {
			out = append(out, url)
		}
	}

	return out
}

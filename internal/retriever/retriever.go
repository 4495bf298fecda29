package retriever

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kalustehaku/server/internal/llm"
	"github.com/pgvector/pgvector-go"
)

// Client answers natural-language furniture queries by embedding the
// query text and running a similarity search over the catalog
type Client struct {
	pool     *pgxpool.Pool
	embedder llm.Embedder
	config   *RetrieverConfig
}

// NewClient creates a retriever with defaults from the environment
func NewClient(pool *pgxpool.Pool, embedder llm.Embedder) (*Client, error) {
	config, err := loadRetrieverConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load retriever config: %w", err)
	}

	return &Client{
		pool:     pool,
		embedder: embedder,
		config:   config,
	}, nil
}

// uses the match_furniture_with_filter function from the schema
const querySearch = `
	SELECT
		id::text,
		external_id,
		name,
		description,
		price,
		condition,
		image_url,
		product_url,
		category,
		availability,
		company,
		metadata,
		search_terms,
		similarity
	FROM match_furniture_with_filter($1, $2, $3, $4)
`

// resolveOptions fills unset options from the configured defaults. A nil
// MinSimilarity means the caller did not send one; an explicit zero turns
// the threshold off entirely.
func (c *Client) resolveOptions(opts SearchOptions) (float64, int) {
	minSimilarity := c.config.MinSimilarity
	if opts.MinSimilarity != nil {
		minSimilarity = *opts.MinSimilarity
	}

	maxResults := opts.MaxResults
	if maxResults == 0 {
		maxResults = c.config.MaxResults
	}

	return minSimilarity, maxResults
}

// encodeFilters serializes the metadata filter for the jsonb parameter.
// The argument must be a string: under simple protocol a []byte is sent
// as a bytea hex literal, which Postgres cannot coerce to jsonb.
func encodeFilters(filters map[string]any) (string, error) {
	if len(filters) == 0 {
		return "{}", nil
	}

	bytes, err := json.Marshal(filters)
	if err != nil {
		return "", fmt.Errorf("failed to encode filters: %w", err)
	}

	return string(bytes), nil
}

// Search embeds the query text and returns catalog rows above the
// similarity threshold, best match first
func (c *Client) Search(ctx context.Context, queryText string, opts SearchOptions) ([]SearchResult, error) {
	minSimilarity, maxResults := c.resolveOptions(opts)

	filterArg, err := encodeFilters(opts.Filters)
	if err != nil {
		return nil, err
	}

	embedding, err := c.embedder.GenerateEmbedding(ctx, queryText)
	if err != nil {
		return nil, fmt.Errorf("failed to generate query embedding: %w", err)
	}

	rows, err := c.pool.Query(ctx, querySearch,
		pgvector.NewVector(embedding),
		minSimilarity,
		maxResults,
		filterArg,
	)

	if err != nil {
		return nil, fmt.Errorf("failed to execute search query: %w", err)
	}

	defer rows.Close()

	var results []SearchResult

	for rows.Next() {
		var result SearchResult

		err := rows.Scan(
			&result.ID,
			&result.ExternalID,
			&result.Name,
			&result.Description,
			&result.Price,
			&result.Condition,
			&result.ImageURL,
			&result.ProductURL,
			&result.Category,
			&result.Availability,
			&result.Company,
			&result.Metadata,
			&result.SearchTerms,
			&result.Similarity,
		)

		if err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}

		results = append(results, result)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return results, nil
}

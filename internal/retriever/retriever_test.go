package retriever

import (
	"testing"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeFilters(t *testing.T) {
	t.Run("nil map becomes an empty object", func(t *testing.T) {
		arg, err := encodeFilters(nil)

		require.NoError(t, err)
		assert.Equal(t, "{}", arg)
	})

	t.Run("attributes serialize as JSON", func(t *testing.T) {
		arg, err := encodeFilters(map[string]any{"style": "moderni"})

		require.NoError(t, err)
		assert.JSONEq(t, `{"style": "moderni"}`, arg)
	})
}

func TestEncodeFilters_TravelsAsJSONText(t *testing.T) {
	arg, err := encodeFilters(nil)
	require.NoError(t, err)

	// the argument must reach Postgres as the literal JSON text, not as a
	// bytea hex string, or the jsonb parameter fails to parse
	buf, err := pgtype.NewMap().Encode(0, pgtype.TextFormatCode, arg, nil)
	require.NoError(t, err)
	assert.Equal(t, "{}", string(buf))
}

func TestResolveOptions(t *testing.T) {
	client, err := NewClient(nil, nil)
	require.NoError(t, err)

	t.Run("unset fields fall back to defaults", func(t *testing.T) {
		minSimilarity, maxResults := client.resolveOptions(SearchOptions{})

		assert.Equal(t, client.config.MinSimilarity, minSimilarity)
		assert.Equal(t, client.config.MaxResults, maxResults)
	})

	t.Run("explicit zero threshold is honored", func(t *testing.T) {
		zero := 0.0
		minSimilarity, _ := client.resolveOptions(SearchOptions{MinSimilarity: &zero})

		assert.Equal(t, 0.0, minSimilarity)
	})

	t.Run("explicit values pass through", func(t *testing.T) {
		threshold := 0.75
		minSimilarity, maxResults := client.resolveOptions(SearchOptions{
			MinSimilarity: &threshold,
			MaxResults:    12,
		})

		assert.Equal(t, 0.75, minSimilarity)
		assert.Equal(t, 12, maxResults)
	})
}

package search

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/kalustehaku/server/internal/errors"
	"github.com/kalustehaku/server/internal/retriever"
)

// upper bound a single request may ask for, regardless of configuration
const maxResultsCeiling = 50

// SearchHandler answers natural-language furniture queries with the
// closest catalog matches
func SearchHandler(client *retriever.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SearchRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		query := strings.TrimSpace(req.Query)
		if query == "" {
			errors.BadRequest(c, "query must not be empty", nil)
			return
		}

		if req.MinSimilarity != nil && (*req.MinSimilarity < 0 || *req.MinSimilarity > 1) {
			errors.BadRequest(c, "minSimilarity must be between 0 and 1", nil)
			return
		}

		if req.MaxResults < 0 || req.MaxResults > maxResultsCeiling {
			errors.BadRequest(c, "maxResults out of range", nil)
			return
		}

		results, err := client.Search(c.Request.Context(), query, retriever.SearchOptions{
			MinSimilarity: req.MinSimilarity,
			MaxResults:    req.MaxResults,
			Filters:       req.Filters,
		})

		if err != nil {
			errors.InternalError(c, "search failed", err)
			return
		}

		if results == nil {
			results = []retriever.SearchResult{}
		}

		c.JSON(http.StatusOK, SearchResponse{
			Results: results,
			Count:   len(results),
			Query:   query,
		})
	}
}

package search

import (
	"github.com/gin-gonic/gin"
	"github.com/kalustehaku/server/internal/logger"
	"github.com/kalustehaku/server/internal/retriever"
	"github.com/ulule/limiter/v3"
	mgin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// per-client budget for search calls. Every search costs an embedding
// API call, so the endpoint is throttled harder than the rest.
const searchRateLimit = "30-M"

func RegisterRoutes(router *gin.RouterGroup, client *retriever.Client) {
	router.POST("/search", rateLimitMiddleware(), SearchHandler(client))
}

func rateLimitMiddleware() gin.HandlerFunc {
	rate, err := limiter.NewRateFromFormatted(searchRateLimit)
	if err != nil {
		logger.Fatal("invalid search rate limit", "limit", searchRateLimit, "error", err)
	}

	return mgin.NewMiddleware(limiter.New(memory.NewStore(), rate))
}

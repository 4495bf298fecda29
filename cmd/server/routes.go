package main

import (
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/kalustehaku/server/api/rest/health"
	"github.com/kalustehaku/server/api/rest/products"
	"github.com/kalustehaku/server/api/rest/scrape"
	"github.com/kalustehaku/server/api/rest/search"
)

// sets up all API routes and middleware
func RegisterRoutes(router *gin.Engine, server *Server) {
	router.Use(CORSMiddleware())
	router.GET("/health", health.Handler)

	v1 := router.Group("/api/v1")

	{
		v1.GET("/ping", health.PingHandler)

		search.RegisterRoutes(v1, server.services.Retriever)
		products.RegisterRoutes(v1, server.productRepo)
		scrape.RegisterRoutes(v1, server.services.Jobs)
	}
}

// CORSMiddleware configures cross-origin access for the web frontend.
// ALLOWED_ORIGINS is a comma-separated origin list; unset allows the
// local dev frontend only.
func CORSMiddleware() gin.HandlerFunc {
	origins := []string{"http://localhost:3000"}

	if raw := os.Getenv("ALLOWED_ORIGINS"); raw != "" {
		origins = origins[:0]
		for _, origin := range strings.Split(raw, ",") {
			origins = append(origins, strings.TrimSpace(origin))
		}
	}

	return cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}

package scrape

import (
	"github.com/gin-gonic/gin"
	"github.com/kalustehaku/server/internal/auth"
	"github.com/kalustehaku/server/internal/jobs"
)

func RegisterRoutes(router *gin.RouterGroup, service *jobs.Service) {
	scrapeGroup := router.Group("/scrape")
	scrapeGroup.Use(auth.RequireScope(auth.ScopeScrape))
	{
		scrapeGroup.POST("", StartScrapeHandler(service))
		scrapeGroup.GET("/status", StatusHandler(service))
		scrapeGroup.GET("/ws", StreamHandler(service))
	}
}

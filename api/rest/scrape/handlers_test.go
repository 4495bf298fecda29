package scrape

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/kalustehaku/server/internal/jobs"
	"github.com/kalustehaku/server/internal/scraper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrapeRouter() (*gin.Engine, *jobs.Service) {
	gin.SetMode(gin.TestMode)

	service := jobs.NewService(nil, nil, &scraper.Env{Retry: scraper.DefaultRetryPolicy()})

	router := gin.New()
	router.POST("/scrape", StartScrapeHandler(service))
	router.GET("/scrape/status", StatusHandler(service))

	return router, service
}

func TestStartScrapeHandler_RejectsUnknownCompany(t *testing.T) {
	router, _ := scrapeRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/scrape", strings.NewReader(`{"company": "Tuntematon"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStartScrapeHandler_RejectsMalformedBody(t *testing.T) {
	router, _ := scrapeRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/scrape", strings.NewReader(`{`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStatusHandler_ReportsIdleService(t *testing.T) {
	router, _ := scrapeRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/scrape/status", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var status jobs.Status
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
	assert.False(t, status.Running)
}

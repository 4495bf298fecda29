package search

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/kalustehaku/server/internal/retriever"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func searchRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	client, err := retriever.NewClient(nil, nil)
	require.NoError(t, err)

	router := gin.New()
	router.POST("/search", SearchHandler(client))

	return router
}

func postSearch(router *gin.Engine, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/search", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	return w
}

func TestSearchHandler_RejectsMissingQuery(t *testing.T) {
	router := searchRouter(t)

	w := postSearch(router, `{}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSearchHandler_RejectsBlankQuery(t *testing.T) {
	router := searchRouter(t)

	w := postSearch(router, `{"query": "   "}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "query must not be empty")
}

func TestSearchHandler_RejectsBadSimilarity(t *testing.T) {
	router := searchRouter(t)

	w := postSearch(router, `{"query": "musta työtuoli", "minSimilarity": 1.5}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "minSimilarity")
}

func TestSearchHandler_RejectsExcessiveMaxResults(t *testing.T) {
	router := searchRouter(t)

	w := postSearch(router, `{"query": "musta työtuoli", "maxResults": 500}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "maxResults")
}

func TestSearchHandler_RejectsMalformedJSON(t *testing.T) {
	router := searchRouter(t)

	w := postSearch(router, `{"query": `)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

package scrape

import (
	stderrors "errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/kalustehaku/server/internal/errors"
	"github.com/kalustehaku/server/internal/jobs"
	"github.com/kalustehaku/server/internal/logger"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,

	// the endpoint is token-authed, cross-origin upgrades are fine
	CheckOrigin: func(r *http.Request) bool { return true },
}

// StartScrapeHandler executes a scrape run and responds with the full
// report once it finishes. Runs take minutes; progress is observable on
// the status stream in the meantime. Partial failures still get a 200,
// the per-company reports carry the counts and errors.
func StartScrapeHandler(service *jobs.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ScrapeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		var companies []string
		if req.Company != "" {
			companies = []string{req.Company}
		}

		reports, err := service.Run(c.Request.Context(), jobs.RunRequest{
			Companies:      companies,
			URLs:           req.URLs,
			ProductsPerURL: req.ProductsPerURL,
			IsTestData:     req.IsTestData,
		})

		if err != nil {
			if stderrors.Is(err, jobs.ErrRunInProgress) {
				errors.Conflict(c, err.Error())
				return
			}

			errors.BadRequest(c, "invalid scrape request", err)
			return
		}

		c.JSON(http.StatusOK, RunResponse{Reports: reports})
	}
}

// StatusHandler reports whether a run is active and the last outcome
func StatusHandler(service *jobs.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, service.Status())
	}
}

// keepalive interval for idle status stream connections
const pingInterval = 30 * time.Second

// StreamHandler upgrades to a websocket and pushes run progress events
// until the client disconnects
func StreamHandler(service *jobs.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			errors.BadRequest(c, "websocket upgrade failed", err)
			return
		}
		defer conn.Close()

		events, cancel := service.Subscribe()
		defer cancel()

		// drain client frames so close messages are processed
		go func() {
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		// current status first so clients do not start blind
		if err := conn.WriteJSON(service.Status()); err != nil {
			return
		}

		ticker := time.NewTicker(pingInterval)
		defer ticker.Stop()

		for {
			select {
			case event, ok := <-events:
				if !ok {
					return
				}

				if err := conn.WriteJSON(event); err != nil {
					logger.Debug("status stream client gone", "error", err)
					return
				}
			case <-ticker.C:
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					return
				}
			case <-c.Request.Context().Done():
				return
			}
		}
	}
}

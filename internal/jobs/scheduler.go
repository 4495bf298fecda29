package jobs

import (
	"context"
	"errors"
	"time"

	"github.com/kalustehaku/server/internal/logger"
)

// hour of day (server local time) the nightly scrape fires
const scheduleHour = 2

// StartScheduler runs a full scrape every night and blocks until ctx is
// canceled. Callers run it in its own goroutine.
func (s *Service) StartScheduler(ctx context.Context) {
	logger.Info("scrape scheduler started", "hour", scheduleHour)

	for {
		wait := time.Until(nextRunTime(time.Now()))

		select {
		case <-time.After(wait):
		case <-ctx.Done():
			logger.Info("scrape scheduler stopped")
			return
		}

		if err := s.RunAll(ctx); err != nil {
			if errors.Is(err, ErrRunInProgress) {
				logger.Warn("scheduled scrape skipped, a run is already active")
				continue
			}

			logger.ErrorErr(err, "scheduled scrape failed")
		}
	}
}

// nextRunTime returns the next occurrence of the schedule hour after now
func nextRunTime(now time.Time) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), scheduleHour, 0, 0, 0, now.Location())

	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}

	return next
}

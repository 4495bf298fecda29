package scraper

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/kalustehaku/server/internal/logger"
)

// RetryPolicy is the retry/backoff behavior for navigation and extraction
// units. It is a standalone value so the policy can be tested without a
// browser and tuned without touching adapter code.
type RetryPolicy struct {
	MaxAttempts  int
	InitialDelay time.Duration
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts:  3,
		InitialDelay: 3 * time.Second,
	}
}

// failure signatures of a dead browser session. Anything matching these
// corrupts all subsequent extraction on the page, so the browser must be
// relaunched before retrying.
var sessionErrorSignatures = []string{
	"target closed",
	"session closed",
	"detached",
	"protocol error",
	"websocket: close",
	"connection reset",
	"context canceled",
}

// reports whether err indicates the browser session died. A canceled
// parent context is not a session error: the caller is shutting down.
func IsSessionError(ctx context.Context, err error) bool {
	if err == nil || ctx.Err() != nil {
		return false
	}

	msg := strings.ToLower(err.Error())

	for _, sig := range sessionErrorSignatures {
		if strings.Contains(msg, sig) {
			return true
		}
	}

	return false
}

// Do runs op up to MaxAttempts times with exponential backoff. When a
// failure looks like a dead browser session and recover is non-nil,
// recover runs before the next attempt (relaunch browser, re-navigate).
// A recover failure consumes the attempt like any other error.
func (p RetryPolicy) Do(ctx context.Context, op func(context.Context) error, recover func(context.Context, error) error) error {
	var lastErr error

	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		lastErr = op(ctx)
		if lastErr == nil {
			return nil
		}

		logger.Warn("scrape operation failed",
			"attempt", attempt,
			"max_attempts", p.MaxAttempts,
			"error", lastErr,
		)

		if attempt == p.MaxAttempts {
			break
		}

		if recover != nil && IsSessionError(ctx, lastErr) {
			logger.Info("browser session closed or detached, reinitializing")

			if recoverErr := recover(ctx, lastErr); recoverErr != nil {
				lastErr = fmt.Errorf("session recovery failed: %w", recoverErr)
			}
		}

		wait := p.InitialDelay << (attempt - 1)

		select {
		case <-time.After(wait):
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	return fmt.Errorf("operation failed after %d attempts: %w", p.MaxAttempts, lastErr)
}

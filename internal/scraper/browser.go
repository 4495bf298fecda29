package scraper

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"
)

const defaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Browser owns one headless Chrome process. A Browser is exclusively held
// by a single Fetch call for its lifetime: adapters never share instances
// across concurrent URL tasks.
type Browser struct {
	env *Env

	parentCtx     context.Context
	allocCtx      context.Context
	allocCancel   context.CancelFunc
	browserCtx    context.Context
	browserCancel context.CancelFunc
}

// launches a Chrome process and verifies it responds
func newBrowser(ctx context.Context, env *Env) (*Browser, error) {
	b := &Browser{env: env, parentCtx: ctx}

	if err := b.launch(); err != nil {
		return nil, err
	}

	return b, nil
}

func (b *Browser) launch() error {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", b.env.Headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.UserAgent(defaultUserAgent),
	)

	if b.env.ChromePath != "" {
		opts = append(opts, chromedp.ExecPath(b.env.ChromePath))
	}

	b.allocCtx, b.allocCancel = chromedp.NewExecAllocator(b.parentCtx, opts...)
	b.browserCtx, b.browserCancel = chromedp.NewContext(b.allocCtx)

	// empty run forces the process to start so launch failures surface here
	if err := chromedp.Run(b.browserCtx); err != nil {
		b.Close()
		return fmt.Errorf("failed to launch browser: %w", err)
	}

	return nil
}

// Run executes actions against the browser with a per-operation timeout.
// A timeout tears down the tab, which the retry layer handles by
// restarting the session.
func (b *Browser) Run(timeout time.Duration, actions ...chromedp.Action) error {
	ctx, cancel := context.WithTimeout(b.browserCtx, timeout)
	defer cancel()

	return chromedp.Run(ctx, actions...)
}

// Restart tears the Chrome process down and launches a fresh one. This is
// the recovery path for closed targets, detached frames and protocol
// errors, which otherwise poison every subsequent extraction.
func (b *Browser) Restart() error {
	b.Close()
	return b.launch()
}

// Close releases the Chrome process
func (b *Browser) Close() {
	if b.browserCancel != nil {
		b.browserCancel()
	}

	if b.allocCancel != nil {
		b.allocCancel()
	}
}

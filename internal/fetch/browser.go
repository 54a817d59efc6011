package fetch

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/jonathan/renovation-quoter/internal/logging"
)

// MinTranscriptLength is the shortest extracted text accepted from a plain HTTP
// fetch before falling back to browser rendering
const MinTranscriptLength = 40

// ShouldUseBrowser reports whether extracted text is too short to be the
// transcript, which usually means the page renders it with JavaScript
func ShouldUseBrowser(extractedText string) bool {
	return len(strings.TrimSpace(extractedText)) < MinTranscriptLength
}

// BrowserOptions configures headless rendering
type BrowserOptions struct {
	Timeout      time.Duration
	WaitSelector string        // element that must be ready before capture; "body" when empty
	Settle       time.Duration // extra wait for client-side rendering
	Logger       *slog.Logger
}

// DefaultBrowserOptions returns the default rendering options
func DefaultBrowserOptions() BrowserOptions {
	return BrowserOptions{
		Timeout:      30 * time.Second,
		WaitSelector: "body",
		Settle:       2 * time.Second,
	}
}

// Render loads a page in headless Chrome and returns the rendered HTML.
// Chrome or Chromium must be installed.
func Render(ctx context.Context, urlStr string, opts BrowserOptions) (string, error) {
	if err := ValidateURL(urlStr); err != nil {
		return "", err
	}
	logger := logging.OrDiscard(opts.Logger)
	if opts.WaitSelector == "" {
		opts.WaitSelector = "body"
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultBrowserOptions().Timeout
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
		)...,
	)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()
	browserCtx, cancel = context.WithTimeout(browserCtx, opts.Timeout)
	defer cancel()

	logger.Debug("rendering page in headless browser", "url", urlStr)

	var html string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(urlStr),
		chromedp.WaitReady(opts.WaitSelector),
		chromedp.Sleep(opts.Settle),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return "", &Error{URL: urlStr, Message: "browser rendering failed", Cause: err}
	}

	logger.Debug("page rendered", "url", urlStr, "bytes", len(html))
	return html, nil
}

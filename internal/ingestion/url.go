package ingestion

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jonathan/renovation-quoter/internal/fetch"
	"github.com/jonathan/renovation-quoter/internal/logging"
)

var (
	// ErrHTTPRequestFailed is returned when the transcript page cannot be fetched
	ErrHTTPRequestFailed = errors.New("HTTP request failed")
	// ErrContentExtractionFailed is returned when no text can be extracted from the page
	ErrContentExtractionFailed = errors.New("content extraction failed")
)

// URLOptions configures transcript ingestion from a URL
type URLOptions struct {
	Fetch      *fetch.Options
	UseBrowser bool // render with headless Chrome when the static page has no transcript
	Browser    fetch.BrowserOptions
	Logger     *slog.Logger
}

// IngestFromURL fetches a transcript page and returns its cleaned text.
// Plain-text responses are used as-is; HTML is reduced to the transcript element.
func IngestFromURL(ctx context.Context, urlStr string, opts URLOptions) (string, *Metadata, error) {
	logger := logging.OrDiscard(opts.Logger)

	result, err := fetch.URL(ctx, urlStr, opts.Fetch)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrHTTPRequestFailed, err)
	}
	logger.Debug("fetched transcript page", "url", urlStr, "bytes", len(result.HTML), "content_type", result.ContentType)

	source := SourceURL
	var text string
	if result.IsPlainText() {
		text = result.HTML
	} else {
		text, err = fetch.ExtractMainText(result.HTML, fetch.TranscriptSelectors(), fetch.TranscriptNoiseSelectors()...)
		if err != nil {
			return "", nil, fmt.Errorf("%w: %w", ErrContentExtractionFailed, err)
		}

		if opts.UseBrowser && fetch.ShouldUseBrowser(text) {
			logger.Info("transcript too short, rendering in browser", "url", urlStr, "chars", len(text))
			text, source = renderWithBrowser(ctx, urlStr, opts, text, logger)
		}
	}

	cleaned, meta, err := IngestText(CleanText(text), source)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrContentExtractionFailed, err)
	}
	meta.URL = urlStr
	return cleaned, meta, nil
}

// renderWithBrowser returns the browser-rendered transcript, or the static
// text when rendering fails
func renderWithBrowser(ctx context.Context, urlStr string, opts URLOptions, static string, logger *slog.Logger) (string, Source) {
	browserOpts := opts.Browser
	if browserOpts.Timeout == 0 {
		browserOpts = fetch.DefaultBrowserOptions()
	}
	browserOpts.Logger = logger

	html, err := fetch.Render(ctx, urlStr, browserOpts)
	if err != nil {
		logger.Warn("browser rendering failed, using static content", "url", urlStr, "error", err)
		return static, SourceURL
	}
	text, err := fetch.ExtractMainText(html, fetch.TranscriptSelectors(), fetch.TranscriptNoiseSelectors()...)
	if err != nil {
		logger.Warn("browser content extraction failed, using static content", "url", urlStr, "error", err)
		return static, SourceURL
	}
	return text, SourceBrowser
}

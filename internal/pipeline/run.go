package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/jonathan/renovation-quoter/internal/fetch"
	"github.com/jonathan/renovation-quoter/internal/ingestion"
	"github.com/jonathan/renovation-quoter/internal/observability"
	"github.com/jonathan/renovation-quoter/internal/types"
)

// DefaultSearchQuery is used for the closing similar-quote search when no query is given
const DefaultSearchQuery = "renovate 5m² bathroom in Paris with tiling"

// ProgressEvent represents a progress update during a run
type ProgressEvent struct {
	Step    string `json:"step"`
	Message string `json:"message"`
	QuoteID string `json:"quote_id,omitempty"`
	Content any    `json:"content,omitempty"`
}

// ProgressCallback is called when a run step completes
type ProgressCallback func(event ProgressEvent)

// RunOptions holds configuration for a single end-to-end run
type RunOptions struct {
	TranscriptPath string // "-" reads stdin
	TranscriptURL  string
	Transcript     string // used as-is when set
	UseBrowser     bool
	OutputPath     string
	BaseMargin     *float64 // nil uses the configured base margin
	Remember       bool
	Feedback       *bool
	SkipSearch     bool
	SearchQuery    string
	TopK           int
	Verbose        bool
	Out            io.Writer
	OnProgress     ProgressCallback
}

// RunResult holds everything a run produced
type RunResult struct {
	Metadata *ingestion.Metadata
	Parsed   types.ParsedJob
	Margin   float64
	Quote    *types.Quote
	Output   string
	Handoff  HandoffReport
	Similar  []types.MemoryMatch
}

// Run ingests a transcript, builds and writes its quote, hands it to the
// collaborators and finishes with a similar-quote search
func Run(ctx context.Context, svc *Services, opts RunOptions) (*RunResult, error) {
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	printer := observability.NewPrinter(out)
	emit := func(step, message string, quoteID string, content any) {
		svc.Logger.Debug(message, "step", step)
		if opts.OnProgress != nil {
			opts.OnProgress(ProgressEvent{Step: step, Message: message, QuoteID: quoteID, Content: content})
		}
	}

	transcript, meta, err := ingest(ctx, svc, opts)
	if err != nil {
		return nil, err
	}
	emit("ingest", fmt.Sprintf("Ingested %d characters from %s", meta.Chars, meta.Source), "", meta)

	baseMargin := svc.BaseMargin
	if opts.BaseMargin != nil {
		baseMargin = *opts.BaseMargin
	}
	qr, err := svc.Quote(ctx, transcript, baseMargin)
	if err != nil {
		return nil, err
	}
	if opts.Verbose {
		printer.PrintParsedJob(qr.Parsed, qr.Matches)
		printer.PrintQuote(qr.Quote, qr.Margin)
	}
	emit("quote", fmt.Sprintf("Built quote with %d tasks", len(qr.Quote.Tasks)), qr.Quote.QuoteID, qr.Quote)

	result := &RunResult{
		Metadata: meta,
		Parsed:   qr.Parsed,
		Margin:   qr.Margin,
		Quote:    qr.Quote,
	}

	if opts.OutputPath != "" {
		if err := WriteQuote(opts.OutputPath, qr.Quote); err != nil {
			return nil, err
		}
		result.Output = opts.OutputPath
		emit("write", "Wrote quote to "+opts.OutputPath, qr.Quote.QuoteID, nil)
	}

	result.Handoff = svc.Handoff(ctx, transcript, qr.Quote, HandoffOptions{
		Archive:  true,
		Remember: opts.Remember,
		Feedback: opts.Feedback,
	})
	emit("handoff", "Delivered quote to collaborators", qr.Quote.QuoteID, result.Handoff)

	if !opts.SkipSearch {
		query := opts.SearchQuery
		if query == "" {
			query = DefaultSearchQuery
		}
		similar, err := svc.Search(ctx, query, opts.TopK)
		if err != nil {
			svc.Logger.Warn("similar-quote search failed", "error", err)
		} else {
			result.Similar = similar
			if opts.Verbose {
				printer.PrintSimilarQuotes(query, similar)
			}
			emit("search", fmt.Sprintf("Found %d similar quotes", len(similar)), qr.Quote.QuoteID, similar)
		}
	}

	return result, nil
}

func ingest(ctx context.Context, svc *Services, opts RunOptions) (string, *ingestion.Metadata, error) {
	switch {
	case opts.Transcript != "":
		return ingestion.IngestText(opts.Transcript, ingestion.SourceAPI)
	case opts.TranscriptURL != "":
		browserOpts := fetch.DefaultBrowserOptions()
		browserOpts.Logger = svc.Logger
		return ingestion.IngestFromURL(ctx, opts.TranscriptURL, ingestion.URLOptions{
			Fetch:      fetch.DefaultOptions(),
			UseBrowser: opts.UseBrowser,
			Browser:    browserOpts,
			Logger:     svc.Logger,
		})
	case opts.TranscriptPath != "":
		return ingestion.IngestFromFile(opts.TranscriptPath)
	default:
		return "", nil, fmt.Errorf("no transcript source given")
	}
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/renovation-quoter/internal/pipeline"
)

var quoteCmd = &cobra.Command{
	Use:   "quote",
	Short: "Build an itemized quote from a transcript",
	Long: "Run the full flow: ingest the transcript, parse it, adjust the margin from recorded feedback, " +
		"price every task, write the quote JSON, store it in memory and the archive, then list similar quotes.",
	RunE: runQuote,
}

var (
	quoteInput      string
	quoteURL        string
	quoteUseBrowser bool
	quoteOutput     string
	quoteMargin     float64
	quoteNoRemember bool
	quoteAccepted   bool
	quoteRejected   bool
	quoteQuery      string
	quoteTopK       int
	quoteNoSearch   bool
)

func init() {
	f := quoteCmd.Flags()
	f.StringVarP(&quoteInput, "in", "i", "", "Path to transcript file (\"-\" for stdin)")
	f.StringVar(&quoteURL, "url", "", "URL of a transcript page")
	f.BoolVar(&quoteUseBrowser, "browser", false, "Render the page in headless Chrome when static HTML has no transcript")
	f.StringVarP(&quoteOutput, "out", "o", "", "Path of the quote JSON (default from config)")
	f.Float64Var(&quoteMargin, "margin", 0, "Base margin percent before feedback adjustment (default from config)")
	f.BoolVar(&quoteNoRemember, "no-remember", false, "Do not store the quote in semantic memory")
	f.BoolVar(&quoteAccepted, "accepted", false, "Record the quote as accepted")
	f.BoolVar(&quoteRejected, "rejected", false, "Record the quote as rejected")
	f.StringVar(&quoteQuery, "query", "", "Similar-quote search query")
	f.IntVar(&quoteTopK, "top-k", 0, "Similar quotes to list (default from config)")
	f.BoolVar(&quoteNoSearch, "no-search", false, "Skip the similar-quote search")
	quoteCmd.MarkFlagsMutuallyExclusive("in", "url")
	quoteCmd.MarkFlagsMutuallyExclusive("accepted", "rejected")
	rootCmd.AddCommand(quoteCmd)
}

func runQuote(cmd *cobra.Command, _ []string) error {
	svc, cfg, _, err := openServices(cmd.Context(), cmd)
	if err != nil {
		return err
	}
	defer svc.Close()

	opts := pipeline.RunOptions{
		TranscriptPath: quoteInput,
		TranscriptURL:  quoteURL,
		UseBrowser:     quoteUseBrowser,
		OutputPath:     cfg.Output,
		Remember:       !quoteNoRemember,
		SkipSearch:     quoteNoSearch,
		SearchQuery:    quoteQuery,
		TopK:           quoteTopK,
		Verbose:        cfg.Verbose,
		Out:            cmd.ErrOrStderr(),
	}
	if opts.TranscriptPath == "" && opts.TranscriptURL == "" {
		opts.TranscriptPath, opts.TranscriptURL = cfg.Transcript, cfg.TranscriptURL
	}
	if quoteOutput != "" {
		opts.OutputPath = quoteOutput
	}
	if cmd.Flags().Changed("margin") {
		if quoteMargin < 0 || quoteMargin > 100 {
			return fmt.Errorf("--margin must be between 0 and 100")
		}
		opts.BaseMargin = &quoteMargin
	}
	if quoteAccepted || quoteRejected {
		accepted := quoteAccepted
		opts.Feedback = &accepted
	}

	result, err := pipeline.Run(cmd.Context(), svc, opts)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "Quote %s: %d tasks, total %.2f (margin %.2f at %.1f%%)\n",
		result.Quote.QuoteID, len(result.Quote.Tasks), result.Quote.OverallTotal, result.Quote.OverallMargin, result.Margin)
	if result.Output != "" {
		_, _ = fmt.Fprintf(out, "Output: %s\n", result.Output)
	}
	for _, e := range result.Handoff.Errors {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v\n", e)
	}
	if !cfg.Verbose {
		for _, m := range result.Similar {
			_, _ = fmt.Fprintf(out, "Similar: %s (distance %.4f)\n", m.ID, m.Distance)
		}
	}
	return nil
}

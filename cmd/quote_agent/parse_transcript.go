package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/renovation-quoter/internal/fetch"
	"github.com/jonathan/renovation-quoter/internal/ingestion"
	"github.com/jonathan/renovation-quoter/internal/observability"
	"github.com/jonathan/renovation-quoter/internal/parsing"
)

var parseTranscriptCmd = &cobra.Command{
	Use:   "parse-transcript",
	Short: "Parse a transcript into a structured job",
	Long:  "Extract the city, area, requested tasks and confidence from a renovation transcript and print them as JSON.",
	RunE:  runParseTranscript,
}

var (
	parseInput      string
	parseURL        string
	parseUseBrowser bool
)

func init() {
	parseTranscriptCmd.Flags().StringVarP(&parseInput, "in", "i", "", "Path to transcript file (\"-\" for stdin)")
	parseTranscriptCmd.Flags().StringVar(&parseURL, "url", "", "URL of a transcript page")
	parseTranscriptCmd.Flags().BoolVar(&parseUseBrowser, "browser", false, "Render the page in headless Chrome when static HTML has no transcript")
	rootCmd.AddCommand(parseTranscriptCmd)
}

func runParseTranscript(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	input, url := parseInput, parseURL
	if input == "" && url == "" {
		input, url = cfg.Transcript, cfg.TranscriptURL
	}
	if input != "" && url != "" {
		return fmt.Errorf("--in and --url are mutually exclusive")
	}

	var text string
	switch {
	case url != "":
		browserOpts := fetch.DefaultBrowserOptions()
		browserOpts.Logger = logger
		text, _, err = ingestion.IngestFromURL(cmd.Context(), url, ingestion.URLOptions{
			Fetch:      fetch.DefaultOptions(),
			UseBrowser: parseUseBrowser,
			Browser:    browserOpts,
			Logger:     logger,
		})
	case input == "-":
		text, _, err = ingestion.IngestFromReader(cmd.InOrStdin(), ingestion.SourceStdin)
	case input != "":
		text, _, err = ingestion.IngestFromFile(input)
	default:
		return fmt.Errorf("a transcript is required (--in or --url)")
	}
	if err != nil {
		return fmt.Errorf("failed to ingest transcript: %w", err)
	}

	interp, err := parsing.NewInterpreter(parsing.DefaultRules())
	if err != nil {
		return err
	}
	job, matches := interp.ParseWithMatches(text)

	if cfg.Verbose {
		observability.NewPrinter(cmd.ErrOrStderr()).PrintParsedJob(job, matches)
	}

	data, err := json.MarshalIndent(job, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal parsed job: %w", err)
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}

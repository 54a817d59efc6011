package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/renovation-quoter/internal/parsing"
	"github.com/jonathan/renovation-quoter/internal/schemas"
	"github.com/jonathan/renovation-quoter/internal/types"
)

// QuoteResult is the outcome of quoting one transcript
type QuoteResult struct {
	Parsed  types.ParsedJob
	Matches []parsing.Match
	Margin  float64
	Quote   *types.Quote
}

// Quote parses a transcript, adjusts the margin from feedback and builds the quote
func (s *Services) Quote(ctx context.Context, transcript string, baseMargin float64) (*QuoteResult, error) {
	parsed, matches := s.Interpreter.ParseWithMatches(transcript)
	s.Logger.Debug("transcript parsed",
		"city", parsed.City,
		"size_m2", parsed.SizeM2,
		"tasks", len(parsed.Tasks),
		"confidence", parsed.Confidence)

	margin := s.Feedback.Margin(ctx, baseMargin)

	quote, err := s.Builder.Build(ctx, parsed, s.Catalog, margin)
	if err != nil {
		return nil, fmt.Errorf("failed to build quote: %w", err)
	}

	return &QuoteResult{
		Parsed:  parsed,
		Matches: matches,
		Margin:  margin,
		Quote:   quote,
	}, nil
}

// HandoffOptions selects which collaborators receive a finished quote
type HandoffOptions struct {
	Archive  bool
	Remember bool
	Feedback *bool // record this outcome immediately when set
}

// HandoffReport records what each collaborator did. Failures never alter the quote.
type HandoffReport struct {
	Archived         bool    `json:"archived"`
	Remembered       bool    `json:"remembered"`
	FeedbackRecorded bool    `json:"feedback_recorded"`
	Errors           []error `json:"-"`
}

// Handoff delivers a finished quote to the archive, memory and feedback
// collaborators concurrently and reports each outcome
func (s *Services) Handoff(ctx context.Context, transcript string, quote *types.Quote, opts HandoffOptions) HandoffReport {
	type outcome struct {
		name string
		ran  bool
		err  error
	}
	archive := outcome{name: "archive"}
	remember := outcome{name: "memory"}
	record := outcome{name: "feedback"}

	var g errgroup.Group
	if opts.Archive && s.Archive != nil {
		archive.ran = true
		g.Go(func() error {
			archive.err = s.Archive.Save(ctx, transcript, quote)
			return nil
		})
	}
	if opts.Remember && s.Memory != nil {
		remember.ran = true
		g.Go(func() error {
			remember.err = s.Memory.Add(ctx, quote.QuoteID, transcript, quote)
			return nil
		})
	}
	if opts.Feedback != nil {
		record.ran = true
		accepted := *opts.Feedback
		g.Go(func() error {
			record.err = s.Feedback.Record(ctx, quote.QuoteID, accepted)
			return nil
		})
	}
	_ = g.Wait()

	report := HandoffReport{
		Archived:         archive.ran && archive.err == nil,
		Remembered:       remember.ran && remember.err == nil,
		FeedbackRecorded: record.ran && record.err == nil,
	}
	for _, o := range []outcome{archive, remember, record} {
		if o.err != nil {
			s.Logger.Warn("quote handoff failed", "collaborator", o.name, "quote_id", quote.QuoteID, "error", o.err)
			report.Errors = append(report.Errors, fmt.Errorf("%s: %w", o.name, o.err))
		}
	}
	return report
}

// Search returns stored quotes similar to query. topK <= 0 uses the configured default.
func (s *Services) Search(ctx context.Context, query string, topK int) ([]types.MemoryMatch, error) {
	if topK <= 0 {
		topK = s.TopK
	}
	return s.Memory.Search(ctx, query, topK)
}

// WriteQuote validates a quote against the quote schema and writes it as indented JSON
func WriteQuote(path string, quote *types.Quote) error {
	if err := schemas.ValidateDocument(schemas.Quote, quote); err != nil {
		return fmt.Errorf("quote failed schema validation: %w", err)
	}

	data, err := json.MarshalIndent(quote, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to marshal quote: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write quote file: %w", err)
	}
	return nil
}

// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/renovation-quoter/internal/memory"
	"github.com/jonathan/renovation-quoter/internal/parsing"
	"github.com/jonathan/renovation-quoter/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 64
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 8
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	inner := boxWidth - 4
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(title, inner))
	fmt.Fprintf(p.out, "├%s┤\n", border)
	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %s │\n", pad(truncate(line, inner), inner))
	}
	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most width runes
func truncate(s string, width int) string {
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	runes := []rune(s)
	return string(runes[:width-3]) + "..."
}

func pad(s string, width int) string {
	if n := utf8.RuneCountInString(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}

// PrintParsedJob outputs what the interpreter found in a transcript
func (p *Printer) PrintParsedJob(job types.ParsedJob, matches []parsing.Match) {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("City:       %s\n", job.City))
	if job.SizeM2 > 0 {
		sb.WriteString(fmt.Sprintf("Area:       %g m²\n", job.SizeM2))
	} else {
		sb.WriteString("Area:       not found\n")
	}
	sb.WriteString(fmt.Sprintf("Confidence: %.2f\n", job.Confidence))

	if len(job.Tasks) > 0 {
		sb.WriteString("\nTasks:\n")
		for _, task := range job.Tasks {
			sb.WriteString(fmt.Sprintf("  • %s (%s)\n", task.Code, task.MaterialKey))
		}
	} else {
		sb.WriteString("\nNo tasks detected\n")
	}

	if len(matches) > 0 {
		sb.WriteString("\nMatched phrases:\n")
		count := min(len(matches), maxItemsToShow)
		for i := 0; i < count; i++ {
			m := matches[i]
			if m.Exact {
				sb.WriteString(fmt.Sprintf("  \"%s\" exact\n", m.Rule.Phrase))
			} else {
				sb.WriteString(fmt.Sprintf("  \"%s\" fuzzy %.2f\n", m.Rule.Phrase, m.Ratio))
			}
		}
		if len(matches) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(matches)-maxItemsToShow))
		}
	}

	p.printBox("PARSED TRANSCRIPT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintQuote outputs the itemized quote
func (p *Printer) PrintQuote(quote *types.Quote, marginPercent float64) {
	if quote == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Quote:      %s\n", quote.QuoteID))
	sb.WriteString(fmt.Sprintf("Zone:       %s, %s, %g m²\n", quote.Zone, quote.City, quote.SizeM2))
	sb.WriteString(fmt.Sprintf("Margin:     %g%%\n", marginPercent))
	sb.WriteString("\n")

	for _, line := range quote.Tasks {
		sb.WriteString(fmt.Sprintf("%s\n", line.Name))
		sb.WriteString(fmt.Sprintf("  labor %.2fh €%.2f  material €%.2f\n", line.Labor.Hours, line.Labor.Cost, line.Materials.Cost))
		sb.WriteString(fmt.Sprintf("  subtotal €%.2f  margin €%.2f  VAT %g%%\n", line.Subtotal, line.Margin, line.VATRate))
		sb.WriteString(fmt.Sprintf("  total €%.2f\n", line.TotalPrice))
	}
	if len(quote.Tasks) == 0 {
		sb.WriteString("No priced tasks\n")
	}

	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Overall total:  €%.2f\n", quote.OverallTotal))
	sb.WriteString(fmt.Sprintf("Overall margin: €%.2f\n", quote.OverallMargin))
	sb.WriteString(fmt.Sprintf("Confidence:     %.2f", quote.ConfidenceScore))

	p.printBox("QUOTE", sb.String())
}

// PrintSimilarQuotes outputs memory search results with their stored tasks
func (p *Printer) PrintSimilarQuotes(query string, matches []types.MemoryMatch) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Query: %s\n", query))

	if len(matches) == 0 {
		sb.WriteString("\nNo similar quotes found.")
		p.printBox("SIMILAR QUOTES", sb.String())
		return
	}

	for i, m := range matches {
		sb.WriteString(fmt.Sprintf("\n#%d  %s  (distance %.3f)\n", i+1, m.Metadata.QuoteID, m.Distance))
		sb.WriteString(fmt.Sprintf("    City: %s  Total: €%.2f  Confidence: %.2f\n",
			m.Metadata.City, m.Metadata.OverallTotal, m.Metadata.ConfidenceScore))

		stored, err := memory.StoredQuote(m.Metadata)
		if err != nil {
			sb.WriteString("    could not parse stored quote\n")
			continue
		}
		for _, task := range stored.Tasks {
			sb.WriteString(fmt.Sprintf("    - %s: €%.2f (VAT %g%%)\n", task.Name, task.TotalPrice, task.VATRate))
		}
	}

	p.printBox("SIMILAR QUOTES", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintFeedbackSummary outputs win-rate statistics and the margin they imply
func (p *Printer) PrintFeedbackSummary(summary types.FeedbackSummary, baseMargin, margin float64) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Records:   %d\n", summary.Total))
	sb.WriteString(fmt.Sprintf("Accepted:  %d\n", summary.Accepted))
	sb.WriteString(fmt.Sprintf("Rejected:  %d\n", summary.Rejected))
	sb.WriteString(fmt.Sprintf("Win rate:  %.0f%%\n", summary.WinRate*100))
	sb.WriteString(fmt.Sprintf("Margin:    %g%% (base %g%%)", margin, baseMargin))

	p.printBox("FEEDBACK", sb.String())
}

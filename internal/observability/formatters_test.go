package observability

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/renovation-quoter/internal/parsing"
	"github.com/jonathan/renovation-quoter/internal/types"
)

func TestPrintParsedJob(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	job := types.ParsedJob{
		City:   "Paris",
		SizeM2: 4,
		Tasks: []types.TaskRequest{
			{Code: types.TaskTiling, MaterialKey: "tiles"},
		},
		Confidence: 0.8,
	}
	matches := []parsing.Match{
		{Rule: parsing.PhraseRule{Phrase: "tiling", Code: types.TaskTiling, MaterialKey: "tiles"}, Exact: true, Ratio: 0.2},
		{Rule: parsing.PhraseRule{Phrase: "ceramic floor tiles", Code: types.TaskTiling, MaterialKey: "tiles"}, Ratio: 0.81},
	}

	p.PrintParsedJob(job, matches)
	output := buf.String()

	assert.Contains(t, output, "PARSED TRANSCRIPT")
	assert.Contains(t, output, "Paris")
	assert.Contains(t, output, "4 m²")
	assert.Contains(t, output, "tiling (tiles)")
	assert.Contains(t, output, `"tiling" exact`)
	assert.Contains(t, output, `"ceramic floor tiles" fuzzy 0.81`)
}

func TestPrintParsedJob_NoArea(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintParsedJob(types.ParsedJob{City: "Marseille"}, nil)

	assert.Contains(t, buf.String(), "not found")
	assert.Contains(t, buf.String(), "No tasks detected")
}

func TestPrintQuote(t *testing.T) {
	var buf bytes.Buffer
	quote := &types.Quote{
		QuoteID: "q-1",
		Zone:    types.ZoneBathroom,
		City:    "Paris",
		SizeM2:  4,
		Tasks: []types.TaskQuoteLine{{
			Name:       "Ceramic Floor Tiles",
			Labor:      types.LaborLine{Hours: 6, Cost: 240},
			Materials:  types.MaterialLine{Item: "Ceramic Floor Tiles", Cost: 128},
			VATRate:    10,
			Subtotal:   368,
			Margin:     55.2,
			TotalPrice: 465.52,
		}},
		OverallTotal:    465.52,
		OverallMargin:   55.2,
		ConfidenceScore: 0.8,
	}

	NewPrinter(&buf).PrintQuote(quote, 15)
	output := buf.String()

	assert.Contains(t, output, "QUOTE")
	assert.Contains(t, output, "Margin:     15%")
	assert.Contains(t, output, "total €465.52")
	assert.Contains(t, output, "Overall margin: €55.20")
}

func TestPrintQuote_Nil(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintQuote(nil, 15)
	assert.Empty(t, buf.String())
}

func TestPrintSimilarQuotes(t *testing.T) {
	stored, err := json.Marshal(types.Quote{
		QuoteID: "q-9",
		Tasks:   []types.TaskQuoteLine{{Name: "Standard Toilet", TotalPrice: 412.5, VATRate: 10}},
	})
	require.NoError(t, err)

	matches := []types.MemoryMatch{
		{ID: "q-9", Distance: 0.12, Metadata: types.MemoryMetadata{QuoteID: "q-9", City: "Paris", OverallTotal: 412.5, QuoteJSON: string(stored)}},
		{ID: "q-bad", Distance: 0.5, Metadata: types.MemoryMetadata{QuoteID: "q-bad", QuoteJSON: "{"}},
	}

	var buf bytes.Buffer
	NewPrinter(&buf).PrintSimilarQuotes("replace the toilet", matches)
	output := buf.String()

	assert.Contains(t, output, "#1  q-9")
	assert.Contains(t, output, "- Standard Toilet: €412.50 (VAT 10%)")
	assert.Contains(t, output, "could not parse stored quote")
}

func TestPrintSimilarQuotes_Empty(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintSimilarQuotes("tiling", nil)
	assert.Contains(t, buf.String(), "No similar quotes found.")
}

func TestPrintFeedbackSummary(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintFeedbackSummary(types.FeedbackSummary{Total: 10, Accepted: 9, Rejected: 1, WinRate: 0.9}, 15, 17)

	assert.Contains(t, buf.String(), "Win rate:  90%")
	assert.Contains(t, buf.String(), "Margin:    17% (base 15%)")
}

func TestPrintBox_LongLinesKeepWidth(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.printBox("TEST", strings.Repeat("é", 200)+"\nshort")

	for _, line := range strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n") {
		assert.Equal(t, boxWidth, utf8.RuneCountInString(line), "line %q", line)
	}
	assert.Contains(t, buf.String(), "...")
}

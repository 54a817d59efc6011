package ingestion

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "empty", input: "", expected: ""},
		{name: "crlf", input: "line one\r\nline two\rline three", expected: "line one\nline two\nline three"},
		{name: "bom", input: "\ufeffhello", expected: "hello"},
		{name: "collapses spaces", input: "remove   old\t\ttiles", expected: "remove old tiles"},
		{name: "non-breaking space", input: "4\u00a0m²", expected: "4 m²"},
		{name: "drops timestamps", input: "[00:01:23] Client: redo the plumbing\n(12:04) Estimator: ok", expected: "Client: redo the plumbing\nEstimator: ok"},
		{name: "limits blank lines", input: "a\n\n\n\n\nb", expected: "a\n\nb"},
		{name: "trims", input: "  \n  hello  \n  ", expected: "hello"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanText(tt.input))
		})
	}
}

func TestCleanText_KeepsAreaToken(t *testing.T) {
	cleaned := CleanText("I want to renovate a 4m² bathroom in Paris")
	assert.Contains(t, cleaned, "4m²")
}

func TestIngestFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "call.txt")
	require.NoError(t, os.WriteFile(path, []byte("  Retile a 5m2 bathroom in Marseille  \r\n"), 0644))

	text, meta, err := IngestFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "  Retile a 5m2 bathroom in Marseille  \r\n", text, "file content reaches the interpreter unchanged")
	assert.Equal(t, SourceFile, meta.Source)
	assert.Equal(t, path, meta.Path)
	cleaned := "Retile a 5m2 bathroom in Marseille"
	assert.Equal(t, ContentHash(cleaned), meta.Hash)
	assert.Equal(t, len(cleaned), meta.Chars)
}

func TestIngestText_KeepsRawText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "trailing newline", input: "plumbin ab\n", expected: "plumbin ab\n"},
		{name: "timestamps and spacing", input: "[00:01] tiling   in Paris", expected: "[00:01] tiling   in Paris"},
		{name: "byte order mark", input: "\ufefftiling", expected: "tiling"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, _, err := IngestText(tt.input, SourceAPI)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, text)
		})
	}
}

func TestIngestFromFile_NotFound(t *testing.T) {
	_, _, err := IngestFromFile(filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestIngestFromReader_Empty(t *testing.T) {
	_, _, err := IngestFromReader(strings.NewReader(" \n\t "), SourceStdin)
	assert.ErrorIs(t, err, ErrEmptyTranscript)
}

func TestIngestFromReader_TooLarge(t *testing.T) {
	big := strings.Repeat("a", MaxTranscriptBytes+1)
	_, _, err := IngestFromReader(strings.NewReader(big), SourceStdin)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds")
}

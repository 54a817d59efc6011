// Package ingestion loads transcripts from files, stdin or URLs.
package ingestion

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
)

// MaxTranscriptBytes caps the size of an ingested transcript
const MaxTranscriptBytes = 1 << 20

var (
	// timestamps such as [00:01:23] or (12:04) left by transcription tools
	timestampPattern = regexp.MustCompile(`[\[(]\d{1,2}:\d{2}(?::\d{2})?[\])]`)
	spacePattern     = regexp.MustCompile(`[ \t\f\v\x{00A0}]+`)
	blankRunPattern  = regexp.MustCompile(`\n{3,}`)
)

// CleanText normalizes a transcript for display and hashing. Line structure is
// kept, transcription timestamps are dropped and runs of spaces collapse to one.
// Interpretation never sees the cleaned text.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.TrimPrefix(content, "\ufeff")
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		line = timestampPattern.ReplaceAllString(line, "")
		line = spacePattern.ReplaceAllString(line, " ")
		lines[i] = strings.TrimSpace(line)
	}

	result := strings.Join(lines, "\n")
	result = blankRunPattern.ReplaceAllString(result, "\n\n")
	return strings.TrimSpace(result)
}

// IngestFromFile reads a transcript file, or stdin when path is "-"
func IngestFromFile(path string) (string, *Metadata, error) {
	if path == "-" {
		return IngestFromReader(os.Stdin, SourceStdin)
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil, fmt.Errorf("transcript file not found: %w", err)
		}
		return "", nil, fmt.Errorf("failed to open transcript: %w", err)
	}
	defer func() { _ = f.Close() }()

	text, meta, err := IngestFromReader(f, SourceFile)
	if err != nil {
		return "", nil, err
	}
	meta.Path = path
	return text, meta, nil
}

// IngestFromReader reads a transcript from r
func IngestFromReader(r io.Reader, source Source) (string, *Metadata, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxTranscriptBytes+1))
	if err != nil {
		return "", nil, fmt.Errorf("failed to read transcript: %w", err)
	}
	if len(data) > MaxTranscriptBytes {
		return "", nil, fmt.Errorf("transcript exceeds %d bytes", MaxTranscriptBytes)
	}

	return IngestText(string(data), source)
}

// IngestText returns the transcript unchanged apart from a leading BOM, so fuzzy
// ratios are computed over exactly what was said. Metadata describes the cleaned
// form. A transcript that cleans to nothing is an error.
func IngestText(raw string, source Source) (string, *Metadata, error) {
	raw = strings.TrimPrefix(raw, "\ufeff")
	cleaned := CleanText(raw)
	if cleaned == "" {
		return "", nil, ErrEmptyTranscript
	}
	return raw, NewMetadata(cleaned, source), nil
}

package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"
)

// ErrEmptyTranscript is returned when a transcript has no content after cleaning
var ErrEmptyTranscript = errors.New("transcript is empty")

// Source identifies where a transcript came from
type Source string

// Transcript sources
const (
	SourceFile    Source = "file"
	SourceStdin   Source = "stdin"
	SourceURL     Source = "url"
	SourceBrowser Source = "browser"
	SourceAPI     Source = "api"
)

// Metadata describes an ingested transcript
type Metadata struct {
	Source    Source `json:"source"`
	Path      string `json:"path,omitempty"`
	URL       string `json:"url,omitempty"`
	Timestamp string `json:"timestamp"` // RFC3339
	Hash      string `json:"hash"`      // SHA256 hex digest of the cleaned text
	Chars     int    `json:"chars"`
}

// NewMetadata creates metadata for cleaned content
func NewMetadata(content string, source Source) *Metadata {
	return &Metadata{
		Source:    source,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Hash:      ContentHash(content),
		Chars:     utf8.RuneCountInString(content),
	}
}

// ContentHash returns the SHA256 hex digest of content
func ContentHash(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}

// ToJSON marshals Metadata to indented JSON
func (m *Metadata) ToJSON() ([]byte, error) {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal metadata to JSON: %w", err)
	}
	return data, nil
}

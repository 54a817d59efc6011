package feedback

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/jonathan/renovation-quoter/internal/types"
)

var csvHeader = []string{"quote_id", "accepted"}

// CSVLedger stores feedback in a CSV file with a quote_id,accepted header.
// Appends within one process are serialized; concurrent writers in other
// processes need external locking.
type CSVLedger struct {
	path string
	mu   sync.Mutex
}

// NewCSVLedger returns a ledger backed by the file at path
func NewCSVLedger(path string) *CSVLedger {
	return &CSVLedger{path: path}
}

// Path returns the ledger file path
func (l *CSVLedger) Path() string {
	return l.path
}

// Append writes one record, creating the file and its header first if needed
func (l *CSVLedger) Append(_ context.Context, record types.FeedbackRecord) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if dir := filepath.Dir(l.path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create feedback directory: %w", err)
		}
	}

	_, statErr := os.Stat(l.path)
	newFile := errors.Is(statErr, os.ErrNotExist)

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open feedback file: %w", err)
	}
	defer func() { _ = f.Close() }()

	w := csv.NewWriter(f)
	if newFile {
		if err := w.Write(csvHeader); err != nil {
			return fmt.Errorf("failed to write feedback header: %w", err)
		}
	}
	if err := w.Write([]string{record.QuoteID, encodeAccepted(record.Accepted)}); err != nil {
		return fmt.Errorf("failed to write feedback record: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush feedback file: %w", err)
	}
	return nil
}

// ReadAll returns every record in file order. A missing file yields ErrLedgerNotFound.
func (l *CSVLedger) ReadAll(_ context.Context) ([]types.FeedbackRecord, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.Open(l.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrLedgerNotFound
		}
		return nil, fmt.Errorf("failed to open feedback file: %w", err)
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err == io.EOF {
		return []types.FeedbackRecord{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read feedback header: %w", err)
	}
	idCol, acceptedCol := columnIndex(header, "quote_id"), columnIndex(header, "accepted")
	if idCol < 0 || acceptedCol < 0 {
		return nil, fmt.Errorf("feedback file %s has an unexpected header: %v", l.path, header)
	}

	records := []types.FeedbackRecord{}
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read feedback record: %w", err)
		}
		records = append(records, types.FeedbackRecord{
			QuoteID:  row[idCol],
			Accepted: row[acceptedCol] == "1",
		})
	}
	return records, nil
}

func encodeAccepted(accepted bool) string {
	if accepted {
		return "1"
	}
	return "0"
}

func columnIndex(header []string, name string) int {
	for i, h := range header {
		if h == name {
			return i
		}
	}
	return -1
}

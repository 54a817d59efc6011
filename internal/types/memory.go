package types

// MemoryMetadata is the flat metadata stored alongside each quote in semantic memory
type MemoryMetadata struct {
	QuoteID         string  `json:"quote_id"`
	City            string  `json:"city"`
	Zone            string  `json:"zone"`
	OverallTotal    float64 `json:"overall_total"`
	ConfidenceScore float64 `json:"confidence_score"`
	QuoteJSON       string  `json:"quote_json"`
}

// MemoryEntry is a stored transcript with its embedding
type MemoryEntry struct {
	ID        string         `json:"id"`
	Document  string         `json:"document"`
	Embedding []float32      `json:"embedding"`
	Metadata  MemoryMetadata `json:"metadata"`
}

// MemoryMatch is one search result, ordered by ascending distance
type MemoryMatch struct {
	ID       string         `json:"id"`
	Distance float64        `json:"distance"`
	Document string         `json:"document,omitempty"`
	Metadata MemoryMetadata `json:"metadata"`
}

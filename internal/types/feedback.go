package types

// FeedbackRecord is one accept/reject outcome for a quote
type FeedbackRecord struct {
	QuoteID  string `json:"quote_id"`
	Accepted bool   `json:"accepted"`
}

// FeedbackSummary aggregates feedback records
type FeedbackSummary struct {
	Total    int     `json:"total"`
	Accepted int     `json:"accepted"`
	Rejected int     `json:"rejected"`
	WinRate  float64 `json:"win_rate"`
}

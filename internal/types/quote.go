package types

// ZoneBathroom is the only renovation zone currently quoted
const ZoneBathroom = "bathroom"

// LaborLine holds the labor part of a quote line
type LaborLine struct {
	Hours float64 `json:"hours"`
	Cost  float64 `json:"cost"`
}

// MaterialLine holds the material part of a quote line
type MaterialLine struct {
	Item string  `json:"item"`
	Cost float64 `json:"cost"`
}

// TaskQuoteLine is the priced breakdown of one task
type TaskQuoteLine struct {
	Name                string       `json:"name"`
	Labor               LaborLine    `json:"labor"`
	Materials           MaterialLine `json:"materials"`
	EstimatedDurationHr float64      `json:"estimated_duration_hr"`
	VATRate             float64      `json:"vat_rate"`
	Subtotal            float64      `json:"subtotal"`
	Margin              float64      `json:"margin"`
	TotalPrice          float64      `json:"total_price"`
	Confidence          float64      `json:"confidence"`
}

// Quote is the itemized price quote produced by one pipeline run.
// OverallTotal and OverallMargin are sums over Tasks rounded once to 2 decimals.
type Quote struct {
	QuoteID         string          `json:"quote_id"`
	Zone            string          `json:"zone"`
	City            string          `json:"city"`
	SizeM2          float64         `json:"size_m2"`
	Tasks           []TaskQuoteLine `json:"tasks"`
	OverallTotal    float64         `json:"overall_total"`
	OverallMargin   float64         `json:"overall_margin"`
	ConfidenceScore float64         `json:"confidence_score"`
}

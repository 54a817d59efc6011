package types

// MaterialUnit describes how a material is priced
type MaterialUnit string

const (
	// UnitPerArea prices the material per square meter of the job
	UnitPerArea MaterialUnit = "sqm"
	// UnitFixed prices the material once per job
	UnitFixed MaterialUnit = "fixed"
)

// MaterialInfo is a materials catalog entry
type MaterialInfo struct {
	Name      string             `json:"name"`
	Unit      MaterialUnit       `json:"unit"`
	BasePrice map[string]float64 `json:"base_price"` // city -> unit price (EUR)
}

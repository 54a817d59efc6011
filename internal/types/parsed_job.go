// Package types provides type definitions for structured data used throughout the renovation quoting system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// TaskCode identifies a renovation activity known to the labor and VAT tables
type TaskCode string

// Known task codes
const (
	TaskTileRemoval        TaskCode = "tile_removal"
	TaskTiling             TaskCode = "tiling"
	TaskPlumbing           TaskCode = "plumbing"
	TaskToiletInstallation TaskCode = "toilet_installation"
	TaskVanityInstallation TaskCode = "vanity_installation"
	TaskPainting           TaskCode = "painting"
)

// AllTaskCodes returns the known task codes in table order
func AllTaskCodes() []TaskCode {
	return []TaskCode{
		TaskTileRemoval,
		TaskTiling,
		TaskPlumbing,
		TaskToiletInstallation,
		TaskVanityInstallation,
		TaskPainting,
	}
}

// TaskRequest is a task detected in a transcript together with the material it consumes
type TaskRequest struct {
	Code        TaskCode `json:"code"`
	MaterialKey string   `json:"material"`
}

// ParsedJob is the structured interpretation of one transcript.
// Tasks are unique by Code and keep detection order.
type ParsedJob struct {
	City       string        `json:"city"`
	SizeM2     float64       `json:"size_m2"`
	Tasks      []TaskRequest `json:"tasks"`
	Confidence float64       `json:"confidence"`
}

// HasTask reports whether the job contains a task with the given code
func (p ParsedJob) HasTask(code TaskCode) bool {
	for _, t := range p.Tasks {
		if t.Code == code {
			return true
		}
	}
	return false
}

// TaskCodes returns the task codes of the job in order
func (p ParsedJob) TaskCodes() []TaskCode {
	codes := make([]TaskCode, 0, len(p.Tasks))
	for _, t := range p.Tasks {
		codes = append(codes, t.Code)
	}
	return codes
}

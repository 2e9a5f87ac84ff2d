// Package models holds the shared value types exchanged between the
// pipeline, the monitor, and the report webhook client.
package models

import "time"

// Outcome classifies what happened to a single candidate file.
type Outcome string

const (
	OutcomeUnknown   Outcome = "UNKNOWN"
	OutcomeSkipped   Outcome = "SKIPPED"
	OutcomeConverted Outcome = "CONVERTED"
	OutcomeFailed    Outcome = "FAILED"
)

// FileResult records the outcome for one candidate file.
type FileResult struct {
	Path    string  `json:"path"`
	Codec   string  `json:"codec,omitempty"` // probed source codec, empty if the probe failed
	Outcome Outcome `json:"outcome"`
	Err     string  `json:"error,omitempty"`
}

// RunSummary aggregates per-file outcomes across one batch run.
// It is explicit accumulator state returned by the pipeline, so repeated
// runs in one process never interfere with each other.
type RunSummary struct {
	Total     int `json:"total"`
	Converted int `json:"converted"`
	Skipped   int `json:"skipped"`
	Failed    int `json:"failed"`

	Files []FileResult `json:"files,omitempty"`
}

// Record counts one file result into the summary.
func (s *RunSummary) Record(r FileResult) {
	s.Files = append(s.Files, r)
	switch r.Outcome {
	case OutcomeConverted:
		s.Converted++
	case OutcomeSkipped:
		s.Skipped++
	case OutcomeFailed:
		s.Failed++
	}
}

// HostSpecs describes the machine the batch ran on. Gathered once per run
// by the monitor package and attached to the run report.
type HostSpecs struct {
	CPUModel    string  `json:"cpu_model"`
	Threads     int     `json:"threads"`
	RAMFreeGB   float64 `json:"ram_free_gb"`
	CPUUsagePct float64 `json:"cpu_usage_pct"`
}

// RunReport is the payload POSTed to the report webhook after a batch.
// Used in [POST] <report_url>
type RunReport struct {
	RunID      string     `json:"run_id"`
	Pattern    string     `json:"pattern"`
	Host       HostSpecs  `json:"host"`
	Summary    RunSummary `json:"summary"`
	StartedAt  time.Time  `json:"started_at"`
	DurationMS int64      `json:"duration_ms"`
}

package report

import (
	"encoding/json"
	"os"
	"time"
)

// FileName is the report file a batch run writes into its output dir.
const FileName = "restorelab.report.json"

// New creates an empty report for the given operation.
func New(operation string) *Report {
	return &Report{
		Version:     SupportedReportVersion,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Operation:   operation,
		BasePath:    "./",
		Entries:     make(map[string]Entry),
	}
}

// ComputeStats recalculates aggregate statistics from entries. The
// failure count is set by the batch runner and preserved.
func (r *Report) ComputeStats() {
	failed := r.Stats.TotalFailed
	var s Stats
	s.TotalImages = len(r.Entries)
	s.TotalFailed = failed
	for _, e := range r.Entries {
		s.TotalInputBytes += e.Original.Size
		s.TotalOutputBytes += e.Result.Size
	}
	r.Stats = s
}

// WriteJSON serializes the report to a JSON file.
func WriteJSON(r *Report, path string) error {
	r.ComputeStats()

	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o644)
}

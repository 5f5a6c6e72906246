package report

import "github.com/AnyUserName/squeeze/internal/config"

// SupportedVersion is the current schema version.
const SupportedVersion = 1

// FileName is the default report name inside the output directory.
const FileName = "squeeze.report.json"

// Report is the JSON record of one batch run.
type Report struct {
	Version     int           `json:"version"`
	GeneratedAt string        `json:"generated_at"`
	InputDir    string        `json:"input_dir"`
	OutputDir   string        `json:"output_dir"`
	Config      config.Config `json:"config"`
	Encoder     string        `json:"encoder"`
	Interrupted bool          `json:"interrupted,omitempty"`
	Files       []File        `json:"files"`
	Skipped     []string      `json:"skipped"`
	Stats       Stats         `json:"stats"`
}

// File describes one supported input and what became of it.
type File struct {
	Source       string `json:"source"`
	SourceFormat string `json:"source_format"`
	SourceMode   string `json:"source_mode,omitempty"`
	// Output is relative to the report's output_dir.
	Output       string `json:"output,omitempty"`
	OriginalSize int64  `json:"original_size"`
	FinalSize    int64  `json:"final_size,omitempty"`
	SrcWidth     int    `json:"src_width,omitempty"`
	SrcHeight    int    `json:"src_height,omitempty"`
	Width        int    `json:"width,omitempty"`
	Height       int    `json:"height,omitempty"`
	Resized      bool   `json:"resized,omitempty"`
	// Threshold is "below", "above" or "unknown".
	Threshold string `json:"threshold"`
	// ChangePct is positive when the output is smaller.
	ChangePct float64 `json:"change_pct"`
	// Hash is the first 16 hex chars of the output's xxhash64.
	Hash      string `json:"hash,omitempty"`
	Error     string `json:"error,omitempty"`
	ErrorKind string `json:"error_kind,omitempty"`
}

// OK reports whether the file was written.
func (f File) OK() bool { return f.Error == "" }

// Stats aggregates run metrics.
type Stats struct {
	Processed          int     `json:"processed"`
	Errors             int     `json:"errors"`
	Skipped            int     `json:"skipped"`
	BelowThreshold     int     `json:"below_threshold"`
	AboveThreshold     int     `json:"above_threshold"`
	TotalOriginalBytes int64   `json:"total_original_bytes"`
	TotalFinalBytes    int64   `json:"total_final_bytes"`
	ChangePct          float64 `json:"change_pct"`
}

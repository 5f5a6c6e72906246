package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/AnyUserName/squeeze/internal/pipeline"
)

// FromSummary builds a report from a finished (or interrupted) run.
func FromSummary(s *pipeline.Summary) *Report {
	r := &Report{
		Version:     SupportedVersion,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		InputDir:    s.InputDir,
		OutputDir:   s.OutputDir,
		Config:      s.Batch,
		Encoder:     s.Encoder,
		Interrupted: s.Interrupted,
		Files:       make([]File, 0, len(s.Results)),
		Skipped:     append([]string{}, s.Skipped...),
	}
	for _, res := range s.Results {
		r.Files = append(r.Files, fileFromResult(res))
	}

	st := s.Stats
	pct, _ := st.Change()
	r.Stats = Stats{
		Processed:          st.Processed,
		Errors:             st.Errors,
		Skipped:            st.Skipped,
		BelowThreshold:     st.BelowThreshold,
		AboveThreshold:     st.AboveThreshold,
		TotalOriginalBytes: st.TotalOriginalBytes,
		TotalFinalBytes:    st.TotalFinalBytes,
		ChangePct:          pct,
	}
	return r
}

func fileFromResult(res pipeline.Result) File {
	f := File{
		Source:       res.Name,
		SourceFormat: res.SourceFormat,
		SourceMode:   res.SourceMode,
		OriginalSize: res.OriginalSize,
		SrcWidth:     res.SrcWidth,
		SrcHeight:    res.SrcHeight,
		Threshold:    classString(res.Class),
	}
	if res.Err != nil {
		f.Error = res.Err.Error()
		f.ErrorKind = res.Err.Kind.String()
		return f
	}
	f.Output = res.OutputName
	f.FinalSize = res.FinalSize
	f.Width = res.Width
	f.Height = res.Height
	f.Resized = res.Resized
	f.ChangePct = res.Change()
	f.Hash = res.Hash
	return f
}

func classString(c pipeline.SizeClass) string {
	switch c {
	case pipeline.ClassBelow:
		return "below"
	case pipeline.ClassAbove:
		return "above"
	default:
		return "unknown"
	}
}

// Recount recalculates aggregate statistics from the file list.
func (r *Report) Recount() Stats {
	var s Stats
	s.Skipped = len(r.Skipped)
	for _, f := range r.Files {
		switch f.Threshold {
		case "below":
			s.BelowThreshold++
		case "above":
			s.AboveThreshold++
		}
		if !f.OK() {
			s.Errors++
			continue
		}
		s.Processed++
		s.TotalOriginalBytes += f.OriginalSize
		s.TotalFinalBytes += f.FinalSize
	}
	s.ChangePct = pipeline.Change(s.TotalOriginalBytes, s.TotalFinalBytes)
	return s
}

// WriteJSON serializes the report to path.
func WriteJSON(r *Report, path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o644)
}

// ReadJSON loads a report. path may be the report file or the directory
// holding it.
func ReadJSON(path string) (*Report, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		path = filepath.Join(path, FileName)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read report: %w", err)
	}
	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parse report: %w", err)
	}
	return &r, nil
}

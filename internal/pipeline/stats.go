package pipeline

// Stats accumulates counters over one run. It is only touched by the
// goroutine driving the run.
type Stats struct {
	Processed          int   `json:"processed"`
	Errors             int   `json:"errors"`
	Skipped            int   `json:"skipped"`
	BelowThreshold     int   `json:"below_threshold"`
	AboveThreshold     int   `json:"above_threshold"`
	TotalOriginalBytes int64 `json:"total_original_bytes"`
	TotalFinalBytes    int64 `json:"total_final_bytes"`
}

// Add folds one file result into the counters. Failed files count toward
// the threshold classes (classification precedes decoding) but never
// toward the byte totals.
func (s *Stats) Add(r Result) {
	switch r.Class {
	case ClassBelow:
		s.BelowThreshold++
	case ClassAbove:
		s.AboveThreshold++
	}
	if r.Err != nil {
		s.Errors++
		return
	}
	s.Processed++
	s.TotalOriginalBytes += r.OriginalSize
	s.TotalFinalBytes += r.FinalSize
}

// Skip counts a file with an unsupported extension.
func (s *Stats) Skip() { s.Skipped++ }

// Files is the number of regular files seen.
func (s Stats) Files() int { return s.Processed + s.Errors + s.Skipped }

// Change returns the aggregate size change in percent. ok is false when
// nothing was written, in which case there is no meaningful ratio.
func (s Stats) Change() (pct float64, ok bool) {
	if s.TotalOriginalBytes <= 0 {
		return 0, false
	}
	return Change(s.TotalOriginalBytes, s.TotalFinalBytes), true
}

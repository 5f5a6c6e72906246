package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/AnyUserName/squeeze/internal/hasher"
)

// Validate checks r against the files in outDir and returns one message
// per problem found.
func Validate(r *Report, outDir string) []string {
	var errs []string

	if r.Version != SupportedVersion {
		errs = append(errs, fmt.Sprintf("unsupported report version: %d", r.Version))
	}
	if err := r.Config.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("config: %v", err))
	}

	seen := map[string]string{}
	for i, f := range r.Files {
		if f.Source == "" {
			errs = append(errs, fmt.Sprintf("files[%d]: missing source name", i))
		}
		if !f.OK() {
			continue
		}
		if f.Output == "" {
			errs = append(errs, fmt.Sprintf("%s: missing output name", f.Source))
			continue
		}
		if f.Width <= 0 || f.Height <= 0 {
			errs = append(errs, fmt.Sprintf("%s: invalid dimensions %dx%d", f.Source, f.Width, f.Height))
		}
		if f.Width > r.Config.MaxWidth {
			errs = append(errs, fmt.Sprintf("%s: width %d exceeds max width %d", f.Source, f.Width, r.Config.MaxWidth))
		}

		// Collisions are legal; only the last writer's output is on disk.
		seen[f.Output] = f.Source
	}

	for i, f := range r.Files {
		if !f.OK() || f.Output == "" || seen[f.Output] != f.Source {
			continue
		}
		path := filepath.Join(outDir, f.Output)
		info, err := os.Stat(path)
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s: output not found: %s", f.Source, f.Output))
			continue
		}
		if info.Size() != f.FinalSize {
			errs = append(errs, fmt.Sprintf("%s: size mismatch: report=%d, disk=%d", f.Source, f.FinalSize, info.Size()))
		}
		if f.Hash == "" {
			errs = append(errs, fmt.Sprintf("files[%d]: missing hash", i))
			continue
		}
		sum, err := hasher.ContentHashFile(path, len(f.Hash))
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s: hash %s: %v", f.Source, f.Output, err))
		} else if sum != f.Hash {
			errs = append(errs, fmt.Sprintf("%s: hash mismatch: report=%s, disk=%s", f.Source, f.Hash, sum))
		}
	}

	// Verify stats consistency.
	want := r.Recount()
	got := r.Stats
	if got.Processed != want.Processed || got.Errors != want.Errors || got.Skipped != want.Skipped {
		errs = append(errs, fmt.Sprintf("stats counts mismatch: processed/errors/skipped %d/%d/%d != %d/%d/%d",
			got.Processed, got.Errors, got.Skipped, want.Processed, want.Errors, want.Skipped))
	}
	if got.BelowThreshold != want.BelowThreshold || got.AboveThreshold != want.AboveThreshold {
		errs = append(errs, fmt.Sprintf("stats threshold mismatch: below/above %d/%d != %d/%d",
			got.BelowThreshold, got.AboveThreshold, want.BelowThreshold, want.AboveThreshold))
	}
	if got.TotalOriginalBytes != want.TotalOriginalBytes || got.TotalFinalBytes != want.TotalFinalBytes {
		errs = append(errs, fmt.Sprintf("stats byte totals mismatch: %d/%d != %d/%d",
			got.TotalOriginalBytes, got.TotalFinalBytes, want.TotalOriginalBytes, want.TotalFinalBytes))
	}

	return errs
}

package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/AnyUserName/squeeze/internal/config"
	"github.com/AnyUserName/squeeze/internal/encoder"
	"github.com/AnyUserName/squeeze/internal/logger"
)

// Observer receives per-file events in processing order.
type Observer interface {
	Skipped(e Entry)
	Processed(r Result)
}

// Config holds all parameters for a batch run.
type Config struct {
	InputDir  string
	OutputDir string
	Batch     config.Config
	Registry  *encoder.Registry // nil means encoder.NewRegistry()
	Observer  Observer          // optional
}

// Summary is everything a run produced, minus the images themselves.
type Summary struct {
	InputDir  string
	OutputDir string
	Batch     config.Config
	Encoder   string
	Stats     Stats
	Results   []Result
	Skipped   []string
	// Interrupted is set when the context was cancelled before every file
	// had been processed.
	Interrupted bool
}

// CheckInputDir fails with ErrInputMissing unless dir is an existing
// directory.
func CheckInputDir(dir string) error {
	info, err := os.Stat(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrInputMissing, dir)
	}
	if err != nil {
		return fmt.Errorf("stat input: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", ErrInputMissing, dir)
	}
	return nil
}

// Pipeline runs a batch sequentially, one file at a time.
type Pipeline struct {
	cfg Config
}

// New creates a configured pipeline.
func New(cfg Config) *Pipeline {
	if cfg.Registry == nil {
		cfg.Registry = encoder.NewRegistry()
	}
	return &Pipeline{cfg: cfg}
}

// Run validates the setup, then processes every file of the input
// directory. Only setup problems are returned as errors; per-file failures
// are recorded in the Summary. A cancelled ctx stops the run between files
// and returns the partial Summary together with ctx.Err().
func (p *Pipeline) Run(ctx context.Context) (*Summary, error) {
	if err := p.cfg.Batch.Validate(); err != nil {
		return nil, err
	}

	if err := CheckInputDir(p.cfg.InputDir); err != nil {
		return nil, err
	}

	enc, err := p.cfg.Registry.Lookup(p.cfg.Batch.Format)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(p.cfg.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	entries, err := ScanDir(p.cfg.InputDir)
	if err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}
	logger.Debug("scan complete", "dir", p.cfg.InputDir, "files", len(entries),
		"encoder", enc.Name())

	sum := &Summary{
		InputDir:  p.cfg.InputDir,
		OutputDir: p.cfg.OutputDir,
		Batch:     p.cfg.Batch,
		Encoder:   fmt.Sprintf("%s(%s)", enc.Format(), enc.Name()),
	}

	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			sum.Interrupted = true
			logger.Warn("run interrupted", "remaining", len(entries)-sum.Stats.Files())
			return sum, err
		}

		if !e.Supported() {
			sum.Stats.Skip()
			sum.Skipped = append(sum.Skipped, e.Name)
			if p.cfg.Observer != nil {
				p.cfg.Observer.Skipped(e)
			}
			continue
		}

		r := ProcessFile(e, p.cfg.Batch, p.cfg.OutputDir, enc)
		sum.Stats.Add(r)
		sum.Results = append(sum.Results, r)
		if r.Err != nil {
			logger.Debug("file failed", "file", e.Name, "kind", r.Err.Kind.String(), "err", r.Err.Err)
		}
		if p.cfg.Observer != nil {
			p.cfg.Observer.Processed(r)
		}
	}

	return sum, nil
}

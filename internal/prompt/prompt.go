// Package prompt collects batch settings interactively. Every question
// shows a default that plain Enter accepts.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/AnyUserName/squeeze/internal/config"
)

// Prompter asks questions on out and reads answers from in.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// readLine returns the trimmed answer. io.EOF is returned only when no
// input is left at all.
func (p *Prompter) readLine(question string) (string, error) {
	fmt.Fprint(p.out, question)
	line, err := p.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		fmt.Fprintln(p.out)
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// Int asks for an integer in [lo, hi], re-asking on invalid input.
func (p *Prompter) Int(label string, def, lo, hi int) (int, error) {
	question := fmt.Sprintf("%s (default: %d): ", label, def)
	for {
		ans, err := p.readLine(question)
		if err != nil {
			return def, err
		}
		if ans == "" {
			return def, nil
		}
		v, err := strconv.Atoi(ans)
		if err != nil {
			fmt.Fprintf(p.out, "  %q is not a whole number\n", ans)
			continue
		}
		if v < lo || v > hi {
			fmt.Fprintf(p.out, "  %d is out of range (%d-%d)\n", v, lo, hi)
			continue
		}
		return v, nil
	}
}

// Format asks for an output format until a valid one is given.
func (p *Prompter) Format(def config.Format) (config.Format, error) {
	question := fmt.Sprintf("Output format: JPEG, PNG or WEBP (default: %s): ", def)
	for {
		ans, err := p.readLine(question)
		if err != nil {
			return def, err
		}
		if ans == "" {
			return def, nil
		}
		f, err := config.ParseFormat(ans)
		if err == nil {
			return f, nil
		}
		question = fmt.Sprintf("Invalid format. Use JPEG, PNG or WEBP (default: %s): ", def)
	}
}

// Fields selects which settings to ask for.
type Fields struct {
	MaxWidth    bool
	Format      bool
	Quality     bool
	ThresholdKB bool
}

// All asks for every field.
var All = Fields{MaxWidth: true, Format: true, Quality: true, ThresholdKB: true}

// Collect asks for the selected fields, using cfg's values as defaults.
// Quality is only asked for when the chosen format is lossy.
func (p *Prompter) Collect(cfg config.Config, ask Fields) (config.Config, error) {
	var err error
	if ask.MaxWidth {
		if cfg.MaxWidth, err = p.Int("Maximum width in pixels", cfg.MaxWidth, 1, 1<<20); err != nil {
			return cfg, err
		}
	}
	if ask.Format {
		if cfg.Format, err = p.Format(cfg.Format); err != nil {
			return cfg, err
		}
	}
	if ask.Quality && cfg.Format.Lossy() {
		if cfg.Quality, err = p.Int("Quality (0-100) for JPEG/WEBP", cfg.Quality, 0, 100); err != nil {
			return cfg, err
		}
	}
	if ask.ThresholdKB {
		if cfg.ThresholdKB, err = p.Int("Size threshold in KB (report only, never skips files)", cfg.ThresholdKB, 0, 1<<30); err != nil {
			return cfg, err
		}
	}
	return cfg, nil
}

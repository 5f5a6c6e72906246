package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/AnyUserName/squeeze/internal/config"
	"github.com/AnyUserName/squeeze/internal/logger"
	"github.com/AnyUserName/squeeze/internal/pipeline"
	"github.com/AnyUserName/squeeze/internal/profile"
	"github.com/AnyUserName/squeeze/internal/prompt"
	"github.com/AnyUserName/squeeze/internal/report"
	"github.com/AnyUserName/squeeze/internal/tui"
)

var (
	runInput       string
	runOutput      string
	runMaxWidth    int
	runFormat      string
	runQuality     int
	runThresholdKB int
	runPreset      string
	runConfigFile  string
	runNoPrompt    bool
	runReportPath  string
	runNoReport    bool
)

func init() {
	f := rootCmd.Flags()
	f.StringVarP(&runInput, "input", "i", "", "input directory (default <exe dir>/images)")
	f.StringVarP(&runOutput, "output", "o", "", "output directory (default <exe dir>/images_compressed)")
	f.IntVarP(&runMaxWidth, "max-width", "w", config.DefaultMaxWidth, "maximum output width in pixels")
	f.StringVarP(&runFormat, "format", "f", "JPEG", "output format: JPEG, PNG or WEBP")
	f.IntVarP(&runQuality, "quality", "q", config.DefaultQuality, "quality 0-100 for JPEG/WEBP")
	f.IntVarP(&runThresholdKB, "threshold-kb", "t", config.DefaultThresholdKB, "size threshold in KB (report only)")
	f.StringVarP(&runPreset, "preset", "p", "", fmt.Sprintf("named preset %v", profile.Names()))
	f.StringVarP(&runConfigFile, "config", "c", "", "YAML settings file")
	f.BoolVar(&runNoPrompt, "no-prompt", false, "never ask questions, even on a terminal")
	f.StringVar(&runReportPath, "report", "", "run report path (default <output>/"+report.FileName+")")
	f.BoolVar(&runNoReport, "no-report", false, "do not write a run report")
}

func runBatch(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	tui.DisableColorUnlessTerminal(os.Stdout)

	s, err := resolveSettings(cmd)
	if err != nil {
		return err
	}
	if !cmd.Flags().Changed("log-level") && !verbose {
		logger.SetLevel(s.LogLevel)
	}

	// Nothing is asked or written when the input is missing.
	if err := pipeline.CheckInputDir(s.Input); err != nil {
		return err
	}

	if !runNoPrompt && isatty.IsTerminal(os.Stdin.Fd()) {
		ask := prompt.Fields{
			MaxWidth:    !cmd.Flags().Changed("max-width"),
			Format:      !cmd.Flags().Changed("format"),
			Quality:     !cmd.Flags().Changed("quality"),
			ThresholdKB: !cmd.Flags().Changed("threshold-kb"),
		}
		s.Config, err = prompt.New(cmd.InOrStdin(), out).Collect(s.Config, ask)
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("read answers: %w", err)
		}
	}
	if err := s.Validate(); err != nil {
		return err
	}

	logVerbose("settings", "input", s.Input, "output", s.Output, "config", s.Config.String())
	printConfig(out, s.Config)

	p := pipeline.New(pipeline.Config{
		InputDir:  s.Input,
		OutputDir: s.Output,
		Batch:     s.Config,
		Observer:  tui.NewConsole(out),
	})
	sum, runErr := p.Run(cmd.Context())
	if sum == nil {
		return runErr
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Finished!")
	fmt.Fprintln(out, tui.RenderSummary(tui.SummaryRows(sum)))
	fmt.Fprintf(out, "Images saved to: %s\n", sum.OutputDir)

	if !runNoReport {
		path := runReportPath
		if path == "" {
			path = filepath.Join(sum.OutputDir, report.FileName)
		}
		if err := report.WriteJSON(report.FromSummary(sum), path); err != nil {
			logger.Warn("write report failed", "path", path, "err", err)
		} else {
			logVerbose("report written", "path", path)
		}
	}

	if runErr != nil {
		return fmt.Errorf("batch stopped early: %w", runErr)
	}
	return nil
}

// resolveSettings layers defaults, preset, YAML file, environment and flags.
func resolveSettings(cmd *cobra.Command) (config.Settings, error) {
	base := baseDir()
	cwd, _ := os.Getwd()
	if path, err := config.LoadDotEnv(base, cwd); err != nil {
		return config.Settings{}, err
	} else if path != "" {
		logVerbose("loaded env file", "path", path)
	}

	s := config.Default()
	if runPreset != "" {
		p, ok := profile.Get(runPreset)
		if !ok {
			return s, fmt.Errorf("%w: unknown preset %q (available: %v)", config.ErrInvalid, runPreset, profile.Names())
		}
		s.Config = p.Apply(s.Config)
	}
	if runConfigFile != "" {
		if err := s.LoadFile(runConfigFile); err != nil {
			return s, err
		}
	}
	if err := s.ApplyEnv(); err != nil {
		return s, err
	}

	flags := cmd.Flags()
	if flags.Changed("max-width") {
		s.MaxWidth = runMaxWidth
	}
	if flags.Changed("format") {
		f, err := config.ParseFormat(runFormat)
		if err != nil {
			return s, err
		}
		s.Format = f
	}
	if flags.Changed("quality") {
		s.Quality = runQuality
	}
	if flags.Changed("threshold-kb") {
		s.ThresholdKB = runThresholdKB
	}

	s.Input = config.ResolveDir(base, s.Input)
	s.Output = config.ResolveDir(base, s.Output)
	if flags.Changed("input") {
		abs, err := filepath.Abs(runInput)
		if err != nil {
			return s, fmt.Errorf("resolve input path: %w", err)
		}
		s.Input = abs
	}
	if flags.Changed("output") {
		abs, err := filepath.Abs(runOutput)
		if err != nil {
			return s, fmt.Errorf("resolve output path: %w", err)
		}
		s.Output = abs
	}
	return s, nil
}

// baseDir is the directory holding the executable, falling back to the
// working directory.
func baseDir() string {
	exe, err := os.Executable()
	if err == nil {
		if resolved, err := filepath.EvalSymlinks(exe); err == nil {
			exe = resolved
		}
		return filepath.Dir(exe)
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return cwd
}

func printConfig(w io.Writer, c config.Config) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Settings:")
	fmt.Fprintf(w, " - max width:    %d\n", c.MaxWidth)
	fmt.Fprintf(w, " - format:       %s\n", c.Format)
	if c.QualityApplies() {
		fmt.Fprintf(w, " - quality:      %d\n", c.Quality)
	} else {
		fmt.Fprintln(w, " - quality:      (not applicable)")
	}
	fmt.Fprintf(w, " - threshold KB: %d (report only)\n", c.ThresholdKB)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Processing...")
	fmt.Fprintln(w)
}

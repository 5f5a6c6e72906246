package cmd

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/AnyUserName/squeeze/internal/report"
	"github.com/AnyUserName/squeeze/internal/tui"
)

var statsCmd = &cobra.Command{
	Use:   "stats <out_dir_or_report>",
	Short: "Display statistics from a run report",
	Args:  cobra.ExactArgs(1),
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	tui.DisableColorUnlessTerminal(os.Stdout)
	r, err := report.ReadJSON(args[0])
	if err != nil {
		return err
	}
	printStats(cmd.OutOrStdout(), r)
	return nil
}

func printStats(w io.Writer, r *report.Report) {
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  Report version:  %d\n", r.Version)
	fmt.Fprintf(w, "  Generated:       %s\n", r.GeneratedAt)
	fmt.Fprintf(w, "  Settings:        %s\n", r.Config)
	fmt.Fprintf(w, "  Encoder:         %s\n", r.Encoder)
	if r.Interrupted {
		fmt.Fprintln(w, "  Interrupted:     yes (partial run)")
	}
	fmt.Fprintln(w)

	s := r.Stats
	rows := []tui.SummaryRow{
		{Label: "Processed", Value: fmt.Sprintf("%d", s.Processed)},
		{Label: "Errors", Value: fmt.Sprintf("%d", s.Errors)},
		{Label: "Skipped", Value: fmt.Sprintf("%d", s.Skipped)},
		{Label: "Below threshold", Value: fmt.Sprintf("%d", s.BelowThreshold)},
		{Label: "Above threshold", Value: fmt.Sprintf("%d", s.AboveThreshold)},
		{Label: "Input size", Value: humanize.IBytes(uint64(s.TotalOriginalBytes))},
		{Label: "Output size", Value: humanize.IBytes(uint64(s.TotalFinalBytes))},
	}
	if s.TotalOriginalBytes > 0 {
		rows = append(rows, tui.SummaryRow{Label: "Compression", Value: tui.ChangeText(s.ChangePct)})
	}
	fmt.Fprintln(w, tui.RenderSummary(rows))
	fmt.Fprintln(w)

	// Per-source-format breakdown.
	type agg struct {
		count    int
		original int64
		final    int64
	}
	bySource := map[string]agg{}
	errKinds := map[string]int{}
	var resized int
	for _, f := range r.Files {
		if !f.OK() {
			errKinds[f.ErrorKind]++
			continue
		}
		a := bySource[f.SourceFormat]
		a.count++
		a.original += f.OriginalSize
		a.final += f.FinalSize
		bySource[f.SourceFormat] = a
		if f.Resized {
			resized++
		}
	}

	var formats []string
	for k := range bySource {
		formats = append(formats, k)
	}
	sort.Strings(formats)
	fmt.Fprintln(w, "  Source format breakdown:")
	for _, k := range formats {
		a := bySource[k]
		fmt.Fprintf(w, "    %-5s %4d files  %9s -> %9s\n",
			k, a.count, humanize.IBytes(uint64(a.original)), humanize.IBytes(uint64(a.final)))
	}
	fmt.Fprintf(w, "  Resized:         %d of %d\n", resized, s.Processed)
	fmt.Fprintln(w)

	if len(errKinds) > 0 {
		fmt.Fprintln(w, "  Errors by kind:")
		for _, k := range []string{"io", "decode", "encode"} {
			if n := errKinds[k]; n > 0 {
				fmt.Fprintf(w, "    %-7s %d\n", k, n)
			}
		}
		fmt.Fprintln(w)
	}

	// Top 10 savings.
	written := make([]report.File, 0, len(r.Files))
	for _, f := range r.Files {
		if f.OK() {
			written = append(written, f)
		}
	}
	sort.Slice(written, func(i, j int) bool {
		return written[i].OriginalSize-written[i].FinalSize > written[j].OriginalSize-written[j].FinalSize
	})
	n := len(written)
	if n > 10 {
		n = 10
	}
	if n > 0 {
		fmt.Fprintf(w, "  Top %d savings (original -> optimized):\n", n)
		for _, f := range written[:n] {
			fmt.Fprintf(w, "    %-40s %9s -> %9s  (%s)\n",
				truncName(f.Source, 40),
				humanize.IBytes(uint64(f.OriginalSize)),
				humanize.IBytes(uint64(f.FinalSize)),
				tui.ChangeText(f.ChangePct),
			)
		}
		fmt.Fprintln(w)
	}
}

func truncName(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return "..." + s[len(s)-max+3:]
}

package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/AnyUserName/squeeze/internal/report"
)

var validateOutDir string

var validateCmd = &cobra.Command{
	Use:   "validate <report_path_or_out_dir>",
	Short: "Check a run report against the files in the output directory",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

func init() {
	validateCmd.Flags().StringVar(&validateOutDir, "dir", "", "output directory to check (default: the output_dir recorded in the report)")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	r, err := report.ReadJSON(args[0])
	if err != nil {
		return err
	}

	dir := validateOutDir
	if dir == "" {
		dir = r.OutputDir
	}
	if dir == "" {
		dir = args[0]
		if filepath.Ext(dir) == ".json" {
			dir = filepath.Dir(dir)
		}
	}

	w := cmd.OutOrStdout()
	errs := report.Validate(r, dir)
	if len(errs) == 0 {
		fmt.Fprintln(w, "  ✓ Report is valid")
		fmt.Fprintf(w, "  ✓ %d processed, %d errors, %d skipped; all outputs present\n",
			r.Stats.Processed, r.Stats.Errors, r.Stats.Skipped)
		return nil
	}

	fmt.Fprintf(w, "  ✗ Report has %d error(s):\n", len(errs))
	for _, e := range errs {
		fmt.Fprintf(w, "    • %s\n", e)
	}
	return fmt.Errorf("validation failed with %d errors", len(errs))
}

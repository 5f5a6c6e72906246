package cmd

import (
	"context"
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/AnyUserName/squeeze/internal/logger"
)

var (
	version  = "0.1.0"
	verbose  bool
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:   "squeeze",
	Short: "Batch-resize and recompress a folder of images",
	Long: `squeeze converts every image in a folder (jpg, jpeg, png, webp, bmp,
tif, tiff) to JPEG, PNG or WEBP, shrinking anything wider than a maximum
width while keeping the aspect ratio, and reports how much space it saved.

By default it reads ./images next to the executable and writes to
./images_compressed. Settings come from flags, an optional YAML file,
SQUEEZE_* environment variables, or interactive prompts.`,
	Version:       version,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		level := logLevel
		if verbose {
			level = "debug"
		}
		if cmd.Flags().Changed("log-level") || verbose {
			logger.SetLevel(level)
		}
	},
	RunE: runBatch,
}

// Execute runs the CLI. Cancelling ctx stops a batch between files.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (same as --log-level=debug)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "diagnostic log level: debug, info, warn, error")
	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"squeeze %s (%s/%s, %s)\n",
		version, runtime.GOOS, runtime.GOARCH, runtime.Version(),
	))
}

// logVerbose prints a diagnostic record at debug level.
func logVerbose(msg string, args ...any) {
	logger.Debug(msg, args...)
}

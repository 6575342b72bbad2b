package rootfind

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/rootfind/rootfind/internal/logging"
	"github.com/spf13/cobra"
)

var (
	flagJSON      bool
	flagNoColor   bool
	flagNoCache   bool
	flagDir       string
	flagLogLevel  string
	flagLogFormat string

	version = "0.1.0"
)

// errDegraded makes Execute exit with status 1 instead of 2.
var errDegraded = errors.New("degraded roots found")

// rootCmd is the base Cobra command for the rootfind CLI.
var rootCmd = &cobra.Command{
	Use:           "rootfind",
	Short:         "Find all real roots of a function on an interval",
	Long:          "rootfind brackets sign changes, refines each root with a secant then bisection solver and deflates confirmed roots until the requested count is found.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		level, err := logging.ParseLevel(flagLogLevel)
		if err != nil {
			return err
		}
		if flagLogFormat != "text" && flagLogFormat != "json" {
			return fmt.Errorf("unknown log format %q", flagLogFormat)
		}
		logging.Init(level, flagLogFormat, os.Stderr)
		return nil
	},
}

// Execute runs the rootfind CLI. It should be called by the main package.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if errors.Is(err, errDegraded) {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(2)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "emit JSON")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable colorized output")
	rootCmd.PersistentFlags().BoolVar(&flagNoCache, "no-cache", false, "always search, ignoring the results of the last identical run")
	rootCmd.PersistentFlags().StringVar(&flagDir, "dir", ".", "directory holding the config, cache and history files")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "log level: debug|info|warn|error")
	rootCmd.PersistentFlags().StringVar(&flagLogFormat, "log-format", "text", "log format: text|json")
}

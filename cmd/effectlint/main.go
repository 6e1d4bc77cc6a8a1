package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"effectlint/internal/version"
)

var rootCmd = &cobra.Command{
	Use:           "effectlint",
	Short:         "Static analysis and codemods for Effect TypeScript code",
	Long:          `effectlint finds anti-patterns in TypeScript code built on the Effect runtime and rewrites the ones it can fix mechanically`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// errFindings signals that a run reported error-level findings. Its message
// is never printed.
var errFindings = errors.New("error-level findings reported")

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(fixCmd)
	rootCmd.AddCommand(rulesCmd)
	rootCmd.AddCommand(explainCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().String("config", "", "configuration file (default: nearest effectlint.{json,toml,yaml,yml})")
	rootCmd.PersistentFlags().Bool("timings", false, "print phase timings to stderr")
	rootCmd.PersistentFlags().String("trace", "", "trace output file (- for stderr)")
	rootCmd.PersistentFlags().String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	rootCmd.PersistentFlags().String("trace-mode", "ring", "trace storage (stream|ring|both)")
	rootCmd.PersistentFlags().String("trace-format", "auto", "trace format (auto|text|ndjson)")
	rootCmd.PersistentFlags().Int("trace-ring-size", 4096, "events kept by the ring tracer")
	rootCmd.PersistentFlags().Duration("trace-heartbeat", 0, "emit a heartbeat event at this interval (0 disables)")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return setupColor(cmd)
	}

	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errFindings) {
			fmt.Fprintf(os.Stderr, "effectlint: %v\n", err)
		}
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

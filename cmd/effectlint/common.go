package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"effectlint/internal/analysis"
	"effectlint/internal/config"
	"effectlint/internal/diag"
	"effectlint/internal/diagfmt"
	"effectlint/internal/observ"
)

// loadConfig reads --config, or the nearest configuration file above
// startDir. No file means the catalog defaults. Unknown rule ids are
// reported as warnings.
func loadConfig(cmd *cobra.Command, startDir string) (*config.AnalysisConfig, error) {
	path, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}
	if path == "" {
		found, ok, err := config.Find(startDir)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, nil
		}
		path = found
	}
	cfg, err := config.Load(path)
	if err != nil {
		if errors.Is(err, config.ErrConfigParse) {
			return nil, fmt.Errorf("%s: %w", diag.CfgParseError.ID(), err)
		}
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	warnUnknownRules(cmd.ErrOrStderr(), path, cfg)
	return cfg, nil
}

func warnUnknownRules(w io.Writer, path string, cfg *config.AnalysisConfig) {
	warn := color.New(color.FgYellow, color.Bold).SprintFunc()
	for _, u := range config.UnknownRules(analysis.New().Catalog, cfg) {
		msg := fmt.Sprintf("%s: %s unknown rule %q", path, warn("warning["+diag.CfgUnknownRule.ID()+"]:"), u.ID)
		if u.Suggestion != "" {
			msg += fmt.Sprintf(", did you mean %q?", u.Suggestion)
		}
		fmt.Fprintln(w, msg)
	}
}

// configStart picks the directory the configuration search begins in.
func configStart(args []string) string {
	if len(args) == 0 || args[0] == "-" {
		return "."
	}
	info, err := os.Stat(args[0])
	if err == nil && info.IsDir() {
		return args[0]
	}
	return filepath.Dir(args[0])
}

// newAnalyzer builds the analyzer for a command. A timer is attached when
// --timings is set.
func newAnalyzer(cmd *cobra.Command) (*analysis.Analyzer, error) {
	showTimings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return nil, fmt.Errorf("failed to get timings flag: %w", err)
	}
	a := analysis.New()
	if showTimings {
		a.Timer = observ.NewTimer()
	}
	return a, nil
}

func printTimings(w io.Writer, timer *observ.Timer) {
	if timer == nil {
		return
	}
	fmt.Fprint(w, timer.Summary())
}

func parsePathMode(s string) (diagfmt.PathMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return diagfmt.PathModeAuto, nil
	case "absolute", "abs":
		return diagfmt.PathModeAbsolute, nil
	case "relative", "rel":
		return diagfmt.PathModeRelative, nil
	case "basename", "base":
		return diagfmt.PathModeBasename, nil
	default:
		return 0, fmt.Errorf("invalid --paths value %q (expected auto|absolute|relative|basename)", s)
	}
}

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"effectlint/internal/analysis"
	"effectlint/internal/config"
	"effectlint/internal/diagfmt"
	"effectlint/internal/driver"
	"effectlint/internal/ui"
	"effectlint/internal/version"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [flags] [file.ts|directory|-]...",
	Short: "Report Effect anti-patterns in TypeScript sources",
	Long: `Analyze TypeScript files or directories (default: the current directory).
Pass - to read a single source from stdin.`,
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().String("type", "all", "analysis type (all|validation|patterns|errors)")
	analyzeCmd.Flags().String("format", "pretty", "output format (pretty|json|sarif)")
	analyzeCmd.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
	analyzeCmd.Flags().String("ui", "off", "progress view on stderr (auto|on|off)")
	analyzeCmd.Flags().Bool("disk-cache", false, "reuse reports cached on disk for unchanged files")
	analyzeCmd.Flags().Int("max-findings", 0, "maximum number of findings to show (0=all)")
	analyzeCmd.Flags().Int("context", 0, "source lines shown above each finding")
	analyzeCmd.Flags().Bool("fixes", true, "list applicable fixes under each finding")
	analyzeCmd.Flags().Bool("messages", false, "print the rule message under each finding")
	analyzeCmd.Flags().Bool("collapse-aliases", false, "drop alias findings reported on the same span as their canonical rule")
	analyzeCmd.Flags().String("paths", "auto", "how file paths are shown (auto|absolute|relative|basename)")
	analyzeCmd.Flags().String("stdin-filename", analysis.DefaultFilename, "file name reported for source read from stdin")
}

type analyzeFlags struct {
	typ             analysis.Type
	format          string
	jobs            int
	ui              switchMode
	diskCache       bool
	maxFindings     int
	context         int
	fixes           bool
	messages        bool
	collapseAliases bool
	pathMode        diagfmt.PathMode
	stdinName       string
}

func readAnalyzeFlags(cmd *cobra.Command) (analyzeFlags, error) {
	var (
		f   analyzeFlags
		err error
	)
	typStr, err := cmd.Flags().GetString("type")
	if err != nil {
		return f, fmt.Errorf("failed to get type flag: %w", err)
	}
	if f.typ, err = analysis.ParseType(typStr); err != nil {
		return f, err
	}
	if f.format, err = cmd.Flags().GetString("format"); err != nil {
		return f, fmt.Errorf("failed to get format flag: %w", err)
	}
	f.format = strings.ToLower(f.format)
	switch f.format {
	case "pretty", "json", "sarif":
	default:
		return f, fmt.Errorf("unknown format: %s", f.format)
	}
	if f.jobs, err = cmd.Flags().GetInt("jobs"); err != nil {
		return f, fmt.Errorf("failed to get jobs flag: %w", err)
	}
	uiStr, err := cmd.Flags().GetString("ui")
	if err != nil {
		return f, fmt.Errorf("failed to get ui flag: %w", err)
	}
	if f.ui, err = readSwitch("ui", uiStr); err != nil {
		return f, err
	}
	if f.diskCache, err = cmd.Flags().GetBool("disk-cache"); err != nil {
		return f, fmt.Errorf("failed to get disk-cache flag: %w", err)
	}
	if f.maxFindings, err = cmd.Flags().GetInt("max-findings"); err != nil {
		return f, fmt.Errorf("failed to get max-findings flag: %w", err)
	}
	if f.context, err = cmd.Flags().GetInt("context"); err != nil {
		return f, fmt.Errorf("failed to get context flag: %w", err)
	}
	if f.fixes, err = cmd.Flags().GetBool("fixes"); err != nil {
		return f, fmt.Errorf("failed to get fixes flag: %w", err)
	}
	if f.messages, err = cmd.Flags().GetBool("messages"); err != nil {
		return f, fmt.Errorf("failed to get messages flag: %w", err)
	}
	if f.collapseAliases, err = cmd.Flags().GetBool("collapse-aliases"); err != nil {
		return f, fmt.Errorf("failed to get collapse-aliases flag: %w", err)
	}
	pathStr, err := cmd.Flags().GetString("paths")
	if err != nil {
		return f, fmt.Errorf("failed to get paths flag: %w", err)
	}
	if f.pathMode, err = parsePathMode(pathStr); err != nil {
		return f, err
	}
	if f.stdinName, err = cmd.Flags().GetString("stdin-filename"); err != nil {
		return f, fmt.Errorf("failed to get stdin-filename flag: %w", err)
	}
	return f, nil
}

// runAnalyze analyzes the given paths, renders the reports in the chosen
// format and fails with errFindings when any error-level finding or parse
// failure was reported.
func runAnalyze(cmd *cobra.Command, args []string) (err error) {
	flags, err := readAnalyzeFlags(cmd)
	if err != nil {
		return err
	}
	tr, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil && !errors.Is(err, errFindings) {
			tr.dumpRing()
		}
		tr.Close()
	}()

	cfg, err := loadConfig(cmd, configStart(args))
	if err != nil {
		return err
	}
	a, err := newAnalyzer(cmd)
	if err != nil {
		return err
	}
	a.CollapseAliases = flags.collapseAliases
	ctx := cmd.Context()

	var (
		reports []analysis.Report
		sources = diagfmt.Sources{}
	)
	if len(args) == 1 && args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
		report := a.Analyze(ctx, analysis.Input{
			Source:       string(data),
			Filename:     flags.stdinName,
			AnalysisType: flags.typ,
			Config:       cfg,
		})
		reports = append(reports, report)
		sources[report.Filename] = string(data)
	} else {
		roots := args
		if len(roots) == 0 {
			roots = []string{"."}
		}
		paths, err := driver.Discover(roots, cfg)
		if err != nil {
			return err
		}
		results, err := analyzePaths(ctx, cmd, a, paths, cfg, flags)
		if err != nil {
			return err
		}
		for _, r := range results {
			sources[r.Path] = r.Source
		}
		reports = driver.Reports(results)
	}

	if err := renderReports(cmd, a, reports, sources, flags, args); err != nil {
		return err
	}
	printTimings(cmd.ErrOrStderr(), a.Timer)

	totals := diagfmt.Summarize(reports)
	if totals.Errors > 0 || totals.ParseFailures > 0 {
		return errFindings
	}
	return nil
}

type analyzeOutcome struct {
	results []driver.FileResult
	err     error
}

func analyzePaths(ctx context.Context, cmd *cobra.Command, a *analysis.Analyzer, paths []string, cfg *config.AnalysisConfig, flags analyzeFlags) ([]driver.FileResult, error) {
	opts := driver.Options{
		Jobs:         flags.jobs,
		AnalysisType: flags.typ,
		Config:       cfg,
		Timer:        a.Timer,
	}
	if flags.diskCache {
		cache, err := driver.OpenDiskCache("effectlint")
		if err != nil {
			return nil, fmt.Errorf("failed to open disk cache: %w", err)
		}
		opts.Cache = cache
	}
	if !shouldUseTUI(flags.ui) || len(paths) == 0 {
		return driver.AnalyzePaths(ctx, a, paths, opts)
	}

	events := make(chan driver.Event, 256)
	outcomeCh := make(chan analyzeOutcome, 1)
	go func() {
		o := opts
		o.Progress = driver.ChannelSink{Ch: events}
		res, err := driver.AnalyzePaths(ctx, a, paths, o)
		outcomeCh <- analyzeOutcome{results: res, err: err}
		close(events)
	}()

	uiErr := ui.Run(ctx, "analyzing", paths, events, cmd.ErrOrStderr())
	// The view may stop before the batch does; keep the producer unblocked.
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if uiErr != nil && outcome.err == nil {
		return outcome.results, uiErr
	}
	return outcome.results, outcome.err
}

func renderReports(cmd *cobra.Command, a *analysis.Analyzer, reports []analysis.Report, sources diagfmt.Sources, flags analyzeFlags, args []string) error {
	out := cmd.OutOrStdout()
	baseDir, _ := os.Getwd()
	switch flags.format {
	case "json":
		return diagfmt.JSON(out, reports, diagfmt.JSONOpts{
			PathMode: flags.pathMode,
			BaseDir:  baseDir,
			Max:      flags.maxFindings,
			Indent:   true,
		})
	case "sarif":
		return diagfmt.Sarif(out, reports, a.Catalog, diagfmt.SarifRunMeta{
			ToolName:       "effectlint",
			ToolVersion:    version.Version,
			InvocationArgs: append([]string{"effectlint", "analyze"}, args...),
			PathMode:       flags.pathMode,
			BaseDir:        baseDir,
		})
	default:
		on, err := useColor(cmd)
		if err != nil {
			return err
		}
		return diagfmt.Pretty(out, reports, sources, diagfmt.PrettyOpts{
			Color:       on,
			Context:     flags.context,
			PathMode:    flags.pathMode,
			BaseDir:     baseDir,
			Max:         flags.maxFindings,
			ShowFixes:   flags.fixes,
			ShowMessage: flags.messages,
		})
	}
}

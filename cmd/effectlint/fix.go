package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"effectlint/internal/analysis"
	"effectlint/internal/catalog"
	"effectlint/internal/config"
	"effectlint/internal/diagfmt"
	"effectlint/internal/driver"
	"effectlint/internal/finding"
)

var fixCmd = &cobra.Command{
	Use:   "fix [flags] [file.ts|directory]...",
	Short: "Preview or apply automatic fixes",
	Long: `Run codemods over TypeScript files and print the result as a unified diff.
Without --rule or --fix, every safe codemod offered by a finding is used.
Files are only modified with --write.`,
	RunE: runFix,
}

func init() {
	fixCmd.Flags().StringSlice("rule", nil, "apply the codemods of these rule ids")
	fixCmd.Flags().StringSlice("fix", nil, "apply these fix ids")
	fixCmd.Flags().Bool("write", false, "write changed files in place")
	fixCmd.Flags().String("format", "diff", "output format (diff|json|none)")
	fixCmd.Flags().Int("context", 3, "unchanged lines around each diff hunk")
	fixCmd.Flags().String("paths", "auto", "how file paths are shown (auto|absolute|relative|basename)")
}

func runFix(cmd *cobra.Command, args []string) (err error) {
	ruleIDs, err := cmd.Flags().GetStringSlice("rule")
	if err != nil {
		return fmt.Errorf("failed to get rule flag: %w", err)
	}
	fixIDs, err := cmd.Flags().GetStringSlice("fix")
	if err != nil {
		return fmt.Errorf("failed to get fix flag: %w", err)
	}
	write, err := cmd.Flags().GetBool("write")
	if err != nil {
		return fmt.Errorf("failed to get write flag: %w", err)
	}
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	format = strings.ToLower(format)
	switch format {
	case "diff", "json", "none":
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	diffContext, err := cmd.Flags().GetInt("context")
	if err != nil {
		return fmt.Errorf("failed to get context flag: %w", err)
	}
	pathStr, err := cmd.Flags().GetString("paths")
	if err != nil {
		return fmt.Errorf("failed to get paths flag: %w", err)
	}
	pathMode, err := parsePathMode(pathStr)
	if err != nil {
		return err
	}

	tr, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
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
	ctx := cmd.Context()

	roots := args
	if len(roots) == 0 {
		roots = []string{"."}
	}
	paths, err := driver.Discover(roots, cfg)
	if err != nil {
		return err
	}

	ids, err := selectFixes(ctx, cmd, a, cfg, paths, ruleIDs, fixIDs)
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		fmt.Fprintln(cmd.ErrOrStderr(), "no applicable fixes")
		return nil
	}

	res := driver.FixPaths(ctx, a, paths, ids, nil)
	for _, id := range res.UnknownFix {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: no codemod for fix %q\n", id)
	}
	for _, f := range res.Failed {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s: skipped: %s\n", f.Filename, f.Reason)
	}

	baseDir, _ := os.Getwd()
	switch format {
	case "json":
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(res); err != nil {
			return err
		}
	case "diff":
		on, err := useColor(cmd)
		if err != nil {
			return err
		}
		if err := diagfmt.Diff(cmd.OutOrStdout(), res.Changes, diagfmt.DiffOpts{
			Color:    on,
			Context:  diffContext,
			PathMode: pathMode,
			BaseDir:  baseDir,
		}); err != nil {
			return err
		}
	}

	if write {
		if err := driver.WriteChanges(res.Changes); err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "wrote %d %s\n", len(res.Changes), plural(len(res.Changes), "file"))
	}
	printTimings(cmd.ErrOrStderr(), a.Timer)
	return nil
}

// selectFixes resolves the fix ids to run. Explicit --fix ids are used as
// given; --rule ids contribute their codemods unless the configuration turns
// the rule off. With neither, the files are analyzed and every safe codemod
// a finding offers is collected.
func selectFixes(ctx context.Context, cmd *cobra.Command, a *analysis.Analyzer, cfg *config.AnalysisConfig, paths, ruleIDs, fixIDs []string) ([]string, error) {
	var ids []string
	add := func(id string) {
		if !slices.Contains(ids, id) {
			ids = append(ids, id)
		}
	}
	for _, id := range fixIDs {
		add(id)
	}
	if len(ruleIDs) > 0 {
		resolved := config.Resolve(a.Catalog, cfg)
		for _, rule := range ruleIDs {
			if _, ok := a.Catalog.Rule(rule); !ok {
				return nil, fmt.Errorf("unknown rule %q", rule)
			}
			if resolved.Level(rule) == catalog.LevelOff {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: rule %q is turned off by configuration\n", rule)
				continue
			}
			for _, id := range a.CodemodFixes(rule) {
				add(id)
			}
		}
	}
	if len(fixIDs) > 0 || len(ruleIDs) > 0 {
		return ids, nil
	}

	results, err := driver.AnalyzePaths(ctx, a, paths, driver.Options{Config: cfg, Timer: a.Timer})
	if err != nil {
		return nil, err
	}
	for _, r := range results {
		for _, f := range finding.FindingsWithSafeFixes(r.Report.Findings) {
			for _, fx := range finding.FilterFixesBySafety(f.ApplicableFixes, catalog.SafetySafe) {
				if fx.Kind == catalog.KindCodemod && a.Engine.Has(fx.ID) {
					add(fx.ID)
				}
			}
		}
	}
	slices.SortFunc(ids, func(x, y string) int { return a.Catalog.FixOrder(x) - a.Catalog.FixOrder(y) })
	return ids, nil
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"effectlint/internal/catalog"
	"effectlint/internal/config"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the rule catalog with the configured levels",
	Args:  cobra.NoArgs,
	RunE:  runRules,
}

func init() {
	rulesCmd.Flags().StringSlice("category", nil, "only list rules in these categories")
	rulesCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	rulesCmd.Flags().Bool("fixable", false, "only list rules with an automatic fix")
}

type ruleRow struct {
	catalog.Rule
	Level   catalog.Level `json:"level"`
	Codemod []string      `json:"codemods,omitempty"`
}

func runRules(cmd *cobra.Command, args []string) error {
	categories, err := cmd.Flags().GetStringSlice("category")
	if err != nil {
		return fmt.Errorf("failed to get category flag: %w", err)
	}
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	fixable, err := cmd.Flags().GetBool("fixable")
	if err != nil {
		return fmt.Errorf("failed to get fixable flag: %w", err)
	}

	cfg, err := loadConfig(cmd, ".")
	if err != nil {
		return err
	}
	a, err := newAnalyzer(cmd)
	if err != nil {
		return err
	}
	known := a.Catalog.Categories()
	allowed := make(map[string]bool, len(categories))
	for _, c := range categories {
		if !slices.Contains(known, c) {
			return fmt.Errorf("unknown category %q (expected one of %s)", c, strings.Join(known, ", "))
		}
		allowed[c] = true
	}

	resolved := config.Resolve(a.Catalog, cfg)
	var rows []ruleRow
	for _, r := range a.Catalog.Rules() {
		if len(allowed) > 0 && !allowed[r.Category] {
			continue
		}
		row := ruleRow{Rule: r, Level: resolved.Level(r.ID), Codemod: a.CodemodFixes(r.ID)}
		if fixable && len(row.Codemod) == 0 {
			continue
		}
		rows = append(rows, row)
	}
	slices.SortStableFunc(rows, func(x, y ruleRow) int {
		return slices.Index(known, x.Category) - slices.Index(known, y.Category)
	})

	switch strings.ToLower(format) {
	case "json":
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	case "pretty":
		on, err := useColor(cmd)
		if err != nil {
			return err
		}
		renderRules(cmd.OutOrStdout(), rows, on)
		return nil
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

var (
	ruleHeaderStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	levelStyles     = map[catalog.Level]lipgloss.Style{
		catalog.LevelError: lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		catalog.LevelWarn:  lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		catalog.LevelOff:   lipgloss.NewStyle().Faint(true),
	}
)

// renderRules prints one line per rule, grouped by category in catalog order.
func renderRules(w io.Writer, rows []ruleRow, styled bool) {
	idWidth := 0
	for _, r := range rows {
		idWidth = max(idWidth, runewidth.StringWidth(r.ID))
	}
	category := ""
	for _, r := range rows {
		if r.Category != category {
			if category != "" {
				fmt.Fprintln(w)
			}
			category = r.Category
			if styled {
				fmt.Fprintln(w, ruleHeaderStyle.Render(category))
			} else {
				fmt.Fprintln(w, category)
			}
		}
		level := runewidth.FillRight(string(r.Level), 5)
		if st, ok := levelStyles[r.Level]; ok && styled {
			level = st.Render(level)
		}
		fix := " "
		if len(r.Codemod) > 0 {
			fix = "*"
		}
		fmt.Fprintf(w, "  %s %s %s %s\n", level, fix, runewidth.FillRight(r.ID, idWidth), r.Title)
	}
	if len(rows) > 0 {
		fmt.Fprintln(w, "\n* has an automatic fix")
	}
}

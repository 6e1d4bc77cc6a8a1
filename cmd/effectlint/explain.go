package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var explainCmd = &cobra.Command{
	Use:   "explain <rule-id>",
	Short: "Describe a rule, its fixes and how to resolve it",
	Args:  cobra.ExactArgs(1),
	RunE:  runExplain,
}

func init() {
	explainCmd.Flags().String("format", "pretty", "output format (pretty|markdown|json)")
	explainCmd.Flags().Int("width", 0, "wrap width for pretty output (0=terminal width)")
}

func runExplain(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	width, err := cmd.Flags().GetInt("width")
	if err != nil {
		return fmt.Errorf("failed to get width flag: %w", err)
	}
	a, err := newAnalyzer(cmd)
	if err != nil {
		return err
	}
	ex, ok := a.Explain(args[0])
	if !ok {
		msg := fmt.Sprintf("unknown rule %q", args[0])
		if ids := suggestRule(args[0], a.Catalog.RuleIDs()); ids != "" {
			msg += ", did you mean " + ids + "?"
		}
		return errors.New(msg)
	}

	out := cmd.OutOrStdout()
	switch strings.ToLower(format) {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(ex)
	case "markdown", "md":
		_, err := fmt.Fprint(out, ex.Markdown())
		return err
	case "pretty":
		on, err := useColor(cmd)
		if err != nil {
			return err
		}
		if !on {
			_, err := fmt.Fprint(out, ex.Markdown())
			return err
		}
		rendered, err := renderMarkdown(ex.Markdown(), wrapWidth(width))
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(out, rendered)
		return err
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func renderMarkdown(md string, width int) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("markdown renderer: %w", err)
	}
	return r.Render(md)
}

func wrapWidth(flagWidth int) int {
	if flagWidth > 0 {
		return flagWidth
	}
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return min(w, 100)
	}
	return 80
}

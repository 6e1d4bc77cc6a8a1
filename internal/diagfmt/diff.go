package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"effectlint/internal/refactor"
)

// DiffOpts configures unified diff output.
type DiffOpts struct {
	Color    bool
	Context  int // unchanged lines around each hunk, default 3
	PathMode PathMode
	BaseDir  string
}

// Diff writes one unified diff per change, in order.
func Diff(w io.Writer, changes []refactor.FileChange, opts DiffOpts) error {
	p := newPalette(opts.Color)
	ctxLines := opts.Context
	if ctxLines <= 0 {
		ctxLines = 3
	}
	var sb strings.Builder
	for _, ch := range changes {
		path := formatPath(ch.Filename, opts.PathMode, opts.BaseDir)
		text, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
			A:        splitLines(ch.Before),
			B:        splitLines(ch.After),
			FromFile: "a/" + path,
			ToFile:   "b/" + path,
			Context:  ctxLines,
		})
		if err != nil {
			return fmt.Errorf("diff %s: %w", ch.Filename, err)
		}
		for _, line := range strings.SplitAfter(text, "\n") {
			sb.WriteString(colorDiffLine(p, line))
		}
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func colorDiffLine(p palette, line string) string {
	body := strings.TrimSuffix(line, "\n")
	nl := line[len(body):]
	switch {
	case body == "":
		return line
	case strings.HasPrefix(body, "+++"), strings.HasPrefix(body, "---"):
		return p.path(body) + nl
	case strings.HasPrefix(body, "@@"):
		return p.code(body) + nl
	case body[0] == '+':
		return p.caret(body) + nl
	case body[0] == '-':
		return p.err(body) + nl
	}
	return line
}

// splitLines splits s after each newline. Unlike difflib.SplitLines it adds
// no empty trailing line; a last line without a newline gets one.
func splitLines(s string) []string {
	lines := strings.SplitAfter(s, "\n")
	if lines[len(lines)-1] == "" {
		return lines[:len(lines)-1]
	}
	lines[len(lines)-1] += "\n"
	return lines
}

package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"effectlint/internal/analysis"
	"effectlint/internal/catalog"
	"effectlint/internal/finding"
	"effectlint/internal/source"
)

// Sources maps report file names to the text that was analyzed. Findings
// whose file is missing are printed without a source excerpt.
type Sources map[string]string

const tabWidth = 4

// Pretty prints reports in a compiler-like layout:
//
//	<path>:<line>:<col>: <level>[<rule>] <title>
//	  <n> | <source line>
//	      |     ^~~~
//	  = fix: <id> (<safety>) <title>
//
// followed by a one-line summary.
func Pretty(w io.Writer, reports []analysis.Report, src Sources, opts PrettyOpts) error {
	p := newPalette(opts.Color)
	var sb strings.Builder
	shown, total := 0, 0
	for _, r := range reports {
		path := formatPath(r.Filename, opts.PathMode, opts.BaseDir)
		if r.ParseError != nil {
			pe := r.ParseError
			fmt.Fprintf(&sb, "%s:%d:%d: %s %s\n", p.path(path), pe.Range.StartLine, pe.Range.StartCol,
				p.err("error["+pe.Code+"]"), pe.Message)
			continue
		}
		var file *source.File
		if text, ok := src[r.Filename]; ok {
			fs := source.NewFileSet()
			file = fs.Get(fs.AddVirtual(r.Filename, []byte(text)))
		}
		for _, f := range r.Findings {
			total++
			if opts.Max > 0 && shown >= opts.Max {
				continue
			}
			shown++
			writeFinding(&sb, p, path, f, file, opts)
		}
	}
	if hidden := total - shown; hidden > 0 {
		fmt.Fprintf(&sb, "%s\n", p.dim(fmt.Sprintf("... %d more %s not shown", hidden, plural(hidden, "finding"))))
	}
	sb.WriteString(Summarize(reports).String() + "\n")
	_, err := io.WriteString(w, sb.String())
	return err
}

func writeFinding(sb *strings.Builder, p palette, path string, f finding.Finding, file *source.File, opts PrettyOpts) {
	label := p.warn("warning[" + f.RuleID + "]")
	if f.Level == catalog.LevelError {
		label = p.err("error[" + f.RuleID + "]")
	}
	fmt.Fprintf(sb, "%s:%d:%d: %s %s\n", p.path(path), f.Range.StartLine, f.Range.StartCol, label, f.Title)
	if file != nil {
		writeExcerpt(sb, p, file, f.Range, opts.Context)
	}
	if opts.ShowMessage {
		fmt.Fprintf(sb, "  %s %s\n", p.note("="), f.Message)
	}
	if opts.ShowFixes {
		for _, fx := range f.ApplicableFixes {
			fmt.Fprintf(sb, "  %s fix: %s (%s, %s) %s\n", p.note("="), p.code(fx.ID), fx.Safety, fx.Kind, fx.Title)
		}
	}
}

func writeExcerpt(sb *strings.Builder, p palette, file *source.File, rng source.Range, context int) {
	gutter := len(fmt.Sprint(rng.StartLine))
	first := max(int(rng.StartLine)-max(context, 0), 1)
	for n := first; n <= int(rng.StartLine); n++ {
		line := file.GetLine(uint32(n))
		fmt.Fprintf(sb, "  %*d %s %s\n", gutter, n, p.dim("|"), expandTabs(line))
	}
	line := file.GetLine(rng.StartLine)
	start := byteOffset(line, rng.StartCol)
	end := len(line)
	if rng.EndLine == rng.StartLine {
		end = max(byteOffset(line, rng.EndCol), start)
	}
	pad := runewidth.StringWidth(expandTabs(line[:start]))
	width := max(runewidth.StringWidth(expandTabs(line[start:end])), 1)
	marker := "^" + strings.Repeat("~", width-1)
	fmt.Fprintf(sb, "  %s %s %s%s\n", strings.Repeat(" ", gutter), p.dim("|"), strings.Repeat(" ", pad), p.caret(marker))
}

// byteOffset converts a 1-based UTF-16 column into a byte offset in line.
func byteOffset(line string, col uint32) int {
	units := uint32(1)
	for i, r := range line {
		if units >= col {
			return i
		}
		if r >= 0x10000 {
			units += 2
		} else {
			units++
		}
	}
	return len(line)
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", tabWidth))
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}

// Totals counts the contents of a report set.
type Totals struct {
	Files         int `json:"files"`
	Findings      int `json:"findings"`
	Errors        int `json:"errors"`
	Warnings      int `json:"warnings"`
	ParseFailures int `json:"parseFailures"`
}

// Summarize counts findings by level.
func Summarize(reports []analysis.Report) Totals {
	t := Totals{Files: len(reports)}
	for _, r := range reports {
		if r.ParseError != nil {
			t.ParseFailures++
		}
		for _, f := range r.Findings {
			t.Findings++
			if f.Level == catalog.LevelError {
				t.Errors++
			} else {
				t.Warnings++
			}
		}
	}
	return t
}

func (t Totals) String() string {
	s := fmt.Sprintf("%d %s (%d %s, %d %s) in %d %s",
		t.Findings, plural(t.Findings, "finding"),
		t.Errors, plural(t.Errors, "error"),
		t.Warnings, plural(t.Warnings, "warning"),
		t.Files, plural(t.Files, "file"))
	if t.ParseFailures > 0 {
		s += fmt.Sprintf("; %d %s failed to parse", t.ParseFailures, plural(t.ParseFailures, "file"))
	}
	return s
}

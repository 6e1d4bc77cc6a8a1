package printer

import (
	"strings"

	"effectlint/internal/source"
)

// Writer accumulates printed output and tracks indentation.
type Writer struct {
	sf          *source.File
	opt         Options
	buf         []byte
	indentLevel int
	atLineStart bool
}

func NewWriter(sf *source.File, opt Options) *Writer {
	return &Writer{sf: sf, opt: opt.withDefaults()}
}

func (w *Writer) String() string { return string(w.buf) }

func (w *Writer) writeIndent() {
	if !w.atLineStart {
		return
	}
	w.buf = append(w.buf, w.opt.BaseIndent...)
	for range w.indentLevel {
		w.buf = append(w.buf, w.opt.Indent...)
	}
	w.atLineStart = false
}

// WriteString writes s, indenting first when at the start of a line.
func (w *Writer) WriteString(s string) {
	if s == "" {
		return
	}
	w.writeIndent()
	w.buf = append(w.buf, s...)
	w.atLineStart = s[len(s)-1] == '\n'
}

func (w *Writer) Newline() {
	w.buf = append(w.buf, '\n')
	w.atLineStart = true
}

func (w *Writer) IndentPush() { w.indentLevel++ }

func (w *Writer) IndentPop() {
	if w.indentLevel > 0 {
		w.indentLevel--
	}
}

// CopySpan copies original source text. Continuation lines of a multi-line
// span are re-indented relative to the current nesting.
func (w *Writer) CopySpan(sp source.Span) {
	if w.sf == nil || sp.File != w.sf.ID || sp.Start >= sp.End || int(sp.End) > len(w.sf.Content) {
		return
	}
	text := string(w.sf.Content[sp.Start:sp.End])
	if w.indentLevel == 0 || !strings.Contains(text, "\n") {
		w.WriteString(text)
		return
	}
	extra := strings.Repeat(w.opt.Indent, w.indentLevel)
	w.WriteString(strings.ReplaceAll(text, "\n", "\n"+extra))
}

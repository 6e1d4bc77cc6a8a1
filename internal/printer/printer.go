package printer

import (
	"effectlint/internal/ast"
)

type Options struct {
	// Indent is one nesting level; two spaces when empty.
	Indent string
	// BaseIndent prefixes every line after the first, usually the
	// indentation of the line the printed node starts on.
	BaseIndent string
}

func (o Options) withDefaults() Options {
	if o.Indent == "" {
		o.Indent = "  "
	}
	return o
}

type printer struct {
	tree   *ast.Tree
	writer *Writer
}

// Print renders the subtree rooted at id.
func Print(t *ast.Tree, id ast.NodeID, opt Options) string {
	p := printer{tree: t, writer: NewWriter(t.File, opt)}
	p.print(id)
	return p.writer.String()
}

// LineIndent returns the leading whitespace of the line containing off.
func LineIndent(t *ast.Tree, off uint32) string {
	content := t.File.Content
	if int(off) > len(content) {
		off = uint32(len(content))
	}
	start := int(off)
	for start > 0 && content[start-1] != '\n' {
		start--
	}
	end := start
	for end < len(content) && (content[end] == ' ' || content[end] == '\t') {
		end++
	}
	return string(content[start:end])
}

func (p *printer) print(id ast.NodeID) {
	n := p.tree.Node(id)
	if n == nil {
		return
	}
	if !n.Has(ast.FlagSynthetic) {
		p.writer.CopySpan(n.Span)
		return
	}
	if n.Kind >= ast.Block && n.Kind <= ast.ModuleDecl {
		p.printStmt(id, n)
		return
	}
	p.printExpr(id, n)
}

func (p *printer) write(s string) { p.writer.WriteString(s) }

// list prints ids separated by sep.
func (p *printer) list(ids []ast.NodeID, sep string) {
	for i, id := range ids {
		if i > 0 {
			p.write(sep)
		}
		p.printAt(id, levelAssign)
	}
}

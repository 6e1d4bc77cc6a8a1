package parser

import (
	"effectlint/internal/ast"
	"effectlint/internal/diag"
	"effectlint/internal/lexer"
	"effectlint/internal/source"
	"effectlint/internal/token"
)

const defaultMaxDepth = 1000

type Options struct {
	// Reporter receives every lexical error and the first syntax error. Parsing
	// stops at that error:
	// a file that does not parse is reported as a whole, never partially analysed.
	Reporter diag.Reporter
	MaxDepth int
}

type Result struct {
	Tree *ast.Tree
	Bag  *diag.Bag
}

// OK reports whether the file parsed without errors.
func (r Result) OK() bool {
	return r.Tree != nil && (r.Bag == nil || !r.Bag.HasErrors())
}

// Parser holds the state for one file.
type Parser struct {
	file    *source.File
	toks    []token.Token
	pos     int
	tree    *ast.Tree
	opts    Options
	lastEnd uint32 // end offset of the last consumed token
	spec    int    // speculation depth; errors inside speculation only unwind
	depth   int
	refs    *[]ast.NodeID // TypeRef collector of the type annotation being parsed
}

// bailout unwinds the parser after the first error.
type bailout struct{}

// ParseFile lexes and parses one file. On failure the returned Tree is nil and
// Bag holds the diagnostic.
func ParseFile(file *source.File, opts Options) Result {
	bag := diag.NewBag(16)
	var reporter diag.Reporter = diag.BagReporter{Bag: bag}
	if opts.Reporter != nil {
		reporter = multiReporter{reporter, opts.Reporter}
	}
	opts.Reporter = reporter
	if opts.MaxDepth == 0 {
		opts.MaxDepth = defaultMaxDepth
	}

	// The lexer recovers and keeps reporting; parsing is skipped once it has.
	toks := lexer.Tokenize(file, lexer.Options{Reporter: reporter})
	if bag.HasErrors() {
		bag.Sort()
		bag.Dedup()
		return Result{Bag: bag}
	}

	p := &Parser{
		file: file,
		toks: toks,
		tree: ast.NewTree(file, uint(len(toks))),
		opts: opts,
	}
	if !p.run() {
		return Result{Bag: bag}
	}
	return Result{Tree: p.tree, Bag: bag}
}

func (p *Parser) run() (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			if _, isBail := r.(bailout); !isBail {
				panic(r)
			}
			ok = false
		}
	}()
	p.parseSourceFile()
	return true
}

func (p *Parser) parseSourceFile() {
	var stmts []ast.NodeID
	for !p.at(token.EOF) {
		stmts = append(stmts, p.parseStatement())
	}
	for _, tok := range p.toks {
		for _, tr := range tok.Leading {
			if tr.IsComment() {
				p.tree.Comments = append(p.tree.Comments, tr)
			}
		}
	}
	end := uint32(len(p.file.Content))
	p.tree.Root = p.tree.New(ast.File, source.Span{File: p.file.ID, Start: 0, End: end}, "", 0, stmts...)
}

type multiReporter []diag.Reporter

func (m multiReporter) Report(code diag.Code, sev diag.Severity, primary source.Span, msg string, notes []diag.Note) {
	for _, r := range m {
		r.Report(code, sev, primary, msg, notes)
	}
}

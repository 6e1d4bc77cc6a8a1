package parser

import (
	"fmt"

	"effectlint/internal/ast"
	"effectlint/internal/diag"
	"effectlint/internal/source"
	"effectlint/internal/token"
)

func (p *Parser) cur() token.Token { return p.toks[p.pos] }

// peek returns the token n positions ahead; the EOF token repeats past the end.
func (p *Parser) peek(n int) token.Token {
	i := p.pos + n
	if i >= len(p.toks) {
		i = len(p.toks) - 1
	}
	return p.toks[i]
}

func (p *Parser) at(k token.Kind) bool { return p.toks[p.pos].Kind == k }

func (p *Parser) atContextual(text string) bool { return p.toks[p.pos].IsContextual(text) }

// advance consumes the current token and updates lastEnd.
func (p *Parser) advance() token.Token {
	tok := p.toks[p.pos]
	if tok.Kind != token.EOF {
		p.pos++
		p.lastEnd = tok.Span.End
	}
	return tok
}

func (p *Parser) eat(k token.Kind) bool {
	if p.at(k) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) eatContextual(text string) bool {
	if p.atContextual(text) {
		p.advance()
		return true
	}
	return false
}

// expect consumes a token of kind k or fails the parse.
func (p *Parser) expect(k token.Kind) token.Token {
	if p.at(k) {
		return p.advance()
	}
	code := diag.SynUnexpectedToken
	switch k {
	case token.RParen, token.RBrace, token.RBracket, token.Gt:
		code = diag.SynUnclosedDelimiter
	case token.Ident:
		code = diag.SynExpectIdentifier
	}
	p.fail(code, p.cur().Span, fmt.Sprintf("expected '%s', found '%s'", k, p.describe(p.cur())))
	return token.Token{}
}

func (p *Parser) describe(tok token.Token) string {
	if tok.Kind == token.EOF {
		return "end of file"
	}
	return tok.Text
}

// fail reports an error and unwinds. Inside speculation nothing is reported.
func (p *Parser) fail(code diag.Code, sp source.Span, msg string) {
	if p.spec == 0 && p.opts.Reporter != nil {
		diag.ReportError(p.opts.Reporter, code, sp, msg).Emit()
	}
	panic(bailout{})
}

func (p *Parser) unexpected() {
	tok := p.cur()
	p.fail(diag.SynUnexpectedToken, tok.Span, fmt.Sprintf("unexpected '%s'", p.describe(tok)))
}

// speculate runs f and rewinds the parser when it fails or returns false.
func (p *Parser) speculate(f func() bool) bool {
	savePos, saveEnd := p.pos, p.lastEnd
	saveNodes := p.tree.Nodes.Len()
	saveDepth := p.depth
	var saveRefs []ast.NodeID
	if p.refs != nil {
		saveRefs = append(saveRefs, (*p.refs)...)
	}

	p.spec++
	ok := func() (ok bool) {
		defer func() {
			if r := recover(); r != nil {
				if _, isBail := r.(bailout); !isBail {
					panic(r)
				}
				ok = false
			}
		}()
		return f()
	}()
	p.spec--

	if !ok {
		p.pos, p.lastEnd = savePos, saveEnd
		p.depth = saveDepth
		p.tree.Nodes.Truncate(saveNodes)
		if p.refs != nil {
			*p.refs = saveRefs
		}
	}
	return ok
}

func (p *Parser) enter() {
	p.depth++
	if p.depth > p.opts.MaxDepth {
		p.fail(diag.SynTooDeep, p.cur().Span, "expression nesting is too deep")
	}
}

func (p *Parser) leave() { p.depth-- }

// canInsertSemicolon reports whether automatic semicolon insertion applies here.
func (p *Parser) canInsertSemicolon() bool {
	tok := p.cur()
	return tok.Kind == token.Semicolon || tok.Kind == token.RBrace || tok.Kind == token.EOF || tok.NewlineBefore()
}

func (p *Parser) consumeSemicolon() {
	if p.eat(token.Semicolon) {
		return
	}
	if p.canInsertSemicolon() {
		return
	}
	tok := p.cur()
	p.fail(diag.SynExpectSemicolon, tok.Span, fmt.Sprintf("expected ';', found '%s'", p.describe(tok)))
}

func (p *Parser) start() uint32 { return p.cur().Span.Start }

func (p *Parser) spanFrom(start uint32) source.Span {
	end := p.lastEnd
	if end < start {
		end = start
	}
	return source.Span{File: p.file.ID, Start: start, End: end}
}

func (p *Parser) node(kind ast.Kind, start uint32, text string, flags ast.Flags, kids ...ast.NodeID) ast.NodeID {
	return p.tree.New(kind, p.spanFrom(start), text, flags, kids...)
}

// leaf consumes the current token into a node spanning exactly that token.
func (p *Parser) leaf(kind ast.Kind, text string) ast.NodeID {
	tok := p.advance()
	return p.tree.New(kind, tok.Span, text, 0)
}

// ident consumes an identifier-like token as an Ident node.
func (p *Parser) ident() ast.NodeID {
	tok := p.cur()
	if !isBindingIdent(tok) {
		p.fail(diag.SynExpectIdentifier, tok.Span, fmt.Sprintf("expected identifier, found '%s'", p.describe(tok)))
	}
	return p.leaf(ast.Ident, ast.IdentName(tok.Text))
}

// identName consumes any identifier or reserved word, as used after '.'.
func (p *Parser) identName() ast.NodeID {
	tok := p.cur()
	if !tok.IsIdentName() {
		p.fail(diag.SynExpectIdentifier, tok.Span, fmt.Sprintf("expected property name, found '%s'", p.describe(tok)))
	}
	return p.leaf(ast.Ident, ast.IdentName(tok.Text))
}

// isBindingIdent accepts identifiers and the reserved words that are only
// contextually reserved.
func isBindingIdent(tok token.Token) bool {
	switch tok.Kind {
	case token.Ident, token.KwYield, token.KwAwait, token.KwLet:
		return true
	}
	return false
}

// adjacent reports whether b starts exactly where a ends.
func adjacent(a, b token.Token) bool { return a.Span.End == b.Span.Start }

// gtOperator fuses the '>' run at the cursor with a following '=' into one
// operator and returns it with the number of tokens it spans.
func (p *Parser) gtOperator() (string, int) {
	if !p.at(token.Gt) {
		return "", 0
	}
	op, n := ">", 1
	prev := p.cur()
	for n < 3 {
		next := p.peek(n)
		if next.Kind != token.Gt || !adjacent(prev, next) {
			break
		}
		op += ">"
		n++
		prev = next
	}
	if next := p.peek(n); next.Kind == token.Assign && adjacent(prev, next) {
		return op + "=", n + 1
	}
	return op, n
}

// matchingClose returns the index of the token closing the bracket at index
// i, or -1 when the brackets are unbalanced.
func (p *Parser) matchingClose(i int) int {
	depth := 0
	for j := i; j < len(p.toks); j++ {
		switch p.toks[j].Kind {
		case token.LParen, token.LBracket, token.LBrace, token.TemplateHead:
			depth++
		case token.RParen, token.RBracket, token.RBrace, token.TemplateTail:
			depth--
			if depth == 0 {
				return j
			}
		case token.EOF:
			return -1
		}
	}
	return -1
}

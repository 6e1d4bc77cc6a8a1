package parser

import (
	"effectlint/internal/ast"
	"effectlint/internal/diag"
	"effectlint/internal/token"
)

// Types are parsed by grammar but kept flat: every named or keyword type
// that appears becomes a TypeRef leaf of the enclosing type position.

// collectRefs runs f with a fresh TypeRef collector and returns what it gathered.
func (p *Parser) collectRefs(f func()) []ast.NodeID {
	outer := p.refs
	var refs []ast.NodeID
	p.refs = &refs
	defer func() { p.refs = outer }()
	f()
	return refs
}

// collectType wraps the type parsed by f into a TypeExpr node.
func (p *Parser) collectType(f func()) ast.NodeID {
	start := p.start()
	refs := p.collectRefs(f)
	return p.node(ast.TypeExpr, start, "", 0, refs...)
}

// parseTypeAnnotation parses the type after ':' or 'as'.
func (p *Parser) parseTypeAnnotation() ast.NodeID {
	return p.collectType(p.parseType)
}

// parseReturnType parses a return type, which may be a type predicate.
func (p *Parser) parseReturnType() ast.NodeID {
	return p.collectType(p.parseTypeOrPredicate)
}

// parseTypeParamsOpt parses '<T extends C = D, ...>' when present.
func (p *Parser) parseTypeParamsOpt() ast.NodeID {
	if !p.at(token.Lt) {
		return ast.NoNode
	}
	start := p.start()
	refs := p.collectRefs(p.parseTypeParamList)
	return p.node(ast.TypeParams, start, "", 0, refs...)
}

// parseTypeArgs parses '<A, B>' into a TypeArgs node.
func (p *Parser) parseTypeArgs() ast.NodeID {
	start := p.start()
	refs := p.collectRefs(p.parseTypeArgList)
	return p.node(ast.TypeArgs, start, "", 0, refs...)
}

func (p *Parser) parseTypeArgList() {
	p.expect(token.Lt)
	if p.at(token.Gt) {
		p.fail(diag.SynExpectType, p.cur().Span, "expected type argument")
	}
	for {
		p.parseType()
		if !p.eat(token.Comma) || p.at(token.Gt) {
			break
		}
	}
	p.expect(token.Gt)
}

// addRef records a TypeRef spanning from start to the last consumed token.
func (p *Parser) addRef(start uint32, text string) {
	id := p.node(ast.TypeRef, start, text, 0)
	if p.refs != nil {
		*p.refs = append(*p.refs, id)
	}
}

func (p *Parser) parseType() {
	p.enter()
	defer p.leave()

	if p.startsFunctionType() {
		p.parseFunctionType()
		return
	}
	p.parseUnionType()
	if p.at(token.KwExtends) && !p.cur().NewlineBefore() {
		p.advance()
		p.parseUnionType()
		p.expect(token.Question)
		p.parseType()
		p.expect(token.Colon)
		p.parseType()
	}
}

func (p *Parser) parseTypeOrPredicate() {
	switch {
	case p.atContextual("asserts") && (isBindingIdent(p.peek(1)) || p.peek(1).Kind == token.KwThis) && !p.peek(1).NewlineBefore():
		start := p.start()
		p.advance()
		p.addRef(start, "asserts")
		p.advance()
		if p.eatContextual("is") {
			p.parseType()
		}
	case (isBindingIdent(p.cur()) || p.at(token.KwThis)) && p.peek(1).IsContextual("is") && !p.peek(1).NewlineBefore():
		p.advance()
		p.advance()
		p.parseType()
	default:
		p.parseType()
	}
}

func (p *Parser) startsFunctionType() bool {
	switch {
	case p.at(token.Lt), p.at(token.KwNew):
		return true
	case p.atContextual("abstract") && p.peek(1).Kind == token.KwNew:
		return true
	case p.at(token.LParen):
		closeIdx := p.matchingClose(p.pos)
		return closeIdx >= 0 && p.toks[closeIdx+1].Kind == token.FatArrow
	}
	return false
}

// parseFunctionType parses '<T>(a: A) => R' and 'new (...) => R'.
func (p *Parser) parseFunctionType() {
	p.eatContextual("abstract")
	p.eat(token.KwNew)
	p.parseSignature(token.FatArrow)
}

// parseSignature parses type parameters, a parameter list and a return type
// introduced by arrow (':' for members, '=>' for function types).
func (p *Parser) parseSignature(arrow token.Kind) {
	if p.at(token.Lt) {
		p.parseTypeParamList()
	}
	p.parseSignatureParams()
	if arrow == token.FatArrow {
		p.expect(token.FatArrow)
		p.parseTypeOrPredicate()
		return
	}
	if p.eat(token.Colon) {
		p.parseTypeOrPredicate()
	}
}

// parseTypeParamList parses type parameters into the current collector.
func (p *Parser) parseTypeParamList() {
	p.expect(token.Lt)
	for !p.at(token.Gt) {
		for (p.at(token.KwConst) || p.at(token.KwIn) || p.atContextual("out")) && isBindingIdent(p.peek(1)) {
			p.advance()
		}
		p.ident()
		if p.eat(token.KwExtends) {
			p.parseType()
		}
		if p.eat(token.Assign) {
			p.parseType()
		}
		if !p.eat(token.Comma) {
			break
		}
	}
	p.expect(token.Gt)
}

// parseSignatureParams parses a parameter list whose types flow into the
// current collector.
func (p *Parser) parseSignatureParams() {
	p.expect(token.LParen)
	for !p.at(token.RParen) {
		for {
			if _, ok := p.paramModifier(); !ok {
				break
			}
			p.advance()
		}
		p.eat(token.DotDotDot)
		switch {
		case p.at(token.KwThis):
			p.advance()
		case p.at(token.LBrace) || p.at(token.LBracket):
			p.skipBalanced()
		default:
			p.ident()
		}
		p.eat(token.Question)
		if p.eat(token.Colon) {
			p.parseType()
		}
		if !p.eat(token.Comma) {
			break
		}
	}
	p.expect(token.RParen)
}

// skipBalanced consumes a bracketed token run such as a destructuring
// pattern inside a signature.
func (p *Parser) skipBalanced() {
	closeIdx := p.matchingClose(p.pos)
	if closeIdx < 0 {
		p.fail(diag.SynUnclosedDelimiter, p.cur().Span, "unclosed delimiter")
	}
	for p.pos <= closeIdx {
		p.advance()
	}
}

func (p *Parser) parseUnionType() {
	p.eat(token.Pipe)
	p.parseIntersectionType()
	for p.eat(token.Pipe) {
		p.parseIntersectionType()
	}
}

func (p *Parser) parseIntersectionType() {
	p.eat(token.Amp)
	p.parseTypeOperator()
	for p.eat(token.Amp) {
		p.parseTypeOperator()
	}
}

func (p *Parser) parseTypeOperator() {
	tok := p.cur()
	if tok.IsContextual("keyof") || tok.IsContextual("unique") || tok.IsContextual("readonly") {
		if startsType(p.peek(1)) {
			start := p.start()
			p.advance()
			p.addRef(start, tok.Text)
			p.parseTypeOperator()
			return
		}
	}
	if tok.IsContextual("infer") && isBindingIdent(p.peek(1)) {
		start := p.start()
		p.advance()
		p.addRef(start, "infer")
		p.ident()
		if p.at(token.KwExtends) {
			p.speculate(func() bool {
				p.advance()
				p.parseType()
				return !p.at(token.Question)
			})
		}
		return
	}
	p.parsePostfixType()
}

func (p *Parser) parsePostfixType() {
	p.parsePrimaryType()
	for p.at(token.LBracket) && !p.cur().NewlineBefore() {
		p.advance()
		if p.eat(token.RBracket) {
			continue
		}
		p.parseType()
		p.expect(token.RBracket)
	}
}

// startsType reports whether tok can begin a type.
func startsType(tok token.Token) bool {
	switch tok.Kind {
	case token.Ident, token.StringLit, token.NumberLit, token.BigIntLit, token.NoSubstTemplate,
		token.TemplateHead, token.LParen, token.LBracket, token.LBrace, token.Lt, token.Minus,
		token.KwTypeof, token.KwVoid, token.KwNull, token.KwThis, token.KwTrue, token.KwFalse,
		token.KwNew, token.KwImport, token.Pipe, token.Amp, token.Star:
		return true
	}
	return false
}

func (p *Parser) parsePrimaryType() {
	tok := p.cur()
	start := p.start()
	switch tok.Kind {
	case token.LParen:
		p.advance()
		p.parseType()
		p.expect(token.RParen)
	case token.LBrace:
		p.parseTypeLiteral()
	case token.LBracket:
		p.parseTupleType()
	case token.StringLit, token.NumberLit, token.BigIntLit, token.KwNull, token.KwTrue,
		token.KwFalse, token.KwVoid, token.KwThis:
		p.advance()
		p.addRef(start, tok.Text)
	case token.Minus:
		p.advance()
		num := p.cur()
		if num.Kind != token.NumberLit && num.Kind != token.BigIntLit {
			p.fail(diag.SynExpectType, num.Span, "expected numeric literal type")
		}
		p.advance()
		p.addRef(start, "-"+num.Text)
	case token.NoSubstTemplate:
		p.advance()
		p.addRef(start, tok.Text)
	case token.TemplateHead:
		p.advance()
		for {
			p.parseType()
			if p.eat(token.TemplateTail) {
				break
			}
			p.expect(token.TemplateMiddle)
		}
	case token.KwTypeof:
		p.advance()
		p.addRef(start, "typeof")
		if p.at(token.KwImport) {
			p.parseImportType()
		} else {
			p.parseTypeReference()
		}
	case token.KwImport:
		p.parseImportType()
	case token.Star:
		p.advance()
		p.addRef(start, "*")
	default:
		if !tok.IsIdentName() {
			p.fail(diag.SynExpectType, tok.Span, "expected type, found '"+p.describe(tok)+"'")
		}
		p.parseTypeReference()
	}
}

// parseTypeReference parses 'A.B.C<Args>' and records the qualified name.
func (p *Parser) parseTypeReference() {
	start := p.start()
	name := p.cur().Text
	if !p.cur().IsIdentName() {
		p.fail(diag.SynExpectType, p.cur().Span, "expected type name, found '"+p.describe(p.cur())+"'")
	}
	p.advance()
	for p.at(token.Dot) && p.peek(1).IsIdentName() {
		p.advance()
		name += "." + p.advance().Text
	}
	p.addRef(start, ast.IdentName(name))
	if p.at(token.Lt) && !p.cur().NewlineBefore() {
		p.parseTypeArgList()
	}
}

// parseImportType parses 'import("mod").A.B<Args>'.
func (p *Parser) parseImportType() {
	start := p.start()
	p.expect(token.KwImport)
	p.expect(token.LParen)
	mod := p.expect(token.StringLit)
	p.expect(token.RParen)
	name := "import(" + mod.Text + ")"
	for p.eat(token.Dot) {
		name += "." + p.identNameText()
	}
	p.addRef(start, name)
	if p.at(token.Lt) {
		p.parseTypeArgList()
	}
}

func (p *Parser) identNameText() string {
	tok := p.cur()
	if !tok.IsIdentName() {
		p.fail(diag.SynExpectIdentifier, tok.Span, "expected name, found '"+p.describe(tok)+"'")
	}
	p.advance()
	return tok.Text
}

func (p *Parser) parseTupleType() {
	p.expect(token.LBracket)
	for !p.at(token.RBracket) {
		p.eat(token.DotDotDot)
		if p.cur().IsIdentName() && (p.peek(1).Kind == token.Colon ||
			(p.peek(1).Kind == token.Question && p.peek(2).Kind == token.Colon)) {
			p.advance()
			p.eat(token.Question)
			p.advance()
		}
		p.parseType()
		p.eat(token.Question)
		if !p.eat(token.Comma) {
			break
		}
	}
	p.expect(token.RBracket)
}

// parseTypeLiteral parses '{ members }', including mapped types.
func (p *Parser) parseTypeLiteral() {
	p.expect(token.LBrace)
	if p.atMappedType() {
		p.parseMappedType()
		return
	}
	for !p.at(token.RBrace) {
		p.parseTypeMember()
		if !p.eat(token.Semicolon) && !p.eat(token.Comma) && !p.at(token.RBrace) && !p.cur().NewlineBefore() {
			p.unexpected()
		}
	}
	p.expect(token.RBrace)
}

func (p *Parser) atMappedType() bool {
	i := 0
	if p.at(token.Plus) || p.at(token.Minus) {
		i++
	}
	if p.peek(i).IsContextual("readonly") {
		i++
	}
	return p.peek(i).Kind == token.LBracket && isBindingIdent(p.peek(i+1)) && p.peek(i+2).Kind == token.KwIn
}

func (p *Parser) parseMappedType() {
	if !p.eat(token.Plus) {
		p.eat(token.Minus)
	}
	if p.atContextual("readonly") {
		start := p.start()
		p.advance()
		p.addRef(start, "readonly")
	}
	p.expect(token.LBracket)
	p.ident()
	p.expect(token.KwIn)
	p.parseType()
	if p.eatContextual("as") {
		p.parseType()
	}
	p.expect(token.RBracket)
	if !p.eat(token.Plus) {
		p.eat(token.Minus)
	}
	p.eat(token.Question)
	if p.eat(token.Colon) {
		p.parseType()
	}
	p.eat(token.Semicolon)
	p.expect(token.RBrace)
}

// parseIndexSignature parses '[key: K]: V'.
func (p *Parser) parseIndexSignature() {
	p.expect(token.LBracket)
	p.ident()
	p.expect(token.Colon)
	p.parseType()
	p.expect(token.RBracket)
	p.eat(token.Question)
	if p.eat(token.Colon) {
		p.parseType()
	}
}

func (p *Parser) parseTypeMember() {
	switch {
	case p.at(token.LParen) || p.at(token.Lt):
		p.parseSignature(token.Colon)
		return
	case p.at(token.KwNew) && (p.peek(1).Kind == token.LParen || p.peek(1).Kind == token.Lt):
		p.advance()
		p.parseSignature(token.Colon)
		return
	}
	if p.atContextual("readonly") && startsPropertyKey(p.peek(1)) {
		p.advance()
	}
	if p.at(token.LBracket) && isBindingIdent(p.peek(1)) && p.peek(2).Kind == token.Colon {
		p.parseIndexSignature()
		return
	}
	if (p.atContextual("get") || p.atContextual("set")) && startsPropertyKey(p.peek(1)) &&
		p.peek(1).Kind != token.LParen {
		p.advance()
	}
	p.parsePropertyKey()
	p.eat(token.Question)
	if p.at(token.LParen) || p.at(token.Lt) {
		p.parseSignature(token.Colon)
		return
	}
	if p.eat(token.Colon) {
		p.parseType()
	}
}

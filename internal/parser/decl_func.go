package parser

import (
	"effectlint/internal/ast"
	"effectlint/internal/token"
)

// parseFunction parses '[async] function [*] [name] <T>(params): R { body }'.
// Declarations without a body (overloads, declare) end with a semicolon.
func (p *Parser) parseFunction(kind ast.Kind, flags ast.Flags) ast.NodeID {
	start := p.start()
	if p.atContextual("async") {
		p.advance()
		flags |= ast.FlagAsync
	}
	p.expect(token.KwFunction)
	if p.eat(token.Star) {
		flags |= ast.FlagGenerator
	}
	name := ast.NoNode
	if isBindingIdent(p.cur()) {
		name = p.ident()
	}
	tparams := p.parseTypeParamsOpt()
	params := p.parseParams()
	ret := ast.NoNode
	if p.eat(token.Colon) {
		ret = p.parseReturnType()
	}
	body := ast.NoNode
	if p.at(token.LBrace) {
		body = p.parseBlock()
	} else if kind == ast.FuncDecl {
		p.consumeSemicolon()
	} else {
		p.expect(token.LBrace)
	}
	return p.node(kind, start, "", flags, name, tparams, params, ret, body)
}

// parseParams parses a parenthesised parameter list.
func (p *Parser) parseParams() ast.NodeID {
	start := p.start()
	p.expect(token.LParen)
	var params []ast.NodeID
	for !p.at(token.RParen) {
		params = append(params, p.parseParam())
		if !p.eat(token.Comma) {
			break
		}
	}
	p.expect(token.RParen)
	return p.node(ast.Params, start, "", 0, params...)
}

func (p *Parser) parseParam() ast.NodeID {
	start := p.start()
	decorators := p.parseDecoratorsOpt()
	var flags ast.Flags
	for {
		f, ok := p.paramModifier()
		if !ok {
			break
		}
		flags |= f
	}
	if p.eat(token.DotDotDot) {
		flags |= ast.FlagRest
	}
	var binding ast.NodeID
	if p.at(token.KwThis) {
		binding = p.leaf(ast.ThisExpr, "")
	} else {
		binding = p.parseBindingTarget()
	}
	if p.eat(token.Question) {
		flags |= ast.FlagOptional
	}
	typ := ast.NoNode
	if p.eat(token.Colon) {
		typ = p.parseTypeAnnotation()
	}
	init := ast.NoNode
	if p.eat(token.Assign) {
		init = p.parseAssign(false)
	}
	return p.node(ast.Param, start, "", flags, decorators, binding, typ, init)
}

// paramModifier consumes a constructor parameter-property modifier.
func (p *Parser) paramModifier() (ast.Flags, bool) {
	tok := p.cur()
	if tok.Kind != token.Ident {
		return 0, false
	}
	next := p.peek(1)
	if !(isBindingIdent(next) || next.Kind == token.LBrace || next.Kind == token.LBracket || next.Kind == token.DotDotDot) {
		return 0, false
	}
	var f ast.Flags
	switch tok.Text {
	case "public":
		f = ast.FlagPublic
	case "private":
		f = ast.FlagPrivate
	case "protected":
		f = ast.FlagProtected
	case "readonly":
		f = ast.FlagReadonly
	case "override":
		f = ast.FlagOverride
	default:
		return 0, false
	}
	p.advance()
	return f, true
}

// parseArrowFunction parses an arrow whose shape was already recognised.
func (p *Parser) parseArrowFunction(noIn bool) ast.NodeID {
	start := p.start()
	var flags ast.Flags
	if p.atContextual("async") && p.peek(1).Kind != token.FatArrow {
		p.advance()
		flags |= ast.FlagAsync
	}
	tparams := p.parseTypeParamsOpt()
	var params ast.NodeID
	if p.at(token.LParen) {
		params = p.parseParams()
	} else {
		pstart := p.start()
		name := p.ident()
		param := p.node(ast.Param, pstart, "", 0, ast.NoNode, name, ast.NoNode, ast.NoNode)
		params = p.node(ast.Params, pstart, "", 0, param)
	}
	ret := ast.NoNode
	if p.eat(token.Colon) {
		ret = p.parseReturnType()
	}
	if p.cur().NewlineBefore() {
		p.unexpected()
	}
	p.expect(token.FatArrow)
	var body ast.NodeID
	if p.at(token.LBrace) {
		body = p.parseBlock()
	} else {
		body = p.parseAssign(noIn)
	}
	return p.node(ast.ArrowFunc, start, "", flags, tparams, params, ret, body)
}

func (p *Parser) parseComputedKey() ast.NodeID {
	start := p.start()
	p.expect(token.LBracket)
	expr := p.parseAssign(false)
	p.expect(token.RBracket)
	return p.node(ast.ComputedKey, start, "", 0, expr)
}

// parsePropertyKey parses an object or class member name.
func (p *Parser) parsePropertyKey() ast.NodeID {
	tok := p.cur()
	switch tok.Kind {
	case token.StringLit:
		return p.leaf(ast.StringLit, tok.Text)
	case token.NumberLit:
		return p.leaf(ast.NumberLit, tok.Text)
	case token.BigIntLit:
		return p.leaf(ast.BigIntLit, tok.Text)
	case token.PrivateName:
		return p.leaf(ast.PrivateName, tok.Text)
	case token.LBracket:
		return p.parseComputedKey()
	}
	return p.identName()
}

// startsPropertyKey reports whether tok can begin a member name.
func startsPropertyKey(tok token.Token) bool {
	switch tok.Kind {
	case token.StringLit, token.NumberLit, token.BigIntLit, token.PrivateName, token.LBracket:
		return true
	}
	return tok.IsIdentName()
}

package parser

import (
	"strings"

	"effectlint/internal/ast"
	"effectlint/internal/diag"
	"effectlint/internal/token"
)

func (p *Parser) parsePrimary() ast.NodeID {
	tok := p.cur()
	switch tok.Kind {
	case token.Ident:
		if tok.Text == "async" && p.peek(1).Kind == token.KwFunction && !p.peek(1).NewlineBefore() {
			return p.parseFunction(ast.FuncExpr, 0)
		}
		return p.leaf(ast.Ident, ast.IdentName(tok.Text))
	case token.KwYield, token.KwAwait, token.KwLet, token.KwImport:
		return p.leaf(ast.Ident, tok.Text)
	case token.PrivateName:
		return p.leaf(ast.PrivateName, tok.Text)
	case token.KwThis:
		return p.leaf(ast.ThisExpr, "this")
	case token.KwSuper:
		return p.leaf(ast.SuperExpr, "super")
	case token.KwNull:
		return p.leaf(ast.NullLit, "null")
	case token.KwTrue, token.KwFalse:
		return p.leaf(ast.BoolLit, tok.Text)
	case token.NumberLit:
		return p.leaf(ast.NumberLit, tok.Text)
	case token.BigIntLit:
		return p.leaf(ast.BigIntLit, tok.Text)
	case token.StringLit:
		return p.leaf(ast.StringLit, tok.Text)
	case token.RegExpLit:
		return p.leaf(ast.RegExpLit, tok.Text)
	case token.NoSubstTemplate, token.TemplateHead:
		return p.parseTemplate()
	case token.LParen:
		start := p.start()
		inner := p.parseParenExpr()
		return p.node(ast.ParenExpr, start, "", 0, inner)
	case token.LBracket:
		return p.parseArrayLiteral()
	case token.LBrace:
		return p.parseObjectLiteral()
	case token.KwFunction:
		return p.parseFunction(ast.FuncExpr, 0)
	case token.KwClass:
		return p.parseClass(ast.ClassExpr, ast.NoNode, 0)
	case token.At:
		decorators := p.parseDecoratorsOpt()
		if !p.at(token.KwClass) {
			p.unexpected()
		}
		return p.parseClass(ast.ClassExpr, decorators, 0)
	}
	if tok.Kind == token.Lt && p.peek(1).Kind == token.Ident {
		p.fail(diag.SynUnsupportedSyntax, tok.Span, "JSX syntax is not supported")
	}
	p.fail(diag.SynExpectExpression, tok.Span, "expected expression, found '"+p.describe(tok)+"'")
	return ast.NoNode
}

// parseTemplate parses a template literal. The node text holds the raw
// quasis joined by "${}"; the substitutions are the kids.
func (p *Parser) parseTemplate() ast.NodeID {
	start := p.start()
	tok := p.advance()
	if tok.Kind == token.NoSubstTemplate {
		return p.node(ast.TemplateLit, start, templateQuasi(tok), 0)
	}
	quasis := []string{templateQuasi(tok)}
	var subs []ast.NodeID
	for {
		subs = append(subs, p.parseExpression(false))
		part := p.cur()
		switch part.Kind {
		case token.TemplateMiddle:
			p.advance()
			quasis = append(quasis, templateQuasi(part))
			continue
		case token.TemplateTail:
			p.advance()
			quasis = append(quasis, templateQuasi(part))
			return p.node(ast.TemplateLit, start, strings.Join(quasis, "${}"), 0, subs...)
		}
		p.fail(diag.SynUnclosedDelimiter, part.Span, "unterminated template substitution")
	}
}

// templateQuasi strips the delimiters of a template chunk.
func templateQuasi(tok token.Token) string {
	text := tok.Text
	switch tok.Kind {
	case token.NoSubstTemplate:
		text = strings.TrimPrefix(text, "`")
		text = strings.TrimSuffix(text, "`")
	case token.TemplateHead:
		text = strings.TrimPrefix(text, "`")
		text = strings.TrimSuffix(text, "${")
	case token.TemplateMiddle:
		text = strings.TrimPrefix(text, "}")
		text = strings.TrimSuffix(text, "${")
	case token.TemplateTail:
		text = strings.TrimPrefix(text, "}")
		text = strings.TrimSuffix(text, "`")
	}
	return text
}

func (p *Parser) parseArrayLiteral() ast.NodeID {
	start := p.start()
	p.expect(token.LBracket)
	var items []ast.NodeID
	for !p.at(token.RBracket) {
		switch {
		case p.at(token.Comma):
			items = append(items, p.node(ast.Omitted, p.start(), "", 0))
		case p.at(token.DotDotDot):
			sstart := p.start()
			p.advance()
			arg := p.parseAssign(false)
			items = append(items, p.node(ast.SpreadElement, sstart, "", 0, arg))
		default:
			items = append(items, p.parseAssign(false))
		}
		if !p.eat(token.Comma) {
			break
		}
	}
	p.expect(token.RBracket)
	return p.node(ast.ArrayLit, start, "", 0, items...)
}

// parseObjectLiteral parses '{ ... }' in expression position. Shorthand
// members may carry '= init' so the literal can later serve as a pattern.
func (p *Parser) parseObjectLiteral() ast.NodeID {
	start := p.start()
	p.expect(token.LBrace)
	var members []ast.NodeID
	for !p.at(token.RBrace) {
		members = append(members, p.parseObjectMember())
		if !p.eat(token.Comma) {
			break
		}
	}
	p.expect(token.RBrace)
	return p.node(ast.ObjectLit, start, "", 0, members...)
}

func (p *Parser) parseObjectMember() ast.NodeID {
	start := p.start()
	if p.eat(token.DotDotDot) {
		arg := p.parseAssign(false)
		return p.node(ast.SpreadElement, start, "", 0, arg)
	}

	var flags ast.Flags
	if p.atContextual("async") && (startsPropertyKey(p.peek(1)) || p.peek(1).Kind == token.Star) && !p.peek(1).NewlineBefore() {
		p.advance()
		flags |= ast.FlagAsync
	}
	if p.eat(token.Star) {
		flags |= ast.FlagGenerator
	}
	accessor := ""
	if flags == 0 && (p.atContextual("get") || p.atContextual("set")) && startsPropertyKey(p.peek(1)) {
		accessor = p.advance().Text
	}

	keyTok := p.cur()
	key := p.parsePropertyKey()
	if flags != 0 || accessor != "" || p.at(token.LParen) || p.at(token.Lt) {
		return p.parseMethodRest(start, accessor, flags, ast.NoNode, key)
	}

	if p.eat(token.Colon) {
		value := p.parseAssign(false)
		return p.node(ast.PropertyAssign, start, "", 0, key, value)
	}
	if !isBindingIdent(keyTok) {
		p.unexpected()
	}
	init := ast.NoNode
	if p.eat(token.Assign) {
		init = p.parseAssign(false)
	}
	return p.node(ast.ShorthandProp, start, "", 0, key, init)
}

// parseMethodRest parses the signature and body of a method whose key was parsed.
func (p *Parser) parseMethodRest(start uint32, accessor string, flags ast.Flags, decorators, key ast.NodeID) ast.NodeID {
	tparams := p.parseTypeParamsOpt()
	params := p.parseParams()
	ret := ast.NoNode
	if p.eat(token.Colon) {
		ret = p.parseReturnType()
	}
	body := p.parseBlock()
	return p.node(ast.MethodDecl, start, accessor, flags, decorators, key, tparams, params, ret, body)
}

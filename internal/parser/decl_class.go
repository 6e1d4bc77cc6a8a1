package parser

import (
	"effectlint/internal/ast"
	"effectlint/internal/diag"
	"effectlint/internal/token"
)

// parseDecorated parses '@dec ... [export] [abstract] class'.
func (p *Parser) parseDecorated() ast.NodeID {
	start := p.start()
	decorators := p.parseDecoratorsOpt()
	switch {
	case p.at(token.KwClass):
		return p.parseClassAt(start, ast.ClassDecl, decorators, 0)
	case p.atContextual("abstract") && p.peek(1).Kind == token.KwClass:
		p.advance()
		return p.parseClassAt(start, ast.ClassDecl, decorators, ast.FlagAbstract)
	case p.at(token.KwExport):
		p.advance()
		var flags ast.Flags
		if p.eat(token.KwDefault) {
			flags |= ast.FlagDefault
		}
		var cflags ast.Flags
		if p.eatContextual("abstract") {
			cflags |= ast.FlagAbstract
		}
		class := p.parseClassAt(p.start(), ast.ClassDecl, decorators, cflags)
		return p.node(ast.ExportDecl, start, "", flags, class)
	}
	p.fail(diag.SynUnexpectedToken, p.cur().Span, "decorators are only supported on classes and class members")
	return ast.NoNode
}

func (p *Parser) parseDecoratorsOpt() ast.NodeID {
	if !p.at(token.At) {
		return ast.NoNode
	}
	start := p.start()
	var decs []ast.NodeID
	for p.at(token.At) {
		dstart := p.start()
		p.advance()
		expr := p.parseLeftHandSide()
		decs = append(decs, p.node(ast.Decorator, dstart, "", 0, expr))
	}
	return p.node(ast.Decorators, start, "", 0, decs...)
}

func (p *Parser) parseClass(kind ast.Kind, decorators ast.NodeID, flags ast.Flags) ast.NodeID {
	return p.parseClassAt(p.start(), kind, decorators, flags)
}

// parseClassAt parses 'class [Name] <T> [extends E<A>] [implements I] { ... }'.
func (p *Parser) parseClassAt(start uint32, kind ast.Kind, decorators ast.NodeID, flags ast.Flags) ast.NodeID {
	p.expect(token.KwClass)
	name := ast.NoNode
	if isBindingIdent(p.cur()) && !p.atContextual("implements") {
		name = p.ident()
	}
	tparams := p.parseTypeParamsOpt()
	extends := ast.NoNode
	if p.eat(token.KwExtends) {
		estart := p.start()
		extends = p.parseLeftHandSide()
		if p.at(token.Lt) {
			targs := p.parseTypeArgs()
			extends = p.node(ast.ExprWithTypeArgs, estart, "", 0, extends, targs)
		}
	}
	implements := ast.NoNode
	if p.eatContextual("implements") {
		implements = p.collectType(func() {
			for {
				p.parseTypeReference()
				if !p.eat(token.Comma) {
					break
				}
			}
		})
	}
	body := p.parseClassBody()
	return p.node(kind, start, "", flags, decorators, name, tparams, extends, implements, body)
}

func (p *Parser) parseClassBody() ast.NodeID {
	start := p.start()
	p.expect(token.LBrace)
	var members []ast.NodeID
	for !p.at(token.RBrace) {
		if p.at(token.EOF) {
			p.fail(diag.SynUnclosedDelimiter, p.cur().Span, "expected '}' before end of file")
		}
		if p.eat(token.Semicolon) {
			continue
		}
		members = append(members, p.parseClassMember())
	}
	p.advance()
	return p.node(ast.ClassBody, start, "", 0, members...)
}

var classModifiers = map[string]ast.Flags{
	"public":    ast.FlagPublic,
	"private":   ast.FlagPrivate,
	"protected": ast.FlagProtected,
	"static":    ast.FlagStatic,
	"readonly":  ast.FlagReadonly,
	"abstract":  ast.FlagAbstract,
	"override":  ast.FlagOverride,
	"declare":   ast.FlagDeclare,
	"accessor":  ast.FlagAccessor,
	"async":     ast.FlagAsync,
}

// atModifier reports whether the current identifier acts as a modifier rather
// than as the member name.
func (p *Parser) atModifier() (ast.Flags, bool) {
	tok := p.cur()
	if tok.Kind != token.Ident {
		return 0, false
	}
	f, ok := classModifiers[tok.Text]
	if !ok {
		return 0, false
	}
	next := p.peek(1)
	if f == ast.FlagAsync && next.NewlineBefore() {
		return 0, false
	}
	if next.Kind == token.Star && f == ast.FlagAsync {
		return f, true
	}
	if f == ast.FlagStatic && next.Kind == token.LBrace {
		return f, true
	}
	return f, startsPropertyKey(next)
}

func (p *Parser) parseClassMember() ast.NodeID {
	start := p.start()
	decorators := p.parseDecoratorsOpt()

	var flags ast.Flags
	for {
		f, ok := p.atModifier()
		if !ok {
			break
		}
		p.advance()
		flags |= f
		if f == ast.FlagStatic && p.at(token.LBrace) {
			block := p.parseBlock()
			return p.node(ast.StaticBlock, start, "", 0, block)
		}
	}

	if p.at(token.LBracket) && isBindingIdent(p.peek(1)) && p.peek(2).Kind == token.Colon {
		refs := p.collectRefs(p.parseIndexSignature)
		p.eat(token.Semicolon)
		p.eat(token.Comma)
		return p.node(ast.IndexSignature, start, "", flags, refs...)
	}

	if p.eat(token.Star) {
		flags |= ast.FlagGenerator
	}
	accessor := ""
	if (p.atContextual("get") || p.atContextual("set")) && startsPropertyKey(p.peek(1)) {
		accessor = p.advance().Text
	}
	key := p.parsePropertyKey()
	if p.eat(token.Question) {
		flags |= ast.FlagOptional
	} else if p.at(token.Bang) {
		p.advance()
		flags |= ast.FlagDefinite
	}

	if p.at(token.LParen) || p.at(token.Lt) {
		tparams := p.parseTypeParamsOpt()
		params := p.parseParams()
		ret := ast.NoNode
		if p.eat(token.Colon) {
			ret = p.parseReturnType()
		}
		body := ast.NoNode
		if p.at(token.LBrace) {
			body = p.parseBlock()
		} else {
			p.consumeSemicolon()
		}
		return p.node(ast.MethodDecl, start, accessor, flags, decorators, key, tparams, params, ret, body)
	}

	typ := ast.NoNode
	if p.eat(token.Colon) {
		typ = p.parseTypeAnnotation()
	}
	init := ast.NoNode
	if p.eat(token.Assign) {
		init = p.parseAssign(false)
	}
	p.consumeSemicolon()
	return p.node(ast.PropertyDecl, start, "", flags, decorators, key, typ, init)
}

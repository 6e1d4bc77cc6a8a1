package parser

import (
	"effectlint/internal/ast"
	"effectlint/internal/diag"
	"effectlint/internal/token"
)

// parseImport handles every import form:
//
//	import "m"
//	import D, { a as b, type c } from "m"
//	import * as ns from "m"
//	import type { T } from "m"
//	import x = require("m") / import x = A.B
func (p *Parser) parseImport() ast.NodeID {
	start := p.start()
	p.advance()
	return p.parseImportRest(start, 0)
}

func (p *Parser) parseImportRest(start uint32, flags ast.Flags) ast.NodeID {
	if p.atContextual("type") {
		next := p.peek(1)
		switch {
		case next.Kind == token.LBrace || next.Kind == token.Star:
			p.advance()
			flags |= ast.FlagTypeOnly
		case isBindingIdent(next) && !(next.IsContextual("from") && p.peek(2).Kind == token.StringLit):
			p.advance()
			flags |= ast.FlagTypeOnly
		}
	}

	if p.at(token.StringLit) {
		mod := p.parseModuleSpecifier()
		p.skipImportAttributes()
		p.consumeSemicolon()
		return p.node(ast.ImportDecl, start, "", flags, ast.NoNode, ast.NoNode, ast.NoNode, mod)
	}

	def, ns, named := ast.NoNode, ast.NoNode, ast.NoNode
	if isBindingIdent(p.cur()) {
		def = p.ident()
		if p.eat(token.Assign) {
			ref := p.parseModuleReference()
			p.consumeSemicolon()
			return p.node(ast.ImportEquals, start, "", flags, def, ref)
		}
		if !p.eat(token.Comma) {
			return p.finishImport(start, flags, def, ns, named)
		}
	}
	switch {
	case p.at(token.Star):
		p.advance()
		if !p.eatContextual("as") {
			p.fail(diag.SynUnexpectedToken, p.cur().Span, "expected 'as' after '*'")
		}
		ns = p.ident()
	case p.at(token.LBrace):
		named = p.parseNamedImports()
	default:
		p.unexpected()
	}
	return p.finishImport(start, flags, def, ns, named)
}

func (p *Parser) finishImport(start uint32, flags ast.Flags, def, ns, named ast.NodeID) ast.NodeID {
	if !p.eatContextual("from") {
		p.fail(diag.SynUnexpectedToken, p.cur().Span, "expected 'from'")
	}
	mod := p.parseModuleSpecifier()
	p.skipImportAttributes()
	p.consumeSemicolon()
	return p.node(ast.ImportDecl, start, "", flags, def, ns, named, mod)
}

func (p *Parser) parseModuleSpecifier() ast.NodeID {
	if !p.at(token.StringLit) {
		p.fail(diag.SynExpectModuleString, p.cur().Span, "expected module specifier string")
	}
	tok := p.cur()
	return p.leaf(ast.StringLit, tok.Text)
}

// skipImportAttributes consumes 'with { ... }' or 'assert { ... }'.
func (p *Parser) skipImportAttributes() {
	if (p.atContextual("assert") || p.at(token.KwWith)) && p.peek(1).Kind == token.LBrace && !p.cur().NewlineBefore() {
		p.advance()
		p.parseObjectLiteral()
	}
}

func (p *Parser) parseModuleReference() ast.NodeID {
	if p.atContextual("require") && p.peek(1).Kind == token.LParen {
		start := p.start()
		callee := p.ident()
		p.advance()
		mod := p.parseModuleSpecifier()
		p.expect(token.RParen)
		return p.node(ast.CallExpr, start, "", 0, callee, ast.NoNode, mod)
	}
	return p.parseEntityName()
}

// parseEntityName parses A.B.C as nested member expressions.
func (p *Parser) parseEntityName() ast.NodeID {
	start := p.start()
	expr := p.ident()
	for p.eat(token.Dot) {
		prop := p.identName()
		expr = p.node(ast.MemberExpr, start, "", 0, expr, prop)
	}
	return expr
}

func (p *Parser) parseNamedImports() ast.NodeID {
	start := p.start()
	p.expect(token.LBrace)
	var specs []ast.NodeID
	for !p.at(token.RBrace) {
		specs = append(specs, p.parseSpecifier(ast.ImportSpec))
		if !p.eat(token.Comma) {
			break
		}
	}
	p.expect(token.RBrace)
	return p.node(ast.NamedImports, start, "", 0, specs...)
}

// parseSpecifier parses '[type] name [as alias]' for imports and exports.
func (p *Parser) parseSpecifier(kind ast.Kind) ast.NodeID {
	start := p.start()
	var flags ast.Flags
	if p.atContextual("type") {
		next := p.peek(1)
		isModifier := next.IsIdentName() || next.Kind == token.StringLit
		if next.IsContextual("as") {
			after := p.peek(2)
			isModifier = after.Kind != token.Comma && after.Kind != token.RBrace
		}
		if isModifier {
			p.advance()
			flags |= ast.FlagTypeOnly
		}
	}
	name := p.parseSpecifierName()
	alias := ast.NoNode
	if p.eatContextual("as") {
		alias = p.parseSpecifierName()
	}
	return p.node(kind, start, "", flags, name, alias)
}

func (p *Parser) parseSpecifierName() ast.NodeID {
	if p.at(token.StringLit) {
		return p.leaf(ast.StringLit, p.cur().Text)
	}
	return p.identName()
}

// parseExport handles export declarations, re-exports and default exports.
func (p *Parser) parseExport() ast.NodeID {
	start := p.start()
	p.advance()

	switch {
	case p.at(token.KwDefault):
		p.advance()
		var decl ast.NodeID
		switch {
		case p.at(token.KwFunction) || (p.atContextual("async") && p.peek(1).Kind == token.KwFunction && !p.peek(1).NewlineBefore()):
			decl = p.parseFunction(ast.FuncDecl, 0)
		case p.at(token.KwClass):
			decl = p.parseClass(ast.ClassDecl, ast.NoNode, 0)
		case p.at(token.At):
			decl = p.parseDecorated()
		case p.atContextual("abstract") && p.peek(1).Kind == token.KwClass:
			p.advance()
			decl = p.parseClass(ast.ClassDecl, ast.NoNode, ast.FlagAbstract)
		case p.atContextual("interface") && p.peek(1).Kind == token.Ident:
			decl = p.parseInterface(0)
		default:
			expr := p.parseAssign(false)
			p.consumeSemicolon()
			return p.node(ast.ExportAssign, start, "default", 0, expr)
		}
		return p.node(ast.ExportDecl, start, "", ast.FlagDefault, decl)

	case p.at(token.Assign):
		p.advance()
		expr := p.parseAssign(false)
		p.consumeSemicolon()
		return p.node(ast.ExportAssign, start, "=", 0, expr)

	case p.at(token.Star):
		p.advance()
		ns := ast.NoNode
		if p.eatContextual("as") {
			ns = p.parseSpecifierName()
		}
		if !p.eatContextual("from") {
			p.fail(diag.SynUnexpectedToken, p.cur().Span, "expected 'from'")
		}
		mod := p.parseModuleSpecifier()
		p.skipImportAttributes()
		p.consumeSemicolon()
		return p.node(ast.ExportNamed, start, "*", 0, ns, mod)

	case p.at(token.LBrace) || (p.atContextual("type") && p.peek(1).Kind == token.LBrace):
		var flags ast.Flags
		if p.atContextual("type") {
			p.advance()
			flags |= ast.FlagTypeOnly
		}
		nstart := p.start()
		p.advance()
		var specs []ast.NodeID
		for !p.at(token.RBrace) {
			specs = append(specs, p.parseSpecifier(ast.ExportSpec))
			if !p.eat(token.Comma) {
				break
			}
		}
		p.expect(token.RBrace)
		named := p.node(ast.NamedExports, nstart, "", 0, specs...)
		mod := ast.NoNode
		if p.eatContextual("from") {
			mod = p.parseModuleSpecifier()
			p.skipImportAttributes()
		}
		p.consumeSemicolon()
		return p.node(ast.ExportNamed, start, "", flags, named, mod)

	case p.at(token.KwImport):
		istart := p.start()
		p.advance()
		decl := p.parseImportRest(istart, 0)
		return p.node(ast.ExportDecl, start, "", 0, decl)

	case p.atContextual("as") && p.peek(1).IsContextual("namespace"):
		p.advance()
		p.advance()
		name := p.ident()
		p.consumeSemicolon()
		return p.node(ast.ExportAssign, start, "namespace", 0, name)
	}

	decl := p.parseDeclaration(0)
	return p.node(ast.ExportDecl, start, "", 0, decl)
}

func (p *Parser) parseModule(flags ast.Flags) ast.NodeID {
	start := p.start()
	kw := p.advance().Text
	name := ast.NoNode
	if kw == "global" {
		name = p.tree.New(ast.Ident, p.spanFrom(start), "global", 0)
	} else if p.at(token.StringLit) {
		name = p.leaf(ast.StringLit, p.cur().Text)
	} else {
		name = p.parseEntityName()
	}
	body := ast.NoNode
	if p.at(token.LBrace) {
		body = p.parseBlock()
	} else {
		p.consumeSemicolon()
	}
	return p.node(ast.ModuleDecl, start, kw, flags, name, body)
}

func (p *Parser) parseEnum(flags ast.Flags) ast.NodeID {
	start := p.start()
	if p.eat(token.KwConst) {
		flags |= ast.FlagConst
	}
	p.expect(token.KwEnum)
	kids := []ast.NodeID{p.ident()}
	p.expect(token.LBrace)
	for !p.at(token.RBrace) {
		mstart := p.start()
		var key ast.NodeID
		switch {
		case p.at(token.StringLit):
			key = p.leaf(ast.StringLit, p.cur().Text)
		case p.at(token.LBracket):
			key = p.parseComputedKey()
		default:
			key = p.identName()
		}
		init := ast.NoNode
		if p.eat(token.Assign) {
			init = p.parseAssign(false)
		}
		kids = append(kids, p.node(ast.EnumMember, mstart, "", 0, key, init))
		if !p.eat(token.Comma) {
			break
		}
	}
	p.expect(token.RBrace)
	return p.node(ast.EnumDecl, start, "", flags, kids...)
}

func (p *Parser) parseTypeAlias(flags ast.Flags) ast.NodeID {
	start := p.start()
	p.advance()
	name := p.ident()
	tparams := p.parseTypeParamsOpt()
	p.expect(token.Assign)
	typ := p.parseTypeAnnotation()
	p.consumeSemicolon()
	return p.node(ast.TypeAliasDecl, start, "", flags, name, tparams, typ)
}

func (p *Parser) parseInterface(flags ast.Flags) ast.NodeID {
	start := p.start()
	p.advance()
	name := p.ident()
	tparams := p.parseTypeParamsOpt()
	heritage := ast.NoNode
	if p.eat(token.KwExtends) {
		heritage = p.collectType(func() {
			for {
				p.parseTypeReference()
				if !p.eat(token.Comma) {
					break
				}
			}
		})
	}
	body := p.collectType(p.parseTypeLiteral)
	return p.node(ast.InterfaceDecl, start, "", flags, name, tparams, heritage, body)
}

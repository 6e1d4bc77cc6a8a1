package parser

import (
	"effectlint/internal/ast"
	"effectlint/internal/token"
)

// parseBindingTarget parses an identifier, object pattern or array pattern.
func (p *Parser) parseBindingTarget() ast.NodeID {
	switch {
	case p.at(token.LBrace):
		return p.parseObjectPattern()
	case p.at(token.LBracket):
		return p.parseArrayPattern()
	}
	return p.ident()
}

func (p *Parser) parseObjectPattern() ast.NodeID {
	start := p.start()
	p.expect(token.LBrace)
	var elems []ast.NodeID
	for !p.at(token.RBrace) {
		estart := p.start()
		if p.eat(token.DotDotDot) {
			binding := p.parseBindingTarget()
			elems = append(elems, p.node(ast.BindingElem, estart, "", ast.FlagRest, ast.NoNode, binding, ast.NoNode))
		} else {
			keyTok := p.cur()
			key := p.parsePropertyKey()
			binding := ast.NoNode
			if p.eat(token.Colon) {
				binding = p.parseBindingTarget()
			} else if !isBindingIdent(keyTok) {
				p.unexpected()
			} else {
				binding, key = key, ast.NoNode
			}
			init := p.parseInitializerOpt()
			elems = append(elems, p.node(ast.BindingElem, estart, "", 0, key, binding, init))
		}
		if !p.eat(token.Comma) {
			break
		}
	}
	p.expect(token.RBrace)
	return p.node(ast.ObjectPattern, start, "", 0, elems...)
}

func (p *Parser) parseArrayPattern() ast.NodeID {
	start := p.start()
	p.expect(token.LBracket)
	var elems []ast.NodeID
	for !p.at(token.RBracket) {
		estart := p.start()
		switch {
		case p.at(token.Comma):
			elems = append(elems, p.node(ast.Omitted, estart, "", 0))
		case p.eat(token.DotDotDot):
			binding := p.parseBindingTarget()
			elems = append(elems, p.node(ast.BindingElem, estart, "", ast.FlagRest, ast.NoNode, binding, ast.NoNode))
		default:
			binding := p.parseBindingTarget()
			init := p.parseInitializerOpt()
			elems = append(elems, p.node(ast.BindingElem, estart, "", 0, ast.NoNode, binding, init))
		}
		if !p.eat(token.Comma) {
			break
		}
	}
	p.expect(token.RBracket)
	return p.node(ast.ArrayPattern, start, "", 0, elems...)
}

func (p *Parser) parseInitializerOpt() ast.NodeID {
	if p.eat(token.Assign) {
		return p.parseAssign(false)
	}
	return ast.NoNode
}

package parser

import (
	"effectlint/internal/ast"
	"effectlint/internal/token"
)

// parseLeftHandSide parses a primary or 'new' expression followed by member
// accesses, calls, non-null assertions and tagged templates.
func (p *Parser) parseLeftHandSide() ast.NodeID {
	start := p.start()
	var expr ast.NodeID
	if p.at(token.KwNew) {
		expr = p.parseNew()
	} else {
		expr = p.parsePrimary()
	}
	return p.parseCallTail(start, expr, true)
}

func (p *Parser) parseCallTail(start uint32, expr ast.NodeID, allowCalls bool) ast.NodeID {
	for {
		tok := p.cur()
		switch tok.Kind {
		case token.Dot:
			p.advance()
			var prop ast.NodeID
			if p.at(token.PrivateName) {
				prop = p.leaf(ast.PrivateName, p.cur().Text)
			} else {
				prop = p.identName()
			}
			expr = p.node(ast.MemberExpr, start, "", 0, expr, prop)

		case token.QuestionDot:
			if !allowCalls {
				return expr
			}
			p.advance()
			switch {
			case p.at(token.LParen):
				args := p.parseArguments()
				expr = p.node(ast.CallExpr, start, "", ast.FlagOptionalChain, append([]ast.NodeID{expr, ast.NoNode}, args...)...)
			case p.at(token.LBracket):
				p.advance()
				index := p.parseExpression(false)
				p.expect(token.RBracket)
				expr = p.node(ast.IndexExpr, start, "", ast.FlagOptionalChain, expr, index)
			case p.at(token.Lt):
				targs := p.parseTypeArgs()
				args := p.parseArguments()
				expr = p.node(ast.CallExpr, start, "", ast.FlagOptionalChain, append([]ast.NodeID{expr, targs}, args...)...)
			default:
				var prop ast.NodeID
				if p.at(token.PrivateName) {
					prop = p.leaf(ast.PrivateName, p.cur().Text)
				} else {
					prop = p.identName()
				}
				expr = p.node(ast.MemberExpr, start, "", ast.FlagOptionalChain, expr, prop)
			}

		case token.LBracket:
			p.advance()
			index := p.parseExpression(false)
			p.expect(token.RBracket)
			expr = p.node(ast.IndexExpr, start, "", 0, expr, index)

		case token.Bang:
			if tok.NewlineBefore() {
				return expr
			}
			p.advance()
			expr = p.node(ast.NonNullExpr, start, "", 0, expr)

		case token.LParen:
			if !allowCalls {
				return expr
			}
			args := p.parseArguments()
			expr = p.node(ast.CallExpr, start, "", 0, append([]ast.NodeID{expr, ast.NoNode}, args...)...)

		case token.NoSubstTemplate, token.TemplateHead:
			tmpl := p.parseTemplate()
			expr = p.node(ast.TaggedTemplate, start, "", 0, expr, ast.NoNode, tmpl)

		case token.Lt:
			targs, ok := p.tryTypeArgsInExpression()
			if !ok {
				return expr
			}
			switch {
			case p.at(token.LParen) && allowCalls:
				args := p.parseArguments()
				expr = p.node(ast.CallExpr, start, "", 0, append([]ast.NodeID{expr, targs}, args...)...)
			case p.at(token.NoSubstTemplate) || p.at(token.TemplateHead):
				tmpl := p.parseTemplate()
				expr = p.node(ast.TaggedTemplate, start, "", 0, expr, targs, tmpl)
			default:
				expr = p.node(ast.ExprWithTypeArgs, start, "", 0, expr, targs)
			}

		default:
			return expr
		}
	}
}

// tryTypeArgsInExpression speculatively parses '<...>' after an expression.
// The arguments only count when followed by a token that cannot continue a
// relational expression, as in f<T>(x) or Context.Tag("X")<A, B>().
func (p *Parser) tryTypeArgsInExpression() (ast.NodeID, bool) {
	var targs ast.NodeID
	ok := p.speculate(func() bool {
		targs = p.parseTypeArgs()
		switch p.cur().Kind {
		case token.LParen, token.NoSubstTemplate, token.TemplateHead,
			token.RParen, token.RBracket, token.Comma, token.Semicolon, token.RBrace,
			token.Dot, token.QuestionDot, token.EOF, token.Colon, token.EqEqEq, token.BangEqEq,
			token.EqEq, token.BangEq:
			return true
		}
		return p.cur().NewlineBefore()
	})
	return targs, ok
}

// parseNew parses 'new C<T>(args)', 'new C' and 'new.target'.
func (p *Parser) parseNew() ast.NodeID {
	start := p.start()
	newTok := p.advance()
	if p.at(token.Dot) {
		meta := p.tree.New(ast.Ident, newTok.Span, "new", 0)
		p.advance()
		prop := p.identName()
		return p.node(ast.MemberExpr, start, "", 0, meta, prop)
	}

	cstart := p.start()
	var callee ast.NodeID
	if p.at(token.KwNew) {
		callee = p.parseNew()
	} else {
		callee = p.parsePrimary()
	}
	callee = p.parseCallTail(cstart, callee, false)

	targs := ast.NoNode
	if p.tree.Kind(callee) == ast.ExprWithTypeArgs {
		targs = p.tree.Kid(callee, 1)
		callee = p.tree.Kid(callee, 0)
	}
	if p.at(token.LParen) {
		args := p.parseArguments()
		return p.node(ast.NewExpr, start, "", 0, append([]ast.NodeID{callee, targs}, args...)...)
	}
	return p.node(ast.NewExpr, start, "", ast.FlagNoArgs, callee, targs)
}

func (p *Parser) parseArguments() []ast.NodeID {
	p.expect(token.LParen)
	var args []ast.NodeID
	for !p.at(token.RParen) {
		if p.at(token.DotDotDot) {
			start := p.start()
			p.advance()
			arg := p.parseAssign(false)
			args = append(args, p.node(ast.SpreadElement, start, "", 0, arg))
		} else {
			args = append(args, p.parseAssign(false))
		}
		if !p.eat(token.Comma) {
			break
		}
	}
	p.expect(token.RParen)
	return args
}

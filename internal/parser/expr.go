package parser

import (
	"effectlint/internal/ast"
	"effectlint/internal/token"
)

// parseExpression parses a comma-separated expression. With noIn the 'in'
// operator is not consumed (for-in headers).
func (p *Parser) parseExpression(noIn bool) ast.NodeID {
	start := p.start()
	first := p.parseAssign(noIn)
	if !p.at(token.Comma) {
		return first
	}
	items := []ast.NodeID{first}
	for p.eat(token.Comma) {
		items = append(items, p.parseAssign(noIn))
	}
	return p.node(ast.SequenceExpr, start, "", 0, items...)
}

// parseAssign parses an AssignmentExpression, including arrows and yield.
func (p *Parser) parseAssign(noIn bool) ast.NodeID {
	p.enter()
	defer p.leave()

	if p.at(token.KwYield) {
		return p.parseYield(noIn)
	}
	if arrow, ok := p.tryArrow(noIn); ok {
		return arrow
	}

	start := p.start()
	lhs := p.parseConditional(noIn)

	tok := p.cur()
	if tok.IsAssignOp() {
		p.advance()
		rhs := p.parseAssign(noIn)
		return p.node(ast.AssignExpr, start, tok.Text, 0, lhs, rhs)
	}
	if op, n := p.gtOperator(); op == ">>=" || op == ">>>=" {
		p.pos += n - 1
		p.advance()
		rhs := p.parseAssign(noIn)
		return p.node(ast.AssignExpr, start, op, 0, lhs, rhs)
	}
	return lhs
}

func (p *Parser) parseYield(noIn bool) ast.NodeID {
	start := p.start()
	p.advance()
	var flags ast.Flags
	if p.at(token.Star) && !p.cur().NewlineBefore() {
		p.advance()
		flags |= ast.FlagDelegate
		arg := p.parseAssign(noIn)
		return p.node(ast.YieldExpr, start, "", flags, arg)
	}
	arg := ast.NoNode
	if !p.cur().NewlineBefore() && startsExpression(p.cur()) {
		arg = p.parseAssign(noIn)
	}
	return p.node(ast.YieldExpr, start, "", flags, arg)
}

// startsExpression reports whether tok can begin an operand.
func startsExpression(tok token.Token) bool {
	switch tok.Kind {
	case token.RParen, token.RBracket, token.RBrace, token.Comma, token.Semicolon, token.Colon,
		token.EOF, token.TemplateMiddle, token.TemplateTail, token.Gt, token.Question,
		token.QuestionQuestion, token.AndAnd, token.OrOr, token.Assign, token.KwIn, token.KwInstanceof,
		token.EqEq, token.EqEqEq, token.BangEq, token.BangEqEq, token.FatArrow, token.Dot, token.QuestionDot:
		return false
	}
	return true
}

// tryArrow recognises arrow functions at the cursor. Unambiguous shapes are
// parsed directly; a parenthesised list followed by ':' is speculative
// because it may also be the consequent of a conditional expression.
func (p *Parser) tryArrow(noIn bool) (ast.NodeID, bool) {
	i := 0
	if p.atContextual("async") && !p.peek(1).NewlineBefore() {
		switch next := p.peek(1); {
		case isBindingIdent(next) && p.peek(2).Kind == token.FatArrow:
			return p.parseArrowFunction(noIn), true
		case next.Kind == token.LParen || next.Kind == token.Lt:
			i = 1
		default:
			return ast.NoNode, false
		}
	}

	tok := p.peek(i)
	switch {
	case i == 0 && isBindingIdent(tok) && p.peek(1).Kind == token.FatArrow && !p.peek(1).NewlineBefore():
		return p.parseArrowFunction(noIn), true

	case tok.Kind == token.LParen:
		closeIdx := p.matchingClose(p.pos + i)
		if closeIdx < 0 {
			return ast.NoNode, false
		}
		after := p.toks[closeIdx+1]
		switch {
		case after.Kind == token.FatArrow && !after.NewlineBefore():
			return p.parseArrowFunction(noIn), true
		case after.Kind == token.Colon:
			return p.speculateArrow(noIn)
		}
		return ast.NoNode, false

	case tok.Kind == token.Lt:
		return p.speculateArrow(noIn)
	}
	return ast.NoNode, false
}

func (p *Parser) speculateArrow(noIn bool) (ast.NodeID, bool) {
	var id ast.NodeID
	ok := p.speculate(func() bool {
		id = p.parseArrowFunction(noIn)
		return true
	})
	return id, ok
}

func (p *Parser) parseConditional(noIn bool) ast.NodeID {
	start := p.start()
	test := p.parseBinary(precNone, noIn)
	if !p.at(token.Question) {
		return test
	}
	p.advance()
	cons := p.parseAssign(false)
	p.expect(token.Colon)
	alt := p.parseAssign(noIn)
	return p.node(ast.CondExpr, start, "", 0, test, cons, alt)
}

// binaryOp returns the operator at the cursor, its precedence and token count.
func (p *Parser) binaryOp(noIn bool) (string, int, int) {
	tok := p.cur()
	if tok.Kind == token.Gt {
		op, n := p.gtOperator()
		switch op {
		case ">", ">=":
			return op, precRelational, n
		case ">>", ">>>":
			return op, precShift, n
		}
		return "", 0, 0
	}
	if tok.Kind == token.KwIn && noIn {
		return "", 0, 0
	}
	if prec, ok := binaryPrec[tok.Kind]; ok {
		return tok.Text, prec, 1
	}
	if (tok.IsContextual("as") || tok.IsContextual("satisfies")) && !tok.NewlineBefore() {
		return tok.Text, precRelational, 1
	}
	return "", 0, 0
}

// parseBinary is a precedence-climbing parser over binaryPrec.
func (p *Parser) parseBinary(minPrec int, noIn bool) ast.NodeID {
	start := p.start()
	left := p.parseUnary()
	for {
		op, prec, n := p.binaryOp(noIn)
		if prec <= minPrec {
			return left
		}
		p.pos += n - 1
		p.advance()

		if op == "as" || op == "satisfies" {
			typ := p.parseTypeAnnotation()
			left = p.node(ast.AsExpr, start, op, 0, left, typ)
			continue
		}
		nextMin := prec
		if op == "**" {
			nextMin = prec - 1
		}
		right := p.parseBinary(nextMin, noIn)
		left = p.node(ast.BinaryExpr, start, op, 0, left, right)
	}
}

func (p *Parser) parseUnary() ast.NodeID {
	p.enter()
	defer p.leave()

	start := p.start()
	tok := p.cur()
	switch tok.Kind {
	case token.Bang, token.Minus, token.Plus, token.Tilde, token.KwTypeof, token.KwVoid, token.KwDelete:
		p.advance()
		operand := p.parseUnary()
		return p.node(ast.UnaryExpr, start, tok.Text, 0, operand)
	case token.PlusPlus, token.MinusMinus:
		p.advance()
		operand := p.parseUnary()
		return p.node(ast.UpdateExpr, start, tok.Text, ast.FlagPrefix, operand)
	case token.KwAwait:
		if startsExpression(p.peek(1)) {
			p.advance()
			operand := p.parseUnary()
			return p.node(ast.AwaitExpr, start, "", 0, operand)
		}
	case token.Lt:
		// <T>expr type assertion
		p.advance()
		typ := p.collectType(func() { p.parseType() })
		p.expect(token.Gt)
		operand := p.parseUnary()
		return p.node(ast.AsExpr, start, "<>", 0, operand, typ)
	}

	expr := p.parseLeftHandSide()
	if next := p.cur(); (next.Kind == token.PlusPlus || next.Kind == token.MinusMinus) && !next.NewlineBefore() {
		p.advance()
		return p.node(ast.UpdateExpr, start, next.Text, 0, expr)
	}
	return expr
}

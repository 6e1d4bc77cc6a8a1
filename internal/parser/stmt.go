package parser

import (
	"effectlint/internal/ast"
	"effectlint/internal/diag"
	"effectlint/internal/token"
)

func (p *Parser) parseStatement() ast.NodeID {
	p.enter()
	defer p.leave()

	tok := p.cur()
	switch tok.Kind {
	case token.LBrace:
		return p.parseBlock()
	case token.Semicolon:
		return p.leaf(ast.EmptyStmt, "")
	case token.KwVar, token.KwLet:
		return p.parseVarStatement(0)
	case token.KwConst:
		if p.peek(1).Kind == token.KwEnum {
			return p.parseEnum(0)
		}
		return p.parseVarStatement(0)
	case token.KwFunction:
		return p.parseFunction(ast.FuncDecl, 0)
	case token.KwClass:
		return p.parseClass(ast.ClassDecl, ast.NoNode, 0)
	case token.At:
		return p.parseDecorated()
	case token.KwIf:
		return p.parseIf()
	case token.KwFor:
		return p.parseFor()
	case token.KwWhile:
		start := p.start()
		p.advance()
		test := p.parseParenExpr()
		body := p.parseStatement()
		return p.node(ast.WhileStmt, start, "", 0, test, body)
	case token.KwDo:
		start := p.start()
		p.advance()
		body := p.parseStatement()
		p.expect(token.KwWhile)
		test := p.parseParenExpr()
		p.eat(token.Semicolon)
		return p.node(ast.DoWhileStmt, start, "", 0, body, test)
	case token.KwReturn:
		start := p.start()
		p.advance()
		arg := ast.NoNode
		if !p.canInsertSemicolon() {
			arg = p.parseExpression(false)
		}
		p.consumeSemicolon()
		return p.node(ast.ReturnStmt, start, "", 0, arg)
	case token.KwThrow:
		start := p.start()
		p.advance()
		if p.cur().NewlineBefore() {
			p.fail(diag.SynExpectExpression, p.cur().Span, "line break is not allowed after 'throw'")
		}
		arg := p.parseExpression(false)
		p.consumeSemicolon()
		return p.node(ast.ThrowStmt, start, "", 0, arg)
	case token.KwBreak, token.KwContinue:
		start := p.start()
		p.advance()
		label := ""
		if p.at(token.Ident) && !p.cur().NewlineBefore() {
			label = p.advance().Text
		}
		p.consumeSemicolon()
		kind := ast.BreakStmt
		if tok.Kind == token.KwContinue {
			kind = ast.ContinueStmt
		}
		return p.node(kind, start, label, 0)
	case token.KwTry:
		return p.parseTry()
	case token.KwSwitch:
		return p.parseSwitch()
	case token.KwDebugger:
		start := p.start()
		p.advance()
		p.consumeSemicolon()
		return p.node(ast.DebuggerStmt, start, "", 0)
	case token.KwWith:
		start := p.start()
		p.advance()
		obj := p.parseParenExpr()
		body := p.parseStatement()
		return p.node(ast.WithStmt, start, "", 0, obj, body)
	case token.KwImport:
		if next := p.peek(1).Kind; next != token.LParen && next != token.Dot {
			return p.parseImport()
		}
	case token.KwExport:
		return p.parseExport()
	case token.KwEnum:
		return p.parseEnum(0)
	case token.Ident:
		if id, ok := p.parseContextualStatement(0); ok {
			return id
		}
		if p.peek(1).Kind == token.Colon {
			start := p.start()
			label := p.advance().Text
			p.advance()
			body := p.parseStatement()
			return p.node(ast.LabeledStmt, start, label, 0, body)
		}
	}

	start := p.start()
	expr := p.parseExpression(false)
	p.consumeSemicolon()
	return p.node(ast.ExprStmt, start, "", 0, expr)
}

// parseContextualStatement handles declarations introduced by contextual
// keywords: type, interface, declare, namespace, module, global, abstract,
// async function and using.
func (p *Parser) parseContextualStatement(flags ast.Flags) (ast.NodeID, bool) {
	tok := p.cur()
	next := p.peek(1)
	sameLine := !next.NewlineBefore()
	switch tok.Text {
	case "type":
		if next.Kind == token.Ident && sameLine {
			return p.parseTypeAlias(flags), true
		}
	case "interface":
		if next.Kind == token.Ident && sameLine {
			return p.parseInterface(flags), true
		}
	case "declare":
		if sameLine && startsDeclaration(next) {
			p.advance()
			return p.parseDeclaration(flags | ast.FlagDeclare), true
		}
	case "namespace", "module":
		if sameLine && (next.Kind == token.Ident || next.Kind == token.StringLit) {
			return p.parseModule(flags), true
		}
	case "global":
		if next.Kind == token.LBrace {
			return p.parseModule(flags), true
		}
	case "abstract":
		if next.Kind == token.KwClass && sameLine {
			p.advance()
			return p.parseClass(ast.ClassDecl, ast.NoNode, flags|ast.FlagAbstract), true
		}
	case "async":
		if next.Kind == token.KwFunction && sameLine {
			return p.parseFunction(ast.FuncDecl, flags), true
		}
	case "using":
		if next.Kind == token.Ident && sameLine {
			return p.parseVarStatement(flags), true
		}
	}
	return ast.NoNode, false
}

func startsDeclaration(tok token.Token) bool {
	switch tok.Kind {
	case token.KwVar, token.KwLet, token.KwConst, token.KwFunction, token.KwClass, token.KwEnum:
		return true
	case token.Ident:
		switch tok.Text {
		case "type", "interface", "namespace", "module", "global", "abstract", "async":
			return true
		}
	}
	return false
}

// parseDeclaration parses the declaration following 'declare' or 'export'.
func (p *Parser) parseDeclaration(flags ast.Flags) ast.NodeID {
	switch p.cur().Kind {
	case token.KwVar, token.KwLet:
		return p.parseVarStatement(flags)
	case token.KwConst:
		if p.peek(1).Kind == token.KwEnum {
			return p.parseEnum(flags)
		}
		return p.parseVarStatement(flags)
	case token.KwFunction:
		return p.parseFunction(ast.FuncDecl, flags)
	case token.KwClass:
		return p.parseClass(ast.ClassDecl, ast.NoNode, flags)
	case token.KwEnum:
		return p.parseEnum(flags)
	case token.At:
		return p.parseDecorated()
	case token.Ident:
		if id, ok := p.parseContextualStatement(flags); ok {
			return id
		}
	}
	p.unexpected()
	return ast.NoNode
}

func (p *Parser) parseBlock() ast.NodeID {
	start := p.start()
	p.expect(token.LBrace)
	var stmts []ast.NodeID
	for !p.at(token.RBrace) {
		if p.at(token.EOF) {
			p.fail(diag.SynUnclosedDelimiter, p.cur().Span, "expected '}' before end of file")
		}
		stmts = append(stmts, p.parseStatement())
	}
	p.advance()
	return p.node(ast.Block, start, "", 0, stmts...)
}

func (p *Parser) parseParenExpr() ast.NodeID {
	p.expect(token.LParen)
	expr := p.parseExpression(false)
	p.expect(token.RParen)
	return expr
}

func (p *Parser) parseVarStatement(flags ast.Flags) ast.NodeID {
	decl := p.parseVarDecl(flags, false)
	p.consumeSemicolon()
	p.tree.Node(decl).Span = p.spanFrom(p.tree.Span(decl).Start)
	return decl
}

// parseVarDecl parses 'const a = 1, b' without the terminating semicolon.
func (p *Parser) parseVarDecl(flags ast.Flags, noIn bool) ast.NodeID {
	start := p.start()
	kind := p.advance().Text
	var decls []ast.NodeID
	for {
		dstart := p.start()
		binding := p.parseBindingTarget()
		var dflags ast.Flags
		if p.at(token.Bang) {
			p.advance()
			dflags |= ast.FlagDefinite
		}
		typ := ast.NoNode
		if p.eat(token.Colon) {
			typ = p.parseTypeAnnotation()
		}
		init := ast.NoNode
		if p.eat(token.Assign) {
			init = p.parseAssign(noIn)
		}
		decls = append(decls, p.node(ast.VarDeclarator, dstart, "", dflags, binding, typ, init))
		if !p.eat(token.Comma) {
			break
		}
	}
	return p.node(ast.VarDecl, start, kind, flags, decls...)
}

func (p *Parser) parseIf() ast.NodeID {
	start := p.start()
	p.advance()
	test := p.parseParenExpr()
	cons := p.parseStatement()
	alt := ast.NoNode
	if p.eat(token.KwElse) {
		alt = p.parseStatement()
	}
	return p.node(ast.IfStmt, start, "", 0, test, cons, alt)
}

func (p *Parser) parseFor() ast.NodeID {
	start := p.start()
	p.advance()
	var flags ast.Flags
	if p.eat(token.KwAwait) {
		flags |= ast.FlagAwait
	}
	p.expect(token.LParen)

	init := ast.NoNode
	if !p.at(token.Semicolon) {
		switch {
		case p.at(token.KwVar) || p.at(token.KwLet) || p.at(token.KwConst):
			init = p.parseVarDecl(0, true)
		case p.atContextual("using") && p.peek(1).Kind == token.Ident && !p.peek(1).IsContextual("of"):
			init = p.parseVarDecl(0, true)
		default:
			init = p.parseExpression(true)
		}
	}

	if init != ast.NoNode && (p.at(token.KwIn) || p.atContextual("of")) {
		kind := ast.ForInStmt
		if p.at(token.Ident) {
			kind = ast.ForOfStmt
		}
		p.advance()
		var right ast.NodeID
		if kind == ast.ForOfStmt {
			right = p.parseAssign(false)
		} else {
			right = p.parseExpression(false)
		}
		p.expect(token.RParen)
		body := p.parseStatement()
		return p.node(kind, start, "", flags, init, right, body)
	}

	if !p.at(token.Semicolon) {
		p.fail(diag.SynForBadHeader, p.cur().Span, "expected ';' in for statement header")
	}
	p.advance()
	test := ast.NoNode
	if !p.at(token.Semicolon) {
		test = p.parseExpression(false)
	}
	p.expect(token.Semicolon)
	update := ast.NoNode
	if !p.at(token.RParen) {
		update = p.parseExpression(false)
	}
	p.expect(token.RParen)
	body := p.parseStatement()
	return p.node(ast.ForStmt, start, "", flags, init, test, update, body)
}

func (p *Parser) parseTry() ast.NodeID {
	start := p.start()
	p.advance()
	block := p.parseBlock()
	handler := ast.NoNode
	if p.at(token.KwCatch) {
		cstart := p.start()
		p.advance()
		binding, typ := ast.NoNode, ast.NoNode
		if p.eat(token.LParen) {
			binding = p.parseBindingTarget()
			if p.eat(token.Colon) {
				typ = p.parseTypeAnnotation()
			}
			p.expect(token.RParen)
		}
		body := p.parseBlock()
		handler = p.node(ast.CatchClause, cstart, "", 0, binding, typ, body)
	}
	finalizer := ast.NoNode
	if p.eat(token.KwFinally) {
		finalizer = p.parseBlock()
	}
	if handler == ast.NoNode && finalizer == ast.NoNode {
		p.fail(diag.SynUnexpectedToken, p.cur().Span, "expected 'catch' or 'finally'")
	}
	return p.node(ast.TryStmt, start, "", 0, block, handler, finalizer)
}

func (p *Parser) parseSwitch() ast.NodeID {
	start := p.start()
	p.advance()
	disc := p.parseParenExpr()
	p.expect(token.LBrace)
	kids := []ast.NodeID{disc}
	for !p.at(token.RBrace) {
		cstart := p.start()
		test := ast.NoNode
		var flags ast.Flags
		switch {
		case p.eat(token.KwCase):
			test = p.parseExpression(false)
		case p.eat(token.KwDefault):
			flags |= ast.FlagDefault
		default:
			p.unexpected()
		}
		p.expect(token.Colon)
		clause := []ast.NodeID{test}
		for !p.at(token.KwCase) && !p.at(token.KwDefault) && !p.at(token.RBrace) {
			if p.at(token.EOF) {
				p.fail(diag.SynUnclosedDelimiter, p.cur().Span, "expected '}' before end of file")
			}
			clause = append(clause, p.parseStatement())
		}
		kids = append(kids, p.node(ast.CaseClause, cstart, "", flags, clause...))
	}
	p.advance()
	return p.node(ast.SwitchStmt, start, "", 0, kids...)
}

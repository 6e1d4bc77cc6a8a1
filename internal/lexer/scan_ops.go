package lexer

import (
	"effectlint/internal/diag"
	"effectlint/internal/token"
)

// scanOperatorOrPunct greedily matches the longest punctuator at the cursor.
// '>' is never combined; see package token.
func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()
	kind := lx.matchPunct()
	if kind == token.Invalid {
		lx.bumpRune()
		sp := lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexUnknownChar, sp, "unexpected character")
		return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
	}
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: kind, Span: sp, Text: lx.text(sp)}
}

func (lx *Lexer) matchPunct() token.Kind {
	b := lx.cursor.Peek()
	switch b {
	case '{':
		lx.cursor.Bump()
		return token.LBrace
	case '}':
		lx.cursor.Bump()
		return token.RBrace
	case '(':
		lx.cursor.Bump()
		return token.LParen
	case ')':
		lx.cursor.Bump()
		return token.RParen
	case '[':
		lx.cursor.Bump()
		return token.LBracket
	case ']':
		lx.cursor.Bump()
		return token.RBracket
	case ';':
		lx.cursor.Bump()
		return token.Semicolon
	case ',':
		lx.cursor.Bump()
		return token.Comma
	case ':':
		lx.cursor.Bump()
		return token.Colon
	case '~':
		lx.cursor.Bump()
		return token.Tilde
	case '@':
		lx.cursor.Bump()
		return token.At
	case '>':
		lx.cursor.Bump()
		return token.Gt
	case '.':
		if lx.try3('.', '.', '.') {
			return token.DotDotDot
		}
		lx.cursor.Bump()
		return token.Dot
	case '?':
		if lx.try3('?', '?', '=') {
			return token.QuestionQuestionAssign
		}
		if lx.try2('?', '?') {
			return token.QuestionQuestion
		}
		if b0, b1, b2, ok := lx.cursor.Peek3(); ok && b0 == '?' && b1 == '.' && isDec(b2) {
			lx.cursor.Bump()
			return token.Question
		}
		if lx.try2('?', '.') {
			return token.QuestionDot
		}
		lx.cursor.Bump()
		return token.Question
	case '=':
		if lx.try3('=', '=', '=') {
			return token.EqEqEq
		}
		if lx.try2('=', '=') {
			return token.EqEq
		}
		if lx.try2('=', '>') {
			return token.FatArrow
		}
		lx.cursor.Bump()
		return token.Assign
	case '!':
		if lx.try3('!', '=', '=') {
			return token.BangEqEq
		}
		if lx.try2('!', '=') {
			return token.BangEq
		}
		lx.cursor.Bump()
		return token.Bang
	case '*':
		if lx.try3('*', '*', '=') {
			return token.StarStarAssign
		}
		if lx.try2('*', '*') {
			return token.StarStar
		}
		if lx.try2('*', '=') {
			return token.StarAssign
		}
		lx.cursor.Bump()
		return token.Star
	case '+':
		if lx.try2('+', '+') {
			return token.PlusPlus
		}
		if lx.try2('+', '=') {
			return token.PlusAssign
		}
		lx.cursor.Bump()
		return token.Plus
	case '-':
		if lx.try2('-', '-') {
			return token.MinusMinus
		}
		if lx.try2('-', '=') {
			return token.MinusAssign
		}
		lx.cursor.Bump()
		return token.Minus
	case '/':
		if lx.try2('/', '=') {
			return token.SlashAssign
		}
		lx.cursor.Bump()
		return token.Slash
	case '%':
		if lx.try2('%', '=') {
			return token.PercentAssign
		}
		lx.cursor.Bump()
		return token.Percent
	case '<':
		if lx.try3('<', '<', '=') {
			return token.ShlAssign
		}
		if lx.try2('<', '<') {
			return token.Shl
		}
		if lx.try2('<', '=') {
			return token.LtEq
		}
		lx.cursor.Bump()
		return token.Lt
	case '&':
		if lx.try3('&', '&', '=') {
			return token.AndAndAssign
		}
		if lx.try2('&', '&') {
			return token.AndAnd
		}
		if lx.try2('&', '=') {
			return token.AmpAssign
		}
		lx.cursor.Bump()
		return token.Amp
	case '|':
		if lx.try3('|', '|', '=') {
			return token.OrOrAssign
		}
		if lx.try2('|', '|') {
			return token.OrOr
		}
		if lx.try2('|', '=') {
			return token.PipeAssign
		}
		lx.cursor.Bump()
		return token.Pipe
	case '^':
		if lx.try2('^', '=') {
			return token.CaretAssign
		}
		lx.cursor.Bump()
		return token.Caret
	}
	return token.Invalid
}

package lexer

import (
	"effectlint/internal/diag"
	"effectlint/internal/token"
)

// scanString reads a '...' or "..." literal. Text keeps the quotes and escapes verbatim.
func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	quote := lx.cursor.Bump()

	for {
		if lx.cursor.EOF() {
			sp := lx.cursor.SpanFrom(start)
			lx.errLex(diag.LexUnterminatedString, sp, "unterminated string literal")
			return token.Token{Kind: token.StringLit, Span: sp, Text: lx.text(sp)}
		}
		b := lx.cursor.Peek()
		switch {
		case b == quote:
			lx.cursor.Bump()
			sp := lx.cursor.SpanFrom(start)
			return token.Token{Kind: token.StringLit, Span: sp, Text: lx.text(sp)}
		case b == '\\':
			lx.cursor.Bump()
			if lx.cursor.Peek() == '\r' {
				lx.cursor.Bump()
				lx.cursor.Eat('\n')
				continue
			}
			lx.bumpRune()
		case b == '\n' || b == '\r':
			sp := lx.cursor.SpanFrom(start)
			lx.errLex(diag.LexUnterminatedString, sp, "unterminated string literal")
			return token.Token{Kind: token.StringLit, Span: sp, Text: lx.text(sp)}
		default:
			lx.bumpRune()
		}
	}
}

// scanTemplate reads a template chunk starting at '`' (head or whole template)
// or at the '}' that closes a substitution (middle or tail).
func (lx *Lexer) scanTemplate() token.Token {
	start := lx.cursor.Mark()
	opener := lx.cursor.Bump()

	for {
		if lx.cursor.EOF() {
			sp := lx.cursor.SpanFrom(start)
			lx.errLex(diag.LexUnterminatedTemplate, sp, "unterminated template literal")
			kind := token.NoSubstTemplate
			if opener == '}' {
				kind = token.TemplateTail
			}
			return token.Token{Kind: kind, Span: sp, Text: lx.text(sp)}
		}
		b := lx.cursor.Peek()
		switch {
		case b == '`':
			lx.cursor.Bump()
			kind := token.NoSubstTemplate
			if opener == '}' {
				kind = token.TemplateTail
			}
			sp := lx.cursor.SpanFrom(start)
			return token.Token{Kind: kind, Span: sp, Text: lx.text(sp)}
		case b == '$':
			if lx.try2('$', '{') {
				kind := token.TemplateHead
				if opener == '}' {
					kind = token.TemplateMiddle
				}
				sp := lx.cursor.SpanFrom(start)
				return token.Token{Kind: kind, Span: sp, Text: lx.text(sp)}
			}
			lx.cursor.Bump()
		case b == '\\':
			lx.cursor.Bump()
			lx.bumpRune()
		default:
			lx.bumpRune()
		}
	}
}

// scanRegExp reads /body/flags. A '/' inside a character class does not end the body.
func (lx *Lexer) scanRegExp() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '/'
	inClass := false

	for {
		if lx.cursor.EOF() {
			sp := lx.cursor.SpanFrom(start)
			lx.errLex(diag.LexUnterminatedRegExp, sp, "unterminated regular expression")
			return token.Token{Kind: token.RegExpLit, Span: sp, Text: lx.text(sp)}
		}
		b := lx.cursor.Peek()
		if b == '\n' || b == '\r' {
			sp := lx.cursor.SpanFrom(start)
			lx.errLex(diag.LexUnterminatedRegExp, sp, "unterminated regular expression")
			return token.Token{Kind: token.RegExpLit, Span: sp, Text: lx.text(sp)}
		}
		lx.cursor.Bump()
		switch b {
		case '\\':
			lx.bumpRune()
			continue
		case '[':
			inClass = true
			continue
		case ']':
			inClass = false
			continue
		case '/':
			if inClass {
				continue
			}
		default:
			continue
		}
		break
	}

	for isIdentContinueByte(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: token.RegExpLit, Span: sp, Text: lx.text(sp)}
}

package lexer

import (
	"effectlint/internal/diag"
	"effectlint/internal/token"
)

// scanIdentOrKeyword reads an identifier, including \u escapes and Unicode letters.
// Escaped identifiers are never keywords.
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()
	escaped := false
	first := true

	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b == '\\' {
			if !lx.scanUnicodeEscape() {
				break
			}
			escaped = true
			first = false
			continue
		}
		if b < 0x80 {
			if (first && !isIdentStartByte(b)) || (!first && !isIdentContinueByte(b)) {
				break
			}
			lx.cursor.Bump()
			first = false
			continue
		}
		r, _ := lx.peekRune()
		if (first && !isIdentStartRune(r)) || (!first && !isIdentContinueRune(r)) {
			break
		}
		lx.bumpRune()
		first = false
	}

	sp := lx.cursor.SpanFrom(start)
	if sp.Empty() {
		lx.bumpRune()
		sp = lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexUnknownChar, sp, "unexpected character")
		return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
	}
	text := lx.text(sp)
	if !escaped {
		if kw, ok := token.LookupKeyword(text); ok {
			return token.Token{Kind: kw, Span: sp, Text: text}
		}
	}
	return token.Token{Kind: token.Ident, Span: sp, Text: text}
}

// scanUnicodeEscape consumes \uXXXX or \u{X...}.
func (lx *Lexer) scanUnicodeEscape() bool {
	start := lx.cursor.Mark()
	if !lx.try2('\\', 'u') {
		return false
	}
	if lx.cursor.Eat('{') {
		n := 0
		for isHex(lx.cursor.Peek()) {
			lx.cursor.Bump()
			n++
		}
		if n > 0 && lx.cursor.Eat('}') {
			return true
		}
		lx.cursor.Reset(start)
		return false
	}
	for range 4 {
		if !isHex(lx.cursor.Peek()) {
			lx.cursor.Reset(start)
			return false
		}
		lx.cursor.Bump()
	}
	return true
}

func (lx *Lexer) scanPrivateName() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '#'
	b := lx.cursor.Peek()
	if isIdentStartByte(b) || b >= 0x80 || b == '\\' {
		ident := lx.scanIdentOrKeyword()
		if ident.Kind != token.Invalid {
			sp := lx.cursor.SpanFrom(start)
			return token.Token{Kind: token.PrivateName, Span: sp, Text: lx.text(sp)}
		}
	}
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: token.Hash, Span: sp, Text: lx.text(sp)}
}

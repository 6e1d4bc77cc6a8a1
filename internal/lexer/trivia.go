package lexer

import (
	"unicode"

	"effectlint/internal/diag"
	"effectlint/internal/token"
)

func (lx *Lexer) scanShebang() {
	b0, b1, ok := lx.cursor.Peek2()
	if !ok || b0 != '#' || b1 != '!' {
		return
	}
	start := lx.cursor.Mark()
	for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	lx.hold = append(lx.hold, token.Trivia{Kind: token.TriviaShebang, Span: sp, Text: lx.text(sp)})
}

// collectLeadingTrivia gathers consecutive trivia before a significant token.
//   - runs of spaces, tabs and Unicode spaces coalesce into one TriviaSpace
//   - runs of '\n' / '\r' (and U+2028/U+2029) coalesce into one TriviaNewline
//   - //... up to the line end is a TriviaLineComment
//   - /* ... */ is a TriviaBlockComment (not nested, as in TypeScript)
func (lx *Lexer) collectLeadingTrivia() {
	for !lx.cursor.EOF() {
		start := lx.cursor.Mark()
		b := lx.cursor.Peek()

		if b == ' ' || b == '\t' || b == '\v' || b == '\f' || lx.atUnicodeSpace() {
			for !lx.cursor.EOF() {
				b2 := lx.cursor.Peek()
				if b2 == ' ' || b2 == '\t' || b2 == '\v' || b2 == '\f' {
					lx.cursor.Bump()
					continue
				}
				if lx.atUnicodeSpace() {
					lx.bumpRune()
					continue
				}
				break
			}
			sp := lx.cursor.SpanFrom(start)
			lx.hold = append(lx.hold, token.Trivia{Kind: token.TriviaSpace, Span: sp, Text: lx.text(sp)})
			continue
		}

		if b == '\n' || b == '\r' || lx.atLineSeparator() {
			for !lx.cursor.EOF() {
				b2 := lx.cursor.Peek()
				if b2 == '\n' || b2 == '\r' {
					lx.cursor.Bump()
					continue
				}
				if lx.atLineSeparator() {
					lx.bumpRune()
					continue
				}
				break
			}
			sp := lx.cursor.SpanFrom(start)
			lx.hold = append(lx.hold, token.Trivia{Kind: token.TriviaNewline, Span: sp, Text: lx.text(sp)})
			lx.newline = true
			continue
		}

		if b == '/' && lx.scanCommentIntoHold() {
			continue
		}
		break
	}
}

func (lx *Lexer) scanCommentIntoHold() bool {
	start := lx.cursor.Mark()
	if !lx.cursor.Eat('/') {
		return false
	}
	switch lx.cursor.Peek() {
	case '/':
		for !lx.cursor.EOF() {
			c := lx.cursor.Peek()
			if c == '\n' || c == '\r' {
				break
			}
			lx.cursor.Bump()
		}
		sp := lx.cursor.SpanFrom(start)
		lx.hold = append(lx.hold, token.Trivia{Kind: token.TriviaLineComment, Span: sp, Text: lx.text(sp)})
		return true

	case '*':
		lx.cursor.Bump()
		closed := false
		for !lx.cursor.EOF() {
			if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '*' && b1 == '/' {
				lx.cursor.Bump()
				lx.cursor.Bump()
				closed = true
				break
			}
			if c := lx.cursor.Bump(); c == '\n' || c == '\r' {
				lx.newline = true
			}
		}
		sp := lx.cursor.SpanFrom(start)
		if !closed {
			lx.errLex(diag.LexUnterminatedBlockComment, sp, "unterminated block comment")
		}
		lx.hold = append(lx.hold, token.Trivia{Kind: token.TriviaBlockComment, Span: sp, Text: lx.text(sp)})
		return true

	default:
		lx.cursor.Reset(start)
		return false
	}
}

func (lx *Lexer) atUnicodeSpace() bool {
	if lx.cursor.Peek() < 0x80 {
		return false
	}
	r, _ := lx.peekRune()
	if r == '\u2028' || r == '\u2029' {
		return false
	}
	return r == '\uFEFF' || unicode.Is(unicode.Zs, r)
}

func (lx *Lexer) atLineSeparator() bool {
	if lx.cursor.Peek() < 0x80 {
		return false
	}
	r, _ := lx.peekRune()
	return r == '\u2028' || r == '\u2029'
}

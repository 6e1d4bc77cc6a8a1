package lexer

import (
	"effectlint/internal/diag"
	"effectlint/internal/token"
)

// scanNumber reads decimal, hex, octal, binary and bigint literals with '_' separators.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	kind := token.NumberLit

	b0, b1, ok := lx.cursor.Peek2()
	radixDigit := func(byte) bool { return false }
	if ok && b0 == '0' {
		switch b1 {
		case 'x', 'X':
			radixDigit = isHex
		case 'o', 'O':
			radixDigit = func(b byte) bool { return b >= '0' && b <= '7' }
		case 'b', 'B':
			radixDigit = func(b byte) bool { return b == '0' || b == '1' }
		}
	}

	if lx.cursor.Off+1 < lx.cursor.Limit && radixDigit('0') {
		lx.cursor.Bump()
		lx.cursor.Bump()
		n := lx.eatDigits(radixDigit)
		if n == 0 {
			lx.errLex(diag.LexBadNumber, lx.cursor.SpanFrom(start), "missing digits after radix prefix")
		}
	} else {
		lx.eatDigits(isDec)
		if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '.' && (isDec(b1) || !isIdentStartByte(b1)) {
			lx.cursor.Bump()
			lx.eatDigits(isDec)
		} else if lx.cursor.Peek() == '.' && lx.cursor.Off+1 == lx.cursor.Limit {
			lx.cursor.Bump()
		}
		if c := lx.cursor.Peek(); c == 'e' || c == 'E' {
			mark := lx.cursor.Mark()
			lx.cursor.Bump()
			if c2 := lx.cursor.Peek(); c2 == '+' || c2 == '-' {
				lx.cursor.Bump()
			}
			if lx.eatDigits(isDec) == 0 {
				lx.cursor.Reset(mark)
			}
		}
	}

	if lx.cursor.Eat('n') {
		kind = token.BigIntLit
	}

	if b := lx.cursor.Peek(); isIdentContinueByte(b) {
		for isIdentContinueByte(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
		sp := lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexBadNumber, sp, "identifier starts immediately after numeric literal")
		return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
	}

	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: kind, Span: sp, Text: lx.text(sp)}
}

func (lx *Lexer) eatDigits(ok func(byte) bool) int {
	n := 0
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if ok(b) {
			n++
			lx.cursor.Bump()
			continue
		}
		if b == '_' && n > 0 {
			lx.cursor.Bump()
			continue
		}
		break
	}
	return n
}

package lexer

import (
	"unicode/utf8"

	"effectlint/internal/source"
	"effectlint/internal/token"
)

type Lexer struct {
	file    *source.File
	cursor  Cursor
	opts    Options
	hold    []token.Trivia // pending leading trivia
	newline bool           // a line terminator was seen in hold
	prev    token.Kind     // last significant token, Invalid at start of input
	braces  []int          // open '{' count per active template substitution
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
		prev:   token.Invalid,
	}
}

// Tokenize lexes the whole file. The returned slice always ends with EOF,
// which carries any trailing comments as Leading trivia.
func Tokenize(file *source.File, opts Options) []token.Token {
	lx := New(file, opts)
	toks := make([]token.Token, 0, len(file.Content)/4+1)
	for {
		tok := lx.Next()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			return toks
		}
	}
}

// Next returns the next significant token with its Leading trivia.
// After EOF it keeps returning EOF.
func (lx *Lexer) Next() token.Token {
	if lx.cursor.Off == 0 {
		lx.scanShebang()
	}
	lx.collectLeadingTrivia()

	if lx.cursor.EOF() {
		tok := token.Token{Kind: token.EOF, Span: lx.EmptySpan()}
		return lx.finish(tok)
	}

	ch := lx.cursor.Peek()
	var tok token.Token

	switch {
	case isIdentStartByte(ch) || ch == '\\':
		tok = lx.scanIdentOrKeyword()
	case ch >= utf8.RuneSelf:
		tok = lx.scanIdentOrKeyword()
	case isDec(ch):
		tok = lx.scanNumber()
	case ch == '.' && lx.isNumberAfterDot():
		tok = lx.scanNumber()
	case ch == '"' || ch == '\'':
		tok = lx.scanString()
	case ch == '`':
		tok = lx.scanTemplate()
	case ch == '}' && len(lx.braces) > 0 && lx.braces[len(lx.braces)-1] == 0:
		tok = lx.scanTemplate()
	case ch == '/' && lx.regexAllowed():
		tok = lx.scanRegExp()
	case ch == '#':
		tok = lx.scanPrivateName()
	default:
		tok = lx.scanOperatorOrPunct()
	}

	lx.trackBraces(tok.Kind)
	return lx.finish(tok)
}

func (lx *Lexer) finish(tok token.Token) token.Token {
	tok.Leading = lx.hold
	if lx.newline {
		tok.Flags |= token.NewlineBefore
	}
	lx.hold = nil
	lx.newline = false
	if tok.Kind != token.EOF {
		lx.prev = tok.Kind
	}
	return tok
}

func (lx *Lexer) trackBraces(k token.Kind) {
	n := len(lx.braces)
	switch k {
	case token.TemplateHead:
		lx.braces = append(lx.braces, 0)
	case token.TemplateTail:
		if n > 0 {
			lx.braces = lx.braces[:n-1]
		}
	case token.LBrace:
		if n > 0 {
			lx.braces[n-1]++
		}
	case token.RBrace:
		if n > 0 && lx.braces[n-1] > 0 {
			lx.braces[n-1]--
		}
	}
}

// regexAllowed decides whether '/' starts a regular expression, using the
// previous significant token.
func (lx *Lexer) regexAllowed() bool {
	switch lx.prev {
	case token.Ident, token.PrivateName, token.NumberLit, token.BigIntLit, token.StringLit,
		token.RegExpLit, token.NoSubstTemplate, token.TemplateTail,
		token.KwThis, token.KwSuper, token.KwNull, token.KwTrue, token.KwFalse,
		token.RParen, token.RBracket, token.RBrace, token.PlusPlus, token.MinusMinus:
		return false
	default:
		return true
	}
}

// EmptySpan returns a zero-length span at the current position.
func (lx *Lexer) EmptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}

func (lx *Lexer) text(sp source.Span) string {
	return string(lx.file.Content[sp.Start:sp.End])
}

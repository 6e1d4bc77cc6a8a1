package token

import (
	"effectlint/internal/source"
)

type Flags uint8

const (
	// NewlineBefore is set when a line terminator precedes the token.
	NewlineBefore Flags = 1 << iota
)

// Token represents a single source token with its location and trivia.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Flags   Flags
	Leading []Trivia
}

// NewlineBefore reports whether a line break separates the token from the previous one.
func (t Token) NewlineBefore() bool { return t.Flags&NewlineBefore != 0 }

// IsLiteral reports whether the token is a numeric, string, regexp or template literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case NumberLit, BigIntLit, StringLit, RegExpLit, NoSubstTemplate, TemplateHead:
		return true
	default:
		return false
	}
}

// IsKeyword reports whether the token is a reserved word.
func (t Token) IsKeyword() bool {
	return t.Kind >= KwBreak && t.Kind <= KwLet
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// IsIdentName reports whether the token can be used as a property name:
// an identifier or any reserved word.
func (t Token) IsIdentName() bool { return t.Kind == Ident || t.IsKeyword() }

// IsContextual reports whether the token is the identifier text kw.
func (t Token) IsContextual(kw string) bool { return t.Kind == Ident && t.Text == kw }

// IsAssignOp reports whether the token is an assignment operator.
func (t Token) IsAssignOp() bool {
	switch t.Kind {
	case Assign, PlusAssign, MinusAssign, StarAssign, SlashAssign, PercentAssign,
		StarStarAssign, ShlAssign, AmpAssign, PipeAssign, CaretAssign,
		AndAndAssign, OrOrAssign, QuestionQuestionAssign:
		return true
	default:
		return false
	}
}

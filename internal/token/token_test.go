package token_test

import (
	"testing"

	"effectlint/internal/token"
)

func tok(k token.Kind, text string) token.Token {
	return token.Token{Kind: k, Text: text}
}

func TestLookupKeyword(t *testing.T) {
	for word, want := range map[string]token.Kind{
		"function": token.KwFunction,
		"yield":    token.KwYield,
		"await":    token.KwAwait,
	} {
		got, ok := token.LookupKeyword(word)
		if !ok || got != want {
			t.Fatalf("%q: want %v, got %v (ok=%v)", word, want, got, ok)
		}
	}
	for _, word := range []string{"type", "async", "of", "as", "from", "Function", "satisfies"} {
		if _, ok := token.LookupKeyword(word); ok {
			t.Fatalf("%q must lex as an identifier", word)
		}
	}
}

func TestTokenPredicates(t *testing.T) {
	if !tok(token.KwClass, "class").IsIdentName() {
		t.Fatalf("keywords are valid property names")
	}
	if tok(token.StringLit, `"x"`).IsIdentName() {
		t.Fatalf("string literal is not an identifier name")
	}
	if !tok(token.Ident, "async").IsContextual("async") {
		t.Fatalf("contextual keyword not recognised")
	}
	if !tok(token.QuestionQuestionAssign, "??=").IsAssignOp() {
		t.Fatalf("??= is an assignment operator")
	}
	if tok(token.EqEqEq, "===").IsAssignOp() {
		t.Fatalf("=== is not an assignment operator")
	}
	if !tok(token.NoSubstTemplate, "`x`").IsLiteral() {
		t.Fatalf("template is a literal")
	}
}

func TestKindString(t *testing.T) {
	if token.FatArrow.String() != "=>" || token.KwTypeof.String() != "typeof" {
		t.Fatalf("unexpected kind names: %s %s", token.FatArrow, token.KwTypeof)
	}
}

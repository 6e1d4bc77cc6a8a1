package lexer_test

import (
	"testing"

	"effectlint/internal/diag"
	"effectlint/internal/lexer"
	"effectlint/internal/source"
	"effectlint/internal/token"
)

func lexAll(t *testing.T, src string) ([]token.Token, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.ts", []byte(src))
	bag := diag.NewBag(100)
	toks := lexer.Tokenize(fs.Get(id), lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
	return toks, bag
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, 0, len(toks))
	for _, tk := range toks {
		out = append(out, tk.Kind)
	}
	return out
}

func expectKinds(t *testing.T, src string, want ...token.Kind) []token.Token {
	t.Helper()
	toks, bag := lexAll(t, src)
	if bag.HasErrors() {
		t.Fatalf("%q: unexpected lex errors: %+v", src, bag.Items())
	}
	want = append(want, token.EOF)
	got := kinds(toks)
	if len(got) != len(want) {
		t.Fatalf("%q: want %v, got %v", src, want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("%q: token %d: want %v, got %v (all: %v)", src, i, want[i], got[i], got)
		}
	}
	return toks
}

func TestImportDeclaration(t *testing.T) {
	toks := expectKinds(t, `import { readFile } from "node:fs/promises";`,
		token.KwImport, token.LBrace, token.Ident, token.RBrace, token.Ident, token.StringLit, token.Semicolon)
	if toks[5].Text != `"node:fs/promises"` {
		t.Fatalf("string text must keep quotes, got %q", toks[5].Text)
	}
	if toks[5].Span.Start != 25 || toks[5].Span.End != 43 {
		t.Fatalf("unexpected span %v", toks[5].Span)
	}
}

func TestYieldStar(t *testing.T) {
	expectKinds(t, `const x = yield* Effect.succeed(1)`,
		token.KwConst, token.Ident, token.Assign, token.KwYield, token.Star,
		token.Ident, token.Dot, token.Ident, token.LParen, token.NumberLit, token.RParen)
}

func TestRegexVersusDivide(t *testing.T) {
	expectKinds(t, `a / b / c`, token.Ident, token.Slash, token.Ident, token.Slash, token.Ident)
	expectKinds(t, `x = /ab[/]c/gi.test(s)`,
		token.Ident, token.Assign, token.RegExpLit, token.Dot, token.Ident, token.LParen, token.Ident, token.RParen)
	expectKinds(t, `return /x/`, token.KwReturn, token.RegExpLit)
	expectKinds(t, `f(a) / 2`, token.Ident, token.LParen, token.Ident, token.RParen, token.Slash, token.NumberLit)
}

func TestTemplates(t *testing.T) {
	expectKinds(t, "`plain`", token.NoSubstTemplate)
	toks := expectKinds(t, "`a${ {b: 1}.b }c${d}e`",
		token.TemplateHead, token.LBrace, token.Ident, token.Colon, token.NumberLit, token.RBrace,
		token.Dot, token.Ident, token.TemplateMiddle, token.Ident, token.TemplateTail)
	if toks[8].Text != "}c${" {
		t.Fatalf("middle chunk text: %q", toks[8].Text)
	}
	expectKinds(t, "`outer ${`inner ${x}`} done`",
		token.TemplateHead, token.TemplateHead, token.Ident, token.TemplateTail, token.TemplateTail)
}

func TestGreaterThanIsNeverFused(t *testing.T) {
	expectKinds(t, `a >>= b`, token.Ident, token.Gt, token.Gt, token.Assign, token.Ident)
	expectKinds(t, `Array<Set<T>>`, token.Ident, token.Lt, token.Ident, token.Lt, token.Ident, token.Gt, token.Gt)
	expectKinds(t, `(): Promise<void>=> 1`,
		token.LParen, token.RParen, token.Colon, token.Ident, token.Lt, token.KwVoid, token.Gt, token.FatArrow, token.NumberLit)
}

func TestNumbers(t *testing.T) {
	for _, src := range []string{"0", "1_000", "0xFF", "0b1010", "0o17", "1.5e-3", ".5", "10n"} {
		toks, bag := lexAll(t, src)
		if bag.HasErrors() || len(toks) != 2 {
			t.Fatalf("%q: bad lex %v %+v", src, kinds(toks), bag.Items())
		}
		if toks[0].Text != src {
			t.Fatalf("%q: text %q", src, toks[0].Text)
		}
	}
	if _, bag := lexAll(t, "3in"); !bag.HasErrors() {
		t.Fatalf("identifier glued to a number must be an error")
	}
}

func TestOptionalChainAndConditional(t *testing.T) {
	expectKinds(t, `a?.b ?? c`, token.Ident, token.QuestionDot, token.Ident, token.QuestionQuestion, token.Ident)
	expectKinds(t, `a?.5:1`, token.Ident, token.Question, token.NumberLit, token.Colon, token.NumberLit)
}

func TestTriviaAndNewlines(t *testing.T) {
	src := "// @ts-ignore\nconst a = 1 /* x\ny */ + 2\n"
	toks, _ := lexAll(t, src)
	if len(toks[0].Leading) == 0 || toks[0].Leading[0].Kind != token.TriviaLineComment {
		t.Fatalf("expected line comment trivia, got %+v", toks[0].Leading)
	}
	if !toks[0].NewlineBefore() {
		t.Fatalf("newline after comment must be recorded")
	}
	plus := toks[4]
	if plus.Kind != token.Plus || !plus.NewlineBefore() {
		t.Fatalf("multi-line block comment must set NewlineBefore: %+v", plus)
	}
	if toks[1].NewlineBefore() {
		t.Fatalf("no newline before identifier")
	}
}

func TestTrailingCommentsAttachToEOF(t *testing.T) {
	toks, _ := lexAll(t, "x\n// tail")
	eof := toks[len(toks)-1]
	if eof.Kind != token.EOF || len(eof.Leading) != 2 || eof.Leading[1].Text != "// tail" {
		t.Fatalf("trailing comment lost: %+v", eof.Leading)
	}
}

func TestUnicodeIdentifierAndPrivateName(t *testing.T) {
	toks := expectKinds(t, `class A { #count = café }`,
		token.KwClass, token.Ident, token.LBrace, token.PrivateName, token.Assign, token.Ident, token.RBrace)
	if toks[5].Text != "café" {
		t.Fatalf("unicode identifier: %q", toks[5].Text)
	}
}

func TestUnterminatedLiterals(t *testing.T) {
	for _, src := range []string{`"abc`, "'a\nb'", "`abc", "/* open", "x = /abc"} {
		if _, bag := lexAll(t, src); !bag.HasErrors() {
			t.Errorf("%q: expected an error", src)
		}
	}
}

func TestCRLFSourceIsTrivia(t *testing.T) {
	toks := expectKinds(t, "a\r\nb", token.Ident, token.Ident)
	if !toks[1].NewlineBefore() {
		t.Fatalf("CRLF must count as a line break")
	}
}

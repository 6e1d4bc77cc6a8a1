package parser_test

import (
	"strings"
	"testing"

	"effectlint/internal/ast"
	"effectlint/internal/diag"
	"effectlint/internal/parser"
	"effectlint/internal/source"
)

func parse(t *testing.T, src string) parser.Result {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.ts", []byte(src))
	return parser.ParseFile(fs.Get(id), parser.Options{})
}

func mustParse(t *testing.T, src string) *ast.Tree {
	t.Helper()
	res := parse(t, src)
	if !res.OK() {
		var msgs []string
		for _, d := range res.Bag.Items() {
			msgs = append(msgs, d.Message)
		}
		t.Fatalf("parse %q failed: %s", src, strings.Join(msgs, "; "))
	}
	return res.Tree
}

func findKind(tree *ast.Tree, kind ast.Kind) ast.NodeID {
	return ast.Find(tree, tree.Root, func(id ast.NodeID) bool { return tree.Kind(id) == kind }, nil)
}

func collectKind(tree *ast.Tree, kind ast.Kind) []ast.NodeID {
	var out []ast.NodeID
	ast.Inspect(tree, tree.Root, func(id ast.NodeID) bool {
		if tree.Kind(id) == kind {
			out = append(out, id)
		}
		return true
	})
	return out
}

func TestParseAccepts(t *testing.T) {
	cases := []string{
		`import { readFile } from "node:fs/promises";`,
		`import * as Effect from "effect/Effect"`,
		`import Default, { a as b, type C } from "mod";`,
		`import type { X } from "x";`,
		`import "side-effect";`,
		`import fs = require("fs");`,
		`export { a, b as c } from "./m";`,
		`export * from "./all";`,
		`export * as ns from "./ns";`,
		`export default function () {}`,
		`export const x = 1, y = 2;`,
		`export type T = string | number;`,
		`const program = Effect.gen(function* () { const a = yield* getA; return a + 1; });`,
		`Effect.gen(function* () { return 42; });`,
		`const f = async (x: number): Promise<number> => { await g(x); return x; };`,
		`const id = <T,>(x: T): T => x;`,
		`const g = x => x * 2;`,
		`const h = (a, b = 1, ...rest) => [a, b, rest];`,
		`const o = { a: 1, b, c = 2, ...d, m() {}, get v() { return 1; }, async *gen() {}, [k]: 3 };`,
		"const s = `a ${b} c ${d + `nested ${e}`}`;",
		`const r = /ab+c/gi.test(s);`,
		`const d = a / b / c;`,
		`x = a ? b : c;`,
		`x = a ? (b) : c;`,
		`const cmp = a < b && c > d;`,
		`x >>= 2; y >>>= 1; z = a >> b >>> c;`,
		`const big = 10n ** 2n;`,
		`a?.b?.[c]?.(d);`,
		`const n = value!;`,
		`const v = x as unknown as Effect.Effect<A, E>;`,
		`const w = y satisfies Config;`,
		`const c = <any>value;`,
		`for (const x of xs) {} for (const k in o) {} for await (const y of ys) {}`,
		`for (let i = 0; i < n; i++) { continue; }`,
		`try { f(); } catch (e: unknown) { g(e); } finally { h(); }`,
		`try { f(); } catch { }`,
		`switch (e._tag) { case "A": break; default: return; }`,
		`label: while (true) { break label; }`,
		`do { x++ } while (x < 10)`,
		`class A extends B implements C, D { private readonly x: number = 1; static y?: string; constructor(public z: string) { super(); } #p = 2; get q() { return this.#p; } static { init(); } }`,
		`class MyService extends Context.Tag("MyService")<MyService, { readonly get: Effect.Effect<number> }>() {}`,
		`class NotFound extends Data.TaggedError("NotFound")<{ readonly id: string }> {}`,
		`export class Svc extends Effect.Service<Svc>()("Svc", { effect: Effect.succeed({}) }) {}`,
		`abstract class Base { abstract run(): void; }`,
		`@dec() class Decorated { @prop() x = 1; }`,
		`interface Props<T extends object = {}> extends Base<T> { readonly a: string; b?: number; [key: string]: unknown; (x: number): string; new (x: string): Props<T>; method<U>(u: U): void; }`,
		`type Fn = (a: number, ...rest: string[]) => void;`,
		`type Ctor = new (...args: any[]) => object;`,
		`type M = { readonly [K in keyof T]?: T[K] };`,
		`type C<T> = T extends Array<infer U> ? U : never;`,
		"type Tpl = `prefix-${string}`;",
		`type Tup = [a: string, b?: number, ...rest: boolean[]];`,
		`type Q = typeof import("./mod").default;`,
		`type Pred = (x: unknown) => x is string;`,
		`function assert(x: unknown): asserts x is string {}`,
		`function over(a: string): void; function over(a: any) {}`,
		`declare const VERSION: string;`,
		`declare module "x" { export const a: number; }`,
		`namespace NS.Inner { export const a = 1; }`,
		`enum Color { Red, Green = "g" } const enum E { A }`,
		`const { a, b: { c }, ...rest } = obj; const [x, , y = 2, ...zs] = arr;`,
		`new Foo; new Foo<T>(1); new.target;`,
		`const t = tag` + "`hello ${world}`" + `;`,
		`const res = f<string>(x);`,
		`const inst = make<A>;`,
		`const x = await Promise.all([a, b]);`,
		`let async = 1; async = 2;`,
		`const p = import("./lazy");`,
		`if (a) b(); else if (c) d(); else e();`,
		`throw new Error("boom");`,
		`const u: unique symbol = Symbol();`,
		`let fn: <T>(x: T) => T;`,
		`const e = (x as any).y;`,
		`using res = acquire();`,
		`#!/usr/bin/env node
console.log(1)`,
	}
	for _, src := range cases {
		mustParse(t, src)
	}
}

func TestParseRejects(t *testing.T) {
	cases := []struct {
		src  string
		code diag.Code
	}{
		{`const = 1;`, diag.SynExpectIdentifier},
		{`f(1, 2`, diag.SynUnclosedDelimiter},
		{`let x = ;`, diag.SynExpectExpression},
		{`const s = "unterminated`, diag.LexUnterminatedString},
		{`a b`, diag.SynExpectSemicolon},
	}
	for _, tc := range cases {
		res := parse(t, tc.src)
		if res.OK() || res.Tree != nil {
			t.Fatalf("%q: expected failure", tc.src)
		}
		first, ok := res.Bag.First()
		if !ok || first.Code != tc.code {
			t.Fatalf("%q: want code %v, got %+v", tc.src, tc.code, first)
		}
	}
}

type collectReporter struct{ codes []diag.Code }

func (c *collectReporter) Report(code diag.Code, _ diag.Severity, _ source.Span, _ string, _ []diag.Note) {
	c.codes = append(c.codes, code)
}

func TestLexErrorsAllReported(t *testing.T) {
	src := "const a = \"one\nconst b = 'two\nconst c = 1;\n"
	fs := source.NewFileSet()
	id := fs.AddVirtual("lex.ts", []byte(src))
	extra := &collectReporter{}
	res := parser.ParseFile(fs.Get(id), parser.Options{Reporter: extra})
	if res.OK() || res.Tree != nil {
		t.Fatal("expected lexical failure")
	}
	items := res.Bag.Items()
	if len(items) != 2 {
		t.Fatalf("want 2 lexical diagnostics, got %+v", items)
	}
	if items[0].Primary.Start >= items[1].Primary.Start {
		t.Fatalf("diagnostics out of order: %+v", items)
	}
	for _, d := range items {
		if d.Code != diag.LexUnterminatedString {
			t.Fatalf("unexpected code %v", d.Code)
		}
	}
	if len(extra.codes) != 2 {
		t.Fatalf("caller reporter saw %v", extra.codes)
	}
}

func TestDepthLimit(t *testing.T) {
	src := strings.Repeat("(", 50) + "1" + strings.Repeat(")", 50)
	fs := source.NewFileSet()
	id := fs.AddVirtual("deep.ts", []byte(src))
	res := parser.ParseFile(fs.Get(id), parser.Options{MaxDepth: 20})
	if res.OK() {
		t.Fatal("expected depth failure")
	}
	if first, _ := res.Bag.First(); first.Code != diag.SynTooDeep {
		t.Fatalf("want SynTooDeep, got %v", first.Code)
	}
}

func TestGenCallShape(t *testing.T) {
	tree := mustParse(t, `Effect.gen(function* () { const a = yield* b; })`)
	call := findKind(tree, ast.CallExpr)
	if got := tree.DottedName(tree.Callee(call)); got != "Effect.gen" {
		t.Fatalf("callee = %q", got)
	}
	fn := tree.Arg(call, 0)
	if tree.Kind(fn) != ast.FuncExpr || !tree.Has(fn, ast.FlagGenerator) {
		t.Fatalf("arg kind %v flags generator=%v", tree.Kind(fn), tree.Has(fn, ast.FlagGenerator))
	}
	y := findKind(tree, ast.YieldExpr)
	if !tree.Has(y, ast.FlagDelegate) {
		t.Fatal("yield* must carry the delegate flag")
	}
}

func TestTypeRefsAreCollected(t *testing.T) {
	tree := mustParse(t, `const f = (x: any): Effect.Effect<Array<any>, never> => x as unknown;`)
	var names []string
	for _, id := range collectKind(tree, ast.TypeRef) {
		names = append(names, tree.Text(id))
	}
	got := strings.Join(names, ",")
	want := "any,Effect.Effect,Array,any,never,unknown"
	if got != want {
		t.Fatalf("refs = %s, want %s", got, want)
	}
	for _, id := range collectKind(tree, ast.TypeRef) {
		if tree.Source(id) != tree.Text(id) {
			t.Fatalf("ref span %q does not match text %q", tree.Source(id), tree.Text(id))
		}
	}
}

func TestGenericCallVersusComparison(t *testing.T) {
	tree := mustParse(t, `f<A>(x);`)
	call := findKind(tree, ast.CallExpr)
	if targs := tree.Kid(call, 1); tree.Kind(targs) != ast.TypeArgs {
		t.Fatalf("type args kind = %v", tree.Kind(targs))
	}

	tree = mustParse(t, `a < b > c;`)
	if findKind(tree, ast.CallExpr) != ast.NoNode || findKind(tree, ast.TypeArgs) != ast.NoNode {
		t.Fatal("comparison chain parsed as generic call")
	}
	bin := findKind(tree, ast.BinaryExpr)
	if tree.Text(bin) != ">" {
		t.Fatalf("outer operator = %q", tree.Text(bin))
	}
}

func TestShiftAssignFusion(t *testing.T) {
	tree := mustParse(t, `x >>>= 1;`)
	as := findKind(tree, ast.AssignExpr)
	if tree.Text(as) != ">>>=" {
		t.Fatalf("operator = %q", tree.Text(as))
	}
}

func TestClassHeritageWithTypeArgs(t *testing.T) {
	tree := mustParse(t, `class Err extends Data.TaggedError("Err")<{ readonly msg: string }> {}`)
	class := findKind(tree, ast.ClassDecl)
	ext := tree.Kid(class, 3)
	if tree.Kind(ext) != ast.ExprWithTypeArgs {
		t.Fatalf("extends kind = %v", tree.Kind(ext))
	}
	call := tree.Kid(ext, 0)
	if tree.DottedName(tree.Callee(call)) != "Data.TaggedError" {
		t.Fatalf("heritage callee = %q", tree.DottedName(tree.Callee(call)))
	}

	tree = mustParse(t, `class Tag extends Context.Tag("Tag")<Tag, number>() {}`)
	class = findKind(tree, ast.ClassDecl)
	outer := tree.Kid(class, 3)
	if tree.Kind(outer) != ast.CallExpr || len(tree.Args(outer)) != 0 {
		t.Fatalf("extends = %v", tree.Kind(outer))
	}
	if tree.Kind(tree.Kid(outer, 1)) != ast.TypeArgs {
		t.Fatalf("outer call type args = %v", tree.Kind(tree.Kid(outer, 1)))
	}
	inner := tree.Callee(outer)
	if tree.Kind(inner) != ast.CallExpr || tree.DottedName(tree.Callee(inner)) != "Context.Tag" {
		t.Fatalf("Tag call = %v %q", tree.Kind(inner), tree.DottedName(tree.Callee(inner)))
	}
}

func TestTemplateText(t *testing.T) {
	tree := mustParse(t, "x = `a${b}c${d}e`;")
	tpl := findKind(tree, ast.TemplateLit)
	if tree.Text(tpl) != "a${}c${}e" {
		t.Fatalf("text = %q", tree.Text(tpl))
	}
	if len(tree.Kids(tpl)) != 2 {
		t.Fatalf("substitutions = %d", len(tree.Kids(tpl)))
	}
}

func TestCommentsCollected(t *testing.T) {
	tree := mustParse(t, "// @ts-ignore\nconst a: number = \"x\"; /* tail */")
	if len(tree.Comments) != 2 {
		t.Fatalf("comments = %d", len(tree.Comments))
	}
	if tree.Comments[0].Text != "// @ts-ignore" {
		t.Fatalf("first comment = %q", tree.Comments[0].Text)
	}
}

func TestReparseIsEqual(t *testing.T) {
	a := mustParse(t, "const x   =  f( 1 ,2 );\n")
	b := mustParse(t, "const x = f(1, 2);")
	if !ast.Equal(a, b) {
		t.Fatal("layout-only difference must compare equal")
	}
	c := mustParse(t, "const x = f(1, 3);")
	if ast.Equal(a, c) {
		t.Fatal("different literal must compare unequal")
	}
}

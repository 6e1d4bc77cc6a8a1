package classify

import (
	"testing"

	"effectlint/internal/ast"
	"effectlint/internal/parser"
	"effectlint/internal/source"
)

func parseFile(t *testing.T, name, src string) *File {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual(name, []byte(src))
	res := parser.ParseFile(fs.Get(id), parser.Options{})
	if !res.OK() {
		t.Fatalf("parse %q failed", src)
	}
	return New(res.Tree, name)
}

// atMarker evaluates pred at the identifier HERE.
func atMarker(t *testing.T, src string, pred func(f *File, id ast.NodeID, stack *ast.Stack) bool) bool {
	t.Helper()
	f := parseFile(t, "test.ts", src)
	tree := f.Tree()
	var got, seen bool
	ast.Walk(tree, tree.Root, func(id ast.NodeID, stack *ast.Stack) bool {
		if tree.IsIdent(id, "HERE") && !seen {
			seen = true
			got = pred(f, id, stack)
		}
		return true
	})
	if !seen {
		t.Fatalf("no marker in %q", src)
	}
	return got
}

type markerCase struct {
	src  string
	want bool
}

func runMarkerCases(t *testing.T, cases []markerCase, pred func(f *File, id ast.NodeID, stack *ast.Stack) bool) {
	t.Helper()
	for _, tc := range cases {
		if got := atMarker(t, tc.src, pred); got != tc.want {
			t.Errorf("%q: got %v, want %v", tc.src, got, tc.want)
		}
	}
}

func TestIsEffectfulSource(t *testing.T) {
	cases := []markerCase{
		{`import { Effect } from "effect"; const x = 1;`, true},
		{`import * as S from "@effect/schema/Schema";`, true},
		{`import * as E from "effect/Effect";`, true},
		{`export { pipe } from "effect";`, true},
		{`function* g() { yield* other(); }`, true},
		{`const a = Effect;`, true},
		{`import fs from "node:fs"; const x = 1;`, false},
		{`function* g() { yield 1; }`, false},
		{`import { x } from "effects";`, false},
	}
	for _, tc := range cases {
		f := parseFile(t, "test.ts", tc.src)
		if got := f.IsEffectfulSource(); got != tc.want {
			t.Errorf("%q: got %v, want %v", tc.src, got, tc.want)
		}
		if f.IsEffectfulSource() != tc.want {
			t.Errorf("%q: memoized answer changed", tc.src)
		}
	}
}

func TestIsBoundaryFile(t *testing.T) {
	cases := map[string]bool{
		"app/api/users/route.ts":     true,
		"src/app/api/x.ts":           true,
		"pages/api/login.ts":         true,
		"src/routes/index.ts":        true,
		"server/handlers/user.ts":    true,
		"src/controllers/a.ts":       true,
		"src/routes/+server.ts":      true,
		"lib/handler.ts":             true,
		"src/services/user.ts":       false,
		"api/user.ts":                false,
		"src/routing.ts":             false,
		"a.ts":                       false,
		"src/app/apis/controller.ts": false,
		"src/handlers.ts":            false,
	}
	for name, want := range cases {
		if got := IsBoundaryFile(name); got != want {
			t.Errorf("IsBoundaryFile(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestIsInsideEffectfulBlock(t *testing.T) {
	runMarkerCases(t, []markerCase{
		{`Effect.gen(function* () { HERE; });`, true},
		{`Effect.gen(function* () { if (a) { for (;;) { HERE; } } });`, true},
		{`Effect.map((x) => HERE);`, true},
		{`pipe(x, Effect.flatMap((y) => HERE));`, true},
		{`x.pipe((y) => HERE);`, true},
		{`Stream.gen(function* () { HERE; });`, true},
		{`Effect.fn("job")(function* () { HERE; });`, true},
		{`Effect.tryPromise({ try: () => fetch(HERE) });`, true},
		{`Effect.tryPromise(() => fetch(HERE));`, true},
		{`function f() { HERE; }`, false},
		{`Effect.gen(function* () { items.forEach((x) => HERE); });`, false},
		{`Effect.gen(function* () { function inner() { HERE; } });`, false},
		{`Effect.gen(function () { HERE; });`, false},
		{`HERE;`, false},
		{`lodash.map(xs, (x) => HERE);`, false},
	}, func(f *File, id ast.NodeID, stack *ast.Stack) bool {
		return f.IsInsideEffectfulBlock(id, stack)
	})
}

func TestIsInsideCombinatorCallback(t *testing.T) {
	runMarkerCases(t, []markerCase{
		{`Effect.gen(function* () { HERE; });`, false},
		{`Effect.map((x) => HERE);`, true},
		{`Effect.catchAll(function (e) { return HERE; });`, true},
		{`Option.match(o, { onNone: () => HERE });`, true},
		{`Effect.map({ f: () => HERE });`, true},
		{`f({ g: () => HERE });`, false},
		{`f((x) => HERE);`, false},
	}, func(f *File, id ast.NodeID, stack *ast.Stack) bool {
		return f.IsInsideCombinatorCallback(id, stack)
	})
}

func TestIsInsideEffectGen(t *testing.T) {
	runMarkerCases(t, []markerCase{
		{`Effect.gen(function* () { HERE; });`, true},
		{`Effect.gen(this, function* () { HERE; });`, true},
		{`Effect.map((x) => HERE);`, false},
		{`function* g() { HERE; }`, false},
	}, func(f *File, id ast.NodeID, stack *ast.Stack) bool {
		return f.IsInsideEffectGen(id, stack)
	})
}

func TestIsInsideResourceCleanup(t *testing.T) {
	runMarkerCases(t, []markerCase{
		{`Effect.acquireRelease(open(), (h) => HERE);`, true},
		{`Effect.acquireRelease(open(), ((h) => HERE));`, true},
		{`Effect.acquireRelease(HERE, (h) => close(h));`, false},
		{`Effect.acquireUseRelease(open(), use, (h) => HERE);`, true},
		{`Effect.acquireUseRelease(open(), (h) => HERE, close);`, false},
		{`Effect.ensuring(task, Effect.sync(() => HERE));`, true},
		{`task.pipe(Effect.ensuring(Effect.log(HERE)));`, true},
		{`Effect.addFinalizer(() => HERE);`, true},
		{`Effect.onExit(task, (exit) => HERE);`, true},
		{`Effect.acquireRelease(open(), (h) => { function inner() { HERE; } });`, false},
		{`Effect.gen(function* () { HERE; });`, false},
		{`cleanup.ensuring(task, () => HERE);`, false},
	}, func(f *File, id ast.NodeID, stack *ast.Stack) bool {
		return f.IsInsideResourceCleanup(id, stack)
	})
}

func TestIsAtModuleScope(t *testing.T) {
	runMarkerCases(t, []markerCase{
		{`HERE;`, true},
		{`const x = HERE;`, true},
		{`if (a) { HERE; }`, true},
		{`export default HERE;`, true},
		{`function f() { HERE; }`, false},
		{`const g = () => HERE;`, false},
		{`class A { x = HERE; }`, false},
		{`class A { static { HERE; } }`, false},
	}, func(f *File, id ast.NodeID, stack *ast.Stack) bool {
		return f.IsAtModuleScope(id, stack)
	})
}

func TestIsInsideServiceDefinition(t *testing.T) {
	runMarkerCases(t, []markerCase{
		{`class Db extends Effect.Service<Db>()("Db", { effect: HERE }) {}`, true},
		{`const L = Layer.effect(Tag, Effect.gen(function* () { HERE; }));`, true},
		{`const L = Layer.succeed(Tag, { run: () => HERE });`, true},
		{`class T extends Context.Tag("T")<T, { run: () => void }>() { m() { HERE; } }`, true},
		{`class E extends Error { m() { HERE; } }`, false},
		{`function f() { HERE; }`, false},
		{`const x = Layer.provide(HERE);`, false},
	}, func(f *File, id ast.NodeID, stack *ast.Stack) bool {
		return f.IsInsideServiceDefinition(id, stack)
	})
}

func TestCalleeName(t *testing.T) {
	cases := []struct {
		src          string
		recv, method string
	}{
		{`Effect.map(f);`, "Effect", "map"},
		{`pipe(x);`, "", "pipe"},
		{`a.b.c(d);`, "a.b", "c"},
		{`f()(g);`, "", ""},
		{`Effect.succeed(1).pipe(g);`, "", "pipe"},
		{`Effect.Service<Db>();`, "Effect", "Service"},
	}
	for _, tc := range cases {
		f := parseFile(t, "test.ts", tc.src)
		tree := f.Tree()
		call := ast.Find(tree, tree.Root, func(id ast.NodeID) bool { return tree.Kind(id) == ast.CallExpr }, nil)
		recv, method := CalleeName(tree, call)
		if recv != tc.recv || method != tc.method {
			t.Errorf("%q: got (%q, %q), want (%q, %q)", tc.src, recv, method, tc.recv, tc.method)
		}
	}
}

func TestCallShapes(t *testing.T) {
	cases := []struct {
		src             string
		gen, comb, runs bool
	}{
		{`Effect.gen(function* () {});`, true, false, false},
		{`Effect.fn("x")(function* () {});`, true, false, false},
		{`Effect.map(f);`, false, true, false},
		{`Stream.flatMap(f);`, false, true, false},
		{`x.pipe(f);`, false, true, false},
		{`Effect.runPromise(p);`, false, false, true},
		{`runtime.runSync(p);`, false, false, true},
		{`runPromise(p);`, false, false, false},
		{`gen(function* () {});`, false, false, false},
		{`Array.map(f);`, false, false, false},
	}
	for _, tc := range cases {
		f := parseFile(t, "test.ts", tc.src)
		tree := f.Tree()
		stmt := tree.Kids(tree.Root)[0]
		call := tree.Kid(stmt, 0)
		if got := IsGenCall(tree, call); got != tc.gen {
			t.Errorf("IsGenCall(%q) = %v", tc.src, got)
		}
		if got := IsCombinatorCall(tree, call); got != tc.comb {
			t.Errorf("IsCombinatorCall(%q) = %v", tc.src, got)
		}
		if got := IsRunCall(tree, call); got != tc.runs {
			t.Errorf("IsRunCall(%q) = %v", tc.src, got)
		}
	}
}

package refactor_test

import (
	"strings"
	"testing"

	"effectlint/internal/catalog"
	"effectlint/internal/refactor"
)

const fx = "import { Effect } from \"effect\";\n"

var transformCases = []struct {
	fix  string
	src  string
	want string
}{
	{
		"replace-node-fs",
		"import { readFile } from \"node:fs/promises\";\n",
		"import { FileSystem } from \"@effect/platform\";\n",
	},
	{
		"replace-node-fs",
		"import { FileSystem } from \"@effect/platform\";\nimport fs from \"node:fs\";\nconst a = 1;\n",
		"import { FileSystem } from \"@effect/platform\";\nconst a = 1;\n",
	},
	{
		"replace-node-fs",
		"import fs from \"node:fs\";\nimport { readFile } from \"fs/promises\";\n",
		"import { FileSystem } from \"@effect/platform\";\n",
	},
	{
		"replace-node-fs",
		"import { readFile } from \"node:fs/promises\";\nconst a = obj.readFile;\n",
		"import { FileSystem } from \"@effect/platform\";\nconst a = obj.readFile;\n",
	},
	{
		"replace-node-path",
		"import * as path from \"node:path\";\n",
		"import { Path } from \"@effect/platform\";\n",
	},
	{
		"fix-deep-import",
		"import { x } from \"effect/dist/esm/Effect.js\";\n",
		"import { x } from \"effect/Effect\";\n",
	},
	{
		"fix-deep-import",
		"import { y } from '@effect/platform/internal/http';\n",
		"import { y } from '@effect/platform';\n",
	},
	{
		"use-namespace-import",
		"import Effect from \"effect/Effect\";\n",
		"import * as Effect from \"effect/Effect\";\n",
	},
	{
		"add-yield-star",
		fx + "Effect.gen(function* () {\n  const a = yield Effect.succeed(1);\n  return a;\n});\n",
		fx + "Effect.gen(function* () {\n  const a = yield* Effect.succeed(1);\n  return a;\n});\n",
	},
	{
		"remove-gen-adapter",
		fx + "Effect.gen(function* (_) {\n  const a = yield* _(Effect.succeed(1));\n  return a;\n});\n",
		fx + "Effect.gen(function* () {\n  const a = yield* Effect.succeed(1);\n  return a;\n});\n",
	},
	{
		"remove-unnecessary-pipe",
		fx + "const a = Effect.succeed(1).pipe();\n",
		fx + "const a = Effect.succeed(1);\n",
	},
	{
		"remove-unnecessary-pipe",
		fx + "const a = pipe(pipe(b));\n",
		fx + "const a = b;\n",
	},
	{
		"explicit-lambda",
		fx + "const a = Effect.map(eff, format);\n",
		fx + "const a = Effect.map(eff, (x) => format(x));\n",
	},
	{
		"explicit-lambda",
		fx + "const a = Effect.map(eff, x);\n",
		fx + "const a = Effect.map(eff, (a) => x(a));\n",
	},
	{
		"flatmap-to-map",
		fx + "const a = Effect.flatMap(eff, (n) => Effect.succeed(n + 1));\n",
		fx + "const a = Effect.map(eff, (n) => n + 1);\n",
	},
	{
		"map-to-flatmap",
		fx + "const a = Effect.map(eff, (n) => Effect.succeed(n));\n",
		fx + "const a = Effect.flatMap(eff, (n) => Effect.succeed(n));\n",
	},
	{
		"use-duration-string",
		fx + "const a = Effect.sleep(1000);\n",
		fx + "const a = Effect.sleep(\"1000 millis\");\n",
	},
	{
		"ts-ignore-to-expect-error",
		fx + "// @ts-ignore\nconst a: number = \"x\";\n",
		fx + "// @ts-expect-error\nconst a: number = \"x\";\n",
	},
	{
		"use-effect-fail",
		fx + "Effect.gen(function* () {\n  throw new Error(\"boom\");\n});\n",
		fx + "Effect.gen(function* () {\n  return yield* Effect.fail(new Error(\"boom\"));\n});\n",
	},
	{
		"replace-console-log",
		fx + "Effect.gen(function* () {\n  console.log(\"hi\", 1);\n  console.warn(\"careful\");\n});\n",
		fx + "Effect.gen(function* () {\n  yield* Effect.log(\"hi\", 1);\n  yield* Effect.logWarning(\"careful\");\n});\n",
	},
	{
		"yield-instead-of-run",
		fx + "Effect.gen(function* () {\n  const a = Effect.runSync(Effect.succeed(1));\n  return a;\n});\n",
		fx + "Effect.gen(function* () {\n  const a = yield* Effect.succeed(1);\n  return a;\n});\n",
	},
	{
		"bound-concurrency",
		fx + "const a = Effect.all(xs, { concurrency: \"unbounded\" });\n",
		fx + "const a = Effect.all(xs, { concurrency: 10 });\n",
	},
	{
		"use-fork-scoped",
		fx + "Effect.gen(function* () {\n  yield* Effect.fork(task);\n});\n",
		fx + "Effect.gen(function* () {\n  yield* Effect.forkScoped(task);\n});\n",
	},
	{
		"gen-to-sync",
		fx + "const a = Effect.gen(function* () {\n  return 42;\n});\n",
		fx + "const a = Effect.sync(() => 42);\n",
	},
	{
		"gen-to-sync",
		fx + "const a = Effect.gen(function* () {\n  const x = 1;\n  return x;\n});\n",
		fx + "const a = Effect.sync(() => {\n  const x = 1;\n  return x;\n});\n",
	},
	{
		"replace-any-unknown",
		fx + "const a: any = 1;\n",
		fx + "const a: unknown = 1;\n",
	},
}

func TestTransforms(t *testing.T) {
	e := refactor.Default()
	for _, tc := range transformCases {
		got := e.ApplyFile("a.ts", tc.src, []string{tc.fix})
		if got != tc.want {
			t.Errorf("%s:\n got %q\nwant %q", tc.fix, got, tc.want)
		}
	}
}

func TestTransformsAreIdempotent(t *testing.T) {
	e := refactor.Default()
	for _, tc := range transformCases {
		once := e.ApplyFile("a.ts", tc.src, []string{tc.fix})
		if twice := e.ApplyFile("a.ts", once, []string{tc.fix}); twice != once {
			t.Errorf("%s: second application changed %q into %q", tc.fix, once, twice)
		}
	}
}

func TestTransformsLeaveUnmatchedCodeAlone(t *testing.T) {
	cases := []struct {
		fix string
		src string
	}{
		{"replace-console-log", fx + "Effect.map(eff, (x) => console.log(x));\n"},
		{"replace-console-log", fx + "Effect.gen(function* () {\n  console.table(rows);\n});\n"},
		{"remove-gen-adapter", fx + "Effect.gen(function* (_) {\n  const f = _;\n  return yield* f(x);\n});\n"},
		{"gen-to-sync", fx + "const a = Effect.gen(function* () {\n  return this.x;\n});\n"},
		{"gen-to-sync", fx + "const a = Stream.gen(function* () {\n  return 1;\n});\n"},
		{"use-duration-string", fx + "const a = Effect.sleep(1e3);\n"},
		{"yield-instead-of-run", fx + "Effect.map(eff, () => Effect.runSync(other));\n"},
		{"use-effect-fail", fx + "function f() {\n  throw new Error(\"x\");\n}\n"},
		{"replace-node-fs", "import { readFile } from \"node:fs/promises\";\nconst a = readFile(\"x\");\n"},
		{"replace-node-fs", "import * as fs from \"node:fs\";\nlet s: fs.Stats;\n"},
		{"replace-node-path", "import path from \"node:path\";\nexport const p = path.join(\"a\", \"b\");\n"},
	}
	e := refactor.Default()
	for _, tc := range cases {
		if got := e.ApplyFile("a.ts", tc.src, []string{tc.fix}); got != tc.src {
			t.Errorf("%s changed %q into %q", tc.fix, tc.src, got)
		}
	}
}

const scenarioSource = "import { readFile } from \"node:fs/promises\";\n"

func TestApplyIsPreviewOnlyAndIdempotent(t *testing.T) {
	e := refactor.Default()
	first := e.Apply(refactor.Request{
		FixIDs:  []string{"replace-node-fs"},
		Files:   []refactor.FileInput{{Filename: "a.ts", Source: scenarioSource}},
		Preview: true,
	})
	if first.Applied {
		t.Fatal("applied must be false")
	}
	if len(first.Changes) != 1 {
		t.Fatalf("changes = %d, want 1", len(first.Changes))
	}
	ch := first.Changes[0]
	if ch.Before != scenarioSource || strings.Contains(ch.After, "node:fs") || !strings.Contains(ch.After, "@effect/platform") {
		t.Fatalf("unexpected change %+v", ch)
	}

	second := e.Apply(refactor.Request{
		FixIDs: []string{"replace-node-fs"},
		Files:  []refactor.FileInput{{Filename: "a.ts", Source: ch.After}},
	})
	if second.Changes == nil || len(second.Changes) != 0 {
		t.Fatalf("second pass changes = %#v, want empty", second.Changes)
	}
}

func TestApplyUnknownFixIsNoop(t *testing.T) {
	res := refactor.Default().Apply(refactor.Request{
		FixIDs: []string{"no-such-fix"},
		Files:  []refactor.FileInput{{Filename: "a.ts", Source: scenarioSource}},
	})
	if len(res.Changes) != 0 {
		t.Fatalf("changes = %d", len(res.Changes))
	}
	if len(res.UnknownFix) != 1 || res.UnknownFix[0] != "no-such-fix" {
		t.Fatalf("unknown = %v", res.UnknownFix)
	}
}

func TestApplyContinuesPastUnparseableFiles(t *testing.T) {
	res := refactor.Default().Apply(refactor.Request{
		FixIDs: []string{"replace-node-fs"},
		Files: []refactor.FileInput{
			{Filename: "broken.ts", Source: "import { from \"node:fs\";\nconst = ;\n"},
			{Filename: "a.ts", Source: scenarioSource},
		},
	})
	if len(res.Changes) != 1 || res.Changes[0].Filename != "a.ts" {
		t.Fatalf("changes = %+v", res.Changes)
	}
	if len(res.Failed) != 1 || res.Failed[0].Filename != "broken.ts" || res.Failed[0].Reason == "" {
		t.Fatalf("failed = %+v", res.Failed)
	}
}

func TestPipelineThreadsFixes(t *testing.T) {
	src := fx + "import { readFile } from \"node:fs/promises\";\nconst a: any = Effect.sleep(5);\n"
	want := fx + "import { FileSystem } from \"@effect/platform\";\nconst a: unknown = Effect.sleep(\"5 millis\");\n"
	got := refactor.Default().ApplyFile("a.ts", src, []string{
		"replace-node-fs", "missing-fix", "replace-any-unknown", "use-duration-string",
	})
	if got != want {
		t.Fatalf("got %q\nwant %q", got, want)
	}
}

func TestEveryCodemodFixHasATransform(t *testing.T) {
	e := refactor.Default()
	for _, f := range catalog.Default().Fixes() {
		if f.Kind == catalog.KindCodemod && !e.Has(f.ID) {
			t.Errorf("codemod fix %q has no transform", f.ID)
		}
	}
	for _, id := range e.FixIDs() {
		if _, ok := catalog.Default().Fix(id); !ok {
			t.Errorf("transform %q has no catalog fix", id)
		}
	}
}

func TestNewEngineRejectsDuplicates(t *testing.T) {
	tr := refactor.Transform{
		FixID:   "x",
		Rules:   []string{"any-type"},
		Rewrite: func(*refactor.Unit, refactor.Match) []refactor.Edit { return nil },
	}
	if _, err := refactor.NewEngine(nil, tr, tr); err == nil {
		t.Fatal("expected duplicate error")
	}
	if _, err := refactor.NewEngine(nil, refactor.Transform{FixID: "y"}); err == nil {
		t.Fatal("expected incomplete error")
	}
}

func TestPublicSpecifier(t *testing.T) {
	cases := map[string]string{
		"effect/dist/esm/Effect.js":           "effect/Effect",
		"effect/dist/cjs/internal/core.js":    "effect",
		"effect/src/Stream.ts":                "effect/Stream",
		"@effect/platform/dist/dts/Path.d.ts": "@effect/platform/Path",
		"@effect/platform/internal/http":      "@effect/platform",
		"effect/dist":                         "effect",
	}
	for in, want := range cases {
		if got := refactor.PublicSpecifier(in); got != want {
			t.Errorf("PublicSpecifier(%q) = %q, want %q", in, got, want)
		}
	}
}

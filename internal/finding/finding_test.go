package finding

import (
	"reflect"
	"testing"

	"effectlint/internal/catalog"
	"effectlint/internal/classify"
	"effectlint/internal/config"
	"effectlint/internal/parser"
	"effectlint/internal/rules"
	"effectlint/internal/source"
)

func analyze(t *testing.T, name, src string, cfg *config.AnalysisConfig) []Finding {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual(name, []byte(src))
	file := fs.Get(id)
	res := parser.ParseFile(file, parser.Options{})
	if !res.OK() {
		t.Fatalf("parse %q failed", src)
	}
	cat := catalog.Default()
	events := rules.Default().Run(classify.New(res.Tree, name))
	active := NewActiveSet(config.ApplyToRules(cat, cfg), config.Resolve(cat, cfg))
	return Synthesize(events, active, cat, name, file)
}

func TestSynthesizeNodeFs(t *testing.T) {
	got := analyze(t, "a.ts", "import { readFile } from \"node:fs/promises\";\n", nil)
	if len(got) != 1 {
		t.Fatalf("findings = %+v", got)
	}
	f := got[0]
	if f.ID != "node-fs:a.ts:1:26" || f.RuleID != "node-fs" || f.Level != catalog.LevelWarn {
		t.Fatalf("finding = %+v", f)
	}
	want := source.Range{StartLine: 1, StartCol: 26, EndLine: 1, EndCol: 44}
	if f.Range != want {
		t.Fatalf("range = %+v, want %+v", f.Range, want)
	}
	if len(f.ApplicableFixes) != 1 || f.ApplicableFixes[0].Safety != catalog.SafetySafe {
		t.Fatalf("fixes = %+v", f.ApplicableFixes)
	}
	if !reflect.DeepEqual(f.RefactoringIDs, []string{"replace-node-fs"}) {
		t.Fatalf("refactorings = %v", f.RefactoringIDs)
	}
}

func TestSynthesizeDropsInactiveRules(t *testing.T) {
	cfg := &config.AnalysisConfig{Rules: map[string]config.RuleSetting{"node-fs": {Level: catalog.LevelOff}}}
	if got := analyze(t, "a.ts", `import { readFile } from "node:fs/promises";`, cfg); len(got) != 0 {
		t.Fatalf("findings = %+v", got)
	}
}

func TestSynthesizeOverlaysSeverityAndLevel(t *testing.T) {
	high := catalog.SeverityHigh
	cfg := &config.AnalysisConfig{Rules: map[string]config.RuleSetting{
		"node-fs": {Level: catalog.LevelError, Severity: &high, Tuple: true},
	}}
	got := analyze(t, "a.ts", `import { readFile } from "node:fs/promises";`, cfg)
	if len(got) != 1 || got[0].Level != catalog.LevelError || got[0].Severity != catalog.SeverityHigh {
		t.Fatalf("findings = %+v", got)
	}
}

func TestSynthesizeCollapsesRepeatedIDs(t *testing.T) {
	cat := catalog.Default()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("a.ts", []byte("let x = 1;\n")))
	sp := source.Span{File: file.ID, Start: 4, End: 5}
	events := []rules.Event{{RuleID: "any-type", Span: sp}, {RuleID: "any-type", Span: sp}, {RuleID: "unknown-rule", Span: sp}}
	active := NewActiveSet(cat.Rules(), config.Resolve(cat, nil))
	got := Synthesize(events, active, cat, "a.ts", file)
	if len(got) != 1 || got[0].ID != "any-type:a.ts:1:5" {
		t.Fatalf("findings = %+v", got)
	}
}

func TestAliasFanOutAndCollapse(t *testing.T) {
	src := `import { Effect } from "effect";
Effect.gen(function* () { Effect.runPromise(task); yield* x; });`
	got := analyze(t, "a.ts", src, nil)
	ids := map[string]bool{}
	for _, f := range got {
		ids[f.RuleID] = true
	}
	if !ids["run-promise-inside-effect"] || !ids["nested-runtime-execution"] {
		t.Fatalf("expected both alias ids, got %v", ids)
	}

	cat := catalog.Default()
	sp := source.Span{Start: 1, End: 2}
	other := source.Span{Start: 5, End: 6}
	events := []rules.Event{
		{RuleID: "run-promise-inside-effect", Span: sp},
		{RuleID: "nested-runtime-execution", Span: sp},
		{RuleID: "nested-runtime-execution", Span: other},
	}
	collapsed := CollapseAliases(events, cat)
	if len(collapsed) != 2 || collapsed[1].Span != other {
		t.Fatalf("collapsed = %+v", collapsed)
	}
	if len(events) != 3 {
		t.Fatal("input must not be modified")
	}
}

func TestSuggestionsAndSorting(t *testing.T) {
	findings := []Finding{
		{ID: "a", RuleID: "r1", Severity: catalog.SeverityLow},
		{ID: "b", RuleID: "r2", Severity: catalog.SeverityHigh},
		{ID: "c", RuleID: "r1", Severity: catalog.SeverityLow},
		{ID: "d", RuleID: "r3", Severity: catalog.SeverityMedium},
		{ID: "e", RuleID: "r4", Severity: catalog.SeverityHigh},
	}
	sugg := Suggestions(findings)
	if len(sugg) != 4 || sugg[0].RuleID != "r1" || sugg[0].Count != 2 {
		t.Fatalf("suggestions = %+v", sugg)
	}
	SortBySeverity(findings)
	var order []string
	for _, f := range findings {
		order = append(order, f.ID)
	}
	if !reflect.DeepEqual(order, []string{"b", "e", "d", "a", "c"}) {
		t.Fatalf("order = %v", order)
	}
}

func permutations(in []ApplicableFix) [][]ApplicableFix {
	if len(in) <= 1 {
		return [][]ApplicableFix{append([]ApplicableFix(nil), in...)}
	}
	var out [][]ApplicableFix
	for i := range in {
		rest := make([]ApplicableFix, 0, len(in)-1)
		rest = append(rest, in[:i]...)
		rest = append(rest, in[i+1:]...)
		for _, p := range permutations(rest) {
			out = append(out, append([]ApplicableFix{in[i]}, p...))
		}
	}
	return out
}

func TestPickDefaultFixIgnoresInputOrder(t *testing.T) {
	fixes := []ApplicableFix{
		{ID: "risky", Safety: catalog.SafetyRisky, Order: 0},
		{ID: "review", Safety: catalog.SafetyReview, Order: 1},
		{ID: "safe-late", Safety: catalog.SafetySafe, Order: 9},
		{ID: "safe-early", Safety: catalog.SafetySafe, Order: 3},
	}
	for _, p := range permutations(fixes) {
		got, ok := PickDefaultFix(Finding{ApplicableFixes: p})
		if !ok || got.ID != "safe-early" {
			t.Fatalf("PickDefaultFix(%v) = %v", p, got)
		}
	}
	if _, ok := PickDefaultFix(Finding{}); ok {
		t.Fatal("no fixes must yield false")
	}
	got, _ := PickDefaultFix(Finding{ApplicableFixes: fixes[:2]})
	if got.ID != "review" {
		t.Fatalf("got %s", got.ID)
	}
}

func TestFilterFixesBySafety(t *testing.T) {
	fixes := []ApplicableFix{
		{ID: "a", Safety: catalog.SafetyReview},
		{ID: "b", Safety: catalog.SafetySafe},
		{ID: "c", Safety: catalog.SafetyRisky},
		{ID: "d", Safety: catalog.SafetySafe},
	}
	got := FilterFixesBySafety(fixes, catalog.SafetySafe, catalog.SafetyRisky)
	var ids []string
	for _, fx := range got {
		ids = append(ids, fx.ID)
	}
	if !reflect.DeepEqual(ids, []string{"b", "c", "d"}) {
		t.Fatalf("ids = %v", ids)
	}
	findings := []Finding{
		{ID: "x", ApplicableFixes: fixes[:1]},
		{ID: "y", ApplicableFixes: fixes},
		{ID: "z"},
	}
	safe := FindingsWithSafeFixes(findings)
	if len(safe) != 1 || safe[0].ID != "y" {
		t.Fatalf("safe = %+v", safe)
	}
}

func TestFilterCategories(t *testing.T) {
	cat := catalog.Default()
	kept := FilterCategories(cat.Rules(), map[string]bool{"types": true})
	if len(kept) == 0 {
		t.Fatal("no types rules")
	}
	for _, r := range kept {
		if r.Category != "types" {
			t.Fatalf("kept %s in %s", r.ID, r.Category)
		}
	}
	if len(FilterCategories(cat.Rules(), nil)) != len(cat.Rules()) {
		t.Fatal("nil allow list keeps everything")
	}
}

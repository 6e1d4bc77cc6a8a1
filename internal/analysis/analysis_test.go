package analysis

import (
	"bytes"
	"context"
	"reflect"
	"strings"
	"testing"
	"time"

	"effectlint/internal/catalog"
	"effectlint/internal/config"
	"effectlint/internal/observ"
	"effectlint/internal/trace"
)

const (
	fx          = "import { Effect } from \"effect\";\n"
	nodeFsSrc   = "import { readFile } from \"node:fs/promises\";\n"
	mixedSource = fx + nodeFsSrc +
		"const a: any = 1;\n" +
		"const v = JSON.parse(s);\n" +
		"const g = Effect.gen(function* () { return 42; });\n"
)

func newAnalyzer() *Analyzer {
	a := New()
	a.Now = func() time.Time { return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC) }
	return a
}

func ruleIDs(r Report) []string {
	ids := make([]string, 0, len(r.Findings))
	for _, f := range r.Findings {
		ids = append(ids, f.RuleID)
	}
	return ids
}

func has(r Report, rule string) bool {
	for _, f := range r.Findings {
		if f.RuleID == rule {
			return true
		}
	}
	return false
}

func TestAnalyzeNodeFsImport(t *testing.T) {
	r := newAnalyzer().Analyze(context.Background(), Input{Source: nodeFsSrc, Filename: "a.ts"})
	if r.ParseError != nil {
		t.Fatalf("parse error: %v", r.ParseError)
	}
	if len(r.Findings) != 1 {
		t.Fatalf("findings = %v", ruleIDs(r))
	}
	f := r.Findings[0]
	if f.RuleID != "node-fs" || f.Level != catalog.LevelWarn {
		t.Fatalf("finding = %+v", f)
	}
	if len(f.ApplicableFixes) != 1 || f.ApplicableFixes[0].Safety != catalog.SafetySafe {
		t.Fatalf("fixes = %+v", f.ApplicableFixes)
	}
	if len(r.Suggestions) != 1 || r.Suggestions[0].Count != 1 {
		t.Fatalf("suggestions = %+v", r.Suggestions)
	}
}

func TestAnalyzeGenWithoutYield(t *testing.T) {
	r := newAnalyzer().Analyze(context.Background(), Input{
		Source:   fx + "Effect.gen(function* () { return 42; });\n",
		Filename: "a.ts",
	})
	if !has(r, "effect-gen-no-yield") {
		t.Fatalf("findings = %v", ruleIDs(r))
	}
}

func TestAnalyzeRuleTurnedOff(t *testing.T) {
	cfg, err := config.Parse([]byte(`{"rules":{"node-fs":"off"}}`))
	if err != nil {
		t.Fatal(err)
	}
	for _, r := range config.ApplyToRules(catalog.Default(), cfg) {
		if r.ID == "node-fs" {
			t.Fatal("node-fs still active")
		}
	}
	r := newAnalyzer().Analyze(context.Background(), Input{Source: nodeFsSrc, Filename: "a.ts", Config: cfg})
	if has(r, "node-fs") {
		t.Fatalf("findings = %v", ruleIDs(r))
	}
}

func TestAnalyzeIsDeterministic(t *testing.T) {
	a := newAnalyzer()
	in := Input{Source: mixedSource, Filename: "src/app.ts"}
	first := a.Analyze(context.Background(), in)
	second := a.Analyze(context.Background(), in)
	if len(first.Findings) == 0 {
		t.Fatal("expected findings")
	}
	if !reflect.DeepEqual(first.Findings, second.Findings) {
		t.Fatalf("findings differ:\n%v\n%v", ruleIDs(first), ruleIDs(second))
	}
	if !reflect.DeepEqual(first.Suggestions, second.Suggestions) {
		t.Fatal("suggestions differ")
	}
}

func TestAnalyzeFiltersCategories(t *testing.T) {
	a := newAnalyzer()
	for _, typ := range Types {
		r := a.Analyze(context.Background(), Input{Source: mixedSource, Filename: "a.ts", AnalysisType: typ})
		allowed := typ.Categories()
		if len(r.Findings) == 0 {
			t.Errorf("%s: no findings", typ)
		}
		for _, f := range r.Findings {
			if allowed != nil && !allowed[f.Category] {
				t.Errorf("%s: finding %s in category %s", typ, f.RuleID, f.Category)
			}
		}
	}
	r := a.Analyze(context.Background(), Input{Source: mixedSource, Filename: "a.ts", AnalysisType: TypeValidation})
	if !has(r, "any-type") || !has(r, "json-parse-unvalidated") || has(r, "node-fs") {
		t.Fatalf("validation findings = %v", ruleIDs(r))
	}
}

func TestAnalyzeRelaxesBoundaryFiles(t *testing.T) {
	src := fx + "try { a(); } catch { b(); }\nEffect.gen(function* () { try { a(); } catch (e) { b(); } });\n"
	r := newAnalyzer().Analyze(context.Background(), Input{Source: src, Filename: "app/api/users/route.ts"})
	if has(r, "try-catch-in-effect") || has(r, "untyped-try-catch") {
		t.Fatalf("boundary file got typed-channel findings: %v", ruleIDs(r))
	}
	if !has(r, "boundary-try-catch-ok") {
		t.Fatalf("findings = %v", ruleIDs(r))
	}
}

func TestAnalyzeSortsBySeverity(t *testing.T) {
	r := newAnalyzer().Analyze(context.Background(), Input{Source: mixedSource, Filename: "a.ts"})
	for i := 1; i < len(r.Findings); i++ {
		if r.Findings[i-1].Severity.Rank() < r.Findings[i].Severity.Rank() {
			t.Fatalf("findings out of order at %d: %v", i, ruleIDs(r))
		}
	}
}

func TestAnalyzeFilesContinuesPastParseFailures(t *testing.T) {
	reports := newAnalyzer().AnalyzeFiles(context.Background(), []FileInput{
		{Filename: "broken.ts", Source: "const = ;\n"},
		{Filename: "a.ts", Source: nodeFsSrc},
	}, TypeAll, nil)
	if len(reports) != 2 {
		t.Fatalf("reports = %d", len(reports))
	}
	broken := reports[0]
	if broken.ParseError == nil || broken.ParseError.Code == "" || broken.Findings == nil || len(broken.Findings) != 0 {
		t.Fatalf("broken report = %+v", broken)
	}
	if !has(reports[1], "node-fs") {
		t.Fatalf("findings = %v", ruleIDs(reports[1]))
	}
}

func TestAnalyzeDefaultsFilename(t *testing.T) {
	r := newAnalyzer().Analyze(context.Background(), Input{Source: nodeFsSrc})
	if r.Filename != DefaultFilename || !strings.Contains(r.Findings[0].ID, DefaultFilename) {
		t.Fatalf("report = %+v", r)
	}
}

func TestGenerateFixPreviewsNodeFs(t *testing.T) {
	a := newAnalyzer()
	res := a.GenerateFix(context.Background(), FixInput{RuleID: "node-fs", Filename: "a.ts", Source: nodeFsSrc}, nil)
	if res.Applied || len(res.Changes) != 1 {
		t.Fatalf("result = %+v", res)
	}
	after := res.Changes[0].After
	if strings.Contains(after, "node:fs") || !strings.Contains(after, "@effect/platform") {
		t.Fatalf("after = %q", after)
	}

	again := a.ApplyRefactorings(context.Background(), []string{"replace-node-fs"}, []FileInput{{Filename: "a.ts", Source: after}})
	if again == nil || len(again) != 0 {
		t.Fatalf("second pass = %#v", again)
	}
}

func TestGenerateFixEmptyResults(t *testing.T) {
	off, err := config.Parse([]byte(`{"rules":{"node-fs":"off"}}`))
	if err != nil {
		t.Fatal(err)
	}
	cases := []struct {
		rule string
		cfg  *config.AnalysisConfig
	}{
		{"no-such-rule", nil},
		{"catch-all-ignores-error", nil},
		{"node-fs", off},
	}
	a := newAnalyzer()
	for _, tc := range cases {
		res := a.GenerateFix(context.Background(), FixInput{RuleID: tc.rule, Filename: "a.ts", Source: nodeFsSrc}, tc.cfg)
		if res.Applied || res.Changes == nil || len(res.Changes) != 0 {
			t.Errorf("%s: result = %+v", tc.rule, res)
		}
	}
}

func TestCodemodFixesSkipsManualFixes(t *testing.T) {
	got := newAnalyzer().CodemodFixes("throw-in-effect-gen")
	if !reflect.DeepEqual(got, []string{"use-effect-fail"}) {
		t.Fatalf("fixes = %v", got)
	}
}

func TestExplain(t *testing.T) {
	a := newAnalyzer()
	ex, ok := a.Explain("node-fs")
	if !ok || ex.Guidance == "" || len(ex.Fixes) != 1 {
		t.Fatalf("explanation = %+v", ex)
	}
	md := ex.Markdown()
	if !strings.Contains(md, "# "+ex.Rule.Title) || !strings.Contains(md, "replace-node-fs") {
		t.Fatalf("markdown:\n%s", md)
	}
	if _, ok := a.Explain("no-such-rule"); ok {
		t.Fatal("unknown rule explained")
	}
}

func TestParseType(t *testing.T) {
	for in, want := range map[string]Type{"": TypeAll, "ERRORS": TypeErrors, " patterns ": TypePatterns} {
		if got, err := ParseType(in); err != nil || got != want {
			t.Errorf("ParseType(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseType("style"); err == nil {
		t.Fatal("expected error")
	}
}

func TestAnalyzeRecordsTimingsAndTrace(t *testing.T) {
	var buf bytes.Buffer
	a := newAnalyzer()
	a.Timer = observ.NewTimer()
	a.Tracer = trace.NewStreamTracer(&buf, trace.LevelDetail, trace.FormatText)

	a.Analyze(context.Background(), Input{Source: nodeFsSrc, Filename: "a.ts"})
	a.Analyze(context.Background(), Input{Source: nodeFsSrc, Filename: "b.ts"})

	phases := a.Timer.Report().Phases
	if len(phases) != 3 || phases[0].Name != "parse" || phases[0].Count != 2 {
		t.Fatalf("phases = %+v", phases)
	}
	out := buf.String()
	for _, name := range []string{"analyze:a.ts", "parse", "walk", "synthesize", "analyze:b.ts"} {
		if !strings.Contains(out, name) {
			t.Errorf("trace missing %q:\n%s", name, out)
		}
	}
}

package driver

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"sync"
	"testing"

	"effectlint/internal/analysis"
	"effectlint/internal/config"
)

const nodeFsSrc = "import { readFile } from \"node:fs/promises\";\n"

func writeFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		p := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestDiscover(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"src/b.ts":                 "",
		"src/a.mts":                "",
		"src/types.d.ts":           "",
		"src/view.tsx":             "",
		"src/gen/out.ts":           "",
		"node_modules/x/index.ts":  "",
		".cache/y.ts":              "",
		"README.md":                "",
		"scripts/tool.cts":         "",
		"src/nested/deep/ok.ts":    "",
		"src/nested/deep/skip.ts":  "",
		"src/nested/deep/more.cts": "",
	})
	cfg := &config.AnalysisConfig{Ignore: []string{"gen", "**/skip.ts"}}
	got, err := Discover([]string{root}, cfg)
	if err != nil {
		t.Fatal(err)
	}
	var rel []string
	for _, p := range got {
		r, _ := filepath.Rel(root, p)
		rel = append(rel, filepath.ToSlash(r))
	}
	want := []string{"scripts/tool.cts", "src/a.mts", "src/b.ts", "src/nested/deep/more.cts", "src/nested/deep/ok.ts"}
	if !reflect.DeepEqual(rel, want) {
		t.Fatalf("Discover = %v, want %v", rel, want)
	}

	direct := filepath.Join(root, "src", "gen", "out.ts")
	got, err = Discover([]string{direct, direct}, cfg)
	if err != nil || len(got) != 1 {
		t.Fatalf("direct file: %v, %v", got, err)
	}
	if _, err := Discover([]string{filepath.Join(root, "missing")}, nil); err == nil {
		t.Fatal("expected error for missing root")
	}
}

func TestDiskCacheRoundTrip(t *testing.T) {
	c, err := OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	report := analysis.New().Analyze(context.Background(), analysis.Input{Source: nodeFsSrc, Filename: "a.ts"})
	digest, err := ConfigDigest(nil)
	if err != nil {
		t.Fatal(err)
	}
	key := CacheKey([]byte(nodeFsSrc), "a.ts", digest, "v1", analysis.TypeAll)

	if _, ok, err := c.Get(key); ok || err != nil {
		t.Fatalf("empty cache hit: %v, %v", ok, err)
	}
	if err := c.Put(key, report); err != nil {
		t.Fatal(err)
	}
	got, ok, err := c.Get(key)
	if err != nil || !ok {
		t.Fatalf("Get = %v, %v", ok, err)
	}
	if got.Filename != report.Filename || !got.AnalyzedAt.Equal(report.AnalyzedAt) {
		t.Fatalf("report = %+v", got)
	}
	if !reflect.DeepEqual(got.Findings, report.Findings) || !reflect.DeepEqual(got.Suggestions, report.Suggestions) {
		t.Fatalf("findings differ:\n%+v\n%+v", got.Findings, report.Findings)
	}

	if err := c.DropAll(); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := c.Get(key); ok {
		t.Fatal("entry survived DropAll")
	}
}

func TestCacheKeyDependsOnInputs(t *testing.T) {
	d1, _ := ConfigDigest(nil)
	d2, err := ConfigDigest(&config.AnalysisConfig{Rules: map[string]config.RuleSetting{
		"node-fs": {Options: map[string]any{"b": 1, "a": 2}},
	}})
	if err != nil {
		t.Fatal(err)
	}
	d3, _ := ConfigDigest(&config.AnalysisConfig{Rules: map[string]config.RuleSetting{
		"node-fs": {Options: map[string]any{"a": 2, "b": 1}},
	}})
	if d1 == d2 || d2 != d3 {
		t.Fatalf("config digests: %s %s %s", d1, d2, d3)
	}
	base := CacheKey([]byte("x"), "a.ts", d1, "v1", analysis.TypeAll)
	for _, other := range []Digest{
		CacheKey([]byte("y"), "a.ts", d1, "v1", analysis.TypeAll),
		CacheKey([]byte("x"), "b.ts", d1, "v1", analysis.TypeAll),
		CacheKey([]byte("x"), "a.ts", d2, "v1", analysis.TypeAll),
		CacheKey([]byte("x"), "a.ts", d1, "v2", analysis.TypeAll),
		CacheKey([]byte("x"), "a.ts", d1, "v1", analysis.TypeErrors),
	} {
		if other == base {
			t.Fatal("key collision")
		}
	}
}

type recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *recorder) OnEvent(e Event) {
	r.mu.Lock()
	r.events = append(r.events, e)
	r.mu.Unlock()
}

func (r *recorder) cached() int {
	n := 0
	for _, e := range r.events {
		if e.Cached {
			n++
		}
	}
	return n
}

func TestAnalyzePathsUsesCacheAndKeepsOrder(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{"a.ts": nodeFsSrc, "b.ts": "const x = 1;\n", "c.ts": nodeFsSrc})
	paths, err := Discover([]string{root}, nil)
	if err != nil {
		t.Fatal(err)
	}
	paths = append(paths, filepath.Join(root, "gone.ts"))
	cache, err := OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	a := analysis.New()

	first := &recorder{}
	res, err := AnalyzePaths(context.Background(), a, paths, Options{Jobs: 2, Cache: cache, Progress: first})
	if err != nil {
		t.Fatal(err)
	}
	if len(res) != 4 {
		t.Fatalf("results = %d", len(res))
	}
	for i, r := range res {
		if r.Path != paths[i] || r.Report.Filename != paths[i] {
			t.Fatalf("result %d = %s", i, r.Path)
		}
	}
	if len(res[0].Report.Findings) != 1 || len(res[1].Report.Findings) != 0 {
		t.Fatalf("findings = %d, %d", len(res[0].Report.Findings), len(res[1].Report.Findings))
	}
	gone := res[3].Report.ParseError
	if gone == nil || !strings.HasPrefix(gone.Code, "IO") {
		t.Fatalf("missing file report = %+v", res[3].Report)
	}
	if first.cached() != 0 {
		t.Fatal("cold cache reported hits")
	}

	second := &recorder{}
	again, err := AnalyzePaths(context.Background(), a, paths, Options{Jobs: 2, Cache: cache, Progress: second})
	if err != nil {
		t.Fatal(err)
	}
	if second.cached() != 3 || !again[0].Cached || again[3].Cached {
		t.Fatalf("cached events = %d", second.cached())
	}
	if !reflect.DeepEqual(again[0].Report.Findings, res[0].Report.Findings) {
		t.Fatal("cached findings differ")
	}
}

func TestAnalyzePathsHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := AnalyzePaths(ctx, analysis.New(), []string{"a.ts"}, Options{})
	if err == nil {
		t.Fatal("expected context error")
	}
}

func TestFixAndWrite(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{"a.ts": nodeFsSrc, "b.ts": "const x = 1;\n"})
	paths := []string{filepath.Join(root, "a.ts"), filepath.Join(root, "b.ts"), filepath.Join(root, "gone.ts")}

	res := FixPaths(context.Background(), analysis.New(), paths, []string{"replace-node-fs"}, nil)
	if res.Applied || len(res.Changes) != 1 || len(res.Failed) != 1 {
		t.Fatalf("result = %+v", res)
	}
	before, _ := os.ReadFile(paths[0])
	if string(before) != nodeFsSrc {
		t.Fatal("preview wrote to disk")
	}

	if err := WriteChanges(res.Changes); err != nil {
		t.Fatal(err)
	}
	after, _ := os.ReadFile(paths[0])
	if string(after) != res.Changes[0].After {
		t.Fatalf("written = %q", after)
	}
	if err := WriteChanges(res.Changes); err == nil {
		t.Fatal("stale change must not be written")
	}
}

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"effectlint/internal/catalog"
)

func TestParseValid(t *testing.T) {
	cfg, err := Parse([]byte(`{
		"ignore": ["dist/**"],
		"include": ["src/**"],
		"rules": {
			"node-fs": "off",
			"any-type": ["error", {"severity": "high", "options": {"allowInTests": true}}],
			"ts-ignore": ["warn"]
		}
	}`))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Rules["node-fs"].Level != catalog.LevelOff || cfg.Rules["node-fs"].Tuple {
		t.Fatalf("node-fs = %+v", cfg.Rules["node-fs"])
	}
	anyType := cfg.Rules["any-type"]
	if anyType.Level != catalog.LevelError || anyType.Severity == nil || *anyType.Severity != catalog.SeverityHigh {
		t.Fatalf("any-type = %+v", anyType)
	}
	if anyType.Options["allowInTests"] != true {
		t.Fatalf("options = %v", anyType.Options)
	}
	if !cfg.Rules["ts-ignore"].Tuple || cfg.Rules["ts-ignore"].Severity != nil {
		t.Fatalf("ts-ignore = %+v", cfg.Rules["ts-ignore"])
	}
}

func TestParseRejects(t *testing.T) {
	cases := map[string]string{
		"bad json":         `{"rules": `,
		"array root":       `[]`,
		"string root":      `"x"`,
		"ignore type":      `{"ignore": "dist"}`,
		"ignore items":     `{"ignore": [1]}`,
		"rules type":       `{"rules": []}`,
		"bad level":        `{"rules": {"node-fs": "loud"}}`,
		"empty tuple":      `{"rules": {"node-fs": []}}`,
		"long tuple":       `{"rules": {"node-fs": ["warn", {}, {}]}}`,
		"tuple level type": `{"rules": {"node-fs": [1]}}`,
		"bad severity":     `{"rules": {"node-fs": ["warn", {"severity": "huge"}]}}`,
		"options type":     `{"rules": {"node-fs": ["warn", {"options": 3}]}}`,
		"tuple extra key":  `{"rules": {"node-fs": ["warn", {"colour": "red"}]}}`,
		"unknown field":    `{"rulez": {}}`,
		"trailing":         `{} {}`,
		"number value":     `{"rules": {"node-fs": 2}}`,
	}
	for name, src := range cases {
		cfg, err := Parse([]byte(src))
		if err == nil || cfg != nil {
			t.Errorf("%s: expected failure", name)
			continue
		}
		var pe *ParseError
		if !errors.Is(err, ErrConfigParse) || !errors.As(err, &pe) {
			t.Errorf("%s: err = %v", name, err)
		}
	}
}

func TestLevelResolutionForEveryRule(t *testing.T) {
	cat := catalog.Default()
	for _, r := range cat.Rules() {
		for _, lvl := range catalog.Levels {
			got := Resolve(cat, &AnalysisConfig{Rules: map[string]RuleSetting{r.ID: {Level: lvl}}})
			if rc := got.Rules[r.ID]; rc.Level != lvl || rc.Severity != r.Severity {
				t.Fatalf("%s/%s: got %+v", r.ID, lvl, rc)
			}
			for _, sev := range []catalog.Severity{catalog.SeverityLow, catalog.SeverityMedium, catalog.SeverityHigh} {
				s := sev
				got := Resolve(cat, &AnalysisConfig{Rules: map[string]RuleSetting{r.ID: {Level: lvl, Severity: &s, Tuple: true}}})
				if rc := got.Rules[r.ID]; rc.Level != lvl || rc.Severity != sev {
					t.Fatalf("%s/%s/%s: got %+v", r.ID, lvl, sev, rc)
				}
			}
		}
	}
}

func TestResolveDefaults(t *testing.T) {
	cat := catalog.Default()
	got := Resolve(cat, nil)
	for _, r := range cat.Rules() {
		if rc := got.Rules[r.ID]; rc.Level != r.DefaultLevel || rc.Severity != r.Severity {
			t.Fatalf("%s: got %+v", r.ID, rc)
		}
	}
	if got.Level("no-such-rule") != catalog.LevelOff {
		t.Fatal("unknown rules resolve to off")
	}
}

func TestApplyToRulesDropsOff(t *testing.T) {
	cat := catalog.Default()
	high := catalog.SeverityHigh
	cfg := &AnalysisConfig{Rules: map[string]RuleSetting{
		"node-fs":   {Level: catalog.LevelOff},
		"node-path": {Level: catalog.LevelError, Severity: &high, Tuple: true},
	}}
	rules := ApplyToRules(cat, cfg)
	for _, r := range rules {
		if r.ID == "node-fs" {
			t.Fatal("node-fs must be filtered out")
		}
		if r.ID == "node-path" && r.Severity != catalog.SeverityHigh {
			t.Fatalf("node-path severity = %s", r.Severity)
		}
	}
	if len(rules) != len(cat.Rules())-1 {
		t.Fatalf("active = %d, want %d", len(rules), len(cat.Rules())-1)
	}
}

func TestUnknownRulesSuggest(t *testing.T) {
	cfg := &AnalysisConfig{Rules: map[string]RuleSetting{
		"node-fs":  {Level: catalog.LevelWarn},
		"nodefs":   {Level: catalog.LevelWarn},
		"zzzzzzzz": {Level: catalog.LevelWarn},
	}}
	got := UnknownRules(catalog.Default(), cfg)
	if len(got) != 2 || got[0].ID != "nodefs" || got[1].ID != "zzzzzzzz" {
		t.Fatalf("got %+v", got)
	}
	if got[0].Suggestion == "" {
		t.Fatal("expected a suggestion for nodefs")
	}
	if got[1].Suggestion != "" {
		t.Fatalf("unexpected suggestion %q", got[1].Suggestion)
	}
}

func TestLoadFormats(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"a.json": `{"rules": {"node-fs": ["error", {"severity": "high"}]}}`,
		"b.toml": "ignore = [\"dist\"]\n[rules]\nnode-fs = [\"error\", { severity = \"high\" }]\n",
		"c.yaml": "ignore: [dist]\nrules:\n  node-fs: [error, {severity: high}]\n",
	}
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}
		cfg, err := Load(path)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		s := cfg.Rules["node-fs"]
		if s.Level != catalog.LevelError || s.Severity == nil || *s.Severity != catalog.SeverityHigh {
			t.Fatalf("%s: node-fs = %+v", name, s)
		}
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("rules: [1, 2]\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	_, err := Load(bad)
	var pe *ParseError
	if !errors.As(err, &pe) || pe.File != bad {
		t.Fatalf("err = %v", err)
	}
}

func TestFindWalksUp(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(root, "effectlint.toml")
	if err := os.WriteFile(want, nil, 0o600); err != nil {
		t.Fatal(err)
	}
	got, ok, err := Find(nested)
	if err != nil || !ok || got != want {
		t.Fatalf("Find = %q, %v, %v", got, ok, err)
	}
}

func TestIgnored(t *testing.T) {
	cfg := &AnalysisConfig{Ignore: []string{"dist", "**/*.test.ts"}, Include: []string{"src/**"}}
	cases := map[string]bool{
		"src/app.ts":          false,
		"src/dist/out.ts":     true,
		"dist/x.ts":           true,
		"src/a/app.test.ts":   true,
		"lib/other.ts":        true,
		"src/deep/nest/ok.ts": false,
	}
	for path, want := range cases {
		if got := cfg.Ignored(path); got != want {
			t.Errorf("Ignored(%q) = %v, want %v", path, got, want)
		}
	}
}

func TestIgnoredDirSkipsIncludePatterns(t *testing.T) {
	cfg := &AnalysisConfig{Ignore: []string{"dist"}, Include: []string{"src/**"}}
	if !cfg.IgnoredDir("pkg/dist") {
		t.Fatal("dist must be pruned")
	}
	if cfg.IgnoredDir("lib") {
		t.Fatal("include patterns must not prune directories")
	}
}

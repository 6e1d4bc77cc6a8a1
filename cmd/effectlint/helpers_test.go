package main

import (
	"bytes"
	"testing"

	"effectlint/internal/catalog"
	"effectlint/internal/diagfmt"
)

func TestParsePathMode(t *testing.T) {
	cases := map[string]diagfmt.PathMode{
		"":         diagfmt.PathModeAuto,
		"abs":      diagfmt.PathModeAbsolute,
		"Relative": diagfmt.PathModeRelative,
		"basename": diagfmt.PathModeBasename,
	}
	for in, want := range cases {
		got, err := parsePathMode(in)
		if err != nil || got != want {
			t.Errorf("parsePathMode(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := parsePathMode("short"); err == nil {
		t.Error("expected error for unknown mode")
	}
}

func TestReadSwitch(t *testing.T) {
	if m, err := readSwitch("ui", " ON "); err != nil || m != modeOn {
		t.Fatalf("readSwitch = %v, %v", m, err)
	}
	if _, err := readSwitch("color", "sometimes"); err == nil {
		t.Fatal("expected error")
	}
	if shouldUseTUI(modeOff) || !shouldUseTUI(modeOn) {
		t.Fatal("explicit modes must win")
	}
}

func TestSuggestRule(t *testing.T) {
	ids := []string{"node-fs-import", "node-path-import", "any-type"}
	if got := suggestRule("nodefs", ids); got != `"node-fs-import"` {
		t.Fatalf("suggestRule = %s", got)
	}
	if got := suggestRule("zzz", ids); got != "" {
		t.Fatalf("suggestRule = %s", got)
	}
}

func TestConfigStart(t *testing.T) {
	dir := t.TempDir()
	if got := configStart([]string{dir}); got != dir {
		t.Fatalf("configStart(dir) = %s", got)
	}
	if got := configStart([]string{"-"}); got != "." {
		t.Fatalf("configStart(-) = %s", got)
	}
	if got := configStart([]string{"src/a.ts"}); got != "src" {
		t.Fatalf("configStart(file) = %s", got)
	}
}

func TestRenderRulesGroupsByCategory(t *testing.T) {
	rows := []ruleRow{
		{Rule: catalog.Rule{ID: "node-fs-import", Title: "Node fs import", Category: "platform"}, Level: catalog.LevelWarn, Codemod: []string{"replace-node-fs"}},
		{Rule: catalog.Rule{ID: "any-type", Title: "Any type", Category: "types"}, Level: catalog.LevelOff},
	}
	var buf bytes.Buffer
	renderRules(&buf, rows, false)
	want := "platform\n  warn  * node-fs-import Node fs import\n\ntypes\n  off     any-type       Any type\n\n* has an automatic fix\n"
	if buf.String() != want {
		t.Fatalf("got:\n%q\nwant:\n%q", buf.String(), want)
	}
}

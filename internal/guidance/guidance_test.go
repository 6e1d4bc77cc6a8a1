package guidance

import (
	"strings"
	"testing"

	"effectlint/internal/catalog"
)

func TestEveryRuleHasGuidance(t *testing.T) {
	g := Default()
	for _, id := range catalog.Default().RuleIDs() {
		text, ok := g.Lookup(id)
		if !ok || text == "" {
			t.Errorf("no guidance for %q", id)
		}
	}
	for _, id := range g.IDs() {
		if _, ok := catalog.Default().Rule(id); !ok {
			t.Errorf("guidance for unknown rule %q", id)
		}
	}
}

func TestNodeFsGuidanceExplainsCodemodLimit(t *testing.T) {
	text, ok := Default().Lookup("node-fs")
	if !ok || !strings.Contains(text, "migrate the call sites first") {
		t.Fatalf("node-fs guidance = %q", text)
	}
}

func TestParseIgnoresHeadingsInCode(t *testing.T) {
	s := Parse("intro\n## a\nfirst\n```md\n## b\n```\n## a\nsecond\n## c\n")
	a, ok := s.Lookup("a")
	if !ok || !strings.Contains(a, "## b") || strings.Contains(a, "second") {
		t.Fatalf("a = %q", a)
	}
	if _, ok := s.Lookup("b"); ok {
		t.Fatal("heading inside code block must not start a section")
	}
	if c, ok := s.Lookup("c"); !ok || c != "" {
		t.Fatalf("c = %q, %v", c, ok)
	}
}

func TestLookupOnNilSet(t *testing.T) {
	var s *Set
	if text, ok := s.Lookup("node-fs"); ok || text != "" {
		t.Fatal("nil set must miss")
	}
}

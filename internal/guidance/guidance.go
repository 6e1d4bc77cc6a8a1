// Package guidance holds the long-form explanation of each rule, embedded as
// one markdown document with a level-two heading per rule id.
package guidance

import (
	_ "embed"
	"sort"
	"strings"
	"sync"
)

//go:embed rules.md
var defaultData string

var (
	defaultOnce sync.Once
	defaultSet  *Set
)

// Set maps rule ids to markdown sections.
type Set struct {
	sections map[string]string
}

// Default returns the embedded guidance, parsed once.
func Default() *Set {
	defaultOnce.Do(func() {
		defaultSet = Parse(defaultData)
	})
	return defaultSet
}

// Parse splits doc at "## " headings. Text before the first heading is
// dropped; a repeated heading keeps its first section.
func Parse(doc string) *Set {
	s := &Set{sections: make(map[string]string)}
	var (
		id   string
		body strings.Builder
		code bool
	)
	flush := func() {
		if id != "" {
			if _, dup := s.sections[id]; !dup {
				s.sections[id] = strings.TrimSpace(body.String())
			}
		}
		body.Reset()
	}
	for _, line := range strings.SplitAfter(doc, "\n") {
		trimmed := strings.TrimRight(line, "\r\n")
		if strings.HasPrefix(trimmed, "```") {
			code = !code
		}
		if !code && strings.HasPrefix(trimmed, "## ") {
			flush()
			id = strings.TrimSpace(trimmed[3:])
			continue
		}
		if id != "" {
			body.WriteString(line)
		}
	}
	flush()
	return s
}

// Lookup returns the guidance for ruleID. A nil Set or a missing id yields
// "" and false.
func (s *Set) Lookup(ruleID string) (string, bool) {
	if s == nil {
		return "", false
	}
	text, ok := s.sections[ruleID]
	return text, ok
}

// IDs returns the rule ids with guidance, sorted.
func (s *Set) IDs() []string {
	if s == nil {
		return nil
	}
	ids := make([]string, 0, len(s.sections))
	for id := range s.sections {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

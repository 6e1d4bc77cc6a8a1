package finding

import (
	"effectlint/internal/catalog"
	"effectlint/internal/config"
)

// ActiveRule is a rule that survived configuration and category filtering,
// with its resolved level and severity.
type ActiveRule struct {
	catalog.Rule
	Level catalog.Level
}

// ActiveSet is the rule set findings may be produced for.
type ActiveSet struct {
	rules map[string]ActiveRule
}

// NewActiveSet combines filtered rules with their resolved levels. Rules
// resolved to off are left out.
func NewActiveSet(rules []catalog.Rule, resolved config.Resolved) ActiveSet {
	s := ActiveSet{rules: make(map[string]ActiveRule, len(rules))}
	for _, r := range rules {
		lvl := resolved.Level(r.ID)
		if lvl == catalog.LevelOff {
			continue
		}
		s.rules[r.ID] = ActiveRule{Rule: r, Level: lvl}
	}
	return s
}

// Get returns the active rule for id.
func (s ActiveSet) Get(id string) (ActiveRule, bool) {
	r, ok := s.rules[id]
	return r, ok
}

func (s ActiveSet) Len() int { return len(s.rules) }

// FilterCategories keeps the rules whose category is allowed. A nil allow
// list keeps everything.
func FilterCategories(rules []catalog.Rule, allowed map[string]bool) []catalog.Rule {
	if allowed == nil {
		return rules
	}
	out := make([]catalog.Rule, 0, len(rules))
	for _, r := range rules {
		if allowed[r.Category] {
			out = append(out, r)
		}
	}
	return out
}

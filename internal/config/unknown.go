package config

import (
	"sort"

	"github.com/sahilm/fuzzy"

	"effectlint/internal/catalog"
)

// UnknownRule is a configured rule id missing from the catalog.
type UnknownRule struct {
	ID         string
	Suggestion string // closest catalog id, or ""
}

// UnknownRules lists configured ids the catalog does not define, sorted by id.
// They are not errors: resolution ignores them.
func UnknownRules(cat *catalog.Catalog, cfg *AnalysisConfig) []UnknownRule {
	if cfg == nil {
		return nil
	}
	ids := cat.RuleIDs()
	var out []UnknownRule
	for id := range cfg.Rules {
		if _, ok := cat.Rule(id); ok {
			continue
		}
		u := UnknownRule{ID: id}
		if matches := fuzzy.Find(id, ids); len(matches) > 0 {
			u.Suggestion = matches[0].Str
		}
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

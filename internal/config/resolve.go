package config

import "effectlint/internal/catalog"

// Resolve merges catalog defaults with cfg. Every catalog rule gets an entry;
// overrides for ids the catalog does not know are ignored.
func Resolve(cat *catalog.Catalog, cfg *AnalysisConfig) Resolved {
	rules := cat.Rules()
	out := Resolved{Rules: make(map[string]RuleConfig, len(rules))}
	for _, r := range rules {
		rc := RuleConfig{Level: r.DefaultLevel, Severity: r.Severity}
		if cfg != nil {
			if s, ok := cfg.Rules[r.ID]; ok {
				rc.Level = s.Level
				if s.Severity != nil {
					rc.Severity = *s.Severity
				}
				rc.Options = s.Options
			}
		}
		out.Rules[r.ID] = rc
	}
	return out
}

// ApplyToRules returns the catalog rules whose resolved level is not off,
// in catalog order, with the resolved severity overlaid.
func ApplyToRules(cat *catalog.Catalog, cfg *AnalysisConfig) []catalog.Rule {
	resolved := Resolve(cat, cfg)
	var out []catalog.Rule
	for _, r := range cat.Rules() {
		rc := resolved.Rules[r.ID]
		if rc.Level == catalog.LevelOff {
			continue
		}
		r.Severity = rc.Severity
		out = append(out, r)
	}
	return out
}

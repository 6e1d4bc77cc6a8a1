package config

import "effectlint/internal/catalog"

// AnalysisConfig is validated user configuration.
type AnalysisConfig struct {
	// Ignore and Include are glob patterns applied by the file walker.
	Ignore  []string
	Include []string
	Rules   map[string]RuleSetting
}

// RuleSetting is one override: a bare level or a [level, {severity, options}] tuple.
type RuleSetting struct {
	Level    catalog.Level
	Severity *catalog.Severity
	Options  map[string]any
	Tuple    bool
}

// RuleConfig is the resolved setting of one rule.
type RuleConfig struct {
	Level    catalog.Level
	Severity catalog.Severity
	Options  map[string]any
}

// Resolved maps every catalog rule id to its effective setting.
type Resolved struct {
	Rules map[string]RuleConfig
}

// Level returns the resolved level of id, or off for unknown rules.
func (r Resolved) Level(id string) catalog.Level {
	if rc, ok := r.Rules[id]; ok {
		return rc.Level
	}
	return catalog.LevelOff
}

package catalog

// Severity ranks how harmful a rule match is.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Rank orders severities: low=0, medium=1, high=2. Unknown values rank -1.
func (s Severity) Rank() int {
	switch s {
	case SeverityLow:
		return 0
	case SeverityMedium:
		return 1
	case SeverityHigh:
		return 2
	}
	return -1
}

func (s Severity) Valid() bool { return s.Rank() >= 0 }

// Level is the enforcement level of a rule.
type Level string

const (
	LevelOff   Level = "off"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

func (l Level) Valid() bool {
	return l == LevelOff || l == LevelWarn || l == LevelError
}

// Levels lists every level in ascending strictness.
var Levels = []Level{LevelOff, LevelWarn, LevelError}

// Safety classifies how much review a fix needs. safe < review < risky.
type Safety string

const (
	SafetySafe   Safety = "safe"
	SafetyReview Safety = "review"
	SafetyRisky  Safety = "risky"
)

// Rank returns 0 for safe, 1 for review and 2 for risky. Unknown values sort last.
func (s Safety) Rank() int {
	switch s {
	case SafetySafe:
		return 0
	case SafetyReview:
		return 1
	case SafetyRisky:
		return 2
	}
	return 3
}

// FixKind tells how a fix is carried out.
type FixKind string

const (
	KindCodemod  FixKind = "codemod"
	KindAssisted FixKind = "assisted"
	KindManual   FixKind = "manual"
)

// Rule is one detectable pattern.
type Rule struct {
	ID           string   `toml:"id" json:"id"`
	Title        string   `toml:"title" json:"title"`
	Message      string   `toml:"message" json:"message"`
	Severity     Severity `toml:"severity" json:"severity"`
	DefaultLevel Level    `toml:"default_level" json:"defaultLevel"`
	Category     string   `toml:"category" json:"category"`
	FixIDs       []string `toml:"fixes" json:"fixIds"`
	// AliasOf names the canonical rule when this rule reports the same
	// shape under another name.
	AliasOf string `toml:"alias_of" json:"aliasOf,omitempty"`
}

// Fix is one remediation tied to one or more rules.
type Fix struct {
	ID                string  `toml:"id" json:"id"`
	Title             string  `toml:"title" json:"title"`
	Description       string  `toml:"description" json:"description"`
	Safety            Safety  `toml:"safety" json:"safety"`
	Kind              FixKind `toml:"kind" json:"kind"`
	RequiresTypecheck bool    `toml:"requires_typecheck" json:"requiresTypecheck,omitempty"`
}

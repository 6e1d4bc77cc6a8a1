package finding

import (
	"fmt"

	"effectlint/internal/catalog"
	"effectlint/internal/source"
)

// Finding is one rule match at a source location. ID is stable across runs
// for the same input: rule id, file name and 1-based start position.
type Finding struct {
	ID              string           `json:"id"`
	RuleID          string           `json:"ruleId"`
	Title           string           `json:"title"`
	Message         string           `json:"message"`
	Severity        catalog.Severity `json:"severity"`
	Level           catalog.Level    `json:"level"`
	Category        string           `json:"category"`
	Filename        string           `json:"filename"`
	Range           source.Range     `json:"range"`
	RefactoringIDs  []string         `json:"refactoringIds"`
	ApplicableFixes []ApplicableFix  `json:"applicableFixes"`
}

// ApplicableFix projects a catalog fix onto a finding. Order is the fix's
// position in the catalog and breaks safety ties.
type ApplicableFix struct {
	ID     string          `json:"id"`
	Title  string          `json:"title"`
	Safety catalog.Safety  `json:"safety"`
	Kind   catalog.FixKind `json:"kind"`
	Order  int             `json:"-"`
}

// Suggestion summarizes the findings of one rule.
type Suggestion struct {
	RuleID   string           `json:"ruleId"`
	Title    string           `json:"title"`
	Message  string           `json:"message"`
	Severity catalog.Severity `json:"severity"`
	Count    int              `json:"count"`
}

// ID builds the deterministic finding id.
func ID(ruleID, filename string, start source.LineCol) string {
	return fmt.Sprintf("%s:%s:%d:%d", ruleID, filename, start.Line, start.Col)
}

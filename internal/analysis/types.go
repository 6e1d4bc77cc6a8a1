package analysis

import (
	"fmt"
	"strings"
	"time"

	"effectlint/internal/catalog"
	"effectlint/internal/config"
	"effectlint/internal/finding"
	"effectlint/internal/refactor"
	"effectlint/internal/source"
)

// Type selects the rule categories an analysis reports.
type Type string

const (
	TypeAll        Type = "all"
	TypeValidation Type = "validation"
	TypePatterns   Type = "patterns"
	TypeErrors     Type = "errors"
)

var typeCategories = map[Type][]string{
	TypeValidation: {"validation", "types"},
	TypePatterns:   {"patterns", "style", "imports", "resources", "services"},
	TypeErrors:     {"errors", "async", "concurrency", "platform"},
}

// Types lists the accepted analysis types.
var Types = []Type{TypeAll, TypeValidation, TypePatterns, TypeErrors}

// ParseType accepts a type name; the empty string means all.
func ParseType(s string) (Type, error) {
	switch t := Type(strings.ToLower(strings.TrimSpace(s))); t {
	case "":
		return TypeAll, nil
	case TypeAll, TypeValidation, TypePatterns, TypeErrors:
		return t, nil
	}
	return "", fmt.Errorf("unknown analysis type %q (want all, validation, patterns or errors)", s)
}

// Categories returns the category allow list of t, or nil for every category.
func (t Type) Categories() map[string]bool {
	cats, ok := typeCategories[t]
	if !ok {
		return nil
	}
	out := make(map[string]bool, len(cats))
	for _, c := range cats {
		out[c] = true
	}
	return out
}

// Input is one analysis request.
type Input struct {
	Source string
	// Filename is used for finding ids and boundary detection. Empty means
	// DefaultFilename.
	Filename     string
	AnalysisType Type
	Config       *config.AnalysisConfig
}

// DefaultFilename names sources supplied without a file name.
const DefaultFilename = "input.ts"

// FileInput is one file of a batch.
type FileInput = refactor.FileInput

// Report is the result of analyzing one file.
type Report struct {
	Filename    string               `json:"filename"`
	Suggestions []finding.Suggestion `json:"suggestions"`
	Findings    []finding.Finding    `json:"findings"`
	AnalyzedAt  time.Time            `json:"analyzedAt"`
	ParseError  *ParseFailure        `json:"parseError,omitempty"`
}

// ParseFailure describes why a file could not be analyzed.
type ParseFailure struct {
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Range   source.Range `json:"range"`
}

func (p *ParseFailure) Error() string {
	return fmt.Sprintf("%d:%d: %s: %s", p.Range.StartLine, p.Range.StartCol, p.Code, p.Message)
}

// FixInput asks for the codemod preview of one rule.
type FixInput struct {
	RuleID   string
	Filename string
	Source   string
}

// Explanation joins a catalog rule with its fixes and guidance text.
type Explanation struct {
	Rule     catalog.Rule  `json:"rule"`
	Fixes    []catalog.Fix `json:"fixes"`
	Guidance string        `json:"guidance,omitempty"`
}

// Markdown renders the explanation as a document.
func (e Explanation) Markdown() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", e.Rule.Title)
	fmt.Fprintf(&sb, "`%s` · %s · severity %s · default %s\n\n", e.Rule.ID, e.Rule.Category, e.Rule.Severity, e.Rule.DefaultLevel)
	if e.Rule.AliasOf != "" {
		fmt.Fprintf(&sb, "Alias of `%s`.\n\n", e.Rule.AliasOf)
	}
	sb.WriteString(e.Rule.Message + "\n\n")
	if e.Guidance != "" {
		sb.WriteString(e.Guidance + "\n\n")
	}
	if len(e.Fixes) > 0 {
		sb.WriteString("## Fixes\n\n")
		for _, f := range e.Fixes {
			fmt.Fprintf(&sb, "- **%s** (`%s`, %s, %s): %s\n", f.Title, f.ID, f.Kind, f.Safety, f.Description)
		}
	}
	return sb.String()
}

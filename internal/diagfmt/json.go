package diagfmt

import (
	"encoding/json"
	"io"

	"effectlint/internal/analysis"
	"effectlint/internal/finding"
)

// ReportsOutput is the root of JSON output.
type ReportsOutput struct {
	Reports   []analysis.Report `json:"reports"`
	Totals    Totals            `json:"totals"`
	Truncated bool              `json:"truncated,omitempty"`
}

// BuildReportsOutput applies path formatting and truncation without
// serializing. The input reports are not modified.
func BuildReportsOutput(reports []analysis.Report, opts JSONOpts) ReportsOutput {
	out := ReportsOutput{Reports: make([]analysis.Report, 0, len(reports)), Totals: Summarize(reports)}
	left := opts.Max
	for _, r := range reports {
		path := formatPath(r.Filename, opts.PathMode, opts.BaseDir)
		r.Filename = path
		findings := make([]finding.Finding, 0, len(r.Findings))
		for _, f := range r.Findings {
			if opts.Max > 0 && left == 0 {
				out.Truncated = true
				break
			}
			f.Filename = path
			findings = append(findings, f)
			left--
		}
		r.Findings = findings
		out.Reports = append(out.Reports, r)
	}
	return out
}

// JSON writes reports as one JSON document.
func JSON(w io.Writer, reports []analysis.Report, opts JSONOpts) error {
	encoder := json.NewEncoder(w)
	if opts.Indent {
		encoder.SetIndent("", "  ")
	}
	return encoder.Encode(BuildReportsOutput(reports, opts))
}

package finding

import (
	"slices"
	"sort"

	"effectlint/internal/catalog"
	"effectlint/internal/rules"
	"effectlint/internal/source"
)

// Synthesize builds findings from events in event order. Events whose rule
// is not active are dropped, as are repeats of an id already produced.
func Synthesize(events []rules.Event, active ActiveSet, cat *catalog.Catalog, filename string, file *source.File) []Finding {
	out := make([]Finding, 0, len(events))
	seen := make(map[string]bool, len(events))
	for _, ev := range events {
		rule, ok := active.Get(ev.RuleID)
		if !ok {
			continue
		}
		start, end := file.Position(ev.Span.Start), file.Position(ev.Span.End)
		id := ID(rule.ID, filename, start)
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, Finding{
			ID:              id,
			RuleID:          rule.ID,
			Title:           rule.Title,
			Message:         rule.Message,
			Severity:        rule.Severity,
			Level:           rule.Level,
			Category:        rule.Category,
			Filename:        filename,
			Range:           source.Range{StartLine: start.Line, StartCol: start.Col, EndLine: end.Line, EndCol: end.Col},
			RefactoringIDs:  slices.Clone(rule.FixIDs),
			ApplicableFixes: applicableFixes(cat, rule.FixIDs),
		})
	}
	return out
}

func applicableFixes(cat *catalog.Catalog, ids []string) []ApplicableFix {
	out := make([]ApplicableFix, 0, len(ids))
	for _, id := range ids {
		fx, ok := cat.Fix(id)
		if !ok {
			continue
		}
		out = append(out, ApplicableFix{ID: fx.ID, Title: fx.Title, Safety: fx.Safety, Kind: fx.Kind, Order: cat.FixOrder(id)})
	}
	return out
}

// CollapseAliases drops events of alias rules reported on the same span as
// an event of their canonical rule.
func CollapseAliases(events []rules.Event, cat *catalog.Catalog) []rules.Event {
	type key struct {
		rule string
		span source.Span
	}
	present := make(map[key]bool, len(events))
	for _, ev := range events {
		present[key{ev.RuleID, ev.Span}] = true
	}
	out := events[:0:0]
	for _, ev := range events {
		if r, ok := cat.Rule(ev.RuleID); ok && r.AliasOf != "" && present[key{r.AliasOf, ev.Span}] {
			continue
		}
		out = append(out, ev)
	}
	return out
}

// Suggestions rolls findings up per rule, in first-seen order.
func Suggestions(findings []Finding) []Suggestion {
	idx := make(map[string]int)
	var out []Suggestion
	for _, f := range findings {
		if i, ok := idx[f.RuleID]; ok {
			out[i].Count++
			continue
		}
		idx[f.RuleID] = len(out)
		out = append(out, Suggestion{RuleID: f.RuleID, Title: f.Title, Message: f.Message, Severity: f.Severity, Count: 1})
	}
	return out
}

// SortBySeverity orders findings by severity, highest first, keeping the
// relative order of equal severities.
func SortBySeverity(findings []Finding) {
	sort.SliceStable(findings, func(i, j int) bool {
		return findings[i].Severity.Rank() > findings[j].Severity.Rank()
	})
}

// SortSuggestions orders suggestions like SortBySeverity.
func SortSuggestions(s []Suggestion) {
	sort.SliceStable(s, func(i, j int) bool {
		return s[i].Severity.Rank() > s[j].Severity.Rank()
	})
}

package analysis

import (
	"context"
	"strings"

	"effectlint/internal/catalog"
	"effectlint/internal/config"
	"effectlint/internal/refactor"
	"effectlint/internal/trace"
)

// CodemodFixes returns the fix ids of ruleID that have an automatic
// transform, in the rule's order.
func (a *Analyzer) CodemodFixes(ruleID string) []string {
	rule, ok := a.Catalog.Rule(ruleID)
	if !ok {
		return nil
	}
	var ids []string
	for _, id := range rule.FixIDs {
		fx, ok := a.Catalog.Fix(id)
		if ok && fx.Kind == catalog.KindCodemod && a.Engine.Has(id) {
			ids = append(ids, id)
		}
	}
	return ids
}

// GenerateFix previews the codemods of one rule over one file. Changes is
// empty when the rule is unknown, has no automatic fix or is turned off by
// cfg.
func (a *Analyzer) GenerateFix(ctx context.Context, in FixInput, cfg *config.AnalysisConfig) refactor.Result {
	ctx = a.context(ctx)
	span, ctx := trace.Start(ctx, trace.ScopeFile, "generate-fix:"+in.RuleID)
	defer span.End(in.Filename)

	filename := in.Filename
	if filename == "" {
		filename = DefaultFilename
	}
	fixIDs := a.CodemodFixes(in.RuleID)
	if len(fixIDs) == 0 || config.Resolve(a.Catalog, cfg).Level(in.RuleID) == catalog.LevelOff {
		return refactor.Result{Changes: []refactor.FileChange{}}
	}
	return a.transform(ctx, refactor.Request{
		FixIDs:  fixIDs,
		Files:   []refactor.FileInput{{Filename: filename, Source: in.Source}},
		Preview: true,
	})
}

// ApplyRefactorings runs fixIDs over files and returns the files whose text
// changed. Nothing is written anywhere.
func (a *Analyzer) ApplyRefactorings(ctx context.Context, fixIDs []string, files []FileInput) []refactor.FileChange {
	ctx = a.context(ctx)
	return a.transform(ctx, refactor.Request{FixIDs: fixIDs, Files: files, Preview: true}).Changes
}

// Refactor is ApplyRefactorings with the full result, including files that
// failed to parse and unknown fix ids.
func (a *Analyzer) Refactor(ctx context.Context, fixIDs []string, files []FileInput) refactor.Result {
	return a.transform(a.context(ctx), refactor.Request{FixIDs: fixIDs, Files: files, Preview: true})
}

func (a *Analyzer) transform(ctx context.Context, req refactor.Request) refactor.Result {
	span, _ := trace.Start(ctx, trace.ScopePass, "transform")
	res := a.Engine.Apply(req)
	span.WithExtra("fixes", strings.Join(req.FixIDs, ",")).End("")
	return res
}

// Explain returns the catalog record and guidance of ruleID.
func (a *Analyzer) Explain(ruleID string) (Explanation, bool) {
	rule, ok := a.Catalog.Rule(ruleID)
	if !ok {
		return Explanation{}, false
	}
	ex := Explanation{Rule: rule, Fixes: []catalog.Fix{}}
	for _, id := range rule.FixIDs {
		if fx, ok := a.Catalog.Fix(id); ok {
			ex.Fixes = append(ex.Fixes, fx)
		}
	}
	ex.Guidance, _ = a.Guidance.Lookup(ruleID)
	return ex, true
}

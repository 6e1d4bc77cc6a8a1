package analysis

import (
	"context"
	"strconv"
	"time"

	"effectlint/internal/catalog"
	"effectlint/internal/classify"
	"effectlint/internal/config"
	"effectlint/internal/finding"
	"effectlint/internal/guidance"
	"effectlint/internal/observ"
	"effectlint/internal/parser"
	"effectlint/internal/refactor"
	"effectlint/internal/rules"
	"effectlint/internal/source"
	"effectlint/internal/trace"
)

// Analyzer bundles the read-only tables an analysis needs. The zero value is
// not usable; build one with New.
type Analyzer struct {
	Catalog  *catalog.Catalog
	Rules    *rules.Registry
	Engine   *refactor.Engine
	Guidance *guidance.Set
	// Tracer is used when the call context carries none.
	Tracer trace.Tracer
	// Timer, when set, accumulates per-phase durations across calls.
	Timer *observ.Timer
	// CollapseAliases drops alias-rule findings reported on the same span as
	// their canonical rule.
	CollapseAliases bool
	// Now stamps reports. Defaults to time.Now.
	Now func() time.Time
}

// New returns an Analyzer over the built-in catalog, rules, transforms and
// guidance.
func New() *Analyzer {
	return &Analyzer{
		Catalog:  catalog.Default(),
		Rules:    rules.Default(),
		Engine:   refactor.Default(),
		Guidance: guidance.Default(),
		Tracer:   trace.Nop,
		Now:      time.Now,
	}
}

func (a *Analyzer) context(ctx context.Context) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	if !trace.FromContext(ctx).Enabled() && a.Tracer != nil && a.Tracer.Enabled() {
		ctx = trace.WithTracer(ctx, a.Tracer)
	}
	return ctx
}

func (a *Analyzer) now() time.Time {
	if a.Now == nil {
		return time.Now()
	}
	return a.Now()
}

func (a *Analyzer) phase(name string, started time.Time) {
	if a.Timer != nil {
		a.Timer.Add(name, time.Since(started))
	}
}

// Analyze reports the findings of one source text. A source that does not
// parse yields a report with ParseError set and no findings.
func (a *Analyzer) Analyze(ctx context.Context, in Input) Report {
	ctx = a.context(ctx)
	filename := in.Filename
	if filename == "" {
		filename = DefaultFilename
	}
	span, ctx := trace.Start(ctx, trace.ScopeFile, "analyze:"+filename)
	report := Report{
		Filename:    filename,
		Suggestions: []finding.Suggestion{},
		Findings:    []finding.Finding{},
		AnalyzedAt:  a.now(),
	}
	defer func() {
		span.WithExtra("findings", strconv.Itoa(len(report.Findings))).End(string(in.AnalysisType))
	}()

	started := time.Now()
	ps, _ := trace.Start(ctx, trace.ScopePass, "parse")
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual(filename, []byte(in.Source)))
	res := parser.ParseFile(file, parser.Options{})
	ps.End("")
	a.phase("parse", started)
	if !res.OK() {
		report.ParseError = parseFailure(file, res)
		return report
	}

	started = time.Now()
	ws, _ := trace.Start(ctx, trace.ScopePass, "walk")
	events := a.Rules.Run(classify.New(res.Tree, filename))
	ws.WithExtra("events", strconv.Itoa(len(events))).End("")
	a.phase("walk", started)

	started = time.Now()
	ss, _ := trace.Start(ctx, trace.ScopePass, "synthesize")
	active := a.activeSet(in.Config, in.AnalysisType)
	if a.CollapseAliases {
		events = finding.CollapseAliases(events, a.Catalog)
	}
	report.Findings = finding.Synthesize(events, active, a.Catalog, filename, file)
	finding.SortBySeverity(report.Findings)
	report.Suggestions = finding.Suggestions(report.Findings)
	finding.SortSuggestions(report.Suggestions)
	ss.End("")
	a.phase("synthesize", started)
	return report
}

func (a *Analyzer) activeSet(cfg *config.AnalysisConfig, typ Type) finding.ActiveSet {
	applied := config.ApplyToRules(a.Catalog, cfg)
	return finding.NewActiveSet(finding.FilterCategories(applied, typ.Categories()), config.Resolve(a.Catalog, cfg))
}

// AnalyzeFiles analyzes each file in order with one shared type and config.
// A file that fails to parse does not affect the others.
func (a *Analyzer) AnalyzeFiles(ctx context.Context, files []FileInput, typ Type, cfg *config.AnalysisConfig) []Report {
	ctx = a.context(ctx)
	span, ctx := trace.Start(ctx, trace.ScopeDriver, "analyze-files")
	defer span.End(strconv.Itoa(len(files)) + " files")
	out := make([]Report, 0, len(files))
	for _, f := range files {
		out = append(out, a.Analyze(ctx, Input{Source: f.Source, Filename: f.Filename, AnalysisType: typ, Config: cfg}))
	}
	return out
}

func parseFailure(file *source.File, res parser.Result) *ParseFailure {
	pf := &ParseFailure{Code: "SYN0000", Message: "source does not parse"}
	if res.Bag == nil {
		return pf
	}
	d, ok := res.Bag.First()
	if !ok {
		return pf
	}
	start, end := file.Position(d.Primary.Start), file.Position(d.Primary.End)
	pf.Code = d.Code.ID()
	pf.Message = d.Message
	pf.Range = source.Range{StartLine: start.Line, StartCol: start.Col, EndLine: end.Line, EndCol: end.Col}
	return pf
}

package driver

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"effectlint/internal/analysis"
	"effectlint/internal/config"
	"effectlint/internal/diag"
	"effectlint/internal/finding"
	"effectlint/internal/observ"
	"effectlint/internal/trace"
)

// Options configures a batch run.
type Options struct {
	Jobs         int
	AnalysisType analysis.Type
	Config       *config.AnalysisConfig
	// Cache, when set, is consulted before analysis and filled after it.
	Cache    *DiskCache
	Progress ProgressSink
	Timer    *observ.Timer
}

// FileResult is the outcome for one path. Source is empty when the file
// could not be read.
type FileResult struct {
	Path   string
	Source string
	Report analysis.Report
	Cached bool
}

// AnalyzePaths analyzes files in parallel, at most opts.Jobs at a time.
// Results keep the order of paths. A file that cannot be read gets a report
// whose ParseError carries the I/O failure; only cancellation and cache
// key errors abort the batch.
func AnalyzePaths(ctx context.Context, a *analysis.Analyzer, paths []string, opts Options) ([]FileResult, error) {
	span, ctx := trace.Start(ctx, trace.ScopeDriver, "analyze-paths")
	defer span.End(fmt.Sprintf("%d files", len(paths)))

	results := make([]FileResult, len(paths))
	if len(paths) == 0 {
		return results, nil
	}
	cfgDigest, err := ConfigDigest(opts.Config)
	if err != nil {
		return nil, fmt.Errorf("hash config: %w", err)
	}
	for _, p := range paths {
		emit(opts.Progress, Event{File: p, Stage: StageRead, Status: StatusQueued})
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(paths)))

	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			// indices are unique per goroutine, no lock needed
			results[i] = analyzeOne(gctx, a, path, cfgDigest, opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

func analyzeOne(ctx context.Context, a *analysis.Analyzer, path string, cfgDigest Digest, opts Options) FileResult {
	started := time.Now()
	emit(opts.Progress, Event{File: path, Stage: StageRead, Status: StatusWorking})
	data, err := os.ReadFile(path)
	addPhase(opts.Timer, "read", started)
	if err != nil {
		emit(opts.Progress, Event{File: path, Stage: StageRead, Status: StatusError, Err: err, Elapsed: time.Since(started)})
		return FileResult{Path: path, Report: readFailure(a, path, err)}
	}
	src := string(data)

	key := CacheKey(data, path, cfgDigest, a.Catalog.Version(), opts.AnalysisType)
	if opts.Cache != nil {
		cacheStart := time.Now()
		emit(opts.Progress, Event{File: path, Stage: StageCache, Status: StatusWorking})
		report, ok, err := opts.Cache.Get(key)
		addPhase(opts.Timer, "cache", cacheStart)
		if err == nil && ok {
			emit(opts.Progress, Event{File: path, Stage: StageCache, Status: StatusDone, Cached: true, Elapsed: time.Since(started)})
			return FileResult{Path: path, Source: src, Report: report, Cached: true}
		}
	}

	emit(opts.Progress, Event{File: path, Stage: StageAnalyze, Status: StatusWorking})
	report := a.Analyze(ctx, analysis.Input{
		Source:       src,
		Filename:     path,
		AnalysisType: opts.AnalysisType,
		Config:       opts.Config,
	})
	if opts.Cache != nil {
		if err := opts.Cache.Put(key, report); err != nil {
			trace.Point(trace.FromContext(ctx), trace.ScopeFile, "cache-put-failed", err.Error(), trace.CurrentSpan(ctx).SpanID)
		}
	}
	status := StatusDone
	if report.ParseError != nil {
		status = StatusError
	}
	emit(opts.Progress, Event{File: path, Stage: StageAnalyze, Status: status, Elapsed: time.Since(started)})
	return FileResult{Path: path, Source: src, Report: report}
}

func readFailure(a *analysis.Analyzer, path string, err error) analysis.Report {
	now := time.Now()
	if a.Now != nil {
		now = a.Now()
	}
	return analysis.Report{
		Filename:    path,
		Suggestions: []finding.Suggestion{},
		Findings:    []finding.Finding{},
		AnalyzedAt:  now,
		ParseError:  &analysis.ParseFailure{Code: diag.IOLoadFileError.ID(), Message: err.Error()},
	}
}

func addPhase(t *observ.Timer, name string, started time.Time) {
	if t != nil {
		t.Add(name, time.Since(started))
	}
}

// Reports extracts the reports of results, in order.
func Reports(results []FileResult) []analysis.Report {
	out := make([]analysis.Report, len(results))
	for i, r := range results {
		out[i] = r.Report
	}
	return out
}

package driver

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"effectlint/internal/analysis"
	"effectlint/internal/refactor"
	"effectlint/internal/trace"
)

// LoadFiles reads paths into refactoring inputs. Unreadable files are
// reported as failures and left out.
func LoadFiles(paths []string) ([]refactor.FileInput, []refactor.FileFailure) {
	var (
		files    = make([]refactor.FileInput, 0, len(paths))
		failures []refactor.FileFailure
	)
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			failures = append(failures, refactor.FileFailure{Filename: p, Reason: err.Error()})
			continue
		}
		files = append(files, refactor.FileInput{Filename: p, Source: string(data)})
	}
	return files, failures
}

// FixPaths previews fixIDs over paths. Nothing is written.
func FixPaths(ctx context.Context, a *analysis.Analyzer, paths []string, fixIDs []string, progress ProgressSink) refactor.Result {
	span, ctx := trace.Start(ctx, trace.ScopeDriver, "fix-paths")
	defer span.End(fmt.Sprintf("%d files", len(paths)))

	files, failures := LoadFiles(paths)
	emit(progress, Event{Stage: StageFix, Status: StatusWorking})
	res := a.Refactor(ctx, fixIDs, files)
	res.Failed = append(failures, res.Failed...)
	for _, f := range res.Failed {
		emit(progress, Event{File: f.Filename, Stage: StageFix, Status: StatusError, Err: fmt.Errorf("%s", f.Reason)})
	}
	emit(progress, Event{Stage: StageFix, Status: StatusDone})
	return res
}

// WriteChanges persists accepted changes. Each file is replaced atomically
// and keeps its permissions. A file whose current content no longer equals
// Before is skipped with an error.
func WriteChanges(changes []refactor.FileChange) error {
	for _, ch := range changes {
		if err := writeChange(ch); err != nil {
			return fmt.Errorf("write %s: %w", ch.Filename, err)
		}
	}
	return nil
}

func writeChange(ch refactor.FileChange) (err error) {
	info, err := os.Stat(ch.Filename)
	if err != nil {
		return err
	}
	current, err := os.ReadFile(ch.Filename)
	if err != nil {
		return err
	}
	if string(current) != ch.Before {
		return errStale
	}
	f, err := os.CreateTemp(filepath.Dir(ch.Filename), ".effectlint-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = os.Remove(f.Name())
		}
	}()
	if _, err = f.WriteString(ch.After); err != nil {
		_ = f.Close()
		return err
	}
	if err = f.Chmod(info.Mode().Perm()); err != nil {
		_ = f.Close()
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), ch.Filename)
}

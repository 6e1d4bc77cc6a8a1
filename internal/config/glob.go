package config

import (
	"path/filepath"
	"strings"

	"github.com/tidwall/match"
)

// Ignored reports whether a slash-separated path relative to the walk root
// is excluded by the ignore patterns or not selected by the include patterns.
func (c *AnalysisConfig) Ignored(rel string) bool {
	if c == nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	for _, pat := range c.Ignore {
		if globMatch(rel, pat) {
			return true
		}
	}
	if len(c.Include) == 0 {
		return false
	}
	for _, pat := range c.Include {
		if globMatch(rel, pat) {
			return false
		}
	}
	return true
}

// globMatch matches a path against a glob. '*' and '**' both span path
// separators; a pattern without a slash also matches any path segment run,
// so "dist" ignores "pkg/dist/x.ts".
func globMatch(rel, pat string) bool {
	pat = strings.TrimPrefix(filepath.ToSlash(pat), "./")
	pat = strings.ReplaceAll(pat, "**", "*")
	if match.Match(rel, pat) {
		return true
	}
	if rest, ok := strings.CutPrefix(pat, "*/"); ok && match.Match(rel, rest) {
		return true
	}
	if strings.HasSuffix(pat, "/") {
		pat += "*"
	}
	if !strings.Contains(strings.TrimSuffix(pat, "/*"), "/") {
		return match.Match(rel, pat) || match.Match(rel, "*/"+pat) ||
			match.Match(rel, pat+"/*") || match.Match(rel, "*/"+pat+"/*")
	}
	return match.Match(rel, pat+"/*")
}

// IgnoredDir reports whether a directory is excluded by the ignore
// patterns. Include patterns select files only, so they never prune a
// directory.
func (c *AnalysisConfig) IgnoredDir(rel string) bool {
	if c == nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	for _, pat := range c.Ignore {
		if globMatch(rel, pat) {
			return true
		}
	}
	return false
}

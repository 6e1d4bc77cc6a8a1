package driver

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"effectlint/internal/config"
)

// Extensions lists the file suffixes the walker picks up. TSX is left out
// because JSX is not parsed.
var Extensions = []string{".ts", ".mts", ".cts"}

var skipDirs = map[string]bool{"node_modules": true, ".git": true}

// IsSourceFile reports whether path has an analyzed extension. Declaration
// files are skipped.
func IsSourceFile(path string) bool {
	base := filepath.Base(path)
	if strings.HasSuffix(base, ".d.ts") || strings.HasSuffix(base, ".d.mts") || strings.HasSuffix(base, ".d.cts") {
		return false
	}
	for _, ext := range Extensions {
		if strings.HasSuffix(base, ext) {
			return true
		}
	}
	return false
}

// Discover expands roots into a sorted, duplicate-free list of source files.
// Files named directly are kept even when ignore patterns match them;
// directory walks apply cfg's ignore and include patterns relative to the
// walked root.
func Discover(roots []string, cfg *config.AnalysisConfig) ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	add := func(p string) {
		p = filepath.Clean(p)
		if !seen[p] {
			seen[p] = true
			files = append(files, p)
		}
	}
	for _, root := range roots {
		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("discover %s: %w", root, err)
		}
		if !info.IsDir() {
			add(root)
			continue
		}
		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			rel, relErr := filepath.Rel(root, path)
			if relErr != nil {
				return relErr
			}
			if d.IsDir() {
				if path == root {
					return nil
				}
				name := d.Name()
				if skipDirs[name] || strings.HasPrefix(name, ".") || cfg.IgnoredDir(rel) {
					return filepath.SkipDir
				}
				return nil
			}
			if IsSourceFile(path) && !cfg.Ignored(rel) {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("discover %s: %w", root, err)
		}
	}
	sort.Strings(files)
	return files, nil
}

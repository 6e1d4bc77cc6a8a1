package diagfmt

import (
	"path/filepath"
	"strings"
)

func formatPath(name string, mode PathMode, base string) string {
	switch mode {
	case PathModeAbsolute:
		if abs, err := filepath.Abs(name); err == nil {
			return abs
		}
	case PathModeRelative:
		if rel, ok := relTo(name, base); ok {
			return rel
		}
	case PathModeBasename:
		return filepath.Base(name)
	case PathModeAuto:
		if rel, ok := relTo(name, base); ok && !strings.HasPrefix(rel, "..") {
			return rel
		}
	}
	return name
}

func relTo(name, base string) (string, bool) {
	if base == "" {
		return "", false
	}
	absName, err := filepath.Abs(name)
	if err != nil {
		return "", false
	}
	absBase, err := filepath.Abs(base)
	if err != nil {
		return "", false
	}
	rel, err := filepath.Rel(absBase, absName)
	if err != nil {
		return "", false
	}
	return filepath.ToSlash(rel), true
}

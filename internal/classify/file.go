package classify

import (
	"path"
	"path/filepath"
	"strings"

	"effectlint/internal/ast"
)

// File carries the per-pass facts of one parsed file. It is not safe for
// concurrent use; each analysis pass builds its own.
type File struct {
	tree      *ast.Tree
	name      string
	boundary  bool
	effectful int8 // 0 unknown, 1 yes, -1 no
}

// New classifies tree, parsed from the file called name.
func New(tree *ast.Tree, name string) *File {
	return &File{tree: tree, name: name, boundary: IsBoundaryFile(name)}
}

func (f *File) Tree() *ast.Tree  { return f.tree }
func (f *File) Filename() string { return f.name }

// IsBoundaryFile reports whether the file handles a transport boundary.
func (f *File) IsBoundaryFile() bool { return f.boundary }

// IsEffectfulSource reports whether the file imports the effect runtime,
// delegates with yield* or names the Effect namespace. The answer is
// computed on first use and memoized.
func (f *File) IsEffectfulSource() bool {
	if f.effectful == 0 {
		f.effectful = -1
		if isEffectful(f.tree) {
			f.effectful = 1
		}
	}
	return f.effectful > 0
}

func isEffectful(t *ast.Tree) bool {
	found := false
	ast.Inspect(t, t.Root, func(id ast.NodeID) bool {
		if found {
			return false
		}
		n := t.Node(id)
		switch n.Kind {
		case ast.ImportDecl:
			if mod, ok := t.StringValue(n.Kids[3]); ok && IsEffectModule(mod) {
				found = true
			}
		case ast.ExportNamed:
			if mod, ok := t.StringValue(n.Kids[1]); ok && IsEffectModule(mod) {
				found = true
			}
		case ast.YieldExpr:
			found = n.Has(ast.FlagDelegate)
		case ast.Ident:
			found = n.Text == "Effect"
		}
		return !found
	})
	return found
}

// IsEffectModule reports whether a module specifier belongs to the runtime.
func IsEffectModule(spec string) bool {
	return spec == "effect" || strings.HasPrefix(spec, "effect/") || strings.HasPrefix(spec, "@effect/")
}

var boundaryDirs = map[string]bool{
	"routes": true, "route": true, "handlers": true, "handler": true, "controllers": true,
}

var boundaryBases = map[string]bool{
	"route.ts": true, "+server.ts": true, "handler.ts": true,
}

// IsBoundaryFile reports whether name follows a routing or handler layout
// such as app/api/, pages/api/, routes/ or a route.ts file.
func IsBoundaryFile(name string) bool {
	p := filepath.ToSlash(name)
	if boundaryBases[path.Base(p)] {
		return true
	}
	segs := strings.Split(path.Dir(p), "/")
	for i, seg := range segs {
		if boundaryDirs[seg] {
			return true
		}
		if seg == "api" && i > 0 && (segs[i-1] == "app" || segs[i-1] == "pages") {
			return true
		}
	}
	return false
}

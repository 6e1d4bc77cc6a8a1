package refactor

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"effectlint/internal/ast"
	"effectlint/internal/rules"
)

const platformModule = "@effect/platform"

// replaceNodeImport swaps a node builtin import for the platform service
// named service. The first such import in a file is rewritten; later ones
// and imports made redundant by an existing platform import are removed.
// An import whose bindings are still used in the file is left alone: its
// call sites have to move to the service first.
func replaceNodeImport(fixID, rule, service string) Transform {
	return Transform{
		FixID: fixID,
		Rules: []string{rule},
		Rewrite: func(u *Unit, m Match) []Edit {
			t := u.Tree
			decl := u.Parent(m.Node)
			if t.Kind(decl) != ast.ImportDecl || t.Kid(decl, 3) != m.Node {
				return nil
			}
			if usedOutside(t, decl, importBindings(t, decl)) {
				return nil
			}
			if importsName(t, platformModule, service) || firstNodeImport(t, rule) != decl {
				return []Edit{u.Delete(decl)}
			}
			s := u.Synth
			spec := s.Node(ast.ImportSpec, "", 0, s.Ident(service), ast.NoNode)
			named := s.Node(ast.NamedImports, "", 0, spec)
			imp := s.Node(ast.ImportDecl, "", 0, ast.NoNode, ast.NoNode, named, s.String(platformModule))
			return []Edit{u.Replace(decl, imp)}
		},
	}
}

// importsName reports whether a top-level import binds name from module.
func importsName(t *ast.Tree, module, name string) bool {
	for _, stmt := range t.Kids(t.Root) {
		if t.Kind(stmt) != ast.ImportDecl {
			continue
		}
		if spec, ok := t.StringValue(t.Kid(stmt, 3)); !ok || spec != module {
			continue
		}
		for _, is := range t.Kids(t.Kid(stmt, 2)) {
			local := t.Kid(is, 1)
			if local == ast.NoNode {
				local = t.Kid(is, 0)
			}
			if t.IsIdent(local, name) {
				return true
			}
		}
	}
	return false
}

// importBindings lists the local names an import declaration introduces.
func importBindings(t *ast.Tree, decl ast.NodeID) []string {
	var names []string
	for _, slot := range []int{0, 1} {
		if id := t.Kid(decl, slot); t.Kind(id) == ast.Ident {
			names = append(names, t.Text(id))
		}
	}
	for _, is := range t.Kids(t.Kid(decl, 2)) {
		local := t.Kid(is, 1)
		if local == ast.NoNode {
			local = t.Kid(is, 0)
		}
		if t.Kind(local) == ast.Ident {
			names = append(names, t.Text(local))
		}
	}
	return names
}

// usedOutside reports whether any of names is referenced in the file outside
// skip, as an identifier or as the head of a type reference. Property names
// after a dot are not references.
func usedOutside(t *ast.Tree, skip ast.NodeID, names []string) bool {
	if len(names) == 0 {
		return false
	}
	bound := make(map[string]bool, len(names))
	for _, n := range names {
		bound[n] = true
	}
	used := false
	var visit func(id ast.NodeID) bool
	visit = func(id ast.NodeID) bool {
		if used || id == skip {
			return false
		}
		switch t.Kind(id) {
		case ast.Ident:
			used = bound[t.Text(id)]
		case ast.TypeRef:
			head, _, _ := strings.Cut(t.Text(id), ".")
			used = bound[head]
		case ast.MemberExpr:
			ast.Inspect(t, t.Kid(id, 0), visit)
			return false
		}
		return !used
	}
	ast.Inspect(t, t.Root, visit)
	return used
}

func firstNodeImport(t *ast.Tree, rule string) ast.NodeID {
	for _, stmt := range t.Kids(t.Root) {
		if t.Kind(stmt) != ast.ImportDecl || t.Has(stmt, ast.FlagTypeOnly) {
			continue
		}
		if spec, ok := t.StringValue(t.Kid(stmt, 3)); ok {
			if r, ok := rules.NodeBuiltinRule(spec); ok && r == rule {
				return stmt
			}
		}
	}
	return ast.NoNode
}

func fixDeepImport() Transform {
	return Transform{
		FixID: "fix-deep-import",
		Rules: []string{"effect-deep-import"},
		Rewrite: func(u *Unit, m Match) []Edit {
			t := u.Tree
			spec, ok := t.StringValue(m.Node)
			raw := t.Text(m.Node)
			if !ok || raw == "" {
				return nil
			}
			quote := raw[:1]
			return []Edit{u.ReplaceText(t.Span(m.Node), quote+PublicSpecifier(spec)+quote)}
		},
	}
}

// PublicSpecifier maps a deep effect import to the public entry point that
// exports the same module: build directories are dropped, internal modules
// fall back to the package root and a module file keeps its name.
func PublicSpecifier(spec string) string {
	parts := strings.Split(spec, "/")
	n := 1
	if strings.HasPrefix(spec, "@") && len(parts) > 1 {
		n = 2
	}
	if len(parts) < n {
		return spec
	}
	pkg := strings.Join(parts[:n], "/")
	for _, p := range parts[n:] {
		switch p {
		case "dist", "esm", "cjs", "dts", "mjs", "src", "":
			continue
		case "internal":
			return pkg
		}
		name := p
		for _, ext := range []string{".d.ts", ".js", ".mjs", ".cjs", ".ts"} {
			name = strings.TrimSuffix(name, ext)
		}
		if r, _ := utf8.DecodeRuneInString(name); unicode.IsUpper(r) {
			return pkg + "/" + name
		}
		return pkg
	}
	return pkg
}

func useNamespaceImport() Transform {
	return Transform{
		FixID: "use-namespace-import",
		Rules: []string{"effect-default-import"},
		Rewrite: func(u *Unit, m Match) []Edit {
			t := u.Tree
			decl := u.Parent(m.Node)
			if t.Kind(decl) != ast.ImportDecl || t.Kid(decl, 0) != m.Node {
				return nil
			}
			if t.Kid(decl, 1) != ast.NoNode || t.Kid(decl, 2) != ast.NoNode {
				return nil
			}
			imp := u.Synth.Node(ast.ImportDecl, "", 0, ast.NoNode, m.Node, ast.NoNode, t.Kid(decl, 3))
			return []Edit{u.Replace(decl, imp)}
		},
	}
}

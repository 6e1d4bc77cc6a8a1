package rules

import (
	"strings"

	"effectlint/internal/ast"
	"effectlint/internal/classify"
)

// nodeModules maps a bare node builtin to the platform rule flagging it.
var nodeModules = map[string]string{
	"fs":            "node-fs",
	"fs/promises":   "node-fs",
	"path":          "node-path",
	"path/posix":    "node-path",
	"path/win32":    "node-path",
	"child_process": "node-child-process",
	"http":          "node-http",
	"https":         "node-http",
	"http2":         "node-http",
}

// NodeBuiltinRule returns the rule flagging an import of spec, if any.
func NodeBuiltinRule(spec string) (string, bool) {
	rule, ok := nodeModules[strings.TrimPrefix(spec, "node:")]
	return rule, ok
}

// IsDeepEffectImport reports whether spec reaches into build output or
// internal modules of an effect package.
func IsDeepEffectImport(spec string) bool {
	if !classify.IsEffectModule(spec) {
		return false
	}
	parts := strings.Split(spec, "/")
	if strings.HasPrefix(spec, "@") && len(parts) > 2 {
		parts = parts[2:]
	} else {
		parts = parts[1:]
	}
	for _, p := range parts {
		switch p {
		case "dist", "internal", "src":
			return true
		}
	}
	return false
}

// moduleOf returns the specifier node of an import or a require/import() call.
func moduleOf(t *ast.Tree, id ast.NodeID) ast.NodeID {
	switch t.Kind(id) {
	case ast.ImportDecl:
		if t.Has(id, ast.FlagTypeOnly) {
			return ast.NoNode
		}
		return t.Kid(id, 3)
	case ast.ExportNamed:
		return t.Kid(id, 1)
	case ast.CallExpr:
		callee := t.Callee(id)
		if (t.IsIdent(callee, "require") || t.IsIdent(callee, "import")) && len(t.Args(id)) == 1 {
			if t.Kind(t.Arg(id, 0)) == ast.StringLit {
				return t.Arg(id, 0)
			}
		}
	}
	return ast.NoNode
}

var importKinds = []ast.Kind{ast.ImportDecl, ast.ExportNamed, ast.CallExpr}

func importEvaluators() []Evaluator {
	return []Evaluator{
		{
			Name:  "node-builtin-import",
			Rules: []string{"node-fs", "node-path", "node-child-process", "node-http"},
			Kinds: importKinds,
			Check: func(c *Context, id ast.NodeID) []Event {
				mod := moduleOf(c.Tree, id)
				spec, ok := c.Tree.StringValue(mod)
				if !ok {
					return nil
				}
				if rule, ok := NodeBuiltinRule(spec); ok {
					return c.one(rule, mod)
				}
				return nil
			},
		},
		{
			Name:  "effect-deep-import",
			Rules: []string{"effect-deep-import"},
			Kinds: importKinds,
			Check: func(c *Context, id ast.NodeID) []Event {
				mod := moduleOf(c.Tree, id)
				if spec, ok := c.Tree.StringValue(mod); ok && IsDeepEffectImport(spec) {
					return c.one("effect-deep-import", mod)
				}
				return nil
			},
		},
		{
			Name:  "effect-default-import",
			Rules: []string{"effect-default-import"},
			Kinds: []ast.Kind{ast.ImportDecl},
			Check: func(c *Context, id ast.NodeID) []Event {
				t := c.Tree
				def := t.Kid(id, 0)
				if def == ast.NoNode || t.Has(id, ast.FlagTypeOnly) {
					return nil
				}
				if spec, ok := t.StringValue(t.Kid(id, 3)); ok && classify.IsEffectModule(spec) {
					return c.one("effect-default-import", def)
				}
				return nil
			},
		},
		{
			Name:  "foreign-library-import",
			Rules: []string{"fp-ts-import", "zod-in-effect"},
			Kinds: []ast.Kind{ast.ImportDecl},
			Gated: true,
			Check: func(c *Context, id ast.NodeID) []Event {
				mod := c.Tree.Kid(id, 3)
				spec, ok := c.Tree.StringValue(mod)
				if !ok {
					return nil
				}
				switch {
				case spec == "fp-ts" || strings.HasPrefix(spec, "fp-ts/"):
					return c.one("fp-ts-import", mod)
				case spec == "zod" || strings.HasPrefix(spec, "zod/"):
					return c.one("zod-in-effect", mod)
				}
				return nil
			},
		},
	}
}

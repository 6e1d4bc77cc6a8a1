package rules

import (
	"strings"

	"effectlint/internal/ast"
	"effectlint/internal/classify"
)

var plainErrors = map[string]bool{
	"Error": true, "TypeError": true, "RangeError": true, "SyntaxError": true, "ReferenceError": true,
}

// tryCatch classifies a try statement with a catch clause. Boundary files
// get the advisory rule instead of the typed-channel ones.
func tryCatch(c *Context, id ast.NodeID) []Event {
	t := c.Tree
	handler := t.Kid(id, 1)
	if handler == ast.NoNode {
		return nil
	}
	var rule string
	switch {
	case c.inEffect(id):
		rule = "try-catch-in-effect"
	case untypedCatch(t, handler):
		rule = "untyped-try-catch"
	default:
		return nil
	}
	if c.File.IsBoundaryFile() {
		rule = "boundary-try-catch-ok"
	}
	return c.one(rule, id)
}

// untypedCatch reports whether the catch binding is missing or typed any.
func untypedCatch(t *ast.Tree, clause ast.NodeID) bool {
	typ := t.Kid(clause, 1)
	if typ == ast.NoNode {
		return true
	}
	refs := t.Kids(typ)
	return len(refs) == 1 && t.Text(refs[0]) == "any"
}

func errorEvaluators() []Evaluator {
	return []Evaluator{
		{
			Name:  "try-catch",
			Rules: []string{"try-catch-in-effect", "untyped-try-catch", "boundary-try-catch-ok"},
			Kinds: []ast.Kind{ast.TryStmt},
			Gated: true,
			Check: tryCatch,
		},
		{
			Name:  "throw-in-effect-gen",
			Rules: []string{"throw-in-effect-gen"},
			Kinds: []ast.Kind{ast.ThrowStmt},
			Gated: true,
			Check: func(c *Context, id ast.NodeID) []Event {
				if c.File.IsInsideEffectGen(id, c.Stack) {
					return c.one("throw-in-effect-gen", id)
				}
				return nil
			},
		},
		{
			Name:  "fail-with-plain-error",
			Rules: []string{"fail-with-plain-error"},
			Kinds: []ast.Kind{ast.CallExpr},
			Gated: true,
			Check: func(c *Context, id ast.NodeID) []Event {
				t := c.Tree
				if !calleeIs(t, id, "Effect.fail", "Effect.die") || len(t.Args(id)) != 1 {
					return nil
				}
				arg := t.Unparen(t.Arg(id, 0))
				if t.Kind(arg) == ast.NewExpr && plainErrors[t.DottedName(t.Callee(arg))] {
					return c.one("fail-with-plain-error", arg)
				}
				return nil
			},
		},
		{
			Name:  "catch-all-ignores-error",
			Rules: []string{"catch-all-ignores-error"},
			Kinds: []ast.Kind{ast.CallExpr},
			Gated: true,
			Check: func(c *Context, id ast.NodeID) []Event {
				t := c.Tree
				if _, ok := effectCall(t, id, "catchAll", "catchAllCause"); !ok {
					return nil
				}
				fn := CallbackArg(t, id)
				if fn == ast.NoNode {
					return nil
				}
				params := t.Kids(t.FuncParams(fn))
				if len(params) == 0 {
					return c.one("catch-all-ignores-error", fn)
				}
				binding := t.Kid(params[0], 1)
				if t.Kind(binding) == ast.Ident && strings.HasPrefix(t.Text(binding), "_") {
					return c.one("catch-all-ignores-error", fn)
				}
				return nil
			},
		},
		{
			Name:  "plain-error-class",
			Rules: []string{"plain-error-class"},
			Kinds: []ast.Kind{ast.ClassDecl, ast.ClassExpr},
			Gated: true,
			Check: func(c *Context, id ast.NodeID) []Event {
				t := c.Tree
				heritage := classify.StripTypeArgs(t, t.Kid(id, 3))
				if t.Kind(heritage) == ast.Ident && plainErrors[t.Text(heritage)] {
					return c.one("plain-error-class", heritage)
				}
				return nil
			},
		},
		{
			Name:  "or-die-usage",
			Rules: []string{"or-die-usage"},
			Kinds: []ast.Kind{ast.MemberExpr},
			Gated: true,
			Check: func(c *Context, id ast.NodeID) []Event {
				switch c.Tree.DottedName(id) {
				case "Effect.orDie", "Effect.orDieWith":
					return c.one("or-die-usage", id)
				}
				return nil
			},
		},
	}
}

package rules

import (
	"strings"

	"effectlint/internal/ast"
	"effectlint/internal/classify"
)

// effectCall reports whether call is recv.method on one of the runtime
// namespaces and method is in methods.
func effectCall(t *ast.Tree, call ast.NodeID, methods ...string) (string, bool) {
	recv, method := classify.CalleeName(t, call)
	if !classify.IsEffectNamespace(recv) {
		return "", false
	}
	for _, m := range methods {
		if m == method {
			return method, true
		}
	}
	return "", false
}

// calleeIs reports whether the dotted callee name of call is one of names.
func calleeIs(t *ast.Tree, call ast.NodeID, names ...string) bool {
	dotted := classify.CalleeDotted(t, call)
	for _, n := range names {
		if dotted == n {
			return true
		}
	}
	return false
}

// ReturnedExpr returns the single expression a function evaluates to: the
// body of a concise arrow or the argument of a lone return statement.
func ReturnedExpr(t *ast.Tree, fn ast.NodeID) ast.NodeID {
	body := t.FuncBody(fn)
	if t.Kind(body) != ast.Block {
		return t.Unparen(body)
	}
	stmts := t.Kids(body)
	if len(stmts) != 1 || t.Kind(stmts[0]) != ast.ReturnStmt {
		return ast.NoNode
	}
	return t.Unparen(t.Kid(stmts[0], 0))
}

// CallbackArg returns the last argument of call when it is a function.
func CallbackArg(t *ast.Tree, call ast.NodeID) ast.NodeID {
	args := t.Args(call)
	if len(args) == 0 {
		return ast.NoNode
	}
	fn := t.Unparen(args[len(args)-1])
	if k := t.Kind(fn); k == ast.ArrowFunc || k == ast.FuncExpr {
		return fn
	}
	return ast.NoNode
}

// isEffectConstructor reports whether expr is a call rooted at Effect, such
// as Effect.succeed(x) or Effect.log("x").pipe(...).
func isEffectConstructor(t *ast.Tree, expr ast.NodeID) bool {
	for t.Kind(expr) == ast.CallExpr {
		callee := classify.StripTypeArgs(t, t.Callee(expr))
		if name := t.DottedName(callee); name != "" {
			return strings.HasPrefix(name, "Effect.")
		}
		if t.Kind(callee) != ast.MemberExpr {
			return false
		}
		expr = t.Unparen(t.Kid(callee, 0))
	}
	return false
}

// paramCount returns the number of parameters of a function-like node.
func paramCount(t *ast.Tree, fn ast.NodeID) int {
	return len(t.Kids(t.FuncParams(fn)))
}

// propertyName returns the static name of an object member key.
func propertyName(t *ast.Tree, key ast.NodeID) string {
	switch t.Kind(key) {
	case ast.Ident:
		return t.Text(key)
	case ast.StringLit:
		s, _ := t.StringValue(key)
		return s
	}
	return ""
}

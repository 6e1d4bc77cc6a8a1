package rules

import (
	"effectlint/internal/ast"
	"effectlint/internal/classify"
)

// Combinators that take promise-returning callbacks on purpose.
var promiseCombinators = map[string]bool{
	"promise": true, "tryPromise": true, "tryMapPromise": true, "async": true,
}

// inAwaitingCallback reports whether the nearest function is a callback of a
// promise-accepting combinator, where await is expected.
func (c *Context) inAwaitingCallback() bool {
	_, call := c.File.CallbackCall(c.Stack)
	if call == ast.NoNode {
		return false
	}
	recv, method := classify.CalleeName(c.Tree, call)
	return promiseCombinators[method] && classify.IsEffectNamespace(recv)
}

func asyncEvaluators() []Evaluator {
	return []Evaluator{
		{
			Name:  "async-generator-in-gen",
			Rules: []string{"async-generator-in-gen"},
			Kinds: []ast.Kind{ast.CallExpr},
			Gated: true,
			Check: func(c *Context, id ast.NodeID) []Event {
				t := c.Tree
				if !classify.IsGenCall(t, id) {
					return nil
				}
				if fn := classify.GenFunction(t, id); fn != ast.NoNode && t.Has(fn, ast.FlagAsync) {
					return c.one("async-generator-in-gen", fn)
				}
				return nil
			},
		},
		{
			Name:  "await-in-effect",
			Rules: []string{"await-in-effect"},
			Kinds: []ast.Kind{ast.AwaitExpr},
			Gated: true,
			Check: func(c *Context, id ast.NodeID) []Event {
				if c.inEffect(id) && !c.inAwaitingCallback() {
					return c.one("await-in-effect", id)
				}
				return nil
			},
		},
		{
			// One shape, two discoverable rule ids.
			Name:  "runtime-inside-effect",
			Rules: []string{"run-promise-inside-effect", "nested-runtime-execution"},
			Kinds: []ast.Kind{ast.CallExpr},
			Gated: true,
			Check: func(c *Context, id ast.NodeID) []Event {
				if classify.IsRunCall(c.Tree, id) && c.inEffect(id) {
					return []Event{
						c.event("run-promise-inside-effect", id),
						c.event("nested-runtime-execution", id),
					}
				}
				return nil
			},
		},
		{
			Name:  "set-timeout-in-effect",
			Rules: []string{"set-timeout-in-effect"},
			Kinds: []ast.Kind{ast.CallExpr},
			Gated: true,
			Check: func(c *Context, id ast.NodeID) []Event {
				t := c.Tree
				if calleeIs(t, id, "setTimeout", "setInterval", "globalThis.setTimeout", "window.setTimeout") && c.inEffect(id) {
					return c.one("set-timeout-in-effect", id)
				}
				return nil
			},
		},
		{
			Name:  "new-promise-in-effect",
			Rules: []string{"new-promise-in-effect"},
			Kinds: []ast.Kind{ast.NewExpr},
			Gated: true,
			Check: func(c *Context, id ast.NodeID) []Event {
				if c.Tree.IsIdent(classify.StripTypeArgs(c.Tree, c.Tree.Callee(id)), "Promise") && c.inEffect(id) && !c.inAwaitingCallback() {
					return c.one("new-promise-in-effect", id)
				}
				return nil
			},
		},
	}
}

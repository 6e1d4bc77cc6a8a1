package rules

import (
	"path"

	"effectlint/internal/ast"
	"effectlint/internal/classify"
)

func concurrencyEvaluators() []Evaluator {
	return []Evaluator{
		{
			Name:  "promise-all-in-effect",
			Rules: []string{"promise-all-in-effect"},
			Kinds: []ast.Kind{ast.CallExpr},
			Gated: true,
			Check: func(c *Context, id ast.NodeID) []Event {
				if calleeIs(c.Tree, id, "Promise.all", "Promise.allSettled", "Promise.race", "Promise.any") && c.inEffect(id) {
					return c.one("promise-all-in-effect", id)
				}
				return nil
			},
		},
		{
			Name:  "unbounded-concurrency",
			Rules: []string{"unbounded-concurrency"},
			Kinds: []ast.Kind{ast.PropertyAssign},
			Gated: true,
			Check: func(c *Context, id ast.NodeID) []Event {
				t := c.Tree
				if propertyName(t, t.Kid(id, 0)) != "concurrency" {
					return nil
				}
				if v, ok := t.StringValue(t.Kid(id, 1)); ok && v == "unbounded" {
					return c.one("unbounded-concurrency", id)
				}
				return nil
			},
		},
		{
			Name:  "fork-result-discarded",
			Rules: []string{"fork-result-discarded"},
			Kinds: []ast.Kind{ast.ExprStmt},
			Gated: true,
			Check: func(c *Context, id ast.NodeID) []Event {
				t := c.Tree
				expr := t.Unparen(t.Kid(id, 0))
				if t.Kind(expr) == ast.YieldExpr && t.Has(expr, ast.FlagDelegate) {
					expr = t.Unparen(t.Kid(expr, 0))
				}
				if calleeIs(t, expr, "Effect.fork", "Effect.forkDaemon") {
					return c.one("fork-result-discarded", expr)
				}
				return nil
			},
		},
		{
			Name:  "ref-unsafe-make",
			Rules: []string{"ref-unsafe-make"},
			Kinds: []ast.Kind{ast.CallExpr},
			Gated: true,
			Check: func(c *Context, id ast.NodeID) []Event {
				if calleeIs(c.Tree, id, "Ref.unsafeMake", "SynchronizedRef.unsafeMake", "SubscriptionRef.unsafeMake") &&
					!c.File.IsAtModuleScope(id, c.Stack) {
					return c.one("ref-unsafe-make", id)
				}
				return nil
			},
		},
	}
}

// releaseIsNoop reports whether a release function does nothing.
func releaseIsNoop(t *ast.Tree, fn ast.NodeID) bool {
	body := t.FuncBody(fn)
	if t.Kind(body) == ast.Block {
		return len(t.Kids(body)) == 0
	}
	switch t.DottedName(t.Unparen(body)) {
	case "Effect.void", "Effect.unit":
		return true
	}
	return false
}

func resourceEvaluators() []Evaluator {
	return []Evaluator{
		{
			Name:  "acquire-without-release",
			Rules: []string{"acquire-without-release"},
			Kinds: []ast.Kind{ast.CallExpr},
			Gated: true,
			Check: func(c *Context, id ast.NodeID) []Event {
				t := c.Tree
				if !calleeIs(t, id, "Effect.acquireRelease") {
					return nil
				}
				args := t.Args(id)
				if len(args) == 0 {
					return c.one("acquire-without-release", id)
				}
				if fn := CallbackArg(t, id); fn != ast.NoNode && releaseIsNoop(t, fn) {
					return c.one("acquire-without-release", id)
				}
				return nil
			},
		},
		{
			Name:  "run-in-cleanup",
			Rules: []string{"run-in-cleanup"},
			Kinds: []ast.Kind{ast.CallExpr},
			Gated: true,
			Check: func(c *Context, id ast.NodeID) []Event {
				if classify.IsRunCall(c.Tree, id) && c.File.IsInsideResourceCleanup(id, c.Stack) {
					return c.one("run-in-cleanup", id)
				}
				return nil
			},
		},
		{
			Name:  "throw-in-cleanup",
			Rules: []string{"throw-in-cleanup"},
			Kinds: []ast.Kind{ast.ThrowStmt},
			Gated: true,
			Check: func(c *Context, id ast.NodeID) []Event {
				if c.File.IsInsideResourceCleanup(id, c.Stack) {
					return c.one("throw-in-cleanup", id)
				}
				return nil
			},
		},
	}
}

// Entry point files may run the program at module scope.
var entryPoints = map[string]bool{
	"main.ts": true, "index.ts": true, "cli.ts": true, "server.ts": true, "main.mts": true, "index.mts": true,
}

func serviceEvaluators() []Evaluator {
	return []Evaluator{
		{
			Name:  "run-at-module-scope",
			Rules: []string{"run-at-module-scope"},
			Kinds: []ast.Kind{ast.CallExpr},
			Gated: true,
			Check: func(c *Context, id ast.NodeID) []Event {
				t := c.Tree
				if !classify.IsRunCall(t, id) || entryPoints[path.Base(c.File.Filename())] {
					return nil
				}
				if _, method := classify.CalleeName(t, id); method == "runMain" {
					return nil
				}
				if c.File.IsAtModuleScope(id, c.Stack) {
					return c.one("run-at-module-scope", id)
				}
				return nil
			},
		},
		{
			Name:  "run-in-service-definition",
			Rules: []string{"run-in-service-definition"},
			Kinds: []ast.Kind{ast.CallExpr},
			Gated: true,
			Check: func(c *Context, id ast.NodeID) []Event {
				if classify.IsRunCall(c.Tree, id) && c.File.IsInsideServiceDefinition(id, c.Stack) {
					return c.one("run-in-service-definition", id)
				}
				return nil
			},
		},
		{
			Name:  "generic-tag-usage",
			Rules: []string{"generic-tag-usage"},
			Kinds: []ast.Kind{ast.CallExpr},
			Gated: true,
			Check: func(c *Context, id ast.NodeID) []Event {
				if calleeIs(c.Tree, id, "Context.GenericTag") {
					return c.one("generic-tag-usage", id)
				}
				return nil
			},
		},
		{
			Name:  "switch-on-tag",
			Rules: []string{"switch-on-tag"},
			Kinds: []ast.Kind{ast.SwitchStmt},
			Gated: true,
			Check: func(c *Context, id ast.NodeID) []Event {
				t := c.Tree
				disc := t.Unparen(t.Kid(id, 0))
				if t.Kind(disc) == ast.MemberExpr && t.IsIdent(t.Kid(disc, 1), "_tag") {
					return c.one("switch-on-tag", id)
				}
				return nil
			},
		},
	}
}

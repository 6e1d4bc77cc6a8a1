package rules

import (
	"strings"

	"effectlint/internal/ast"
)

func validationEvaluators() []Evaluator {
	return []Evaluator{
		{
			Name:  "json-parse-unvalidated",
			Rules: []string{"json-parse-unvalidated"},
			Kinds: []ast.Kind{ast.CallExpr},
			Gated: true,
			Check: func(c *Context, id ast.NodeID) []Event {
				t := c.Tree
				if !calleeIs(t, id, "JSON.parse") {
					return nil
				}
				// Decoded right away: Schema.decodeUnknown(S)(JSON.parse(s)).
				if parent := c.Stack.Parent(); t.Kind(parent) == ast.CallExpr {
					inner := t.Callee(parent)
					if t.Kind(inner) == ast.CallExpr && strings.HasPrefix(t.DottedName(t.Callee(inner)), "Schema.") {
						return nil
					}
				}
				return c.one("json-parse-unvalidated", id)
			},
		},
		{
			Name:  "schema-decode-sync-in-effect",
			Rules: []string{"schema-decode-sync-in-effect"},
			Kinds: []ast.Kind{ast.CallExpr},
			Gated: true,
			Check: func(c *Context, id ast.NodeID) []Event {
				if calleeIs(c.Tree, id, "Schema.decodeSync", "Schema.decodeUnknownSync", "Schema.encodeSync", "Schema.validateSync") &&
					c.inEffect(id) {
					return c.one("schema-decode-sync-in-effect", id)
				}
				return nil
			},
		},
		{
			Name:  "process-env-in-effect",
			Rules: []string{"process-env-in-effect"},
			Kinds: []ast.Kind{ast.MemberExpr, ast.IndexExpr},
			Gated: true,
			Check: func(c *Context, id ast.NodeID) []Event {
				if c.Tree.DottedName(c.Tree.Kid(id, 0)) == "process.env" && c.inEffect(id) {
					return c.one("process-env-in-effect", id)
				}
				return nil
			},
		},
		{
			Name:  "schema-any",
			Rules: []string{"schema-any"},
			Kinds: []ast.Kind{ast.MemberExpr},
			Gated: true,
			Check: func(c *Context, id ast.NodeID) []Event {
				if c.Tree.DottedName(id) == "Schema.Any" {
					return c.one("schema-any", id)
				}
				return nil
			},
		},
	}
}

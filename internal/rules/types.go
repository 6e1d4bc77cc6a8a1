package rules

import (
	"strings"

	"effectlint/internal/ast"
	"effectlint/internal/token"
)

// TSIgnoreComments returns the comments carrying a @ts-ignore directive.
func TSIgnoreComments(t *ast.Tree) []token.Trivia {
	var out []token.Trivia
	for _, c := range t.Comments {
		body := strings.TrimLeft(strings.TrimPrefix(strings.TrimPrefix(c.Text, "//"), "/*"), " \t*")
		if strings.HasPrefix(body, "@ts-ignore") {
			out = append(out, c)
		}
	}
	return out
}

func typeEvaluators() []Evaluator {
	return []Evaluator{
		{
			Name:  "any-type",
			Rules: []string{"any-type"},
			Kinds: []ast.Kind{ast.TypeRef},
			Gated: true,
			Check: func(c *Context, id ast.NodeID) []Event {
				if c.Tree.Text(id) == "any" {
					return c.one("any-type", id)
				}
				return nil
			},
		},
		{
			Name:  "non-null-assertion",
			Rules: []string{"non-null-assertion"},
			Kinds: []ast.Kind{ast.NonNullExpr},
			Gated: true,
			Check: func(c *Context, id ast.NodeID) []Event {
				return c.one("non-null-assertion", id)
			},
		},
		{
			Name:  "ts-ignore",
			Rules: []string{"ts-ignore"},
			Kinds: []ast.Kind{ast.File},
			Gated: true,
			Check: func(c *Context, _ ast.NodeID) []Event {
				var out []Event
				for _, tr := range TSIgnoreComments(c.Tree) {
					out = append(out, Event{RuleID: "ts-ignore", Span: tr.Span})
				}
				return out
			},
		},
		{
			Name:  "cast-to-effect",
			Rules: []string{"cast-to-effect"},
			Kinds: []ast.Kind{ast.AsExpr},
			Gated: true,
			Check: func(c *Context, id ast.NodeID) []Event {
				t := c.Tree
				if t.Text(id) == "satisfies" {
					return nil
				}
				refs := t.Kids(t.Kid(id, 1))
				if len(refs) == 0 {
					return nil
				}
				switch t.Text(refs[0]) {
				case "Effect", "Effect.Effect":
					return c.one("cast-to-effect", id)
				}
				return nil
			},
		},
	}
}

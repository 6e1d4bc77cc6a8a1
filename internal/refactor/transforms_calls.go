package refactor

import (
	"strings"

	"effectlint/internal/ast"
	"effectlint/internal/classify"
	"effectlint/internal/rules"
)

func removeUnnecessaryPipe() Transform {
	return Transform{
		FixID: "remove-unnecessary-pipe",
		Rules: []string{"unnecessary-pipe"},
		Rewrite: func(u *Unit, m Match) []Edit {
			t := u.Tree
			call := m.Node
			if !rules.IsUnnecessaryPipe(t, call) {
				return nil
			}
			callee := t.Callee(call)
			inner := t.Arg(call, 0)
			if t.Kind(callee) == ast.MemberExpr {
				inner = t.Kid(callee, 0)
			}
			return []Edit{u.Replace(call, inner)}
		},
	}
}

var lambdaParams = []string{"x", "a", "value", "arg"}

// explicitLambda wraps a bare function reference in (x) => f(x) so the
// function only ever sees one argument.
func explicitLambda() Transform {
	return Transform{
		FixID: "explicit-lambda",
		Rules: []string{"tacit-combinator-argument"},
		Rewrite: func(u *Unit, m Match) []Edit {
			t := u.Tree
			ref := m.Node
			name := freshName(t, ref)
			s := u.Synth
			repl := s.Arrow([]string{name}, s.Call(ref, s.Ident(name)))
			return []Edit{u.Replace(ref, repl)}
		},
	}
}

// freshName picks a parameter name not used inside ref.
func freshName(t *ast.Tree, ref ast.NodeID) string {
	used := make(map[string]bool)
	ast.Inspect(t, ref, func(id ast.NodeID) bool {
		if t.Kind(id) == ast.Ident {
			used[t.Text(id)] = true
		}
		return true
	})
	for _, n := range lambdaParams {
		if !used[n] {
			return n
		}
	}
	name := "x"
	for used[name] {
		name += "_"
	}
	return name
}

// combinatorName returns the property identifier of a recv.method callee.
func combinatorName(t *ast.Tree, call ast.NodeID) ast.NodeID {
	callee := classify.StripTypeArgs(t, t.Callee(call))
	if t.Kind(callee) != ast.MemberExpr {
		return ast.NoNode
	}
	return t.Kid(callee, 1)
}

// renameCombinator renames the method of a matched combinator call.
func renameCombinator(fixID, rule, from, to string) Transform {
	return Transform{
		FixID: fixID,
		Rules: []string{rule},
		Rewrite: func(u *Unit, m Match) []Edit {
			t := u.Tree
			call := m.Node
			if t.Kind(call) != ast.CallExpr {
				return nil
			}
			prop := combinatorName(t, call)
			if !matchesAny(t, prop, from) {
				return nil
			}
			return []Edit{u.ReplaceText(t.Span(prop), to)}
		},
	}
}

func matchesAny(t *ast.Tree, id ast.NodeID, names string) bool {
	for _, n := range strings.Split(names, ",") {
		if t.IsIdent(id, n) {
			return true
		}
	}
	return false
}

// flatMapToMap renames flatMap to map and unwraps the Effect.succeed the
// callback returns.
func flatMapToMap() Transform {
	return Transform{
		FixID: "flatmap-to-map",
		Rules: []string{"flatmap-succeed"},
		Rewrite: func(u *Unit, m Match) []Edit {
			t := u.Tree
			call := m.Node
			prop := combinatorName(t, call)
			if !t.IsIdent(prop, "flatMap") {
				return nil
			}
			fn := rules.CallbackArg(t, call)
			succeed := rules.ReturnedExpr(t, fn)
			if fn == ast.NoNode || len(t.Args(succeed)) != 1 || t.Kind(t.Arg(succeed, 0)) == ast.SpreadElement {
				return nil
			}
			return []Edit{
				u.ReplaceText(t.Span(prop), "map"),
				u.Replace(succeed, t.Arg(succeed, 0)),
			}
		},
	}
}

func boundConcurrency() Transform {
	return Transform{
		FixID: "bound-concurrency",
		Rules: []string{"unbounded-concurrency"},
		Rewrite: func(u *Unit, m Match) []Edit {
			value := u.Tree.Kid(m.Node, 1)
			if value == ast.NoNode {
				return nil
			}
			return []Edit{u.Replace(value, u.Synth.Number("10"))}
		},
	}
}

// useDurationString replaces a millisecond literal with a duration string.
func useDurationString() Transform {
	return Transform{
		FixID: "use-duration-string",
		Rules: []string{"sleep-number-literal"},
		Rewrite: func(u *Unit, m Match) []Edit {
			raw := strings.ReplaceAll(u.Tree.Text(m.Node), "_", "")
			if raw == "" || strings.Trim(raw, "0123456789") != "" {
				return nil
			}
			return []Edit{u.Replace(m.Node, u.Synth.String(raw+" millis"))}
		},
	}
}

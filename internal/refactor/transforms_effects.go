package refactor

import (
	"effectlint/internal/ast"
	"effectlint/internal/classify"
)

func addYieldStar() Transform {
	return Transform{
		FixID: "add-yield-star",
		Rules: []string{"yield-without-star"},
		Rewrite: func(u *Unit, m Match) []Edit {
			operand := u.Tree.Kid(m.Node, 0)
			if operand == ast.NoNode {
				return nil
			}
			return []Edit{u.Replace(m.Node, u.Synth.Yield(operand, true))}
		},
	}
}

// removeGenAdapter drops the adapter parameter of a generator and unwraps
// every adapter call in its body. Bodies that use the adapter in any other
// way are left alone.
func removeGenAdapter() Transform {
	return Transform{
		FixID: "remove-gen-adapter",
		Rules: []string{"gen-adapter-usage"},
		Rewrite: func(u *Unit, m Match) []Edit {
			t := u.Tree
			params := u.Parent(m.Node)
			fn := u.Parent(params)
			binding := t.Kid(m.Node, 1)
			if len(t.Kids(params)) != 1 || t.Kind(binding) != ast.Ident {
				return nil
			}
			name := t.Text(binding)
			edits := []Edit{u.ReplaceText(t.Span(params), "()")}
			clean := true
			ast.Inspect(t, t.FuncBody(fn), func(id ast.NodeID) bool {
				if !clean {
					return false
				}
				if !t.IsIdent(id, name) {
					return true
				}
				parent := u.Parent(id)
				switch {
				case t.Kind(parent) == ast.CallExpr && t.Callee(parent) == id && len(t.Args(parent)) == 1 &&
					t.Kind(t.Arg(parent, 0)) != ast.SpreadElement:
					edits = append(edits, u.Replace(parent, t.Arg(parent, 0)))
				case t.Kind(parent) == ast.MemberExpr && t.Kid(parent, 1) == id,
					t.Kind(parent) == ast.PropertyAssign && t.Kid(parent, 0) == id:
				default:
					clean = false
				}
				return true
			})
			if !clean {
				return nil
			}
			return edits
		},
	}
}

// useEffectFail turns `throw e` inside a generator body into a typed failure.
func useEffectFail() Transform {
	return Transform{
		FixID: "use-effect-fail",
		Rules: []string{"throw-in-effect-gen"},
		Rewrite: func(u *Unit, m Match) []Edit {
			arg := u.Tree.Kid(m.Node, 0)
			if arg == ast.NoNode {
				return nil
			}
			s := u.Synth
			fail := s.Call(s.Dotted("Effect.fail"), arg)
			return []Edit{u.Replace(m.Node, s.Return(s.Yield(fail, true)))}
		},
	}
}

var consoleLoggers = map[string]string{
	"log":   "Effect.log",
	"info":  "Effect.logInfo",
	"warn":  "Effect.logWarning",
	"error": "Effect.logError",
	"debug": "Effect.logDebug",
}

// replaceConsoleLog rewrites console statements inside a generator body to
// the matching effect logger.
func replaceConsoleLog() Transform {
	return Transform{
		FixID: "replace-console-log",
		Rules: []string{"console-in-effect"},
		Rewrite: func(u *Unit, m Match) []Edit {
			t := u.Tree
			call := m.Node
			if t.Kind(u.Parent(call)) != ast.ExprStmt || t.Has(t.Callee(call), ast.FlagOptionalChain) {
				return nil
			}
			_, method := classify.CalleeName(t, call)
			logger, ok := consoleLoggers[method]
			if !ok || !u.File.IsInsideEffectGen(call, u.Stack(call)) {
				return nil
			}
			s := u.Synth
			repl := s.Yield(s.Call(s.Dotted(logger), t.Args(call)...), true)
			return []Edit{u.Replace(call, repl)}
		},
	}
}

// yieldInsteadOfRun replaces a nested runtime call inside a generator body
// with a delegation to the effect it would run.
func yieldInsteadOfRun() Transform {
	return Transform{
		FixID: "yield-instead-of-run",
		Rules: []string{"run-promise-inside-effect", "nested-runtime-execution", "run-in-service-definition"},
		Rewrite: func(u *Unit, m Match) []Edit {
			t := u.Tree
			call := m.Node
			recv, method := classify.CalleeName(t, call)
			args := t.Args(call)
			if recv != "Effect" || len(args) != 1 || t.Kind(args[0]) == ast.SpreadElement {
				return nil
			}
			if !u.File.IsInsideEffectGen(call, u.Stack(call)) {
				return nil
			}
			s := u.Synth
			var inner ast.NodeID
			switch method {
			case "runPromise", "runSync":
				inner = args[0]
			case "runPromiseExit", "runSyncExit":
				inner = s.Call(s.Dotted("Effect.exit"), args[0])
			case "runFork":
				inner = s.Call(s.Dotted("Effect.fork"), args[0])
			default:
				return nil
			}
			return []Edit{u.Replace(call, s.Yield(inner, true))}
		},
	}
}

// genToSync turns a generator that never yields into Effect.sync. A body
// that is a single return becomes a concise arrow unless it carries comments.
func genToSync() Transform {
	return Transform{
		FixID: "gen-to-sync",
		Rules: []string{"effect-gen-no-yield"},
		Rewrite: func(u *Unit, m Match) []Edit {
			t := u.Tree
			call := m.Node
			if classify.CalleeDotted(t, call) != "Effect.gen" || len(t.Args(call)) != 1 {
				return nil
			}
			fn := t.Unparen(t.Arg(call, 0))
			if t.Kind(fn) != ast.FuncExpr || t.Has(fn, ast.FlagAsync) || len(t.Kids(t.FuncParams(fn))) > 0 {
				return nil
			}
			body := t.FuncBody(fn)
			if usesFunctionScope(t, body) {
				return nil
			}
			arrowBody := body
			stmts := t.Kids(body)
			if len(stmts) == 1 && t.Kind(stmts[0]) == ast.ReturnStmt && t.Kid(stmts[0], 0) != ast.NoNode && !hasComments(t, body) {
				arrowBody = t.Kid(stmts[0], 0)
			}
			s := u.Synth
			repl := s.Call(s.Dotted("Effect.sync"), s.Arrow(nil, arrowBody))
			return []Edit{u.Replace(call, repl)}
		},
	}
}

// usesFunctionScope reports whether body refers to this or arguments of its
// own function, which an arrow function would rebind.
func usesFunctionScope(t *ast.Tree, body ast.NodeID) bool {
	found := ast.Find(t, body, func(id ast.NodeID) bool {
		return t.Kind(id) == ast.ThisExpr || t.IsIdent(id, "arguments")
	}, func(id ast.NodeID) bool {
		k := t.Kind(id)
		return k != ast.FuncExpr && k != ast.FuncDecl && k != ast.MethodDecl && k != ast.ClassBody
	})
	return found != ast.NoNode
}

func hasComments(t *ast.Tree, id ast.NodeID) bool {
	sp := t.Span(id)
	for _, c := range t.Comments {
		if c.Span.Start >= sp.Start && c.Span.End <= sp.End {
			return true
		}
	}
	return false
}

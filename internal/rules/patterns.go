package rules

import (
	"unicode"
	"unicode/utf8"

	"effectlint/internal/ast"
	"effectlint/internal/classify"
)

// yieldsIn reports whether fn's body contains a yield of its own, not
// counting nested functions.
func yieldsIn(t *ast.Tree, fn ast.NodeID) bool {
	body := t.FuncBody(fn)
	found := ast.Find(t, body, func(id ast.NodeID) bool {
		return t.Kind(id) == ast.YieldExpr
	}, func(id ast.NodeID) bool {
		return !t.Kind(id).IsFunctionLike() && t.Kind(id) != ast.ClassBody
	})
	return found != ast.NoNode
}

// Combinators whose last argument is a mapping function, never an effect value.
var mappingCombinators = []string{"map", "flatMap", "tap", "forEach", "filter", "mapError", "tapError"}

// isTacitReference reports whether arg names a function without calling it:
// a lower-case identifier or a member chain ending in one.
func isTacitReference(t *ast.Tree, arg ast.NodeID) bool {
	var name string
	switch t.Kind(arg) {
	case ast.Ident:
		name = t.Text(arg)
	case ast.MemberExpr:
		if t.DottedName(arg) == "" {
			return false
		}
		name = t.Text(t.Kid(arg, 1))
	default:
		return false
	}
	r, _ := utf8.DecodeRuneInString(name)
	return unicode.IsLower(r) && name != "undefined"
}

func patternEvaluators() []Evaluator {
	return []Evaluator{
		{
			Name:  "effect-gen-no-yield",
			Rules: []string{"effect-gen-no-yield"},
			Kinds: []ast.Kind{ast.CallExpr},
			Gated: true,
			Check: func(c *Context, id ast.NodeID) []Event {
				t := c.Tree
				if !classify.IsGenCall(t, id) {
					return nil
				}
				if fn := classify.GenFunction(t, id); fn != ast.NoNode && !yieldsIn(t, fn) {
					return c.one("effect-gen-no-yield", id)
				}
				return nil
			},
		},
		{
			Name:  "yield-without-star",
			Rules: []string{"yield-without-star"},
			Kinds: []ast.Kind{ast.YieldExpr},
			Gated: true,
			Check: func(c *Context, id ast.NodeID) []Event {
				if !c.Tree.Has(id, ast.FlagDelegate) && c.Tree.Kid(id, 0) != ast.NoNode && c.File.IsInsideEffectGen(id, c.Stack) {
					return c.one("yield-without-star", id)
				}
				return nil
			},
		},
		{
			Name:  "gen-adapter-usage",
			Rules: []string{"gen-adapter-usage"},
			Kinds: []ast.Kind{ast.CallExpr},
			Gated: true,
			Check: func(c *Context, id ast.NodeID) []Event {
				t := c.Tree
				if !calleeIs(t, id, "Effect.gen", "Stream.gen", "STM.gen", "Option.gen", "Either.gen") {
					return nil
				}
				fn := classify.GenFunction(t, id)
				if params := t.Kids(t.FuncParams(fn)); len(params) > 0 {
					return c.one("gen-adapter-usage", params[0])
				}
				return nil
			},
		},
		{
			Name:  "unnecessary-pipe",
			Rules: []string{"unnecessary-pipe"},
			Kinds: []ast.Kind{ast.CallExpr},
			Gated: true,
			Check: func(c *Context, id ast.NodeID) []Event {
				if IsUnnecessaryPipe(c.Tree, id) {
					return c.one("unnecessary-pipe", id)
				}
				return nil
			},
		},
		{
			Name:  "tacit-combinator-argument",
			Rules: []string{"tacit-combinator-argument"},
			Kinds: []ast.Kind{ast.CallExpr},
			Gated: true,
			Check: func(c *Context, id ast.NodeID) []Event {
				t := c.Tree
				if _, ok := effectCall(t, id, mappingCombinators...); !ok {
					return nil
				}
				args := t.Args(id)
				if len(args) == 0 {
					return nil
				}
				if last := args[len(args)-1]; isTacitReference(t, last) {
					return c.one("tacit-combinator-argument", last)
				}
				return nil
			},
		},
		{
			Name:  "map-returns-effect",
			Rules: []string{"map-returns-effect"},
			Kinds: []ast.Kind{ast.CallExpr},
			Gated: true,
			Check: func(c *Context, id ast.NodeID) []Event {
				t := c.Tree
				if _, ok := effectCall(t, id, "map"); !ok {
					return nil
				}
				if fn := CallbackArg(t, id); fn != ast.NoNode && isEffectConstructor(t, ReturnedExpr(t, fn)) {
					return c.one("map-returns-effect", id)
				}
				return nil
			},
		},
		{
			Name:  "flatmap-succeed",
			Rules: []string{"flatmap-succeed"},
			Kinds: []ast.Kind{ast.CallExpr},
			Gated: true,
			Check: func(c *Context, id ast.NodeID) []Event {
				t := c.Tree
				if _, ok := effectCall(t, id, "flatMap"); !ok {
					return nil
				}
				if fn := CallbackArg(t, id); fn != ast.NoNode && calleeIs(t, ReturnedExpr(t, fn), "Effect.succeed") {
					return c.one("flatmap-succeed", id)
				}
				return nil
			},
		},
		{
			Name:  "sleep-number-literal",
			Rules: []string{"sleep-number-literal"},
			Kinds: []ast.Kind{ast.CallExpr},
			Gated: true,
			Check: func(c *Context, id ast.NodeID) []Event {
				t := c.Tree
				if calleeIs(t, id, "Effect.sleep") && t.Kind(t.Arg(id, 0)) == ast.NumberLit {
					return c.one("sleep-number-literal", t.Arg(id, 0))
				}
				return nil
			},
		},
		{
			Name:  "console-in-effect",
			Rules: []string{"console-in-effect"},
			Kinds: []ast.Kind{ast.CallExpr},
			Gated: true,
			Check: func(c *Context, id ast.NodeID) []Event {
				recv, _ := classify.CalleeName(c.Tree, id)
				if recv == "console" && c.inEffect(id) {
					return c.one("console-in-effect", id)
				}
				return nil
			},
		},
	}
}

// IsUnnecessaryPipe matches pipe(x) and x.pipe().
func IsUnnecessaryPipe(t *ast.Tree, call ast.NodeID) bool {
	if t.Kind(call) != ast.CallExpr {
		return false
	}
	callee := t.Callee(call)
	n := len(t.Args(call))
	switch t.Kind(callee) {
	case ast.Ident:
		return t.Text(callee) == "pipe" && n == 1 && t.Kind(t.Arg(call, 0)) != ast.SpreadElement
	case ast.MemberExpr:
		return t.IsIdent(t.Kid(callee, 1), "pipe") && n == 0 && !t.Has(callee, ast.FlagOptionalChain)
	}
	return false
}

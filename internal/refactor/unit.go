package refactor

import (
	"slices"

	"effectlint/internal/ast"
	"effectlint/internal/classify"
	"effectlint/internal/printer"
	"effectlint/internal/rules"
	"effectlint/internal/source"
)

// Match is a rule event a transform rewrites.
type Match = rules.Event

// Unit is one parsed revision of a file as seen by a transform.
type Unit struct {
	Tree  *ast.Tree
	File  *classify.File
	Synth *ast.Synth

	events  []rules.Event
	parents []ast.NodeID
}

func newUnit(tree *ast.Tree, filename string, reg *rules.Registry) *Unit {
	file := classify.New(tree, filename)
	u := &Unit{
		Tree:    tree,
		File:    file,
		Synth:   ast.NewSynth(tree),
		events:  reg.Run(file),
		parents: make([]ast.NodeID, tree.Nodes.Len()+1),
	}
	ast.Walk(tree, tree.Root, func(id ast.NodeID, stack *ast.Stack) bool {
		u.parents[id] = stack.Parent()
		return true
	})
	return u
}

// matches returns the events of ruleIDs, one per node, in walk order.
func (u *Unit) matches(ruleIDs []string) []Match {
	type key struct {
		node  ast.NodeID
		start uint32
	}
	seen := make(map[key]bool)
	var out []Match
	for _, ev := range u.events {
		if !slices.Contains(ruleIDs, ev.RuleID) {
			continue
		}
		k := key{ev.Node, ev.Span.Start}
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, ev)
	}
	return out
}

// Parent returns the parent of an original node.
func (u *Unit) Parent(id ast.NodeID) ast.NodeID {
	if int(id) >= len(u.parents) {
		return ast.NoNode
	}
	return u.parents[id]
}

// Stack returns the ancestors of id, root first.
func (u *Unit) Stack(id ast.NodeID) *ast.Stack {
	var ids []ast.NodeID
	for p := u.Parent(id); p != ast.NoNode; p = u.Parent(p) {
		ids = append(ids, p)
	}
	slices.Reverse(ids)
	return ast.StackOf(ids...)
}

// Replace swaps the original node id for repl, printed at id's position.
func (u *Unit) Replace(id, repl ast.NodeID) Edit {
	sp := u.Tree.Span(id)
	if u.needsParens(id, repl) {
		repl = u.Synth.Paren(repl)
	}
	text := printer.Print(u.Tree, repl, printer.Options{BaseIndent: printer.LineIndent(u.Tree, sp.Start)})
	return Edit{Span: sp, NewText: text, OldText: u.Tree.Source(id)}
}

// ReplaceText substitutes text for the exact bytes under sp.
func (u *Unit) ReplaceText(sp source.Span, text string) Edit {
	return Edit{Span: sp, NewText: text, OldText: u.Tree.File.Text(sp)}
}

// Delete removes the statement id together with the line break after it.
func (u *Unit) Delete(id ast.NodeID) Edit {
	sp := u.Tree.Span(id)
	content := u.Tree.File.Content
	end := int(sp.End)
	if end < len(content) && content[end] == '\r' {
		end++
	}
	if end < len(content) && content[end] == '\n' {
		end++
	}
	sp.End = uint32(end)
	return u.ReplaceText(sp, "")
}

// Binding strength of a replacement, loosest last.
const (
	bindTight = iota
	bindUnary
	bindBinary
	bindLoose
)

func bindingOf(t *ast.Tree, id ast.NodeID) int {
	switch t.Kind(id) {
	case ast.YieldExpr, ast.ArrowFunc, ast.AssignExpr, ast.SequenceExpr, ast.CondExpr:
		return bindLoose
	case ast.BinaryExpr, ast.AsExpr:
		return bindBinary
	case ast.UnaryExpr, ast.AwaitExpr, ast.UpdateExpr:
		return bindUnary
	case ast.NewExpr:
		if t.Has(id, ast.FlagNoArgs) {
			return bindUnary
		}
	}
	return bindTight
}

// needsParens reports whether repl must be parenthesized to take the place
// of id inside id's parent.
func (u *Unit) needsParens(id, repl ast.NodeID) bool {
	t := u.Tree
	parent := u.Parent(id)
	bind := bindingOf(t, repl)
	switch t.Kind(parent) {
	case ast.MemberExpr, ast.IndexExpr, ast.CallExpr, ast.NewExpr, ast.TaggedTemplate:
		if t.Kid(parent, 0) == id {
			return bind != bindTight
		}
		return t.Kind(repl) == ast.SequenceExpr
	case ast.NonNullExpr:
		return bind != bindTight
	case ast.UnaryExpr, ast.AwaitExpr, ast.UpdateExpr:
		return bind > bindUnary
	case ast.BinaryExpr, ast.AsExpr:
		return bind >= bindBinary
	case ast.CondExpr:
		if t.Kid(parent, 0) == id {
			return bind >= bindLoose
		}
		return t.Kind(repl) == ast.SequenceExpr
	case ast.ArrowFunc:
		return t.Kind(repl) == ast.ObjectLit || t.Kind(repl) == ast.SequenceExpr
	case ast.ExprStmt:
		k := t.Kind(repl)
		return k == ast.ObjectLit || k == ast.FuncExpr || k == ast.ClassExpr
	case ast.ArrayLit, ast.PropertyAssign, ast.VarDeclarator, ast.SpreadElement, ast.Param:
		return t.Kind(repl) == ast.SequenceExpr
	}
	return false
}

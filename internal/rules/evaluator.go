package rules

import (
	"effectlint/internal/ast"
	"effectlint/internal/classify"
	"effectlint/internal/source"
)

// Event is one detection: a rule id at a node. Span is set for detections
// that have no node of their own, such as comments.
type Event struct {
	RuleID string
	Node   ast.NodeID
	Span   source.Span
}

// Context is what an evaluator sees at a node.
type Context struct {
	Tree  *ast.Tree
	File  *classify.File
	Stack *ast.Stack
}

// Evaluator is a pure detector over one or more node kinds.
type Evaluator struct {
	Name  string
	Rules []string // rule ids the evaluator may emit
	Kinds []ast.Kind
	// Gated evaluators only run in files that use the effect runtime.
	Gated bool
	Check func(ctx *Context, id ast.NodeID) []Event
}

func (c *Context) event(rule string, id ast.NodeID) Event {
	return Event{RuleID: rule, Node: id, Span: c.Tree.Span(id)}
}

func (c *Context) one(rule string, id ast.NodeID) []Event {
	return []Event{c.event(rule, id)}
}

// inEffect reports whether id runs inside an effect body or callback.
func (c *Context) inEffect(id ast.NodeID) bool {
	return c.File.IsInsideEffectfulBlock(id, c.Stack)
}

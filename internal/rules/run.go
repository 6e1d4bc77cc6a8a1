package rules

import (
	"effectlint/internal/ast"
	"effectlint/internal/classify"
)

// Run walks the file once and collects the events of every evaluator.
func (r *Registry) Run(file *classify.File) []Event {
	tree := file.Tree()
	if tree == nil || tree.Root == ast.NoNode {
		return nil
	}
	var events []Event
	ctx := &Context{Tree: tree, File: file}
	ast.Walk(tree, tree.Root, func(id ast.NodeID, stack *ast.Stack) bool {
		idx := r.dispatch[tree.Kind(id)]
		if len(idx) == 0 {
			return true
		}
		ctx.Stack = stack
		for _, i := range idx {
			ev := &r.evals[i]
			if ev.Gated && !file.IsEffectfulSource() {
				continue
			}
			events = append(events, ev.Check(ctx, id)...)
		}
		return true
	})
	return events
}

package rules

import (
	"fmt"
	"sync"

	"effectlint/internal/ast"
)

// Registry keeps evaluators in registration order together with the
// kind dispatch table built from them.
type Registry struct {
	evals    []Evaluator
	dispatch [ast.KindCount][]int
}

// NewRegistry builds a registry; evaluator names must be unique.
func NewRegistry(evals ...Evaluator) (*Registry, error) {
	r := &Registry{evals: make([]Evaluator, 0, len(evals))}
	seen := make(map[string]bool, len(evals))
	for _, ev := range evals {
		if ev.Name == "" || ev.Check == nil || len(ev.Kinds) == 0 {
			return nil, fmt.Errorf("evaluator %q is incomplete", ev.Name)
		}
		if seen[ev.Name] {
			return nil, fmt.Errorf("duplicate evaluator %q", ev.Name)
		}
		seen[ev.Name] = true
		idx := len(r.evals)
		r.evals = append(r.evals, ev)
		for _, k := range ev.Kinds {
			r.dispatch[k] = append(r.dispatch[k], idx)
		}
	}
	return r, nil
}

var (
	defaultOnce sync.Once
	defaultReg  *Registry
)

// Default returns the registry of built-in evaluators.
func Default() *Registry {
	defaultOnce.Do(func() {
		reg, err := NewRegistry(builtin()...)
		if err != nil {
			panic(err)
		}
		defaultReg = reg
	})
	return defaultReg
}

// Evaluators returns the registered evaluators in order.
func (r *Registry) Evaluators() []Evaluator {
	return append([]Evaluator(nil), r.evals...)
}

// For returns the evaluators subscribed to kind, in registration order.
func (r *Registry) For(kind ast.Kind) []Evaluator {
	idx := r.dispatch[kind]
	out := make([]Evaluator, len(idx))
	for i, j := range idx {
		out[i] = r.evals[j]
	}
	return out
}

// RuleIDs lists every rule id some evaluator can emit.
func (r *Registry) RuleIDs() []string {
	var out []string
	seen := make(map[string]bool)
	for _, ev := range r.evals {
		for _, id := range ev.Rules {
			if !seen[id] {
				seen[id] = true
				out = append(out, id)
			}
		}
	}
	return out
}

func builtin() []Evaluator {
	var out []Evaluator
	out = append(out, importEvaluators()...)
	out = append(out, errorEvaluators()...)
	out = append(out, asyncEvaluators()...)
	out = append(out, concurrencyEvaluators()...)
	out = append(out, resourceEvaluators()...)
	out = append(out, serviceEvaluators()...)
	out = append(out, patternEvaluators()...)
	out = append(out, typeEvaluators()...)
	out = append(out, validationEvaluators()...)
	return out
}

package classify

import "effectlint/internal/ast"

// ancestors iterates from the parent of node to the root, passing each
// ancestor together with the child through which it was reached.
func ancestors(node ast.NodeID, stack *ast.Stack, yield func(anc, child ast.NodeID) bool) {
	child := node
	for i := stack.Len() - 1; i >= 0; i-- {
		anc := stack.At(i)
		if !yield(anc, child) {
			return
		}
		child = anc
	}
}

// callOf returns the call a function is passed to as an argument, looking
// through parentheses and option objects such as { try: () => ... }, or NoNode.
func (f *File) callOf(fn ast.NodeID, stack *ast.Stack, depth int) ast.NodeID {
	t := f.tree
	child := fn
	for i := depth - 1; i >= 0; i-- {
		anc := stack.At(i)
		switch t.Kind(anc) {
		case ast.ParenExpr, ast.ObjectLit:
			child = anc
			continue
		case ast.PropertyAssign:
			if t.Kid(anc, 1) != child {
				return ast.NoNode
			}
			child = anc
			continue
		case ast.CallExpr:
			if argIndex(t, anc, child) >= 0 {
				return anc
			}
		}
		return ast.NoNode
	}
	return ast.NoNode
}

// depthOf returns the stack index of anc, or -1.
func depthOf(stack *ast.Stack, anc ast.NodeID) int {
	for i := stack.Len() - 1; i >= 0; i-- {
		if stack.At(i) == anc {
			return i
		}
	}
	return -1
}

type boundaryKind uint8

const (
	plainFunc boundaryKind = iota
	genFunc
	callbackFunc
)

// classifyFunc tells how a function ancestor relates to the effect code
// around it.
func (f *File) classifyFunc(fn ast.NodeID, stack *ast.Stack) boundaryKind {
	t := f.tree
	call := f.callOf(fn, stack, depthOf(stack, fn))
	if call == ast.NoNode {
		return plainFunc
	}
	if t.Has(fn, ast.FlagGenerator) && IsGenCall(t, call) {
		return genFunc
	}
	if IsCombinatorCall(t, call) {
		return callbackFunc
	}
	return plainFunc
}

// IsInsideEffectfulBlock reports whether node runs as part of an effect:
// the nearest enclosing function is an Effect.gen body or a combinator
// callback.
func (f *File) IsInsideEffectfulBlock(node ast.NodeID, stack *ast.Stack) bool {
	fn := f.EnclosingFunction(stack)
	return fn != ast.NoNode && f.classifyFunc(fn, stack) != plainFunc
}

// IsInsideCombinatorCallback reports whether the nearest enclosing function
// is a callback passed to a combinator.
func (f *File) IsInsideCombinatorCallback(node ast.NodeID, stack *ast.Stack) bool {
	fn := f.EnclosingFunction(stack)
	return fn != ast.NoNode && f.classifyFunc(fn, stack) == callbackFunc
}

// IsInsideEffectGen reports whether the nearest enclosing function is the
// generator body of a gen call.
func (f *File) IsInsideEffectGen(node ast.NodeID, stack *ast.Stack) bool {
	fn := f.EnclosingFunction(stack)
	return fn != ast.NoNode && f.classifyFunc(fn, stack) == genFunc
}

// EnclosingFunction returns the nearest function-like ancestor, or NoNode.
func (f *File) EnclosingFunction(stack *ast.Stack) ast.NodeID {
	for i := stack.Len() - 1; i >= 0; i-- {
		if id := stack.At(i); f.tree.Kind(id).IsFunctionLike() {
			return id
		}
	}
	return ast.NoNode
}

// IsInsideResourceCleanup reports whether node belongs to a finalizer: the
// release of acquireRelease or acquireUseRelease, or the argument of
// addFinalizer, ensuring or onExit. Plain functions on the way stop the search.
func (f *File) IsInsideResourceCleanup(node ast.NodeID, stack *ast.Stack) bool {
	t := f.tree
	result := false
	ancestors(node, stack, func(anc, child ast.NodeID) bool {
		switch kind := t.Kind(anc); {
		case kind == ast.CallExpr:
			if isCleanupArg(t, anc, child) {
				result = true
				return false
			}
		case kind.IsFunctionLike():
			if call := f.callOf(anc, stack, depthOf(stack, anc)); call != ast.NoNode && isCleanupArg(t, call, outerArg(t, call, anc)) {
				result = true
				return false
			}
			return f.classifyFunc(anc, stack) != plainFunc
		}
		return true
	})
	return result
}

// outerArg returns the argument of call that contains fn through parentheses.
func outerArg(t *ast.Tree, call, fn ast.NodeID) ast.NodeID {
	for _, arg := range t.Args(call) {
		if t.Unparen(arg) == fn {
			return arg
		}
	}
	return ast.NoNode
}

func isCleanupArg(t *ast.Tree, call, arg ast.NodeID) bool {
	recv, method := CalleeName(t, call)
	if recv != "" && !effectNamespaces[rootName(recv)] {
		return false
	}
	idx := argIndex(t, call, arg)
	if idx < 0 {
		return false
	}
	n := len(t.Args(call))
	switch method {
	case "acquireRelease":
		return idx == 1
	case "acquireUseRelease":
		return idx == 2
	case "addFinalizer":
		return idx == 0
	case "ensuring", "onExit":
		return idx == n-1
	}
	return false
}

// IsAtModuleScope reports whether no function, method or class body encloses node.
func (f *File) IsAtModuleScope(node ast.NodeID, stack *ast.Stack) bool {
	for i := stack.Len() - 1; i >= 0; i-- {
		switch k := f.tree.Kind(stack.At(i)); {
		case k.IsFunctionLike(), k == ast.ClassBody, k == ast.StaticBlock:
			return false
		}
	}
	return true
}

// IsInsideServiceDefinition reports whether node lies in the arguments of
// Effect.Service<...>()(...), a Context.Tag class, or a Layer constructor.
func (f *File) IsInsideServiceDefinition(node ast.NodeID, stack *ast.Stack) bool {
	t := f.tree
	result := false
	ancestors(node, stack, func(anc, child ast.NodeID) bool {
		switch t.Kind(anc) {
		case ast.CallExpr:
			if argIndex(t, anc, child) >= 0 && isServiceCall(t, anc) {
				result = true
			}
		case ast.ClassDecl, ast.ClassExpr:
			if child == t.Kid(anc, 5) && extendsTag(t, t.Kid(anc, 3)) {
				result = true
			}
		}
		return !result
	})
	return result
}

func isServiceCall(t *ast.Tree, call ast.NodeID) bool {
	switch CalleeDotted(t, call) {
	case "Layer.effect", "Layer.scoped", "Layer.succeed", "Layer.sync":
		return true
	}
	inner := StripTypeArgs(t, t.Callee(call))
	if t.Kind(inner) != ast.CallExpr {
		return false
	}
	switch CalleeDotted(t, inner) {
	case "Effect.Service", "Context.Tag":
		return true
	}
	return false
}

// extendsTag reports whether a class heritage expression is built from
// Context.Tag or Effect.Service.
func extendsTag(t *ast.Tree, heritage ast.NodeID) bool {
	for id := StripTypeArgs(t, heritage); t.Kind(id) == ast.CallExpr; id = StripTypeArgs(t, t.Callee(id)) {
		switch CalleeDotted(t, id) {
		case "Context.Tag", "Effect.Service":
			return true
		}
	}
	return false
}

// CallbackCall returns the nearest enclosing function and the call it is
// passed to as an argument; call is NoNode when the function is not an argument.
func (f *File) CallbackCall(stack *ast.Stack) (fn, call ast.NodeID) {
	fn = f.EnclosingFunction(stack)
	if fn == ast.NoNode {
		return ast.NoNode, ast.NoNode
	}
	return fn, f.callOf(fn, stack, depthOf(stack, fn))
}

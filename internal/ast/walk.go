package ast

// Stack holds the ancestors of the node being visited, root first.
type Stack struct {
	ids []NodeID
}

// StackOf returns a stack holding ids, root first.
func StackOf(ids ...NodeID) *Stack { return &Stack{ids: ids} }

func (s *Stack) Len() int { return len(s.ids) }

// At returns the ancestor at depth i (0 is the root).
func (s *Stack) At(i int) NodeID {
	if i < 0 || i >= len(s.ids) {
		return NoNode
	}
	return s.ids[i]
}

// Up returns the n-th ancestor counting from the parent (Up(0) is the parent).
func (s *Stack) Up(n int) NodeID {
	return s.At(len(s.ids) - 1 - n)
}

// Parent returns the direct parent, or NoNode at the root.
func (s *Stack) Parent() NodeID { return s.Up(0) }

func (s *Stack) push(id NodeID) { s.ids = append(s.ids, id) }
func (s *Stack) pop()           { s.ids = s.ids[:len(s.ids)-1] }

// Visitor is invoked before a node's kids; returning false skips the kids.
type Visitor func(id NodeID, stack *Stack) bool

// Walk visits root and its descendants in pre-order, kids left to right.
func Walk(t *Tree, root NodeID, visit Visitor) {
	if root == NoNode {
		return
	}
	var stack Stack
	walk(t, root, &stack, visit)
}

func walk(t *Tree, id NodeID, stack *Stack, visit Visitor) {
	n := t.Node(id)
	if n == nil {
		return
	}
	if !visit(id, stack) {
		return
	}
	stack.push(id)
	for _, kid := range n.Kids {
		if kid != NoNode {
			walk(t, kid, stack, visit)
		}
	}
	stack.pop()
}

// Inspect visits root and its descendants in pre-order without ancestor
// tracking; f returns false to skip a subtree.
func Inspect(t *Tree, root NodeID, f func(id NodeID) bool) {
	n := t.Node(root)
	if n == nil || !f(root) {
		return
	}
	for _, kid := range n.Kids {
		if kid != NoNode {
			Inspect(t, kid, f)
		}
	}
}

// Find returns the first node in pre-order under root for which match holds,
// skipping subtrees rejected by descend (nil descends everywhere).
func Find(t *Tree, root NodeID, match func(id NodeID) bool, descend func(id NodeID) bool) NodeID {
	found := NoNode
	Inspect(t, root, func(id NodeID) bool {
		if found != NoNode {
			return false
		}
		if id != root && match(id) {
			found = id
			return false
		}
		return id == root || descend == nil || descend(id)
	})
	return found
}

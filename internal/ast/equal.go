package ast

import "strings"

// Equal reports whether two trees are structurally identical: same node
// kinds, flags, texts and shape, and the same comment texts in order.
// Whitespace and layout do not participate.
func Equal(a, b *Tree) bool {
	if a == nil || b == nil {
		return a == b
	}
	if !EqualNodes(a, a.Root, b, b.Root) {
		return false
	}
	ca, cb := commentTexts(a), commentTexts(b)
	if len(ca) != len(cb) {
		return false
	}
	for i := range ca {
		if ca[i] != cb[i] {
			return false
		}
	}
	return true
}

// EqualNodes compares two subtrees, possibly from different trees.
func EqualNodes(a *Tree, ai NodeID, b *Tree, bi NodeID) bool {
	na, nb := a.Node(ai), b.Node(bi)
	if na == nil || nb == nil {
		return na == nil && nb == nil
	}
	if na.Kind != nb.Kind || na.Text != nb.Text || na.Flags&^FlagSynthetic != nb.Flags&^FlagSynthetic {
		return false
	}
	if len(na.Kids) != len(nb.Kids) {
		return false
	}
	for i := range na.Kids {
		if !EqualNodes(a, na.Kids[i], b, nb.Kids[i]) {
			return false
		}
	}
	return true
}

func commentTexts(t *Tree) []string {
	out := make([]string, 0, len(t.Comments))
	for _, c := range t.Comments {
		if c.IsComment() {
			out = append(out, strings.TrimSpace(c.Text))
		}
	}
	return out
}

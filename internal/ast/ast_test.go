package ast

import (
	"testing"

	"effectlint/internal/source"
	"effectlint/internal/token"
)

// callTree builds Effect.map(fn) by hand.
func callTree() (*Tree, NodeID) {
	t := NewTree(&source.File{Content: []byte("Effect.map(fn)")}, 8)
	eff := t.New(Ident, source.Span{Start: 0, End: 6}, "Effect", 0)
	mp := t.New(Ident, source.Span{Start: 7, End: 10}, "map", 0)
	mem := t.New(MemberExpr, source.Span{Start: 0, End: 10}, "", 0, eff, mp)
	fn := t.New(Ident, source.Span{Start: 11, End: 13}, "fn", 0)
	call := t.New(CallExpr, source.Span{Start: 0, End: 14}, "", 0, mem, NoNode, fn)
	stmt := t.New(ExprStmt, source.Span{Start: 0, End: 14}, "", 0, call)
	t.Root = t.New(File, source.Span{Start: 0, End: 14}, "", 0, stmt)
	return t, call
}

func TestArenaIsOneBased(t *testing.T) {
	a := NewArena[int](0)
	if a.Get(0) != nil || a.Get(1) != nil {
		t.Fatalf("empty arena must return nil")
	}
	id := a.Allocate(7)
	if id != 1 || *a.Get(id) != 7 || a.Len() != 1 {
		t.Fatalf("unexpected arena state")
	}
}

func TestAccessors(t *testing.T) {
	tr, call := callTree()
	if got := tr.DottedName(tr.Callee(call)); got != "Effect.map" {
		t.Fatalf("DottedName = %q", got)
	}
	if args := tr.Args(call); len(args) != 1 || !tr.IsIdent(args[0], "fn") {
		t.Fatalf("Args = %v", args)
	}
	if tr.Arg(call, 1) != NoNode || tr.Kid(call, 9) != NoNode {
		t.Fatalf("out-of-range access must yield NoNode")
	}
	if got := tr.Source(tr.Callee(call)); got != "Effect.map" {
		t.Fatalf("Source = %q", got)
	}
}

func TestWalkMaintainsAncestors(t *testing.T) {
	tr, _ := callTree()
	var order []Kind
	depthOfFn := -1
	Walk(tr, tr.Root, func(id NodeID, st *Stack) bool {
		order = append(order, tr.Kind(id))
		if tr.IsIdent(id, "fn") {
			depthOfFn = st.Len()
			if tr.Kind(st.Parent()) != CallExpr || tr.Kind(st.Up(1)) != ExprStmt || st.At(0) != tr.Root {
				t.Fatalf("unexpected ancestors for fn")
			}
		}
		return true
	})
	want := []Kind{File, ExprStmt, CallExpr, MemberExpr, Ident, Ident, Ident}
	if len(order) != len(want) {
		t.Fatalf("order = %v", order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v", order)
		}
	}
	if depthOfFn != 3 {
		t.Fatalf("depth = %d", depthOfFn)
	}
}

func TestWalkSkipsChildren(t *testing.T) {
	tr, _ := callTree()
	n := 0
	Walk(tr, tr.Root, func(id NodeID, _ *Stack) bool {
		n++
		return tr.Kind(id) != CallExpr
	})
	if n != 3 {
		t.Fatalf("visited %d nodes", n)
	}
}

func TestEqualIgnoresSpansButNotComments(t *testing.T) {
	a, _ := callTree()
	b, _ := callTree()
	for i := range b.Nodes.Slice() {
		b.Nodes.Slice()[i].Span.Start += 5
	}
	if !Equal(a, b) {
		t.Fatalf("span shifts must not affect equality")
	}
	b.Comments = []token.Trivia{{Kind: token.TriviaLineComment, Text: "// @ts-ignore"}}
	if Equal(a, b) {
		t.Fatalf("comments participate in equality")
	}
	a.Comments = []token.Trivia{{Kind: token.TriviaLineComment, Text: "// @ts-ignore  "}}
	if !Equal(a, b) {
		t.Fatalf("comment comparison trims whitespace")
	}
}

func TestEqualDetectsTextChange(t *testing.T) {
	a, _ := callTree()
	b, callB := callTree()
	prop := b.Kid(b.Callee(callB), 1)
	b.Node(prop).Text = "flatMap"
	if Equal(a, b) {
		t.Fatalf("renamed member must differ")
	}
}

func TestSynthNodesAreFlagged(t *testing.T) {
	tr, call := callTree()
	s := NewSynth(tr)
	arrow := s.Arrow([]string{"value"}, s.Call(tr.Arg(call, 0), s.Ident("value")))
	if !tr.Has(arrow, FlagSynthetic) {
		t.Fatalf("synthetic flag missing")
	}
	if tr.Source(arrow) != "" {
		t.Fatalf("synthetic nodes have no source")
	}
	body := tr.FuncBody(arrow)
	if tr.Kind(body) != CallExpr || tr.Callee(body) != tr.Arg(call, 0) {
		t.Fatalf("original subtree must be referenced, not copied")
	}
	if got := tr.DottedName(s.Dotted("Effect.log")); got != "Effect.log" {
		t.Fatalf("Dotted = %q", got)
	}
}

func TestIdentNameNFC(t *testing.T) {
	decomposed := "cafe\u0301"
	if IdentName(decomposed) != "caf\u00e9" {
		t.Fatalf("expected NFC composition")
	}
	if IdentName("plain") != "plain" {
		t.Fatalf("ASCII must pass through")
	}
}

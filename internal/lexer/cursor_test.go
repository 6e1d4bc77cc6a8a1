package lexer

import (
	"testing"

	"effectlint/internal/source"
)

func TestCursorBasics(t *testing.T) {
	f := &source.File{ID: 3, Content: []byte("ab")}
	c := NewCursor(f)
	m := c.Mark()
	if b0, b1, ok := c.Peek2(); !ok || b0 != 'a' || b1 != 'b' {
		t.Fatalf("Peek2 = %q %q %v", b0, b1, ok)
	}
	if !c.Eat('a') || c.Eat('a') {
		t.Fatalf("Eat must consume only on match")
	}
	if c.Bump() != 'b' || !c.EOF() || c.Bump() != 0 {
		t.Fatalf("Bump past EOF must return 0")
	}
	sp := c.SpanFrom(m)
	if sp.File != 3 || sp.Start != 0 || sp.End != 2 {
		t.Fatalf("unexpected span %v", sp)
	}
	c.Reset(m)
	if c.Peek() != 'a' {
		t.Fatalf("Reset failed")
	}
}

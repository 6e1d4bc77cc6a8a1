package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestPositionCountsUTF16Units(t *testing.T) {
	fs := NewFileSet()
	// "é" is one UTF-16 unit, "😀" is two.
	id := fs.AddVirtual("a.ts", []byte("ab\né😀x\n"))
	f := fs.Get(id)

	cases := []struct {
		off  uint32
		want LineCol
	}{
		{0, LineCol{1, 1}},
		{2, LineCol{1, 3}},
		{3, LineCol{2, 1}},
		{5, LineCol{2, 2}},  // after é (2 bytes)
		{9, LineCol{2, 4}},  // after 😀 (4 bytes)
		{10, LineCol{2, 5}}, // the newline after x
		{11, LineCol{3, 1}},
	}
	for _, tc := range cases {
		if got := f.Position(tc.off); got != tc.want {
			t.Errorf("Position(%d) = %+v, want %+v", tc.off, got, tc.want)
		}
	}
}

func TestRangeAndText(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("a.ts", []byte("const x = 1;\nfoo(x);\n"))
	sp := Span{File: id, Start: 13, End: 16}
	if got := fs.Get(id).Text(sp); got != "foo" {
		t.Fatalf("Text = %q", got)
	}
	want := Range{StartLine: 2, StartCol: 1, EndLine: 2, EndCol: 4}
	if got := fs.Range(sp); got != want {
		t.Fatalf("Range = %+v, want %+v", got, want)
	}
	if got := fs.Get(id).GetLine(2); got != "foo(x);" {
		t.Fatalf("GetLine = %q", got)
	}
}

func TestLoadNormalizes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "b.ts")
	if err := os.WriteFile(path, []byte("\xEF\xBB\xBFa\r\nb\r\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	fs := NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	f := fs.Get(id)
	if string(f.Content) != "a\nb\n" {
		t.Fatalf("content = %q", f.Content)
	}
	if f.Flags&FileHadBOM == 0 || f.Flags&FileNormalizedCRLF == 0 {
		t.Fatalf("flags = %v", f.Flags)
	}
	if latest, ok := fs.GetLatest(path); !ok || latest != id {
		t.Fatalf("GetLatest = %v, %v", latest, ok)
	}
}

func TestVirtualKeepsBytes(t *testing.T) {
	fs := NewFileSet()
	src := "a\r\nb"
	id := fs.AddVirtual("v.ts", []byte(src))
	if string(fs.Get(id).Content) != src {
		t.Fatal("virtual content must be verbatim")
	}
}

func TestSpanOps(t *testing.T) {
	a := Span{Start: 2, End: 5}
	b := Span{Start: 4, End: 9}
	if got := a.Cover(b); got.Start != 2 || got.End != 9 {
		t.Fatalf("Cover = %+v", got)
	}
	if !a.Overlaps(b) {
		t.Fatal("expected overlap")
	}
	if (Span{Start: 5, End: 7}).Overlaps(a) {
		t.Fatal("touching spans must not overlap")
	}
	if !(Span{Start: 0, End: 10}).Contains(a) {
		t.Fatal("expected containment")
	}
}

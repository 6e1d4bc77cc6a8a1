package diag

import (
	"testing"

	"effectlint/internal/source"
)

func TestBagLimitAndErrors(t *testing.T) {
	b := NewBag(2)
	b.Add(Warnf(CfgUnknownRule, source.Span{}, "unknown rule %q", "x"))
	if b.HasErrors() {
		t.Fatalf("warnings alone must not count as errors")
	}
	if !b.Add(Errorf(SynUnexpectedToken, source.Span{Start: 4, End: 5}, "a")) {
		t.Fatalf("second add rejected")
	}
	if b.Add(Errorf(LexUnknownChar, source.Span{}, "c")) {
		t.Fatalf("bag must refuse items beyond its limit")
	}
	if !b.HasErrors() {
		t.Fatalf("expected HasErrors")
	}
	first, ok := b.First()
	if !ok || first.Message != "a" {
		t.Fatalf("unexpected first error: %+v", first)
	}
	if got := b.Items()[0].Message; got != `unknown rule "x"` {
		t.Fatalf("Warnf message = %q", got)
	}
}

func TestBagSortAndDedup(t *testing.T) {
	b := NewBag(10)
	b.Add(Errorf(SynUnexpectedToken, source.Span{Start: 9, End: 10}, "late"))
	b.Add(Warnf(LexBadNumber, source.Span{Start: 1, End: 2}, "warn"))
	b.Add(Errorf(LexBadNumber, source.Span{Start: 1, End: 2}, "err"))
	b.Add(Errorf(LexBadNumber, source.Span{Start: 1, End: 2}, "err again"))
	b.Sort()
	b.Dedup()

	items := b.Items()
	if len(items) != 2 {
		t.Fatalf("expected 2 items after dedup, got %d", len(items))
	}
	if items[0].Severity != SevError || items[0].Message != "err" {
		t.Fatalf("errors must sort before warnings at the same span, got %+v", items[0])
	}
	if items[1].Message != "late" {
		t.Fatalf("unexpected order: %+v", items)
	}
}

func TestSeverityString(t *testing.T) {
	cases := []struct {
		sev  Severity
		want string
	}{
		{SevWarning, "warning"},
		{SevError, "error"},
		{Severity(0), "unset"},
		{Severity(9), "unset"},
	}
	for _, tc := range cases {
		if got := tc.sev.String(); got != tc.want {
			t.Errorf("Severity(%d) = %q, want %q", tc.sev, got, tc.want)
		}
	}
}

func TestReportBuilderEmitsOnce(t *testing.T) {
	bag := NewBag(10)
	r := BagReporter{Bag: bag}
	sp := source.Span{Start: 1, End: 3}
	b := ReportError(r, SynExpectExpression, sp, "y").WithNote(sp, "here")
	b.Emit()
	b.Emit()
	ReportWarning(r, CfgUnknownRule, sp, "w").Emit()
	if bag.Len() != 2 {
		t.Fatalf("expected 2 diagnostics, got %d", bag.Len())
	}
	d := bag.Items()[0]
	if got := d.Notes; len(got) != 1 || got[0].Msg != "here" {
		t.Fatalf("note lost: %+v", got)
	}
	if got := d.Error(); got != "SYN2004 error: y" {
		t.Fatalf("Error() = %q", got)
	}
	if bag.Items()[1].Severity != SevWarning {
		t.Fatalf("ReportWarning severity = %v", bag.Items()[1].Severity)
	}
}

func TestWithNoteDoesNotAlias(t *testing.T) {
	base := Errorf(SynUnexpectedToken, source.Span{}, "x")
	base.Notes = make([]Note, 0, 4)
	a := base.WithNote(source.Span{Start: 1}, "a")
	b := base.WithNote(source.Span{Start: 2}, "b")
	if a.Notes[0].Msg != "a" || b.Notes[0].Msg != "b" {
		t.Fatalf("notes aliased: %+v %+v", a.Notes, b.Notes)
	}
}

func TestCodeID(t *testing.T) {
	cases := map[Code]string{
		LexUnknownChar:     "LEX1001",
		SynUnexpectedToken: "SYN2001",
		CfgParseError:      "CFG5001",
		UnknownCode:        "E0000",
	}
	for code, want := range cases {
		if got := code.ID(); got != want {
			t.Errorf("%d: want %s, got %s", code, want, got)
		}
	}
}

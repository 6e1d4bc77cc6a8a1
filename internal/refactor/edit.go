package refactor

import (
	"sort"

	"effectlint/internal/source"
)

// Edit replaces the bytes under Span with NewText. OldText, when set, must
// equal the current bytes under Span or the edit is refused.
type Edit struct {
	Span    source.Span
	NewText string
	OldText string
}

func (e Edit) noop() bool {
	return e.OldText != "" && e.OldText == e.NewText
}

// spansConflict reports whether two edits' spans overlap.
// Spans are half-open intervals [Start, End). Two zero-length edits never
// conflict. A zero-length edit conflicts with a non-zero span if its position
// is within that span (Start <= pos < End).
func spansConflict(a, b Edit) bool {
	aStart, aEnd := a.Span.Start, a.Span.End
	bStart, bEnd := b.Span.Start, b.Span.End

	if aStart == aEnd && bStart == bEnd {
		return false
	}
	if aStart == aEnd {
		return bStart <= aStart && aStart < bEnd
	}
	if bStart == bEnd {
		return aStart <= bStart && bStart < aEnd
	}
	return aStart < bEnd && bStart < aEnd
}

func conflictsWithExisting(existing, edits []Edit) bool {
	for _, prev := range existing {
		for _, cand := range edits {
			if spansConflict(prev, cand) {
				return true
			}
		}
	}
	return false
}

// selfConflicting reports whether any two edits of one group overlap.
func selfConflicting(edits []Edit) bool {
	for i := range edits {
		for j := i + 1; j < len(edits); j++ {
			if spansConflict(edits[i], edits[j]) {
				return true
			}
		}
	}
	return false
}

// applyEdits applies non-overlapping edits to content, last edit first so
// earlier offsets stay valid. It fails when a span is out of range or an
// OldText guard does not match.
func applyEdits(content []byte, edits []Edit) ([]byte, bool) {
	sorted := append([]Edit(nil), edits...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Span.Start == sorted[j].Span.Start {
			return sorted[i].Span.End > sorted[j].Span.End
		}
		return sorted[i].Span.Start > sorted[j].Span.Start
	})

	working := append([]byte(nil), content...)
	for _, edit := range sorted {
		start, end := int(edit.Span.Start), int(edit.Span.End)
		if start < 0 || end < start || end > len(working) {
			return content, false
		}
		if edit.OldText != "" && string(working[start:end]) != edit.OldText {
			return content, false
		}
		suffix := append([]byte(nil), working[end:]...)
		working = append(append(working[:start], edit.NewText...), suffix...)
	}
	return working, true
}

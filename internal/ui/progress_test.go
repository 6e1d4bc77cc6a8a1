package ui

import (
	"strings"
	"testing"

	"effectlint/internal/driver"
)

func TestApplyEventTracksStatus(t *testing.T) {
	events := make(chan driver.Event)
	m := NewProgressModel("analyzing", []string{"a.ts", "b.ts", "c.ts"}, events).(*progressModel)

	m.applyEvent(driver.Event{File: "a.ts", Stage: driver.StageAnalyze, Status: driver.StatusWorking})
	m.applyEvent(driver.Event{File: "b.ts", Stage: driver.StageCache, Status: driver.StatusDone, Cached: true})
	m.applyEvent(driver.Event{File: "c.ts", Stage: driver.StageRead, Status: driver.StatusError})
	m.applyEvent(driver.Event{File: "unknown.ts", Stage: driver.StageRead, Status: driver.StatusError})
	m.applyEvent(driver.Event{Stage: driver.StageFix, Status: driver.StatusWorking})

	if m.rows[0].state != rowAnalyzing || m.rows[1].state != rowCached || m.rows[2].state != rowFailed {
		t.Fatalf("rows = %+v", m.rows)
	}
	if m.settled != 2 || m.cached != 1 || m.failed != 1 {
		t.Fatalf("counts settled=%d cached=%d failed=%d", m.settled, m.cached, m.failed)
	}
	if m.phase != "fixing" {
		t.Fatalf("phase = %q", m.phase)
	}
	view := m.View()
	for _, want := range []string{"a.ts", "cached", "2/3", "1 failed"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q:\n%s", want, view)
		}
	}
}

func TestSettledRowsOnlyReopenOnFailure(t *testing.T) {
	m := NewProgressModel("fixing", []string{"a.ts"}, nil).(*progressModel)
	m.applyEvent(driver.Event{File: "a.ts", Stage: driver.StageCache, Status: driver.StatusDone, Cached: true})
	m.applyEvent(driver.Event{File: "a.ts", Stage: driver.StageAnalyze, Status: driver.StatusWorking})
	if m.rows[0].state != rowCached || m.settled != 1 || m.cached != 1 {
		t.Fatalf("row = %+v settled=%d cached=%d", m.rows[0], m.settled, m.cached)
	}
	m.applyEvent(driver.Event{File: "a.ts", Stage: driver.StageFix, Status: driver.StatusError})
	if m.rows[0].state != rowFailed || m.settled != 1 || m.cached != 0 || m.failed != 1 {
		t.Fatalf("row = %+v settled=%d cached=%d failed=%d", m.rows[0], m.settled, m.cached, m.failed)
	}
	if got := m.fraction(); got != 1 {
		t.Fatalf("fraction = %v", got)
	}
}

func TestTruncate(t *testing.T) {
	cases := []struct {
		in    string
		width int
		want  string
	}{
		{"src/app.ts", 20, "src/app.ts"},
		{"src/components/app.ts", 10, "src/com..."},
		{"abcdef", 3, "abc"},
	}
	for _, tc := range cases {
		if got := truncate(tc.in, tc.width); got != tc.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tc.in, tc.width, got, tc.want)
		}
	}
}

package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"effectlint/internal/driver"
)

// rowState is the display state of one file. States at or after rowDone are
// terminal.
type rowState uint8

const (
	rowQueued rowState = iota
	rowReading
	rowCache
	rowAnalyzing
	rowFixing
	rowDone
	rowCached
	rowFailed
)

var rowStates = [...]struct {
	label  string
	color  lipgloss.Color
	weight float64 // share of the bar a file in this state contributes
}{
	rowQueued:    {"queued", "7", 0},
	rowReading:   {"reading", "6", 0.1},
	rowCache:     {"cache", "6", 0.3},
	rowAnalyzing: {"analyzing", "6", 0.5},
	rowFixing:    {"fixing", "6", 0.5},
	rowDone:      {"done", "2", 1},
	rowCached:    {"cached", "2", 1},
	rowFailed:    {"error", "1", 1},
}

func (s rowState) terminal() bool { return s >= rowDone }
func (s rowState) String() string { return rowStates[s].label }

type fileRow struct {
	path    string
	state   rowState
	elapsed time.Duration
}

type progressModel struct {
	title   string
	phase   string
	events  <-chan driver.Event
	spinner spinner.Model
	bar     progress.Model
	rows    []fileRow
	byPath  map[string]int
	settled int // rows in a terminal state
	cached  int
	failed  int
	width   int
	closed  bool
}

type eventMsg driver.Event
type closedMsg struct{}

// NewProgressModel returns a Bubble Tea model that lists every file with its
// current state until events is closed.
func NewProgressModel(title string, files []string, events <-chan driver.Event) tea.Model {
	sp := spinner.New(spinner.WithSpinner(spinner.MiniDot))
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	m := &progressModel{
		title:   title,
		events:  events,
		spinner: sp,
		bar:     progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		rows:    make([]fileRow, len(files)),
		byPath:  make(map[string]int, len(files)),
	}
	for i, f := range files {
		m.rows[i] = fileRow{path: f}
		m.byPath[f] = i
	}
	m.resize(80)
	return m
}

func (m *progressModel) resize(width int) {
	m.width = width
	m.bar.Width = max(width-24, 10)
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.next())
}

// next blocks on the event channel from a command goroutine.
func (m *progressModel) next() tea.Cmd {
	return func() tea.Msg {
		if ev, ok := <-m.events; ok {
			return eventMsg(ev)
		}
		return closedMsg{}
	}
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		return m, tea.Batch(m.applyEvent(driver.Event(msg)), m.next())
	case closedMsg:
		m.closed = true
		return m, tea.Quit
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.resize(msg.Width)
		}
	case spinner.TickMsg:
		if !m.closed {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
	case progress.FrameMsg:
		bar, cmd := m.bar.Update(msg)
		m.bar = bar.(progress.Model)
		return m, cmd
	}
	return m, nil
}

// applyEvent moves one row to the state the event implies and returns the
// command animating the bar. A settled row only changes again when a later
// stage fails for it.
func (m *progressModel) applyEvent(ev driver.Event) tea.Cmd {
	state, ok := stateFor(ev)
	if ev.File == "" {
		if ok && !state.terminal() {
			m.phase = state.String()
		} else {
			m.phase = ""
		}
		return nil
	}
	i, known := m.byPath[ev.File]
	if !known || !ok {
		return nil
	}
	row := &m.rows[i]
	if row.state.terminal() {
		if state != rowFailed || row.state == rowFailed {
			return nil
		}
		if row.state == rowCached {
			m.cached--
		}
		m.settled--
	}
	row.state = state
	if state.terminal() {
		row.elapsed = ev.Elapsed
		m.settled++
		switch state {
		case rowCached:
			m.cached++
		case rowFailed:
			m.failed++
		}
	}
	return m.bar.SetPercent(m.fraction())
}

func (m *progressModel) fraction() float64 {
	if len(m.rows) == 0 {
		return 1
	}
	sum := 0.0
	for _, r := range m.rows {
		sum += rowStates[r.state].weight
	}
	return sum / float64(len(m.rows))
}

func stateFor(ev driver.Event) (rowState, bool) {
	switch ev.Status {
	case driver.StatusQueued:
		return rowQueued, true
	case driver.StatusError:
		return rowFailed, true
	case driver.StatusDone:
		if ev.Cached {
			return rowCached, true
		}
		return rowDone, true
	case driver.StatusWorking:
		switch ev.Stage {
		case driver.StageRead:
			return rowReading, true
		case driver.StageCache:
			return rowCache, true
		case driver.StageAnalyze:
			return rowAnalyzing, true
		case driver.StageFix:
			return rowFixing, true
		}
	}
	return 0, false
}

func (m *progressModel) View() string {
	if len(m.rows) == 0 {
		return ""
	}
	var b strings.Builder

	lead := m.spinner.View()
	if m.closed {
		lead = "✓"
	}
	header := lead + " " + m.title
	if m.phase != "" {
		header += " · " + m.phase
	}
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(header))
	b.WriteString("\n\n")

	const labelWidth = 10
	nameWidth := max(m.width-labelWidth-14, 20)
	for _, r := range m.rows {
		st := rowStates[r.state]
		label := lipgloss.NewStyle().Foreground(st.color).Render(fmt.Sprintf("%-*s", labelWidth, st.label))
		fmt.Fprintf(&b, "  %s %s", label, truncate(r.path, nameWidth))
		if r.state.terminal() && r.elapsed > 0 {
			fmt.Fprintf(&b, " %s", r.elapsed.Round(time.Millisecond))
		}
		b.WriteByte('\n')
	}

	b.WriteByte('\n')
	if m.closed {
		b.WriteString(m.bar.ViewAs(1))
	} else {
		b.WriteString(m.bar.View())
	}
	fmt.Fprintf(&b, " %d/%d", m.settled, len(m.rows))
	if m.cached > 0 {
		fmt.Fprintf(&b, ", %d cached", m.cached)
	}
	if m.failed > 0 {
		fmt.Fprintf(&b, ", %d failed", m.failed)
	}
	b.WriteByte('\n')
	return b.String()
}

// truncate shortens value to width display cells, marking the cut with an
// ellipsis when there is room for one.
func truncate(value string, width int) string {
	if width <= 0 || runewidth.StringWidth(value) <= width {
		return value
	}
	tail := "..."
	if width <= len(tail) {
		tail = ""
	}
	return runewidth.Truncate(value, width, tail)
}

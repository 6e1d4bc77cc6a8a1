package ui

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"effectlint/internal/driver"
)

// Run renders progress on out until events is closed or ctx is done. Input
// is not read, so the view never competes with the caller for stdin.
func Run(ctx context.Context, title string, files []string, events <-chan driver.Event, out io.Writer) error {
	p := tea.NewProgram(
		NewProgressModel(title, files, events),
		tea.WithContext(ctx),
		tea.WithOutput(out),
		tea.WithInput(nil),
	)
	_, err := p.Run()
	return err
}

package diagfmt

import "github.com/fatih/color"

type palette struct {
	err, warn, code, path, caret, note, dim func(a ...any) string
}

func newPalette(on bool) palette {
	mk := func(attrs ...color.Attribute) func(a ...any) string {
		c := color.New(attrs...)
		if on {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c.SprintFunc()
	}
	return palette{
		err:   mk(color.FgRed, color.Bold),
		warn:  mk(color.FgYellow, color.Bold),
		code:  mk(color.FgCyan),
		path:  mk(color.Bold),
		caret: mk(color.FgGreen, color.Bold),
		note:  mk(color.FgBlue),
		dim:   mk(color.Faint),
	}
}

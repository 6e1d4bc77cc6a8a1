package main

import (
	"fmt"
	"os"
	"strings"
)

// switchMode is the auto|on|off value shared by --color and --ui.
type switchMode string

const (
	modeAuto switchMode = "auto"
	modeOn   switchMode = "on"
	modeOff  switchMode = "off"
)

func readSwitch(flag, value string) (switchMode, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return modeAuto, nil
	case "on":
		return modeOn, nil
	case "off":
		return modeOff, nil
	default:
		return "", fmt.Errorf("invalid --%s value %q (expected auto|on|off)", flag, value)
	}
}

// enabled resolves auto with the terminal state of f.
func (m switchMode) enabled(f *os.File) bool {
	switch m {
	case modeOn:
		return true
	case modeOff:
		return false
	default:
		return isTerminal(f)
	}
}

// shouldUseTUI decides whether progress is drawn. The view goes to stderr.
func shouldUseTUI(m switchMode) bool {
	return m.enabled(os.Stderr)
}

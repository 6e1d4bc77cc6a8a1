package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// setupColor applies --color to the global color switch. Formatters take the
// same decision from useColor.
func setupColor(cmd *cobra.Command) error {
	on, err := useColor(cmd)
	if err != nil {
		return err
	}
	color.NoColor = !on
	return nil
}

func useColor(cmd *cobra.Command) (bool, error) {
	value, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false, fmt.Errorf("failed to get color flag: %w", err)
	}
	mode, err := readSwitch("color", value)
	if err != nil {
		return false, err
	}
	if mode == modeAuto && os.Getenv("NO_COLOR") != "" {
		return false, nil
	}
	return mode.enabled(os.Stdout), nil
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"effectlint/internal/driver"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect or clear the report cache",
}

var cacheDirCmd = &cobra.Command{
	Use:   "dir",
	Short: "Print the cache directory",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := driver.OpenDiskCache("effectlint")
		if err != nil {
			return fmt.Errorf("failed to open disk cache: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), c.Dir())
		return nil
	},
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every cached report",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := driver.OpenDiskCache("effectlint")
		if err != nil {
			return fmt.Errorf("failed to open disk cache: %w", err)
		}
		if err := c.DropAll(); err != nil {
			return fmt.Errorf("failed to clear cache: %w", err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "cleared %s\n", c.Dir())
		return nil
	},
}

func init() {
	cacheCmd.AddCommand(cacheDirCmd, cacheClearCmd)
}

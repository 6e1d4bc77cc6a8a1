package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"effectlint/internal/catalog"
	"effectlint/internal/version"
)

type versionPayload struct {
	Tool           string `json:"tool"`
	Version        string `json:"version"`
	CatalogVersion string `json:"catalog_version"`
	GitCommit      string `json:"git_commit,omitempty"`
	BuildDate      string `json:"build_date,omitempty"`
}

var versionFormat string

func init() {
	versionCmd.Flags().StringVar(&versionFormat, "format", "pretty", "output format (pretty|json)")
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show build and rule catalog versions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		switch strings.ToLower(versionFormat) {
		case "json":
			return renderVersionJSON(cmd.OutOrStdout())
		case "pretty":
			fmt.Fprintln(cmd.OutOrStdout(), version.Info())
			fmt.Fprintf(cmd.OutOrStdout(), "rule catalog %s\n", catalog.Default().Version())
			return nil
		default:
			return fmt.Errorf("unsupported format %q (must be pretty or json)", versionFormat)
		}
	},
}

func renderVersionJSON(out io.Writer) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(versionPayload{
		Tool:           "effectlint",
		Version:        strings.TrimSpace(version.Version),
		CatalogVersion: catalog.Default().Version(),
		GitCommit:      strings.TrimSpace(version.GitCommit),
		BuildDate:      strings.TrimSpace(version.BuildDate),
	})
}

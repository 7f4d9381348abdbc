// Package version implements the "ddog version" command.
package version

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/schmitthub/ddog/internal/cmdutil"
)

// NewCmdVersion creates the version command.
func NewCmdVersion(f *cmdutil.Factory) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(f.IOStreams.Out, Format(f.Version, f.Commit))
		},
	}
}

// Format renders the version line. An empty commit is omitted.
func Format(version, commit string) string {
	if version == "" {
		version = "dev"
	}
	if commit == "" {
		return "ddog " + version
	}
	return fmt.Sprintf("ddog %s (%s)", version, commit)
}

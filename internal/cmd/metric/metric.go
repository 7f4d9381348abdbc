// Package metric implements the "ddog metric" command group.
package metric

import (
	"github.com/spf13/cobra"

	"github.com/schmitthub/ddog/internal/cmdutil"
)

// NewCmdMetric creates the metric command group.
func NewCmdMetric(f *cmdutil.Factory) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "metric <command>",
		Short: "Query and inspect metrics",
	}

	cmd.AddCommand(NewCmdQuery(f, nil))
	cmd.AddCommand(NewCmdSearch(f, nil))
	cmd.AddCommand(NewCmdMetadata(f, nil))

	return cmd
}

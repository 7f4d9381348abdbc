// Package host implements the "ddog host" command group.
package host

import (
	"github.com/spf13/cobra"

	"github.com/schmitthub/ddog/internal/cmdutil"
)

// NewCmdHost creates the host command group.
func NewCmdHost(f *cmdutil.Factory) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "host <command>",
		Short: "Inspect and mute hosts",
	}

	cmd.AddCommand(NewCmdList(f, nil))
	cmd.AddCommand(NewCmdGet(f, nil))
	cmd.AddCommand(NewCmdTotals(f, nil))
	cmd.AddCommand(NewCmdMute(f, nil))
	cmd.AddCommand(NewCmdUnmute(f, nil))

	return cmd
}

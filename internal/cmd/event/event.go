// Package event implements the "ddog event" command group.
package event

import (
	"github.com/spf13/cobra"

	"github.com/schmitthub/ddog/internal/cmdutil"
)

// NewCmdEvent creates the event command group.
func NewCmdEvent(f *cmdutil.Factory) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "event <command>",
		Short: "Browse and post events",
	}

	cmd.AddCommand(NewCmdList(f, nil))
	cmd.AddCommand(NewCmdGet(f, nil))
	cmd.AddCommand(NewCmdPost(f, nil))

	return cmd
}

// Package tag implements the "ddog tag" command group.
package tag

import (
	"github.com/spf13/cobra"

	"github.com/schmitthub/ddog/internal/cmdutil"
)

// NewCmdTag creates the tag command group.
func NewCmdTag(f *cmdutil.Factory) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tag <command>",
		Short: "Manage host tags",
	}

	cmd.AddCommand(NewCmdList(f, nil))
	cmd.AddCommand(NewCmdAdd(f, nil))
	cmd.AddCommand(NewCmdReplace(f, nil))
	cmd.AddCommand(NewCmdDetach(f, nil))

	return cmd
}

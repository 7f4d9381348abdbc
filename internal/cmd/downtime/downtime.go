// Package downtime implements the "ddog downtime" command group.
package downtime

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/schmitthub/ddog/internal/cmdutil"
)

// NewCmdDowntime creates the downtime command group.
func NewCmdDowntime(f *cmdutil.Factory) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "downtime <command>",
		Short: "Schedule and cancel monitor downtimes",
	}

	cmd.AddCommand(NewCmdList(f, nil))
	cmd.AddCommand(NewCmdGet(f, nil))
	cmd.AddCommand(NewCmdCreate(f, nil))
	cmd.AddCommand(NewCmdUpdate(f, nil))
	cmd.AddCommand(NewCmdCancel(f, nil))
	cmd.AddCommand(NewCmdCancelScope(f, nil))

	return cmd
}

func parseDowntimeID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, cmdutil.FlagErrorf("invalid downtime ID %q", arg)
	}
	return id, nil
}

// Package monitor implements the "ddog monitor" command group.
package monitor

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/schmitthub/ddog/internal/api"
	"github.com/schmitthub/ddog/internal/cmdutil"
	"github.com/schmitthub/ddog/internal/text"
)

// NewCmdMonitor creates the monitor command group.
func NewCmdMonitor(f *cmdutil.Factory) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "monitor <command>",
		Short: "Manage monitors",
		Long:  "List, inspect, create, update, mute, and delete Datadog monitors.",
	}

	cmd.AddCommand(NewCmdList(f, nil))
	cmd.AddCommand(NewCmdGet(f, nil))
	cmd.AddCommand(NewCmdCreate(f, nil))
	cmd.AddCommand(NewCmdUpdate(f, nil))
	cmd.AddCommand(NewCmdDelete(f, nil))
	cmd.AddCommand(NewCmdMute(f, nil))
	cmd.AddCommand(NewCmdUnmute(f, nil))
	cmd.AddCommand(NewCmdMuteAll(f, nil))
	cmd.AddCommand(NewCmdUnmuteAll(f, nil))
	cmd.AddCommand(NewCmdValidate(f, nil))

	return cmd
}

// monitorRow is the display/serialization shape for monitor tables.
type monitorRow struct {
	ID    int64  `json:"id"`
	State string `json:"state"`
	Name  string `json:"name"`
	Tags  string `json:"tags"`
}

func buildMonitorRows(monitors []api.Monitor) []monitorRow {
	rows := make([]monitorRow, 0, len(monitors))
	for _, m := range monitors {
		state := m.OverallState
		if state == "" {
			state = "Unknown"
		}
		rows = append(rows, monitorRow{
			ID:    m.ID,
			State: state,
			Name:  text.Truncate(m.Name, 60),
			Tags:  text.FormatTags(m.Tags, 3),
		})
	}
	return rows
}

// parseMonitorID converts a positional argument to a monitor ID.
func parseMonitorID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, cmdutil.FlagErrorf("invalid monitor ID %q", arg)
	}
	return id, nil
}

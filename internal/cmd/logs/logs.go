// Package logs implements the "ddog logs" command group.
package logs

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/schmitthub/ddog/internal/api"
	"github.com/schmitthub/ddog/internal/cmdutil"
	"github.com/schmitthub/ddog/internal/iostreams"
)

// NewCmdLogs creates the logs command group.
func NewCmdLogs(f *cmdutil.Factory) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logs <command>",
		Short: "Search and tail logs",
	}

	cmd.AddCommand(NewCmdSearch(f, nil))
	cmd.AddCommand(NewCmdTail(f, nil))

	return cmd
}

// epochMillis renders an epoch-second bound in the millisecond form
// the v2 logs API expects.
func epochMillis(sec int64) string {
	return strconv.FormatInt(sec*1000, 10)
}

// printLogLine renders one log event in the classic tail format.
func printLogLine(ios *iostreams.IOStreams, e api.LogEvent) {
	cs := ios.ColorScheme()

	ts := e.Attributes.Timestamp
	if t, err := time.Parse(time.RFC3339, ts); err == nil {
		ts = t.UTC().Format("2006-01-02T15:04:05Z")
	}

	status := e.Attributes.Status
	switch status {
	case "error", "critical", "emergency", "alert":
		status = cs.Red(status)
	case "warn", "warning":
		status = cs.Yellow(status)
	case "":
		status = "-"
	}

	service := e.Attributes.Service
	if service == "" {
		service = "-"
	}

	fmt.Fprintf(ios.Out, "%s %s %s %s\n", cs.Gray(ts), status, cs.Cyan(service), e.Attributes.Message)
}

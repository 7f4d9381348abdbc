package monitor

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/schmitthub/ddog/internal/api"
	"github.com/schmitthub/ddog/internal/cmdutil"
	"github.com/schmitthub/ddog/internal/iostreams"
	"github.com/schmitthub/ddog/internal/retry"
)

// GetOptions holds options for the monitor get command.
type GetOptions struct {
	IOStreams *iostreams.IOStreams
	Client    func() (*api.Client, error)
	Policy    func() retry.Policy

	Format *cmdutil.FormatFlags
	ID     int64
}

// NewCmdGet creates the monitor get command.
func NewCmdGet(f *cmdutil.Factory, runF func(context.Context, *GetOptions) error) *cobra.Command {
	opts := &GetOptions{
		IOStreams: f.IOStreams,
		Client:    f.Client,
		Policy:    f.RetryPolicy,
	}

	cmd := &cobra.Command{
		Use:   "get <monitor-id>",
		Short: "Show a monitor's details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseMonitorID(args[0])
			if err != nil {
				return err
			}
			opts.ID = id

			if runF != nil {
				return runF(cmd.Context(), opts)
			}
			return getRun(cmd.Context(), opts)
		},
	}

	opts.Format = cmdutil.AddFormatFlags(cmd)

	return cmd
}

func getRun(ctx context.Context, opts *GetOptions) error {
	ios := opts.IOStreams

	client, err := opts.Client()
	if err != nil {
		return err
	}

	m, err := cmdutil.CallAPI(ctx, ios, opts.Policy(), "Fetching monitor...", func() (*api.Monitor, error) {
		return client.GetMonitor(ctx, opts.ID)
	})
	if err != nil {
		return cmdutil.HandleFailure(ios, opts.Format, err)
	}

	if opts.Format.IsJSON() {
		return cmdutil.WriteJSON(ios.Out, m)
	}

	printMonitorDetail(ios, m)
	return nil
}

func printMonitorDetail(ios *iostreams.IOStreams, m *api.Monitor) {
	cs := ios.ColorScheme()
	out := ios.Out

	fmt.Fprintf(out, "%s %s\n", cs.Bold(m.Name), cs.Gray(fmt.Sprintf("(#%d)", m.ID)))
	fmt.Fprintf(out, "State:    %s\n", cs.MonitorState(m.OverallState))
	fmt.Fprintf(out, "Type:     %s\n", m.Type)
	fmt.Fprintf(out, "Query:    %s\n", m.Query)
	if m.Priority != nil {
		fmt.Fprintf(out, "Priority: P%d\n", *m.Priority)
	}
	if len(m.Tags) > 0 {
		fmt.Fprintf(out, "Tags:     %s\n", strings.Join(m.Tags, ", "))
	}
	if m.Creator != nil {
		fmt.Fprintf(out, "Creator:  %s\n", m.Creator.Email)
	}
	if m.Created != "" {
		fmt.Fprintf(out, "Created:  %s\n", m.Created)
	}
	if m.Message != "" {
		fmt.Fprintf(out, "\n%s\n", m.Message)
	}
}

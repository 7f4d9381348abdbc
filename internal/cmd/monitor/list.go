package monitor

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/spf13/cobra"

	"github.com/schmitthub/ddog/internal/api"
	"github.com/schmitthub/ddog/internal/cmdutil"
	"github.com/schmitthub/ddog/internal/iostreams"
	"github.com/schmitthub/ddog/internal/retry"
)

// ListOptions holds options for the monitor list command.
type ListOptions struct {
	IOStreams *iostreams.IOStreams
	Client    func() (*api.Client, error)
	Policy    func() retry.Policy

	Format   *cmdutil.FormatFlags
	Tags     string
	States   []string
	Watch    bool
	Interval int
}

// NewCmdList creates the monitor list command.
func NewCmdList(f *cmdutil.Factory, runF func(context.Context, *ListOptions) error) *cobra.Command {
	opts := &ListOptions{
		IOStreams: f.IOStreams,
		Client:    f.Client,
		Policy:    f.RetryPolicy,
	}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List monitors",
		Example: `  # List all monitors
  ddog monitor list

  # Filter server-side by tags
  ddog monitor list --tags env:prod,service:web

  # Only alerting monitors
  ddog monitor list --state Alert

  # Refresh every 30 seconds
  ddog monitor list --watch

  # Output as JSON
  ddog monitor list --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, s := range opts.States {
				switch s {
				case "Alert", "Warn", "OK", "No Data":
				default:
					return cmdutil.FlagErrorf("invalid state %q (expected Alert, Warn, OK, or No Data)", s)
				}
			}
			if runF != nil {
				return runF(cmd.Context(), opts)
			}
			return listRun(cmd.Context(), opts)
		},
	}

	opts.Format = cmdutil.AddFormatFlags(cmd)
	cmd.Flags().StringVar(&opts.Tags, "tags", "", "Filter by tags (comma-separated)")
	cmd.Flags().StringArrayVar(&opts.States, "state", nil, "Filter by state (Alert, Warn, OK, No Data)")
	cmd.Flags().BoolVarP(&opts.Watch, "watch", "w", false, "Refresh the list periodically")
	cmd.Flags().IntVar(&opts.Interval, "interval", 30, "Watch refresh interval in seconds")

	return cmd
}

func listRun(ctx context.Context, opts *ListOptions) error {
	if opts.Watch {
		return cmdutil.Watch(ctx, opts.IOStreams, time.Duration(opts.Interval)*time.Second, func(ctx context.Context) error {
			return listOnce(ctx, opts)
		})
	}
	return listOnce(ctx, opts)
}

func listOnce(ctx context.Context, opts *ListOptions) error {
	ios := opts.IOStreams

	client, err := opts.Client()
	if err != nil {
		return err
	}

	monitors, err := cmdutil.CallAPI(ctx, ios, opts.Policy(), "Fetching monitors...", func() ([]api.Monitor, error) {
		return client.ListMonitors(ctx, opts.Tags)
	})
	if err != nil {
		return cmdutil.HandleFailure(ios, opts.Format, err)
	}

	if len(opts.States) > 0 {
		monitors = slices.DeleteFunc(monitors, func(m api.Monitor) bool {
			return !slices.Contains(opts.States, m.OverallState)
		})
	}

	switch {
	case opts.Format.Quiet:
		for _, m := range monitors {
			fmt.Fprintln(ios.Out, m.ID)
		}
		return nil

	case opts.Format.IsJSON():
		return cmdutil.WriteJSON(ios.Out, monitors)

	default:
		if len(monitors) == 0 {
			fmt.Fprintln(ios.ErrOut, "No monitors found.")
			return nil
		}
		cs := ios.ColorScheme()
		tp := ios.NewTablePrinter("ID", "STATE", "NAME", "TAGS")
		for _, row := range buildMonitorRows(monitors) {
			tp.AddRow(fmt.Sprint(row.ID), cs.MonitorState(row.State), row.Name, row.Tags)
		}
		if err := tp.Render(); err != nil {
			return err
		}
		fmt.Fprintf(ios.ErrOut, "\nTotal monitors: %d\n", len(monitors))
		return nil
	}
}

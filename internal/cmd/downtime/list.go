package downtime

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/schmitthub/ddog/internal/api"
	"github.com/schmitthub/ddog/internal/cmdutil"
	"github.com/schmitthub/ddog/internal/iostreams"
	"github.com/schmitthub/ddog/internal/retry"
)

// ListOptions holds options for the downtime list command.
type ListOptions struct {
	IOStreams *iostreams.IOStreams
	Client    func() (*api.Client, error)
	Policy    func() retry.Policy

	Format      *cmdutil.FormatFlags
	CurrentOnly bool
}

// NewCmdList creates the downtime list command.
func NewCmdList(f *cmdutil.Factory, runF func(context.Context, *ListOptions) error) *cobra.Command {
	opts := &ListOptions{
		IOStreams: f.IOStreams,
		Client:    f.Client,
		Policy:    f.RetryPolicy,
	}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List downtimes",
		RunE: func(cmd *cobra.Command, args []string) error {
			if runF != nil {
				return runF(cmd.Context(), opts)
			}
			return listRun(cmd.Context(), opts)
		},
	}

	opts.Format = cmdutil.AddFormatFlags(cmd)
	cmd.Flags().BoolVar(&opts.CurrentOnly, "current", false, "Only downtimes active right now")

	return cmd
}

func listRun(ctx context.Context, opts *ListOptions) error {
	ios := opts.IOStreams

	client, err := opts.Client()
	if err != nil {
		return err
	}

	downtimes, err := cmdutil.CallAPI(ctx, ios, opts.Policy(), "Fetching downtimes...", func() ([]api.Downtime, error) {
		return client.ListDowntimes(ctx, opts.CurrentOnly)
	})
	if err != nil {
		return cmdutil.HandleFailure(ios, opts.Format, err)
	}

	switch {
	case opts.Format.Quiet:
		for _, d := range downtimes {
			fmt.Fprintln(ios.Out, d.ID)
		}
		return nil

	case opts.Format.IsJSON():
		return cmdutil.WriteJSON(ios.Out, downtimes)

	default:
		if len(downtimes) == 0 {
			fmt.Fprintln(ios.ErrOut, "No downtimes found.")
			return nil
		}
		cs := ios.ColorScheme()
		tp := ios.NewTablePrinter("ID", "ACTIVE", "SCOPE", "START", "END")
		for _, d := range downtimes {
			active := ""
			if d.Active {
				active = cs.Green("yes")
			}
			tp.AddRow(
				strconv.FormatInt(d.ID, 10),
				active,
				strings.Join(d.Scope, " "),
				formatEpoch(d.Start),
				formatEpoch(d.End),
			)
		}
		if err := tp.Render(); err != nil {
			return err
		}
		fmt.Fprintf(ios.ErrOut, "\nTotal downtimes: %d\n", len(downtimes))
		return nil
	}
}

func formatEpoch(ts int64) string {
	if ts == 0 {
		return "-"
	}
	return time.Unix(ts, 0).UTC().Format("2006-01-02 15:04")
}

package monitor

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/schmitthub/ddog/internal/api"
	"github.com/schmitthub/ddog/internal/cmdutil"
	"github.com/schmitthub/ddog/internal/iostreams"
	"github.com/schmitthub/ddog/internal/retry"
)

// DeleteOptions holds options for the monitor delete command.
type DeleteOptions struct {
	IOStreams *iostreams.IOStreams
	Client    func() (*api.Client, error)
	Policy    func() retry.Policy

	Format    *cmdutil.FormatFlags
	ID        int64
	Confirmed bool
}

// NewCmdDelete creates the monitor delete command.
func NewCmdDelete(f *cmdutil.Factory, runF func(context.Context, *DeleteOptions) error) *cobra.Command {
	opts := &DeleteOptions{
		IOStreams: f.IOStreams,
		Client:    f.Client,
		Policy:    f.RetryPolicy,
	}

	cmd := &cobra.Command{
		Use:     "delete <monitor-id>",
		Aliases: []string{"rm"},
		Short:   "Delete a monitor",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseMonitorID(args[0])
			if err != nil {
				return err
			}
			opts.ID = id

			if runF != nil {
				return runF(cmd.Context(), opts)
			}
			return deleteRun(cmd.Context(), opts)
		},
	}

	opts.Format = cmdutil.AddFormatFlags(cmd)
	cmd.Flags().BoolVar(&opts.Confirmed, "confirm", false, "Skip the confirmation prompt")

	return cmd
}

func deleteRun(ctx context.Context, opts *DeleteOptions) error {
	ios := opts.IOStreams

	ok, err := cmdutil.Confirm(ios, fmt.Sprintf("Delete monitor %d?", opts.ID), opts.Confirmed)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(ios.ErrOut, "Cancelled.")
		return nil
	}

	client, err := opts.Client()
	if err != nil {
		return err
	}

	_, err = cmdutil.CallAPI(ctx, ios, opts.Policy(), "Deleting monitor...", func() (struct{}, error) {
		return struct{}{}, client.DeleteMonitor(ctx, opts.ID)
	})
	if err != nil {
		return cmdutil.HandleFailure(ios, opts.Format, err)
	}

	cs := ios.ColorScheme()
	fmt.Fprintf(ios.Out, "%s Deleted monitor %d\n", cs.Green("✓"), opts.ID)
	return nil
}

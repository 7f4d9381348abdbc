package downtime

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/schmitthub/ddog/internal/api"
	"github.com/schmitthub/ddog/internal/cmdutil"
	"github.com/schmitthub/ddog/internal/iostreams"
	"github.com/schmitthub/ddog/internal/retry"
)

// CancelOptions holds options for the downtime cancel command.
type CancelOptions struct {
	IOStreams *iostreams.IOStreams
	Client    func() (*api.Client, error)
	Policy    func() retry.Policy

	Format    *cmdutil.FormatFlags
	ID        int64
	Confirmed bool
}

// NewCmdCancel creates the downtime cancel command.
func NewCmdCancel(f *cmdutil.Factory, runF func(context.Context, *CancelOptions) error) *cobra.Command {
	opts := &CancelOptions{
		IOStreams: f.IOStreams,
		Client:    f.Client,
		Policy:    f.RetryPolicy,
	}

	cmd := &cobra.Command{
		Use:     "cancel <downtime-id>",
		Aliases: []string{"delete", "rm"},
		Short:   "Cancel a downtime",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseDowntimeID(args[0])
			if err != nil {
				return err
			}
			opts.ID = id

			if runF != nil {
				return runF(cmd.Context(), opts)
			}
			return cancelRun(cmd.Context(), opts)
		},
	}

	opts.Format = cmdutil.AddFormatFlags(cmd)
	cmd.Flags().BoolVar(&opts.Confirmed, "confirm", false, "Skip the confirmation prompt")

	return cmd
}

func cancelRun(ctx context.Context, opts *CancelOptions) error {
	ios := opts.IOStreams

	ok, err := cmdutil.Confirm(ios, fmt.Sprintf("Cancel downtime %d?", opts.ID), opts.Confirmed)
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

	_, err = cmdutil.CallAPI(ctx, ios, opts.Policy(), "Cancelling downtime...", func() (struct{}, error) {
		return struct{}{}, client.CancelDowntime(ctx, opts.ID)
	})
	if err != nil {
		return cmdutil.HandleFailure(ios, opts.Format, err)
	}

	cs := ios.ColorScheme()
	fmt.Fprintf(ios.Out, "%s Cancelled downtime %d\n", cs.Green("✓"), opts.ID)
	return nil
}

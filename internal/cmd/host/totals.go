package host

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/schmitthub/ddog/internal/api"
	"github.com/schmitthub/ddog/internal/cmdutil"
	"github.com/schmitthub/ddog/internal/iostreams"
	"github.com/schmitthub/ddog/internal/retry"
)

// TotalsOptions holds options for the host totals command.
type TotalsOptions struct {
	IOStreams *iostreams.IOStreams
	Client    func() (*api.Client, error)
	Policy    func() retry.Policy

	Format *cmdutil.FormatFlags
}

// NewCmdTotals creates the host totals command.
func NewCmdTotals(f *cmdutil.Factory, runF func(context.Context, *TotalsOptions) error) *cobra.Command {
	opts := &TotalsOptions{
		IOStreams: f.IOStreams,
		Client:    f.Client,
		Policy:    f.RetryPolicy,
	}

	cmd := &cobra.Command{
		Use:   "totals",
		Short: "Show org-wide host counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			if runF != nil {
				return runF(cmd.Context(), opts)
			}
			return totalsRun(cmd.Context(), opts)
		},
	}

	opts.Format = cmdutil.AddFormatFlags(cmd)

	return cmd
}

func totalsRun(ctx context.Context, opts *TotalsOptions) error {
	ios := opts.IOStreams

	client, err := opts.Client()
	if err != nil {
		return err
	}

	totals, err := cmdutil.CallAPI(ctx, ios, opts.Policy(), "Fetching host totals...", func() (*api.HostTotals, error) {
		return client.GetHostTotals(ctx)
	})
	if err != nil {
		return cmdutil.HandleFailure(ios, opts.Format, err)
	}

	if opts.Format.IsJSON() {
		return cmdutil.WriteJSON(ios.Out, totals)
	}

	fmt.Fprintf(ios.Out, "Up:     %d\n", totals.TotalUp)
	fmt.Fprintf(ios.Out, "Active: %d\n", totals.TotalActive)
	return nil
}

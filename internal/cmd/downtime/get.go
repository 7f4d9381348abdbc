package downtime

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

// GetOptions holds options for the downtime get command.
type GetOptions struct {
	IOStreams *iostreams.IOStreams
	Client    func() (*api.Client, error)
	Policy    func() retry.Policy

	Format *cmdutil.FormatFlags
	ID     int64
}

// NewCmdGet creates the downtime get command.
func NewCmdGet(f *cmdutil.Factory, runF func(context.Context, *GetOptions) error) *cobra.Command {
	opts := &GetOptions{
		IOStreams: f.IOStreams,
		Client:    f.Client,
		Policy:    f.RetryPolicy,
	}

	cmd := &cobra.Command{
		Use:   "get <downtime-id>",
		Short: "Show one downtime",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseDowntimeID(args[0])
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

	d, err := cmdutil.CallAPI(ctx, ios, opts.Policy(), "Fetching downtime...", func() (*api.Downtime, error) {
		return client.GetDowntime(ctx, opts.ID)
	})
	if err != nil {
		return cmdutil.HandleFailure(ios, opts.Format, err)
	}

	if opts.Format.IsJSON() {
		return cmdutil.WriteJSON(ios.Out, d)
	}

	cs := ios.ColorScheme()
	out := ios.Out
	fmt.Fprintf(out, "%s\n", cs.Bold(fmt.Sprintf("Downtime %d", d.ID)))
	fmt.Fprintf(out, "Active:  %v\n", d.Active)
	fmt.Fprintf(out, "Scope:   %s\n", strings.Join(d.Scope, " "))
	fmt.Fprintf(out, "Start:   %s\n", formatEpoch(d.Start))
	fmt.Fprintf(out, "End:     %s\n", formatEpoch(d.End))
	if d.MonitorID != nil {
		fmt.Fprintf(out, "Monitor: %d\n", *d.MonitorID)
	}
	if d.Message != "" {
		fmt.Fprintf(out, "\n%s\n", d.Message)
	}
	return nil
}

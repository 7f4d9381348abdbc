package metric

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/schmitthub/ddog/internal/api"
	"github.com/schmitthub/ddog/internal/cmdutil"
	"github.com/schmitthub/ddog/internal/iostreams"
	"github.com/schmitthub/ddog/internal/retry"
)

// MetadataOptions holds options for the metric metadata command.
type MetadataOptions struct {
	IOStreams *iostreams.IOStreams
	Client    func() (*api.Client, error)
	Policy    func() retry.Policy

	Format *cmdutil.FormatFlags
	Name   string
}

// NewCmdMetadata creates the metric metadata command.
func NewCmdMetadata(f *cmdutil.Factory, runF func(context.Context, *MetadataOptions) error) *cobra.Command {
	opts := &MetadataOptions{
		IOStreams: f.IOStreams,
		Client:    f.Client,
		Policy:    f.RetryPolicy,
	}

	cmd := &cobra.Command{
		Use:   "metadata <metric-name>",
		Short: "Show a metric's metadata",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Name = args[0]

			if runF != nil {
				return runF(cmd.Context(), opts)
			}
			return metadataRun(cmd.Context(), opts)
		},
	}

	opts.Format = cmdutil.AddFormatFlags(cmd)

	return cmd
}

func metadataRun(ctx context.Context, opts *MetadataOptions) error {
	ios := opts.IOStreams

	client, err := opts.Client()
	if err != nil {
		return err
	}

	md, err := cmdutil.CallAPI(ctx, ios, opts.Policy(), "Fetching metadata...", func() (*api.MetricMetadata, error) {
		return client.GetMetricMetadata(ctx, opts.Name)
	})
	if err != nil {
		return cmdutil.HandleFailure(ios, opts.Format, err)
	}

	if opts.Format.IsJSON() {
		return cmdutil.WriteJSON(ios.Out, md)
	}

	cs := ios.ColorScheme()
	fmt.Fprintln(ios.Out, cs.Bold(opts.Name))
	fmt.Fprintf(ios.Out, "Type:        %s\n", md.Type)
	if md.Unit != "" {
		unit := md.Unit
		if md.PerUnit != "" {
			unit += "/" + md.PerUnit
		}
		fmt.Fprintf(ios.Out, "Unit:        %s\n", unit)
	}
	if md.StatsdInterval > 0 {
		fmt.Fprintf(ios.Out, "Interval:    %ds\n", md.StatsdInterval)
	}
	if md.Description != "" {
		fmt.Fprintf(ios.Out, "Description: %s\n", md.Description)
	}
	return nil
}

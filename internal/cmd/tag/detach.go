package tag

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/schmitthub/ddog/internal/api"
	"github.com/schmitthub/ddog/internal/cmdutil"
	"github.com/schmitthub/ddog/internal/iostreams"
	"github.com/schmitthub/ddog/internal/retry"
)

// DetachOptions holds options for the tag detach command.
type DetachOptions struct {
	IOStreams *iostreams.IOStreams
	Client    func() (*api.Client, error)
	Policy    func() retry.Policy

	Format    *cmdutil.FormatFlags
	Hostname  string
	Source    string
	Confirmed bool
}

// NewCmdDetach creates the tag detach command.
func NewCmdDetach(f *cmdutil.Factory, runF func(context.Context, *DetachOptions) error) *cobra.Command {
	opts := &DetachOptions{
		IOStreams: f.IOStreams,
		Client:    f.Client,
		Policy:    f.RetryPolicy,
	}

	cmd := &cobra.Command{
		Use:   "detach <hostname>",
		Short: "Detach all tags from a host",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Hostname = args[0]

			if runF != nil {
				return runF(cmd.Context(), opts)
			}
			return detachRun(cmd.Context(), opts)
		},
	}

	opts.Format = cmdutil.AddFormatFlags(cmd)
	cmd.Flags().StringVar(&opts.Source, "source", "", "Tag source (e.g. user, chef)")
	cmd.Flags().BoolVar(&opts.Confirmed, "confirm", false, "Skip the confirmation prompt")

	return cmd
}

func detachRun(ctx context.Context, opts *DetachOptions) error {
	ios := opts.IOStreams

	ok, err := cmdutil.Confirm(ios, fmt.Sprintf("Detach all tags from %s?", opts.Hostname), opts.Confirmed)
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

	_, err = cmdutil.CallAPI(ctx, ios, opts.Policy(), "Detaching tags...", func() (struct{}, error) {
		return struct{}{}, client.DeleteHostTags(ctx, opts.Hostname, opts.Source)
	})
	if err != nil {
		return cmdutil.HandleFailure(ios, opts.Format, err)
	}

	cs := ios.ColorScheme()
	fmt.Fprintf(ios.Out, "%s Detached all tags from %s\n", cs.Green("✓"), opts.Hostname)
	return nil
}

package downtime

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/schmitthub/ddog/internal/api"
	"github.com/schmitthub/ddog/internal/cmdutil"
	"github.com/schmitthub/ddog/internal/iostreams"
	"github.com/schmitthub/ddog/internal/retry"
	"github.com/schmitthub/ddog/internal/text"
)

// CancelScopeOptions holds options for the cancel-by-scope command.
type CancelScopeOptions struct {
	IOStreams *iostreams.IOStreams
	Client    func() (*api.Client, error)
	Policy    func() retry.Policy

	Format    *cmdutil.FormatFlags
	Scope     string
	Confirmed bool
}

// NewCmdCancelScope creates the downtime cancel-by-scope command.
func NewCmdCancelScope(f *cmdutil.Factory, runF func(context.Context, *CancelScopeOptions) error) *cobra.Command {
	opts := &CancelScopeOptions{
		IOStreams: f.IOStreams,
		Client:    f.Client,
		Policy:    f.RetryPolicy,
	}

	cmd := &cobra.Command{
		Use:   "cancel-by-scope <scope>",
		Short: "Cancel every active downtime matching a scope",
		Example: `  ddog downtime cancel-by-scope "host:web-01"
  ddog downtime cancel-by-scope "env:staging" --confirm`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Scope = args[0]

			if runF != nil {
				return runF(cmd.Context(), opts)
			}
			return cancelScopeRun(cmd.Context(), opts)
		},
	}

	opts.Format = cmdutil.AddFormatFlags(cmd)
	cmd.Flags().BoolVar(&opts.Confirmed, "confirm", false, "Skip the confirmation prompt")

	return cmd
}

func cancelScopeRun(ctx context.Context, opts *CancelScopeOptions) error {
	ios := opts.IOStreams

	ok, err := cmdutil.Confirm(ios, fmt.Sprintf("Cancel all downtimes with scope %q?", opts.Scope), opts.Confirmed)
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

	ids, err := cmdutil.CallAPI(ctx, ios, opts.Policy(), "Cancelling downtimes...", func() ([]int64, error) {
		return client.CancelDowntimesByScope(ctx, opts.Scope)
	})
	if err != nil {
		return cmdutil.HandleFailure(ios, opts.Format, err)
	}

	if opts.Format.IsJSON() {
		return cmdutil.WriteJSON(ios.Out, map[string][]int64{"cancelled_ids": ids})
	}

	cs := ios.ColorScheme()
	fmt.Fprintf(ios.Out, "%s Cancelled %s for scope %q\n",
		cs.Green("✓"), text.Pluralize(len(ids), "downtime"), opts.Scope)
	return nil
}

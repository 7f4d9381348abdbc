package downtime

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/schmitthub/ddog/internal/api"
	"github.com/schmitthub/ddog/internal/cmdutil"
	"github.com/schmitthub/ddog/internal/iostreams"
	"github.com/schmitthub/ddog/internal/retry"
	"github.com/schmitthub/ddog/internal/timerange"
)

// UpdateOptions holds options for the downtime update command.
type UpdateOptions struct {
	IOStreams *iostreams.IOStreams
	Client    func() (*api.Client, error)
	Policy    func() retry.Policy
	Now       func() time.Time

	Format  *cmdutil.FormatFlags
	ID      int64
	Scope   []string
	End     string
	Message string
}

// NewCmdUpdate creates the downtime update command.
func NewCmdUpdate(f *cmdutil.Factory, runF func(context.Context, *UpdateOptions) error) *cobra.Command {
	opts := &UpdateOptions{
		IOStreams: f.IOStreams,
		Client:    f.Client,
		Policy:    f.RetryPolicy,
		Now:       f.Now,
	}

	cmd := &cobra.Command{
		Use:   "update <downtime-id>",
		Short: "Update a downtime",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseDowntimeID(args[0])
			if err != nil {
				return err
			}
			opts.ID = id

			if len(opts.Scope) == 0 && opts.End == "" && opts.Message == "" {
				return cmdutil.FlagErrorf("nothing to update; pass --scope, --end, or --message")
			}

			if runF != nil {
				return runF(cmd.Context(), opts)
			}
			return updateRun(cmd.Context(), opts)
		},
	}

	opts.Format = cmdutil.AddFormatFlags(cmd)
	cmd.Flags().StringArrayVar(&opts.Scope, "scope", nil, "Replace the downtime scope (repeatable)")
	cmd.Flags().StringVar(&opts.End, "end", "", "New end as a duration from now (2h) or timestamp")
	cmd.Flags().StringVar(&opts.Message, "message", "", "New message")

	return cmd
}

func updateRun(ctx context.Context, opts *UpdateOptions) error {
	ios := opts.IOStreams

	body := api.Downtime{
		Scope:   opts.Scope,
		Message: opts.Message,
	}
	if opts.End != "" {
		ts, err := timerange.Until(opts.End, opts.Now())
		if err != nil {
			return cmdutil.FlagErrorWrap(err)
		}
		body.End = ts
	}

	client, err := opts.Client()
	if err != nil {
		return err
	}

	updated, err := cmdutil.CallAPI(ctx, ios, opts.Policy(), "Updating downtime...", func() (*api.Downtime, error) {
		return client.UpdateDowntime(ctx, opts.ID, body)
	})
	if err != nil {
		return cmdutil.HandleFailure(ios, opts.Format, err)
	}

	if opts.Format.IsJSON() {
		return cmdutil.WriteJSON(ios.Out, updated)
	}

	cs := ios.ColorScheme()
	fmt.Fprintf(ios.Out, "%s Updated downtime %d\n", cs.Green("✓"), updated.ID)
	return nil
}

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

// CreateOptions holds options for the downtime create command.
type CreateOptions struct {
	IOStreams *iostreams.IOStreams
	Client    func() (*api.Client, error)
	Policy    func() retry.Policy
	Now       func() time.Time

	Format    *cmdutil.FormatFlags
	Scope     []string
	Start     string
	End       string
	Message   string
	MonitorID int64
}

// NewCmdCreate creates the downtime create command.
func NewCmdCreate(f *cmdutil.Factory, runF func(context.Context, *CreateOptions) error) *cobra.Command {
	opts := &CreateOptions{
		IOStreams: f.IOStreams,
		Client:    f.Client,
		Policy:    f.RetryPolicy,
		Now:       f.Now,
	}

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Schedule a downtime",
		Example: `  # Mute env:prod for the next two hours
  ddog downtime create --scope env:prod --end 2h --message "maintenance"

  # Downtime for one monitor with absolute bounds
  ddog downtime create --scope host:web-01 --monitor 12345 \
    --start 2026-03-01T00:00:00Z --end 2026-03-01T04:00:00Z`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(opts.Scope) == 0 {
				return cmdutil.FlagErrorf("--scope is required")
			}

			if runF != nil {
				return runF(cmd.Context(), opts)
			}
			return createRun(cmd.Context(), opts)
		},
	}

	opts.Format = cmdutil.AddFormatFlags(cmd)
	cmd.Flags().StringArrayVar(&opts.Scope, "scope", nil, "Scope the downtime applies to (repeatable)")
	cmd.Flags().StringVar(&opts.Start, "start", "", "Start as a duration from now (1h) or timestamp; default now")
	cmd.Flags().StringVar(&opts.End, "end", "", "End as a duration from now (2h) or timestamp; default open-ended")
	cmd.Flags().StringVar(&opts.Message, "message", "", "Why the downtime is scheduled")
	cmd.Flags().Int64Var(&opts.MonitorID, "monitor", 0, "Restrict the downtime to one monitor ID")

	return cmd
}

func (opts *CreateOptions) downtimeBody() (api.Downtime, error) {
	d := api.Downtime{
		Scope:   opts.Scope,
		Message: opts.Message,
	}
	if opts.MonitorID != 0 {
		d.MonitorID = &opts.MonitorID
	}

	now := opts.Now()
	if opts.Start != "" {
		ts, err := timerange.Until(opts.Start, now)
		if err != nil {
			return api.Downtime{}, cmdutil.FlagErrorWrap(err)
		}
		d.Start = ts
	}
	if opts.End != "" {
		ts, err := timerange.Until(opts.End, now)
		if err != nil {
			return api.Downtime{}, cmdutil.FlagErrorWrap(err)
		}
		d.End = ts
	}
	if d.Start != 0 && d.End != 0 && d.Start > d.End {
		return api.Downtime{}, cmdutil.FlagErrorf("downtime starts after it ends")
	}
	return d, nil
}

func createRun(ctx context.Context, opts *CreateOptions) error {
	ios := opts.IOStreams

	body, err := opts.downtimeBody()
	if err != nil {
		return err
	}

	client, err := opts.Client()
	if err != nil {
		return err
	}

	created, err := cmdutil.CallAPI(ctx, ios, opts.Policy(), "Scheduling downtime...", func() (*api.Downtime, error) {
		return client.CreateDowntime(ctx, body)
	})
	if err != nil {
		return cmdutil.HandleFailure(ios, opts.Format, err)
	}

	if opts.Format.IsJSON() {
		return cmdutil.WriteJSON(ios.Out, created)
	}

	cs := ios.ColorScheme()
	fmt.Fprintf(ios.Out, "%s Scheduled downtime %d\n", cs.Green("✓"), created.ID)
	return nil
}

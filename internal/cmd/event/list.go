package event

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/schmitthub/ddog/internal/api"
	"github.com/schmitthub/ddog/internal/cmdutil"
	"github.com/schmitthub/ddog/internal/config"
	"github.com/schmitthub/ddog/internal/iostreams"
	"github.com/schmitthub/ddog/internal/retry"
	"github.com/schmitthub/ddog/internal/text"
)

// ListOptions holds options for the event list command.
type ListOptions struct {
	IOStreams *iostreams.IOStreams
	Client    func() (*api.Client, error)
	Config    func() (*config.Config, error)
	Policy    func() retry.Policy
	Now       func() time.Time

	Format   *cmdutil.FormatFlags
	Range    *cmdutil.RangeFlags
	Priority string
	Sources  string
	Tags     string
}

// NewCmdList creates the event list command.
func NewCmdList(f *cmdutil.Factory, runF func(context.Context, *ListOptions) error) *cobra.Command {
	opts := &ListOptions{
		IOStreams: f.IOStreams,
		Client:    f.Client,
		Config:    f.Config,
		Policy:    f.RetryPolicy,
		Now:       f.Now,
	}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List events in a time window",
		Example: `  # Events from the last hour
  ddog event list

  # Normal-priority deploy events from the last day
  ddog event list --from 1d --priority normal --sources jenkins`,
		RunE: func(cmd *cobra.Command, args []string) error {
			switch opts.Priority {
			case "", "normal", "low":
			default:
				return cmdutil.FlagErrorf("invalid priority %q (expected normal or low)", opts.Priority)
			}

			if runF != nil {
				return runF(cmd.Context(), opts)
			}
			return listRun(cmd.Context(), opts)
		},
	}

	opts.Format = cmdutil.AddFormatFlags(cmd)
	opts.Range = cmdutil.AddRangeFlags(cmd)
	cmd.Flags().StringVar(&opts.Priority, "priority", "", "Filter by priority (normal or low)")
	cmd.Flags().StringVar(&opts.Sources, "sources", "", "Filter by sources (comma-separated)")
	cmd.Flags().StringVar(&opts.Tags, "tags", "", "Filter by tags (comma-separated)")

	return cmd
}

func listRun(ctx context.Context, opts *ListOptions) error {
	ios := opts.IOStreams

	cfg, err := opts.Config()
	if err != nil {
		return err
	}
	window, err := opts.Range.Resolve(cfg.DefaultTimeRange, opts.Now())
	if err != nil {
		return err
	}

	client, err := opts.Client()
	if err != nil {
		return err
	}

	filter := api.EventFilter{
		Start:    window.From,
		End:      window.To,
		Priority: opts.Priority,
		Sources:  opts.Sources,
		Tags:     opts.Tags,
	}
	events, err := cmdutil.CallAPI(ctx, ios, opts.Policy(), "Fetching events...", func() ([]api.Event, error) {
		return client.ListEvents(ctx, filter)
	})
	if err != nil {
		return cmdutil.HandleFailure(ios, opts.Format, err)
	}

	switch {
	case opts.Format.Quiet:
		for _, e := range events {
			fmt.Fprintln(ios.Out, e.ID)
		}
		return nil

	case opts.Format.IsJSON():
		return cmdutil.WriteJSON(ios.Out, events)

	default:
		if len(events) == 0 {
			fmt.Fprintln(ios.ErrOut, "No events in the window.")
			return nil
		}
		tp := ios.NewTablePrinter("ID", "TIME", "SOURCE", "PRIORITY", "TITLE")
		for _, e := range events {
			tp.AddRow(
				strconv.FormatInt(e.ID, 10),
				time.Unix(e.DateHappened, 0).UTC().Format("2006-01-02 15:04"),
				e.Source,
				e.Priority,
				text.Truncate(e.Title, 60),
			)
		}
		if err := tp.Render(); err != nil {
			return err
		}
		fmt.Fprintf(ios.ErrOut, "\nTotal events: %d\n", len(events))
		return nil
	}
}

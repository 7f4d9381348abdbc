package logs

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/schmitthub/ddog/internal/api"
	"github.com/schmitthub/ddog/internal/cmdutil"
	"github.com/schmitthub/ddog/internal/config"
	"github.com/schmitthub/ddog/internal/iostreams"
	"github.com/schmitthub/ddog/internal/retry"
)

// SearchOptions holds options for the logs search command.
type SearchOptions struct {
	IOStreams *iostreams.IOStreams
	Client    func() (*api.Client, error)
	Config    func() (*config.Config, error)
	Policy    func() retry.Policy
	Now       func() time.Time

	Format  *cmdutil.FormatFlags
	Range   *cmdutil.RangeFlags
	Query   string
	Service string
	Status  string
	Limit   int
}

// fullQuery folds the --service and --status filters into the search
// query, the same syntax a user could type by hand.
func (opts *SearchOptions) fullQuery() string {
	q := opts.Query
	if opts.Service != "" {
		q += " service:" + opts.Service
	}
	if opts.Status != "" {
		q += " status:" + opts.Status
	}
	return q
}

// NewCmdSearch creates the logs search command.
func NewCmdSearch(f *cmdutil.Factory, runF func(context.Context, *SearchOptions) error) *cobra.Command {
	opts := &SearchOptions{
		IOStreams: f.IOStreams,
		Client:    f.Client,
		Config:    f.Config,
		Policy:    f.RetryPolicy,
		Now:       f.Now,
	}

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search logs in a time window",
		Example: `  # Errors from the web service over the last hour
  ddog logs search "service:web status:error"

  # A wider window, more results
  ddog logs search "service:web" --from 1d --limit 500`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Query = args[0]

			if opts.Limit < 1 || opts.Limit > 1000 {
				return cmdutil.FlagErrorf("--limit must be between 1 and 1000")
			}

			if runF != nil {
				return runF(cmd.Context(), opts)
			}
			return searchRun(cmd.Context(), opts)
		},
	}

	opts.Format = cmdutil.AddFormatFlags(cmd)
	opts.Range = cmdutil.AddRangeFlags(cmd)
	cmd.Flags().StringVar(&opts.Service, "service", "", "Filter by service name")
	cmd.Flags().StringVar(&opts.Status, "status", "", "Filter by log status (error, warn, info, debug)")
	cmd.Flags().IntVar(&opts.Limit, "limit", 100, "Maximum events to return (1-1000)")

	return cmd
}

func searchRun(ctx context.Context, opts *SearchOptions) error {
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

	query := api.LogsQuery{
		Query: opts.fullQuery(),
		From:  epochMillis(window.From),
		To:    epochMillis(window.To),
		Limit: opts.Limit,
	}
	resp, err := cmdutil.CallAPI(ctx, ios, opts.Policy(), "Searching logs...", func() (*api.LogsResponse, error) {
		return client.SearchLogs(ctx, query)
	})
	if err != nil {
		return cmdutil.HandleFailure(ios, opts.Format, err)
	}

	if opts.Format.IsJSON() {
		return cmdutil.WriteJSON(ios.Out, resp.Events)
	}

	for _, e := range resp.Events {
		printLogLine(ios, e)
	}
	return nil
}

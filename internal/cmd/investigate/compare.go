package investigate

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

// CompareOptions holds options for the investigate compare command.
type CompareOptions struct {
	IOStreams *iostreams.IOStreams
	Client    func() (*api.Client, error)
	Config    func() (*config.Config, error)
	Policy    func() retry.Policy
	Now       func() time.Time

	Format *cmdutil.FormatFlags
	Range  *cmdutil.RangeFlags
	Query  string
}

// NewCmdCompare creates the investigate compare command.
func NewCmdCompare(f *cmdutil.Factory, runF func(context.Context, *CompareOptions) error) *cobra.Command {
	opts := &CompareOptions{
		IOStreams: f.IOStreams,
		Client:    f.Client,
		Config:    f.Config,
		Policy:    f.RetryPolicy,
		Now:       f.Now,
	}

	cmd := &cobra.Command{
		Use:   "compare <query>",
		Short: "Compare a query against the previous window",
		Example: `  # Is p95 latency worse than an hour ago?
  ddog investigate compare "p95:trace.http.request.duration{service:web}"

  # Day-over-day
  ddog investigate compare "sum:requests.count{*}.as_rate()" --from 1d`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Query = args[0]

			if runF != nil {
				return runF(cmd.Context(), opts)
			}
			return compareRun(cmd.Context(), opts)
		},
	}

	opts.Format = cmdutil.AddFormatFlags(cmd)
	opts.Range = cmdutil.AddRangeFlags(cmd)

	return cmd
}

func compareRun(ctx context.Context, opts *CompareOptions) error {
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

	c, err := compareWindows(ctx, ios, client, opts.Policy(), opts.Query, window)
	if err != nil {
		return cmdutil.HandleFailure(ios, opts.Format, err)
	}

	if opts.Format.IsJSON() {
		return cmdutil.WriteJSON(ios.Out, c)
	}

	printComparison(ios, "value", c, true)
	return nil
}

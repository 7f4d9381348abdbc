package metric

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/spf13/cobra"

	"github.com/schmitthub/ddog/internal/api"
	"github.com/schmitthub/ddog/internal/cmdutil"
	"github.com/schmitthub/ddog/internal/config"
	"github.com/schmitthub/ddog/internal/iostreams"
	"github.com/schmitthub/ddog/internal/retry"
)

// QueryOptions holds options for the metric query command.
type QueryOptions struct {
	IOStreams *iostreams.IOStreams
	Client    func() (*api.Client, error)
	Config    func() (*config.Config, error)
	Policy    func() retry.Policy
	Now       func() time.Time

	Format *cmdutil.FormatFlags
	Range  *cmdutil.RangeFlags
	Query  string
}

// NewCmdQuery creates the metric query command.
func NewCmdQuery(f *cmdutil.Factory, runF func(context.Context, *QueryOptions) error) *cobra.Command {
	opts := &QueryOptions{
		IOStreams: f.IOStreams,
		Client:    f.Client,
		Config:    f.Config,
		Policy:    f.RetryPolicy,
		Now:       f.Now,
	}

	cmd := &cobra.Command{
		Use:   "query <query>",
		Short: "Run a timeseries query",
		Example: `  # Average CPU over the last hour
  ddog metric query "avg:system.cpu.user{env:prod}"

  # A custom window
  ddog metric query "sum:requests.count{*}.as_rate()" --from 1d --to 12h

  # Absolute bounds
  ddog metric query "avg:system.load.1{*}" \
    --from 2026-02-10T00:00:00Z --to 2026-02-10T06:00:00Z`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Query = args[0]

			if runF != nil {
				return runF(cmd.Context(), opts)
			}
			return queryRun(cmd.Context(), opts)
		},
	}

	opts.Format = cmdutil.AddFormatFlags(cmd)
	opts.Range = cmdutil.AddRangeFlags(cmd)

	return cmd
}

func queryRun(ctx context.Context, opts *QueryOptions) error {
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

	resp, err := cmdutil.CallAPI(ctx, ios, opts.Policy(), "Querying metrics...", func() (*api.MetricQueryResponse, error) {
		return client.QueryMetrics(ctx, window.From, window.To, opts.Query)
	})
	if err != nil {
		return cmdutil.HandleFailure(ios, opts.Format, err)
	}

	if opts.Format.IsJSON() {
		return cmdutil.WriteJSON(ios.Out, resp)
	}

	if len(resp.Series) == 0 {
		fmt.Fprintln(ios.ErrOut, "No data points in the window.")
		return nil
	}

	tp := ios.NewTablePrinter("METRIC", "SCOPE", "POINTS", "MIN", "AVG", "MAX", "LAST")
	for _, s := range resp.Series {
		st := summarize(s.Pointlist)
		tp.AddRow(s.Metric, s.Scope,
			fmt.Sprint(st.count),
			formatValue(st.min), formatValue(st.avg), formatValue(st.max), formatValue(st.last))
	}
	if err := tp.Render(); err != nil {
		return err
	}

	fmt.Fprintf(ios.ErrOut, "\nWindow: %s to %s\n",
		window.FromTime().Format(time.RFC3339), window.ToTime().Format(time.RFC3339))
	return nil
}

type seriesStats struct {
	count                int
	min, avg, max, last float64
}

// summarize folds a pointlist into display stats. Points arrive as
// [timestamp_ms, value] pairs; NaN values (gaps) are skipped.
func summarize(points [][2]float64) seriesStats {
	st := seriesStats{min: math.Inf(1), max: math.Inf(-1)}
	sum := 0.0
	for _, p := range points {
		v := p[1]
		if math.IsNaN(v) {
			continue
		}
		st.count++
		sum += v
		st.min = math.Min(st.min, v)
		st.max = math.Max(st.max, v)
		st.last = v
	}
	if st.count > 0 {
		st.avg = sum / float64(st.count)
	} else {
		st.min, st.max = 0, 0
	}
	return st
}

func formatValue(v float64) string {
	switch {
	case v == math.Trunc(v) && math.Abs(v) < 1e15:
		return fmt.Sprintf("%.0f", v)
	case math.Abs(v) >= 100:
		return fmt.Sprintf("%.1f", v)
	default:
		return fmt.Sprintf("%.3f", v)
	}
}

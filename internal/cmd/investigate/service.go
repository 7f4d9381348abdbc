package investigate

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/schmitthub/ddog/internal/api"
	"github.com/schmitthub/ddog/internal/cmdutil"
	"github.com/schmitthub/ddog/internal/config"
	"github.com/schmitthub/ddog/internal/iostreams"
	"github.com/schmitthub/ddog/internal/retry"
	"github.com/schmitthub/ddog/internal/timerange"
)

// ServiceOptions holds options shared by the latency, errors, and
// throughput commands.
type ServiceOptions struct {
	IOStreams *iostreams.IOStreams
	Client    func() (*api.Client, error)
	Config    func() (*config.Config, error)
	Policy    func() retry.Policy
	Now       func() time.Time

	Format  *cmdutil.FormatFlags
	Range   *cmdutil.RangeFlags
	Service string
	Env     string
}

// scope renders the tag filter for the service queries.
func (opts *ServiceOptions) scope() string {
	if opts.Env == "" {
		return "service:" + opts.Service
	}
	return fmt.Sprintf("service:%s,env:%s", opts.Service, opts.Env)
}

func serviceCommand(f *cmdutil.Factory, use, short string, runF func(context.Context, *ServiceOptions) error, defaultRun func(context.Context, *ServiceOptions) error) *cobra.Command {
	opts := &ServiceOptions{
		IOStreams: f.IOStreams,
		Client:    f.Client,
		Config:    f.Config,
		Policy:    f.RetryPolicy,
		Now:       f.Now,
	}

	cmd := &cobra.Command{
		Use:   use + " <service>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Service = args[0]

			if runF != nil {
				return runF(cmd.Context(), opts)
			}
			return defaultRun(cmd.Context(), opts)
		},
	}

	opts.Format = cmdutil.AddFormatFlags(cmd)
	opts.Range = cmdutil.AddRangeFlags(cmd)
	cmd.Flags().StringVar(&opts.Env, "env", "", "Restrict to one environment (e.g. prod)")

	return cmd
}

// NewCmdLatency creates the investigate latency command.
func NewCmdLatency(f *cmdutil.Factory, runF func(context.Context, *ServiceOptions) error) *cobra.Command {
	return serviceCommand(f, "latency", "Compare a service's request latency to the previous window", runF, latencyRun)
}

// NewCmdThroughput creates the investigate throughput command.
func NewCmdThroughput(f *cmdutil.Factory, runF func(context.Context, *ServiceOptions) error) *cobra.Command {
	return serviceCommand(f, "throughput", "Compare a service's request rate to the previous window", runF, throughputRun)
}

// NewCmdErrors creates the investigate errors command.
func NewCmdErrors(f *cmdutil.Factory, runF func(context.Context, *ServiceOptions) error) *cobra.Command {
	return serviceCommand(f, "errors", "Compare a service's error rate and show recent error logs", runF, errorsRun)
}

// labeledQuery pairs a display label with the query it runs.
type labeledQuery struct {
	label string
	query string
}

func latencyRun(ctx context.Context, opts *ServiceOptions) error {
	queries := []labeledQuery{
		{"p50", fmt.Sprintf("p50:trace.http.request.duration{%s}", opts.scope())},
		{"p95", fmt.Sprintf("p95:trace.http.request.duration{%s}", opts.scope())},
		{"p99", fmt.Sprintf("p99:trace.http.request.duration{%s}", opts.scope())},
	}
	return runComparisons(ctx, opts, queries, true, nil)
}

func throughputRun(ctx context.Context, opts *ServiceOptions) error {
	queries := []labeledQuery{
		{"hits/s", fmt.Sprintf("sum:trace.http.request.hits{%s}.as_rate()", opts.scope())},
	}
	return runComparisons(ctx, opts, queries, false, nil)
}

func errorsRun(ctx context.Context, opts *ServiceOptions) error {
	queries := []labeledQuery{
		{"errors/s", fmt.Sprintf("sum:trace.http.request.errors{%s}.as_rate()", opts.scope())},
	}
	return runComparisons(ctx, opts, queries, true, recentErrorLogs)
}

// recentErrorLogs is the extra step for errors: pull the latest error
// logs for the service so the numbers come with evidence.
func recentErrorLogs(ctx context.Context, opts *ServiceOptions, client *api.Client, window timerange.Range) error {
	ios := opts.IOStreams

	query := api.LogsQuery{
		Query: fmt.Sprintf("service:%s status:error", opts.Service),
		From:  fmt.Sprintf("%d", window.From*1000),
		To:    fmt.Sprintf("%d", window.To*1000),
		Limit: 5,
	}
	resp, err := cmdutil.CallAPI(ctx, ios, opts.Policy(), "Fetching recent error logs...", func() (*api.LogsResponse, error) {
		return client.SearchLogs(ctx, query)
	})
	if err != nil {
		return cmdutil.HandleFailure(ios, opts.Format, err)
	}

	if len(resp.Events) == 0 {
		fmt.Fprintln(ios.Out, "\nNo error logs in the window.")
		return nil
	}
	cs := ios.ColorScheme()
	fmt.Fprintf(ios.Out, "\n%s\n", cs.Bold("Recent error logs"))
	for _, e := range resp.Events {
		msg := e.Attributes.Message
		if len(msg) > 120 {
			msg = msg[:117] + "..."
		}
		fmt.Fprintf(ios.Out, "  %s %s\n", cs.Gray(e.Attributes.Timestamp), msg)
	}
	return nil
}

func runComparisons(ctx context.Context, opts *ServiceOptions, queries []labeledQuery, badWhenUp bool, extra func(context.Context, *ServiceOptions, *api.Client, timerange.Range) error) error {
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

	results := make(map[string]comparison, len(queries))
	for _, q := range queries {
		c, err := compareWindows(ctx, ios, client, opts.Policy(), q.query, window)
		if err != nil {
			return cmdutil.HandleFailure(ios, opts.Format, err)
		}
		results[q.label] = c
	}

	if opts.Format.IsJSON() {
		return cmdutil.WriteJSON(ios.Out, results)
	}

	cs := ios.ColorScheme()
	fmt.Fprintf(ios.Out, "%s  %s\n", cs.Bold(opts.Service),
		cs.Gray(fmt.Sprintf("%s to %s",
			window.FromTime().Format(time.RFC3339), window.ToTime().Format(time.RFC3339))))
	for _, q := range queries {
		printComparison(ios, q.label, results[q.label], badWhenUp)
	}

	if extra != nil {
		return extra(ctx, opts, client, window)
	}
	return nil
}

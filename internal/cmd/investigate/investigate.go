// Package investigate implements the "ddog investigate" command group:
// opinionated multi-query pipelines for triaging a service.
package investigate

import (
	"context"
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"github.com/schmitthub/ddog/internal/api"
	"github.com/schmitthub/ddog/internal/cmdutil"
	"github.com/schmitthub/ddog/internal/iostreams"
	"github.com/schmitthub/ddog/internal/retry"
	"github.com/schmitthub/ddog/internal/timerange"
)

// NewCmdInvestigate creates the investigate command group.
func NewCmdInvestigate(f *cmdutil.Factory) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "investigate <command>",
		Short: "Triage a service with canned query pipelines",
		Long: `Run the queries an on-call engineer reaches for first: current
values next to the same window one period earlier, so a regression
stands out immediately.`,
	}

	cmd.AddCommand(NewCmdCompare(f, nil))
	cmd.AddCommand(NewCmdLatency(f, nil))
	cmd.AddCommand(NewCmdErrors(f, nil))
	cmd.AddCommand(NewCmdThroughput(f, nil))

	return cmd
}

// windowAverage runs one metric query and folds every series into a
// single mean. Gaps (NaN points) are skipped.
func windowAverage(ctx context.Context, ios *iostreams.IOStreams, client *api.Client, policy retry.Policy, label, query string, window timerange.Range) (float64, int, error) {
	resp, err := cmdutil.CallAPI(ctx, ios, policy, label, func() (*api.MetricQueryResponse, error) {
		return client.QueryMetrics(ctx, window.From, window.To, query)
	})
	if err != nil {
		return 0, 0, err
	}

	sum, count := 0.0, 0
	for _, s := range resp.Series {
		for _, p := range s.Pointlist {
			if math.IsNaN(p[1]) {
				continue
			}
			sum += p[1]
			count++
		}
	}
	if count == 0 {
		return 0, 0, nil
	}
	return sum / float64(count), count, nil
}

// previousWindow shifts a window back by its own width.
func previousWindow(w timerange.Range) timerange.Range {
	width := w.To - w.From
	return timerange.Range{From: w.From - width, To: w.To - width}
}

// comparison is the serialized result of a two-window comparison.
type comparison struct {
	Query         string  `json:"query"`
	Current       float64 `json:"current"`
	Previous      float64 `json:"previous"`
	ChangePercent float64 `json:"change_percent"`
	CurrentPoints int     `json:"current_points"`
}

func compareWindows(ctx context.Context, ios *iostreams.IOStreams, client *api.Client, policy retry.Policy, query string, window timerange.Range) (comparison, error) {
	current, points, err := windowAverage(ctx, ios, client, policy, "Querying current window...", query, window)
	if err != nil {
		return comparison{}, err
	}
	previous, _, err := windowAverage(ctx, ios, client, policy, "Querying previous window...", query, previousWindow(window))
	if err != nil {
		return comparison{}, err
	}

	c := comparison{
		Query:         query,
		Current:       current,
		Previous:      previous,
		CurrentPoints: points,
	}
	if previous != 0 {
		c.ChangePercent = (current - previous) / math.Abs(previous) * 100
	}
	return c, nil
}

// printComparison renders one comparison row with the change colored
// by direction. badWhenUp marks metrics where an increase is a
// regression (latency, errors).
func printComparison(ios *iostreams.IOStreams, label string, c comparison, badWhenUp bool) {
	cs := ios.ColorScheme()

	change := fmt.Sprintf("%+.1f%%", c.ChangePercent)
	switch {
	case c.CurrentPoints == 0:
		change = "no data"
	case c.ChangePercent > 5 && badWhenUp, c.ChangePercent < -5 && !badWhenUp:
		change = cs.Red(change)
	case c.ChangePercent > 5 || c.ChangePercent < -5:
		change = cs.Green(change)
	}

	fmt.Fprintf(ios.Out, "%-12s %14.3f  (was %.3f, %s)\n", label, c.Current, c.Previous, change)
}

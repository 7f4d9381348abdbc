package logs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/schmitthub/ddog/internal/api"
	"github.com/schmitthub/ddog/internal/cmdutil"
	"github.com/schmitthub/ddog/internal/iostreams"
	"github.com/schmitthub/ddog/internal/retry"
	"github.com/schmitthub/ddog/internal/timerange"
)

// TailOptions holds options for the logs tail command.
type TailOptions struct {
	IOStreams *iostreams.IOStreams
	Client    func() (*api.Client, error)
	Policy    func() retry.Policy
	Now       func() time.Time

	Format   *cmdutil.FormatFlags
	Query    string
	Service  string
	Since    string
	Interval int
}

// seenEvents is a bounded set of event IDs already printed. The server
// only returns a pagination cursor when another full page exists, so in
// the steady tail state consecutive polls overlap; this set suppresses
// the duplicates. Oldest entries are evicted first.
type seenEvents struct {
	ids   map[string]struct{}
	order []string
	limit int
}

func newSeenEvents(limit int) *seenEvents {
	return &seenEvents{ids: make(map[string]struct{}), limit: limit}
}

// add records id and reports whether it was new.
func (s *seenEvents) add(id string) bool {
	if _, ok := s.ids[id]; ok {
		return false
	}
	s.ids[id] = struct{}{}
	s.order = append(s.order, id)
	if len(s.order) > s.limit {
		delete(s.ids, s.order[0])
		s.order = s.order[1:]
	}
	return true
}

// NewCmdTail creates the logs tail command.
func NewCmdTail(f *cmdutil.Factory, runF func(context.Context, *TailOptions) error) *cobra.Command {
	opts := &TailOptions{
		IOStreams: f.IOStreams,
		Client:    f.Client,
		Policy:    f.RetryPolicy,
		Now:       f.Now,
	}

	cmd := &cobra.Command{
		Use:   "tail <query>",
		Short: "Follow logs as they arrive",
		Long: `Poll the log search API and print new events as they arrive,
resuming from the server cursor between polls. Stop with Ctrl+C.`,
		Example: `  ddog logs tail "service:web status:error"
  ddog logs tail "host:web-01" --since 5m --interval 10`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Query = args[0]

			if runF != nil {
				return runF(cmd.Context(), opts)
			}
			return tailRun(cmd.Context(), opts)
		},
	}

	opts.Format = cmdutil.AddFormatFlags(cmd)
	cmd.Flags().StringVar(&opts.Service, "service", "", "Filter by service name")
	cmd.Flags().StringVar(&opts.Since, "since", "1m", "How far back to start (e.g. 1m, 15m)")
	cmd.Flags().IntVar(&opts.Interval, "interval", 5, "Poll interval in seconds")

	return cmd
}

func tailRun(ctx context.Context, opts *TailOptions) error {
	ios := opts.IOStreams

	start, err := timerange.Parse(opts.Since, opts.Now())
	if err != nil {
		return cmdutil.FlagErrorWrap(err)
	}

	client, err := opts.Client()
	if err != nil {
		return err
	}

	interval := time.Duration(opts.Interval) * time.Second
	if interval < time.Second {
		interval = time.Second
	}

	q := opts.Query
	if opts.Service != "" {
		q += " service:" + opts.Service
	}
	query := api.LogsQuery{
		Query: q,
		From:  epochMillis(start),
		Limit: 100,
	}

	seen := newSeenEvents(1000)

	for {
		// Each poll runs to the current moment.
		query.To = epochMillis(opts.Now().Unix())

		resp, err := cmdutil.CallAPI(ctx, ios, opts.Policy(), "", func() (*api.LogsResponse, error) {
			return client.SearchLogs(ctx, query)
		})
		if err != nil {
			if errors.Is(err, context.Canceled) {
				fmt.Fprintln(ios.ErrOut, "Tail stopped")
				return nil
			}
			return cmdutil.HandleFailure(ios, opts.Format, err)
		}

		if err := printNewEvents(ios, opts.Format, seen, resp.Events); err != nil {
			return err
		}
		advanceWindow(&query, resp)

		select {
		case <-ctx.Done():
			fmt.Fprintln(ios.ErrOut, "Tail stopped")
			return nil
		case <-time.After(interval):
		}
	}
}

// printNewEvents renders the events not seen on a previous poll.
func printNewEvents(ios *iostreams.IOStreams, ff *cmdutil.FormatFlags, seen *seenEvents, events []api.LogEvent) error {
	for _, e := range events {
		if !seen.add(e.ID) {
			continue
		}
		if ff.IsJSON() {
			if err := cmdutil.WriteJSON(ios.Out, e); err != nil {
				return err
			}
			continue
		}
		printLogLine(ios, e)
	}
	return nil
}

// advanceWindow moves the poll position forward. The server only hands
// back a cursor when the page was full; without one, the window's lower
// bound moves up to the newest event so polls stop re-fetching entries
// already seen.
func advanceWindow(query *api.LogsQuery, resp *api.LogsResponse) {
	if resp.NextCursor != "" {
		query.Cursor = resp.NextCursor
		return
	}
	query.Cursor = ""
	if n := len(resp.Events); n > 0 {
		if ts, err := time.Parse(time.RFC3339, resp.Events[n-1].Attributes.Timestamp); err == nil {
			query.From = epochMillis(ts.Unix())
		}
	}
}

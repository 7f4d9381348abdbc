package event

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/schmitthub/ddog/internal/api"
	"github.com/schmitthub/ddog/internal/cmdutil"
	"github.com/schmitthub/ddog/internal/iostreams"
	"github.com/schmitthub/ddog/internal/retry"
)

// GetOptions holds options for the event get command.
type GetOptions struct {
	IOStreams *iostreams.IOStreams
	Client    func() (*api.Client, error)
	Policy    func() retry.Policy

	Format *cmdutil.FormatFlags
	ID     int64
}

// NewCmdGet creates the event get command.
func NewCmdGet(f *cmdutil.Factory, runF func(context.Context, *GetOptions) error) *cobra.Command {
	opts := &GetOptions{
		IOStreams: f.IOStreams,
		Client:    f.Client,
		Policy:    f.RetryPolicy,
	}

	cmd := &cobra.Command{
		Use:   "get <event-id>",
		Short: "Show one event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return cmdutil.FlagErrorf("invalid event ID %q", args[0])
			}
			opts.ID = id

			if runF != nil {
				return runF(cmd.Context(), opts)
			}
			return getRun(cmd.Context(), opts)
		},
	}

	opts.Format = cmdutil.AddFormatFlags(cmd)

	return cmd
}

func getRun(ctx context.Context, opts *GetOptions) error {
	ios := opts.IOStreams

	client, err := opts.Client()
	if err != nil {
		return err
	}

	e, err := cmdutil.CallAPI(ctx, ios, opts.Policy(), "Fetching event...", func() (*api.Event, error) {
		return client.GetEvent(ctx, opts.ID)
	})
	if err != nil {
		return cmdutil.HandleFailure(ios, opts.Format, err)
	}

	if opts.Format.IsJSON() {
		return cmdutil.WriteJSON(ios.Out, e)
	}

	cs := ios.ColorScheme()
	out := ios.Out
	fmt.Fprintf(out, "%s %s\n", cs.Bold(e.Title), cs.Gray(fmt.Sprintf("(#%d)", e.ID)))
	fmt.Fprintf(out, "Time:     %s\n", time.Unix(e.DateHappened, 0).UTC().Format(time.RFC3339))
	if e.Source != "" {
		fmt.Fprintf(out, "Source:   %s\n", e.Source)
	}
	if e.Priority != "" {
		fmt.Fprintf(out, "Priority: %s\n", e.Priority)
	}
	if e.Host != "" {
		fmt.Fprintf(out, "Host:     %s\n", e.Host)
	}
	if len(e.Tags) > 0 {
		fmt.Fprintf(out, "Tags:     %s\n", strings.Join(e.Tags, ", "))
	}
	if e.URL != "" {
		fmt.Fprintf(out, "URL:      %s\n", e.URL)
	}
	if e.Text != "" {
		fmt.Fprintf(out, "\n%s\n", e.Text)
	}
	return nil
}

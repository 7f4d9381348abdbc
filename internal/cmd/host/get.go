package host

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/schmitthub/ddog/internal/api"
	"github.com/schmitthub/ddog/internal/cmdutil"
	"github.com/schmitthub/ddog/internal/iostreams"
	"github.com/schmitthub/ddog/internal/retry"
)

// GetOptions holds options for the host get command.
type GetOptions struct {
	IOStreams *iostreams.IOStreams
	Client    func() (*api.Client, error)
	Policy    func() retry.Policy
	Now       func() time.Time

	Format   *cmdutil.FormatFlags
	Hostname string
}

// NewCmdGet creates the host get command.
func NewCmdGet(f *cmdutil.Factory, runF func(context.Context, *GetOptions) error) *cobra.Command {
	opts := &GetOptions{
		IOStreams: f.IOStreams,
		Client:    f.Client,
		Policy:    f.RetryPolicy,
		Now:       f.Now,
	}

	cmd := &cobra.Command{
		Use:   "get <hostname>",
		Short: "Show one host",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Hostname = args[0]

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

	h, err := cmdutil.CallAPI(ctx, ios, opts.Policy(), "Fetching host...", func() (*api.Host, error) {
		return client.GetHost(ctx, opts.Hostname)
	})
	if err != nil {
		return cmdutil.HandleFailure(ios, opts.Format, err)
	}
	if h == nil {
		return &retry.Failure{
			Category: retry.CategoryNotFound,
			Message:  fmt.Sprintf("host %q not found", opts.Hostname),
		}
	}

	if opts.Format.IsJSON() {
		return cmdutil.WriteJSON(ios.Out, h)
	}

	cs := ios.ColorScheme()
	out := ios.Out
	fmt.Fprintln(out, cs.Bold(h.Name))

	status := cs.Green("up")
	if !h.Up {
		status = cs.Red("down")
	}
	fmt.Fprintf(out, "Status:        %s\n", status)
	fmt.Fprintf(out, "Muted:         %v\n", h.IsMuted)
	fmt.Fprintf(out, "Last reported: %s\n", formatLastReported(h.LastReported, opts.Now()))
	if len(h.Apps) > 0 {
		fmt.Fprintf(out, "Apps:          %s\n", strings.Join(h.Apps, ", "))
	}
	if len(h.Sources) > 0 {
		fmt.Fprintf(out, "Sources:       %s\n", strings.Join(h.Sources, ", "))
	}

	if len(h.TagsBySource) > 0 {
		fmt.Fprintln(out, "Tags:")
		sources := make([]string, 0, len(h.TagsBySource))
		for s := range h.TagsBySource {
			sources = append(sources, s)
		}
		sort.Strings(sources)
		for _, s := range sources {
			fmt.Fprintf(out, "  %s: %s\n", s, strings.Join(h.TagsBySource[s], ", "))
		}
	}
	return nil
}

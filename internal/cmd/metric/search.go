package metric

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/schmitthub/ddog/internal/api"
	"github.com/schmitthub/ddog/internal/cmdutil"
	"github.com/schmitthub/ddog/internal/iostreams"
	"github.com/schmitthub/ddog/internal/retry"
)

// SearchOptions holds options for the metric search command.
type SearchOptions struct {
	IOStreams *iostreams.IOStreams
	Client    func() (*api.Client, error)
	Policy    func() retry.Policy

	Format *cmdutil.FormatFlags
	Query  string
}

// NewCmdSearch creates the metric search command.
func NewCmdSearch(f *cmdutil.Factory, runF func(context.Context, *SearchOptions) error) *cobra.Command {
	opts := &SearchOptions{
		IOStreams: f.IOStreams,
		Client:    f.Client,
		Policy:    f.RetryPolicy,
	}

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search metric names",
		Example: `  ddog metric search system.cpu
  ddog metric search requests --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Query = args[0]

			if runF != nil {
				return runF(cmd.Context(), opts)
			}
			return searchRun(cmd.Context(), opts)
		},
	}

	opts.Format = cmdutil.AddFormatFlags(cmd)

	return cmd
}

func searchRun(ctx context.Context, opts *SearchOptions) error {
	ios := opts.IOStreams

	client, err := opts.Client()
	if err != nil {
		return err
	}

	names, err := cmdutil.CallAPI(ctx, ios, opts.Policy(), "Searching metrics...", func() ([]string, error) {
		return client.SearchMetrics(ctx, opts.Query)
	})
	if err != nil {
		return cmdutil.HandleFailure(ios, opts.Format, err)
	}

	if opts.Format.IsJSON() {
		return cmdutil.WriteJSON(ios.Out, names)
	}

	if len(names) == 0 {
		fmt.Fprintln(ios.ErrOut, "No metrics matched.")
		return nil
	}
	for _, name := range names {
		fmt.Fprintln(ios.Out, name)
	}
	return nil
}

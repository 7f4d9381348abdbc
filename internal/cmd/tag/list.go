package tag

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/schmitthub/ddog/internal/api"
	"github.com/schmitthub/ddog/internal/cmdutil"
	"github.com/schmitthub/ddog/internal/iostreams"
	"github.com/schmitthub/ddog/internal/retry"
)

// ListOptions holds options for the tag list command.
type ListOptions struct {
	IOStreams *iostreams.IOStreams
	Client    func() (*api.Client, error)
	Policy    func() retry.Policy

	Format   *cmdutil.FormatFlags
	Hostname string
	Source   string
}

// NewCmdList creates the tag list command.
func NewCmdList(f *cmdutil.Factory, runF func(context.Context, *ListOptions) error) *cobra.Command {
	opts := &ListOptions{
		IOStreams: f.IOStreams,
		Client:    f.Client,
		Policy:    f.RetryPolicy,
	}

	cmd := &cobra.Command{
		Use:     "list [hostname]",
		Aliases: []string{"ls"},
		Short:   "List tags org-wide or for one host",
		Example: `  # All tags and how many hosts carry each
  ddog tag list

  # Tags on one host
  ddog tag list web-01`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				opts.Hostname = args[0]
			}

			if runF != nil {
				return runF(cmd.Context(), opts)
			}
			return listRun(cmd.Context(), opts)
		},
	}

	opts.Format = cmdutil.AddFormatFlags(cmd)
	cmd.Flags().StringVar(&opts.Source, "source", "", "Tag source (e.g. user, chef)")

	return cmd
}

func listRun(ctx context.Context, opts *ListOptions) error {
	if opts.Hostname != "" {
		return listHostRun(ctx, opts)
	}
	return listAllRun(ctx, opts)
}

func listHostRun(ctx context.Context, opts *ListOptions) error {
	ios := opts.IOStreams

	client, err := opts.Client()
	if err != nil {
		return err
	}

	tags, err := cmdutil.CallAPI(ctx, ios, opts.Policy(), "Fetching host tags...", func() ([]string, error) {
		return client.GetHostTags(ctx, opts.Hostname, opts.Source)
	})
	if err != nil {
		return cmdutil.HandleFailure(ios, opts.Format, err)
	}

	if opts.Format.IsJSON() {
		return cmdutil.WriteJSON(ios.Out, tags)
	}
	for _, tag := range tags {
		fmt.Fprintln(ios.Out, tag)
	}
	return nil
}

func listAllRun(ctx context.Context, opts *ListOptions) error {
	ios := opts.IOStreams

	client, err := opts.Client()
	if err != nil {
		return err
	}

	tags, err := cmdutil.CallAPI(ctx, ios, opts.Policy(), "Fetching tags...", func() (map[string][]string, error) {
		return client.ListTags(ctx, opts.Source)
	})
	if err != nil {
		return cmdutil.HandleFailure(ios, opts.Format, err)
	}

	if opts.Format.IsJSON() {
		return cmdutil.WriteJSON(ios.Out, tags)
	}

	if len(tags) == 0 {
		fmt.Fprintln(ios.ErrOut, "No tags found.")
		return nil
	}

	names := make([]string, 0, len(tags))
	for name := range tags {
		names = append(names, name)
	}
	sort.Strings(names)

	tp := ios.NewTablePrinter("TAG", "HOSTS")
	for _, name := range names {
		tp.AddRow(name, strconv.Itoa(len(tags[name])))
	}
	return tp.Render()
}

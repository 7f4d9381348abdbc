package tag

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/schmitthub/ddog/internal/api"
	"github.com/schmitthub/ddog/internal/cmdutil"
	"github.com/schmitthub/ddog/internal/iostreams"
	"github.com/schmitthub/ddog/internal/retry"
	"github.com/schmitthub/ddog/internal/text"
)

// MutateOptions holds options for the tag add and replace commands.
type MutateOptions struct {
	IOStreams *iostreams.IOStreams
	Client    func() (*api.Client, error)
	Policy    func() retry.Policy

	Format   *cmdutil.FormatFlags
	Hostname string
	Tags     []string
	Source   string
}

func tagArgs(opts *MutateOptions, args []string) error {
	opts.Hostname = args[0]
	opts.Tags = text.ParseTags(strings.Join(args[1:], ","))
	if len(opts.Tags) == 0 {
		return cmdutil.FlagErrorf("at least one tag is required")
	}
	return nil
}

// NewCmdAdd creates the tag add command.
func NewCmdAdd(f *cmdutil.Factory, runF func(context.Context, *MutateOptions) error) *cobra.Command {
	opts := &MutateOptions{
		IOStreams: f.IOStreams,
		Client:    f.Client,
		Policy:    f.RetryPolicy,
	}

	cmd := &cobra.Command{
		Use:   "add <hostname> <tag>...",
		Short: "Add tags to a host",
		Example: `  ddog tag add web-01 env:prod team:core`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := tagArgs(opts, args); err != nil {
				return err
			}

			if runF != nil {
				return runF(cmd.Context(), opts)
			}
			return addRun(cmd.Context(), opts)
		},
	}

	opts.Format = cmdutil.AddFormatFlags(cmd)
	cmd.Flags().StringVar(&opts.Source, "source", "", "Tag source (e.g. user, chef)")

	return cmd
}

func addRun(ctx context.Context, opts *MutateOptions) error {
	ios := opts.IOStreams

	client, err := opts.Client()
	if err != nil {
		return err
	}

	tags, err := cmdutil.CallAPI(ctx, ios, opts.Policy(), "Adding tags...", func() ([]string, error) {
		return client.AddHostTags(ctx, opts.Hostname, opts.Tags, opts.Source)
	})
	if err != nil {
		return cmdutil.HandleFailure(ios, opts.Format, err)
	}

	if opts.Format.IsJSON() {
		return cmdutil.WriteJSON(ios.Out, tags)
	}

	cs := ios.ColorScheme()
	fmt.Fprintf(ios.Out, "%s Added %s to %s\n", cs.Green("✓"),
		text.Pluralize(len(opts.Tags), "tag"), opts.Hostname)
	return nil
}

// NewCmdReplace creates the tag replace command.
func NewCmdReplace(f *cmdutil.Factory, runF func(context.Context, *MutateOptions) error) *cobra.Command {
	opts := &MutateOptions{
		IOStreams: f.IOStreams,
		Client:    f.Client,
		Policy:    f.RetryPolicy,
	}

	cmd := &cobra.Command{
		Use:   "replace <hostname> <tag>...",
		Short: "Replace all of a host's tags",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := tagArgs(opts, args); err != nil {
				return err
			}

			if runF != nil {
				return runF(cmd.Context(), opts)
			}
			return replaceRun(cmd.Context(), opts)
		},
	}

	opts.Format = cmdutil.AddFormatFlags(cmd)
	cmd.Flags().StringVar(&opts.Source, "source", "", "Tag source (e.g. user, chef)")

	return cmd
}

func replaceRun(ctx context.Context, opts *MutateOptions) error {
	ios := opts.IOStreams

	client, err := opts.Client()
	if err != nil {
		return err
	}

	tags, err := cmdutil.CallAPI(ctx, ios, opts.Policy(), "Replacing tags...", func() ([]string, error) {
		return client.ReplaceHostTags(ctx, opts.Hostname, opts.Tags, opts.Source)
	})
	if err != nil {
		return cmdutil.HandleFailure(ios, opts.Format, err)
	}

	if opts.Format.IsJSON() {
		return cmdutil.WriteJSON(ios.Out, tags)
	}

	cs := ios.ColorScheme()
	fmt.Fprintf(ios.Out, "%s Replaced tags on %s (%s)\n", cs.Green("✓"),
		opts.Hostname, text.Pluralize(len(tags), "tag"))
	return nil
}

package monitor

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/schmitthub/ddog/internal/api"
	"github.com/schmitthub/ddog/internal/cmdutil"
	"github.com/schmitthub/ddog/internal/iostreams"
	"github.com/schmitthub/ddog/internal/retry"
	"github.com/schmitthub/ddog/internal/text"
)

// UpdateOptions holds options for the monitor update command.
type UpdateOptions struct {
	IOStreams *iostreams.IOStreams
	Client    func() (*api.Client, error)
	Policy    func() retry.Policy
	Stdin     io.Reader

	Format   *cmdutil.FormatFlags
	ID       int64
	File     string
	Name     string
	Query    string
	Message  string
	Tags     string
	Priority int
}

// NewCmdUpdate creates the monitor update command.
func NewCmdUpdate(f *cmdutil.Factory, runF func(context.Context, *UpdateOptions) error) *cobra.Command {
	opts := &UpdateOptions{
		IOStreams: f.IOStreams,
		Client:    f.Client,
		Policy:    f.RetryPolicy,
	}

	cmd := &cobra.Command{
		Use:   "update <monitor-id>",
		Short: "Update a monitor",
		Long: `Update fields on an existing monitor.

With --file, the file holds the fields to change (use "-" to read
from stdin). Otherwise only the given flags are sent.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseMonitorID(args[0])
			if err != nil {
				return err
			}
			opts.ID = id
			opts.Stdin = cmd.InOrStdin()

			if opts.File == "" && opts.Name == "" && opts.Query == "" &&
				opts.Message == "" && opts.Tags == "" && opts.Priority == 0 {
				return cmdutil.FlagErrorf("nothing to update; pass --file or at least one field flag")
			}

			if runF != nil {
				return runF(cmd.Context(), opts)
			}
			return updateRun(cmd.Context(), opts)
		},
	}

	opts.Format = cmdutil.AddFormatFlags(cmd)
	cmd.Flags().StringVarP(&opts.File, "file", "f", "", "Read the changes from a JSON file (\"-\" for stdin)")
	cmd.Flags().StringVar(&opts.Name, "name", "", "New monitor name")
	cmd.Flags().StringVar(&opts.Query, "query", "", "New monitor query")
	cmd.Flags().StringVar(&opts.Message, "message", "", "New notification message")
	cmd.Flags().StringVar(&opts.Tags, "tags", "", "Replace tags (comma-separated)")
	cmd.Flags().IntVar(&opts.Priority, "priority", 0, "New priority 1 (highest) to 5")

	return cmd
}

func (opts *UpdateOptions) monitorBody() (api.Monitor, error) {
	if opts.File != "" {
		var m api.Monitor
		if err := cmdutil.ReadJSONFile(opts.File, opts.Stdin, &m); err != nil {
			return api.Monitor{}, err
		}
		return m, nil
	}

	m := api.Monitor{
		Name:    opts.Name,
		Query:   opts.Query,
		Message: opts.Message,
		Tags:    text.ParseTags(opts.Tags),
	}
	if opts.Priority != 0 {
		m.Priority = &opts.Priority
	}
	return m, nil
}

func updateRun(ctx context.Context, opts *UpdateOptions) error {
	ios := opts.IOStreams

	body, err := opts.monitorBody()
	if err != nil {
		return err
	}

	client, err := opts.Client()
	if err != nil {
		return err
	}

	updated, err := cmdutil.CallAPI(ctx, ios, opts.Policy(), "Updating monitor...", func() (*api.Monitor, error) {
		return client.UpdateMonitor(ctx, opts.ID, body)
	})
	if err != nil {
		return cmdutil.HandleFailure(ios, opts.Format, err)
	}

	if opts.Format.IsJSON() {
		return cmdutil.WriteJSON(ios.Out, updated)
	}

	cs := ios.ColorScheme()
	fmt.Fprintf(ios.Out, "%s Updated monitor %d: %s\n", cs.Green("✓"), updated.ID, updated.Name)
	return nil
}

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

// CreateOptions holds options for the monitor create command.
type CreateOptions struct {
	IOStreams *iostreams.IOStreams
	Client    func() (*api.Client, error)
	Policy    func() retry.Policy
	Stdin     io.Reader

	Format   *cmdutil.FormatFlags
	File     string
	Name     string
	Type     string
	Query    string
	Message  string
	Tags     string
	Priority int
}

// NewCmdCreate creates the monitor create command.
func NewCmdCreate(f *cmdutil.Factory, runF func(context.Context, *CreateOptions) error) *cobra.Command {
	opts := &CreateOptions{
		IOStreams: f.IOStreams,
		Client:    f.Client,
		Policy:    f.RetryPolicy,
	}

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a monitor",
		Long: `Create a monitor from a JSON definition file or from flags.

With --file, the file holds the full monitor body (use "-" to read
from stdin). Without --file, --name, --type and --query are required.`,
		Example: `  # From a definition file
  ddog monitor create --file monitor.json

  # From stdin
  cat monitor.json | ddog monitor create --file -

  # From flags
  ddog monitor create --name "High CPU" --type "metric alert" \
    --query "avg(last_5m):avg:system.cpu.user{env:prod} > 90"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Stdin = cmd.InOrStdin()

			if opts.File == "" {
				if opts.Name == "" || opts.Type == "" || opts.Query == "" {
					return cmdutil.FlagErrorf("--name, --type and --query are required unless --file is given")
				}
			}

			if runF != nil {
				return runF(cmd.Context(), opts)
			}
			return createRun(cmd.Context(), opts)
		},
	}

	opts.Format = cmdutil.AddFormatFlags(cmd)
	cmd.Flags().StringVarP(&opts.File, "file", "f", "", "Read the monitor definition from a JSON file (\"-\" for stdin)")
	cmd.Flags().StringVar(&opts.Name, "name", "", "Monitor name")
	cmd.Flags().StringVar(&opts.Type, "type", "", "Monitor type (e.g. \"metric alert\")")
	cmd.Flags().StringVar(&opts.Query, "query", "", "Monitor query")
	cmd.Flags().StringVar(&opts.Message, "message", "", "Notification message")
	cmd.Flags().StringVar(&opts.Tags, "tags", "", "Tags to attach (comma-separated)")
	cmd.Flags().IntVar(&opts.Priority, "priority", 0, "Priority 1 (highest) to 5")

	return cmd
}

func (opts *CreateOptions) monitorBody() (api.Monitor, error) {
	if opts.File != "" {
		var m api.Monitor
		if err := cmdutil.ReadJSONFile(opts.File, opts.Stdin, &m); err != nil {
			return api.Monitor{}, err
		}
		return m, nil
	}

	m := api.Monitor{
		Name:    opts.Name,
		Type:    opts.Type,
		Query:   opts.Query,
		Message: opts.Message,
		Tags:    text.ParseTags(opts.Tags),
	}
	if opts.Priority != 0 {
		m.Priority = &opts.Priority
	}
	return m, nil
}

func createRun(ctx context.Context, opts *CreateOptions) error {
	ios := opts.IOStreams

	body, err := opts.monitorBody()
	if err != nil {
		return err
	}

	client, err := opts.Client()
	if err != nil {
		return err
	}

	created, err := cmdutil.CallAPI(ctx, ios, opts.Policy(), "Creating monitor...", func() (*api.Monitor, error) {
		return client.CreateMonitor(ctx, body)
	})
	if err != nil {
		return cmdutil.HandleFailure(ios, opts.Format, err)
	}

	if opts.Format.IsJSON() {
		return cmdutil.WriteJSON(ios.Out, created)
	}

	cs := ios.ColorScheme()
	fmt.Fprintf(ios.Out, "%s Created monitor %d: %s\n", cs.Green("✓"), created.ID, created.Name)
	return nil
}

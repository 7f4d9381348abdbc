package event

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/schmitthub/ddog/internal/api"
	"github.com/schmitthub/ddog/internal/cmdutil"
	"github.com/schmitthub/ddog/internal/iostreams"
	"github.com/schmitthub/ddog/internal/retry"
	"github.com/schmitthub/ddog/internal/text"
)

// PostOptions holds options for the event post command.
type PostOptions struct {
	IOStreams *iostreams.IOStreams
	Client    func() (*api.Client, error)
	Policy    func() retry.Policy

	Format    *cmdutil.FormatFlags
	Title     string
	Text      string
	Priority  string
	AlertType string
	Host      string
	Tags      string
}

// NewCmdPost creates the event post command.
func NewCmdPost(f *cmdutil.Factory, runF func(context.Context, *PostOptions) error) *cobra.Command {
	opts := &PostOptions{
		IOStreams: f.IOStreams,
		Client:    f.Client,
		Policy:    f.RetryPolicy,
	}

	cmd := &cobra.Command{
		Use:   "post <title>",
		Short: "Post an event to the stream",
		Example: `  ddog event post "Deployed web v1.42" --tags env:prod,service:web
  ddog event post "Failover started" --text "Primary DB unreachable" --alert-type warning`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Title = args[0]

			switch opts.AlertType {
			case "", "error", "warning", "info", "success":
			default:
				return cmdutil.FlagErrorf("invalid alert type %q (expected error, warning, info, or success)", opts.AlertType)
			}

			if runF != nil {
				return runF(cmd.Context(), opts)
			}
			return postRun(cmd.Context(), opts)
		},
	}

	opts.Format = cmdutil.AddFormatFlags(cmd)
	cmd.Flags().StringVar(&opts.Text, "text", "", "Event body")
	cmd.Flags().StringVar(&opts.Priority, "priority", "normal", "Priority (normal or low)")
	cmd.Flags().StringVar(&opts.AlertType, "alert-type", "", "Alert type (error, warning, info, success)")
	cmd.Flags().StringVar(&opts.Host, "host", "", "Host to attach the event to")
	cmd.Flags().StringVar(&opts.Tags, "tags", "", "Tags to attach (comma-separated)")

	return cmd
}

func postRun(ctx context.Context, opts *PostOptions) error {
	ios := opts.IOStreams

	client, err := opts.Client()
	if err != nil {
		return err
	}

	body := api.Event{
		Title:     opts.Title,
		Text:      opts.Text,
		Priority:  opts.Priority,
		AlertType: opts.AlertType,
		Host:      opts.Host,
		Tags:      text.ParseTags(opts.Tags),
	}
	posted, err := cmdutil.CallAPI(ctx, ios, opts.Policy(), "Posting event...", func() (*api.Event, error) {
		return client.PostEvent(ctx, body)
	})
	if err != nil {
		return cmdutil.HandleFailure(ios, opts.Format, err)
	}

	if opts.Format.IsJSON() {
		return cmdutil.WriteJSON(ios.Out, posted)
	}

	cs := ios.ColorScheme()
	fmt.Fprintf(ios.Out, "%s Posted event %d: %s\n", cs.Green("✓"), posted.ID, posted.Title)
	if posted.URL != "" {
		fmt.Fprintln(ios.Out, posted.URL)
	}
	return nil
}

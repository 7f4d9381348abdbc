package host

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/schmitthub/ddog/internal/api"
	"github.com/schmitthub/ddog/internal/cmdutil"
	"github.com/schmitthub/ddog/internal/iostreams"
	"github.com/schmitthub/ddog/internal/retry"
)

// ListOptions holds options for the host list command.
type ListOptions struct {
	IOStreams *iostreams.IOStreams
	Client    func() (*api.Client, error)
	Policy    func() retry.Policy

	Format *cmdutil.FormatFlags
	Filter string
	Count  int
}

// NewCmdList creates the host list command.
func NewCmdList(f *cmdutil.Factory, runF func(context.Context, *ListOptions) error) *cobra.Command {
	opts := &ListOptions{
		IOStreams: f.IOStreams,
		Client:    f.Client,
		Policy:    f.RetryPolicy,
	}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List reporting hosts",
		Example: `  ddog host list
  ddog host list --filter env:prod --count 50`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if runF != nil {
				return runF(cmd.Context(), opts)
			}
			return listRun(cmd.Context(), opts)
		},
	}

	opts.Format = cmdutil.AddFormatFlags(cmd)
	cmd.Flags().StringVar(&opts.Filter, "filter", "", "Host filter query (e.g. env:prod)")
	cmd.Flags().IntVar(&opts.Count, "count", 100, "Maximum hosts to return")

	return cmd
}

func listRun(ctx context.Context, opts *ListOptions) error {
	ios := opts.IOStreams

	client, err := opts.Client()
	if err != nil {
		return err
	}

	hosts, err := cmdutil.CallAPI(ctx, ios, opts.Policy(), "Fetching hosts...", func() ([]api.Host, error) {
		return client.ListHosts(ctx, opts.Filter, opts.Count)
	})
	if err != nil {
		return cmdutil.HandleFailure(ios, opts.Format, err)
	}

	switch {
	case opts.Format.Quiet:
		for _, h := range hosts {
			fmt.Fprintln(ios.Out, h.Name)
		}
		return nil

	case opts.Format.IsJSON():
		return cmdutil.WriteJSON(ios.Out, hosts)

	default:
		if len(hosts) == 0 {
			fmt.Fprintln(ios.ErrOut, "No hosts found.")
			return nil
		}
		cs := ios.ColorScheme()
		tp := ios.NewTablePrinter("NAME", "STATUS", "MUTED", "APPS")
		for _, h := range hosts {
			status := cs.Green("up")
			if !h.Up {
				status = cs.Red("down")
			}
			muted := ""
			if h.IsMuted {
				muted = "yes"
			}
			tp.AddRow(h.Name, status, muted, strings.Join(h.Apps, ", "))
		}
		if err := tp.Render(); err != nil {
			return err
		}
		fmt.Fprintf(ios.ErrOut, "\nTotal hosts: %d\n", len(hosts))
		return nil
	}
}

// formatLastReported renders the host's last report time as a
// human-readable age.
func formatLastReported(epoch float64, now time.Time) string {
	if epoch == 0 {
		return "never"
	}
	age := now.Sub(time.Unix(int64(epoch), 0))
	switch {
	case age < time.Minute:
		return "just now"
	case age < time.Hour:
		return fmt.Sprintf("%dm ago", int(age.Minutes()))
	case age < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(age.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(age.Hours()/24))
	}
}

package host

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/schmitthub/ddog/internal/api"
	"github.com/schmitthub/ddog/internal/cmdutil"
	"github.com/schmitthub/ddog/internal/iostreams"
	"github.com/schmitthub/ddog/internal/retry"
	"github.com/schmitthub/ddog/internal/timerange"
)

// MuteOptions holds options for the host mute and unmute commands.
type MuteOptions struct {
	IOStreams *iostreams.IOStreams
	Client    func() (*api.Client, error)
	Policy    func() retry.Policy
	Now       func() time.Time

	Format   *cmdutil.FormatFlags
	Hostname string
	Message  string
	Until    string
}

// NewCmdMute creates the host mute command.
func NewCmdMute(f *cmdutil.Factory, runF func(context.Context, *MuteOptions) error) *cobra.Command {
	opts := &MuteOptions{
		IOStreams: f.IOStreams,
		Client:    f.Client,
		Policy:    f.RetryPolicy,
		Now:       f.Now,
	}

	cmd := &cobra.Command{
		Use:   "mute <hostname>",
		Short: "Mute a host",
		Example: `  ddog host mute web-01 --message "kernel upgrade" --until 2h`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Hostname = args[0]

			if runF != nil {
				return runF(cmd.Context(), opts)
			}
			return muteRun(cmd.Context(), opts)
		},
	}

	opts.Format = cmdutil.AddFormatFlags(cmd)
	cmd.Flags().StringVar(&opts.Message, "message", "", "Why the host is muted")
	cmd.Flags().StringVar(&opts.Until, "until", "", "End of the mute as a duration (2h) or timestamp")

	return cmd
}

func muteRun(ctx context.Context, opts *MuteOptions) error {
	ios := opts.IOStreams

	var end int64
	if opts.Until != "" {
		ts, err := timerange.Until(opts.Until, opts.Now())
		if err != nil {
			return cmdutil.FlagErrorWrap(err)
		}
		end = ts
	}

	client, err := opts.Client()
	if err != nil {
		return err
	}

	resp, err := cmdutil.CallAPI(ctx, ios, opts.Policy(), "Muting host...", func() (*api.HostMuteResponse, error) {
		return client.MuteHost(ctx, opts.Hostname, opts.Message, end)
	})
	if err != nil {
		return cmdutil.HandleFailure(ios, opts.Format, err)
	}

	if opts.Format.IsJSON() {
		return cmdutil.WriteJSON(ios.Out, resp)
	}

	cs := ios.ColorScheme()
	fmt.Fprintf(ios.Out, "%s Muted host %s\n", cs.Green("✓"), resp.Hostname)
	return nil
}

// NewCmdUnmute creates the host unmute command.
func NewCmdUnmute(f *cmdutil.Factory, runF func(context.Context, *MuteOptions) error) *cobra.Command {
	opts := &MuteOptions{
		IOStreams: f.IOStreams,
		Client:    f.Client,
		Policy:    f.RetryPolicy,
		Now:       f.Now,
	}

	cmd := &cobra.Command{
		Use:   "unmute <hostname>",
		Short: "Unmute a host",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Hostname = args[0]

			if runF != nil {
				return runF(cmd.Context(), opts)
			}
			return unmuteRun(cmd.Context(), opts)
		},
	}

	opts.Format = cmdutil.AddFormatFlags(cmd)

	return cmd
}

func unmuteRun(ctx context.Context, opts *MuteOptions) error {
	ios := opts.IOStreams

	client, err := opts.Client()
	if err != nil {
		return err
	}

	resp, err := cmdutil.CallAPI(ctx, ios, opts.Policy(), "Unmuting host...", func() (*api.HostMuteResponse, error) {
		return client.UnmuteHost(ctx, opts.Hostname)
	})
	if err != nil {
		return cmdutil.HandleFailure(ios, opts.Format, err)
	}

	if opts.Format.IsJSON() {
		return cmdutil.WriteJSON(ios.Out, resp)
	}

	cs := ios.ColorScheme()
	fmt.Fprintf(ios.Out, "%s Unmuted host %s\n", cs.Green("✓"), resp.Hostname)
	return nil
}

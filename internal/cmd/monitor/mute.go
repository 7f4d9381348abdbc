package monitor

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

// MuteOptions holds options for the monitor mute and unmute commands.
type MuteOptions struct {
	IOStreams *iostreams.IOStreams
	Client    func() (*api.Client, error)
	Policy    func() retry.Policy
	Now       func() time.Time

	Format *cmdutil.FormatFlags
	ID     int64
	Scope  string
	Until  string
}

// NewCmdMute creates the monitor mute command.
func NewCmdMute(f *cmdutil.Factory, runF func(context.Context, *MuteOptions) error) *cobra.Command {
	opts := &MuteOptions{
		IOStreams: f.IOStreams,
		Client:    f.Client,
		Policy:    f.RetryPolicy,
		Now:       f.Now,
	}

	cmd := &cobra.Command{
		Use:   "mute <monitor-id>",
		Short: "Mute a monitor",
		Example: `  # Mute indefinitely
  ddog monitor mute 12345

  # Mute one scope for two hours
  ddog monitor mute 12345 --scope host:web-01 --until 2h`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseMonitorID(args[0])
			if err != nil {
				return err
			}
			opts.ID = id

			if runF != nil {
				return runF(cmd.Context(), opts)
			}
			return muteRun(cmd.Context(), opts)
		},
	}

	opts.Format = cmdutil.AddFormatFlags(cmd)
	cmd.Flags().StringVar(&opts.Scope, "scope", "", "Restrict the mute to a scope (e.g. host:web-01)")
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

	m, err := cmdutil.CallAPI(ctx, ios, opts.Policy(), "Muting monitor...", func() (*api.Monitor, error) {
		return client.MuteMonitor(ctx, opts.ID, opts.Scope, end)
	})
	if err != nil {
		return cmdutil.HandleFailure(ios, opts.Format, err)
	}

	if opts.Format.IsJSON() {
		return cmdutil.WriteJSON(ios.Out, m)
	}

	cs := ios.ColorScheme()
	switch {
	case opts.Scope != "":
		fmt.Fprintf(ios.Out, "%s Muted monitor %d for scope %s\n", cs.Green("✓"), opts.ID, opts.Scope)
	default:
		fmt.Fprintf(ios.Out, "%s Muted monitor %d\n", cs.Green("✓"), opts.ID)
	}
	return nil
}

// NewCmdUnmute creates the monitor unmute command.
func NewCmdUnmute(f *cmdutil.Factory, runF func(context.Context, *MuteOptions) error) *cobra.Command {
	opts := &MuteOptions{
		IOStreams: f.IOStreams,
		Client:    f.Client,
		Policy:    f.RetryPolicy,
		Now:       f.Now,
	}

	cmd := &cobra.Command{
		Use:   "unmute <monitor-id>",
		Short: "Unmute a monitor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseMonitorID(args[0])
			if err != nil {
				return err
			}
			opts.ID = id

			if runF != nil {
				return runF(cmd.Context(), opts)
			}
			return unmuteRun(cmd.Context(), opts)
		},
	}

	opts.Format = cmdutil.AddFormatFlags(cmd)
	cmd.Flags().StringVar(&opts.Scope, "scope", "", "Unmute only this scope")

	return cmd
}

func unmuteRun(ctx context.Context, opts *MuteOptions) error {
	ios := opts.IOStreams

	client, err := opts.Client()
	if err != nil {
		return err
	}

	m, err := cmdutil.CallAPI(ctx, ios, opts.Policy(), "Unmuting monitor...", func() (*api.Monitor, error) {
		return client.UnmuteMonitor(ctx, opts.ID, opts.Scope)
	})
	if err != nil {
		return cmdutil.HandleFailure(ios, opts.Format, err)
	}

	if opts.Format.IsJSON() {
		return cmdutil.WriteJSON(ios.Out, m)
	}

	cs := ios.ColorScheme()
	fmt.Fprintf(ios.Out, "%s Unmuted monitor %d\n", cs.Green("✓"), opts.ID)
	return nil
}

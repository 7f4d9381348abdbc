package monitor

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/schmitthub/ddog/internal/api"
	"github.com/schmitthub/ddog/internal/cmdutil"
	"github.com/schmitthub/ddog/internal/iostreams"
	"github.com/schmitthub/ddog/internal/retry"
)

// MuteAllOptions holds options for the mute-all and unmute-all commands.
type MuteAllOptions struct {
	IOStreams *iostreams.IOStreams
	Client    func() (*api.Client, error)
	Policy    func() retry.Policy

	Format    *cmdutil.FormatFlags
	Confirmed bool
}

// NewCmdMuteAll creates the monitor mute-all command.
func NewCmdMuteAll(f *cmdutil.Factory, runF func(context.Context, *MuteAllOptions) error) *cobra.Command {
	opts := &MuteAllOptions{
		IOStreams: f.IOStreams,
		Client:    f.Client,
		Policy:    f.RetryPolicy,
	}

	cmd := &cobra.Command{
		Use:   "mute-all",
		Short: "Mute every monitor in the org",
		RunE: func(cmd *cobra.Command, args []string) error {
			if runF != nil {
				return runF(cmd.Context(), opts)
			}
			return muteAllRun(cmd.Context(), opts)
		},
	}

	opts.Format = cmdutil.AddFormatFlags(cmd)
	cmd.Flags().BoolVar(&opts.Confirmed, "confirm", false, "Skip the confirmation prompt")

	return cmd
}

func muteAllRun(ctx context.Context, opts *MuteAllOptions) error {
	ios := opts.IOStreams

	ok, err := cmdutil.Confirm(ios, "Mute ALL monitors in the org?", opts.Confirmed)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(ios.ErrOut, "Cancelled.")
		return nil
	}

	client, err := opts.Client()
	if err != nil {
		return err
	}

	downtimeID, err := cmdutil.CallAPI(ctx, ios, opts.Policy(), "Muting all monitors...", func() (int64, error) {
		return client.MuteAllMonitors(ctx)
	})
	if err != nil {
		return cmdutil.HandleFailure(ios, opts.Format, err)
	}

	if opts.Format.IsJSON() {
		return cmdutil.WriteJSON(ios.Out, map[string]int64{"downtime_id": downtimeID})
	}

	cs := ios.ColorScheme()
	fmt.Fprintf(ios.Out, "%s Muted all monitors (downtime %d)\n", cs.Green("✓"), downtimeID)
	return nil
}

// NewCmdUnmuteAll creates the monitor unmute-all command.
func NewCmdUnmuteAll(f *cmdutil.Factory, runF func(context.Context, *MuteAllOptions) error) *cobra.Command {
	opts := &MuteAllOptions{
		IOStreams: f.IOStreams,
		Client:    f.Client,
		Policy:    f.RetryPolicy,
	}

	cmd := &cobra.Command{
		Use:   "unmute-all",
		Short: "Cancel an org-wide mute",
		RunE: func(cmd *cobra.Command, args []string) error {
			if runF != nil {
				return runF(cmd.Context(), opts)
			}
			return unmuteAllRun(cmd.Context(), opts)
		},
	}

	opts.Format = cmdutil.AddFormatFlags(cmd)

	return cmd
}

func unmuteAllRun(ctx context.Context, opts *MuteAllOptions) error {
	ios := opts.IOStreams

	client, err := opts.Client()
	if err != nil {
		return err
	}

	_, err = cmdutil.CallAPI(ctx, ios, opts.Policy(), "Unmuting all monitors...", func() (struct{}, error) {
		return struct{}{}, client.UnmuteAllMonitors(ctx)
	})
	if err != nil {
		return cmdutil.HandleFailure(ios, opts.Format, err)
	}

	cs := ios.ColorScheme()
	fmt.Fprintf(ios.Out, "%s Unmuted all monitors\n", cs.Green("✓"))
	return nil
}

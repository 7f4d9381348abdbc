package user

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/schmitthub/ddog/internal/api"
	"github.com/schmitthub/ddog/internal/cmdutil"
	"github.com/schmitthub/ddog/internal/iostreams"
	"github.com/schmitthub/ddog/internal/retry"
)

// InviteOptions holds options for the user invite command.
type InviteOptions struct {
	IOStreams *iostreams.IOStreams
	Client    func() (*api.Client, error)
	Policy    func() retry.Policy

	Format *cmdutil.FormatFlags
	Email  string
	Name   string
}

// NewCmdInvite creates the user invite command.
func NewCmdInvite(f *cmdutil.Factory, runF func(context.Context, *InviteOptions) error) *cobra.Command {
	opts := &InviteOptions{
		IOStreams: f.IOStreams,
		Client:    f.Client,
		Policy:    f.RetryPolicy,
	}

	cmd := &cobra.Command{
		Use:   "invite <email>",
		Short: "Invite a user to the org",
		Long: `Create a user record for the email and send an invitation.

If the record already exists the API reports a validation error; the
invitation step only runs after a successful create.`,
		Example: `  ddog user invite alex@example.com --name "Alex Doe"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Email = args[0]

			if runF != nil {
				return runF(cmd.Context(), opts)
			}
			return inviteRun(cmd.Context(), opts)
		},
	}

	opts.Format = cmdutil.AddFormatFlags(cmd)
	cmd.Flags().StringVar(&opts.Name, "name", "", "Display name for the new user")

	return cmd
}

func inviteRun(ctx context.Context, opts *InviteOptions) error {
	ios := opts.IOStreams

	client, err := opts.Client()
	if err != nil {
		return err
	}

	created, err := cmdutil.CallAPI(ctx, ios, opts.Policy(), "Creating user...", func() (*api.User, error) {
		return client.CreateUser(ctx, opts.Email, opts.Name)
	})
	if err != nil {
		return cmdutil.HandleFailure(ios, opts.Format, err)
	}

	_, err = cmdutil.CallAPI(ctx, ios, opts.Policy(), "Sending invitation...", func() (struct{}, error) {
		return struct{}{}, client.InviteUser(ctx, created.ID)
	})
	if err != nil {
		return cmdutil.HandleFailure(ios, opts.Format, err)
	}

	if opts.Format.IsJSON() {
		return cmdutil.WriteJSON(ios.Out, created)
	}

	cs := ios.ColorScheme()
	fmt.Fprintf(ios.Out, "%s Invited %s\n", cs.Green("✓"), opts.Email)
	return nil
}

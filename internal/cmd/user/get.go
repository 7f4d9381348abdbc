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

// GetOptions holds options for the user get command.
type GetOptions struct {
	IOStreams *iostreams.IOStreams
	Client    func() (*api.Client, error)
	Policy    func() retry.Policy

	Format *cmdutil.FormatFlags
	ID     string
}

// NewCmdGet creates the user get command.
func NewCmdGet(f *cmdutil.Factory, runF func(context.Context, *GetOptions) error) *cobra.Command {
	opts := &GetOptions{
		IOStreams: f.IOStreams,
		Client:    f.Client,
		Policy:    f.RetryPolicy,
	}

	cmd := &cobra.Command{
		Use:   "get <user-id>",
		Short: "Show one user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.ID = args[0]

			if runF != nil {
				return runF(cmd.Context(), opts)
			}
			return getRun(cmd.Context(), opts)
		},
	}

	opts.Format = cmdutil.AddFormatFlags(cmd)

	return cmd
}

func getRun(ctx context.Context, opts *GetOptions) error {
	ios := opts.IOStreams

	client, err := opts.Client()
	if err != nil {
		return err
	}

	u, err := cmdutil.CallAPI(ctx, ios, opts.Policy(), "Fetching user...", func() (*api.User, error) {
		return client.GetUser(ctx, opts.ID)
	})
	if err != nil {
		return cmdutil.HandleFailure(ios, opts.Format, err)
	}

	if opts.Format.IsJSON() {
		return cmdutil.WriteJSON(ios.Out, u)
	}

	cs := ios.ColorScheme()
	out := ios.Out
	fmt.Fprintf(out, "%s %s\n", cs.Bold(u.Attributes.Name), cs.Gray("("+u.ID+")"))
	fmt.Fprintf(out, "Handle:   %s\n", u.Attributes.Handle)
	fmt.Fprintf(out, "Email:    %s\n", u.Attributes.Email)
	fmt.Fprintf(out, "Status:   %s\n", u.Attributes.Status)
	fmt.Fprintf(out, "Verified: %v\n", u.Attributes.Verified)
	if u.Attributes.Disabled {
		fmt.Fprintln(out, cs.Red("Disabled"))
	}
	return nil
}

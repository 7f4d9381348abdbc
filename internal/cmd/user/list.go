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

// ListOptions holds options for the user list command.
type ListOptions struct {
	IOStreams *iostreams.IOStreams
	Client    func() (*api.Client, error)
	Policy    func() retry.Policy

	Format       *cmdutil.FormatFlags
	ShowDisabled bool
}

// NewCmdList creates the user list command.
func NewCmdList(f *cmdutil.Factory, runF func(context.Context, *ListOptions) error) *cobra.Command {
	opts := &ListOptions{
		IOStreams: f.IOStreams,
		Client:    f.Client,
		Policy:    f.RetryPolicy,
	}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List org users",
		RunE: func(cmd *cobra.Command, args []string) error {
			if runF != nil {
				return runF(cmd.Context(), opts)
			}
			return listRun(cmd.Context(), opts)
		},
	}

	opts.Format = cmdutil.AddFormatFlags(cmd)
	cmd.Flags().BoolVar(&opts.ShowDisabled, "disabled", false, "Include disabled users")

	return cmd
}

func listRun(ctx context.Context, opts *ListOptions) error {
	ios := opts.IOStreams

	client, err := opts.Client()
	if err != nil {
		return err
	}

	users, err := cmdutil.CallAPI(ctx, ios, opts.Policy(), "Fetching users...", func() ([]api.User, error) {
		return client.ListUsers(ctx)
	})
	if err != nil {
		return cmdutil.HandleFailure(ios, opts.Format, err)
	}

	if !opts.ShowDisabled {
		kept := users[:0]
		for _, u := range users {
			if !u.Attributes.Disabled {
				kept = append(kept, u)
			}
		}
		users = kept
	}

	switch {
	case opts.Format.Quiet:
		for _, u := range users {
			fmt.Fprintln(ios.Out, u.Attributes.Handle)
		}
		return nil

	case opts.Format.IsJSON():
		return cmdutil.WriteJSON(ios.Out, users)

	default:
		if len(users) == 0 {
			fmt.Fprintln(ios.ErrOut, "No users found.")
			return nil
		}
		tp := ios.NewTablePrinter("HANDLE", "NAME", "EMAIL", "STATUS")
		for _, u := range users {
			tp.AddRow(u.Attributes.Handle, u.Attributes.Name, u.Attributes.Email, u.Attributes.Status)
		}
		if err := tp.Render(); err != nil {
			return err
		}
		fmt.Fprintf(ios.ErrOut, "\nTotal users: %d\n", len(users))
		return nil
	}
}

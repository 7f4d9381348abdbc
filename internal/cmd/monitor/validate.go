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
)

// ValidateOptions holds options for the monitor validate command.
type ValidateOptions struct {
	IOStreams *iostreams.IOStreams
	Client    func() (*api.Client, error)
	Policy    func() retry.Policy
	Stdin     io.Reader

	Format *cmdutil.FormatFlags
	File   string
}

// NewCmdValidate creates the monitor validate command.
func NewCmdValidate(f *cmdutil.Factory, runF func(context.Context, *ValidateOptions) error) *cobra.Command {
	opts := &ValidateOptions{
		IOStreams: f.IOStreams,
		Client:    f.Client,
		Policy:    f.RetryPolicy,
	}

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a monitor definition without creating it",
		Example: `  ddog monitor validate --file monitor.json
  cat monitor.json | ddog monitor validate --file -`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Stdin = cmd.InOrStdin()

			if runF != nil {
				return runF(cmd.Context(), opts)
			}
			return validateRun(cmd.Context(), opts)
		},
	}

	opts.Format = cmdutil.AddFormatFlags(cmd)
	cmd.Flags().StringVarP(&opts.File, "file", "f", "", "Monitor definition JSON file (\"-\" for stdin)")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func validateRun(ctx context.Context, opts *ValidateOptions) error {
	ios := opts.IOStreams

	var m api.Monitor
	if err := cmdutil.ReadJSONFile(opts.File, opts.Stdin, &m); err != nil {
		return err
	}

	client, err := opts.Client()
	if err != nil {
		return err
	}

	_, err = cmdutil.CallAPI(ctx, ios, opts.Policy(), "Validating monitor...", func() (struct{}, error) {
		return struct{}{}, client.ValidateMonitor(ctx, m)
	})
	if err != nil {
		return cmdutil.HandleFailure(ios, opts.Format, err)
	}

	cs := ios.ColorScheme()
	fmt.Fprintf(ios.Out, "%s Monitor definition is valid\n", cs.Green("✓"))
	return nil
}

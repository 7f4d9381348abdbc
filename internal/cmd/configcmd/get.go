package configcmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/schmitthub/ddog/internal/cmdutil"
	"github.com/schmitthub/ddog/internal/config"
	"github.com/schmitthub/ddog/internal/iostreams"
	"github.com/schmitthub/ddog/internal/text"
)

// GetOptions holds options for the config get command.
type GetOptions struct {
	IOStreams *iostreams.IOStreams
	Config    func() (*config.Config, error)
	Profile   string

	Format *cmdutil.FormatFlags
}

// NewCmdGet creates the config get command.
func NewCmdGet(f *cmdutil.Factory, runF func(context.Context, *GetOptions) error) *cobra.Command {
	opts := &GetOptions{
		IOStreams: f.IOStreams,
		Config:    f.Config,
	}

	cmd := &cobra.Command{
		Use:   "get",
		Short: "Show the resolved configuration",
		Long: `Show the credentials and defaults the CLI would use right now,
after profile selection and environment overrides. Keys are masked.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Profile = f.Profile

			if runF != nil {
				return runF(cmd.Context(), opts)
			}
			return getRun(cmd.Context(), opts)
		},
	}

	opts.Format = cmdutil.AddFormatFlags(cmd)

	return cmd
}

// resolvedView is the serialized shape of the effective configuration.
type resolvedView struct {
	ConfigPath       string `json:"config_path"`
	Profile          string `json:"profile,omitempty"`
	APIKey           string `json:"api_key"`
	AppKey           string `json:"app_key,omitempty"`
	Site             string `json:"site"`
	Timeout          int    `json:"timeout"`
	RetryCount       int    `json:"retry_count"`
	DefaultTimeRange string `json:"default_time_range"`
}

func getRun(_ context.Context, opts *GetOptions) error {
	ios := opts.IOStreams

	cfg, err := opts.Config()
	if err != nil {
		return err
	}
	creds, err := cfg.Resolve(opts.Profile)
	if err != nil {
		return err
	}

	path, err := config.Path()
	if err != nil {
		return err
	}

	profile := opts.Profile
	if profile == "" {
		profile = cfg.ActiveProfile
	}

	view := resolvedView{
		ConfigPath:       path,
		Profile:          profile,
		APIKey:           text.MaskKey(creds.APIKey),
		AppKey:           text.MaskKey(creds.AppKey),
		Site:             creds.Site,
		Timeout:          cfg.Timeout,
		RetryCount:       cfg.RetryCount,
		DefaultTimeRange: cfg.DefaultTimeRange,
	}

	if opts.Format.IsJSON() {
		return cmdutil.WriteJSON(ios.Out, view)
	}

	out := ios.Out
	fmt.Fprintf(out, "Config file:        %s\n", view.ConfigPath)
	if view.Profile != "" {
		fmt.Fprintf(out, "Profile:            %s\n", view.Profile)
	}
	fmt.Fprintf(out, "API key:            %s\n", view.APIKey)
	fmt.Fprintf(out, "App key:            %s\n", view.AppKey)
	fmt.Fprintf(out, "Site:               %s\n", view.Site)
	fmt.Fprintf(out, "Timeout:            %ds\n", view.Timeout)
	fmt.Fprintf(out, "Retries:            %d\n", view.RetryCount)
	fmt.Fprintf(out, "Default time range: %s\n", view.DefaultTimeRange)
	return nil
}

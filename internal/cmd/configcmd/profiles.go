package configcmd

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/schmitthub/ddog/internal/cmdutil"
	"github.com/schmitthub/ddog/internal/config"
	"github.com/schmitthub/ddog/internal/iostreams"
	"github.com/schmitthub/ddog/internal/text"
)

// SetProfileOptions holds options for the config set-profile command.
type SetProfileOptions struct {
	IOStreams *iostreams.IOStreams
	Config    func() (*config.Config, error)

	Name       string
	APIKey     string
	AppKey     string
	Site       string
	UseKeyring bool
	Activate   bool
}

// NewCmdSetProfile creates the config set-profile command.
func NewCmdSetProfile(f *cmdutil.Factory, runF func(context.Context, *SetProfileOptions) error) *cobra.Command {
	opts := &SetProfileOptions{
		IOStreams: f.IOStreams,
		Config:    f.Config,
	}

	cmd := &cobra.Command{
		Use:   "set-profile <name>",
		Short: "Create or update a profile non-interactively",
		Example: `  ddog config set-profile staging --api-key $STAGING_KEY --app-key $STAGING_APP --site eu
  ddog config set-profile prod --api-key $PROD_KEY --keyring --activate`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Name = args[0]
			if opts.APIKey == "" {
				return cmdutil.FlagErrorf("--api-key is required")
			}

			if runF != nil {
				return runF(cmd.Context(), opts)
			}
			return setProfileRun(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.APIKey, "api-key", "", "Datadog API key")
	cmd.Flags().StringVar(&opts.AppKey, "app-key", "", "Datadog application key")
	cmd.Flags().StringVar(&opts.Site, "site", "", "Datadog site or region shortcut")
	cmd.Flags().BoolVar(&opts.UseKeyring, "keyring", false, "Store keys in the OS keychain")
	cmd.Flags().BoolVar(&opts.Activate, "activate", false, "Make this the active profile")

	return cmd
}

func setProfileRun(_ context.Context, opts *SetProfileOptions) error {
	cfg, err := opts.Config()
	if err != nil {
		return err
	}

	if err := storeProfile(cfg, opts.Name, opts.APIKey, opts.AppKey, opts.Site, opts.UseKeyring); err != nil {
		return err
	}
	if opts.Activate || cfg.ActiveProfile == "" {
		cfg.ActiveProfile = opts.Name
	}

	if err := config.Save(cfg); err != nil {
		return err
	}

	cs := opts.IOStreams.ColorScheme()
	fmt.Fprintf(opts.IOStreams.Out, "%s Profile %q saved\n", cs.Green("✓"), opts.Name)
	return nil
}

// UseProfileOptions holds options for the config use-profile command.
type UseProfileOptions struct {
	IOStreams *iostreams.IOStreams
	Config    func() (*config.Config, error)

	Name string
}

// NewCmdUseProfile creates the config use-profile command.
func NewCmdUseProfile(f *cmdutil.Factory, runF func(context.Context, *UseProfileOptions) error) *cobra.Command {
	opts := &UseProfileOptions{
		IOStreams: f.IOStreams,
		Config:    f.Config,
	}

	cmd := &cobra.Command{
		Use:   "use-profile <name>",
		Short: "Switch the active profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Name = args[0]

			if runF != nil {
				return runF(cmd.Context(), opts)
			}
			return useProfileRun(cmd.Context(), opts)
		},
	}

	return cmd
}

func useProfileRun(_ context.Context, opts *UseProfileOptions) error {
	cfg, err := opts.Config()
	if err != nil {
		return err
	}

	if _, ok := cfg.Profiles[opts.Name]; !ok {
		return &config.ProfileNotFoundError{Name: opts.Name}
	}
	cfg.ActiveProfile = opts.Name

	if err := config.Save(cfg); err != nil {
		return err
	}

	cs := opts.IOStreams.ColorScheme()
	fmt.Fprintf(opts.IOStreams.Out, "%s Switched to profile %q\n", cs.Green("✓"), opts.Name)
	return nil
}

// ListProfilesOptions holds options for the config list-profiles command.
type ListProfilesOptions struct {
	IOStreams *iostreams.IOStreams
	Config    func() (*config.Config, error)

	Format *cmdutil.FormatFlags
}

// NewCmdListProfiles creates the config list-profiles command.
func NewCmdListProfiles(f *cmdutil.Factory, runF func(context.Context, *ListProfilesOptions) error) *cobra.Command {
	opts := &ListProfilesOptions{
		IOStreams: f.IOStreams,
		Config:    f.Config,
	}

	cmd := &cobra.Command{
		Use:   "list-profiles",
		Short: "List configured profiles",
		RunE: func(cmd *cobra.Command, args []string) error {
			if runF != nil {
				return runF(cmd.Context(), opts)
			}
			return listProfilesRun(cmd.Context(), opts)
		},
	}

	opts.Format = cmdutil.AddFormatFlags(cmd)

	return cmd
}

// profileRow is the display shape for a profile; keys are masked.
type profileRow struct {
	Name   string `json:"name"`
	Active bool   `json:"active"`
	APIKey string `json:"api_key"`
	Site   string `json:"site,omitempty"`
}

func listProfilesRun(_ context.Context, opts *ListProfilesOptions) error {
	ios := opts.IOStreams

	cfg, err := opts.Config()
	if err != nil {
		return err
	}

	names := make([]string, 0, len(cfg.Profiles))
	for name := range cfg.Profiles {
		names = append(names, name)
	}
	sort.Strings(names)

	rows := make([]profileRow, 0, len(names))
	for _, name := range names {
		p := cfg.Profiles[name]
		rows = append(rows, profileRow{
			Name:   name,
			Active: name == cfg.ActiveProfile,
			APIKey: text.MaskKey(p.APIKey),
			Site:   p.Site,
		})
	}

	if opts.Format.IsJSON() {
		return cmdutil.WriteJSON(ios.Out, rows)
	}

	if len(rows) == 0 {
		fmt.Fprintln(ios.ErrOut, "No profiles configured. Run 'ddog config init'.")
		return nil
	}

	tp := ios.NewTablePrinter("NAME", "ACTIVE", "API KEY", "SITE")
	for _, row := range rows {
		active := ""
		if row.Active {
			active = "*"
		}
		tp.AddRow(row.Name, active, row.APIKey, row.Site)
	}
	return tp.Render()
}

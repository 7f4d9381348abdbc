package configcmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/schmitthub/ddog/internal/cmdutil"
	"github.com/schmitthub/ddog/internal/config"
	"github.com/schmitthub/ddog/internal/iostreams"
	"github.com/schmitthub/ddog/internal/keyring"
)

// InitOptions holds options for the config init command.
type InitOptions struct {
	IOStreams *iostreams.IOStreams
	Config    func() (*config.Config, error)

	ProfileName string
	Site        string
	UseKeyring  bool
}

// NewCmdInit creates the config init command.
func NewCmdInit(f *cmdutil.Factory, runF func(context.Context, *InitOptions) error) *cobra.Command {
	opts := &InitOptions{
		IOStreams: f.IOStreams,
		Config:    f.Config,
	}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Interactively set up a profile",
		Long: `Prompt for Datadog credentials and write them to a profile.

With --keyring, the keys are stored in the OS keychain and the config
file only records that the keychain holds them.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !opts.IOStreams.CanPrompt() {
				return cmdutil.FlagErrorf("config init needs an interactive terminal; use 'ddog config set-profile' instead")
			}

			if runF != nil {
				return runF(cmd.Context(), opts)
			}
			return initRun(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.ProfileName, "name", "default", "Profile name to create")
	cmd.Flags().StringVar(&opts.Site, "site", "", "Datadog site or region shortcut (us, eu, us3, us5, ap1, gov)")
	cmd.Flags().BoolVar(&opts.UseKeyring, "keyring", false, "Store keys in the OS keychain")

	return cmd
}

func initRun(_ context.Context, opts *InitOptions) error {
	ios := opts.IOStreams

	apiKey, err := promptSecret(ios, "API key")
	if err != nil {
		return err
	}
	if apiKey == "" {
		return cmdutil.FlagErrorf("API key must not be empty")
	}
	appKey, err := promptSecret(ios, "Application key")
	if err != nil {
		return err
	}

	site := opts.Site
	if site == "" {
		site, err = promptLine(ios, "Site (blank for datadoghq.com)")
		if err != nil {
			return err
		}
	}

	cfg, err := opts.Config()
	if err != nil {
		return err
	}

	if err := storeProfile(cfg, opts.ProfileName, apiKey, appKey, site, opts.UseKeyring); err != nil {
		return err
	}
	cfg.ActiveProfile = opts.ProfileName

	if err := config.Save(cfg); err != nil {
		return err
	}

	cs := ios.ColorScheme()
	fmt.Fprintf(ios.Out, "%s Profile %q saved and activated\n", cs.Green("✓"), opts.ProfileName)
	return nil
}

// storeProfile writes the credential set into cfg, routing secrets to
// the keychain when requested.
func storeProfile(cfg *config.Config, name, apiKey, appKey, site string, useKeyring bool) error {
	if cfg.Profiles == nil {
		cfg.Profiles = map[string]config.Profile{}
	}

	profile := config.Profile{Site: site}
	if useKeyring {
		if err := keyring.Set(name+":api_key", apiKey); err != nil {
			return fmt.Errorf("storing api key in keyring: %w", err)
		}
		profile.APIKey = "keyring"
		if appKey != "" {
			if err := keyring.Set(name+":app_key", appKey); err != nil {
				return fmt.Errorf("storing app key in keyring: %w", err)
			}
			profile.AppKey = "keyring"
		}
	} else {
		profile.APIKey = apiKey
		profile.AppKey = appKey
	}

	cfg.Profiles[name] = profile
	return nil
}

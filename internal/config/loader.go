package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"

	"github.com/schmitthub/ddog/internal/keyring"
)

// Loader reads the profiles file through viper, applying defaults.
type Loader struct {
	path  string
	viper *viper.Viper
}

// NewLoader creates a loader for the default config path.
func NewLoader() (*Loader, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	return NewLoaderForPath(path), nil
}

// NewLoaderForPath creates a loader reading the given file.
func NewLoaderForPath(path string) *Loader {
	return &Loader{path: path, viper: viper.New()}
}

// Load parses the config file. A missing file yields an empty Config
// with defaults applied, not an error: env-only operation is valid.
func (l *Loader) Load() (*Config, error) {
	l.viper.SetConfigFile(l.path)
	l.viper.SetConfigType("yaml")

	l.viper.SetDefault("timeout", 30)
	l.viper.SetDefault("retry_count", 3)
	l.viper.SetDefault("retry_delay", 1.0)
	l.viper.SetDefault("default_time_range", "1h")

	if _, err := os.Stat(l.path); err == nil {
		if err := l.viper.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", l.path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("reading config file %s: %w", l.path, err)
	}

	var cfg Config
	if err := l.viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", l.path, err)
	}
	return &cfg, nil
}

// Resolve produces Credentials for the given profile name. An empty
// name falls back to DDOG_PROFILE, then the file's active profile.
// Environment variables override profile fields; the site shortcut
// table is applied last.
func (cfg *Config) Resolve(profileName string) (Credentials, error) {
	if profileName == "" {
		profileName = os.Getenv(EnvProfile)
	}
	if profileName == "" {
		profileName = cfg.ActiveProfile
	}

	var creds Credentials
	if profileName != "" {
		profile, ok := cfg.Profiles[profileName]
		if !ok {
			return Credentials{}, &ProfileNotFoundError{Name: profileName}
		}
		creds = Credentials{
			APIKey: profile.APIKey,
			AppKey: profile.AppKey,
			Site:   profile.Site,
		}
		if creds.APIKey == keyringSentinel {
			key, err := keyring.Get(profileName + ":api_key")
			if err != nil {
				return Credentials{}, fmt.Errorf("reading api key for profile %q from keyring: %w", profileName, err)
			}
			creds.APIKey = key
		}
		if creds.AppKey == keyringSentinel {
			key, err := keyring.Get(profileName + ":app_key")
			if err != nil {
				return Credentials{}, fmt.Errorf("reading app key for profile %q from keyring: %w", profileName, err)
			}
			creds.AppKey = key
		}
	}

	if v := os.Getenv(EnvAPIKey); v != "" {
		creds.APIKey = v
	}
	if v := os.Getenv(EnvAppKey); v != "" {
		creds.AppKey = v
	}
	if v := os.Getenv(EnvSite); v != "" {
		creds.Site = v
	}

	if creds.APIKey == "" {
		return Credentials{}, &MissingCredentialsError{}
	}

	if creds.Site == "" {
		creds.Site = "datadoghq.com"
	}
	creds.Site = ExpandSite(creds.Site)

	return creds, nil
}

// Package config manages ddog's profile configuration: named sets of
// Datadog credentials plus client defaults, stored in a YAML file
// under the user config directory. API keys may live in the file
// itself or in the OS keychain.
//
// Resolution priority for credentials: explicit environment variables
// (DD_API_KEY, DD_APP_KEY, DD_SITE) override profile values; the
// profile is chosen by the --profile flag, then DDOG_PROFILE, then the
// file's active_profile.
package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Env var names recognized by the resolver.
const (
	EnvAPIKey  = "DD_API_KEY"
	EnvAppKey  = "DD_APP_KEY"
	EnvSite    = "DD_SITE"
	EnvProfile = "DDOG_PROFILE"
)

// keyringSentinel marks a profile field whose value lives in the OS
// keychain rather than the config file.
const keyringSentinel = "keyring"

// Profile is one named credential set.
type Profile struct {
	APIKey string `yaml:"api_key" mapstructure:"api_key"`
	AppKey string `yaml:"app_key" mapstructure:"app_key"`
	Site   string `yaml:"site,omitempty" mapstructure:"site"`
}

// Config is the parsed profiles file.
type Config struct {
	ActiveProfile string             `yaml:"active_profile,omitempty" mapstructure:"active_profile"`
	Profiles      map[string]Profile `yaml:"profiles,omitempty" mapstructure:"profiles"`

	// Client defaults.
	Timeout          int     `yaml:"timeout,omitempty" mapstructure:"timeout"`
	RetryCount       int     `yaml:"retry_count,omitempty" mapstructure:"retry_count"`
	RetryDelay       float64 `yaml:"retry_delay,omitempty" mapstructure:"retry_delay"`
	DefaultTimeRange string  `yaml:"default_time_range,omitempty" mapstructure:"default_time_range"`
}

// Credentials is a fully resolved credential set ready to construct an
// API client.
type Credentials struct {
	APIKey string
	AppKey string
	Site   string
}

// siteShortcuts are dogshell-style region shortcuts.
var siteShortcuts = map[string]string{
	"us":  "datadoghq.com",
	"eu":  "datadoghq.eu",
	"us3": "us3.datadoghq.com",
	"us5": "us5.datadoghq.com",
	"ap1": "ap1.datadoghq.com",
	"gov": "ddog-gov.com",
}

// ExpandSite maps a region shortcut to its full site domain; full
// domains pass through unchanged.
func ExpandSite(site string) string {
	if full, ok := siteShortcuts[site]; ok {
		return full
	}
	return site
}

// Dir returns the ddog config directory (~/.config/ddog on Linux).
// DDOG_CONFIG_DIR overrides it, mainly for tests.
func Dir() (string, error) {
	if dir := os.Getenv("DDOG_CONFIG_DIR"); dir != "" {
		return dir, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locating user config directory: %w", err)
	}
	return filepath.Join(base, "ddog"), nil
}

// Path returns the profiles file path.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// LogsDir returns the directory for rotating log files.
func LogsDir() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "logs"), nil
}

// ProfileNotFoundError reports a profile name that does not exist in
// the config file.
type ProfileNotFoundError struct {
	Name string
}

func (e *ProfileNotFoundError) Error() string {
	return fmt.Sprintf("profile %q not found (run 'ddog config list-profiles')", e.Name)
}

// MissingCredentialsError reports that no API key could be resolved
// from flags, environment, or profiles.
type MissingCredentialsError struct{}

func (e *MissingCredentialsError) Error() string {
	return "no Datadog credentials found: set DD_API_KEY and DD_APP_KEY, or run 'ddog config init'"
}

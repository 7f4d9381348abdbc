// Package factory wires the real dependency implementations into a
// cmdutil.Factory. Closures are lazy and memoized: config is read once
// on first use, and the API client is only constructed by commands
// that talk to the API, so config-only commands work offline.
package factory

import (
	"sync"
	"time"

	"github.com/schmitthub/ddog/internal/api"
	"github.com/schmitthub/ddog/internal/cmdutil"
	"github.com/schmitthub/ddog/internal/config"
	"github.com/schmitthub/ddog/internal/iostreams"
	"github.com/schmitthub/ddog/internal/retry"
)

// New creates a Factory with production defaults.
func New(version, commit string) *cmdutil.Factory {
	f := &cmdutil.Factory{
		Version:   version,
		Commit:    commit,
		IOStreams: iostreams.System(),
		Now:       time.Now,
	}
	f.Config = configFunc()
	f.Client = clientFunc(f)
	f.RetryPolicy = retryPolicyFunc(f)
	return f
}

func configFunc() func() (*config.Config, error) {
	var once sync.Once
	var cfg *config.Config
	var err error
	return func() (*config.Config, error) {
		once.Do(func() {
			var loader *config.Loader
			loader, err = config.NewLoader()
			if err != nil {
				return
			}
			cfg, err = loader.Load()
		})
		return cfg, err
	}
}

func clientFunc(f *cmdutil.Factory) func() (*api.Client, error) {
	var once sync.Once
	var client *api.Client
	var err error
	return func() (*api.Client, error) {
		once.Do(func() {
			var cfg *config.Config
			cfg, err = f.Config()
			if err != nil {
				return
			}
			var creds config.Credentials
			creds, err = cfg.Resolve(f.Profile)
			if err != nil {
				return
			}
			client = api.NewClient(api.Config{
				APIKey:  creds.APIKey,
				AppKey:  creds.AppKey,
				Site:    creds.Site,
				Timeout: time.Duration(cfg.Timeout) * time.Second,
			})
		})
		return client, err
	}
}

func retryPolicyFunc(f *cmdutil.Factory) func() retry.Policy {
	return func() retry.Policy {
		policy := retry.DefaultPolicy()
		cfg, err := f.Config()
		if err != nil {
			return policy
		}
		if cfg.RetryCount > 0 {
			policy.MaxAttempts = cfg.RetryCount
		}
		if cfg.RetryDelay > 0 {
			policy.BaseDelay = time.Duration(cfg.RetryDelay * float64(time.Second))
		}
		return policy
	}
}

package cmdutil

import (
	"time"

	"github.com/schmitthub/ddog/internal/api"
	"github.com/schmitthub/ddog/internal/config"
	"github.com/schmitthub/ddog/internal/iostreams"
	"github.com/schmitthub/ddog/internal/retry"
)

// Factory provides shared dependencies for CLI commands. It is a
// dependency injection container: this struct defines the contract,
// internal/cmd/factory wires the real implementations.
//
// Closure fields use lazy initialization internally. Commands extract
// only the fields they need into per-command Options structs.
type Factory struct {
	// Global flag state, set before command execution.
	Profile string
	Debug   bool

	// Version info, injected at build time via ldflags.
	Version string
	Commit  string

	// IO streams for input/output (for testability).
	IOStreams *iostreams.IOStreams

	// Dependency providers (closures wired by the factory constructor).
	Config      func() (*config.Config, error)
	Client      func() (*api.Client, error)
	RetryPolicy func() retry.Policy

	// Now returns the current instant; tests pin it for deterministic
	// time-range resolution.
	Now func() time.Time
}

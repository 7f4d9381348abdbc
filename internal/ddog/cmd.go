// Package ddog hosts the CLI entry point: it wires the factory, runs
// the command tree, and maps errors to process exit codes.
package ddog

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/schmitthub/ddog/internal/cmd/factory"
	"github.com/schmitthub/ddog/internal/cmd/root"
	"github.com/schmitthub/ddog/internal/cmdutil"
	"github.com/schmitthub/ddog/internal/logger"
	"github.com/schmitthub/ddog/internal/retry"
)

// Build metadata, injected via -ldflags.
var (
	Version = "dev"
	Commit  = ""
)

// Main runs the CLI and returns the process exit code.
func Main() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	f := factory.New(Version, Commit)
	defer func() { _ = logger.Close() }()

	rootCmd := root.NewCmdRoot(f)
	cmd, err := rootCmd.ExecuteContextC(ctx)
	if err == nil {
		return exitOK
	}
	return handleError(f, cmd, err)
}

// Exit codes. Success and the failure categories each get a stable
// code so scripts can branch on the kind of failure.
const (
	exitOK    = 0
	exitError = 1
)

func handleError(f *cmdutil.Factory, cmd *cobra.Command, err error) int {
	ios := f.IOStreams
	cs := ios.ColorScheme()

	// Ctrl+C: conventional 130, nothing to print.
	if errors.Is(err, context.Canceled) {
		return 130
	}

	var exitErr *cmdutil.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	var flagErr *cmdutil.FlagError
	if errors.As(err, &flagErr) {
		fmt.Fprintln(ios.ErrOut, cs.Red(flagErr.Error()))
		if cmd != nil {
			fmt.Fprintln(ios.ErrOut, cmd.UsageString())
		}
		return exitError
	}

	// Classified API failures map categories to exit codes. The
	// failure may be wrapped in SilentError when the command already
	// rendered it (JSON mode).
	var failure *retry.Failure
	if errors.As(err, &failure) {
		if !errors.Is(err, cmdutil.SilentError) {
			fmt.Fprintln(ios.ErrOut, cs.Red("Error: "+failure.Message))
		}
		return failure.Category.ExitCode()
	}

	if errors.Is(err, cmdutil.SilentError) {
		return exitError
	}

	fmt.Fprintln(ios.ErrOut, cs.Red("Error: "+err.Error()))
	return exitError
}

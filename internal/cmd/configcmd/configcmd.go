// Package configcmd implements the "ddog config" command group.
package configcmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/schmitthub/ddog/internal/cmdutil"
	"github.com/schmitthub/ddog/internal/iostreams"
)

// NewCmdConfig creates the config command group.
func NewCmdConfig(f *cmdutil.Factory) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config <command>",
		Short: "Manage profiles and defaults",
	}

	cmd.AddCommand(NewCmdInit(f, nil))
	cmd.AddCommand(NewCmdSetProfile(f, nil))
	cmd.AddCommand(NewCmdUseProfile(f, nil))
	cmd.AddCommand(NewCmdListProfiles(f, nil))
	cmd.AddCommand(NewCmdGet(f, nil))

	return cmd
}

// promptLine reads one line of visible input.
func promptLine(ios *iostreams.IOStreams, label string) (string, error) {
	fmt.Fprintf(ios.ErrOut, "%s: ", label)
	line, err := bufio.NewReader(ios.In).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("reading input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// promptSecret reads a secret without echoing when stdin is a
// terminal, falling back to a plain line read when piped.
func promptSecret(ios *iostreams.IOStreams, label string) (string, error) {
	fmt.Fprintf(ios.ErrOut, "%s: ", label)

	if file, ok := ios.In.(*os.File); ok && term.IsTerminal(int(file.Fd())) {
		secret, err := term.ReadPassword(int(file.Fd()))
		fmt.Fprintln(ios.ErrOut)
		if err != nil {
			return "", fmt.Errorf("reading secret: %w", err)
		}
		return strings.TrimSpace(string(secret)), nil
	}

	line, err := bufio.NewReader(ios.In).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("reading input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

package cmdutil

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/schmitthub/ddog/internal/iostreams"
)

// Confirm prompts the user before a destructive operation. The prompt
// is skipped when confirmed is already true (--confirm flag). In
// non-interactive contexts with no --confirm, it fails rather than
// silently proceeding.
func Confirm(ios *iostreams.IOStreams, message string, confirmed bool) (bool, error) {
	if confirmed {
		return true, nil
	}
	if !ios.CanPrompt() {
		return false, FlagErrorf("refusing to prompt in non-interactive mode; pass --confirm to proceed")
	}

	fmt.Fprintf(ios.ErrOut, "%s [y/N] ", message)

	line, err := bufio.NewReader(ios.In).ReadString('\n')
	if err != nil && line == "" {
		return false, nil
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

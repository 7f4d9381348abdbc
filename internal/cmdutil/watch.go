package cmdutil

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/schmitthub/ddog/internal/iostreams"
)

// clearScreen is the ANSI sequence to clear and home the cursor.
const clearScreen = "\x1b[2J\x1b[H"

// Watch re-runs render every interval until ctx is cancelled (e.g. by
// Ctrl+C). On a TTY the screen is cleared before each refresh for an
// in-place display; when piped, refreshes are appended. A render error
// aborts the loop. Cancellation is a clean exit, not an error.
func Watch(ctx context.Context, ios *iostreams.IOStreams, interval time.Duration, render func(context.Context) error) error {
	if interval < time.Second {
		interval = time.Second
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if ios.IsOutputTTY() {
			fmt.Fprint(ios.Out, clearScreen)
		}
		if err := render(ctx); err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.Canceled) {
				fmt.Fprintln(ios.ErrOut, "Watch stopped")
				return nil
			}
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

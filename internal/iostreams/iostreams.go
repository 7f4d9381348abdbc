// Package iostreams provides testable access to standard streams,
// following the GitHub CLI pattern: commands write to an injected
// IOStreams rather than os.Stdout directly, so tests capture output
// and TTY-dependent behavior stays in one place.
package iostreams

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/briandowns/spinner"
	"golang.org/x/term"
)

// IOStreams provides access to standard input/output/error streams.
type IOStreams struct {
	In     io.Reader
	Out    io.Writer
	ErrOut io.Writer

	// TTY state: -1 unchecked, 0 false, 1 true.
	isInputTTY  int
	isOutputTTY int
	isStderrTTY int

	// colorEnabled: -1 auto-detect, 0 disabled, 1 enabled.
	colorEnabled int

	progressEnabled bool
	progress        *spinner.Spinner
	progressMu      sync.Mutex

	neverPrompt bool

	termWidth int
}

// System creates an IOStreams connected to the process streams with
// TTY auto-detection. NO_COLOR and CI are respected.
func System() *IOStreams {
	ios := &IOStreams{
		In:           os.Stdin,
		Out:          os.Stdout,
		ErrOut:       os.Stderr,
		isInputTTY:   -1,
		isOutputTTY:  -1,
		isStderrTTY:  -1,
		colorEnabled: -1,
	}

	if !ios.IsOutputTTY() || os.Getenv("NO_COLOR") != "" {
		ios.colorEnabled = 0
	}
	if os.Getenv("CI") != "" {
		ios.neverPrompt = true
	}
	ios.progressEnabled = ios.IsOutputTTY() && ios.IsStderrTTY()

	return ios
}

func isTerminal(v io.Writer) bool {
	f, ok := v.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// IsInputTTY reports whether stdin is a terminal.
func (ios *IOStreams) IsInputTTY() bool {
	if ios.isInputTTY == -1 {
		if f, ok := ios.In.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
			ios.isInputTTY = 1
		} else {
			ios.isInputTTY = 0
		}
	}
	return ios.isInputTTY == 1
}

// IsOutputTTY reports whether stdout is a terminal.
func (ios *IOStreams) IsOutputTTY() bool {
	if ios.isOutputTTY == -1 {
		if isTerminal(ios.Out) {
			ios.isOutputTTY = 1
		} else {
			ios.isOutputTTY = 0
		}
	}
	return ios.isOutputTTY == 1
}

// IsStderrTTY reports whether stderr is a terminal.
func (ios *IOStreams) IsStderrTTY() bool {
	if ios.isStderrTTY == -1 {
		if isTerminal(ios.ErrOut) {
			ios.isStderrTTY = 1
		} else {
			ios.isStderrTTY = 0
		}
	}
	return ios.isStderrTTY == 1
}

// ColorEnabled reports whether color output is active.
func (ios *IOStreams) ColorEnabled() bool {
	if ios.colorEnabled == -1 {
		return ios.IsOutputTTY()
	}
	return ios.colorEnabled == 1
}

// SetColorEnabled forces colors on or off.
func (ios *IOStreams) SetColorEnabled(enabled bool) {
	if enabled {
		ios.colorEnabled = 1
	} else {
		ios.colorEnabled = 0
	}
}

// ColorScheme returns a scheme bound to this stream's color setting.
func (ios *IOStreams) ColorScheme() *ColorScheme {
	return NewColorScheme(ios.ColorEnabled())
}

// CanPrompt reports whether interactive prompts are allowed.
func (ios *IOStreams) CanPrompt() bool {
	return !ios.neverPrompt && ios.IsInputTTY() && ios.IsStderrTTY()
}

// SetNeverPrompt disables all interactive prompts (e.g. in CI).
func (ios *IOStreams) SetNeverPrompt(v bool) {
	ios.neverPrompt = v
}

// TerminalWidth returns the terminal width, defaulting to 80.
func (ios *IOStreams) TerminalWidth() int {
	if ios.termWidth > 0 {
		return ios.termWidth
	}
	if f, ok := ios.Out.(*os.File); ok {
		if w, _, err := term.GetSize(int(f.Fd())); err == nil && w > 0 {
			ios.termWidth = w
			return w
		}
	}
	return 80
}

// StartProgress starts a spinner on stderr with the given label.
// No-op when the streams are not interactive.
func (ios *IOStreams) StartProgress(label string) {
	if !ios.progressEnabled {
		return
	}
	ios.progressMu.Lock()
	defer ios.progressMu.Unlock()
	if ios.progress != nil {
		ios.progress.Suffix = " " + label
		return
	}
	sp := spinner.New(spinner.CharSets[11], 100*time.Millisecond, spinner.WithWriter(ios.ErrOut))
	sp.Suffix = " " + label
	sp.Start()
	ios.progress = sp
}

// StopProgress stops the active spinner, if any.
func (ios *IOStreams) StopProgress() {
	ios.progressMu.Lock()
	defer ios.progressMu.Unlock()
	if ios.progress != nil {
		ios.progress.Stop()
		ios.progress = nil
	}
}
